package model

import (
	"errors"
	"fmt"
	"strings"
)

// Role identifies the author of a Turn.
type Role string

const (
	RoleUser     Role = "user"
	RoleModel    Role = "model"
	RoleFunction Role = "function"
)

// FunctionCall is the model's request to run a local function.
type FunctionCall struct {
	ID   string         `json:"id,omitempty"`
	Name string         `json:"name"`
	Args map[string]any `json:"args,omitempty"`
}

// FunctionResponse is the result of a FunctionCall, paired by ID.
type FunctionResponse struct {
	ID       string         `json:"id,omitempty"`
	Name     string         `json:"name"`
	Response map[string]any `json:"response"`
}

// PartKind tags the variant held by a Part.
type PartKind string

const (
	PartText             PartKind = "text"
	PartFunctionCall     PartKind = "function_call"
	PartFunctionResponse PartKind = "function_response"
)

// Part is one segment of a Turn. Exactly one of the variants is set; a Part
// with neither call nor response is text. The JSON layout follows the Gemini
// content shape.
type Part struct {
	Text             string            `json:"text,omitempty"`
	FunctionCall     *FunctionCall     `json:"functionCall,omitempty"`
	FunctionResponse *FunctionResponse `json:"functionResponse,omitempty"`
}

func (p Part) Kind() PartKind {
	switch {
	case p.FunctionCall != nil:
		return PartFunctionCall
	case p.FunctionResponse != nil:
		return PartFunctionResponse
	default:
		return PartText
	}
}

func TextPart(text string) Part { return Part{Text: text} }

func FunctionCallPart(call FunctionCall) Part { return Part{FunctionCall: &call} }

func FunctionResponsePart(resp FunctionResponse) Part { return Part{FunctionResponse: &resp} }

// Turn is one structured exchange unit replayed to the completion service.
// Turns are never mutated once appended to a history.
type Turn struct {
	Role  Role   `json:"role"`
	Parts []Part `json:"parts"`
	// Extra carries provider metadata (e.g. thought signatures) that must
	// survive a round-trip through the history.
	Extra map[string]any `json:"extra,omitempty"`
}

func UserTurn(text string) Turn {
	return Turn{Role: RoleUser, Parts: []Part{TextPart(text)}}
}

func ModelTurn(parts ...Part) Turn {
	return Turn{Role: RoleModel, Parts: parts}
}

func ToolResultTurn(results ...FunctionResponse) Turn {
	parts := make([]Part, 0, len(results))
	for _, r := range results {
		parts = append(parts, FunctionResponsePart(r))
	}
	return Turn{Role: RoleFunction, Parts: parts}
}

// Text concatenates the text parts of the turn.
func (t Turn) Text() string {
	var b strings.Builder
	for _, p := range t.Parts {
		if p.Kind() == PartText {
			b.WriteString(p.Text)
		}
	}
	return b.String()
}

// FunctionCalls returns the call requests held by the turn.
func (t Turn) FunctionCalls() []FunctionCall {
	var calls []FunctionCall
	for _, p := range t.Parts {
		if p.FunctionCall != nil {
			calls = append(calls, *p.FunctionCall)
		}
	}
	return calls
}

var ErrInvalidTurn = errors.New("invalid turn")

// Validate checks the per-role part constraints.
func (t Turn) Validate() error {
	if len(t.Parts) == 0 {
		return fmt.Errorf("%w: %s turn has no parts", ErrInvalidTurn, t.Role)
	}
	for i, p := range t.Parts {
		kind := p.Kind()
		switch t.Role {
		case RoleUser:
			if kind != PartText {
				return fmt.Errorf("%w: user part %d is %s", ErrInvalidTurn, i, kind)
			}
		case RoleModel:
			if kind == PartFunctionResponse {
				return fmt.Errorf("%w: model part %d is a function response", ErrInvalidTurn, i)
			}
		case RoleFunction:
			if kind != PartFunctionResponse {
				return fmt.Errorf("%w: function part %d is %s", ErrInvalidTurn, i, kind)
			}
		default:
			return fmt.Errorf("%w: unknown role %q", ErrInvalidTurn, t.Role)
		}
	}
	return nil
}

// ValidateHistory checks every turn and that each function turn answers only
// calls requested by the model turn right before it.
func ValidateHistory(history []Turn) error {
	for i, t := range history {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("turn %d: %w", i, err)
		}
		if t.Role != RoleFunction {
			continue
		}
		if i == 0 || history[i-1].Role != RoleModel {
			return fmt.Errorf("turn %d: %w: function turn does not follow a model turn", i, ErrInvalidTurn)
		}
		pending := map[string]bool{}
		for _, c := range history[i-1].FunctionCalls() {
			pending[c.ID] = true
		}
		for _, p := range t.Parts {
			if !pending[p.FunctionResponse.ID] {
				return fmt.Errorf("turn %d: %w: response %q has no outstanding call", i, ErrInvalidTurn, p.FunctionResponse.ID)
			}
			delete(pending, p.FunctionResponse.ID)
		}
	}
	return nil
}

// CloneHistory returns a new slice holding the same turns, so appends never
// alias the caller's backing array.
func CloneHistory(history []Turn, extra int) []Turn {
	out := make([]Turn, len(history), len(history)+extra)
	copy(out, history)
	return out
}

// DisplayMessage is a rendered chat bubble.
type DisplayMessage struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
