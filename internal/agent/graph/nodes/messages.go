package nodes

import (
	"encoding/json"
	"maps"

	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/agent/model"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// ===== Adapter between model.Turn and Eino messages =====

// TurnsToMessages converts a history into the message list sent to the chat
// model, led by the system instruction.
func TurnsToMessages(systemPrompt string, turns []model.Turn) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(turns)+1)
	if systemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(systemPrompt))
	}
	for _, t := range turns {
		msgs = append(msgs, turnToMessages(t)...)
	}
	return msgs
}

func turnToMessages(t model.Turn) []*schema.Message {
	switch t.Role {
	case model.RoleUser:
		return []*schema.Message{schema.UserMessage(t.Text())}

	case model.RoleModel:
		var calls []schema.ToolCall
		for _, c := range t.FunctionCalls() {
			calls = append(calls, schema.ToolCall{
				ID: c.ID,
				Function: schema.FunctionCall{
					Name:      c.Name,
					Arguments: encodeJSON(c.Args, "{}"),
				},
			})
		}
		msg := schema.AssistantMessage(t.Text(), calls)
		if len(t.Extra) > 0 {
			msg.Extra = maps.Clone(t.Extra)
		}
		return []*schema.Message{msg}

	case model.RoleFunction:
		msgs := make([]*schema.Message, 0, len(t.Parts))
		for _, p := range t.Parts {
			if p.FunctionResponse == nil {
				continue
			}
			msgs = append(msgs, &schema.Message{
				Role:       schema.Tool,
				Content:    encodeJSON(p.FunctionResponse.Response, "{}"),
				ToolCallID: p.FunctionResponse.ID,
				ToolName:   p.FunctionResponse.Name,
			})
		}
		return msgs
	}

	logx.Warn().Str("role", string(t.Role)).Msg("dropping turn with unknown role")
	return nil
}

// MessageToModelTurn converts a chat model reply into a model turn. It reports
// false when the reply carries neither text nor tool calls.
func MessageToModelTurn(msg *schema.Message) (model.Turn, bool) {
	if msg == nil {
		return model.Turn{}, false
	}
	var parts []model.Part
	if msg.Content != "" {
		parts = append(parts, model.TextPart(msg.Content))
	}
	for _, tc := range msg.ToolCalls {
		parts = append(parts, model.FunctionCallPart(model.FunctionCall{
			ID:   tc.ID,
			Name: tc.Function.Name,
			Args: decodeJSONObject(tc.Function.Arguments, nil),
		}))
	}
	if len(parts) == 0 {
		return model.Turn{}, false
	}
	turn := model.ModelTurn(parts...)
	if len(msg.Extra) > 0 {
		turn.Extra = maps.Clone(msg.Extra)
	}
	return turn, true
}

// ToolMessagesToTurn folds tool executor output into one function turn.
// Tool output that is not a JSON object is wrapped as {"output": content}.
func ToolMessagesToTurn(msgs []*schema.Message) model.Turn {
	results := make([]model.FunctionResponse, 0, len(msgs))
	for _, m := range msgs {
		if m == nil {
			continue
		}
		results = append(results, model.FunctionResponse{
			ID:       m.ToolCallID,
			Name:     m.ToolName,
			Response: decodeJSONObject(m.Content, map[string]any{"output": m.Content}),
		})
	}
	return model.ToolResultTurn(results...)
}

func encodeJSON(v map[string]any, fallback string) string {
	if v == nil {
		return fallback
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fallback
	}
	return string(b)
}

func decodeJSONObject(s string, fallback map[string]any) map[string]any {
	if s == "" {
		return fallback
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return fallback
	}
	return out
}
