package nodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/agent/graph/prompts"
	"github.com/food-punch-karachi/server/internal/agent/graph/tools"
	"github.com/food-punch-karachi/server/internal/agent/model"
	errx "github.com/food-punch-karachi/server/internal/core/error"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// Node keys
const (
	NodeAssembler    = "assembler"
	NodeCompletion   = "completion"
	NodeToolExecutor = "tool_executor"
	NodeConfirmation = "confirmation"
	NodeFinalizer    = "finalizer"
)

// ErrEmptyCompletion is returned when the chat model yields no message at all.
var ErrEmptyCompletion = errors.New("completion returned no message")

// NewAssemblerPreHandler seeds the local state for one exchange.
func NewAssemblerPreHandler() func(context.Context, model.ResolveInput, *model.ChatState) (model.ResolveInput, error) {
	return func(ctx context.Context, in model.ResolveInput, s *model.ChatState) (model.ResolveInput, error) {
		s.SessionID = in.SessionID
		s.Turns = model.CloneHistory(in.History, 3)
		s.PendingCalls = nil
		s.ToolRound = false
		s.ToolCallIDSeq = 0
		s.TotalCostUSD = 0
		return in, nil
	}
}

// NewAssemblerNode renders the system instruction and converts the history
// into the first request.
func NewAssemblerNode(promptCfg *model.PromptConfig, cat *catalog.Catalog) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.ResolveInput) ([]*schema.Message, error) {
		systemPrompt, err := prompts.RenderSystemInstruction(ctx, *promptCfg, cat)
		if err != nil {
			return nil, fmt.Errorf("render system prompt: %w", err)
		}

		err = compose.ProcessState(ctx, func(_ context.Context, s *model.ChatState) error {
			s.SystemPrompt = systemPrompt
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}

		return TurnsToMessages(systemPrompt, in.History), nil
	})
}

// NewCompletionPostHandler records the first model turn and the calls it
// expects answers for.
func NewCompletionPostHandler(modelName string) func(context.Context, *schema.Message, *model.ChatState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, s *model.ChatState) (*schema.Message, error) {
		if out == nil {
			return nil, errx.WrapService(ErrEmptyCompletion)
		}
		recordUsage(s, NodeCompletion, modelName, out)

		EnsureToolCallIDs(out, &s.ToolCallIDSeq)
		if turn, ok := MessageToModelTurn(out); ok {
			s.Turns = append(s.Turns, turn)
		}
		s.PendingCalls = pendingCalls(out)

		logx.Debug().
			Str("session_id", s.SessionID).
			Int("tool_calls", len(out.ToolCalls)).
			Msg("completion received")
		return out, nil
	}
}

// NewToolCallCondition routes to the tool executor when the model requested
// any function call.
func NewToolCallCondition() func(context.Context, *schema.Message) (string, error) {
	return func(ctx context.Context, in *schema.Message) (string, error) {
		if in != nil && len(in.ToolCalls) > 0 {
			return NodeToolExecutor, nil
		}
		return NodeFinalizer, nil
	}
}

// NewToolExecutorPostHandler keeps only results of known tools and appends
// them as one function turn.
func NewToolExecutorPostHandler() func(context.Context, []*schema.Message, *model.ChatState) ([]*schema.Message, error) {
	return func(ctx context.Context, out []*schema.Message, s *model.ChatState) ([]*schema.Message, error) {
		s.ToolRound = true

		kept := make([]*schema.Message, 0, len(out))
		for _, m := range out {
			if m == nil {
				continue
			}
			name := m.ToolName
			if name == "" {
				name = s.PendingCalls[m.ToolCallID]
			}
			if name != tools.ToolAddToCart {
				logx.Debug().
					Str("session_id", s.SessionID).
					Str("tool_name", name).
					Str("tool_call_id", m.ToolCallID).
					Msg("ignoring result of unknown tool")
				continue
			}
			m.ToolName = name
			kept = append(kept, m)
		}

		if len(kept) > 0 {
			s.Turns = append(s.Turns, ToolMessagesToTurn(kept))
		}
		s.PendingCalls = nil
		return kept, nil
	}
}

// NewConfirmationPreHandler rebuilds the request from the accumulated turns.
func NewConfirmationPreHandler() func(context.Context, []*schema.Message, *model.ChatState) ([]*schema.Message, error) {
	return func(ctx context.Context, _ []*schema.Message, s *model.ChatState) ([]*schema.Message, error) {
		return TurnsToMessages(s.SystemPrompt, s.Turns), nil
	}
}

// NewConfirmationPostHandler records the confirmation turn. Function calls in
// it are kept in history but never executed.
func NewConfirmationPostHandler(modelName string) func(context.Context, *schema.Message, *model.ChatState) (*schema.Message, error) {
	return func(ctx context.Context, out *schema.Message, s *model.ChatState) (*schema.Message, error) {
		if out == nil {
			return nil, errx.WrapService(ErrEmptyCompletion)
		}
		recordUsage(s, NodeConfirmation, modelName, out)

		EnsureToolCallIDs(out, &s.ToolCallIDSeq)
		if len(out.ToolCalls) > 0 {
			logx.Debug().
				Str("session_id", s.SessionID).
				Int("tool_calls", len(out.ToolCalls)).
				Msg("confirmation requested more tools; not executing")
		}
		if turn, ok := MessageToModelTurn(out); ok {
			s.Turns = append(s.Turns, turn)
		}
		return out, nil
	}
}

// NewFinalizerNode picks the reply text and returns the updated history.
func NewFinalizerNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in *schema.Message) (*model.Resolution, error) {
		var res *model.Resolution
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.ChatState) error {
			text := ""
			if in != nil {
				text = CleanReplyText(in.Content)
			}
			if text == "" {
				text = FallbackNoText
				if s.ToolRound {
					text = FallbackToolConfirmation
				}
			}
			res = &model.Resolution{
				Text:      text,
				History:   s.Turns,
				ToolRound: s.ToolRound,
				CostUSD:   s.TotalCostUSD,
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to access state: %w", err)
		}
		return res, nil
	})
}
