package nodes

import (
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/agent/model"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

const (
	// FallbackNoText replies when the model returned neither text nor tool calls.
	FallbackNoText = "I'm listening, but I didn't quite catch that."
	// FallbackToolConfirmation replies when the confirmation round-trip returned no text.
	FallbackToolConfirmation = "I've added those items!"
)

// ===== Small helpers to keep handlers simple/readable =====

// CleanReplyText strips markdown emphasis the instructions forbid.
func CleanReplyText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}

// EnsureToolCallIDs fills missing tool call ids; Gemini often omits them.
func EnsureToolCallIDs(msg *schema.Message, seq *int) {
	if msg == nil {
		return
	}
	for i := range msg.ToolCalls {
		if strings.TrimSpace(msg.ToolCalls[i].ID) == "" {
			*seq++
			msg.ToolCalls[i].ID = fmt.Sprintf("call_%d", *seq)
		}
	}
}

// pendingCalls indexes the tool calls of msg by id.
func pendingCalls(msg *schema.Message) map[string]string {
	if msg == nil || len(msg.ToolCalls) == 0 {
		return nil
	}
	out := make(map[string]string, len(msg.ToolCalls))
	for _, tc := range msg.ToolCalls {
		out[tc.ID] = tc.Function.Name
	}
	return out
}

// recordUsage computes and logs the usage cost of one model call.
func recordUsage(state *model.ChatState, node, modelName string, out *schema.Message) {
	if out == nil || out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	inC, outC, totalC := model.ComputeCost(usage, model.ResolvePricing(modelName))
	state.TotalCostUSD += totalC

	logx.Debug().
		Str("session_id", state.SessionID).
		Str("node", node).
		Str("model", modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", state.TotalCostUSD).
		Msg("LLM usage")
}
