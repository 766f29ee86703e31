package model

import (
	"context"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

// CartMutator is the side effect the assistant may trigger: increment the
// cart line for item by one.
type CartMutator interface {
	AddToCart(ctx context.Context, item catalog.Item, openCartView bool) error
}

// ChatState stores per-invocation state for the Eino Graph.
// Concurrency model:
//   - Registered as Graph Local State via compose.WithGenLocalState.
//   - Read and written only inside state handlers or compose.ProcessState,
//     which Eino serializes, so no extra locking is needed.
type ChatState struct {
	SessionID     string
	SystemPrompt  string
	Turns         []Turn            // input history plus every turn produced by this run
	PendingCalls  map[string]string // call id -> function name for the outstanding model turn
	ToolRound     bool              // set once the tool executor ran
	ToolCallIDSeq int               // local sequence to synthesize call ids when the provider omits them

	// Accumulated total LLM cost (USD) across model invocations for this exchange
	TotalCostUSD float64
}

// ResolveInput is the graph input: the history ending with the new user turn.
type ResolveInput struct {
	SessionID string
	History   []Turn
}

// Resolution is the graph output.
type Resolution struct {
	Text      string
	History   []Turn
	ToolRound bool
	CostUSD   float64
}

// Completion is the result of one round-trip to the completion service.
type Completion struct {
	Text          string         `json:"text"`
	FunctionCalls []FunctionCall `json:"toolCalls,omitempty"`
	ModelTurn     *Turn          `json:"modelTurn,omitempty"`
}
