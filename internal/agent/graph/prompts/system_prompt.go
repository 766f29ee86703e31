package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/agent/graph/tools"
	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

//go:embed template/system_prompt.txt
var coreSystemPrompt string

// RenderSystemInstruction renders the assistant's fixed system instruction and
// triggers prompt callbacks.
func RenderSystemInstruction(ctx context.Context, config model.PromptConfig, cat *catalog.Catalog) (string, error) {
	biz := catalog.Business()
	name := strings.TrimSpace(config.BusinessName)
	if name == "" {
		name = biz.Name
	}

	tpl := prompt.FromMessages(
		schema.GoTemplate,
		schema.SystemMessage(coreSystemPrompt),
	)
	vars := map[string]any{
		"BusinessName": name,
		"Description":  biz.Description,
		"Tagline":      biz.Tagline,
		"Menu":         cat.MenuSummary(),
		"WhatsApp":     biz.WhatsApp,
		"CartTool":     tools.ToolAddToCart,
	}
	msgs, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return strings.TrimSpace(msgs[0].Content), nil
}
