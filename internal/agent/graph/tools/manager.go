package tools

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

// GetOrderTools returns the tools exposed to the assistant.
func GetOrderTools(cat *catalog.Catalog) []tool.BaseTool {
	return []tool.BaseTool{
		createAddToCartTool(cat),
	}
}

// GetToolInfos collects the schema of every tool for model binding.
func GetToolInfos(ctx context.Context, tools []tool.BaseTool) ([]*schema.ToolInfo, error) {
	infos := make([]*schema.ToolInfo, 0, len(tools))
	for _, t := range tools {
		info, err := t.Info(ctx)
		if err != nil {
			return nil, fmt.Errorf("tool info: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}
