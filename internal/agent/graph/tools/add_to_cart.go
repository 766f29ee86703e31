package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/components/tool/utils"
	"github.com/cloudwego/eino/schema"

	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
	logx "github.com/food-punch-karachi/server/pkg/logger"
)

// ===================================
// Add To Cart Tool
// ===================================

const ToolAddToCart = "addToCart"

type CartItemRequest struct {
	ItemName string `json:"itemName"`
	Quantity int    `json:"quantity,omitempty"`
}

type AddToCartInput struct {
	Items []CartItemRequest `json:"items"`
}

type AddToCartOutput struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	// Added is the number of units pushed into the cart.
	Added int `json:"-"`
}

type cartKey struct{}

// WithCart attaches the cart the tool mutates during one graph run.
func WithCart(ctx context.Context, cart model.CartMutator) context.Context {
	return context.WithValue(ctx, cartKey{}, cart)
}

// CartFrom returns the cart attached by WithCart, or nil.
func CartFrom(ctx context.Context) model.CartMutator {
	cart, _ := ctx.Value(cartKey{}).(model.CartMutator)
	return cart
}

func addToCartInfo() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: ToolAddToCart,
		Desc: "Add items to the user's shopping cart when they explicitly confirm an order. Call only after the user confirms.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"items": {
				Type:     schema.Array,
				Desc:     "The menu items to add.",
				Required: true,
				ElemInfo: &schema.ParameterInfo{
					Type: schema.Object,
					SubParams: map[string]*schema.ParameterInfo{
						"itemName": {
							Type:     schema.String,
							Desc:     "The exact name of the item from the menu.",
							Required: true,
						},
						"quantity": {
							Type: schema.Integer,
							Desc: "The quantity to add. Default is 1.",
						},
					},
				},
			},
		}),
	}
}

func createAddToCartTool(cat *catalog.Catalog) tool.InvokableTool {
	return utils.NewTool(addToCartInfo(), func(ctx context.Context, in *AddToCartInput) (*AddToCartOutput, error) {
		out := AddItems(ctx, cat, CartFrom(ctx), in)
		return &out, nil
	})
}

// AddItems matches every requested entry against the catalog and adds the
// matched ones to cart, one call per unit. Unmatched names are skipped. A nil
// cart adds nothing but still yields a successful result.
func AddItems(ctx context.Context, cat *catalog.Catalog, cart model.CartMutator, in *AddToCartInput) AddToCartOutput {
	var (
		added   int
		summary []string
	)
	if in == nil {
		in = &AddToCartInput{}
	}

	for _, req := range in.Items {
		item, ok := cat.Match(req.ItemName)
		if !ok {
			logx.Debug().Str("item_name", req.ItemName).Msg("no catalog match; skipping")
			continue
		}
		if cart == nil {
			continue
		}

		qty := normalizeQuantity(req.Quantity)
		n := 0
		for ; n < qty; n++ {
			if err := cart.AddToCart(ctx, item, false); err != nil {
				logx.Warn().Err(err).Str("item_id", item.ID).Int("added", n).Msg("cart rejected item; stopping this entry")
				break
			}
		}
		if n > 0 {
			added += n
			summary = append(summary, fmt.Sprintf("%dx %s", n, item.Name))
		}
	}

	msg := fmt.Sprintf("Successfully added %d items", added)
	if len(summary) > 0 {
		msg = "Successfully added: " + strings.Join(summary, ", ")
	}
	return AddToCartOutput{Success: true, Message: msg, Added: added}
}

func normalizeQuantity(q int) int {
	if q <= 0 {
		return 1
	}
	return q
}

// NormalizeAddToCartArguments rewrites loosely shaped model arguments into the
// strict AddToCartInput JSON. Entries without a usable itemName are dropped;
// arguments that are not a JSON object become an empty item list.
func NormalizeAddToCartArguments(arguments string) string {
	in := AddToCartInput{Items: []CartItemRequest{}}

	var raw map[string]any
	if err := json.Unmarshal([]byte(arguments), &raw); err == nil {
		in.Items = ParseItems(raw)
	} else {
		logx.Warn().Err(err).Str("arguments", arguments).Msg("unparsable addToCart arguments; using empty item list")
	}

	b, err := json.Marshal(in)
	if err != nil {
		return `{"items":[]}`
	}
	return string(b)
}

// ParseItems extracts the item requests from decoded arguments.
func ParseItems(args map[string]any) []CartItemRequest {
	items := []CartItemRequest{}
	list, ok := args["items"].([]any)
	if !ok {
		return items
	}
	for _, e := range list {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		name, ok := m["itemName"].(string)
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			continue
		}
		items = append(items, CartItemRequest{ItemName: name, Quantity: coerceQuantity(m["quantity"])})
	}
	return items
}

func coerceQuantity(v any) int {
	switch vv := v.(type) {
	case float64:
		if math.IsNaN(vv) || vv < 0 || vv > math.MaxInt32 {
			return 0
		}
		return int(vv)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(vv))
		if err != nil || n < 0 {
			return 0
		}
		return n
	default:
		return 0
	}
}
