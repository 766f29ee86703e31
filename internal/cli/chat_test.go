package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/food-punch-karachi/server/internal/agent/graph/conversations"
	"github.com/food-punch-karachi/server/internal/agent/model"
	"github.com/food-punch-karachi/server/internal/agent/repo"
	"github.com/food-punch-karachi/server/internal/shop/cart"
	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

type addOnceResolver struct{ cat *catalog.Catalog }

func (r addOnceResolver) Resolve(ctx context.Context, _ string, history []model.Turn, c model.CartMutator) (*model.Resolution, error) {
	item, _ := r.cat.Match(history[len(history)-1].Text())
	if err := c.AddToCart(ctx, item, false); err != nil {
		return nil, err
	}
	out := append(model.CloneHistory(history, 1), model.ModelTurn(model.TextPart("Added "+item.Name)))
	return &model.Resolution{Text: "Added " + item.Name, History: out}, nil
}

func TestRunChat(t *testing.T) {
	ctx := context.Background()
	cat := catalog.Default()
	carts := cart.NewMemoryStore()
	chat := conversations.NewMessagesManager(repo.NewMemoryConversationRepository(), addOnceResolver{cat: cat})

	in := strings.NewReader("khawsa\n\n/cart\n/checkout\n/reset\n/cart\n/quit\nnever read\n")
	var out bytes.Buffer
	require.NoError(t, runChat(ctx, chat, carts, "term", in, &out))

	text := out.String()
	assert.Contains(t, text, conversations.Greeting)
	assert.Contains(t, text, "model: Added Special Chicken Khawsa")
	assert.Contains(t, text, "total Rs. ")
	assert.Contains(t, text, "https://wa.me/")
	assert.Contains(t, text, "[cart is empty]")
	assert.NotContains(t, text, "never read")

	c, err := carts.Get(ctx, "term")
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

func TestPrintMenu(t *testing.T) {
	var out bytes.Buffer
	printMenu(&out, catalog.Default().Filter(catalog.CategorySignature, ""))
	assert.Contains(t, out.String(), "Special Chicken Khawsa")

	out.Reset()
	printMenu(&out, nil)
	assert.Equal(t, "No items found.\n", out.String())
}
