package cart

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(t *testing.T, id string) catalog.Item {
	t.Helper()
	it, ok := catalog.Default().Find(id)
	require.True(t, ok, id)
	return it
}

func TestCart_AddAndTotals(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.DeliveryFee())
	assert.Equal(t, 0, c.Total())

	khawsa := item(t, "khawsa-1")
	rice := item(t, "singaporean-1")
	c.Add(khawsa)
	c.Add(rice)
	c.Add(khawsa)

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "khawsa-1", c.Lines[0].Item.ID)
	assert.Equal(t, 2, c.Quantity("khawsa-1"))
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, 2*850+750, c.Subtotal())
	assert.Equal(t, DeliveryFee, c.DeliveryFee())
	assert.Equal(t, 2*850+750+150, c.Total())
}

func TestCart_UpdateQuantityFloorsAtOne(t *testing.T) {
	var c Cart
	c.Add(item(t, "spring-rolls"))

	assert.True(t, c.UpdateQuantity("spring-rolls", 3))
	assert.Equal(t, 4, c.Quantity("spring-rolls"))

	assert.True(t, c.UpdateQuantity("spring-rolls", -10))
	assert.Equal(t, 1, c.Quantity("spring-rolls"))

	assert.False(t, c.UpdateQuantity("missing", 1))
}

func TestCart_Remove(t *testing.T) {
	var c Cart
	c.Add(item(t, "spring-rolls"))
	c.Add(item(t, "shami-kebab"))

	assert.True(t, c.Remove("spring-rolls"))
	assert.False(t, c.Remove("spring-rolls"))
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "shami-kebab", c.Lines[0].Item.ID)
}

func TestCart_SummaryOfEmptyCartHasNoNilLines(t *testing.T) {
	var c Cart
	s := c.Summary()
	assert.NotNil(t, s.Lines)
	assert.Equal(t, 0, s.Total)
}

func TestCheckoutLink(t *testing.T) {
	biz := catalog.Business()
	var c Cart

	_, err := c.CheckoutLink(biz)
	assert.ErrorIs(t, err, ErrEmptyCart)

	c.Add(item(t, "khawsa-1"))
	c.Add(item(t, "khawsa-1"))
	c.Add(item(t, "spring-rolls"))

	link, err := c.CheckoutLink(biz)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(link, "https://wa.me/+923312721804?text="))
	assert.NotContains(t, strings.TrimPrefix(link, "https://wa.me/+923312721804"), "+")
	assert.Contains(t, link, "Assalamu%20Alaikum%20Food%20Punch%21")

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t,
		"Assalamu Alaikum Food Punch! I'd like to place an order for: Special Chicken Khawsa x2, Veggie Spring Rolls (12pc) x1. Total bill: Rs. 2300.",
		u.Query().Get("text"))
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	khawsa := item(t, "khawsa-1")

	require.NoError(t, s.Add(ctx, "a", khawsa, false))
	require.NoError(t, s.Add(ctx, "a", khawsa, false))
	require.NoError(t, s.Add(ctx, "b", khawsa, true))

	a, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Quantity("khawsa-1"))
	assert.False(t, a.Open)

	b, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, 1, b.Quantity("khawsa-1"))
	assert.True(t, b.Open)

	// returned carts are copies
	a.Lines[0].Quantity = 99
	again, _ := s.Get(ctx, "a")
	assert.Equal(t, 2, again.Quantity("khawsa-1"))

	require.NoError(t, s.UpdateQuantity(ctx, "a", "khawsa-1", 1))
	assert.ErrorIs(t, s.UpdateQuantity(ctx, "a", "missing", 1), ErrLineNotFound)
	assert.ErrorIs(t, s.Remove(ctx, "a", "missing"), ErrLineNotFound)
	require.NoError(t, s.SetOpen(ctx, "a", true))

	a, _ = s.Get(ctx, "a")
	assert.Equal(t, 3, a.Quantity("khawsa-1"))
	assert.True(t, a.Open)

	require.NoError(t, s.Clear(ctx, "a"))
	a, _ = s.Get(ctx, "a")
	assert.Empty(t, a.Lines)
}

func TestMemoryStore_ConcurrentAddsAreAdditive(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	khawsa := item(t, "khawsa-1")
	rice := item(t, "singaporean-1")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() { defer wg.Done(); _ = s.Add(ctx, "s", khawsa, false) }()
		go func() { defer wg.Done(); _ = s.Add(ctx, "s", rice, false) }()
	}
	wg.Wait()

	c, err := s.Get(ctx, "s")
	require.NoError(t, err)
	assert.Equal(t, 50, c.Quantity("khawsa-1"))
	assert.Equal(t, 50, c.Quantity("singaporean-1"))
}

func TestSessionCart(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	hook := SessionCart{Store: s, SessionID: "x"}

	require.NoError(t, hook.AddToCart(ctx, item(t, "kachri-qeema-1"), false))

	c, _ := s.Get(ctx, "x")
	assert.Equal(t, 1, c.Quantity("kachri-qeema-1"))
	assert.False(t, c.Open)
}
