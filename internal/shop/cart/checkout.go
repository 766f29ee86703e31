package cart

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/food-punch-karachi/server/internal/shop/catalog"
)

var ErrEmptyCart = errors.New("cart is empty")

// OrderMessage renders the WhatsApp order text for the cart.
func (c *Cart) OrderMessage(biz catalog.BusinessInfo) string {
	parts := make([]string, 0, len(c.Lines))
	for _, l := range c.Lines {
		parts = append(parts, fmt.Sprintf("%s x%d", l.Item.Name, l.Quantity))
	}
	return fmt.Sprintf("Assalamu Alaikum %s! I'd like to place an order for: %s. Total bill: Rs. %d.",
		shortName(biz.Name), strings.Join(parts, ", "), c.Total())
}

// CheckoutLink builds the wa.me deep link that opens a chat with the order prefilled.
func (c *Cart) CheckoutLink(biz catalog.BusinessInfo) (string, error) {
	if len(c.Lines) == 0 {
		return "", ErrEmptyCart
	}
	text := strings.ReplaceAll(url.QueryEscape(c.OrderMessage(biz)), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", biz.WhatsApp, text), nil
}

// shortName drops the city suffix: "Food Punch Karachi" greets "Food Punch".
func shortName(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(name, "Karachi"))
}
