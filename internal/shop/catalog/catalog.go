// Package catalog holds the static menu, reviews and catering listings of the
// site together with the lookups the cart and the chat assistant use.
package catalog

import (
	"fmt"
	"strings"
)

// Category groups menu items on the menu page.
type Category string

const (
	CategoryAll            Category = "All"
	CategorySignature      Category = "Signature"
	CategoryWeeklySpecials Category = "Weekly Specials"
	CategoryPopular        Category = "Popular"
	CategoryAppetizers     Category = "Appetizers"
)

// Item is one orderable menu entry. Prices are whole rupees.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       int      `json:"price"`
	Category    Category `json:"category"`
	Image       string   `json:"image"`
	Tag         string   `json:"tag,omitempty"`
}

type Review struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Text   string `json:"text"`
	Rating int    `json:"rating"`
}

type CateringService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type BusinessInfo struct {
	Name        string `json:"name"`
	WhatsApp    string `json:"whatsapp"`
	Foodpanda   string `json:"foodpanda"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	LogoURL     string `json:"logoUrl"`
}

// Catalog is a read-only view over an ordered item list. The zero value is empty.
type Catalog struct {
	items []Item
	byID  map[string]int
}

// New builds a catalog over items, keeping their order.
func New(items []Item) *Catalog {
	c := &Catalog{
		items: make([]Item, len(items)),
		byID:  make(map[string]int, len(items)),
	}
	copy(c.items, items)
	for i, it := range c.items {
		c.byID[it.ID] = i
	}
	return c
}

// Default returns the shop's menu.
func Default() *Catalog {
	return New(menuItems)
}

// Items returns a copy of all items in catalog order.
func (c *Catalog) Items() []Item {
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Find returns the item with the given id.
func (c *Catalog) Find(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Match resolves a free-form item name to a catalog entry. See Match.
func (c *Catalog) Match(name string) (Item, bool) {
	return Match(c.items, name)
}

// Filter returns the items in category (All or empty means any) whose name or
// description contains query, case-insensitively.
func (c *Catalog) Filter(category Category, query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if category != "" && category != CategoryAll && it.Category != category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(it.Name), q) &&
			!strings.Contains(strings.ToLower(it.Description), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Signatures returns the specialties featured on the home page.
func (c *Catalog) Signatures() []Item {
	out := make([]Item, 0, len(signatureIDs))
	for _, id := range signatureIDs {
		if it, ok := c.Find(id); ok {
			out = append(out, it)
		}
	}
	return out
}

// MenuSummary renders "Name: Rs. price" pairs for the assistant's instructions.
func (c *Catalog) MenuSummary() string {
	parts := make([]string, 0, len(c.items))
	for _, it := range c.items {
		parts = append(parts, fmt.Sprintf("%s: Rs. %d", it.Name, it.Price))
	}
	return strings.Join(parts, ", ")
}

// Categories lists the menu tabs, All first.
func Categories() []Category {
	return []Category{
		CategoryAll,
		CategorySignature,
		CategoryWeeklySpecials,
		CategoryPopular,
		CategoryAppetizers,
	}
}

// ParseCategory maps a query value onto a known category.
func ParseCategory(v string) (Category, bool) {
	v = strings.TrimSpace(v)
	if v == "" {
		return CategoryAll, true
	}
	for _, c := range Categories() {
		if strings.EqualFold(string(c), v) {
			return c, true
		}
	}
	return "", false
}

func Reviews() []Review {
	out := make([]Review, len(reviews))
	copy(out, reviews)
	return out
}

func CateringServices() []CateringService {
	out := make([]CateringService, len(cateringServices))
	copy(out, cateringServices)
	return out
}

func Business() BusinessInfo {
	return business
}
