package catalog

import "strings"

// Match returns the first item, in slice order, whose name contains name or is
// contained in name, ignoring case. Blank names never match.
func Match(items []Item, name string) (Item, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return Item{}, false
	}
	for _, it := range items {
		hay := strings.ToLower(it.Name)
		if strings.Contains(hay, needle) || strings.Contains(needle, hay) {
			return it, true
		}
	}
	return Item{}, false
}
