package catalog

import (
	"strings"

	"github.com/perronifitwear/backoffice/internal/domain"
)

// Filter narrows a product list for display. Text matches name or SKU
// case-insensitively, Category matches exactly, both compose with AND.
type Filter struct {
	Text     string
	Category string
}

// Query derives a filtered view of the list. The input slice is never
// mutated, re-running with the same filter yields the same result.
func Query(all []domain.Product, f Filter) []domain.Product {
	text := strings.ToLower(strings.TrimSpace(f.Text))
	out := make([]domain.Product, 0, len(all))
	for _, p := range all {
		if text != "" &&
			!strings.Contains(strings.ToLower(p.Name), text) &&
			!strings.Contains(strings.ToLower(p.SKU), text) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct non-empty categories present in the list,
// in first-seen order (the listing page's category filter options).
func Categories(all []domain.Product) []string {
	seen := make(map[string]struct{}, len(all))
	out := make([]string, 0, len(all))
	for _, p := range all {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}
