package cards

import "strings"

// Category is one of the six filterable card attributes.
type Category string

const (
	CategoryType   Category = "Type"
	CategorySymbol Category = "Symbol"
	CategoryCost   Category = "Cost"
	CategoryCColor Category = "C Color"
	CategoryGem    Category = "Gem"
	CategoryGColor Category = "G Color"
)

// Categories lists the filter categories in display order.
var Categories = []Category{
	CategoryType, CategorySymbol, CategoryCost, CategoryCColor, CategoryGem, CategoryGColor,
}

// Numeric reports whether the category holds numbers (sorted and cleaned as such).
func (c Category) Numeric() bool {
	return c == CategoryCost || c == CategoryGem
}

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// Selection maps a category to the values selected for it. An empty or
// missing value list places no constraint on that category.
type Selection map[Category][]string

// Toggle returns a copy of the selection with value added to the category,
// or removed when it was already selected.
func (s Selection) Toggle(cat Category, value string) Selection {
	out := s.Clone()
	cur := out[cat]
	for i, v := range cur {
		if v == value {
			out[cat] = append(cur[:i:i], cur[i+1:]...)
			return out
		}
	}
	out[cat] = append(cur[:len(cur):len(cur)], value)
	return out
}

// Clone deep-copies the selection.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// FilterOptions combines the free-text query with the attribute selection.
type FilterOptions struct {
	Query   string    `json:"query"`
	Filters Selection `json:"filters"`
}

// Match reports whether a card passes the query and every non-empty category.
func (opt FilterOptions) Match(c Card) bool {
	if opt.Query != "" {
		q := strings.ToLower(opt.Query)
		if !strings.Contains(strings.ToLower(c.Name), q) &&
			!strings.Contains(strings.ToLower(c.RuleName), q) {
			return false
		}
	}
	for cat, values := range opt.Filters {
		if len(values) == 0 {
			continue
		}
		v := c.Attr(cat)
		matched := false
		for _, want := range values {
			if v == want {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

// Filter returns the cards that pass opt, in catalog order.
func Filter(cards []Card, opt FilterOptions) []Card {
	out := []Card{}
	for _, c := range cards {
		if opt.Match(c) {
			out = append(out, c)
		}
	}
	return out
}
