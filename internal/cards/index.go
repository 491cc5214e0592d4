package cards

import "sort"

// Index holds, per category, the distinct values seen in a catalog.
type Index map[Category][]string

// BuildIndex collects the distinct non-empty trimmed values of every category.
// Cost and Gem keep only values that parse as numbers and sort numerically;
// the rest sort lexicographically.
func BuildIndex(cards []Card) Index {
	seen := make(map[Category]map[string]struct{}, len(Categories))
	for _, cat := range Categories {
		seen[cat] = map[string]struct{}{}
	}
	for _, c := range cards {
		for _, cat := range Categories {
			v := c.Attr(cat)
			if v == "" {
				continue
			}
			if cat.Numeric() {
				if _, ok := Value(v).Number(); !ok {
					continue
				}
			}
			seen[cat][v] = struct{}{}
		}
	}

	idx := make(Index, len(Categories))
	for _, cat := range Categories {
		values := make([]string, 0, len(seen[cat]))
		for v := range seen[cat] {
			values = append(values, v)
		}
		if cat.Numeric() {
			sort.Slice(values, func(i, j int) bool {
				a, _ := Value(values[i]).Number()
				b, _ := Value(values[j]).Number()
				if a != b {
					return a < b
				}
				return values[i] < values[j]
			})
		} else {
			sort.Strings(values)
		}
		idx[cat] = values
	}
	return idx
}
