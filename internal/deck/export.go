package deck

import (
	"strconv"
	"strings"

	"github.com/youruser/talingchan-deck/internal/cards"
)

// ExportDeckText renders a deterministic plain-text deck list: the name, each
// non-empty display group with its total, then the life deck. Entries in the
// Other bucket are listed last so the text always covers the whole deck.
func ExportDeckText(name string, main []Entry, life []cards.Card) string {
	lines := []string{}
	if name != "" {
		lines = append(lines, "# "+name)
	}
	p := Present(main)
	groups := append(p.Groups(), p.Group(GroupOther))
	for _, g := range groups {
		if len(g.Entries) == 0 {
			continue
		}
		lines = append(lines, "## "+g.Name+" ("+strconv.Itoa(g.Total)+")")
		for _, e := range g.Entries {
			lines = append(lines, strconv.Itoa(e.Count)+"x "+e.RuleName)
		}
	}
	if len(life) > 0 {
		lines = append(lines, "## Life ("+strconv.Itoa(len(life))+")")
		for _, c := range life {
			lines = append(lines, "1x "+c.RuleName)
		}
	}
	return strings.Join(lines, "\n")
}
