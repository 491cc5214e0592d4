package deck

import (
	"sort"

	"github.com/youruser/talingchan-deck/internal/cards"
)

// Display buckets of the main deck.
const (
	GroupOnlyOne   = "Only#1"
	GroupAvatar    = cards.TypeAvatar
	GroupMagic     = cards.TypeMagic
	GroupConstruct = cards.TypeConstruct
	GroupOther     = "Other"
)

// GroupOrder is the fixed display order. GroupOther is not part of it.
var GroupOrder = []string{GroupOnlyOne, GroupAvatar, GroupMagic, GroupConstruct}

// GroupOf returns the bucket an entry belongs to. Only#1 wins over Type.
func GroupOf(c cards.Card) string {
	if c.OnlyOne {
		return GroupOnlyOne
	}
	switch c.Type {
	case cards.TypeAvatar, cards.TypeMagic, cards.TypeConstruct:
		return c.Type
	}
	return GroupOther
}

// Precedence ranks a card's bucket for sorting; Other sorts last.
func Precedence(c cards.Card) int {
	g := GroupOf(c)
	for i, name := range GroupOrder {
		if name == g {
			return i
		}
	}
	return len(GroupOrder)
}

// SortEntries orders entries by bucket precedence, then by Name (byte-wise,
// so case-sensitive).
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := Precedence(entries[i].Card), Precedence(entries[j].Card)
		if pi != pj {
			return pi < pj
		}
		return entries[i].Name < entries[j].Name
	})
}
