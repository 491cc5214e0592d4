package deck

import (
	"errors"
	"strconv"
	"testing"

	"github.com/youruser/talingchan-deck/internal/cards"
)

func avatar(name string) cards.Card {
	return cards.Card{Name: name, RuleName: name, Type: cards.TypeAvatar, Symbol: "มนุษย์"}
}

func magic(name string) cards.Card {
	return cards.Card{Name: name, RuleName: name, Type: cards.TypeMagic}
}

func construct(name string) cards.Card {
	return cards.Card{Name: name, RuleName: name, Type: cards.TypeConstruct}
}

func onlyOne(name, typ string) cards.Card {
	return cards.Card{Name: name, RuleName: name, Type: typ, OnlyOne: true}
}

func life(name string) cards.Card {
	return cards.Card{Name: name + "_Life", RuleName: name + "_Life", Type: cards.TypeMagic}
}

func restricted(name, kind, group string) cards.Card {
	c := magic(name)
	c.RestrictionTypeGroupID = kind
	c.GroupID = cards.Value(group)
	return c
}

// fillMain adds n distinct filler cards, one copy each.
func fillMain(t *testing.T, d *Deck, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		c := construct("Filler " + strconv.Itoa(i))
		c.AllowedCopies = cards.Copies(1)
		if err := d.AddToMain(c); err != nil {
			t.Fatalf("filler %d: %v", i, err)
		}
	}
}

func mustAdd(t *testing.T, d *Deck, c cards.Card) {
	t.Helper()
	if err := d.AddToMain(c); err != nil {
		t.Fatalf("AddToMain(%s): %v", c.Name, err)
	}
}

func expectViolation(t *testing.T, err error, want Violation) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", want.Kind())
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %s, got %v", want.Kind(), err)
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}
