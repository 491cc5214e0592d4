package deck

import (
	"reflect"
	"testing"

	"github.com/youruser/talingchan-deck/internal/cards"
)

func TestSortOrderAfterAdd(t *testing.T) {
	d := New(DefaultRules())
	odd := cards.Card{Name: "Token", RuleName: "Token", Type: "Token"}
	for _, c := range []cards.Card{
		construct("Wall"),
		odd,
		magic("bolt"),
		magic("Bolt"),
		avatar("Zed"),
		avatar("Ace"),
		onlyOne("Crown", cards.TypeConstruct),
	} {
		mustAdd(t, d, c)
	}
	want := []string{"Crown", "Ace", "Zed", "Bolt", "bolt", "Wall", "Token"}
	if got := names(d.Main()); !reflect.DeepEqual(got, want) {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestRemoveDoesNotResort(t *testing.T) {
	entries := []Entry{
		{Card: magic("B"), Count: 1},
		{Card: avatar("A"), Count: 2},
	}
	d := &Deck{rules: DefaultRules(), main: entries}
	d.RemoveFromMain("A")
	if got := names(d.Main()); !reflect.DeepEqual(got, []string{"B", "A"}) {
		t.Fatalf("order = %v", got)
	}
}

func TestPresentation(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, onlyOne("Crown", cards.TypeAvatar))
	mustAdd(t, d, avatar("Ace"))
	mustAdd(t, d, avatar("Ace"))
	mustAdd(t, d, magic("Bolt"))
	mustAdd(t, d, cards.Card{Name: "Token", RuleName: "Token"})

	p := Present(d.Main())
	groups := p.Groups()
	var order []string
	for _, g := range groups {
		order = append(order, g.Name)
	}
	if !reflect.DeepEqual(order, GroupOrder) {
		t.Fatalf("group order = %v", order)
	}

	tests := []struct {
		group string
		total int
		names []string
	}{
		{GroupOnlyOne, 1, []string{"Crown"}},
		{GroupAvatar, 2, []string{"Ace"}},
		{GroupMagic, 1, []string{"Bolt"}},
		{GroupConstruct, 0, []string{}},
		{GroupOther, 1, []string{"Token"}},
	}
	for _, tt := range tests {
		g := p.Group(tt.group)
		if g.Total != tt.total {
			t.Errorf("%s total = %d, want %d", tt.group, g.Total, tt.total)
		}
		if got := names(g.Entries); !reflect.DeepEqual(got, tt.names) {
			t.Errorf("%s entries = %v, want %v", tt.group, got, tt.names)
		}
	}
}

func TestExportDeckText(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, avatar("Ace"))
	mustAdd(t, d, avatar("Ace"))
	mustAdd(t, d, magic("Bolt"))
	mustAdd(t, d, cards.Card{Name: "Token", RuleName: "Token"})
	if err := d.AddToLife(life("Heart")); err != nil {
		t.Fatal(err)
	}

	want := "# Test Deck\n" +
		"## Avatar (2)\n2x Ace\n" +
		"## Magic (1)\n1x Bolt\n" +
		"## Other (1)\n1x Token\n" +
		"## Life (1)\n1x Heart_Life"
	if got := ExportDeckText("Test Deck", d.Main(), d.Life()); got != want {
		t.Fatalf("text =\n%s\nwant\n%s", got, want)
	}
}
