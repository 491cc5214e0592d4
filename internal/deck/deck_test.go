package deck

import (
	"errors"
	"reflect"
	"testing"

	"github.com/youruser/talingchan-deck/internal/cards"
)

func TestAddToMainCopyLimit(t *testing.T) {
	d := New(DefaultRules())
	x := avatar("Garuda")
	for i := 0; i < 4; i++ {
		mustAdd(t, d, x)
	}
	expectViolation(t, d.AddToMain(x), ErrCopyLimit)
	if got := d.Count("Garuda"); got != 4 {
		t.Fatalf("count = %d, want 4", got)
	}
	if got := d.MainTotal(); got != 4 {
		t.Fatalf("total = %d, want 4", got)
	}
}

func TestAllowedCopiesOverride(t *testing.T) {
	tests := []struct {
		name    string
		allowed *int
		adds    int
		want    Violation
	}{
		{"banned", cards.Copies(0), 0, ErrBanned},
		{"single copy", cards.Copies(1), 1, ErrCopyLimit},
		{"above default", cards.Copies(6), 6, ErrCopyLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultRules())
			c := magic("Storm")
			c.AllowedCopies = tt.allowed
			for i := 0; i < tt.adds; i++ {
				mustAdd(t, d, c)
			}
			expectViolation(t, d.AddToMain(c), tt.want)
			if d.Count("Storm") != tt.adds {
				t.Fatalf("count = %d, want %d", d.Count("Storm"), tt.adds)
			}
		})
	}
}

func TestBannedCardLeavesDeckEmpty(t *testing.T) {
	d := New(DefaultRules())
	c := magic("Forbidden")
	c.AllowedCopies = cards.Copies(0)
	expectViolation(t, d.AddToMain(c), ErrBanned)
	if len(d.Main()) != 0 {
		t.Fatalf("deck should stay empty, got %v", names(d.Main()))
	}
}

func TestMainDeckFull(t *testing.T) {
	d := New(DefaultRules())
	fillMain(t, d, 50)
	expectViolation(t, d.AddToMain(magic("One More")), ErrMainDeckFull)
	if d.MainTotal() != 50 {
		t.Fatalf("total = %d", d.MainTotal())
	}
}

func TestLifeCardRejectedFromMain(t *testing.T) {
	d := New(DefaultRules())
	expectViolation(t, d.AddToMain(life("Heart")), ErrLifeCardInMain)

	byRuleName := cards.Card{Name: "Plain", RuleName: "Plain_Life"}
	expectViolation(t, d.AddToMain(byRuleName), ErrLifeCardInMain)
}

func TestLifeCardCheckedBeforeFullDeck(t *testing.T) {
	d := New(DefaultRules())
	fillMain(t, d, 50)
	expectViolation(t, d.AddToMain(life("Heart")), ErrLifeCardInMain)
}

func TestExclusiveAvatar(t *testing.T) {
	r := DefaultRules()
	special := cards.Card{
		Name:     r.ExclusiveAvatar.RuleName,
		RuleName: r.ExclusiveAvatar.RuleName,
		Type:     cards.TypeAvatar,
		Symbol:   cards.Value(r.ExclusiveAvatar.Symbol),
	}
	godAvatar := cards.Card{Name: "Shiva", RuleName: "Shiva", Type: cards.TypeAvatar, Symbol: cards.Value(r.ExclusiveAvatar.Symbol)}
	human := avatar("Human Hero")

	t.Run("special after other avatar", func(t *testing.T) {
		d := New(r)
		mustAdd(t, d, human)
		expectViolation(t, d.AddToMain(special), ErrExclusiveAvatar)
	})
	t.Run("other avatar after special", func(t *testing.T) {
		d := New(r)
		mustAdd(t, d, special)
		expectViolation(t, d.AddToMain(human), ErrExclusiveAvatar)
		if len(d.Main()) != 1 {
			t.Fatalf("deck changed: %v", names(d.Main()))
		}
	})
	t.Run("same symbol allowed", func(t *testing.T) {
		d := New(r)
		mustAdd(t, d, special)
		mustAdd(t, d, godAvatar)
		mustAdd(t, d, special)
	})
	t.Run("special card never excludes itself", func(t *testing.T) {
		odd := special
		odd.Symbol = "มนุษย์"
		d := New(r)
		mustAdd(t, d, odd)
		mustAdd(t, d, odd)
		if d.Count(odd.RuleName) != 2 {
			t.Fatalf("count = %d", d.Count(odd.RuleName))
		}
	})
	t.Run("non avatars allowed", func(t *testing.T) {
		d := New(r)
		mustAdd(t, d, special)
		mustAdd(t, d, magic("Bolt"))
		mustAdd(t, d, construct("Wall"))
	})
	t.Run("disabled rule", func(t *testing.T) {
		r2 := r
		r2.ExclusiveAvatar = ExclusiveAvatarRule{}
		d := New(r2)
		mustAdd(t, d, special)
		mustAdd(t, d, human)
	})
}

func TestOnlyOneConflict(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, onlyOne("Crown", cards.TypeConstruct))
	expectViolation(t, d.AddToMain(onlyOne("Scepter", cards.TypeMagic)), ErrOnlyOneConflict)
	// a second copy of the same Only#1 card conflicts with the first
	expectViolation(t, d.AddToMain(onlyOne("Crown", cards.TypeConstruct)), ErrOnlyOneConflict)
	if d.Count("Crown") != 1 {
		t.Fatalf("count = %d", d.Count("Crown"))
	}
}

func TestCheckOrder(t *testing.T) {
	r := DefaultRules()
	special := cards.Card{
		Name:     r.ExclusiveAvatar.RuleName,
		RuleName: r.ExclusiveAvatar.RuleName,
		Type:     cards.TypeAvatar,
		Symbol:   cards.Value(r.ExclusiveAvatar.Symbol),
	}
	banned := magic("Forbidden")
	banned.AllowedCopies = cards.Copies(0)
	single := magic("Single")
	single.AllowedCopies = cards.Copies(1)
	crown := onlyOne("Crown", cards.TypeConstruct)
	crown.AllowedCopies = cards.Copies(1)
	bannedOnlyOne := onlyOne("Scepter", cards.TypeMagic)
	bannedOnlyOne.AllowedCopies = cards.Copies(0)
	groupedCrown := onlyOne("Crown", cards.TypeConstruct)
	groupedCrown.RestrictionTypeGroupID = "Choice"
	groupedCrown.GroupID = "7"
	groupedScepter := onlyOne("Scepter", cards.TypeMagic)
	groupedScepter.RestrictionTypeGroupID = "Choice"
	groupedScepter.GroupID = "7"

	tests := []struct {
		name  string
		setup func(t *testing.T, d *Deck)
		add   cards.Card
		want  Violation
	}{
		{
			name: "exclusive avatar before full deck",
			setup: func(t *testing.T, d *Deck) {
				mustAdd(t, d, special)
				fillMain(t, d, 49)
			},
			add:  avatar("Human Hero"),
			want: ErrExclusiveAvatar,
		},
		{
			name:  "full deck before banned",
			setup: func(t *testing.T, d *Deck) { fillMain(t, d, 50) },
			add:   banned,
			want:  ErrMainDeckFull,
		},
		{
			name: "full deck before copy limit",
			setup: func(t *testing.T, d *Deck) {
				mustAdd(t, d, single)
				fillMain(t, d, 49)
			},
			add:  single,
			want: ErrMainDeckFull,
		},
		{
			name:  "copy limit before only one",
			setup: func(t *testing.T, d *Deck) { mustAdd(t, d, crown) },
			add:   crown,
			want:  ErrCopyLimit,
		},
		{
			name:  "banned before only one",
			setup: func(t *testing.T, d *Deck) { mustAdd(t, d, crown) },
			add:   bannedOnlyOne,
			want:  ErrBanned,
		},
		{
			name:  "only one before restriction group",
			setup: func(t *testing.T, d *Deck) { mustAdd(t, d, groupedCrown) },
			add:   groupedScepter,
			want:  ErrOnlyOneConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(r)
			tt.setup(t, d)
			before := d.Main()
			expectViolation(t, d.AddToMain(tt.add), tt.want)
			if !reflect.DeepEqual(d.Main(), before) {
				t.Fatalf("rejected add changed the deck: %v", names(d.Main()))
			}
		})
	}
}

func TestAddThenRemoveRestoresDeck(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, avatar("Garuda"))
	mustAdd(t, d, magic("Bolt"))
	mustAdd(t, d, magic("Bolt"))
	mustAdd(t, d, construct("Wall"))
	mustAdd(t, d, onlyOne("Crown", cards.TypeMagic))

	for _, c := range []cards.Card{magic("Bolt"), avatar("Garuda"), magic("Storm"), avatar("Naga")} {
		before := d.Main()
		mustAdd(t, d, c)
		if !d.RemoveFromMain(c.RuleName) {
			t.Fatalf("RemoveFromMain(%s) reported no change", c.RuleName)
		}
		if got := d.Main(); !reflect.DeepEqual(got, before) {
			t.Fatalf("after add and remove of %s: %v, want %v", c.RuleName, names(got), names(before))
		}
	}
}

func TestNoCopyLimit(t *testing.T) {
	d := New(DefaultRules())
	c := magic("Endless")
	c.AllowedCopies = cards.Copies(cards.NoCopyLimit)
	for i := 0; i < 10; i++ {
		mustAdd(t, d, c)
	}
	if d.Count("Endless") != 10 {
		t.Fatalf("count = %d", d.Count("Endless"))
	}
}

func TestRestrictionGroup(t *testing.T) {
	tests := []struct {
		name    string
		first   cards.Card
		second  cards.Card
		wantErr bool
	}{
		{"choice same group", restricted("A", "Choice", "7"), restricted("B", "Choice", "7"), true},
		{"incompatible same group", restricted("A", "Incompatible", "7"), restricted("B", "Incompatible", "7"), true},
		{"different groups", restricted("A", "Choice", "7"), restricted("B", "Choice", "8"), false},
		{"non exclusive kind", restricted("A", "Synergy", "7"), restricted("B", "Synergy", "7"), false},
		{"blank group", restricted("A", "Choice", " "), restricted("B", "Choice", " "), false},
		{"padded kind", restricted("A", " Choice ", "7"), restricted("B", "Choice", "7"), true},
		{"same rule name", restricted("A", "Choice", "7"), restricted("A", "Choice", "7"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New(DefaultRules())
			mustAdd(t, d, tt.first)
			err := d.AddToMain(tt.second)
			if tt.wantErr {
				expectViolation(t, err, ErrRestrictionGroup)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestViolationKindAndMessage(t *testing.T) {
	d := New(DefaultRules())
	c := magic("Forbidden")
	c.AllowedCopies = cards.Copies(0)
	err := d.AddToMain(c)
	var v Violation
	if !errors.As(err, &v) {
		t.Fatalf("expected a Violation, got %T", err)
	}
	if v.Kind() != "banned" {
		t.Fatalf("kind = %q", v.Kind())
	}
	if want := `card is banned: "Forbidden"`; err.Error() != want {
		t.Fatalf("message = %q, want %q", err.Error(), want)
	}
}

func TestAddToLife(t *testing.T) {
	d := New(DefaultRules())
	expectViolation(t, d.AddToLife(magic("Bolt")), ErrNotLifeCard)

	for _, n := range []string{"A", "B", "C", "D", "E"} {
		if err := d.AddToLife(life(n)); err != nil {
			t.Fatalf("AddToLife(%s): %v", n, err)
		}
	}
	expectViolation(t, d.AddToLife(life("F")), ErrLifeDeckFull)

	d.RemoveFromLife("E_Life")
	expectViolation(t, d.AddToLife(life("A")), ErrLifeDuplicate)

	want := []string{"A_Life", "B_Life", "C_Life", "D_Life"}
	var got []string
	for _, c := range d.Life() {
		got = append(got, c.RuleName)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("life = %v, want %v", got, want)
	}
}

func TestRemoveFromMain(t *testing.T) {
	d := New(DefaultRules())
	x := magic("Bolt")
	mustAdd(t, d, x)
	mustAdd(t, d, x)

	if !d.RemoveFromMain("Bolt") || d.Count("Bolt") != 1 {
		t.Fatalf("first remove: count = %d", d.Count("Bolt"))
	}
	if !d.RemoveFromMain("Bolt") || len(d.Main()) != 0 {
		t.Fatalf("second remove should drop the entry: %v", names(d.Main()))
	}
	if d.RemoveFromMain("Bolt") {
		t.Fatal("removing an absent card should be a no-op")
	}
}

func TestClearAllNeedsConfirmation(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, magic("Bolt"))
	if err := d.AddToLife(life("A")); err != nil {
		t.Fatal(err)
	}

	if d.ClearAll(nil) || d.ClearAll(func() bool { return false }) {
		t.Fatal("clear without confirmation should do nothing")
	}
	if d.MainTotal() != 1 || len(d.Life()) != 1 {
		t.Fatal("decks changed without confirmation")
	}
	if !d.ClearAll(func() bool { return true }) {
		t.Fatal("confirmed clear should report true")
	}
	if d.MainTotal() != 0 || len(d.Life()) != 0 {
		t.Fatal("decks not emptied")
	}
}

func TestMainReturnsCopy(t *testing.T) {
	d := New(DefaultRules())
	mustAdd(t, d, magic("Bolt"))
	m := d.Main()
	m[0].Count = 99
	if d.Count("Bolt") != 1 {
		t.Fatal("Main() exposed internal state")
	}
}
