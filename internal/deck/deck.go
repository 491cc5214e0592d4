package deck

import (
	"encoding/json"
	"fmt"

	"github.com/youruser/talingchan-deck/internal/cards"
)

// Entry is a main-deck card with its copy count.
type Entry struct {
	cards.Card
	Count int `json:"count"`
}

// UnmarshalJSON is needed because Card's own decoder would otherwise be
// promoted and drop Count.
func (e *Entry) UnmarshalJSON(b []byte) error {
	if err := json.Unmarshal(b, &e.Card); err != nil {
		return err
	}
	var aux struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	e.Count = aux.Count
	return nil
}

// Deck is a deck in progress: the main deck of counted entries and the life
// deck of distinct life cards. It is not safe for concurrent use; a session
// owns it.
type Deck struct {
	rules Rules
	main  []Entry
	life  []cards.Card
}

// New returns an empty deck governed by rules.
func New(rules Rules) *Deck {
	return &Deck{rules: rules}
}

func (d *Deck) Rules() Rules { return d.rules }

// Main returns a copy of the main-deck entries in display order.
func (d *Deck) Main() []Entry {
	return append([]Entry(nil), d.main...)
}

// Life returns a copy of the life deck in insertion order.
func (d *Deck) Life() []cards.Card {
	return append([]cards.Card(nil), d.life...)
}

// MainTotal is the number of physical cards in the main deck.
func (d *Deck) MainTotal() int {
	return Total(d.main)
}

// Count returns how many copies of ruleName are in the main deck.
func (d *Deck) Count(ruleName string) int {
	if i := d.mainIndex(ruleName); i >= 0 {
		return d.main[i].Count
	}
	return 0
}

// Total sums entry counts.
func Total(entries []Entry) int {
	n := 0
	for _, e := range entries {
		n += e.Count
	}
	return n
}

func (d *Deck) mainIndex(ruleName string) int {
	for i, e := range d.main {
		if e.RuleName == ruleName {
			return i
		}
	}
	return -1
}

// AddToMain adds one copy of c to the main deck. Checks run in a fixed order
// and the first failure is returned without touching the deck.
func (d *Deck) AddToMain(c cards.Card) error {
	r := d.rules

	if r.IsLifeCard(c) {
		return fmt.Errorf("%w: %q", ErrLifeCardInMain, c.Name)
	}

	if err := d.checkExclusiveAvatar(c); err != nil {
		return err
	}

	if d.MainTotal() >= r.MainDeckLimit {
		return fmt.Errorf("%w (%d cards)", ErrMainDeckFull, r.MainDeckLimit)
	}

	limit := r.EffectiveLimit(c)
	if limit == 0 {
		return fmt.Errorf("%w: %q", ErrBanned, c.Name)
	}
	if d.Count(c.RuleName) >= limit {
		return fmt.Errorf("%w: %q allows at most %d", ErrCopyLimit, c.Name, limit)
	}

	if c.OnlyOne {
		for _, e := range d.main {
			if e.OnlyOne {
				return fmt.Errorf("%w: %q is already in the deck", ErrOnlyOneConflict, e.Name)
			}
		}
	}

	if group := c.GroupID.Trimmed(); group != "" && r.exclusiveRestriction(c.RestrictionTypeGroupID) {
		for _, e := range d.main {
			if e.GroupID.Trimmed() == group && e.RuleName != c.RuleName {
				return fmt.Errorf("%w: cannot add %q, %q from group %s is in the deck",
					ErrRestrictionGroup, c.Name, e.Name, group)
			}
		}
	}

	if i := d.mainIndex(c.RuleName); i >= 0 {
		d.main[i].Count++
	} else {
		d.main = append(d.main, Entry{Card: c, Count: 1})
	}
	SortEntries(d.main)
	return nil
}

func (d *Deck) checkExclusiveAvatar(c cards.Card) error {
	rule := d.rules.ExclusiveAvatar
	if rule.isSpecial(c) {
		for _, e := range d.main {
			if rule.disqualifies(e.Card) {
				return fmt.Errorf("%w: cannot add %q while %q (symbol %q) is in the deck",
					ErrExclusiveAvatar, c.Name, e.Name, e.Symbol.Trimmed())
			}
		}
	}
	if rule.disqualifies(c) {
		for _, e := range d.main {
			if rule.isSpecial(e.Card) {
				return fmt.Errorf("%w: a deck with %q only accepts %s cards with symbol %q",
					ErrExclusiveAvatar, e.Name, rule.AvatarType, rule.Symbol)
			}
		}
	}
	return nil
}

// AddToLife appends c to the life deck.
func (d *Deck) AddToLife(c cards.Card) error {
	if !d.rules.IsLifeCard(c) {
		return fmt.Errorf("%w: %q", ErrNotLifeCard, c.Name)
	}
	if len(d.life) >= d.rules.LifeDeckLimit {
		return fmt.Errorf("%w (%d cards)", ErrLifeDeckFull, d.rules.LifeDeckLimit)
	}
	for _, l := range d.life {
		if l.RuleName == c.RuleName {
			return fmt.Errorf("%w: %q", ErrLifeDuplicate, c.Name)
		}
	}
	d.life = append(d.life, c)
	return nil
}

// RemoveFromMain drops one copy of ruleName, removing the entry at zero.
// Order is left as is. It reports whether anything changed.
func (d *Deck) RemoveFromMain(ruleName string) bool {
	i := d.mainIndex(ruleName)
	if i < 0 {
		return false
	}
	if d.main[i].Count > 1 {
		d.main[i].Count--
		return true
	}
	d.main = append(d.main[:i], d.main[i+1:]...)
	return true
}

// RemoveFromLife removes ruleName from the life deck if present.
func (d *Deck) RemoveFromLife(ruleName string) bool {
	for i, l := range d.life {
		if l.RuleName == ruleName {
			d.life = append(d.life[:i], d.life[i+1:]...)
			return true
		}
	}
	return false
}

// ClearAll empties both decks when confirm answers yes. confirm is required.
func (d *Deck) ClearAll(confirm func() bool) bool {
	if confirm == nil || !confirm() {
		return false
	}
	d.main = nil
	d.life = nil
	return true
}
