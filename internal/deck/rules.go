package deck

import (
	"math"
	"strings"

	"github.com/youruser/talingchan-deck/internal/cards"
)

// Rules is the data that drives deck legality. The engine holds no
// card-specific literals of its own.
type Rules struct {
	MainDeckLimit    int
	LifeDeckLimit    int
	DefaultCopyLimit int

	// LifeMarker flags a life card when found in its Name or RuleName.
	LifeMarker string

	// ExclusiveRestrictionTypes are the RestrictionTypeGroupID values under
	// which only one RuleName per GroupID may be in the main deck.
	ExclusiveRestrictionTypes []string

	ExclusiveAvatar ExclusiveAvatarRule
}

// ExclusiveAvatarRule keeps one named card and any AvatarType card whose
// Symbol differs from Symbol out of the same main deck. An empty RuleName
// disables the rule.
type ExclusiveAvatarRule struct {
	RuleName   string
	Symbol     string
	AvatarType string
}

// DefaultRules returns the Battle of Talingchan rule set.
func DefaultRules() Rules {
	return Rules{
		MainDeckLimit:             50,
		LifeDeckLimit:             5,
		DefaultCopyLimit:          4,
		LifeMarker:                "_Life",
		ExclusiveRestrictionTypes: []string{"Choice", "Incompatible"},
		ExclusiveAvatar: ExclusiveAvatarRule{
			RuleName:   "เมียพระอิศวร",
			Symbol:     "เทพ",
			AvatarType: cards.TypeAvatar,
		},
	}
}

// IsLifeCard reports whether c may only go in the life deck.
func (r Rules) IsLifeCard(c cards.Card) bool {
	if r.LifeMarker == "" {
		return false
	}
	return strings.Contains(c.Name, r.LifeMarker) || strings.Contains(c.RuleName, r.LifeMarker)
}

// EffectiveLimit is AllowedCopies when set, else DefaultCopyLimit. Zero means
// banned; cards.NoCopyLimit yields math.MaxInt.
func (r Rules) EffectiveLimit(c cards.Card) int {
	switch {
	case c.AllowedCopies == nil:
		return r.DefaultCopyLimit
	case *c.AllowedCopies < 0:
		return math.MaxInt
	}
	return *c.AllowedCopies
}

func (r Rules) exclusiveRestriction(kind string) bool {
	kind = strings.TrimSpace(kind)
	for _, k := range r.ExclusiveRestrictionTypes {
		if strings.TrimSpace(k) == kind {
			return true
		}
	}
	return false
}

func (a ExclusiveAvatarRule) enabled() bool { return a.RuleName != "" }

func (a ExclusiveAvatarRule) isSpecial(c cards.Card) bool {
	return a.enabled() && c.RuleName == a.RuleName
}

// disqualifies reports whether c is an avatar that cannot share a deck with
// the special card. The special card never disqualifies itself.
func (a ExclusiveAvatarRule) disqualifies(c cards.Card) bool {
	return a.enabled() &&
		c.RuleName != a.RuleName &&
		c.Type == a.AvatarType &&
		c.Symbol.Trimmed() != a.Symbol
}
