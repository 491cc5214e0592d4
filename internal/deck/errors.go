package deck

// Violation is a rejected deck operation. The deck is unchanged whenever one
// is returned. Returned errors wrap a Violation with card details; use
// errors.Is to test the kind or errors.As to extract it.
type Violation string

func (v Violation) Error() string { return string(v) }

const (
	ErrLifeCardInMain   Violation = "life cards go in the life deck (right-click to add)"
	ErrExclusiveAvatar  Violation = "exclusive avatar conflict"
	ErrMainDeckFull     Violation = "main deck is full"
	ErrBanned           Violation = "card is banned"
	ErrCopyLimit        Violation = "copy limit reached"
	ErrOnlyOneConflict  Violation = "only one Only#1 card is allowed in the deck"
	ErrRestrictionGroup Violation = "another card from the same restriction group is already in the deck"
	ErrNotLifeCard      Violation = "not a life card"
	ErrLifeDeckFull     Violation = "life deck is full"
	ErrLifeDuplicate    Violation = "card is already in the life deck"
)

var violationKinds = map[Violation]string{
	ErrLifeCardInMain:   "life_card_in_main",
	ErrExclusiveAvatar:  "exclusive_avatar",
	ErrMainDeckFull:     "main_deck_full",
	ErrBanned:           "banned",
	ErrCopyLimit:        "copy_limit",
	ErrOnlyOneConflict:  "only_one_conflict",
	ErrRestrictionGroup: "restriction_group",
	ErrNotLifeCard:      "not_life_card",
	ErrLifeDeckFull:     "life_deck_full",
	ErrLifeDuplicate:    "life_duplicate",
}

// Kind returns a stable machine-readable name for the violation.
func (v Violation) Kind() string {
	if k, ok := violationKinds[v]; ok {
		return k
	}
	return "violation"
}
