package cards

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Card types with a fixed display position. Anything else is "other".
const (
	TypeAvatar    = "Avatar"
	TypeMagic     = "Magic"
	TypeConstruct = "Construct"
)

// Card is one catalog record. Cards are immutable once the catalog is loaded;
// RuleName is the identity key, Name is only for display.
type Card struct {
	Name                   string `json:"Name"`
	RuleName               string `json:"RuleName"`
	Type                   string `json:"Type"`
	Symbol                 Value  `json:"Symbol"`
	Cost                   Value  `json:"Cost"`
	CColor                 Value  `json:"C Color"`
	Gem                    Value  `json:"Gem"`
	GColor                 Value  `json:"G Color"`
	OnlyOne                Flag   `json:"is_only_one"`
	AllowedCopies          *int   `json:"AllowedCopies"`
	RestrictionTypeGroupID string `json:"RestrictionTypeGroupID"`
	GroupID                Value  `json:"GroupID"`
	ImageURL               string `json:"image_url"`
}

// UnmarshalJSON normalizes AllowedCopies: "" and null mean "use the default
// limit", any other string is read as a number. RestrictionTypeGroupID is
// trimmed the same way the CSV loader trims it.
func (c *Card) UnmarshalJSON(b []byte) error {
	type alias Card
	aux := struct {
		*alias
		AllowedCopies json.RawMessage `json:"AllowedCopies"`
	}{alias: (*alias)(c)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	c.AllowedCopies = parseAllowedCopies(aux.AllowedCopies)
	c.RestrictionTypeGroupID = strings.TrimSpace(c.RestrictionTypeGroupID)
	return nil
}

func parseAllowedCopies(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	s := string(raw)
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil
		}
	}
	return ParseCopies(s)
}

// NoCopyLimit is the AllowedCopies of a card whose value is not a number.
// Such a card has no per-card limit; only the deck size bounds it.
const NoCopyLimit = -1

// ParseCopies reads an AllowedCopies cell. Blank input yields nil and
// non-numeric input NoCopyLimit. NoCopyLimit itself reads back unchanged;
// any other negative number is 0.
func ParseCopies(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		return Copies(NoCopyLimit)
	}
	switch {
	case math.IsInf(f, 1) || f > math.MaxInt32 || f == NoCopyLimit:
		return Copies(NoCopyLimit)
	case f < 0:
		return Copies(0)
	}
	return Copies(int(f))
}

// Copies is a convenience for building cards with an explicit AllowedCopies.
func Copies(n int) *int { return &n }

// Attr returns the trimmed string value of a filter category.
func (c Card) Attr(cat Category) string {
	switch cat {
	case CategoryType:
		return strings.TrimSpace(c.Type)
	case CategorySymbol:
		return c.Symbol.Trimmed()
	case CategoryCost:
		return c.Cost.Trimmed()
	case CategoryCColor:
		return c.CColor.Trimmed()
	case CategoryGem:
		return c.Gem.Trimmed()
	case CategoryGColor:
		return c.GColor.Trimmed()
	}
	return ""
}

// Value is a catalog attribute that may arrive as a JSON string, number,
// boolean or null. It is kept in its textual form.
type Value string

func (v *Value) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0 || string(b) == "null":
		*v = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*v = Value(s)
	default:
		*v = Value(b)
	}
	return nil
}

func (v Value) MarshalJSON() ([]byte, error) {
	s := string(v)
	if _, ok := v.Number(); ok && isJSONNumber(s) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func isJSONNumber(s string) bool {
	if s == "" || !(s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) {
		return false
	}
	return json.Valid([]byte(s))
}

func (v Value) String() string { return string(v) }

func (v Value) Trimmed() string { return strings.TrimSpace(string(v)) }

// Number parses the trimmed value as a float.
func (v Value) Number() (float64, bool) {
	s := v.Trimmed()
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Flag is a boolean-ish catalog field: true/false, 1/0, "true"/"1"/"yes".
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	var v Value
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*f = Flag(ParseFlag(string(v)))
	return nil
}

// ParseFlag reads a boolean-ish cell.
func ParseFlag(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "y":
		return true
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		return f != 0
	}
	return false
}
