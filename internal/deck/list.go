package deck

import (
	"fmt"
	"os"

	"github.com/youruser/talingchan-deck/internal/cards"
	"gopkg.in/yaml.v3"
)

// ListFile is a deck list document used by the command line tools.
type ListFile struct {
	Name   string      `yaml:"name"`
	Player string      `yaml:"player,omitempty"`
	Main   []ListEntry `yaml:"main"`
	Life   []string    `yaml:"life"`
}

// ListEntry is one main-deck line of a ListFile.
type ListEntry struct {
	RuleName string `yaml:"rule_name"`
	Count    int    `yaml:"count"`
}

// ParseListFile reads a YAML deck list.
func ParseListFile(path string) (*ListFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseList(data)
}

// ParseList decodes a YAML deck list.
func ParseList(data []byte) (*ListFile, error) {
	var lf ListFile
	if err := yaml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse deck YAML: %w", err)
	}
	return &lf, nil
}

// NewListFile captures a deck as a ListFile.
func NewListFile(name, player string, d *Deck) *ListFile {
	lf := &ListFile{Name: name, Player: player, Main: []ListEntry{}, Life: []string{}}
	for _, e := range d.main {
		lf.Main = append(lf.Main, ListEntry{RuleName: e.RuleName, Count: e.Count})
	}
	for _, c := range d.life {
		lf.Life = append(lf.Life, c.RuleName)
	}
	return lf
}

// Marshal encodes the list as YAML.
func (lf *ListFile) Marshal() ([]byte, error) {
	return yaml.Marshal(lf)
}

// Lookup resolves a RuleName to a catalog card.
type Lookup func(ruleName string) (cards.Card, bool)

// Build replays the list through the legality engine, one add per copy. Every
// rejected add and unknown card is collected; the returned deck holds what was
// accepted.
func (lf *ListFile) Build(rules Rules, lookup Lookup) (*Deck, []error) {
	d := New(rules)
	var errs []error
	for _, le := range lf.Main {
		c, ok := lookup(le.RuleName)
		if !ok {
			errs = append(errs, fmt.Errorf("main deck: unknown card %q", le.RuleName))
			continue
		}
		if le.Count < 1 {
			errs = append(errs, fmt.Errorf("main deck: %q has count %d", le.RuleName, le.Count))
			continue
		}
		for i := 0; i < le.Count; i++ {
			if err := d.AddToMain(c); err != nil {
				errs = append(errs, fmt.Errorf("main deck: %w", err))
				break
			}
		}
	}
	for _, rn := range lf.Life {
		c, ok := lookup(rn)
		if !ok {
			errs = append(errs, fmt.Errorf("life deck: unknown card %q", rn))
			continue
		}
		if err := d.AddToLife(c); err != nil {
			errs = append(errs, fmt.Errorf("life deck: %w", err))
		}
	}
	return d, errs
}
