package export

import (
	"errors"
	"strings"

	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/util"
)

// Snapshot is the deck state captured when an export is requested. Later
// edits to the session do not reach it.
type Snapshot struct {
	DeckName   string
	PlayerName string
	Main       []deck.Entry
	Life       []cards.Card
	MainLimit  int
	LifeLimit  int
}

// NewSnapshot copies d together with the deck and player names.
func NewSnapshot(deckName, playerName string, d *deck.Deck) Snapshot {
	r := d.Rules()
	return Snapshot{
		DeckName:   deckName,
		PlayerName: playerName,
		Main:       d.Main(),
		Life:       d.Life(),
		MainLimit:  r.MainDeckLimit,
		LifeLimit:  r.LifeDeckLimit,
	}
}

// MainTotal sums the main deck counts.
func (s Snapshot) MainTotal() int { return deck.Total(s.Main) }

// Text renders the deck list as plain text.
func (s Snapshot) Text() string {
	return deck.ExportDeckText(s.DeckName, s.Main, s.Life)
}

// ValidationError is an export precondition that failed. No request is made
// and no artifact is produced when one is returned.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

const (
	ErrDeckNameRequired   ValidationError = "deck name is required"
	ErrPlayerNameRequired ValidationError = "player name is required"
	ErrIncompleteDeck     ValidationError = "deck is incomplete"
)

// ErrExportFailed wraps transport and server failures while generating an artifact.
var ErrExportFailed = errors.New("export failed")

// Artifact is a generated export file.
type Artifact struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TextFileName is decklist-<deck>.txt with whitespace replaced.
func TextFileName(deckName string) string {
	return "decklist-" + util.Slug(deckName, "untitled") + ".txt"
}

// TextArtifact wraps the plain text list. It has no preconditions.
func TextArtifact(s Snapshot) *Artifact {
	return &Artifact{
		FileName:    TextFileName(s.DeckName),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(s.Text()),
	}
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }
