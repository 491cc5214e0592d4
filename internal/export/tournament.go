package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

// SpreadsheetContentType is the media type of the tournament sheet.
const SpreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type tournamentRequest struct {
	DeckName   string       `json:"deckName"`
	PlayerName string       `json:"playerName"`
	MainDeck   []deck.Entry `json:"mainDeck"`
	LifeDeck   []cards.Card `json:"lifeDeck"`
}

// TournamentClient asks the card service to build the tournament spreadsheet.
type TournamentClient struct {
	BaseURL string
	HTTP    *http.Client
	Log     *zap.Logger
}

// NewTournamentClient returns a client for baseURL.
func NewTournamentClient(baseURL string, timeout time.Duration, log *zap.Logger) *TournamentClient {
	if baseURL == "" {
		baseURL = cards.DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &TournamentClient{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    util.NewHTTPClient(timeout),
		Log:     log,
	}
}

// ValidateTournament checks the names and that both decks are exactly full.
func ValidateTournament(s Snapshot) error {
	if blank(s.DeckName) {
		return ErrDeckNameRequired
	}
	if blank(s.PlayerName) {
		return ErrPlayerNameRequired
	}
	if total := s.MainTotal(); total != s.MainLimit || len(s.Life) != s.LifeLimit {
		return fmt.Errorf("%w: main deck needs %d cards (has %d), life deck needs %d (has %d)",
			ErrIncompleteDeck, s.MainLimit, total, s.LifeLimit, len(s.Life))
	}
	return nil
}

// TournamentFileName is decklist_<player>.xlsx with whitespace replaced.
func TournamentFileName(player string) string {
	return "decklist_" + util.Slug(player, "player") + ".xlsx"
}

// Generate validates s and posts it to {BaseURL}/api/generate-tournament-pdf.
// The response body is the spreadsheet.
func (c *TournamentClient) Generate(ctx context.Context, s Snapshot) (*Artifact, error) {
	if err := ValidateTournament(s); err != nil {
		return nil, err
	}

	main := s.Main
	if main == nil {
		main = []deck.Entry{}
	}
	life := s.Life
	if life == nil {
		life = []cards.Card{}
	}
	body, err := json.Marshal(tournamentRequest{
		DeckName:   s.DeckName,
		PlayerName: s.PlayerName,
		MainDeck:   main,
		LifeDeck:   life,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrExportFailed, err)
	}

	url := c.BaseURL + "/api/generate-tournament-pdf"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", SpreadsheetContentType)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		c.Log.Error("tournament export request failed", zap.String("url", url), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.Log.Error("tournament export read failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Error("tournament export rejected",
			zap.Int("status", resp.StatusCode), zap.ByteString("body", truncate(data, 512)))
		return nil, fmt.Errorf("%w: server answered %d", ErrExportFailed, resp.StatusCode)
	}

	c.Log.Info("tournament sheet generated",
		zap.String("deck", s.DeckName), zap.String("player", s.PlayerName), zap.Int("bytes", len(data)))
	return &Artifact{
		FileName:    TournamentFileName(s.PlayerName),
		ContentType: SpreadsheetContentType,
		Data:        data,
	}, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
