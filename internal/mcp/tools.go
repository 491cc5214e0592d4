package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/session"
)

const (
	// searchLimit caps the cards returned by search_cards.
	searchLimit = 50
	catalogWait = 5 * time.Second
)

// filterArgs maps tool argument names to filter categories.
var filterArgs = []struct {
	arg string
	cat cards.Category
}{
	{"type", cards.CategoryType},
	{"symbol", cards.CategorySymbol},
	{"cost", cards.CategoryCost},
	{"c_color", cards.CategoryCColor},
	{"gem", cards.CategoryGem},
	{"g_color", cards.CategoryGColor},
}

// Tools exposes one deck session over MCP (one per stdio process).
type Tools struct {
	Catalog *cards.Catalog
	Session *session.Session
}

// NewTools returns tools bound to catalog and sess.
func NewTools(catalog *cards.Catalog, sess *session.Session) *Tools {
	return &Tools{Catalog: catalog, Session: sess}
}

// RegisterTools adds all deck tools to the MCP server.
func (t *Tools) RegisterTools(s *server.MCPServer) {
	s.AddTool(searchCardsTool(), t.handleSearchCards)
	s.AddTool(filterOptionsTool(), t.handleFilterOptions)
	s.AddTool(addCardTool(), t.handleAddCard)
	s.AddTool(removeCardTool(), t.handleRemoveCard)
	s.AddTool(getDeckTool(), t.handleGetDeck)
	s.AddTool(setNamesTool(), t.handleSetNames)
	s.AddTool(clearDecksTool(), t.handleClearDecks)
}

// --- Tool definitions ---

func searchCardsTool() mcp.Tool {
	opts := []mcp.ToolOption{
		mcp.WithDescription("Search the card catalog. The query matches Name or RuleName, case-insensitively. " +
			"Each filter takes comma-separated values; values within a filter are OR-ed, filters are AND-ed."),
		mcp.WithString("query", mcp.Description("Substring to look for in Name or RuleName")),
	}
	for _, f := range filterArgs {
		opts = append(opts, mcp.WithString(f.arg, mcp.Description("Comma-separated "+string(f.cat)+" values")))
	}
	return mcp.NewTool("search_cards", opts...)
}

func filterOptionsTool() mcp.Tool {
	return mcp.NewTool("filter_options",
		mcp.WithDescription("List the distinct values available for each filter category. Read-only."),
	)
}

func addCardTool() mcp.Tool {
	return mcp.NewTool("add_card",
		mcp.WithDescription("Add one copy of a card by RuleName. deck is 'main', 'life' or 'pick' "+
			"(pick sends life cards to the life deck and everything else to the main deck)."),
		mcp.WithString("rule_name", mcp.Required(), mcp.Description("RuleName of the card")),
		mcp.WithString("deck", mcp.Description("main, life or pick (default pick)")),
	)
}

func removeCardTool() mcp.Tool {
	return mcp.NewTool("remove_card",
		mcp.WithDescription("Remove one copy of a card from the main deck, or the card from the life deck."),
		mcp.WithString("rule_name", mcp.Required(), mcp.Description("RuleName of the card")),
		mcp.WithString("deck", mcp.Description("main or life (default main)")),
	)
}

func getDeckTool() mcp.Tool {
	return mcp.NewTool("get_deck",
		mcp.WithDescription("Get both decks grouped for display, their totals and the text export. Read-only."),
	)
}

func setNamesTool() mcp.Tool {
	return mcp.NewTool("set_names",
		mcp.WithDescription("Set the deck name and player name used by exports."),
		mcp.WithString("deck_name", mcp.Required(), mcp.Description("Deck name")),
		mcp.WithString("player_name", mcp.Description("Player name")),
	)
}

func clearDecksTool() mcp.Tool {
	return mcp.NewTool("clear_decks",
		mcp.WithDescription("Empty both decks. Nothing happens unless confirm is true."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description("true to clear")),
	)
}

// --- Tool handlers ---

func (t *Tools) handleSearchCards(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opt := cards.FilterOptions{
		Query:   request.GetString("query", ""),
		Filters: cards.Selection{},
	}
	for _, f := range filterArgs {
		for _, v := range strings.Split(request.GetString(f.arg, ""), ",") {
			if v = strings.TrimSpace(v); v != "" {
				opt.Filters[f.cat] = append(opt.Filters[f.cat], v)
			}
		}
	}
	waitCtx, cancel := context.WithTimeout(ctx, catalogWait)
	defer cancel()
	if err := t.Catalog.Wait(waitCtx); err != nil {
		return mcp.NewToolResultError("The catalog is still loading. Try again shortly."), nil
	}
	found := t.Catalog.Search(opt)
	resp := searchResponse{Count: len(found)}
	for i, c := range found {
		if i == searchLimit {
			resp.Truncated = true
			break
		}
		resp.Cards = append(resp.Cards, summarize(c))
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func (t *Tools) handleFilterOptions(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(respondJSON(t.Catalog.Index())), nil
}

func (t *Tools) handleAddCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("rule_name", "")
	card, ok := t.Catalog.Lookup(name)
	if !ok {
		return mcp.NewToolResultErrorf("Unknown card %q. Use search_cards to find the RuleName.", name), nil
	}
	var err error
	switch target := request.GetString("deck", "pick"); target {
	case "main":
		err = t.Session.AddToMain(card)
	case "life":
		err = t.Session.AddToLife(card)
	case "pick", "":
		err = t.Session.Pick(card)
	default:
		return mcp.NewToolResultErrorf("Invalid deck %q: must be main, life or pick.", target), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot add %s: %v", card.Name, err), nil
	}
	return t.deckResult()
}

func (t *Tools) handleRemoveCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("rule_name", "")
	var err error
	// removing a card that is not in the deck leaves it unchanged
	switch target := request.GetString("deck", "main"); target {
	case "main", "":
		_, err = t.Session.RemoveFromMain(name)
	case "life":
		_, err = t.Session.RemoveFromLife(name)
	default:
		return mcp.NewToolResultErrorf("Invalid deck %q: must be main or life.", target), nil
	}
	if err != nil {
		return mcp.NewToolResultErrorf("Error removing card: %v", err), nil
	}
	return t.deckResult()
}

func (t *Tools) handleGetDeck(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return t.deckResult()
}

func (t *Tools) handleSetNames(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	err := t.Session.SetNames(request.GetString("deck_name", ""), request.GetString("player_name", ""))
	if err != nil {
		return mcp.NewToolResultErrorf("Error setting names: %v", err), nil
	}
	return t.deckResult()
}

func (t *Tools) handleClearDecks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	confirm := request.GetBool("confirm", false)
	cleared, err := t.Session.ClearAll(func() bool { return confirm })
	if err != nil {
		return mcp.NewToolResultErrorf("Error clearing decks: %v", err), nil
	}
	if !cleared {
		return mcp.NewToolResultText(`{"cleared": false}`), nil
	}
	return t.deckResult()
}

// --- Responses ---

type cardSummary struct {
	Name     string `json:"name"`
	RuleName string `json:"ruleName"`
	Type     string `json:"type,omitempty"`
	Symbol   string `json:"symbol,omitempty"`
	Cost     string `json:"cost,omitempty"`
	Gem      string `json:"gem,omitempty"`
	OnlyOne  bool   `json:"onlyOne,omitempty"`
	Limit    *int   `json:"allowedCopies,omitempty"`
}

type searchResponse struct {
	Count     int           `json:"count"`
	Truncated bool          `json:"truncated,omitempty"`
	Cards     []cardSummary `json:"cards"`
}

type deckLine struct {
	Count    int    `json:"count"`
	Name     string `json:"name"`
	RuleName string `json:"ruleName"`
}

type deckGroup struct {
	Name  string     `json:"name"`
	Total int        `json:"total"`
	Cards []deckLine `json:"cards"`
}

type deckResponse struct {
	DeckName   string      `json:"deckName"`
	PlayerName string      `json:"playerName"`
	MainTotal  string      `json:"mainTotal"`
	LifeTotal  string      `json:"lifeTotal"`
	Groups     []deckGroup `json:"groups"`
	Life       []deckLine  `json:"life"`
	Text       string      `json:"text"`
}

func summarize(c cards.Card) cardSummary {
	return cardSummary{
		Name:     c.Name,
		RuleName: c.RuleName,
		Type:     c.Type,
		Symbol:   c.Symbol.Trimmed(),
		Cost:     c.Cost.Trimmed(),
		Gem:      c.Gem.Trimmed(),
		OnlyOne:  bool(c.OnlyOne),
		Limit:    c.AllowedCopies,
	}
}

func (t *Tools) deckResult() (*mcp.CallToolResult, error) {
	v, err := t.Session.View()
	if err != nil {
		return mcp.NewToolResultErrorf("Error reading deck: %v", err), nil
	}
	snap, err := t.Session.Snapshot()
	if err != nil {
		return mcp.NewToolResultErrorf("Error reading deck: %v", err), nil
	}
	resp := deckResponse{
		DeckName:   v.DeckName,
		PlayerName: v.PlayerName,
		MainTotal:  fmt.Sprintf("%d/%d", v.MainTotal, v.MainLimit),
		LifeTotal:  fmt.Sprintf("%d/%d", len(v.Life), v.LifeLimit),
		Text:       snap.Text(),
	}
	groups := append(v.Groups, v.Other)
	for _, g := range groups {
		if len(g.Entries) == 0 {
			continue
		}
		dg := deckGroup{Name: g.Name, Total: g.Total}
		for _, e := range g.Entries {
			dg.Cards = append(dg.Cards, deckLine{Count: e.Count, Name: e.Name, RuleName: e.RuleName})
		}
		resp.Groups = append(resp.Groups, dg)
	}
	for _, c := range v.Life {
		resp.Life = append(resp.Life, deckLine{Count: 1, Name: c.Name, RuleName: c.RuleName})
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func respondJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
