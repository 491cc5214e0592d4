package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/session"
	"go.uber.org/zap/zaptest"
)

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	catalog := cards.NewLoadedCatalog([]cards.Card{
		{Name: "Garuda", RuleName: "Garuda", Type: cards.TypeAvatar, Cost: "3"},
		{Name: "Fire Bolt", RuleName: "Fire Bolt", Type: cards.TypeMagic, Cost: "1"},
		{Name: "Crown", RuleName: "Crown", Type: cards.TypeConstruct, OnlyOne: true},
		{Name: "Scepter", RuleName: "Scepter", Type: cards.TypeConstruct, OnlyOne: true},
		{Name: "Heart", RuleName: "Heart_Life", Type: cards.TypeMagic},
	})
	sess := session.New(deck.DefaultRules(), session.RouteRedirect, zaptest.NewLogger(t))
	t.Cleanup(sess.Close)
	return NewTools(catalog, sess)
}

func call(t *testing.T, h func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T", res.Content[0])
	}
	return text.Text, res.IsError
}

func TestSearchCards(t *testing.T) {
	tools := newTestTools(t)
	out, isErr := call(t, tools.handleSearchCards, map[string]any{"type": "Avatar, Magic", "cost": "3"})
	if isErr {
		t.Fatal(out)
	}
	var resp searchResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 1 || resp.Cards[0].RuleName != "Garuda" {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestAddAndRemoveCard(t *testing.T) {
	tools := newTestTools(t)

	if out, isErr := call(t, tools.handleAddCard, map[string]any{"rule_name": "Garuda", "deck": "main"}); isErr {
		t.Fatal(out)
	}
	if out, isErr := call(t, tools.handleAddCard, map[string]any{"rule_name": "Heart_Life"}); isErr {
		t.Fatal(out)
	}
	if out, isErr := call(t, tools.handleAddCard, map[string]any{"rule_name": "Crown"}); isErr {
		t.Fatal(out)
	}
	out, isErr := call(t, tools.handleAddCard, map[string]any{"rule_name": "Scepter"})
	if !isErr || !strings.Contains(out, "Only#1") {
		t.Fatalf("second only-one card: %v %s", isErr, out)
	}
	if _, isErr := call(t, tools.handleAddCard, map[string]any{"rule_name": "Dragon"}); !isErr {
		t.Fatal("unknown card accepted")
	}

	out, _ = call(t, tools.handleGetDeck, nil)
	var resp deckResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.MainTotal != "2/50" || resp.LifeTotal != "1/5" {
		t.Fatalf("totals = %s %s", resp.MainTotal, resp.LifeTotal)
	}
	if len(resp.Groups) != 2 || resp.Groups[0].Name != deck.GroupOnlyOne {
		t.Fatalf("groups = %+v", resp.Groups)
	}

	if out, isErr := call(t, tools.handleRemoveCard, map[string]any{"rule_name": "Heart_Life", "deck": "life"}); isErr {
		t.Fatal(out)
	}
	out, isErr = call(t, tools.handleRemoveCard, map[string]any{"rule_name": "Heart_Life", "deck": "life"})
	if isErr {
		t.Fatalf("removing an absent card: %s", out)
	}
	resp = deckResponse{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.MainTotal != "2/50" || resp.LifeTotal != "0/5" {
		t.Fatalf("totals after no-op remove = %s %s", resp.MainTotal, resp.LifeTotal)
	}
}

func TestClearDecksNeedsConfirm(t *testing.T) {
	tools := newTestTools(t)
	call(t, tools.handleAddCard, map[string]any{"rule_name": "Garuda"})

	out, _ := call(t, tools.handleClearDecks, map[string]any{"confirm": false})
	if !strings.Contains(out, `"cleared": false`) {
		t.Fatalf("unconfirmed clear: %s", out)
	}
	out, _ = call(t, tools.handleClearDecks, map[string]any{"confirm": true})
	if !strings.Contains(out, `"mainTotal":"0/50"`) {
		t.Fatalf("confirmed clear: %s", out)
	}
}

func TestSetNamesShowsInText(t *testing.T) {
	tools := newTestTools(t)
	call(t, tools.handleAddCard, map[string]any{"rule_name": "Fire Bolt"})
	out, _ := call(t, tools.handleSetNames, map[string]any{"deck_name": "Burn", "player_name": "Som"})
	var resp deckResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.DeckName != "Burn" || !strings.HasPrefix(resp.Text, "# Burn\n## Magic (1)\n1x Fire Bolt") {
		t.Fatalf("resp = %+v", resp)
	}
}
