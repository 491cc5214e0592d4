package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/deck"
	"github.com/youruser/talingchan-deck/internal/export"
	"go.uber.org/zap"
)

// ErrClosed is returned by operations on a closed session.
var ErrClosed = errors.New("session closed")

// Routing decides what a plain pick of a life card does.
type Routing string

const (
	// RouteRedirect sends a picked life card to the life deck.
	RouteRedirect Routing = "redirect"
	// RouteReject refuses it with deck.ErrLifeCardInMain.
	RouteReject Routing = "reject"
)

// ParseRouting accepts "redirect" or "reject"; anything else is an error.
func ParseRouting(s string) (Routing, error) {
	switch Routing(s) {
	case RouteRedirect, RouteReject:
		return Routing(s), nil
	case "":
		return RouteRedirect, nil
	}
	return "", fmt.Errorf("unknown life card routing %q", s)
}

// View is the derived, read-only state of a session.
type View struct {
	ID         string          `json:"id"`
	DeckName   string          `json:"deckName"`
	PlayerName string          `json:"playerName"`
	Main       []deck.Entry    `json:"mainDeck"`
	Groups     []deck.Group    `json:"groups"`
	Other      deck.Group      `json:"other"`
	MainTotal  int             `json:"mainTotal"`
	MainLimit  int             `json:"mainLimit"`
	Life       []cards.Card    `json:"lifeDeck"`
	LifeLimit  int             `json:"lifeLimit"`
	Query      string          `json:"query"`
	Filters    cards.Selection `json:"filters"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

type state struct {
	deck       *deck.Deck
	deckName   string
	playerName string
	query      string
	filters    cards.Selection
	updatedAt  time.Time
	subs       map[int]chan View
	nextSub    int
}

// Session owns one deck in progress. All reads and writes run on the
// session's own goroutine, one at a time, so the deck has a single writer.
type Session struct {
	ID      uuid.UUID
	routing Routing
	log     *zap.Logger

	ops       chan func(*state)
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

// New starts a session with an empty deck.
func New(rules deck.Rules, routing Routing, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	if routing == "" {
		routing = RouteRedirect
	}
	s := &Session{
		ID:      uuid.New(),
		routing: routing,
		ops:     make(chan func(*state)),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	s.log = log.With(zap.String("session", s.ID.String()))
	st := &state{
		deck:      deck.New(rules),
		filters:   cards.Selection{},
		updatedAt: time.Now(),
		subs:      map[int]chan View{},
	}
	go s.run(st)
	return s
}

func (s *Session) run(st *state) {
	defer close(s.done)
	for {
		select {
		case op := <-s.ops:
			op(st)
		case <-s.quit:
			for id, ch := range st.subs {
				close(ch)
				delete(st.subs, id)
			}
			return
		}
	}
}

// Close stops the session goroutine and closes subscriber channels.
func (s *Session) Close() {
	s.closeOnce.Do(func() { close(s.quit) })
	<-s.done
}

// do runs op on the session goroutine and waits for it.
func (s *Session) do(op func(*state)) error {
	finished := make(chan struct{})
	wrapped := func(st *state) {
		defer close(finished)
		op(st)
	}
	select {
	case s.ops <- wrapped:
	case <-s.done:
		return ErrClosed
	}
	<-finished
	return nil
}

// mutate runs op and, when it reports a change, notifies subscribers.
func (s *Session) mutate(op func(*state) (bool, error)) error {
	var opErr error
	err := s.do(func(st *state) {
		changed, err := op(st)
		opErr = err
		if changed {
			st.updatedAt = time.Now()
			s.publish(st)
		}
	})
	if err != nil {
		return err
	}
	return opErr
}

func (s *Session) view(st *state) View {
	main := st.deck.Main()
	p := deck.Present(main)
	r := st.deck.Rules()
	return View{
		ID:         s.ID.String(),
		DeckName:   st.deckName,
		PlayerName: st.playerName,
		Main:       main,
		Groups:     p.Groups(),
		Other:      p.Group(deck.GroupOther),
		MainTotal:  deck.Total(main),
		MainLimit:  r.MainDeckLimit,
		Life:       st.deck.Life(),
		LifeLimit:  r.LifeDeckLimit,
		Query:      st.query,
		Filters:    st.filters.Clone(),
		UpdatedAt:  st.updatedAt,
	}
}

// publish hands the latest view to every subscriber, replacing a view the
// subscriber has not read yet.
func (s *Session) publish(st *state) {
	if len(st.subs) == 0 {
		return
	}
	v := s.view(st)
	for _, ch := range st.subs {
		select {
		case ch <- v:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- v:
			default:
			}
		}
	}
}

// View returns the current state.
func (s *Session) View() (View, error) {
	var v View
	err := s.do(func(st *state) { v = s.view(st) })
	return v, err
}

// Snapshot captures the deck for an export.
func (s *Session) Snapshot() (export.Snapshot, error) {
	var snap export.Snapshot
	err := s.do(func(st *state) {
		snap = export.NewSnapshot(st.deckName, st.playerName, st.deck)
	})
	return snap, err
}

// Subscribe returns a channel receiving the view after every change, starting
// with the current one, and a cancel func. The channel is closed by cancel or
// when the session closes.
func (s *Session) Subscribe() (<-chan View, func(), error) {
	ch := make(chan View, 1)
	var id int
	err := s.do(func(st *state) {
		id = st.nextSub
		st.nextSub++
		st.subs[id] = ch
		ch <- s.view(st)
	})
	if err != nil {
		return nil, nil, err
	}
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.do(func(st *state) {
				if c, ok := st.subs[id]; ok {
					close(c)
					delete(st.subs, id)
				}
			})
		})
	}
	return ch, cancel, nil
}

// AddToMain adds one copy of c to the main deck.
func (s *Session) AddToMain(c cards.Card) error {
	return s.mutate(func(st *state) (bool, error) {
		if err := st.deck.AddToMain(c); err != nil {
			s.log.Debug("main deck add rejected", zap.String("card", c.RuleName), zap.Error(err))
			return false, err
		}
		return true, nil
	})
}

// AddToLife adds c to the life deck.
func (s *Session) AddToLife(c cards.Card) error {
	return s.mutate(func(st *state) (bool, error) {
		if err := st.deck.AddToLife(c); err != nil {
			s.log.Debug("life deck add rejected", zap.String("card", c.RuleName), zap.Error(err))
			return false, err
		}
		return true, nil
	})
}

// Pick is the gallery click: life cards follow the session's routing,
// everything else goes to the main deck.
func (s *Session) Pick(c cards.Card) error {
	return s.mutate(func(st *state) (bool, error) {
		var err error
		if st.deck.Rules().IsLifeCard(c) && s.routing == RouteRedirect {
			err = st.deck.AddToLife(c)
		} else {
			err = st.deck.AddToMain(c)
		}
		if err != nil {
			s.log.Debug("pick rejected", zap.String("card", c.RuleName), zap.Error(err))
			return false, err
		}
		return true, nil
	})
}

// RemoveFromMain drops one copy of ruleName and reports whether it was there.
func (s *Session) RemoveFromMain(ruleName string) (bool, error) {
	var removed bool
	err := s.mutate(func(st *state) (bool, error) {
		removed = st.deck.RemoveFromMain(ruleName)
		return removed, nil
	})
	return removed, err
}

// RemoveFromLife removes ruleName from the life deck.
func (s *Session) RemoveFromLife(ruleName string) (bool, error) {
	var removed bool
	err := s.mutate(func(st *state) (bool, error) {
		removed = st.deck.RemoveFromLife(ruleName)
		return removed, nil
	})
	return removed, err
}

// ClearAll empties both decks when confirm answers yes. confirm runs on the
// session goroutine and must not call back into the session.
func (s *Session) ClearAll(confirm func() bool) (bool, error) {
	var cleared bool
	err := s.mutate(func(st *state) (bool, error) {
		cleared = st.deck.ClearAll(confirm)
		if cleared {
			s.log.Info("decks cleared")
		}
		return cleared, nil
	})
	return cleared, err
}

// SetNames sets the deck and player names used by exports.
func (s *Session) SetNames(deckName, playerName string) error {
	return s.mutate(func(st *state) (bool, error) {
		st.deckName = deckName
		st.playerName = playerName
		return true, nil
	})
}

// SetQuery sets the search text.
func (s *Session) SetQuery(q string) error {
	return s.mutate(func(st *state) (bool, error) {
		st.query = q
		return true, nil
	})
}

// ToggleFilter selects or deselects value within cat.
func (s *Session) ToggleFilter(cat cards.Category, value string) error {
	return s.mutate(func(st *state) (bool, error) {
		st.filters = st.filters.Toggle(cat, value)
		return true, nil
	})
}

// FilterOptions returns the session's current query and selection.
func (s *Session) FilterOptions() (cards.FilterOptions, error) {
	var opt cards.FilterOptions
	err := s.do(func(st *state) {
		opt = cards.FilterOptions{Query: st.query, Filters: st.filters.Clone()}
	})
	return opt, err
}

// List captures the deck as a ListFile.
func (s *Session) List() (*deck.ListFile, error) {
	var lf *deck.ListFile
	err := s.do(func(st *state) {
		lf = deck.NewListFile(st.deckName, st.playerName, st.deck)
	})
	return lf, err
}
