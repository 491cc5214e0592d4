package cards

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Catalog holds the session's card list. It starts out loading, is filled
// exactly once, and is read-only afterwards. A failed load leaves it ready
// and empty.
type Catalog struct {
	once   sync.Once
	ready  chan struct{}
	mu     sync.RWMutex
	cards  []Card
	byRule map[string]int
	err    error
}

// NewCatalog returns an empty catalog in the loading state.
func NewCatalog() *Catalog {
	return &Catalog{ready: make(chan struct{}), byRule: map[string]int{}}
}

// NewLoadedCatalog returns a catalog that is already ready with cs.
func NewLoadedCatalog(cs []Card) *Catalog {
	c := NewCatalog()
	c.once.Do(func() { c.set(cs, nil) })
	return c
}

// Load fetches from src once. Later calls are no-ops. Errors are logged and
// the catalog degrades to empty; there is no retry.
func (c *Catalog) Load(ctx context.Context, src Source, log *zap.Logger) {
	c.once.Do(func() {
		cs, err := src.FetchCatalog(ctx)
		if err != nil {
			if log != nil {
				log.Error("error fetching card data", zap.Error(err))
			}
			cs = nil
		}
		c.set(cs, err)
	})
}

func (c *Catalog) set(cs []Card, err error) {
	c.mu.Lock()
	c.cards = cs
	c.err = err
	for i, card := range cs {
		if _, dup := c.byRule[card.RuleName]; !dup {
			c.byRule[card.RuleName] = i
		}
	}
	c.mu.Unlock()
	close(c.ready)
}

// Loading reports whether the catalog is still waiting for its first load.
func (c *Catalog) Loading() bool {
	select {
	case <-c.ready:
		return false
	default:
		return true
	}
}

// Wait blocks until the catalog is ready or ctx is done.
func (c *Catalog) Wait(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Cards returns the loaded cards and whether loading is still in progress.
// The returned slice must not be modified.
func (c *Catalog) Cards() ([]Card, bool) {
	if c.Loading() {
		return nil, true
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cards, false
}

// Err returns the error of the failed load, if any.
func (c *Catalog) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Lookup finds a card by RuleName.
func (c *Catalog) Lookup(ruleName string) (Card, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i, ok := c.byRule[ruleName]
	if !ok {
		return Card{}, false
	}
	return c.cards[i], true
}

// Index builds the filter index of the current cards.
func (c *Catalog) Index() Index {
	cs, _ := c.Cards()
	return BuildIndex(cs)
}

// Search applies the filter predicate to the current cards.
func (c *Catalog) Search(opt FilterOptions) []Card {
	cs, _ := c.Cards()
	return Filter(cs, opt)
}
