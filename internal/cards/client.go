package cards

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

// Source yields a full catalog.
type Source interface {
	FetchCatalog(ctx context.Context) ([]Card, error)
}

// Cache stores the raw catalog payload between fetches.
type Cache interface {
	Get(ctx context.Context) ([]byte, bool, error)
	Set(ctx context.Context, payload []byte) error
}

// Client fetches the catalog from the card service at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Cache   Cache
	Log     *zap.Logger
}

// NewClient returns a Client for baseURL with the default HTTP timeout.
func NewClient(baseURL string, log *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    util.NewHTTPClient(0),
		Log:     log,
	}
}

type catalogPayload struct {
	Data []Card `json:"data"`
}

// DecodeCatalog parses a `{"data": [...]}` payload.
func DecodeCatalog(payload []byte) ([]Card, error) {
	var p catalogPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if p.Data == nil {
		return nil, fmt.Errorf("decode catalog: missing data field")
	}
	return p.Data, nil
}

// FetchCatalog performs GET {BaseURL}/api/cards. A configured cache is
// consulted first and filled after a successful fetch; cache errors are
// logged and otherwise ignored.
func (c *Client) FetchCatalog(ctx context.Context) ([]Card, error) {
	if c.Cache != nil {
		payload, ok, err := c.Cache.Get(ctx)
		if err != nil {
			c.Log.Warn("catalog cache read failed", zap.Error(err))
		} else if ok {
			cs, err := DecodeCatalog(payload)
			if err == nil {
				c.Log.Debug("catalog served from cache", zap.Int("cards", len(cs)))
				return cs, nil
			}
			c.Log.Warn("cached catalog is corrupt, refetching", zap.Error(err))
		}
	}

	url := c.BaseURL + "/api/cards"
	payload, err := util.GetBytes(ctx, c.HTTP, url)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	cs, err := DecodeCatalog(payload)
	if err != nil {
		return nil, err
	}
	c.Log.Info("catalog fetched", zap.String("url", url), zap.Int("cards", len(cs)))

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, payload); err != nil {
			c.Log.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return cs, nil
}

// DirSource serves the catalog from CSV files in a data directory.
type DirSource string

func (d DirSource) FetchCatalog(context.Context) ([]Card, error) {
	return LoadCardsFromDataDir(string(d))
}
