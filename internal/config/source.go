package config

import (
	"github.com/redis/go-redis/v9"
	"github.com/youruser/talingchan-deck/internal/cards"
	"github.com/youruser/talingchan-deck/internal/util"
	"go.uber.org/zap"
)

// CatalogSource builds the catalog source described by c: the CSV files in
// dataDir when it is non-empty, else the card service with the redis cache
// when one is configured. The returned func releases the redis client.
func (c *Config) CatalogSource(dataDir string, log *zap.Logger) (cards.Source, func() error) {
	if dataDir != "" {
		return cards.DirSource(dataDir), func() error { return nil }
	}
	client := cards.NewClient(c.APIURL, log)
	client.HTTP = util.NewHTTPClient(c.HTTP.CatalogTimeout.Duration)
	if c.Redis.Addr == "" {
		return client, func() error { return nil }
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     c.Redis.Addr,
		Password: c.Redis.Password,
		DB:       c.Redis.DB,
	})
	client.Cache = cards.NewRedisCache(rdb, client.BaseURL, c.Redis.TTL.Duration)
	log.Info("catalog cache enabled", zap.String("redis", c.Redis.Addr))
	return client, rdb.Close
}
