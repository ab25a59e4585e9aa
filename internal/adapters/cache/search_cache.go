package cache

import (
	"fmt"
	"fxconvert/internal/domain"
	"slices"

	"github.com/dgraph-io/ristretto"
)

// RistrettoSearchCache keeps catalog search results keyed by normalized query.
type RistrettoSearchCache struct {
	cache *ristretto.Cache
}

func NewSearchCache(maxItems int64) (*RistrettoSearchCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create search cache failed: %w", err)
	}
	return &RistrettoSearchCache{cache: c}, nil
}

func (c *RistrettoSearchCache) Get(query string) ([]domain.Currency, bool) {
	if v, ok := c.cache.Get(query); ok {
		result, ok := v.([]domain.Currency)
		return slices.Clone(result), ok
	}
	return nil, false
}

func (c *RistrettoSearchCache) Set(query string, result []domain.Currency) {
	c.cache.Set(query, slices.Clone(result), 1)
}

func (c *RistrettoSearchCache) Clear() { c.cache.Clear() }

func (c *RistrettoSearchCache) Close() { c.cache.Close() }
