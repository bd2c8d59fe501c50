package cms

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"tattoo-studio/pkg/metrics"
)

// Cache keeps successful responses for a short time, keyed by operation and
// variables. Failed requests are never stored. Safe for concurrent use.
type Cache struct {
	next    Executor
	entries *cache.Cache
	metrics *metrics.Metrics
}

// NewCache wraps next with a response cache holding entries for ttl.
func NewCache(next Executor, ttl time.Duration, m *metrics.Metrics) *Cache {
	return &Cache{
		next:    next,
		entries: cache.New(ttl, 2*ttl),
		metrics: m,
	}
}

// Do returns a cached response when one is fresh, otherwise delegates.
func (c *Cache) Do(ctx context.Context, req Request) (json.RawMessage, error) {
	key, err := cacheKey(req)
	if err != nil {
		return c.next.Do(ctx, req)
	}

	if cached, found := c.entries.Get(key); found {
		c.metrics.CacheLookup(true)
		return cached.(json.RawMessage), nil
	}
	c.metrics.CacheLookup(false)

	data, err := c.next.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	c.entries.Set(key, data, cache.DefaultExpiration)
	return data, nil
}

// Flush drops every cached response.
func (c *Cache) Flush() {
	c.entries.Flush()
}

// cacheKey hashes the operation name, document and variables. Map keys are
// sorted by encoding/json, so equal variables produce equal keys.
func cacheKey(req Request) (string, error) {
	vars, err := json.Marshal(req.Variables)
	if err != nil {
		return "", fmt.Errorf("failed to encode variables: %w", err)
	}
	sum := sha256.Sum256([]byte(req.OperationName + "\x00" + req.Query + "\x00" + string(vars)))
	return req.OperationName + ":" + hex.EncodeToString(sum[:8]), nil
}
