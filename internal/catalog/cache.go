package catalog

import (
	"context"
	"fmt"
	"sync"
)

// LoadFunc produces the catalog, typically from a bundled file or a
// metadata endpoint.
type LoadFunc func(ctx context.Context) (*Catalog, error)

type cacheState int

const (
	stateUnloaded cacheState = iota
	stateLoading
	stateReady
	stateFailed
)

// Cache loads the catalog at most once and shares a single in-flight
// load between concurrent callers. A failed load clears the pending
// handle so the next call retries instead of poisoning the cache.
// Instances are independent, so tests can run their own without
// cross-test pollution.
type Cache struct {
	load LoadFunc

	mu      sync.Mutex
	state   cacheState
	pending chan struct{} // closed when the in-flight load finishes
	value   *Catalog
	lastErr error
}

// NewCache creates a cache around the given loader.
func NewCache(load LoadFunc) *Cache {
	return &Cache{load: load}
}

// Get returns the catalog, loading it on first use. Concurrent callers
// during a load all wait on the same in-flight operation.
func (c *Cache) Get(ctx context.Context) (*Catalog, error) {
	c.mu.Lock()
	switch c.state {
	case stateReady:
		v := c.value
		c.mu.Unlock()
		return v, nil

	case stateLoading:
		pending := c.pending
		c.mu.Unlock()
		select {
		case <-pending:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.state == stateReady {
			return c.value, nil
		}
		return nil, c.lastErr

	default: // unloaded, or failed and eligible for retry
		pending := make(chan struct{})
		c.state = stateLoading
		c.pending = pending
		c.mu.Unlock()

		value, err := c.load(ctx)

		c.mu.Lock()
		defer c.mu.Unlock()
		if err != nil {
			c.state = stateFailed
			c.lastErr = fmt.Errorf("loading catalog: %w", err)
			c.pending = nil
			close(pending)
			return nil, c.lastErr
		}
		c.state = stateReady
		c.value = value
		c.pending = nil
		close(pending)
		return value, nil
	}
}

// Ready reports whether a catalog is loaded.
func (c *Cache) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state == stateReady
}
