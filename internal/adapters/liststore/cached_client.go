package liststore

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched collection stays fresh. Reads within
// the window may serve data up to this much stale; every write through this
// client evicts the touched collection immediately.
const DefaultCacheTTL = 5 * time.Minute

// CachedClient decorates a Client with a read-through cache keyed by
// collection name. It exists because the dominant read pattern is "fetch the
// whole collection and aggregate in memory", which hits the same collections
// on every page load.
type CachedClient struct {
	inner Client
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	records  []Record
	fetched  time.Time
	queryKey string
}

// NewCachedClient wraps inner with a cache using DefaultCacheTTL.
func NewCachedClient(inner Client) *CachedClient {
	return &CachedClient{
		inner:   inner,
		ttl:     DefaultCacheTTL,
		now:     time.Now,
		entries: map[string]cacheEntry{},
	}
}

// ListItems serves from cache when the collection was fetched with the same
// query inside the TTL, otherwise fetches and stores the result.
// INVARIANT: A cache hit never outlives the TTL or a write to its collection
func (c *CachedClient) ListItems(ctx context.Context, collection string, q Query) ([]Record, error) {
	key := q.key()

	c.mu.RLock()
	entry, ok := c.entries[collection]
	c.mu.RUnlock()
	if ok && entry.queryKey == key && c.now().Sub(entry.fetched) < c.ttl {
		return entry.records, nil
	}

	records, err := c.inner.ListItems(ctx, collection, q)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[collection] = cacheEntry{records: records, fetched: c.now(), queryKey: key}
	c.mu.Unlock()
	return records, nil
}

// CreateItem writes through and evicts the collection.
func (c *CachedClient) CreateItem(ctx context.Context, collection string, fields map[string]any) (int, error) {
	id, err := c.inner.CreateItem(ctx, collection, fields)
	if err == nil {
		c.Invalidate(collection)
	}
	return id, err
}

// UpdateItem writes through and evicts the collection.
func (c *CachedClient) UpdateItem(ctx context.Context, collection string, id int, fields map[string]any) error {
	err := c.inner.UpdateItem(ctx, collection, id, fields)
	if err == nil {
		c.Invalidate(collection)
	}
	return err
}

// DeleteItem writes through and evicts the collection.
func (c *CachedClient) DeleteItem(ctx context.Context, collection string, id int) error {
	err := c.inner.DeleteItem(ctx, collection, id)
	if err == nil {
		c.Invalidate(collection)
	}
	return err
}

// ListChoiceValues is passed through uncached; choice columns change rarely
// and are only read at startup and on profile pages.
func (c *CachedClient) ListChoiceValues(ctx context.Context, collection, column string) ([]string, error) {
	return c.inner.ListChoiceValues(ctx, collection, column)
}

// Invalidate drops the cached copy of one collection.
func (c *CachedClient) Invalidate(collection string) {
	c.mu.Lock()
	delete(c.entries, collection)
	c.mu.Unlock()
}

// key flattens a query for hit comparison. Different selects or filters on
// the same collection must not serve each other's results.
func (q Query) key() string {
	key := q.Filter + "|" + q.OrderBy
	for _, s := range q.Select {
		key += "|" + s
	}
	return key
}
