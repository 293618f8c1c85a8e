package txcache

import (
	"context"
	"sync"
)

// Synced serializes access to an inner cache with a mutex. Use it as the
// outermost decorator when one composed cache is shared by several
// goroutines, for example a base store shared by concurrent transactions.
type Synced struct {
	mu    sync.Mutex
	inner Cache
}

// NewSynced wraps inner in a mutex.
func NewSynced(inner Cache) *Synced {
	return &Synced{inner: inner}
}

func (c *Synced) ID() string { return c.inner.ID() }

func (c *Synced) Driver() Driver { return c.inner.Driver() }

func (c *Synced) Size(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Size(ctx)
}

func (c *Synced) Put(ctx context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Put(ctx, key, value)
}

func (c *Synced) Get(ctx context.Context, key string) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Get(ctx, key)
}

func (c *Synced) Remove(ctx context.Context, key string) (any, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Remove(ctx, key)
}

func (c *Synced) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inner.Clear(ctx)
}
