package txcache

import (
	"context"
	"time"
)

// Observer receives events for cache operations. It is called by the
// Observed decorator after each operation completes.
type Observer interface {
	OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver)

// OnCacheOp implements Observer.
func (f ObserverFunc) OnCacheOp(ctx context.Context, op string, key string, hit bool, err error, dur time.Duration, driver Driver) {
	if f == nil {
		return
	}
	f(ctx, op, key, hit, err, dur, driver)
}

// Observed decorates a cache with per-operation events and hit accounting.
// Like the other decorators it is scoped to one unit of work and is not
// internally synchronized.
type Observed struct {
	inner    Cache
	observer Observer
	requests int
	hits     int
}

// NewObserved wraps inner so every operation is reported to observer.
func NewObserved(inner Cache, observer Observer) *Observed {
	return &Observed{inner: inner, observer: observer}
}

// ID implements Cache.
func (c *Observed) ID() string { return c.inner.ID() }

// Driver implements Cache.
func (c *Observed) Driver() Driver { return c.inner.Driver() }

// Size implements Cache.
func (c *Observed) Size(ctx context.Context) (int, error) {
	start := time.Now()
	n, err := c.inner.Size(ctx)
	c.observe(ctx, "size", "", err == nil, err, start)
	return n, err
}

// Put implements Cache.
func (c *Observed) Put(ctx context.Context, key string, value any) error {
	start := time.Now()
	err := c.inner.Put(ctx, key, value)
	c.observe(ctx, "put", key, false, err, start)
	return err
}

// Get implements Cache.
func (c *Observed) Get(ctx context.Context, key string) (any, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Get(ctx, key)
	c.requests++
	if ok {
		c.hits++
	}
	c.observe(ctx, "get", key, ok, err, start)
	return value, ok, err
}

// Remove implements Cache.
func (c *Observed) Remove(ctx context.Context, key string) (any, bool, error) {
	start := time.Now()
	value, ok, err := c.inner.Remove(ctx, key)
	c.observe(ctx, "remove", key, ok, err, start)
	return value, ok, err
}

// Clear implements Cache.
func (c *Observed) Clear(ctx context.Context) error {
	start := time.Now()
	err := c.inner.Clear(ctx)
	c.observe(ctx, "clear", "", err == nil, err, start)
	return err
}

// HitRatio reports the fraction of Get calls that found an entry.
func (c *Observed) HitRatio() float64 {
	if c.requests == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.requests)
}

func (c *Observed) observe(ctx context.Context, op, key string, hit bool, err error, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.OnCacheOp(ctx, op, key, hit, err, time.Since(start), c.Driver())
}
