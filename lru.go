package txcache

import (
	"container/list"
	"context"
)

// LRU bounds an inner cache by access order: Get and Put refresh a key's
// recency, and once the number of tracked keys exceeds the capacity the
// least recently used key is removed from the inner cache. Recency tracking
// is independent of the inner cache's contents, so a Get refreshes a tracked
// key even when the inner cache no longer holds it. An LRU instance is not
// safe for concurrent use; wrap a shared inner cache with NewSynced.
type LRU struct {
	inner    Cache
	capacity int
	order    *list.List               // front = least recently used
	index    map[string]*list.Element // key -> order element
}

// NewLRU decorates inner with least-recently-used eviction. The default
// capacity is DefaultLRUCapacity.
func NewLRU(inner Cache) *LRU {
	return &LRU{
		inner:    inner,
		capacity: DefaultLRUCapacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// SetCapacity changes the bound. A smaller bound takes effect on the next
// Put; it does not evict immediately.
func (c *LRU) SetCapacity(n int) {
	c.capacity = n
}

// Capacity reports the current bound.
func (c *LRU) Capacity() int { return c.capacity }

func (c *LRU) ID() string { return c.inner.ID() }

func (c *LRU) Driver() Driver { return c.inner.Driver() }

func (c *LRU) Size(ctx context.Context) (int, error) {
	return c.inner.Size(ctx)
}

func (c *LRU) Put(ctx context.Context, key string, value any) error {
	if err := c.inner.Put(ctx, key, value); err != nil {
		return err
	}
	c.touch(key)
	for c.order.Len() > c.capacity {
		eldest := c.order.Front()
		eldestKey := eldest.Value.(string)
		c.order.Remove(eldest)
		delete(c.index, eldestKey)
		if _, _, err := c.inner.Remove(ctx, eldestKey); err != nil {
			return err
		}
	}
	return nil
}

func (c *LRU) Get(ctx context.Context, key string) (any, bool, error) {
	if elem, tracked := c.index[key]; tracked {
		c.order.MoveToBack(elem)
	}
	return c.inner.Get(ctx, key)
}

// Remove passes through without touching the access order, so a removed key
// keeps its slot until eviction reaches it.
func (c *LRU) Remove(ctx context.Context, key string) (any, bool, error) {
	return c.inner.Remove(ctx, key)
}

func (c *LRU) Clear(ctx context.Context) error {
	if err := c.inner.Clear(ctx); err != nil {
		return err
	}
	c.order.Init()
	c.index = make(map[string]*list.Element)
	return nil
}

func (c *LRU) touch(key string) {
	if elem, tracked := c.index[key]; tracked {
		c.order.MoveToBack(elem)
		return
	}
	c.index[key] = c.order.PushBack(key)
}
