package txcache

import (
	"container/list"
	"context"
)

// FIFO bounds an inner cache by insertion order: once the number of tracked
// keys exceeds the capacity, the oldest keys are removed from the inner cache.
// Re-putting a tracked key keeps its original insertion age. A FIFO instance
// is not safe for concurrent use; wrap a shared inner cache with NewSynced.
type FIFO struct {
	inner    Cache
	capacity int
	order    *list.List               // front = oldest
	index    map[string]*list.Element // key -> order element
}

// NewFIFO decorates inner with insertion-order eviction. The default
// capacity is DefaultFIFOCapacity.
func NewFIFO(inner Cache) *FIFO {
	return &FIFO{
		inner:    inner,
		capacity: DefaultFIFOCapacity,
		order:    list.New(),
		index:    make(map[string]*list.Element),
	}
}

// SetCapacity changes the bound. A smaller bound takes effect on the next
// Put; it does not evict immediately.
func (c *FIFO) SetCapacity(n int) {
	c.capacity = n
}

// Capacity reports the current bound.
func (c *FIFO) Capacity() int { return c.capacity }

func (c *FIFO) ID() string { return c.inner.ID() }

func (c *FIFO) Driver() Driver { return c.inner.Driver() }

func (c *FIFO) Size(ctx context.Context) (int, error) {
	return c.inner.Size(ctx)
}

func (c *FIFO) Put(ctx context.Context, key string, value any) error {
	if err := c.inner.Put(ctx, key, value); err != nil {
		return err
	}
	if _, tracked := c.index[key]; !tracked {
		c.index[key] = c.order.PushBack(key)
	}
	for c.order.Len() > c.capacity {
		oldest := c.order.Front()
		oldestKey := oldest.Value.(string)
		c.order.Remove(oldest)
		delete(c.index, oldestKey)
		if _, _, err := c.inner.Remove(ctx, oldestKey); err != nil {
			return err
		}
	}
	return nil
}

func (c *FIFO) Get(ctx context.Context, key string) (any, bool, error) {
	return c.inner.Get(ctx, key)
}

// Remove passes through without touching the insertion order, so a removed
// key keeps its slot until eviction reaches it.
func (c *FIFO) Remove(ctx context.Context, key string) (any, bool, error) {
	return c.inner.Remove(ctx, key)
}

func (c *FIFO) Clear(ctx context.Context) error {
	if err := c.inner.Clear(ctx); err != nil {
		return err
	}
	c.order.Init()
	c.index = make(map[string]*list.Element)
	return nil
}
