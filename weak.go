package txcache

import (
	"container/list"
	"context"
)

// Weak stores handles instead of raw values so the backing memory can be
// reclaimed while an entry is still cached. Reads keep a bounded list of
// strong references to the most recently read values so hot entries survive
// reclamation. Reclaimed entries are purged from the inner cache on every
// operation. A Weak instance is not safe for concurrent use; wrap a shared
// inner cache with NewSynced.
type Weak struct {
	inner      Cache
	referencer Referencer
	retention  int
	retained   *list.List // front = most recently read
}

// NewWeak decorates inner with reclaimable storage through ref. The default
// retention is DefaultRetention.
func NewWeak(inner Cache, ref Referencer) *Weak {
	return &Weak{
		inner:      inner,
		referencer: ref,
		retention:  DefaultRetention,
		retained:   list.New(),
	}
}

// SetRetention changes how many recently read values are pinned. A smaller
// bound takes effect on the next Get.
func (c *Weak) SetRetention(n int) {
	c.retention = n
}

func (c *Weak) ID() string { return c.inner.ID() }

func (c *Weak) Driver() Driver { return c.inner.Driver() }

func (c *Weak) Size(ctx context.Context) (int, error) {
	if err := c.purgeReclaimed(ctx); err != nil {
		return 0, err
	}
	return c.inner.Size(ctx)
}

func (c *Weak) Put(ctx context.Context, key string, value any) error {
	if err := c.purgeReclaimed(ctx); err != nil {
		return err
	}
	return c.inner.Put(ctx, key, c.referencer.Wrap(key, value))
}

func (c *Weak) Get(ctx context.Context, key string) (any, bool, error) {
	if err := c.purgeReclaimed(ctx); err != nil {
		return nil, false, err
	}
	stored, ok, err := c.inner.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	handle, isHandle := stored.(Handle)
	if !isHandle {
		return stored, true, nil
	}
	value, alive := handle.Value()
	if !alive {
		if _, _, err := c.inner.Remove(ctx, key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	c.retain(value)
	return value, true, nil
}

func (c *Weak) Remove(ctx context.Context, key string) (any, bool, error) {
	if err := c.purgeReclaimed(ctx); err != nil {
		return nil, false, err
	}
	stored, ok, err := c.inner.Remove(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	handle, isHandle := stored.(Handle)
	if !isHandle {
		return stored, true, nil
	}
	value, alive := handle.Value()
	if !alive {
		return nil, false, nil
	}
	return value, true, nil
}

func (c *Weak) Clear(ctx context.Context) error {
	if err := c.purgeReclaimed(ctx); err != nil {
		return err
	}
	if err := c.inner.Clear(ctx); err != nil {
		return err
	}
	c.retained.Init()
	return nil
}

func (c *Weak) retain(value any) {
	c.retained.PushFront(value)
	for c.retained.Len() > c.retention {
		c.retained.Remove(c.retained.Back())
	}
}

func (c *Weak) purgeReclaimed(ctx context.Context) error {
	for {
		handle, ok := c.referencer.Poll()
		if !ok {
			return nil
		}
		if _, _, err := c.inner.Remove(ctx, handle.Key()); err != nil {
			return err
		}
	}
}
