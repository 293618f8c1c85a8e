package txcache

import (
	"context"
	"errors"
)

// TxManager routes cache operations for one transaction through per-cache
// TxBuffers, created lazily on first touch, and settles all of them together.
// Commit and rollback fan out buffer by buffer with no cross-cache
// atomicity. A TxManager belongs to one transaction and is not safe for
// concurrent use.
type TxManager struct {
	opts    []TxOption
	buffers map[Cache]*TxBuffer
}

// NewTxManager returns an empty manager. The options are applied to every
// buffer it creates.
func NewTxManager(opts ...TxOption) *TxManager {
	return &TxManager{
		opts:    opts,
		buffers: make(map[Cache]*TxBuffer),
	}
}

// Get reads key through cache's transactional buffer.
func (m *TxManager) Get(ctx context.Context, cache Cache, key string) (any, bool, error) {
	return m.buffer(cache).Get(ctx, key)
}

// Put stages a write against cache's transactional buffer.
func (m *TxManager) Put(ctx context.Context, cache Cache, key string, value any) error {
	return m.buffer(cache).Put(ctx, key, value)
}

// Clear marks cache to be cleared when the transaction commits.
func (m *TxManager) Clear(ctx context.Context, cache Cache) error {
	return m.buffer(cache).Clear(ctx)
}

// Commit settles every buffer. Failed buffers keep their staged state; the
// errors are joined and the remaining buffers are still committed.
func (m *TxManager) Commit(ctx context.Context) error {
	var errs []error
	for _, buffer := range m.buffers {
		if err := buffer.Commit(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Rollback discards every buffer's staged state and releases recorded
// misses best-effort.
func (m *TxManager) Rollback(ctx context.Context) error {
	var errs []error
	for _, buffer := range m.buffers {
		if err := buffer.Rollback(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *TxManager) buffer(cache Cache) *TxBuffer {
	if b, ok := m.buffers[cache]; ok {
		return b
	}
	b := NewTxBuffer(cache, m.opts...)
	m.buffers[cache] = b
	return b
}
