package txcache

import "context"

// TxBuffer stages writes against an inner cache until the surrounding
// transaction settles. Reads pass through; a read that misses (or hits the
// nil miss sentinel) is recorded so the slot can be settled at commit time
// or released on rollback. A TxBuffer belongs to one transaction and is not
// safe for concurrent use.
type TxBuffer struct {
	inner         Cache
	logger        Logger
	clearOnCommit bool
	pending       map[string]any
	missed        map[string]struct{}
}

// TxOption configures a TxBuffer.
type TxOption func(*TxBuffer)

// WithLogger routes best-effort diagnostics, such as failed per-key releases
// during rollback, to log.
func WithLogger(log Logger) TxOption {
	return func(b *TxBuffer) {
		if log != nil {
			b.logger = log
		}
	}
}

// NewTxBuffer wraps inner in a transaction-scoped staging buffer.
func NewTxBuffer(inner Cache, opts ...TxOption) *TxBuffer {
	b := &TxBuffer{
		inner:   inner,
		logger:  DefaultLogger(),
		pending: make(map[string]any),
		missed:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *TxBuffer) ID() string { return b.inner.ID() }

func (b *TxBuffer) Driver() Driver { return b.inner.Driver() }

func (b *TxBuffer) Size(ctx context.Context) (int, error) {
	return b.inner.Size(ctx)
}

// Get reads through to the inner cache. Misses are recorded so commit can
// settle them; after Clear every read misses regardless of the inner cache.
func (b *TxBuffer) Get(ctx context.Context, key string) (any, bool, error) {
	value, ok, err := b.inner.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !ok || value == nil {
		b.missed[key] = struct{}{}
		return nil, false, nil
	}
	if b.clearOnCommit {
		return nil, false, nil
	}
	return value, true, nil
}

// Put stages the write; the inner cache is untouched until Commit.
func (b *TxBuffer) Put(_ context.Context, key string, value any) error {
	b.pending[key] = value
	return nil
}

// Remove is a no-op: removal inside a transaction is expressed by Clear.
func (b *TxBuffer) Remove(context.Context, string) (any, bool, error) {
	return nil, false, nil
}

// Clear discards staged writes and marks the inner cache to be cleared at
// commit time.
func (b *TxBuffer) Clear(context.Context) error {
	b.clearOnCommit = true
	b.pending = make(map[string]any)
	return nil
}

// Commit applies the buffer to the inner cache: an outstanding Clear first,
// then the staged writes, then a nil sentinel for every recorded miss that
// was not overwritten, so concurrent readers of a shared inner cache do not
// stampede the backing source. A failure aborts mid-flush and leaves the
// buffer intact for a retry or rollback.
func (b *TxBuffer) Commit(ctx context.Context) error {
	if b.clearOnCommit {
		if err := b.inner.Clear(ctx); err != nil {
			return err
		}
	}
	for key, value := range b.pending {
		if err := b.inner.Put(ctx, key, value); err != nil {
			return err
		}
	}
	for key := range b.missed {
		if _, staged := b.pending[key]; staged {
			continue
		}
		if err := b.inner.Put(ctx, key, nil); err != nil {
			return err
		}
	}
	b.reset()
	return nil
}

// Rollback discards staged writes and releases every recorded miss slot in
// the inner cache. Release failures are logged and skipped; rollback always
// leaves the buffer reset.
func (b *TxBuffer) Rollback(ctx context.Context) error {
	for key := range b.missed {
		if _, _, err := b.inner.Remove(ctx, key); err != nil {
			b.logger.Warnf("txcache: releasing missed entry %q from cache %q failed: %v", key, b.inner.ID(), err)
		}
	}
	b.reset()
	return nil
}

func (b *TxBuffer) reset() {
	b.clearOnCommit = false
	b.pending = make(map[string]any)
	b.missed = make(map[string]struct{})
}
