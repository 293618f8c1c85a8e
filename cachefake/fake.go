// Package cachefake provides a deterministic in-memory cache with call
// counting and failure injection for tests.
package cachefake

import (
	"context"
	"sync"
	"testing"

	"github.com/goforj/txcache"
)

// Op identifies a cache operation for assertions.
type Op string

const (
	OpGet    Op = "get"
	OpPut    Op = "put"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
	OpSize   Op = "size"
)

// Fake is an in-memory cache that records per-key call counts and can be
// told to fail specific operations. It wraps the memory store so no external
// services are needed.
type Fake struct {
	inner  txcache.Cache
	mu     sync.Mutex
	counts map[Op]map[string]int
	fail   map[Op]error
}

// New creates a Fake backed by an in-memory store.
func New() *Fake {
	return &Fake{
		inner:  txcache.NewMemoryStore(context.Background(), txcache.WithID("fake")),
		counts: make(map[Op]map[string]int),
		fail:   make(map[Op]error),
	}
}

// FailWith makes every subsequent call of op return err. Pass nil to clear.
func (f *Fake) FailWith(op Op, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// Reset clears recorded counts and injected failures. Stored entries remain.
func (f *Fake) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counts = make(map[Op]map[string]int)
	f.fail = make(map[Op]error)
}

// AssertCalled verifies key was touched by op the expected number of times.
func (f *Fake) AssertCalled(t *testing.T, op Op, key string, times int) {
	t.Helper()
	if got := f.Count(op, key); got != times {
		t.Fatalf("expected %s %q called %d times, got %d", op, key, times, got)
	}
}

// AssertNotCalled ensures key was never touched by op.
func (f *Fake) AssertNotCalled(t *testing.T, op Op, key string) {
	t.Helper()
	if got := f.Count(op, key); got != 0 {
		t.Fatalf("expected %s %q not called, got %d", op, key, got)
	}
}

// AssertTotal ensures the total call count for an op matches times.
func (f *Fake) AssertTotal(t *testing.T, op Op, times int) {
	t.Helper()
	if got := f.Total(op); got != times {
		t.Fatalf("expected %s total=%d, got %d", op, times, got)
	}
}

// Count returns calls for op+key.
func (f *Fake) Count(op Op, key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		return 0
	}
	return f.counts[op][key]
}

// Total returns total calls for an op across keys.
func (f *Fake) Total(op Op) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	var sum int
	for _, v := range f.counts[op] {
		sum += v
	}
	return sum
}

func (f *Fake) ID() string { return f.inner.ID() }

func (f *Fake) Driver() txcache.Driver { return f.inner.Driver() }

func (f *Fake) Size(ctx context.Context) (int, error) {
	if err := f.bump(OpSize, ""); err != nil {
		return 0, err
	}
	return f.inner.Size(ctx)
}

func (f *Fake) Put(ctx context.Context, key string, value any) error {
	if err := f.bump(OpPut, key); err != nil {
		return err
	}
	return f.inner.Put(ctx, key, value)
}

func (f *Fake) Get(ctx context.Context, key string) (any, bool, error) {
	if err := f.bump(OpGet, key); err != nil {
		return nil, false, err
	}
	return f.inner.Get(ctx, key)
}

func (f *Fake) Remove(ctx context.Context, key string) (any, bool, error) {
	if err := f.bump(OpRemove, key); err != nil {
		return nil, false, err
	}
	return f.inner.Remove(ctx, key)
}

func (f *Fake) Clear(ctx context.Context) error {
	if err := f.bump(OpClear, ""); err != nil {
		return err
	}
	return f.inner.Clear(ctx)
}

func (f *Fake) bump(op Op, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts[op] == nil {
		f.counts[op] = make(map[string]int)
	}
	f.counts[op][key]++
	return f.fail[op]
}
