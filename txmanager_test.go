package txcache_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goforj/txcache"
	"github.com/goforj/txcache/cachefake"
)

func TestTxManagerIsolatesCaches(t *testing.T) {
	ctx := context.Background()
	orders := cachefake.New()
	users := cachefake.New()
	manager := txcache.NewTxManager()

	if err := manager.Put(ctx, orders, "o1", "order"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := manager.Put(ctx, users, "u1", "user"); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	// Reads through the manager do not leak across caches.
	if _, ok, _ := manager.Get(ctx, orders, "u1"); ok {
		t.Fatalf("expected cross-cache read to miss")
	}
	// Nothing reaches the shared caches before commit.
	orders.AssertNotCalled(t, cachefake.OpPut, "o1")
	users.AssertNotCalled(t, cachefake.OpPut, "u1")

	if err := manager.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if v, ok, _ := orders.Get(ctx, "o1"); !ok || v != "order" {
		t.Fatalf("expected order committed: v=%v ok=%v", v, ok)
	}
	if v, ok, _ := users.Get(ctx, "u1"); !ok || v != "user" {
		t.Fatalf("expected user committed: v=%v ok=%v", v, ok)
	}
}

func TestTxManagerReusesBufferPerCache(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	manager := txcache.NewTxManager()

	if err := manager.Put(ctx, shared, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	// The same buffer serves later operations on the same cache: the staged
	// write is not visible through the manager because staged writes are
	// never read back, but committing once applies it exactly once.
	if err := manager.Put(ctx, shared, "a", 2); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := manager.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	shared.AssertCalled(t, cachefake.OpPut, "a", 1)
	if v, ok, _ := shared.Get(ctx, "a"); !ok || v != 2 {
		t.Fatalf("expected last staged value: v=%v ok=%v", v, ok)
	}
}

func TestTxManagerClearAppliesAtCommit(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	if err := shared.Put(ctx, "stale", 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	manager := txcache.NewTxManager()

	if err := manager.Clear(ctx, shared); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpClear, 0)
	if err := manager.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpClear, 1)
	if _, ok, _ := shared.Get(ctx, "stale"); ok {
		t.Fatalf("expected cleared entry gone")
	}
}

func TestTxManagerCommitContinuesPastFailedBuffer(t *testing.T) {
	ctx := context.Background()
	broken := cachefake.New()
	healthy := cachefake.New()
	manager := txcache.NewTxManager()

	if err := manager.Put(ctx, broken, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := manager.Put(ctx, healthy, "b", 2); err != nil {
		t.Fatalf("put failed: %v", err)
	}

	boom := errors.New("backend down")
	broken.FailWith(cachefake.OpPut, boom)
	err := manager.Commit(ctx)
	if !errors.Is(err, boom) {
		t.Fatalf("expected joined commit error, got %v", err)
	}
	// The healthy cache still committed.
	if v, ok, _ := healthy.Get(ctx, "b"); !ok || v != 2 {
		t.Fatalf("expected healthy cache committed: v=%v ok=%v", v, ok)
	}
}

func TestTxManagerRollbackReleasesAllBuffers(t *testing.T) {
	ctx := context.Background()
	first := cachefake.New()
	second := cachefake.New()
	if err := first.Put(ctx, "m1", nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := second.Put(ctx, "m2", nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	manager := txcache.NewTxManager(txcache.WithLogger(txcache.NopLogger{}))

	if _, ok, _ := manager.Get(ctx, first, "m1"); ok {
		t.Fatalf("expected sentinel miss")
	}
	if _, ok, _ := manager.Get(ctx, second, "m2"); ok {
		t.Fatalf("expected sentinel miss")
	}
	if err := manager.Rollback(ctx); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	first.AssertCalled(t, cachefake.OpRemove, "m1", 1)
	second.AssertCalled(t, cachefake.OpRemove, "m2", 1)
}

func TestTxManagerEmptyCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	manager := txcache.NewTxManager()
	if err := manager.Commit(ctx); err != nil {
		t.Fatalf("empty commit failed: %v", err)
	}
	if err := manager.Rollback(ctx); err != nil {
		t.Fatalf("empty rollback failed: %v", err)
	}
}
