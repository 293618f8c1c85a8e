package txcache_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/goforj/txcache"
	"github.com/goforj/txcache/cachefake"
)

func TestTxBufferStagesWritesUntilCommit(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if err := buffer.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	// The shared cache must not see the write before commit.
	shared.AssertNotCalled(t, cachefake.OpPut, "a")
	if _, ok, err := shared.Get(ctx, "a"); err != nil || ok {
		t.Fatalf("expected staged write invisible; ok=%v err=%v", ok, err)
	}

	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	v, ok, err := shared.Get(ctx, "a")
	if err != nil || !ok || v != 1 {
		t.Fatalf("expected committed write visible: v=%v ok=%v err=%v", v, ok, err)
	}
}

func TestTxBufferRollbackDiscardsStagedWrites(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if err := buffer.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := buffer.Rollback(ctx); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	if _, ok, _ := shared.Get(ctx, "a"); ok {
		t.Fatalf("expected rolled-back write to stay invisible")
	}
	// A later commit must not resurrect the discarded write.
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	if _, ok, _ := shared.Get(ctx, "a"); ok {
		t.Fatalf("expected nothing committed after rollback")
	}
}

func TestTxBufferCommitSettlesMissesWithNilSentinel(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if _, ok, err := buffer.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss; ok=%v err=%v", ok, err)
	}
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	// The miss slot is now occupied by a nil entry in the shared cache.
	v, ok, err := shared.Get(ctx, "missing")
	if err != nil || !ok || v != nil {
		t.Fatalf("expected nil sentinel: v=%v ok=%v err=%v", v, ok, err)
	}
	// A fresh buffer treats the sentinel as a miss, not a hit.
	second := txcache.NewTxBuffer(shared)
	if _, ok, err := second.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected sentinel read as miss; ok=%v err=%v", ok, err)
	}
}

func TestTxBufferStagedWriteWinsOverMissSentinel(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if _, ok, _ := buffer.Get(ctx, "k"); ok {
		t.Fatalf("expected miss")
	}
	if err := buffer.Put(ctx, "k", "real"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	v, ok, err := shared.Get(ctx, "k")
	if err != nil || !ok || v != "real" {
		t.Fatalf("expected staged value, not sentinel: v=%v ok=%v err=%v", v, ok, err)
	}
}

func TestTxBufferClearMasksReadsAndClearsOnCommit(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	if err := shared.Put(ctx, "a", 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	buffer := txcache.NewTxBuffer(shared)

	if err := buffer.Put(ctx, "staged", 2); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := buffer.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	// Clear discards the staged write and masks hits on the shared cache.
	if _, ok, err := buffer.Get(ctx, "a"); err != nil || ok {
		t.Fatalf("expected masked read; ok=%v err=%v", ok, err)
	}
	// The shared cache is untouched until commit.
	if _, ok, _ := shared.Get(ctx, "a"); !ok {
		t.Fatalf("expected shared cache untouched before commit")
	}
	shared.AssertTotal(t, cachefake.OpClear, 0)

	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpClear, 1)
	if _, ok, _ := shared.Get(ctx, "a"); ok {
		t.Fatalf("expected shared cache cleared at commit")
	}
	if _, ok, _ := shared.Get(ctx, "staged"); ok {
		t.Fatalf("expected pre-clear staged write discarded")
	}
}

func TestTxBufferCommitResetsState(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if err := buffer.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpClear, 1)

	// After commit the buffer is back in its open state: no second clear,
	// reads see the shared cache again.
	if err := shared.Put(ctx, "fresh", 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if v, ok, err := buffer.Get(ctx, "fresh"); err != nil || !ok || v != 1 {
		t.Fatalf("expected open-state read: v=%v ok=%v err=%v", v, ok, err)
	}
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("second commit failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpClear, 1)
}

func TestTxBufferCommitAbortsOnInnerFailure(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)

	if err := buffer.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	boom := errors.New("backend down")
	shared.FailWith(cachefake.OpPut, boom)
	if err := buffer.Commit(ctx); !errors.Is(err, boom) {
		t.Fatalf("expected commit to surface inner error, got %v", err)
	}

	// The buffer kept its staged state; a retry after recovery succeeds.
	shared.FailWith(cachefake.OpPut, nil)
	if err := buffer.Commit(ctx); err != nil {
		t.Fatalf("retry commit failed: %v", err)
	}
	if v, ok, _ := shared.Get(ctx, "a"); !ok || v != 1 {
		t.Fatalf("expected retried write applied: v=%v ok=%v", v, ok)
	}
}

func TestTxBufferRollbackReleasesMissedSlots(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	// A previous transaction left a nil sentinel behind.
	if err := shared.Put(ctx, "locked", nil); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	buffer := txcache.NewTxBuffer(shared)

	if _, ok, _ := buffer.Get(ctx, "locked"); ok {
		t.Fatalf("expected sentinel miss")
	}
	if err := buffer.Rollback(ctx); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	shared.AssertCalled(t, cachefake.OpRemove, "locked", 1)
	if _, ok, _ := shared.Get(ctx, "locked"); ok {
		t.Fatalf("expected sentinel released")
	}
}

func TestTxBufferRollbackLogsFailedReleasesAndResets(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()

	var warnings []string
	logger := txcache.LoggerFunc(func(format string, args ...any) {
		warnings = append(warnings, fmt.Sprintf(format, args...))
	})
	buffer := txcache.NewTxBuffer(shared, txcache.WithLogger(logger))

	if _, ok, _ := buffer.Get(ctx, "k"); ok {
		t.Fatalf("expected miss")
	}
	shared.FailWith(cachefake.OpRemove, errors.New("remove down"))
	if err := buffer.Rollback(ctx); err != nil {
		t.Fatalf("rollback must not fail: %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %d: %v", len(warnings), warnings)
	}

	// Rollback reset the buffer even though the release failed.
	shared.FailWith(cachefake.OpRemove, nil)
	shared.Reset()
	if err := buffer.Rollback(ctx); err != nil {
		t.Fatalf("second rollback failed: %v", err)
	}
	shared.AssertTotal(t, cachefake.OpRemove, 0)
}

func TestTxBufferRemoveIsANoOp(t *testing.T) {
	ctx := context.Background()
	shared := cachefake.New()
	if err := shared.Put(ctx, "a", 1); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	buffer := txcache.NewTxBuffer(shared)

	if v, ok, err := buffer.Remove(ctx, "a"); err != nil || ok || v != nil {
		t.Fatalf("expected no-op remove: v=%v ok=%v err=%v", v, ok, err)
	}
	shared.AssertNotCalled(t, cachefake.OpRemove, "a")
	if _, ok, _ := shared.Get(ctx, "a"); !ok {
		t.Fatalf("expected shared entry untouched")
	}
}

func TestTxBufferIdentityPassthrough(t *testing.T) {
	shared := cachefake.New()
	buffer := txcache.NewTxBuffer(shared)
	if buffer.ID() != shared.ID() || buffer.Driver() != shared.Driver() {
		t.Fatalf("unexpected identity: id=%q driver=%q", buffer.ID(), buffer.Driver())
	}
	if n, err := buffer.Size(context.Background()); err != nil || n != 0 {
		t.Fatalf("unexpected size: n=%d err=%v", n, err)
	}
}
