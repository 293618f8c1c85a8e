package txcache_test

import (
	"context"
	"testing"
	"time"

	"github.com/goforj/txcache"
)

type opEvent struct {
	op  string
	key string
	hit bool
	err error
}

func TestObservedReportsOperations(t *testing.T) {
	ctx := context.Background()
	var events []opEvent
	observer := txcache.ObserverFunc(func(_ context.Context, op, key string, hit bool, err error, _ time.Duration, driver txcache.Driver) {
		if driver != txcache.DriverMemory {
			t.Errorf("unexpected driver %q", driver)
		}
		events = append(events, opEvent{op: op, key: key, hit: hit, err: err})
	})
	observed := txcache.NewObserved(txcache.NewMemoryStore(ctx), observer)

	if err := observed.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok, err := observed.Get(ctx, "a"); err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if _, ok, err := observed.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss: ok=%v err=%v", ok, err)
	}
	if _, _, err := observed.Remove(ctx, "a"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := observed.Size(ctx); err != nil {
		t.Fatalf("size failed: %v", err)
	}
	if err := observed.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	want := []opEvent{
		{op: "put", key: "a"},
		{op: "get", key: "a", hit: true},
		{op: "get", key: "missing"},
		{op: "remove", key: "a", hit: true},
		{op: "size", hit: true},
		{op: "clear", hit: true},
	}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d: %v", len(want), len(events), events)
	}
	for i, w := range want {
		if events[i] != w {
			t.Fatalf("event %d mismatch: got %+v want %+v", i, events[i], w)
		}
	}
}

func TestObservedHitRatio(t *testing.T) {
	ctx := context.Background()
	observed := txcache.NewObserved(txcache.NewMemoryStore(ctx), nil)

	if ratio := observed.HitRatio(); ratio != 0 {
		t.Fatalf("expected zero ratio before any read, got %v", ratio)
	}
	if err := observed.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, _, err := observed.Get(ctx, "a"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, _, err := observed.Get(ctx, "miss1"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if _, _, err := observed.Get(ctx, "miss2"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	want := 1.0 / 3.0
	if ratio := observed.HitRatio(); ratio != want {
		t.Fatalf("expected ratio %v, got %v", want, ratio)
	}
}

func TestObservedNilObserverIsSafe(t *testing.T) {
	ctx := context.Background()
	observed := txcache.NewObserved(txcache.NewMemoryStore(ctx), nil)
	if err := observed.Put(ctx, "a", 1); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if _, ok, err := observed.Get(ctx, "a"); err != nil || !ok {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
}
