package cachetest

import (
	"context"
	"strings"
	"testing"

	"github.com/goforj/txcache/cachecore"
)

// Options configures shared cache contract checks.
type Options struct {
	// CaseName is used to namespace keys. Defaults to t.Name().
	CaseName string
	// NullSemantics enables relaxed expectations for the null store.
	NullSemantics bool
	// SkipSize disables the size assertions for backends where counting is
	// expensive or only eventually consistent.
	SkipSize bool
}

// Cache is the minimal contract required by RunCacheContract.
type Cache = cachecore.Cache

// RunCacheContract runs a backend-agnostic cache contract suite.
func RunCacheContract(t *testing.T, cache Cache, opts Options) {
	t.Helper()

	caseName := opts.CaseName
	if caseName == "" {
		caseName = t.Name()
	}

	ctx := context.Background()
	key := func(s string) string {
		return sanitize(caseName) + ":" + s
	}

	// Put/Get round-trip.
	if err := cache.Put(ctx, key("alpha"), "value"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	value, ok, err := cache.Get(ctx, key("alpha"))
	if err != nil {
		t.Fatalf("get failed: ok=%v err=%v", ok, err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected miss for null semantics")
		}
	} else if !ok || value != "value" {
		t.Fatalf("unexpected get result: ok=%v value=%v err=%v", ok, value, err)
	}

	// Overwrite.
	if err := cache.Put(ctx, key("alpha"), "replaced"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if value, ok, err = cache.Get(ctx, key("alpha")); err != nil {
		t.Fatalf("get after overwrite failed: %v", err)
	}
	if !opts.NullSemantics && (!ok || value != "replaced") {
		t.Fatalf("expected overwritten value, got ok=%v value=%v", ok, value)
	}

	// Missing key.
	if _, ok, err := cache.Get(ctx, key("absent")); err != nil || ok {
		t.Fatalf("expected miss for absent key; ok=%v err=%v", ok, err)
	}

	// A stored nil is an entry, not a miss.
	if err := cache.Put(ctx, key("sentinel"), nil); err != nil {
		t.Fatalf("put nil failed: %v", err)
	}
	value, ok, err = cache.Get(ctx, key("sentinel"))
	if err != nil {
		t.Fatalf("get nil failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected miss for null semantics")
		}
	} else if !ok || value != nil {
		t.Fatalf("expected stored nil hit, got ok=%v value=%v", ok, value)
	}

	// Remove returns the prior value once.
	if err := cache.Put(ctx, key("gone"), "prior"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	value, ok, err = cache.Remove(ctx, key("gone"))
	if err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if opts.NullSemantics {
		if ok {
			t.Fatalf("expected null-like remove to report absent")
		}
	} else if !ok || value != "prior" {
		t.Fatalf("expected prior value from remove, got ok=%v value=%v", ok, value)
	}
	if _, ok, err := cache.Remove(ctx, key("gone")); err != nil || ok {
		t.Fatalf("expected second remove to report absent; ok=%v err=%v", ok, err)
	}
	if _, ok, err := cache.Get(ctx, key("gone")); err != nil || ok {
		t.Fatalf("expected removed key to miss; ok=%v err=%v", ok, err)
	}

	// Size tracks entries within this case's namespace, approximately.
	if !opts.SkipSize && !opts.NullSemantics {
		before, err := cache.Size(ctx)
		if err != nil {
			t.Fatalf("size failed: %v", err)
		}
		if err := cache.Put(ctx, key("counted"), 1); err != nil {
			t.Fatalf("put failed: %v", err)
		}
		after, err := cache.Size(ctx)
		if err != nil {
			t.Fatalf("size failed: %v", err)
		}
		if after <= before {
			t.Fatalf("expected size to grow: before=%d after=%d", before, after)
		}
	}

	// Clear empties the cache.
	if err := cache.Put(ctx, key("cleared"), "x"); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := cache.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if _, ok, err := cache.Get(ctx, key("cleared")); err != nil || ok {
		t.Fatalf("expected clear to drop key; ok=%v err=%v", ok, err)
	}
	if !opts.SkipSize {
		n, err := cache.Size(ctx)
		if err != nil {
			t.Fatalf("size after clear failed: %v", err)
		}
		if n != 0 {
			t.Fatalf("expected empty cache after clear, size=%d", n)
		}
	}
}

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
