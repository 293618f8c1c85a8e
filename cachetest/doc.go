// Package cachetest provides a reusable contract suite for cachecore.Cache
// implementations.
//
// Store and decorator tests can share the same checks without importing root
// test helpers.
//
// Example pattern:
//
//	func TestRedisCacheContract(t *testing.T) {
//		client := newTestRedisClient(t)
//		store := txcache.NewRedisStore(context.Background(), client, txcache.WithID(t.Name()))
//
//		// Namespace keys per test so shared backends do not interfere.
//		cachetest.RunCacheContract(t, store, cachetest.Options{
//			CaseName: t.Name(),
//		})
//	}
//
// Backends whose Size is a full scan can set SkipSize; the null store sets
// NullSemantics so the suite expects every read to miss.
package cachetest
