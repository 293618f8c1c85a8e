// Package txcache layers composable policies over any key/value store that
// implements the Cache capability: bounded FIFO and LRU eviction, weak
// reference storage with a bounded retention list, and a transactional write
// buffer that keeps a session's writes invisible to the shared store until
// commit.
//
// Decorators wrap exactly one inner Cache and expose the same capability, so
// chains compose structurally:
//
//	base := txcache.NewMemoryStore(ctx)
//	cache := txcache.NewLRU(txcache.NewSynced(base))
//	tx := txcache.NewTxManager()
//	_ = tx.Put(ctx, cache, "user:42", profile)
//	_ = tx.Commit(ctx) // writes reach the shared store here
//
// Decorator and buffer instances are scoped to a single unit of work and are
// not internally synchronized; share the base store across transactions, not
// the decorators. Wrap a shared base store in NewSynced when several chains
// point at the same instance.
package txcache
