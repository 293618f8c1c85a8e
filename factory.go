package txcache

import "context"

// NewStore returns a concrete base store for the requested driver. The
// caller is responsible for providing any driver-specific dependencies;
// construction failures yield an identity-preserving cache that surfaces
// the error on every call.
func NewStore(ctx context.Context, cfg StoreConfig) Cache {
	cfg = cfg.withDefaults()
	switch cfg.Driver {
	case DriverNull:
		return newNullCache(cfg.ID)
	case DriverSturdyc:
		return newSturdycCache(cfg)
	case DriverRedis:
		return newRedisCache(cfg)
	case DriverNATS:
		return newNATSCache(cfg)
	case DriverSQL:
		store, err := newSQLCache(cfg)
		if err != nil {
			return newErrorCache(cfg.ID, DriverSQL, err)
		}
		return store
	case DriverDynamo:
		store, err := newDynamoCache(ctx, cfg)
		if err != nil {
			return newErrorCache(cfg.ID, DriverDynamo, err)
		}
		return store
	default:
		return newMemoryCache(cfg.ID)
	}
}

// NewStoreWith builds a store from a driver and functional options.
func NewStoreWith(ctx context.Context, driver Driver, opts ...StoreOption) Cache {
	cfg := StoreConfig{Driver: driver}
	for _, opt := range opts {
		cfg = opt(cfg)
	}
	return NewStore(ctx, cfg)
}

// NewMemoryStore is a convenience for an in-process store.
func NewMemoryStore(ctx context.Context, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverMemory, opts...)
}

// NewNullStore is a convenience for a store that discards everything.
func NewNullStore(ctx context.Context, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverNull, opts...)
}

// NewSturdycStore is a convenience for a sharded in-process store.
func NewSturdycStore(ctx context.Context, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverSturdyc, opts...)
}

// NewRedisStore is a convenience for a redis-backed store. Client required.
func NewRedisStore(ctx context.Context, client RedisClient, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverRedis, append([]StoreOption{WithRedisClient(client)}, opts...)...)
}

// NewNATSStore is a convenience for a JetStream KV backed store.
func NewNATSStore(ctx context.Context, kv NATSKeyValue, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverNATS, append([]StoreOption{WithNATSKeyValue(kv)}, opts...)...)
}

// NewSQLStore is a convenience for a database/sql backed store.
func NewSQLStore(ctx context.Context, driverName, dsn string, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverSQL, append([]StoreOption{WithSQL(driverName, dsn)}, opts...)...)
}

// NewDynamoStore is a convenience for a DynamoDB-backed store.
func NewDynamoStore(ctx context.Context, opts ...StoreOption) Cache {
	return NewStoreWith(ctx, DriverDynamo, opts...)
}
