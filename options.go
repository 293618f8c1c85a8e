package txcache

import "time"

// StoreOption mutates StoreConfig when constructing a base store.
type StoreOption func(StoreConfig) StoreConfig

// WithID names the cache; shared backends also use it as the key prefix.
func WithID(id string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.ID = id
		return cfg
	}
}

// WithCodec overrides the value codec used by byte-oriented backends.
func WithCodec(codec Codec) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.Codec = codec
		return cfg
	}
}

// WithRedisClient sets the redis client; required when using DriverRedis.
func WithRedisClient(client RedisClient) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.RedisClient = client
		return cfg
	}
}

// WithNATSKeyValue sets the JetStream KV bucket; required for DriverNATS.
func WithNATSKeyValue(kv NATSKeyValue) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.NATSKeyValue = kv
		return cfg
	}
}

// WithDynamoClient sets a prebuilt DynamoDB client.
func WithDynamoClient(client DynamoAPI) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoClient = client
		return cfg
	}
}

// WithDynamoTable sets the DynamoDB table name.
func WithDynamoTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoTable = table
		return cfg
	}
}

// WithDynamoEndpoint points the store at a custom endpoint (e.g. a local
// DynamoDB) in the given region.
func WithDynamoEndpoint(endpoint, region string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.DynamoEndpoint = endpoint
		cfg.DynamoRegion = region
		return cfg
	}
}

// WithSQL sets the database/sql driver name and DSN; required for DriverSQL.
func WithSQL(driverName, dsn string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLDriverName = driverName
		cfg.SQLDSN = dsn
		return cfg
	}
}

// WithSQLTable sets the table used by the SQL store.
func WithSQLTable(table string) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SQLTable = table
		return cfg
	}
}

// WithSturdyc tunes the sturdyc backend.
func WithSturdyc(capacity, shards, evictionPercentage int, ttl time.Duration) StoreOption {
	return func(cfg StoreConfig) StoreConfig {
		cfg.SturdycCapacity = capacity
		cfg.SturdycShards = shards
		cfg.SturdycEviction = evictionPercentage
		cfg.SturdycTTL = ttl
		return cfg
	}
}
