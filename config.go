package txcache

import "time"

const (
	defaultCacheID = "app"

	// DefaultFIFOCapacity bounds a FIFO decorator until SetCapacity is called.
	DefaultFIFOCapacity = 1024

	// DefaultLRUCapacity bounds an LRU decorator until SetCapacity is called.
	DefaultLRUCapacity = 1024

	// DefaultRetention bounds the weak decorator's strong-reference list.
	DefaultRetention = 256

	defaultSturdycCapacity = 10000
	defaultSturdycShards   = 256
	defaultSturdycEviction = 10
	defaultSturdycTTL      = 24 * time.Hour
	defaultSQLTable        = "cache_entries"
)

// StoreConfig controls how a base store is constructed.
type StoreConfig struct {
	Driver Driver

	// ID names the cache. Shared backends (redis, sql, nats, dynamodb) also
	// use it to prefix keys so several caches can share one backend.
	ID string

	// Codec encodes values for byte-oriented backends. Defaults to msgpack.
	Codec Codec

	// RedisClient is required when DriverRedis is used.
	RedisClient RedisClient

	// NATSKeyValue is required when DriverNATS is used.
	NATSKeyValue NATSKeyValue

	// DynamoClient is used when DriverDynamo is used; when nil a client is
	// built from DynamoRegion/DynamoEndpoint.
	DynamoClient   DynamoAPI
	DynamoTable    string
	DynamoRegion   string
	DynamoEndpoint string

	// SQLDriverName and SQLDSN are required when DriverSQL is used.
	SQLDriverName string
	SQLDSN        string
	SQLTable      string

	// Sturdyc tuning for DriverSturdyc. The sturdyc client requires a TTL;
	// SturdycTTL defaults to a horizon long enough that entries are
	// effectively pinned until evicted.
	SturdycCapacity int
	SturdycShards   int
	SturdycEviction int
	SturdycTTL      time.Duration
}

func (c StoreConfig) withDefaults() StoreConfig {
	if c.Driver == "" {
		c.Driver = DriverMemory
	}
	if c.ID == "" {
		c.ID = defaultCacheID
	}
	if c.Codec == nil {
		c.Codec = DefaultCodec()
	}
	if c.DynamoTable == "" {
		c.DynamoTable = defaultSQLTable
	}
	if c.SQLTable == "" {
		c.SQLTable = defaultSQLTable
	}
	if c.SturdycCapacity <= 0 {
		c.SturdycCapacity = defaultSturdycCapacity
	}
	if c.SturdycShards <= 0 {
		c.SturdycShards = defaultSturdycShards
	}
	if c.SturdycEviction <= 0 {
		c.SturdycEviction = defaultSturdycEviction
	}
	if c.SturdycTTL <= 0 {
		c.SturdycTTL = defaultSturdycTTL
	}
	return c
}
