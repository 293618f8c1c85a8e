package cachecore

import "context"

// Driver identifies a cache backend.
type Driver string

const (
	DriverNull    Driver = "null"
	DriverMemory  Driver = "memory"
	DriverSturdyc Driver = "sturdyc"
	DriverRedis   Driver = "redis"
	DriverSQL     Driver = "sql"
	DriverNATS    Driver = "nats"
	DriverDynamo  Driver = "dynamodb"
)

// Cache is the capability shared by every base store and decorator. A
// decorator holds exactly one inner Cache and exposes the same surface
// outward, so policies stack in any order over any backend.
//
// Keys are opaque strings built by the caller; the cache never inspects
// their structure. Values are arbitrary; byte-oriented backends encode them
// through a codec, while in-process backends store them as-is.
type Cache interface {
	// ID names the cache. Decorators report the inner cache's ID.
	ID() string

	// Driver reports the backing store's driver tag.
	Driver() Driver

	// Size reports the approximate number of entries in the backing store.
	Size(ctx context.Context) (int, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value any) error

	// Get returns the value stored under key, reporting whether an entry
	// exists. A stored nil value is an entry: Get returns (nil, true, nil).
	Get(ctx context.Context, key string) (any, bool, error)

	// Remove deletes key and returns the value that was stored, if any.
	Remove(ctx context.Context, key string) (any, bool, error)

	// Clear removes every entry owned by this cache.
	Clear(ctx context.Context) error
}
