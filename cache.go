package txcache

import "github.com/goforj/txcache/cachecore"

// Cache re-exports the core capability contract.
type Cache = cachecore.Cache

// Driver identifies a cache backend.
type Driver = cachecore.Driver

const (
	DriverNull    = cachecore.DriverNull
	DriverMemory  = cachecore.DriverMemory
	DriverSturdyc = cachecore.DriverSturdyc
	DriverRedis   = cachecore.DriverRedis
	DriverSQL     = cachecore.DriverSQL
	DriverNATS    = cachecore.DriverNATS
	DriverDynamo  = cachecore.DriverDynamo
)
