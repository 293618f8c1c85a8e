package txcache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"
)

type memoryCache struct {
	id    string
	items *gocache.Cache
}

func newMemoryCache(id string) Cache {
	// Entries never expire; eviction is the job of the decorators above.
	return &memoryCache{id: id, items: gocache.New(gocache.NoExpiration, 0)}
}

func (s *memoryCache) ID() string { return s.id }

func (s *memoryCache) Driver() Driver { return DriverMemory }

func (s *memoryCache) Size(context.Context) (int, error) {
	return s.items.ItemCount(), nil
}

func (s *memoryCache) Put(_ context.Context, key string, value any) error {
	s.items.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *memoryCache) Get(_ context.Context, key string) (any, bool, error) {
	value, ok := s.items.Get(key)
	return value, ok, nil
}

func (s *memoryCache) Remove(_ context.Context, key string) (any, bool, error) {
	value, ok := s.items.Get(key)
	if ok {
		s.items.Delete(key)
	}
	return value, ok, nil
}

func (s *memoryCache) Clear(context.Context) error {
	s.items.Flush()
	return nil
}
