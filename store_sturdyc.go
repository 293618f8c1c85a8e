package txcache

import (
	"context"

	"github.com/viccon/sturdyc"
)

// sturdycCache is an in-process base store with sharded storage, useful when
// one base cache is shared by many concurrent transactions.
type sturdycCache struct {
	id     string
	client *sturdyc.Client[any]
}

func newSturdycCache(cfg StoreConfig) Cache {
	client := sturdyc.New[any](cfg.SturdycCapacity, cfg.SturdycShards, cfg.SturdycTTL, cfg.SturdycEviction)
	return &sturdycCache{id: cfg.ID, client: client}
}

func (s *sturdycCache) ID() string { return s.id }

func (s *sturdycCache) Driver() Driver { return DriverSturdyc }

func (s *sturdycCache) Size(context.Context) (int, error) {
	return s.client.Size(), nil
}

func (s *sturdycCache) Put(_ context.Context, key string, value any) error {
	s.client.Set(key, value)
	return nil
}

func (s *sturdycCache) Get(_ context.Context, key string) (any, bool, error) {
	value, ok := s.client.Get(key)
	return value, ok, nil
}

func (s *sturdycCache) Remove(_ context.Context, key string) (any, bool, error) {
	value, ok := s.client.Get(key)
	if ok {
		s.client.Delete(key)
	}
	return value, ok, nil
}

func (s *sturdycCache) Clear(context.Context) error {
	for _, key := range s.client.ScanKeys() {
		s.client.Delete(key)
	}
	return nil
}
