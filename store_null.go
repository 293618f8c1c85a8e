package txcache

import "context"

type nullCache struct {
	id string
}

func newNullCache(id string) Cache { return &nullCache{id: id} }

func (s *nullCache) ID() string { return s.id }

func (s *nullCache) Driver() Driver { return DriverNull }

func (s *nullCache) Size(context.Context) (int, error) { return 0, nil }

func (s *nullCache) Put(context.Context, string, any) error { return nil }

func (s *nullCache) Get(context.Context, string) (any, bool, error) {
	return nil, false, nil
}

func (s *nullCache) Remove(context.Context, string) (any, bool, error) {
	return nil, false, nil
}

func (s *nullCache) Clear(context.Context) error { return nil }
