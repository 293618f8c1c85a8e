package txcache

import "context"

// errorCache is returned when a driver fails to initialize; it preserves the
// cache identity while surfacing the construction error on every call.
type errorCache struct {
	id     string
	driver Driver
	err    error
}

func newErrorCache(id string, driver Driver, err error) Cache {
	return &errorCache{id: id, driver: driver, err: err}
}

func (e *errorCache) ID() string                                        { return e.id }
func (e *errorCache) Driver() Driver                                    { return e.driver }
func (e *errorCache) Size(context.Context) (int, error)                 { return 0, e.err }
func (e *errorCache) Put(context.Context, string, any) error            { return e.err }
func (e *errorCache) Get(context.Context, string) (any, bool, error)    { return nil, false, e.err }
func (e *errorCache) Remove(context.Context, string) (any, bool, error) { return nil, false, e.err }
func (e *errorCache) Clear(context.Context) error                       { return e.err }
