package txcache

import (
	"runtime"
	"weak"
)

// Handle is a possibly-reclaimable reference to a cached value, tagged with
// the cache key it was stored under.
type Handle interface {
	Key() string
	// Value returns the referent, or false once it has been reclaimed.
	Value() (any, bool)
}

// Referencer wraps values in handles and reports which handles have been
// reclaimed since the last poll.
type Referencer interface {
	Wrap(key string, value any) Handle
	// Poll returns the next reclaimed handle, non-blocking.
	Poll() (Handle, bool)
}

// strongHandle pins its value; it is never reclaimed.
type strongHandle struct {
	key   string
	value any
}

func (h *strongHandle) Key() string        { return h.key }
func (h *strongHandle) Value() (any, bool) { return h.value, true }

// reclaimedHandle stands in for a handle whose referent is gone. Only the
// key survives so the cache slot can be purged.
type reclaimedHandle struct {
	key string
}

func (h *reclaimedHandle) Key() string        { return h.key }
func (h *reclaimedHandle) Value() (any, bool) { return nil, false }

type weakHandle[T any] struct {
	key string
	ptr weak.Pointer[T]
}

func (h *weakHandle[T]) Key() string { return h.key }

func (h *weakHandle[T]) Value() (any, bool) {
	if p := h.ptr.Value(); p != nil {
		return p, true
	}
	return nil, false
}

type runtimeReferencer[T any] struct {
	reclaimed chan string
}

// NewRuntimeReferencer returns a Referencer that holds *T values weakly and
// learns about their reclamation from the runtime. Values of any other type
// get strong handles and are never reported by Poll. The reclamation channel
// is bounded; when a burst of cleanups overflows it the overflowing keys are
// dropped and their slots linger until removed by other means.
func NewRuntimeReferencer[T any]() Referencer {
	return &runtimeReferencer[T]{reclaimed: make(chan string, 1024)}
}

func (r *runtimeReferencer[T]) Wrap(key string, value any) Handle {
	p, ok := value.(*T)
	if !ok || p == nil {
		return &strongHandle{key: key, value: value}
	}
	h := &weakHandle[T]{key: key, ptr: weak.Make(p)}
	runtime.AddCleanup(p, func(k string) {
		select {
		case r.reclaimed <- k:
		default:
		}
	}, key)
	return h
}

func (r *runtimeReferencer[T]) Poll() (Handle, bool) {
	select {
	case key := <-r.reclaimed:
		return &reclaimedHandle{key: key}, true
	default:
		return nil, false
	}
}
