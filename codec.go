package txcache

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// Codec converts cache values to and from bytes for byte-oriented backends
// (redis, sql, nats, dynamodb). In-process backends store values directly
// and never touch the codec.
type Codec interface {
	Marshal(value any) ([]byte, error)
	Unmarshal(data []byte) (any, error)
}

type msgpackCodec struct{}

func (msgpackCodec) Marshal(value any) ([]byte, error) {
	body, err := msgpack.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encode cache value: %w", err)
	}
	return body, nil
}

func (msgpackCodec) Unmarshal(data []byte) (any, error) {
	var out any
	if err := msgpack.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode cache value: %w", err)
	}
	return out, nil
}

// DefaultCodec returns the msgpack codec used by byte-oriented stores when
// StoreConfig.Codec is unset.
func DefaultCodec() Codec { return msgpackCodec{} }
