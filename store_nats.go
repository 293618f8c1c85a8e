package txcache

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/nats-io/nats.go"
)

// NATSKeyValue captures the subset of nats.KeyValue used by the store.
type NATSKeyValue interface {
	Get(key string) (nats.KeyValueEntry, error)
	Put(key string, value []byte) (uint64, error)
	Purge(key string, opts ...nats.DeleteOpt) error
	ListKeys(opts ...nats.WatchOpt) (nats.KeyLister, error)
}

type natsCache struct {
	id    string
	kv    NATSKeyValue
	codec Codec
}

func newNATSCache(cfg StoreConfig) Cache {
	return &natsCache{id: cfg.ID, kv: cfg.NATSKeyValue, codec: cfg.Codec}
}

func (s *natsCache) ID() string { return s.id }

func (s *natsCache) Driver() Driver { return DriverNATS }

func (s *natsCache) Size(context.Context) (int, error) {
	if s.kv == nil {
		return 0, errors.New("nats cache key-value unavailable")
	}
	lister, err := s.kv.ListKeys(nats.IgnoreDeletes())
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return 0, nil
		}
		return 0, err
	}
	defer func() { _ = lister.Stop() }()

	scopePrefix := s.scopePrefix()
	total := 0
	for key := range lister.Keys() {
		if strings.HasPrefix(key, scopePrefix) {
			total++
		}
	}
	for err := range lister.Error() {
		if err != nil {
			return 0, err
		}
	}
	return total, nil
}

func (s *natsCache) Put(_ context.Context, key string, value any) error {
	if s.kv == nil {
		return errors.New("nats cache key-value unavailable")
	}
	body, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}
	_, err = s.kv.Put(s.cacheKey(key), body)
	return err
}

func (s *natsCache) Get(_ context.Context, key string) (any, bool, error) {
	if s.kv == nil {
		return nil, false, errors.New("nats cache key-value unavailable")
	}
	entry, err := s.kv.Get(s.cacheKey(key))
	if isNATSMiss(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if entry.Operation() == nats.KeyValueDelete || entry.Operation() == nats.KeyValuePurge {
		return nil, false, nil
	}
	value, err := s.codec.Unmarshal(entry.Value())
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *natsCache) Remove(ctx context.Context, key string) (any, bool, error) {
	value, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return nil, false, err
	}
	if err := s.kv.Purge(s.cacheKey(key)); err != nil && !isNATSMiss(err) {
		return nil, false, err
	}
	return value, true, nil
}

func (s *natsCache) Clear(context.Context) error {
	if s.kv == nil {
		return errors.New("nats cache key-value unavailable")
	}
	lister, err := s.kv.ListKeys(nats.IgnoreDeletes())
	if err != nil {
		if errors.Is(err, nats.ErrNoKeysFound) {
			return nil
		}
		return err
	}
	defer func() { _ = lister.Stop() }()

	scopePrefix := s.scopePrefix()
	for key := range lister.Keys() {
		if !strings.HasPrefix(key, scopePrefix) {
			continue
		}
		if err := s.kv.Purge(key); err != nil && !isNATSMiss(err) {
			return err
		}
	}
	for err := range lister.Error() {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *natsCache) cacheKey(key string) string {
	return s.scopePrefix() + encodeNATSKeyPart(key)
}

func (s *natsCache) scopePrefix() string {
	return "p." + encodeNATSKeyPart(s.id) + ".k."
}

func isNATSMiss(err error) bool {
	return errors.Is(err, nats.ErrKeyNotFound) || errors.Is(err, nats.ErrKeyDeleted)
}

// encodeNATSKeyPart makes arbitrary cache keys safe for the restricted NATS
// KV key alphabet.
func encodeNATSKeyPart(part string) string {
	if part == "" {
		return "_"
	}
	return base64.RawURLEncoding.EncodeToString([]byte(part))
}
