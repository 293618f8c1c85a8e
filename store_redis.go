package txcache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient captures the subset of redis.Client used by the store.
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	GetDel(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
}

type redisCache struct {
	id     string
	client RedisClient
	codec  Codec
}

func newRedisCache(cfg StoreConfig) Cache {
	return &redisCache{id: cfg.ID, client: cfg.RedisClient, codec: cfg.Codec}
}

func (s *redisCache) ID() string { return s.id }

func (s *redisCache) Driver() Driver { return DriverRedis }

func (s *redisCache) Size(ctx context.Context) (int, error) {
	if s.client == nil {
		return 0, errors.New("redis cache client unavailable")
	}
	pattern := s.cacheKey("*")
	var (
		cursor uint64
		total  int
	)
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return 0, err
		}
		total += len(keys)
		cursor = next
		if cursor == 0 {
			return total, nil
		}
	}
}

func (s *redisCache) Put(ctx context.Context, key string, value any) error {
	if s.client == nil {
		return errors.New("redis cache client unavailable")
	}
	body, err := s.codec.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.cacheKey(key), body, 0).Err()
}

func (s *redisCache) Get(ctx context.Context, key string) (any, bool, error) {
	if s.client == nil {
		return nil, false, errors.New("redis cache client unavailable")
	}
	body, err := s.client.Get(ctx, s.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	value, err := s.codec.Unmarshal(body)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisCache) Remove(ctx context.Context, key string) (any, bool, error) {
	if s.client == nil {
		return nil, false, errors.New("redis cache client unavailable")
	}
	body, err := s.client.GetDel(ctx, s.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	value, err := s.codec.Unmarshal(body)
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *redisCache) Clear(ctx context.Context) error {
	if s.client == nil {
		return errors.New("redis cache client unavailable")
	}
	pattern := s.cacheKey("*")
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *redisCache) cacheKey(key string) string {
	return s.id + ":" + key
}
