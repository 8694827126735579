package repos

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each record under artspace:<scope>:<key>.
type RedisStore struct {
	rdb    *redis.Client
	prefix string
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb, prefix: "artspace"}
}

func (s *RedisStore) key(scope, key string) string {
	return s.prefix + ":" + scope + ":" + key
}

func (s *RedisStore) Get(ctx context.Context, scope, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.key(scope, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, scope, key, value string) error {
	return s.rdb.Set(ctx, s.key(scope, key), value, 0).Err()
}

func (s *RedisStore) Delete(ctx context.Context, scope, key string) error {
	return s.rdb.Del(ctx, s.key(scope, key)).Err()
}

func (s *RedisStore) Close() error { return s.rdb.Close() }
