package cache

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisCache struct {
	client *redis.Client
	prefix string
}

var _ Cache = (*RedisCache)(nil)

func NewRedisCache(redisClient *redis.Client, prefix string) *RedisCache {
	return &RedisCache{
		client: redisClient,
		prefix: prefix,
	}
}

func (r *RedisCache) setPrefixKey(key string) string {
	var builder strings.Builder
	builder.Grow(len(r.prefix) + 1 + len(key))
	builder.WriteString(r.prefix)
	builder.WriteString(":")
	builder.WriteString(key)
	return builder.String()
}

func (r *RedisCache) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, r.setPrefixKey(key), value, ttl).Err()
}

func (r *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := r.client.Exists(ctx, r.setPrefixKey(key)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

func (r *RedisCache) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.setPrefixKey(key)).Err()
}

func (r *RedisCache) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, r.setPrefixKey(key), value, ttl).Result()
}

func (r *RedisCache) CompareAndDelete(ctx context.Context, key string, value string) (bool, error) {
	n, err := compareAndDeleteScript.Run(ctx, r.client, []string{r.setPrefixKey(key)}, value).Int()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}
