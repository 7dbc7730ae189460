package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local rate = tonumber(ARGV[2])
local now = tonumber(ARGV[3])

local bucket = redis.call('HMGET', key, 'tokens', 'last_refill')
local currentTokens = tonumber(bucket[1])
local lastRefill = tonumber(bucket[2])

if currentTokens == nil then
	currentTokens = capacity
	lastRefill = now
end

local elapsedSeconds = (now - lastRefill) / 1000000000
currentTokens = math.min(capacity, currentTokens + elapsedSeconds * rate)

local allowed = 0
if currentTokens >= 1 then
	currentTokens = currentTokens - 1
	allowed = 1
end

redis.call('HSET', key, 'tokens', currentTokens, 'last_refill', now)
redis.call('EXPIRE', key, math.ceil(capacity / rate) + 1)
return allowed
`)

// RedisLimiter shares buckets across instances. Redis failures let the request through.
type RedisLimiter struct {
	LimiterConfig
	client redis.Scripter
}

var _ ILimiter = (*RedisLimiter)(nil)

func NewRedisLimiter(client redis.Scripter, config *LimiterConfig) *RedisLimiter {
	rl := &RedisLimiter{client: client}
	if config != nil {
		rl.LimiterConfig = *config
	} else {
		rl.LimiterConfig = GetDefaultLimiterConfig()
	}
	return rl
}

func (r *RedisLimiter) Allow(ctx context.Context, key string) bool {
	result, err := tokenBucketScript.Run(
		ctx,
		r.client,
		[]string{r.Prefix + ":" + key},
		r.Capacity,
		r.RatePS,
		time.Now().UnixNano(),
	).Int64()
	if err != nil {
		log.Ctx(ctx).Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, allowing request")
		return true
	}
	return result == 1
}

func (r *RedisLimiter) Stop() {}
