package ratelimit

import (
	"context"
	"time"
)

type LimiterConfig struct {
	Prefix     string
	Capacity   int
	RatePS     int           // tokens/second
	RefillRate time.Duration // how often idle buckets are swept
}

func GetDefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		Prefix:     "ratelimit",
		Capacity:   60,
		RatePS:     1,
		RefillRate: time.Minute,
	}
}

// ILimiter decides per client key.
type ILimiter interface {
	Allow(ctx context.Context, key string) bool
	Stop()
}
