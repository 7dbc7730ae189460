package ratelimit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

type TokenBucket struct {
	capacity     int64
	ratePS       int64
	current      atomic.Int64
	lastRefilled atomic.Int64
}

func newTokenBucket(capacity, ratePS int, now int64) *TokenBucket {
	t := &TokenBucket{capacity: int64(capacity), ratePS: int64(ratePS)}
	t.current.Store(t.capacity)
	t.lastRefilled.Store(now)
	return t
}

func (t *TokenBucket) refill(now int64) {
	for {
		last := t.lastRefilled.Load()
		tokenToAdd := (now - last) * t.ratePS / int64(time.Second)
		if tokenToAdd <= 0 {
			return
		}
		// only the goroutine that moves lastRefilled adds the tokens
		consumed := int64(time.Duration(tokenToAdd) * time.Second / time.Duration(t.ratePS))
		if !t.lastRefilled.CompareAndSwap(last, last+consumed) {
			continue
		}
		for {
			current := t.current.Load()
			newTokens := current + tokenToAdd
			if newTokens > t.capacity {
				newTokens = t.capacity
			}
			if t.current.CompareAndSwap(current, newTokens) {
				return
			}
		}
	}
}

func (t *TokenBucket) take(now int64) bool {
	t.refill(now)
	for {
		current := t.current.Load()
		if current <= 0 {
			return false
		}
		if t.current.CompareAndSwap(current, current-1) {
			return true
		}
	}
}

func (t *TokenBucket) full(now int64) bool {
	t.refill(now)
	return t.current.Load() >= t.capacity
}

// MemoryLimiter keeps one bucket per key in process memory.
// Call Stop to end the sweeper.
type MemoryLimiter struct {
	LimiterConfig
	buckets sync.Map
	now     func() time.Time
	cancel  chan struct{}
	once    sync.Once
}

var _ ILimiter = (*MemoryLimiter)(nil)

func NewMemoryLimiter(config *LimiterConfig) *MemoryLimiter {
	m := &MemoryLimiter{
		now:    time.Now,
		cancel: make(chan struct{}),
	}
	if config != nil {
		m.LimiterConfig = *config
	} else {
		m.LimiterConfig = GetDefaultLimiterConfig()
	}
	if m.RefillRate > 0 {
		go m.background()
	}
	return m
}

func (m *MemoryLimiter) Allow(ctx context.Context, key string) bool {
	now := m.now().UnixNano()
	b, ok := m.buckets.Load(key)
	if !ok {
		b, _ = m.buckets.LoadOrStore(key, newTokenBucket(m.Capacity, m.RatePS, now))
	}
	return b.(*TokenBucket).take(now)
}

// sweep drops buckets that have refilled completely, a fresh bucket behaves the same.
func (m *MemoryLimiter) sweep() {
	now := m.now().UnixNano()
	m.buckets.Range(func(key, value any) bool {
		if value.(*TokenBucket).full(now) {
			m.buckets.Delete(key)
		}
		return true
	})
}

func (m *MemoryLimiter) background() {
	ticker := time.NewTicker(m.RefillRate)
	defer ticker.Stop()

	for {
		select {
		case <-m.cancel:
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m *MemoryLimiter) Stop() {
	m.once.Do(func() {
		close(m.cancel)
	})
}
