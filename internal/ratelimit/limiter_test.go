package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/RoyceAzure/rj/util/random"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type LimiterTestSuite struct {
	suite.Suite
	config *LimiterConfig
	now    time.Time
}

func (s *LimiterTestSuite) SetupTest() {
	s.config = &LimiterConfig{
		Prefix:   "test",
		Capacity: 5,
		RatePS:   1,
	}
	s.now = time.Now()
}

func TestLimiterSuite(t *testing.T) {
	suite.Run(t, new(LimiterTestSuite))
}

func (s *LimiterTestSuite) newMemoryLimiter() *MemoryLimiter {
	limiter := NewMemoryLimiter(s.config)
	limiter.now = func() time.Time { return s.now }
	return limiter
}

func (s *LimiterTestSuite) TestMemoryLimiterCapacity() {
	limiter := s.newMemoryLimiter()
	defer limiter.Stop()
	ctx := context.Background()

	for i := 0; i < s.config.Capacity; i++ {
		require.True(s.T(), limiter.Allow(ctx, "1.1.1.1"), "request %d should pass", i+1)
	}
	require.False(s.T(), limiter.Allow(ctx, "1.1.1.1"), "bucket should be empty")

	// other clients have their own bucket
	require.True(s.T(), limiter.Allow(ctx, "2.2.2.2"))
}

func (s *LimiterTestSuite) TestMemoryLimiterRefill() {
	limiter := s.newMemoryLimiter()
	defer limiter.Stop()
	ctx := context.Background()

	for i := 0; i < s.config.Capacity; i++ {
		limiter.Allow(ctx, "k")
	}
	require.False(s.T(), limiter.Allow(ctx, "k"))

	s.now = s.now.Add(2 * time.Second)
	require.True(s.T(), limiter.Allow(ctx, "k"))
	require.True(s.T(), limiter.Allow(ctx, "k"))
	require.False(s.T(), limiter.Allow(ctx, "k"))

	// never above capacity
	s.now = s.now.Add(time.Hour)
	for i := 0; i < s.config.Capacity; i++ {
		require.True(s.T(), limiter.Allow(ctx, "k"))
	}
	require.False(s.T(), limiter.Allow(ctx, "k"))
}

func (s *LimiterTestSuite) TestMemoryLimiterSweep() {
	limiter := s.newMemoryLimiter()
	defer limiter.Stop()

	limiter.Allow(context.Background(), "k")
	limiter.sweep()
	_, ok := limiter.buckets.Load("k")
	require.True(s.T(), ok, "partly used bucket is kept")

	s.now = s.now.Add(time.Minute)
	limiter.sweep()
	_, ok = limiter.buckets.Load("k")
	require.False(s.T(), ok, "full bucket is dropped")
}

func (s *LimiterTestSuite) TestMemoryLimiterConcurrent() {
	limiter := s.newMemoryLimiter()
	defer limiter.Stop()

	var allowed atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if limiter.Allow(context.Background(), "k") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()
	require.EqualValues(s.T(), s.config.Capacity, allowed.Load())
}

func (s *LimiterTestSuite) TestRedisLimiter() {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		s.T().Skip("TEST_REDIS_ADDR not set, skipping")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, Password: os.Getenv("TEST_REDIS_PASSWORD")})
	defer client.Close()

	limiter := NewRedisLimiter(client, s.config)
	key := random.RandomString(10)
	ctx := context.Background()
	for i := 0; i < s.config.Capacity; i++ {
		require.True(s.T(), limiter.Allow(ctx, key), "request %d should pass", i+1)
	}
	require.False(s.T(), limiter.Allow(ctx, key))
}

func TestRateLimitMiddleware(t *testing.T) {
	limiter := NewMemoryLimiter(&LimiterConfig{Capacity: 1, RatePS: 1})
	defer limiter.Stop()

	handler := NewRateLimitMiddleware(limiter)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/graphql", nil)
	req.RemoteAddr = "10.0.0.1:5555"

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	req.RemoteAddr = "10.0.0.2:5555"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
