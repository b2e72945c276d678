package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Config bounds every key to Requests per Window.
type Config struct {
	Requests int
	Window   time.Duration
}

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// memoryLimiter keeps one token bucket per key in process memory.
type memoryLimiter struct {
	cfg     Config
	mu      sync.Mutex
	buckets map[string]*entry
	now     func() time.Time
}

const sweepThreshold = 10000

// NewMemoryLimiter creates an in-process limiter. Use it for single-instance deployments.
func NewMemoryLimiter(cfg Config) Limiter {
	return &memoryLimiter{
		cfg:     cfg,
		buckets: make(map[string]*entry),
		now:     time.Now,
	}
}

func (l *memoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= sweepThreshold {
			l.sweep(now)
		}
		every := l.cfg.Window / time.Duration(l.cfg.Requests)
		e = &entry{limiter: rate.NewLimiter(rate.Every(every), l.cfg.Requests)}
		l.buckets[key] = e
	}
	e.lastSeen = now

	return e.limiter.AllowN(now, 1), nil
}

// sweep drops buckets idle for longer than a window. A full bucket is
// indistinguishable from a new one, so nothing is lost.
func (l *memoryLimiter) sweep(now time.Time) {
	for key, e := range l.buckets {
		if now.Sub(e.lastSeen) > l.cfg.Window {
			delete(l.buckets, key)
		}
	}
}

// redisLimiter counts requests per fixed window in Redis so limits hold across instances.
type redisLimiter struct {
	client redis.Cmdable
	cfg    Config
	prefix string
	now    func() time.Time
}

// NewRedisLimiter creates a fixed-window limiter backed by Redis.
func NewRedisLimiter(client redis.Cmdable, cfg Config) Limiter {
	return &redisLimiter{
		client: client,
		cfg:    cfg,
		prefix: "dinelt:ratelimit:",
		now:    time.Now,
	}
}

func (l *redisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().UnixNano() / int64(l.cfg.Window)
	redisKey := fmt.Sprintf("%s%s:%d", l.prefix, key, window)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.ExpireNX(ctx, redisKey, l.cfg.Window)
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	return incr.Val() <= int64(l.cfg.Requests), nil
}

// NewRedisClient creates a go-redis client and verifies connectivity.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
