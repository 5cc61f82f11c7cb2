// Package cache wraps Redis for match-result caching and trainer locks.
// A missing Redis never takes the service down: every method degrades to
// a no-op and the match path recomputes instead of reading the cache.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"strings"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const fallbackTTL = 10 * time.Minute

// Options carries the connection settings the container reads from config.
type Options struct {
	Host       string
	Port       string
	Password   string
	DefaultTTL time.Duration
}

type Redis struct {
	client     *redis.Client
	defaultTTL time.Duration
	logger     *log.Logger

	warned atomic.Bool
}

// NewRedis dials Redis and probes it once. When the probe fails the
// returned handle is degraded rather than nil so callers never have to
// branch on availability.
func NewRedis(opts Options, logger *log.Logger) *Redis {
	host := strings.TrimSpace(opts.Host)
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(opts.Port)
	if port == "" {
		port = "6379"
	}
	ttl := opts.DefaultTTL
	if ttl <= 0 {
		ttl = fallbackTTL
	}

	r := &Redis{defaultTTL: ttl, logger: logger}

	client := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: strings.TrimSpace(opts.Password),
		DB:       0,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		r.noteFailure(err)
		_ = client.Close()
		return r
	}

	r.client = client
	return r
}

func (r *Redis) degraded() bool {
	return r == nil || r.client == nil
}

// noteFailure logs the first Redis error and stays quiet afterwards so a
// long outage does not flood the log.
func (r *Redis) noteFailure(err error) {
	if r == nil || r.logger == nil {
		return
	}
	if r.warned.CompareAndSwap(false, true) {
		r.logger.Printf("redis unavailable, serving without cache: %v", err)
	}
}

func (r *Redis) Ping(ctx context.Context) error {
	if r.degraded() {
		return errors.New("redis unavailable")
	}
	return r.client.Ping(ctx).Err()
}

// GetJSON reads key and unmarshals it into out. The bool reports whether
// the key existed; a degraded handle always reports a miss.
func (r *Redis) GetJSON(ctx context.Context, key string, out any) (bool, error) {
	if r.degraded() {
		return false, nil
	}
	b, err := r.client.Get(ctx, key).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return false, nil
	case err != nil:
		r.noteFailure(err)
		return false, err
	case len(b) == 0:
		return false, nil
	}
	if err := json.Unmarshal(b, out); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores value under key. A non-positive ttl falls back to the
// configured default.
func (r *Redis) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if r.degraded() {
		return nil
	}
	if ttl <= 0 {
		ttl = r.defaultTTL
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, b, ttl).Err(); err != nil {
		r.noteFailure(err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if r.degraded() {
		return nil
	}
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.noteFailure(err)
		return err
	}
	return nil
}

// DeleteByPattern removes every key matching a glob pattern. It walks the
// keyspace with SCAN, so it is safe on a shared instance.
func (r *Redis) DeleteByPattern(ctx context.Context, pattern string) error {
	if r.degraded() {
		return nil
	}
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil && r.logger != nil {
			r.logger.Printf("redis delete failed key=%s pattern=%s err=%v", iter.Val(), pattern, err)
		}
	}
	return iter.Err()
}

// SetIfNotExists implements the trainer's per-user lock via SETNX. The
// bool reports whether this caller won the lock. Without Redis there is
// no shared lock to lose, so a degraded handle always wins.
func (r *Redis) SetIfNotExists(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	if r.degraded() {
		return true, nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	ok, err := r.client.SetNX(ctx, key, value, ttl).Result()
	if err != nil {
		r.noteFailure(err)
		return false, err
	}
	return ok, nil
}
