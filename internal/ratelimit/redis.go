package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "badge:clicks:"

// RedisLimiter is a fixed-window counter shared by every instance of the
// service. Keys expire with their window.
type RedisLimiter struct {
	rdb *redis.Client
	cfg Config
	now func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, cfg Config) *RedisLimiter {
	return &RedisLimiter{
		rdb: rdb,
		cfg: cfg.withDefaults(),
		now: time.Now,
	}
}

// NewRedisClient connects to Redis and checks the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return rdb, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, productID int64) (bool, error) {
	key := l.key(productID, l.now())

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.cfg.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, fmt.Errorf("failed to count click: %w", err)
	}

	return incr.Val() <= int64(l.cfg.Limit), nil
}

func (l *RedisLimiter) key(productID int64, now time.Time) string {
	window := now.Unix() / int64(l.cfg.Window/time.Second)
	return keyPrefix + strconv.FormatInt(productID, 10) + ":" + strconv.FormatInt(window, 10)
}
