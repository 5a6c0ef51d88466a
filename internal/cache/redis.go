package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/busbooking/config"
	"github.com/Domenick1991/busbooking/internal/domain"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps a short-lived copy of each date's seat map. Entries are
// keyed by process epoch and seat map version, so a key only ever holds the
// seats of exactly that version and entries left by an earlier process are
// never read.
type RedisCache struct {
	client   *redis.Client
	seatsTTL time.Duration
	epoch    string
}

type RedisCacheOption func(*RedisCache)

// WithEpoch fixes the key prefix that separates this process's entries.
func WithEpoch(epoch string) RedisCacheOption {
	return func(c *RedisCache) {
		c.epoch = epoch
	}
}

func NewRedisCache(cfg config.RedisConfig, seatsTTL time.Duration, opts ...RedisCacheOption) *RedisCache {
	return NewRedisCacheFromClient(
		redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		seatsTTL,
		opts...,
	)
}

func NewRedisCacheFromClient(client *redis.Client, seatsTTL time.Duration, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{client: client, seatsTTL: seatsTTL, epoch: uuid.NewString()[:8]}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetSeats returns nil, nil on a cache miss.
func (c *RedisCache) GetSeats(ctx context.Context, date string, version uint64) ([]domain.Seat, error) {
	data, err := c.client.Get(ctx, c.seatsKey(date, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var seats []domain.Seat
	if err := json.Unmarshal(data, &seats); err != nil {
		return nil, fmt.Errorf("decode cached seats for %s: %w", date, err)
	}
	return seats, nil
}

func (c *RedisCache) SetSeats(ctx context.Context, date string, version uint64, seats []domain.Seat) error {
	payload, err := json.Marshal(seats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.seatsKey(date, version), payload, c.seatsTTL).Err()
}

// InvalidateSeats drops one version of the seat map of date.
func (c *RedisCache) InvalidateSeats(ctx context.Context, date string, version uint64) error {
	return c.client.Del(ctx, c.seatsKey(date, version)).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) seatsKey(date string, version uint64) string {
	return fmt.Sprintf("cache:seats:%s:%s:v%d", c.epoch, date, version)
}
