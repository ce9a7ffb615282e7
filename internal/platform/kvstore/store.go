// Package kvstore wraps the hosted key-value store behind the small set of
// hash and list primitives the domain layer consumes. Individual commands
// are atomic; there are no cross-command transactions, and the domain layer
// above must not assume any.
package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is the primitive surface consumed by the repositories. Every method
// maps to a single store command.
type Store interface {
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	// HGet returns the field value and whether the field exists.
	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key, field, value string) error
	HDel(ctx context.Context, key, field string) error
	HLen(ctx context.Context, key string) (int64, error)

	// LPush pushes the value onto the head of the list.
	LPush(ctx context.Context, key, value string) error
	// LRem removes every occurrence of value from the list. Removing an
	// absent value is a no-op, not an error.
	LRem(ctx context.Context, key, value string) error
	LRange(ctx context.Context, key string) ([]string, error)

	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	// SetNX sets key to value only if it does not exist, reporting whether
	// the write happened. Used as the migration guard.
	SetNX(ctx context.Context, key, value string) (bool, error)

	Ping(ctx context.Context) error
}

type redisStore struct {
	rdb *redis.Client
}

// Config holds the connection parameters for the store.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// Connect builds a client and verifies the connection with a short ping.
func Connect(ctx context.Context, cfg Config) (Store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &redisStore{rdb: rdb}, nil
}

// NewWithClient wraps an existing client. Tests inject mock clients here.
func NewWithClient(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	return s.rdb.HGetAll(ctx, key).Result()
}

func (s *redisStore) HGet(ctx context.Context, key, field string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, key, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisStore) HSet(ctx context.Context, key, field, value string) error {
	return s.rdb.HSet(ctx, key, field, value).Err()
}

func (s *redisStore) HDel(ctx context.Context, key, field string) error {
	return s.rdb.HDel(ctx, key, field).Err()
}

func (s *redisStore) HLen(ctx context.Context, key string) (int64, error) {
	return s.rdb.HLen(ctx, key).Result()
}

func (s *redisStore) LPush(ctx context.Context, key, value string) error {
	return s.rdb.LPush(ctx, key, value).Err()
}

func (s *redisStore) LRem(ctx context.Context, key, value string) error {
	return s.rdb.LRem(ctx, key, 0, value).Err()
}

func (s *redisStore) LRange(ctx context.Context, key string) ([]string, error) {
	return s.rdb.LRange(ctx, key, 0, -1).Result()
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return s.rdb.Keys(ctx, pattern).Result()
}

func (s *redisStore) SetNX(ctx context.Context, key, value string) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, 0).Result()
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
