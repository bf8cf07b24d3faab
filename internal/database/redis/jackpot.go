// Package redis keeps progressive jackpot pools in Redis so several racks
// instances share one pool
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/wrecklessracks/racks/internal/domain"
)

// KeyPrefix namespaces pool hashes
const KeyPrefix = "racks:jackpot:"

const (
	fieldAmount = "amount"
	fieldSeed   = "seed"
)

var ensureScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	redis.call('HSET', KEYS[1], 'amount', ARGV[1], 'seed', ARGV[2])
end
return 1`)

var addScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return false
end
return redis.call('HINCRBY', KEYS[1], 'amount', ARGV[1])`)

var awardScript = redis.NewScript(`
local amount = redis.call('HGET', KEYS[1], 'amount')
if not amount then
	return false
end
redis.call('HSET', KEYS[1], 'amount', redis.call('HGET', KEYS[1], 'seed'))
return tonumber(amount)`)

// Options configures the Redis connection
type Options struct {
	Addr     string
	Password string
	DB       int
}

// JackpotStore implements repository.Jackpot with Lua scripts, so every
// operation is atomic on the server
type JackpotStore struct {
	client *redis.Client
}

// NewJackpotStore connects to Redis and verifies the connection
func NewJackpotStore(ctx context.Context, opts Options) (*JackpotStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolTimeout:  4 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return &JackpotStore{client: client}, nil
}

func (s *JackpotStore) EnsurePool(ctx context.Context, poolID string, initial, seed int64) error {
	if err := ensureScript.Run(ctx, s.client, []string{key(poolID)}, initial, seed).Err(); err != nil {
		return fmt.Errorf("failed to create jackpot pool %s: %w", poolID, err)
	}
	return nil
}

func (s *JackpotStore) GetJackpot(ctx context.Context, poolID string) (*domain.ProgressiveJackpot, error) {
	vals, err := s.client.HMGet(ctx, key(poolID), fieldAmount, fieldSeed).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read jackpot pool %s: %w", poolID, err)
	}
	if vals[0] == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}

	pool := domain.ProgressiveJackpot{PoolID: poolID}
	if pool.Amount, err = parseField(vals[0]); err != nil {
		return nil, err
	}
	if pool.Seed, err = parseField(vals[1]); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *JackpotStore) AddToJackpot(ctx context.Context, poolID string, amount int64) (int64, error) {
	total, err := addScript.Run(ctx, s.client, []string{key(poolID)}, amount).Int64()
	if err != nil {
		return 0, poolErr(err, poolID)
	}
	return total, nil
}

func (s *JackpotStore) AwardJackpot(ctx context.Context, poolID string) (int64, error) {
	won, err := awardScript.Run(ctx, s.client, []string{key(poolID)}).Int64()
	if err != nil {
		return 0, poolErr(err, poolID)
	}
	return won, nil
}

// Ping reports whether Redis is reachable
func (s *JackpotStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the Redis connection
func (s *JackpotStore) Close() error {
	return s.client.Close()
}

func key(poolID string) string {
	return KeyPrefix + poolID
}

func parseField(v interface{}) (int64, error) {
	str, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected jackpot field type %T", v)
	}
	n, err := strconv.ParseInt(str, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse jackpot field: %w", err)
	}
	return n, nil
}

func poolErr(err error, poolID string) error {
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", domain.ErrJackpotPoolNotFound, poolID)
	}
	return fmt.Errorf("failed to update jackpot pool %s: %w", poolID, err)
}
