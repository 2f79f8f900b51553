// Package redis provides the distributed per-table lock used to serialize
// cart submissions across API instances.
package redis

import (
	"context"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/AgarwalVaibhav-20/dq-backend/pkg/config"
)

const (
	lockTTL = 30 * time.Second
	// Retries cover the common case of two waiters hitting the same table
	// at once; the second obtains the lock as soon as the first commits.
	retryInterval = 100 * time.Millisecond
)

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

// Locker acquires table locks through redislock.
type Locker struct {
	client *redislock.Client
}

func NewLocker(client *redis.Client) *Locker {
	return &Locker{client: redislock.New(client)}
}

// Lock obtains the key, retrying on a fixed interval until ctx expires. The
// returned release function is safe to call after the TTL has lapsed.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.client.Obtain(ctx, key, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryInterval), int(lockTTL/retryInterval)),
	})
	if err != nil {
		return nil, err
	}
	return func() { _ = lock.Release(context.Background()) }, nil
}
