package scheduler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var _ Locker = (*RedisLocker)(nil)

// RedisLocker lock distribuido con redislock (SET NX + TTL).
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisClient parsea REDIS_URL (redis://[:pass@]host:port/db) y verifica la conexión.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("REDIS_URL inválida: %w", err)
	}
	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

func NewRedisLocker(rdb redislock.RedisClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(rdb)}
}

// Obtain intenta una sola vez (sin reintentos); si otra réplica tiene el lock devuelve ErrLockNotObtained.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Lock, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockNotObtained
	}
	if err != nil {
		return nil, fmt.Errorf("obtener lock %s: %w", key, err)
	}
	return lock, nil
}
