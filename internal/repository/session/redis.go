package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"agrimarket-cart/internal/domain"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

// NewRedis stores blobs under cart:session:<id>. Every save refreshes the expiry;
// a zero ttl keeps sessions forever.
func NewRedis(client *redis.Client, ttl time.Duration, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &redisRepo{client: client, ttl: ttl, logger: logger}
}

func (r *redisRepo) Load(ctx context.Context, sessionID string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		r.logger.Printf("session repo: redis get session_id=%s error=%v", sessionID, err)
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return data, nil
}

func (r *redisRepo) Save(ctx context.Context, sessionID string, blob []byte) error {
	if err := r.client.Set(ctx, redisKey(sessionID), blob, r.ttl).Err(); err != nil {
		r.logger.Printf("session repo: redis set session_id=%s error=%v", sessionID, err)
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *redisRepo) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, redisKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *redisRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func redisKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
