package storage

import (
	"context"
	"fmt"
	"log"

	"agrimarket-cart/internal/config"
	"agrimarket-cart/internal/db"
	sessionrepo "agrimarket-cart/internal/repository/session"
)

// OpenSessions connects the session backend selected by cfg.SessionBackend. The
// returned func releases the underlying connections.
func OpenSessions(ctx context.Context, cfg config.Config, logger *log.Logger) (sessionrepo.Repository, func(), error) {
	switch cfg.SessionBackend {
	case config.BackendPostgres:
		pool, err := db.Connect(ctx, cfg.DBConnString)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		return sessionrepo.NewPostgres(pool, logger), pool.Close, nil
	case config.BackendRedis:
		client, err := db.ConnectRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		return sessionrepo.NewRedis(client, cfg.SessionTTL, logger), func() { client.Close() }, nil
	case config.BackendMemory:
		logger.Printf("using in-memory session backend; carts are lost on restart")
		return sessionrepo.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", cfg.SessionBackend)
	}
}
