package main

import (
	"context"
	"log"
	"os"

	"agrimarket-cart/internal/config"
	"agrimarket-cart/internal/db"
	"agrimarket-cart/internal/migrate"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[migrate] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if cfg.SessionBackend != config.BackendPostgres {
		logger.Printf("session backend is %s, nothing to migrate", cfg.SessionBackend)
		return
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		logger.Fatalf("apply migrations: %v", err)
	}

	version, dirty, err := migrate.Version(ctx, pool)
	if err != nil {
		logger.Fatalf("read migration version: %v", err)
	}
	logger.Printf("migrations applied (version=%d dirty=%t)", version, dirty)
}
