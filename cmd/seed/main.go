package main

import (
	"context"
	"log"
	"os"

	"agrimarket-cart/internal/config"
	"agrimarket-cart/internal/seed"
	"agrimarket-cart/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[seed] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	sessions, closeSessions, err := storage.OpenSessions(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open session backend: %v", err)
	}
	defer closeSessions()

	if err := seed.Apply(ctx, sessions, logger); err != nil {
		logger.Fatalf("seed apply: %v", err)
	}

	logger.Printf("seed applied (session %s)", seed.DemoSessionID)
}
