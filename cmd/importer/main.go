package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"agrimarket-cart/internal/config"
	"agrimarket-cart/internal/importer"
	sessionsvc "agrimarket-cart/internal/service/session"
	"agrimarket-cart/internal/storage"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to a session_id,cart_json CSV export of browser carts")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[importer] ", log.LstdFlags|log.LUTC)
	ctx := context.Background()

	sessions, closeSessions, err := storage.OpenSessions(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("open session backend: %v", err)
	}
	defer closeSessions()

	abs, err := filepath.Abs(filePath)
	if err != nil {
		log.Fatalf("resolve %s: %v", filePath, err)
	}

	start := time.Now()
	stats, err := importer.ImportFile(ctx, os.DirFS(filepath.Dir(abs)), filepath.Base(abs), sessions, sessionsvc.New(), logger)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	fmt.Printf("Imported %d carts (%d migrated, %d skipped, %d invalid lines dropped, %d merged) into %s in %s\n",
		stats.Imported, stats.Migrated, stats.Skipped, stats.DroppedLines, stats.MergedLines,
		cfg.SessionBackend, time.Since(start).Truncate(time.Millisecond))
}
