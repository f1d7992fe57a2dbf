package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agrimarket-cart/internal/config"
	"agrimarket-cart/internal/httpserver"
	cartsvc "agrimarket-cart/internal/service/cart"
	sessionsvc "agrimarket-cart/internal/service/session"
	"agrimarket-cart/internal/storage"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	sessions, closeSessions, err := storage.OpenSessions(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("open session backend %s: %v", cfg.SessionBackend, err)
	}
	defer closeSessions()

	provider := cartsvc.NewProvider(sessions, logger, cartsvc.Options{
		RestoreDrawer: cfg.RestoreDrawer,
		CacheSize:     cfg.CartCacheSize,
	})

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Carts:          provider,
		Sessions:       sessionsvc.New(),
		Backend:        sessions,
		TaxRate:        cfg.TaxRate,
		AllowedOrigins: cfg.AllowedOrigins,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (sessions: %s)", cfg.HTTPAddr, cfg.SessionBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
