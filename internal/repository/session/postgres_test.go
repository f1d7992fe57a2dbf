package session

import (
	"context"
	"errors"
	"os"
	"testing"

	"agrimarket-cart/internal/domain"
	"agrimarket-cart/internal/migrate"
	"github.com/jackc/pgx/v5/pgxpool"
)

func TestPostgres_SaveLoadDelete(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	id := "7d0f4a52-3f7e-4c7b-9d1e-2b1f6c0a9e11"

	if _, err := repo.Load(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := repo.Save(ctx, id, []byte(`{"version":1,"items":[],"isOpen":false}`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := repo.Save(ctx, id, []byte(`{"version":1,"items":[],"isOpen":true}`)); err != nil {
		t.Fatalf("Save overwrite: %v", err)
	}
	got, err := repo.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"version":1,"items":[],"isOpen":true}` {
		t.Fatalf("unexpected blob %s", got)
	}
	if err := repo.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Load(ctx, id); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestPostgres_KeepsUnparseableBlob(t *testing.T) {
	ctx := context.Background()
	pool := testPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	repo := NewPostgres(pool, nil)
	if err := repo.Save(ctx, "broken", []byte(`{"items":[`)); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(ctx, "broken")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(got) != `{"items":[` {
		t.Fatalf("unexpected blob %s", got)
	}
}

func testPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE cart_sessions`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
