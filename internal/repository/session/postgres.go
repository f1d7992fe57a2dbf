package session

import (
	"context"
	"errors"
	"io"
	"log"

	"agrimarket-cart/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Load(ctx context.Context, sessionID string) ([]byte, error) {
	const q = `
SELECT blob
FROM cart_sessions
WHERE session_id = $1
`
	var blob string
	if err := r.pool.QueryRow(ctx, q, sessionID).Scan(&blob); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("session repo: load session_id=%s error=%v", sessionID, err)
		return nil, err
	}
	return []byte(blob), nil
}

func (r *postgresRepo) Save(ctx context.Context, sessionID string, blob []byte) error {
	const q = `
INSERT INTO cart_sessions (session_id, blob, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (session_id) DO UPDATE SET
    blob = EXCLUDED.blob,
    updated_at = EXCLUDED.updated_at
`
	if _, err := r.pool.Exec(ctx, q, sessionID, string(blob)); err != nil {
		r.logger.Printf("session repo: save session_id=%s error=%v", sessionID, err)
		return err
	}
	return nil
}

func (r *postgresRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_sessions WHERE session_id = $1`, sessionID)
	return err
}

func (r *postgresRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}
