package session

import (
	"context"
)

// Repository stores one encoded cart blob per session id. Load returns
// domain.ErrNotFound for unknown sessions.
type Repository interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, blob []byte) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
