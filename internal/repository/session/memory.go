package session

import (
	"context"
	"sync"

	"agrimarket-cart/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemory returns a process local Repository. Contents are lost on restart.
func NewMemory() Repository {
	return &memoryRepo{blobs: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, sessionID string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	blob, ok := r.blobs[sessionID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (r *memoryRepo) Save(_ context.Context, sessionID string, blob []byte) error {
	r.mu.Lock()
	r.blobs[sessionID] = append([]byte(nil), blob...)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	delete(r.blobs, sessionID)
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}
