package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"agrimarket-cart/internal/domain"
	"agrimarket-cart/internal/sessionblob"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize bounds the hydrated stores kept in memory when Options.CacheSize is unset.
const DefaultCacheSize = 10000

const hydrateTimeout = 5 * time.Second

type sessionRepo interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, blob []byte) error
	Delete(ctx context.Context, sessionID string) error
}

type Options struct {
	// RestoreDrawer keeps the persisted drawer flag on hydration. When false every
	// hydrated cart starts with the drawer closed.
	RestoreDrawer bool
	// CacheSize is the number of hydrated stores kept in memory. The least recently
	// opened store is evicted first; its state is already persisted.
	CacheSize int
}

// Provider hands out one Store per session, hydrating it from the session backend
// when the session is not among the recently opened ones.
type Provider struct {
	repo   sessionRepo
	logger *log.Logger
	opts   Options

	stores *lru.Cache
	group  singleflight.Group
}

func NewProvider(repo sessionRepo, logger *log.Logger, opts Options) *Provider {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	// lru.New only fails for a non-positive size.
	stores, _ := lru.New(opts.CacheSize)
	return &Provider{
		repo:   repo,
		logger: logger,
		opts:   opts,
		stores: stores,
	}
}

// Cached reports how many hydrated stores are held in memory.
func (p *Provider) Cached() int {
	return p.stores.Len()
}

func (p *Provider) Open(ctx context.Context, sessionID string) (*Store, error) {
	if s := p.cached(sessionID); s != nil {
		return s, nil
	}
	v, err, _ := p.group.Do(sessionID, func() (interface{}, error) {
		if s := p.cached(sessionID); s != nil {
			return s, nil
		}
		// Shared by every caller waiting on this key, so one cancelled request must
		// not fail the others.
		hctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), hydrateTimeout)
		defer cancel()
		state, err := p.hydrate(hctx, sessionID)
		if err != nil {
			return nil, err
		}
		s := newStore(sessionID, state, p)
		p.stores.Add(sessionID, s)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Store), nil
}

// Persist writes state as the session's blob. Stores call it after every transition.
func (p *Provider) Persist(ctx context.Context, sessionID string, state domain.CartState) error {
	blob, err := sessionblob.Encode(state)
	if err != nil {
		return err
	}
	return p.repo.Save(ctx, sessionID, blob)
}

// Forget drops the session from the backend and from memory. A store already handed
// out for the session is closed first so it cannot write the blob back.
func (p *Provider) Forget(ctx context.Context, sessionID string) error {
	s := p.cached(sessionID)
	if s == nil {
		if err := p.repo.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("delete session %s: %w", sessionID, err)
		}
		return nil
	}

	err := s.close(func() error { return p.repo.Delete(ctx, sessionID) })
	if err != nil {
		return fmt.Errorf("delete session %s: %w", sessionID, err)
	}
	if v, ok := p.stores.Peek(sessionID); ok && v.(*Store) == s {
		p.stores.Remove(sessionID)
	}
	return nil
}

// cached treats a closed store as a miss so the next Open starts a fresh cart.
func (p *Provider) cached(sessionID string) *Store {
	v, ok := p.stores.Get(sessionID)
	if !ok {
		return nil
	}
	s := v.(*Store)
	if s.isClosed() {
		return nil
	}
	return s
}

// hydrate never fails on bad data: unknown sessions and unreadable blobs both yield
// an empty cart. Only backend errors are returned.
func (p *Provider) hydrate(ctx context.Context, sessionID string) (domain.CartState, error) {
	empty := domain.CartState{Items: []domain.LineItem{}}

	raw, err := p.repo.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		return empty, nil
	}
	if err != nil {
		return domain.CartState{}, fmt.Errorf("load session %s: %w", sessionID, err)
	}

	state, report, err := sessionblob.Decode(raw)
	if err != nil {
		p.logger.Printf("cart: session_id=%s unreadable blob, starting empty: %v", sessionID, err)
		return empty, nil
	}
	if len(report.Dropped) > 0 {
		p.logger.Printf("cart: session_id=%s dropped %d invalid lines %v", sessionID, len(report.Dropped), report.Dropped)
	}
	if report.Merged > 0 {
		p.logger.Printf("cart: session_id=%s merged %d duplicate lines", sessionID, report.Merged)
	}
	if report.FromVersion != sessionblob.CurrentVersion {
		p.logger.Printf("cart: session_id=%s migrated blob from version %d", sessionID, report.FromVersion)
	}
	if !p.opts.RestoreDrawer {
		state.IsOpen = false
	}
	return state, nil
}
