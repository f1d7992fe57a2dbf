package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"agrimarket-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrStoreClosed is returned by a Store whose session was forgotten.
var ErrStoreClosed = errors.New("cart session closed")

type persister interface {
	Persist(ctx context.Context, sessionID string, state domain.CartState) error
}

// Store is the cart of one session. Every transition goes through Reduce and is
// written to the session backend before the call returns.
type Store struct {
	mu        sync.Mutex
	sessionID string
	state     domain.CartState
	persist   persister
	closed    bool
}

func newStore(sessionID string, initial domain.CartState, p persister) *Store {
	if initial.Items == nil {
		initial.Items = []domain.LineItem{}
	}
	return &Store{sessionID: sessionID, state: initial, persist: p}
}

func (s *Store) SessionID() string {
	return s.sessionID
}

// Dispatch applies actions in order and persists the result once. When persisting
// fails the previous state is kept and the error returned.
func (s *Store) Dispatch(ctx context.Context, actions ...Action) (domain.CartState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return s.state.Clone(), ErrStoreClosed
	}
	next := s.state
	for _, action := range actions {
		next = Reduce(next, action)
	}
	if s.persist != nil {
		if err := s.persist.Persist(ctx, s.sessionID, next); err != nil {
			return s.state.Clone(), fmt.Errorf("persist cart %s after %s: %w", s.sessionID, actionNames(actions), err)
		}
	}
	s.state = next
	return next.Clone(), nil
}

// AddItem validates item and adds it to the cart. It does not change drawer
// visibility; use AddItemAndOpen to show the cart in the same write.
func (s *Store) AddItem(ctx context.Context, item domain.LineItem) (domain.CartState, error) {
	item, err := normalizeItem(item)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.Dispatch(ctx, AddItem{Item: item})
}

// AddItemAndOpen adds item and opens the drawer as a single persisted transition.
func (s *Store) AddItemAndOpen(ctx context.Context, item domain.LineItem) (domain.CartState, error) {
	item, err := normalizeItem(item)
	if err != nil {
		return s.Snapshot(), err
	}
	return s.Dispatch(ctx, AddItem{Item: item}, OpenDrawer{})
}

func (s *Store) RemoveItem(ctx context.Context, productID string, mode domain.AcquisitionMode) (domain.CartState, error) {
	return s.Dispatch(ctx, RemoveItem{Key: domain.LineKey{ProductID: productID, Mode: mode}})
}

// UpdateQuantity sets the line's quantity. Zero or less removes the line.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, mode domain.AcquisitionMode, quantity int) (domain.CartState, error) {
	if quantity > domain.MaxQuantity {
		return s.Snapshot(), domain.ErrInvalidQuantity
	}
	return s.Dispatch(ctx, UpdateQuantity{Key: domain.LineKey{ProductID: productID, Mode: mode}, Quantity: quantity})
}

func (s *Store) Clear(ctx context.Context) (domain.CartState, error) {
	return s.Dispatch(ctx, ClearCart{})
}

func (s *Store) ToggleDrawer(ctx context.Context) (domain.CartState, error) {
	return s.Dispatch(ctx, ToggleDrawer{})
}

func (s *Store) OpenDrawer(ctx context.Context) (domain.CartState, error) {
	return s.Dispatch(ctx, OpenDrawer{})
}

func (s *Store) CloseDrawer(ctx context.Context) (domain.CartState, error) {
	return s.Dispatch(ctx, CloseDrawer{})
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() domain.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) Items() []domain.LineItem {
	return s.Snapshot().Items
}

func (s *Store) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close runs release while holding the store lock and marks the store closed when
// it succeeds, so no in-flight transition can persist after it.
func (s *Store) close(release func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := release(); err != nil {
		return err
	}
	s.closed = true
	return nil
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.IsOpen
}

func (s *Store) Total() decimal.Decimal {
	return Total(s.Snapshot())
}

func (s *Store) Summary(taxRate decimal.Decimal) Summary {
	return Summarize(s.Snapshot(), taxRate)
}

func normalizeItem(item domain.LineItem) (domain.LineItem, error) {
	item.ProductID = strings.TrimSpace(item.ProductID)
	if !domain.ValidProductID(item.ProductID) {
		return item, domain.ErrInvalidProductID
	}
	if item.Mode == "" {
		item.Mode = domain.ModeBuy
	}
	if !item.Mode.Valid() {
		return item, domain.ErrInvalidMode
	}
	if item.Quantity < 0 || item.Quantity > domain.MaxQuantity {
		return item, domain.ErrInvalidQuantity
	}
	if item.Price.IsNegative() || item.DailyRate.IsNegative() || item.Deposit.IsNegative() {
		return item, domain.ErrInvalidPrice
	}
	if item.Mode == domain.ModeRent {
		if item.RentalDays < 0 {
			return item, domain.ErrInvalidRentalDays
		}
		if item.RentalDays == 0 {
			item.RentalDays = 1
		}
	} else {
		item.RentalDays = 0
		item.DailyRate = decimal.Zero
		item.Deposit = decimal.Zero
	}
	return item, nil
}
