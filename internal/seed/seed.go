package seed

import (
	"context"
	"fmt"
	"log"

	"agrimarket-cart/internal/domain"
	cartsvc "agrimarket-cart/internal/service/cart"
	"github.com/shopspring/decimal"
)

// DemoSessionID is the session the demo cart is written to.
const DemoSessionID = "5d2c1c1e-7a5b-4f7e-9c3d-2b1a0f9e8d7c"

type sessionRepo interface {
	Load(ctx context.Context, sessionID string) ([]byte, error)
	Save(ctx context.Context, sessionID string, blob []byte) error
	Delete(ctx context.Context, sessionID string) error
}

func demoItems() []domain.LineItem {
	return []domain.LineItem{
		{
			ProductID: "65f0a1b2c3d4e5f60718293a",
			Mode:      domain.ModeBuy,
			Quantity:  5,
			Price:     decimal.RequireFromString("42.50"),
			Name:      "Organic Tomatoes",
			Unit:      "kg",
			Seller:    &domain.Seller{ID: "seller-green-valley", Name: "Green Valley Farm"},
		},
		{
			ProductID: "65f0a1b2c3d4e5f60718293b",
			Mode:      domain.ModeBuy,
			Quantity:  2,
			Price:     decimal.RequireFromString("310"),
			Name:      "Hybrid Maize Seeds",
			Unit:      "bag",
		},
		{
			ProductID:  "65f0a1b2c3d4e5f60718293c",
			Mode:       domain.ModeRent,
			Quantity:   1,
			DailyRate:  decimal.RequireFromString("1500"),
			RentalDays: 3,
			Deposit:    decimal.RequireFromString("5000"),
			Name:       "Compact Tractor",
			Seller:     &domain.Seller{ID: "seller-agri-rentals", Name: "Agri Rentals"},
		},
	}
}

// Apply replaces the demo session's cart with a fixed set of lines. Running it
// twice leaves the same cart behind.
func Apply(ctx context.Context, repo sessionRepo, logger *log.Logger) error {
	provider := cartsvc.NewProvider(repo, logger, cartsvc.Options{})
	store, err := provider.Open(ctx, DemoSessionID)
	if err != nil {
		return fmt.Errorf("open demo session: %w", err)
	}
	if _, err := store.Clear(ctx); err != nil {
		return fmt.Errorf("clear demo cart: %w", err)
	}
	for _, item := range demoItems() {
		if _, err := store.AddItem(ctx, item); err != nil {
			return fmt.Errorf("add %s: %w", item.Name, err)
		}
	}
	return nil
}
