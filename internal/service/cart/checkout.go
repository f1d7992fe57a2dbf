package cart

import (
	"time"

	"agrimarket-cart/internal/domain"
)

// OrderItem is one entry of the marketplace order creation request.
type OrderItem struct {
	ItemID         string    `json:"itemId"`
	Type           string    `json:"type"`
	Quantity       int       `json:"quantity"`
	RentalDuration int       `json:"rentalDuration"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

type OrderRequest struct {
	Items []OrderItem `json:"items"`
}

// BuildOrderRequest converts the cart into the order payload. Rentals start at now
// and end rentalDays later; purchases carry a zero duration.
func BuildOrderRequest(state domain.CartState, now time.Time) OrderRequest {
	now = now.UTC()
	items := make([]OrderItem, 0, len(state.Items))
	for _, item := range state.Items {
		days := 0
		if item.Mode == domain.ModeRent {
			days = item.RentalDays
		}
		items = append(items, OrderItem{
			ItemID:         item.ProductID,
			Type:           string(item.Mode),
			Quantity:       item.Quantity,
			RentalDuration: days,
			StartDate:      now,
			EndDate:        now.AddDate(0, 0, days),
		})
	}
	return OrderRequest{Items: items}
}
