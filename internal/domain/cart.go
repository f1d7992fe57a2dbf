package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// AcquisitionMode tells whether a line is bought outright or rented for a number of days.
type AcquisitionMode string

const (
	ModeBuy  AcquisitionMode = "buy"
	ModeRent AcquisitionMode = "rent"
)

// ParseMode normalizes a client supplied mode. An empty value means buy.
func ParseMode(raw string) (AcquisitionMode, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(ModeBuy):
		return ModeBuy, nil
	case string(ModeRent):
		return ModeRent, nil
	default:
		return "", ErrInvalidMode
	}
}

func (m AcquisitionMode) Valid() bool {
	return m == ModeBuy || m == ModeRent
}

// MaxQuantity caps the units of a single line.
const MaxQuantity = 10000

// AddQuantities returns a+b capped at MaxQuantity. Both operands are expected to be
// non-negative.
func AddQuantities(a, b int) int {
	if b > MaxQuantity-a {
		return MaxQuantity
	}
	return a + b
}

// LineKey identifies a line item: the same product bought and rented are two lines.
type LineKey struct {
	ProductID string
	Mode      AcquisitionMode
}

type Seller struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// LineItem is one product/mode pair in a cart. Display fields are copied from the
// listing when the line is first added and are not refreshed afterwards.
type LineItem struct {
	ProductID  string          `json:"productId"`
	Mode       AcquisitionMode `json:"mode"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	DailyRate  decimal.Decimal `json:"dailyRate"`
	RentalDays int             `json:"rentalDays,omitempty"`
	Deposit    decimal.Decimal `json:"deposit"`
	Name       string          `json:"name,omitempty"`
	Unit       string          `json:"unit,omitempty"`
	Image      string          `json:"image,omitempty"`
	Seller     *Seller         `json:"seller,omitempty"`
}

func (l LineItem) Key() LineKey {
	return LineKey{ProductID: l.ProductID, Mode: l.Mode}
}

// CartState is the whole session cart. Items keep insertion order.
type CartState struct {
	Items  []LineItem `json:"items"`
	IsOpen bool       `json:"isOpen"`
}

// Clone returns a copy whose item slice can be modified without touching s.
func (s CartState) Clone() CartState {
	items := make([]LineItem, len(s.Items))
	copy(items, s.Items)
	for i := range items {
		if items[i].Seller != nil {
			seller := *items[i].Seller
			items[i].Seller = &seller
		}
	}
	return CartState{Items: items, IsOpen: s.IsOpen}
}

// Find returns the index of the line with key k, or -1.
func (s CartState) Find(k LineKey) int {
	for i, item := range s.Items {
		if item.ProductID == k.ProductID && item.Mode == k.Mode {
			return i
		}
	}
	return -1
}
