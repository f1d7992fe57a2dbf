package cart

import (
	"agrimarket-cart/internal/domain"
	"github.com/shopspring/decimal"
)

// Summary is the checkout breakdown shown next to the cart.
type Summary struct {
	ItemCount int             `json:"itemCount"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"taxRate"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}

// UnitPrice is what one unit of the line costs before any deposit: the flat price
// for purchases, daily rate times rental days for rentals.
func UnitPrice(item domain.LineItem) decimal.Decimal {
	if item.Mode == domain.ModeRent {
		days := item.RentalDays
		if days <= 0 {
			days = 1
		}
		return item.DailyRate.Mul(decimal.NewFromInt(int64(days)))
	}
	return item.Price
}

// LineTotal is (unit price + deposit) * quantity. Deposits only apply to rentals and
// are charged once per unit, independent of the number of days.
func LineTotal(item domain.LineItem) decimal.Decimal {
	price := UnitPrice(item)
	if item.Mode == domain.ModeRent {
		price = price.Add(item.Deposit)
	}
	return price.Mul(decimal.NewFromInt(int64(item.Quantity)))
}

func Total(state domain.CartState) decimal.Decimal {
	total := decimal.Zero
	for _, item := range state.Items {
		total = total.Add(LineTotal(item))
	}
	return total
}

// Summarize applies taxRate to the cart total. Tax is rounded to two places.
func Summarize(state domain.CartState, taxRate decimal.Decimal) Summary {
	subtotal := Total(state)
	tax := subtotal.Mul(taxRate).Round(2)
	count := 0
	for _, item := range state.Items {
		count += item.Quantity
	}
	return Summary{
		ItemCount: count,
		Subtotal:  subtotal,
		TaxRate:   taxRate,
		Tax:       tax,
		Total:     subtotal.Add(tax),
	}
}
