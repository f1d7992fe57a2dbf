package sessionblob

import (
	"math"
	"strings"

	"agrimarket-cart/internal/domain"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// legacyItem is a listing as the browser stored it: the whole listing object plus
// buyType and rental options merged in at add time.
type legacyItem struct {
	ID           string           `json:"_id"`
	BuyType      string           `json:"buyType"`
	Quantity     float64          `json:"quantity"`
	Price        *decimal.Decimal `json:"price"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit"`
	RentPrice    *struct {
		Daily decimal.Decimal `json:"daily"`
	} `json:"rentPrice"`
	RentalDays float64          `json:"rentalDays"`
	Deposit    *decimal.Decimal `json:"deposit"`
	Name       string           `json:"name"`
	ProductRef json.RawMessage  `json:"productRef"`
	Unit       string           `json:"unit"`
	Images     []string         `json:"images"`
	Seller     json.RawMessage  `json:"seller"`
}

type legacyRef struct {
	Name  string `json:"name"`
	Breed string `json:"breed"`
}

type legacySeller struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func migrateLegacy(raw []json.RawMessage, report *Report) []domain.LineItem {
	items := make([]domain.LineItem, 0, len(raw))
	for i, r := range raw {
		var li legacyItem
		if err := json.Unmarshal(r, &li); err != nil {
			report.Dropped = append(report.Dropped, dropLabel("", i))
			continue
		}
		item, ok := fromLegacy(li)
		if !ok || !validLine(item) {
			report.Dropped = append(report.Dropped, dropLabel(li.ID, i))
			continue
		}
		items = append(items, item)
	}
	return items
}

func fromLegacy(li legacyItem) (domain.LineItem, bool) {
	mode, err := domain.ParseMode(li.BuyType)
	if err != nil {
		return domain.LineItem{}, false
	}
	qty, ok := wholeNumber(li.Quantity)
	if !ok {
		return domain.LineItem{}, false
	}
	days, ok := wholeNumber(li.RentalDays)
	if !ok {
		return domain.LineItem{}, false
	}

	item := domain.LineItem{
		ProductID: li.ID,
		Mode:      mode,
		Quantity:  qty,
		Price:     decimal.Zero,
		DailyRate: decimal.Zero,
		Deposit:   decimal.Zero,
		Name:      legacyName(li),
		Unit:      li.Unit,
		Seller:    legacySellerOf(li.Seller),
	}
	if len(li.Images) > 0 {
		item.Image = li.Images[0]
	}
	switch {
	case li.Price != nil:
		item.Price = *li.Price
	case li.PricePerUnit != nil:
		item.Price = *li.PricePerUnit
	}
	if mode == domain.ModeRent {
		if li.RentPrice == nil {
			return domain.LineItem{}, false
		}
		item.DailyRate = li.RentPrice.Daily
		item.RentalDays = days
		if item.RentalDays == 0 {
			item.RentalDays = 1
		}
		if li.Deposit != nil {
			item.Deposit = *li.Deposit
		}
	}
	return item, true
}

func wholeNumber(f float64) (int, bool) {
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

func legacyName(li legacyItem) string {
	if li.Name != "" {
		return li.Name
	}
	if len(li.ProductRef) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(li.ProductRef, &s); err == nil {
		return s
	}
	var ref legacyRef
	if err := json.Unmarshal(li.ProductRef, &ref); err == nil {
		if ref.Name != "" {
			return ref.Name
		}
		return ref.Breed
	}
	return ""
}

func legacySellerOf(raw json.RawMessage) *domain.Seller {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var id string
	if err := json.Unmarshal(raw, &id); err == nil {
		if id == "" {
			return nil
		}
		return &domain.Seller{ID: id}
	}
	var s legacySeller
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	name := s.Name
	if name == "" {
		name = strings.TrimSpace(s.FirstName + " " + s.LastName)
	}
	if s.ID == "" && name == "" {
		return nil
	}
	return &domain.Seller{ID: s.ID, Name: name}
}
