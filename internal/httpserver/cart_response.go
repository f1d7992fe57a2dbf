package httpserver

import (
	"agrimarket-cart/internal/domain"
	cartsvc "agrimarket-cart/internal/service/cart"
	"github.com/shopspring/decimal"
)

type addItemRequest struct {
	ProductID  string          `json:"productId"`
	Mode       string          `json:"mode"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	DailyRate  decimal.Decimal `json:"dailyRate"`
	RentalDays int             `json:"rentalDays"`
	Deposit    decimal.Decimal `json:"deposit"`
	Name       string          `json:"name"`
	Unit       string          `json:"unit"`
	Image      string          `json:"image"`
	Seller     *domain.Seller  `json:"seller"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type lineResponse struct {
	domain.LineItem
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

type cartResponse struct {
	SessionID string          `json:"sessionId"`
	Items     []lineResponse  `json:"items"`
	IsOpen    bool            `json:"isOpen"`
	CartTotal decimal.Decimal `json:"cartTotal"`
	Summary   cartsvc.Summary `json:"summary"`
}

func toCartResponse(sessionID string, state domain.CartState, taxRate decimal.Decimal) cartResponse {
	items := make([]lineResponse, 0, len(state.Items))
	for _, item := range state.Items {
		items = append(items, lineResponse{
			LineItem:  item,
			UnitPrice: cartsvc.UnitPrice(item),
			LineTotal: cartsvc.LineTotal(item),
		})
	}
	summary := cartsvc.Summarize(state, taxRate)
	return cartResponse{
		SessionID: sessionID,
		Items:     items,
		IsOpen:    state.IsOpen,
		CartTotal: summary.Subtotal,
		Summary:   summary,
	}
}

func (r addItemRequest) toLineItem(mode domain.AcquisitionMode) domain.LineItem {
	return domain.LineItem{
		ProductID:  r.ProductID,
		Mode:       mode,
		Quantity:   r.Quantity,
		Price:      r.Price,
		DailyRate:  r.DailyRate,
		RentalDays: r.RentalDays,
		Deposit:    r.Deposit,
		Name:       r.Name,
		Unit:       r.Unit,
		Image:      r.Image,
		Seller:     r.Seller,
	}
}
