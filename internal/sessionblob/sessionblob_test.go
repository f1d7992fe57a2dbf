package sessionblob

import (
	"testing"

	"agrimarket-cart/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	tomatoID  = "abc123abc123abc123abc123"
	tractorID = "65a1f0c2d3e4b5a6978899aa"
)

func sampleState() domain.CartState {
	return domain.CartState{
		Items: []domain.LineItem{
			{
				ProductID: tomatoID,
				Mode:      domain.ModeBuy,
				Quantity:  3,
				Price:     decimal.NewFromInt(100),
				DailyRate: decimal.Zero,
				Deposit:   decimal.Zero,
				Name:      "Tomatoes",
				Unit:      "kg",
				Seller:    &domain.Seller{ID: "s1", Name: "Green Farm"},
			},
			{
				ProductID:  tractorID,
				Mode:       domain.ModeRent,
				Quantity:   1,
				Price:      decimal.Zero,
				DailyRate:  decimal.RequireFromString("49.50"),
				RentalDays: 4,
				Deposit:    decimal.NewFromInt(20),
				Name:       "Tractor",
				Image:      "https://img.example/tractor.jpg",
			},
		},
		IsOpen: true,
	}
}

func assertSameState(t *testing.T, want, got domain.CartState) {
	t.Helper()
	require.Len(t, got.Items, len(want.Items))
	assert.Equal(t, want.IsOpen, got.IsOpen)
	for i := range want.Items {
		w, g := want.Items[i], got.Items[i]
		assert.Equal(t, w.Key(), g.Key(), "line %d key", i)
		assert.Equal(t, w.Quantity, g.Quantity, "line %d quantity", i)
		assert.True(t, w.Price.Equal(g.Price), "line %d price %s != %s", i, w.Price, g.Price)
		assert.True(t, w.DailyRate.Equal(g.DailyRate), "line %d daily rate", i)
		assert.True(t, w.Deposit.Equal(g.Deposit), "line %d deposit", i)
		assert.Equal(t, w.RentalDays, g.RentalDays, "line %d rental days", i)
		assert.Equal(t, w.Name, g.Name)
		assert.Equal(t, w.Unit, g.Unit)
		assert.Equal(t, w.Image, g.Image)
		assert.Equal(t, w.Seller, g.Seller)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	state := sampleState()

	raw, err := Encode(state)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"version":1`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, report.FromVersion)
	assert.True(t, report.Clean())
	assertSameState(t, state, got)
}

func TestEncodeEmptyStateWritesEmptyList(t *testing.T) {
	raw, err := Encode(domain.CartState{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[],"isOpen":false}`, string(raw))
}

func TestDecodeDropsMalformedIDs(t *testing.T) {
	raw := []byte(`{"version":1,"isOpen":false,"items":[
		{"productId":"1","mode":"buy","quantity":1,"price":"10","dailyRate":"0","deposit":"0"},
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":2,"price":"10","dailyRate":"0","deposit":"0"}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, tomatoID, got.Items[0].ProductID)
	assert.Equal(t, []string{"1"}, report.Dropped)
}

func TestDecodeDropsInvalidLines(t *testing.T) {
	raw := []byte(`{"version":1,"items":[
		{"productId":"abc123abc123abc123abc123","mode":"lease","quantity":1,"price":"1","dailyRate":"0","deposit":"0"},
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":0,"price":"1","dailyRate":"0","deposit":"0"},
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":1,"price":"-1","dailyRate":"0","deposit":"0"},
		{"productId":42}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	assert.Empty(t, got.Items)
	assert.Len(t, report.Dropped, 4)
	assert.Equal(t, "#3", report.Dropped[3])
}

func TestDecodeMergesDuplicateKeys(t *testing.T) {
	raw := []byte(`{"version":1,"items":[
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":1,"price":"5","dailyRate":"0","deposit":"0"},
		{"productId":"65a1f0c2d3e4b5a6978899aa","mode":"rent","quantity":1,"price":"0","dailyRate":"5","rentalDays":2,"deposit":"0"},
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":2,"price":"5","dailyRate":"0","deposit":"0"}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, tomatoID, got.Items[0].ProductID)
	assert.Equal(t, 3, got.Items[0].Quantity)
	assert.Equal(t, 1, report.Merged)
}

func TestDecodeInvalidJSON(t *testing.T) {
	_, _, err := Decode([]byte(`{"items":[`))
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session blob")
}

func TestDecodeFutureVersion(t *testing.T) {
	_, _, err := Decode([]byte(`{"version":7,"items":[]}`))
	assert.ErrorIs(t, err, ErrUnsupportedVersion)
}

func TestDecodeLegacyBrowserBlob(t *testing.T) {
	raw := []byte(`{"isOpen":true,"items":[
		{"_id":"abc123abc123abc123abc123","buyType":"buy","quantity":3,"pricePerUnit":100,
		 "productRef":{"name":"Tomatoes"},"unit":"kg","images":["https://img.example/t.jpg"],
		 "seller":{"_id":"s1","firstName":"Asha","lastName":"Rao"}},
		{"_id":"65a1f0c2d3e4b5a6978899aa","buyType":"rent","quantity":1,"rentPrice":{"daily":50},
		 "rentalDays":4,"deposit":20,"productRef":"Tractor","seller":"s2"},
		{"_id":"1","buyType":"buy","quantity":1,"price":10},
		{"_id":7,"buyType":"buy","quantity":1,"price":10},
		{"_id":"ffffffffffffffffffffffff","buyType":"rent","quantity":1}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, 0, report.FromVersion)
	assert.Equal(t, []string{"1", "#3", "ffffffffffffffffffffffff"}, report.Dropped)
	assert.True(t, got.IsOpen)
	require.Len(t, got.Items, 2)

	buy := got.Items[0]
	assert.Equal(t, domain.ModeBuy, buy.Mode)
	assert.Equal(t, 3, buy.Quantity)
	assert.True(t, buy.Price.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "Tomatoes", buy.Name)
	assert.Equal(t, "https://img.example/t.jpg", buy.Image)
	assert.Equal(t, &domain.Seller{ID: "s1", Name: "Asha Rao"}, buy.Seller)

	rent := got.Items[1]
	assert.Equal(t, domain.ModeRent, rent.Mode)
	assert.True(t, rent.DailyRate.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, 4, rent.RentalDays)
	assert.True(t, rent.Deposit.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Tractor", rent.Name)
	assert.Equal(t, &domain.Seller{ID: "s2"}, rent.Seller)
}

func TestDecodeLegacyThenEncodeUpgrades(t *testing.T) {
	legacy := []byte(`{"isOpen":false,"items":[{"_id":"abc123abc123abc123abc123","buyType":"buy","quantity":2,"price":12.5}]}`)
	state, _, err := Decode(legacy)
	require.NoError(t, err)

	raw, err := Encode(state)
	require.NoError(t, err)
	again, report, err := Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, CurrentVersion, report.FromVersion)
	assertSameState(t, state, again)
}

func TestDecodeCapsQuantities(t *testing.T) {
	raw := []byte(`{"version":1,"items":[
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":9000,"price":"5","dailyRate":"0","deposit":"0"},
		{"productId":"abc123abc123abc123abc123","mode":"buy","quantity":9000,"price":"5","dailyRate":"0","deposit":"0"},
		{"productId":"65a1f0c2d3e4b5a6978899aa","mode":"buy","quantity":9223372036854775807,"price":"5","dailyRate":"0","deposit":"0"}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, domain.MaxQuantity, got.Items[0].Quantity)
	assert.Equal(t, 1, report.Merged)
	assert.Equal(t, []string{tractorID}, report.Dropped)
}

func TestDecodeLegacyDropsNonHexIDs(t *testing.T) {
	raw := []byte(`{"isOpen":false,"items":[
		{"_id":"mock-listing-00000000001","buyType":"buy","quantity":1,"price":10},
		{"_id":"abc123abc123abc123abc123","buyType":"buy","quantity":1,"price":10}
	]}`)

	got, report, err := Decode(raw)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, tomatoID, got.Items[0].ProductID)
	assert.Equal(t, []string{"mock-listing-00000000001"}, report.Dropped)
}
