package domain

import "testing"

func TestValidProductID(t *testing.T) {
	cases := map[string]bool{
		"abc123abc123abc123abc123":  true,
		"65A1F0C2D3E4B5A6978899AA":  true,
		"1":                         false,
		"":                          false,
		"abc123abc123abc123abc12":   false,
		"abc123abc123abc123abc1234": false,
		"zzz123abc123abc123abc123":  false,
	}
	for id, want := range cases {
		if got := ValidProductID(id); got != want {
			t.Fatalf("ValidProductID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode(""); err != nil || m != ModeBuy {
		t.Fatalf("expected default buy, got %q %v", m, err)
	}
	if m, err := ParseMode(" Rent "); err != nil || m != ModeRent {
		t.Fatalf("expected rent, got %q %v", m, err)
	}
	if _, err := ParseMode("lease"); err != ErrInvalidMode {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}

func TestCartStateCloneIsIndependent(t *testing.T) {
	orig := CartState{Items: []LineItem{{ProductID: "a", Mode: ModeBuy, Quantity: 1, Seller: &Seller{Name: "s"}}}}
	cp := orig.Clone()
	cp.Items[0].Quantity = 5
	cp.Items[0].Seller.Name = "changed"
	if orig.Items[0].Quantity != 1 || orig.Items[0].Seller.Name != "s" {
		t.Fatalf("clone shares memory with original: %+v", orig.Items[0])
	}
}

func TestAddQuantities(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{1, 2, 3},
		{MaxQuantity - 1, 1, MaxQuantity},
		{MaxQuantity, 2, MaxQuantity},
		{0, int(^uint(0) >> 1), MaxQuantity},
	}
	for _, tc := range cases {
		if got := AddQuantities(tc.a, tc.b); got != tc.want {
			t.Fatalf("AddQuantities(%d, %d) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}
