package domain

import (
	"testing"
)

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		discount *float64
		want     float64
	}{
		{name: "no discount", price: 100, want: 100},
		{name: "quarter off", price: 100, discount: f64Ptr(25), want: 75},
		{name: "zero discount", price: 100, discount: f64Ptr(0), want: 100},
		{name: "full discount", price: 100, discount: f64Ptr(100), want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, DiscountPercent: tt.discount}
			if got := p.EffectivePrice(); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestToProductResponseComputesEffectivePrice(t *testing.T) {
	p := Product{
		ID:              "p1",
		Name:            "Laptop",
		Price:           200,
		Stock:           2,
		IsActive:        true,
		DiscountPercent: f64Ptr(50),
	}
	resp := ToProductResponse(p)
	if resp.EffectivePrice != 100 {
		t.Fatalf("expected effective_price 100, got %v", resp.EffectivePrice)
	}
	if resp.ID != p.ID || resp.Price != p.Price || resp.Stock != p.Stock {
		t.Fatalf("response does not mirror record: %+v", resp)
	}
}
