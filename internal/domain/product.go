package domain

import (
	"time"
)

// Product is the stored catalog record. IDs are server-generated UUIDs
// and never reused after deletion.
type Product struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	Stock           int       `json:"stock"`
	IsActive        bool      `json:"is_active"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EffectivePrice applies the discount, if any. Derived on every read,
// never stored.
func (p Product) EffectivePrice() float64 {
	if p.DiscountPercent == nil {
		return p.Price
	}
	return p.Price * (1 - *p.DiscountPercent/100)
}

// CreateProductRequest carries the client-supplied fields for a create.
// Pointers distinguish "absent" from zero values so missing required
// fields can be reported individually.
type CreateProductRequest struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	Stock           *int     `json:"stock"`
	DiscountPercent *float64 `json:"discount_percent"`
}

// UpdateProductRequest is a partial update: only non-nil fields are
// applied to the existing record.
type UpdateProductRequest struct {
	Name            *string  `json:"name"`
	Price           *float64 `json:"price"`
	Stock           *int     `json:"stock"`
	IsActive        *bool    `json:"is_active"`
	DiscountPercent *float64 `json:"discount_percent"`
}

// DeductStockRequest asks to remove quantity units from a product's stock.
type DeductStockRequest struct {
	Quantity int `json:"quantity"`
}

// ProductResponse is the wire shape returned for a single product.
type ProductResponse struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Price           float64   `json:"price"`
	Stock           int       `json:"stock"`
	IsActive        bool      `json:"is_active"`
	DiscountPercent *float64  `json:"discount_percent,omitempty"`
	EffectivePrice  float64   `json:"effective_price"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToProductResponse maps a stored record to its wire shape, recomputing
// the effective price.
func ToProductResponse(p Product) ProductResponse {
	return ProductResponse{
		ID:              p.ID,
		Name:            p.Name,
		Price:           p.Price,
		Stock:           p.Stock,
		IsActive:        p.IsActive,
		DiscountPercent: p.DiscountPercent,
		EffectivePrice:  p.EffectivePrice(),
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ProductPage is the result of a list call.
type ProductPage struct {
	Items      []ProductResponse `json:"items"`
	TotalCount int               `json:"total_count"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
}

// StockDeductionResponse reports the outcome of a stock deduction.
type StockDeductionResponse struct {
	ProductID     string `json:"product_id"`
	PreviousStock int    `json:"previous_stock"`
	NewStock      int    `json:"new_stock"`
	Deducted      int    `json:"deducted"`
}
