package events

import (
	"time"
)

const (
	TypeProductCreated = "product.created"
	TypeProductUpdated = "product.updated"
	TypeProductDeleted = "product.deleted"
)

// ProductEvent announces a catalog change to downstream consumers.
type ProductEvent struct {
	EventID   string    `json:"event_id"`
	Type      string    `json:"type"`
	ProductID string    `json:"product_id"`
	Name      string    `json:"name,omitempty"`
	Price     float64   `json:"price,omitempty"`
	Stock     int       `json:"stock,omitempty"`
	IsActive  bool      `json:"is_active,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
