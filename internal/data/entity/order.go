package entity

import (
	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ValidOrderStatus reports whether s (already lowercased) names a known status.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsTerminal reports whether no transition exists out of the status.
// Only pending orders can move; delivered and cancelled are final.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

type Order struct {
	Base
	UserID     uuid.UUID   `db:"user_id"`
	TotalPrice float64     `db:"total_price"`
	Status     OrderStatus `db:"status"`
	Phone      string      `db:"phone"`
	Address    string      `db:"address"`

	// UserEmail is joined in for admin listings, empty otherwise.
	UserEmail string

	Items []OrderItem
}

type OrderItem struct {
	ID        uuid.UUID `db:"id"`
	OrderID   uuid.UUID `db:"order_id"`
	ProductID uuid.UUID `db:"product_id"`
	Quantity  int       `db:"quantity"`
	Price     float64   `db:"price"`

	// Joined product fields for order listings.
	ProductName  string
	ProductImage string
}
