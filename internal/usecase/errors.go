package usecase

import (
	"errors"
	"fmt"

	"storefront/internal/data/entity"
)

// Sentinel errors the HTTP layer maps to status codes. Services wrap them
// with context; handlers match with errors.Is.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("user already exists")
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrNotOrderOwner      = errors.New("not the order owner")
	ErrInvalidTransition  = errors.New("invalid order status transition")
)

// InvalidTransitionError reports an attempted transition out of a terminal
// status. The message echoes the current status so the caller can see why.
type InvalidTransitionError struct {
	Action string // "cancel" or "deliver"
	Status entity.OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	if e.Action == "deliver" {
		return fmt.Sprintf("Cannot mark order as delivered. Order status is %s.", e.Status)
	}
	return fmt.Sprintf("Cannot cancel order with status: %s. Only pending orders can be cancelled.", e.Status)
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
