package request

// CreateOrderRequest mirrors the checkout payload: cart line items plus the
// client-computed total and shipping details.
type CreateOrderRequest struct {
	CartItems  []OrderItemRequest `json:"cartItems" validate:"required,min=1,dive"`
	TotalPrice float64            `json:"totalPrice" validate:"required,gt=0"`
	PhoneNo    string             `json:"phoneNo" validate:"required"`
	Address    string             `json:"address" validate:"required"`
}

type OrderItemRequest struct {
	ProductID string  `json:"product" validate:"required,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	Price     float64 `json:"price" validate:"required,gt=0"`
}
