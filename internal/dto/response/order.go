package response

import (
	"time"

	"storefront/internal/data/entity"
)

type OrderResponse struct {
	ID         string             `json:"id"`
	UserID     string             `json:"user_id"`
	UserEmail  string             `json:"user_email,omitempty"`
	Products   []OrderItemView    `json:"products"`
	TotalPrice float64            `json:"totalPrice"`
	Status     entity.OrderStatus `json:"status"`
	PhoneNo    string             `json:"phoneNo"`
	Address    string             `json:"address"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
}

type OrderItemView struct {
	Product  ProductSummary `json:"product"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
}

type ProductSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

// OrderTransitionResponse is the trimmed order view returned by the cancel
// and deliver endpoints.
type OrderTransitionResponse struct {
	ID        string             `json:"id"`
	Status    entity.OrderStatus `json:"status"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func OrderToResponse(order *entity.Order) OrderResponse {
	items := make([]OrderItemView, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemView{
			Product: ProductSummary{
				ID:    item.ProductID.String(),
				Name:  item.ProductName,
				Image: item.ProductImage,
				Price: item.Price,
			},
			Quantity: item.Quantity,
			Price:    item.Price,
		}
	}

	return OrderResponse{
		ID:         order.ID.String(),
		UserID:     order.UserID.String(),
		UserEmail:  order.UserEmail,
		Products:   items,
		TotalPrice: order.TotalPrice,
		Status:     order.Status,
		PhoneNo:    order.Phone,
		Address:    order.Address,
		CreatedAt:  order.CreatedAt,
		UpdatedAt:  order.UpdatedAt,
	}
}

func OrderToTransitionResponse(order *entity.Order) OrderTransitionResponse {
	return OrderTransitionResponse{
		ID:        order.ID.String(),
		Status:    order.Status,
		UpdatedAt: order.UpdatedAt,
	}
}
