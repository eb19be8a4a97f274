package usecase

import (
	"context"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newOrderService(orders *fakeOrderRepo) OrderService {
	repo := &repository.Repository{Order: orders}
	return NewOrderService(repo, zap.NewNop())
}

func pendingOrder(ownerID uuid.UUID) *entity.Order {
	return &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UserID:     ownerID,
		TotalPrice: 149.99,
		Status:     entity.OrderStatusPending,
		Phone:      "555-0101",
		Address:    "1 Main St",
	}
}

func TestCreateOrder(t *testing.T) {
	orders := &fakeOrderRepo{}
	service := newOrderService(orders)
	userID := uuid.New()
	productID := uuid.New()

	resp, err := service.Create(context.Background(), userID, &request.CreateOrderRequest{
		CartItems: []request.OrderItemRequest{
			{ProductID: productID.String(), Quantity: 2, Price: 24.50},
		},
		TotalPrice: 49.00,
		PhoneNo:    "555-0101",
		Address:    "1 Main St",
	})
	require.NoError(t, err)

	// New orders always start pending, whatever the payload says.
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Equal(t, 49.00, resp.TotalPrice)
	assert.Equal(t, userID.String(), resp.UserID)

	require.Len(t, orders.created, 1)
	stored := orders.created[0]
	assert.Equal(t, entity.OrderStatusPending, stored.Status)
	require.Len(t, stored.Items, 1)
	assert.Equal(t, productID, stored.Items[0].ProductID)
	assert.Equal(t, 2, stored.Items[0].Quantity)
}

func TestCancelOrder(t *testing.T) {
	ownerID := uuid.New()
	order := pendingOrder(ownerID)
	orders := &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{order.ID: order}}
	service := newOrderService(orders)

	resp, err := service.Cancel(context.Background(), order.ID, ownerID)
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, resp.Status)
	assert.Equal(t, entity.OrderStatusCancelled, order.Status)
}

func TestCancelOrderNotFound(t *testing.T) {
	service := newOrderService(&fakeOrderRepo{})

	resp, err := service.Cancel(context.Background(), uuid.New(), uuid.New())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestCancelForeignOrder(t *testing.T) {
	order := pendingOrder(uuid.New())
	orders := &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{order.ID: order}}
	service := newOrderService(orders)

	resp, err := service.Cancel(context.Background(), order.ID, uuid.New())

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotOrderOwner)
	assert.Equal(t, entity.OrderStatusPending, order.Status)
}

func TestCancelForeignTerminalOrder(t *testing.T) {
	// Ownership is checked before status, so a foreign caller gets the
	// ownership error even when the order is already terminal.
	order := pendingOrder(uuid.New())
	order.Status = entity.OrderStatusDelivered
	orders := &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{order.ID: order}}
	service := newOrderService(orders)

	_, err := service.Cancel(context.Background(), order.ID, uuid.New())

	assert.ErrorIs(t, err, ErrNotOrderOwner)
	assert.NotErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelTerminalOrder(t *testing.T) {
	ownerID := uuid.New()
	order := pendingOrder(ownerID)
	order.Status = entity.OrderStatusDelivered
	orders := &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{order.ID: order}}
	service := newOrderService(orders)

	resp, err := service.Cancel(context.Background(), order.ID, ownerID)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.OrderStatusDelivered, transitionErr.Status)
	assert.Contains(t, transitionErr.Error(), "delivered")
}

func TestDeliverOrder(t *testing.T) {
	order := pendingOrder(uuid.New())
	orders := &fakeOrderRepo{orders: map[uuid.UUID]*entity.Order{order.ID: order}}
	service := newOrderService(orders)

	resp, err := service.Deliver(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusDelivered, resp.Status)

	// Second deliver finds a terminal order.
	resp, err = service.Deliver(context.Background(), order.ID)
	assert.Nil(t, resp)

	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.OrderStatusDelivered, transitionErr.Status)
	assert.Contains(t, transitionErr.Error(), "Cannot mark order as delivered")
}

func TestTransitionLosesRace(t *testing.T) {
	// The conditional update reports no rows moved because a concurrent
	// cancel got there first. The loser re-reads and reports the status
	// that beat it.
	ownerID := uuid.New()
	order := pendingOrder(ownerID)
	orders := &fakeOrderRepo{
		orders: map[uuid.UUID]*entity.Order{order.ID: order},
		updateStatusFn: func(orderID uuid.UUID, from, to entity.OrderStatus) (bool, error) {
			order.Status = entity.OrderStatusCancelled
			return false, nil
		},
	}
	service := newOrderService(orders)

	resp, err := service.Deliver(context.Background(), order.ID)

	assert.Nil(t, resp)
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, entity.OrderStatusCancelled, transitionErr.Status)
}

func TestListAllStatusFilter(t *testing.T) {
	orders := &fakeOrderRepo{}
	service := newOrderService(orders)

	tests := []struct {
		filter string
		want   entity.OrderStatus
	}{
		{"pending", entity.OrderStatusPending},
		{"Pending", entity.OrderStatusPending},
		{"DELIVERED", entity.OrderStatusDelivered},
		{"cancelled", entity.OrderStatusCancelled},
		{"", ""},
		{"shipped", ""},
	}

	for _, tt := range tests {
		_, err := service.ListAll(context.Background(), tt.filter)
		require.NoError(t, err, "filter %q", tt.filter)
		assert.Equal(t, tt.want, orders.lastStatusFilter, "filter %q", tt.filter)
	}
}

func TestListByUser(t *testing.T) {
	ownerID := uuid.New()
	mine := pendingOrder(ownerID)
	theirs := pendingOrder(uuid.New())
	productID := uuid.New()

	orders := &fakeOrderRepo{
		orders: map[uuid.UUID]*entity.Order{mine.ID: mine, theirs.ID: theirs},
		items: map[uuid.UUID][]entity.OrderItem{
			mine.ID: {
				{
					ID:          uuid.New(),
					OrderID:     mine.ID,
					ProductID:   productID,
					Quantity:    1,
					Price:       149.99,
					ProductName: "Desk Lamp",
				},
			},
		},
	}
	service := newOrderService(orders)

	resp, err := service.ListByUser(context.Background(), ownerID)
	require.NoError(t, err)

	require.Len(t, resp, 1)
	assert.Equal(t, mine.ID.String(), resp[0].ID)
	require.Len(t, resp[0].Products, 1)
	assert.Equal(t, "Desk Lamp", resp[0].Products[0].Product.Name)
	assert.Equal(t, productID.String(), resp[0].Products[0].Product.ID)
}
