package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
	// ListAll is admin-only (enforced upstream). statusFilter is matched
	// case-insensitively; unknown values leave the result unfiltered.
	ListAll(ctx context.Context, statusFilter string) ([]response.OrderResponse, error)
	Cancel(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error)
	// Deliver requires an admin caller; the authorization gate enforces that,
	// not this method.
	Deliver(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error)
}

type orderService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewOrderService(repo *repository.Repository, log *zap.Logger) OrderService {
	return &orderService{
		repo: repo,
		log:  log.With(zap.String("service", "order")),
	}
}

func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	now := time.Now()
	order := &entity.Order{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID: userID,
		// Total is client-computed at checkout and stored as-is; see the
		// open question in DESIGN.md.
		TotalPrice: req.TotalPrice,
		Status:     entity.OrderStatusPending,
		Phone:      req.PhoneNo,
		Address:    req.Address,
	}

	order.Items = make([]entity.OrderItem, len(req.CartItems))
	for i, item := range req.CartItems {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return nil, fmt.Errorf("invalid product ID %s: %w", item.ProductID, err)
		}
		order.Items[i] = entity.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		s.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info("Order placed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("item_count", len(order.Items)),
		zap.Float64("total_price", order.TotalPrice),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}

func (s *orderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	orders, err := s.repo.Order.FindByUserID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to get user orders",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("get user orders: %w", err)
	}

	return s.toResponses(ctx, orders)
}

func (s *orderService) ListAll(ctx context.Context, statusFilter string) ([]response.OrderResponse, error) {
	var status entity.OrderStatus
	if normalized := strings.ToLower(statusFilter); entity.ValidOrderStatus(normalized) {
		status = entity.OrderStatus(normalized)
	}

	orders, err := s.repo.Order.FindAll(ctx, status)
	if err != nil {
		s.log.Error("Failed to get all orders", zap.Error(err), zap.String("status", statusFilter))
		return nil, fmt.Errorf("get all orders: %w", err)
	}

	return s.toResponses(ctx, orders)
}

func (s *orderService) Cancel(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("cancel order %s: %w", orderID.String(), ErrOrderNotFound)
	}

	// Ownership is checked before status: a foreign caller learns nothing
	// about the order's state.
	if order.UserID != callerID {
		s.log.Warn("Cancel attempt on foreign order",
			zap.String("order_id", orderID.String()),
			zap.String("caller_id", callerID.String()),
		)
		return nil, fmt.Errorf("cancel order %s: %w", orderID.String(), ErrNotOrderOwner)
	}

	return s.transition(ctx, order, "cancel", entity.OrderStatusCancelled)
}

func (s *orderService) Deliver(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error) {
	order, err := s.repo.Order.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("deliver order %s: %w", orderID.String(), ErrOrderNotFound)
	}

	return s.transition(ctx, order, "deliver", entity.OrderStatusDelivered)
}

// transition moves a pending order into a terminal status. The write is a
// compare-and-swap on the current status, so of two racing transitions
// exactly one wins; the loser re-reads and reports the status that beat it.
func (s *orderService) transition(ctx context.Context, order *entity.Order, action string, to entity.OrderStatus) (*response.OrderTransitionResponse, error) {
	if order.Status != entity.OrderStatusPending {
		return nil, &InvalidTransitionError{Action: action, Status: order.Status}
	}

	now := time.Now()
	moved, err := s.repo.Order.UpdateStatus(ctx, order.ID, entity.OrderStatusPending, to, now)
	if err != nil {
		s.log.Error("Failed to persist order transition",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("to", string(to)),
		)
		return nil, fmt.Errorf("%s order: %w", action, err)
	}

	if !moved {
		current, err := s.repo.Order.FindByID(ctx, order.ID)
		if err != nil || current == nil {
			return nil, fmt.Errorf("%s order %s: %w", action, order.ID.String(), ErrInvalidTransition)
		}
		return nil, &InvalidTransitionError{Action: action, Status: current.Status}
	}

	order.Status = to
	order.UpdatedAt = now

	s.log.Info("Order transitioned",
		zap.String("order_id", order.ID.String()),
		zap.String("status", string(to)),
	)

	resp := response.OrderToTransitionResponse(order)
	return &resp, nil
}

func (s *orderService) toResponses(ctx context.Context, orders []*entity.Order) ([]response.OrderResponse, error) {
	responses := make([]response.OrderResponse, len(orders))
	for i, order := range orders {
		items, err := s.repo.Order.FindItems(ctx, order.ID)
		if err != nil {
			s.log.Error("Failed to get order items",
				zap.Error(err),
				zap.String("order_id", order.ID.String()),
			)
			return nil, fmt.Errorf("get order items: %w", err)
		}
		order.Items = items
		responses[i] = response.OrderToResponse(order)
	}
	return responses, nil
}
