package adaptor

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOrderService struct {
	createFn     func(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error)
	listByUserFn func(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error)
	listAllFn    func(ctx context.Context, statusFilter string) ([]response.OrderResponse, error)
	cancelFn     func(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error)
	deliverFn    func(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error)
}

func (f *fakeOrderService) Create(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	return f.createFn(ctx, userID, req)
}

func (f *fakeOrderService) ListByUser(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
	return f.listByUserFn(ctx, userID)
}

func (f *fakeOrderService) ListAll(ctx context.Context, statusFilter string) ([]response.OrderResponse, error) {
	return f.listAllFn(ctx, statusFilter)
}

func (f *fakeOrderService) Cancel(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error) {
	return f.cancelFn(ctx, orderID, callerID)
}

func (f *fakeOrderService) Deliver(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error) {
	return f.deliverFn(ctx, orderID)
}

// orderRouter mounts the handler the way the real router does, with a stub
// authenticated identity already in the request context.
func orderRouter(handler *OrderHandler, caller utils.AuthUser) http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(utils.SetAuthUser(req.Context(), caller)))
		})
	})
	r.Post("/api/orders/user", handler.Create)
	r.Get("/api/orders/user", handler.ListOwn)
	r.Get("/api/orders", handler.ListAll)
	r.Patch("/api/orders/{orderId}/cancel", handler.Cancel)
	r.Patch("/api/orders/{orderId}/deliver", handler.Deliver)
	return r
}

func customerCaller() utils.AuthUser {
	return utils.AuthUser{
		ID:    uuid.New(),
		Email: "customer@example.com",
		Role:  string(entity.RoleCustomer),
	}
}

func TestCreateOrderHandler(t *testing.T) {
	caller := customerCaller()
	service := &fakeOrderService{
		createFn: func(ctx context.Context, userID uuid.UUID, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
			assert.Equal(t, caller.ID, userID)
			return &response.OrderResponse{
				ID:         uuid.NewString(),
				UserID:     userID.String(),
				TotalPrice: req.TotalPrice,
				Status:     entity.OrderStatusPending,
			}, nil
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), caller)

	payload := fmt.Sprintf(
		`{"cartItems":[{"product":"%s","quantity":2,"price":24.50}],"totalPrice":49.00,"phoneNo":"555-0101","address":"1 Main St"}`,
		uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/orders/user", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order placed successfully", body["message"])
}

func TestCreateOrderHandlerEmptyCart(t *testing.T) {
	router := orderRouter(NewOrderHandler(&fakeOrderService{}, zap.NewNop()), customerCaller())

	payload := `{"cartItems":[],"totalPrice":49.00,"phoneNo":"555-0101","address":"1 Main St"}`
	req := httptest.NewRequest(http.MethodPost, "/api/orders/user", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAllOrdersHandlerPassesFilter(t *testing.T) {
	var gotFilter string
	service := &fakeOrderService{
		listAllFn: func(ctx context.Context, statusFilter string) ([]response.OrderResponse, error) {
			gotFilter = statusFilter
			return []response.OrderResponse{}, nil
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodGet, "/api/orders?status=pending", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", gotFilter)
}

func TestCancelOrderHandler(t *testing.T) {
	orderID := uuid.New()
	service := &fakeOrderService{
		cancelFn: func(ctx context.Context, gotOrderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error) {
			assert.Equal(t, orderID, gotOrderID)
			return &response.OrderTransitionResponse{
				ID:        gotOrderID.String(),
				Status:    entity.OrderStatusCancelled,
				UpdatedAt: time.Now(),
			}, nil
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+orderID.String()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order cancelled successfully", body["message"])
}

func TestCancelOrderHandlerBadID(t *testing.T) {
	router := orderRouter(NewOrderHandler(&fakeOrderService{}, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/not-a-uuid/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order not found", body["error"])
}

func TestCancelOrderHandlerForeignOrder(t *testing.T) {
	service := &fakeOrderService{
		cancelFn: func(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error) {
			return nil, fmt.Errorf("cancel order %s: %w", orderID.String(), usecase.ErrNotOrderOwner)
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+uuid.NewString()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "You can only cancel your own orders", body["error"])
}

func TestCancelOrderHandlerTerminalStatus(t *testing.T) {
	service := &fakeOrderService{
		cancelFn: func(ctx context.Context, orderID, callerID uuid.UUID) (*response.OrderTransitionResponse, error) {
			return nil, &usecase.InvalidTransitionError{
				Action: "cancel",
				Status: entity.OrderStatusDelivered,
			}
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+uuid.NewString()+"/cancel", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Cannot cancel order with status: delivered. Only pending orders can be cancelled.", body["error"])
}

func TestDeliverOrderHandler(t *testing.T) {
	service := &fakeOrderService{
		deliverFn: func(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error) {
			return &response.OrderTransitionResponse{
				ID:        orderID.String(),
				Status:    entity.OrderStatusDelivered,
				UpdatedAt: time.Now(),
			}, nil
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+uuid.NewString()+"/deliver", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order marked as delivered", body["message"])
}

func TestDeliverOrderHandlerNotFound(t *testing.T) {
	service := &fakeOrderService{
		deliverFn: func(ctx context.Context, orderID uuid.UUID) (*response.OrderTransitionResponse, error) {
			return nil, fmt.Errorf("deliver order %s: %w", orderID.String(), usecase.ErrOrderNotFound)
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), customerCaller())

	req := httptest.NewRequest(http.MethodPatch, "/api/orders/"+uuid.NewString()+"/deliver", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Order not found", body["error"])
}

func TestListOwnOrdersHandler(t *testing.T) {
	caller := customerCaller()
	service := &fakeOrderService{
		listByUserFn: func(ctx context.Context, userID uuid.UUID) ([]response.OrderResponse, error) {
			assert.Equal(t, caller.ID, userID)
			return []response.OrderResponse{{ID: uuid.NewString()}}, nil
		},
	}
	router := orderRouter(NewOrderHandler(service, zap.NewNop()), caller)

	req := httptest.NewRequest(http.MethodGet, "/api/orders/user", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Len(t, body["orders"], 1)
}
