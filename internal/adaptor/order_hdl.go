package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"storefront/internal/dto/request"
	"storefront/internal/usecase"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	service usecase.OrderService
	log     *zap.Logger
}

func NewOrderHandler(service usecase.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		log:     log.With(zap.String("handler", "order")),
	}
}

// Create handles POST /api/orders/user (protected)
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Missing required order information", validationErrors)
		return
	}

	order, err := h.service.Create(r.Context(), user.ID, &req)
	if err != nil {
		h.log.Error("Failed to create order", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to create order")
		return
	}

	utils.ResponseJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListOwn handles GET /api/orders/user (protected)
func (h *OrderHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orders, err := h.service.ListByUser(r.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to fetch user orders", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch orders")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"orders":  orders,
	})
}

// ListAll handles GET /api/orders (admin)
func (h *OrderHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	orders, err := h.service.ListAll(r.Context(), status)
	if err != nil {
		h.log.Error("Failed to fetch orders", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch orders")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    orders,
	})
}

// Cancel handles PATCH /api/orders/{orderId}/cancel (protected, owner only)
func (h *OrderHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		utils.ResponseNotFound(w, "Order not found")
		return
	}

	order, err := h.service.Cancel(r.Context(), orderID, user.ID)
	if err != nil {
		h.handleTransitionError(w, err, "cancel")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}

// Deliver handles PATCH /api/orders/{orderId}/deliver (admin)
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderId"))
	if err != nil {
		utils.ResponseNotFound(w, "Order not found")
		return
	}

	order, err := h.service.Deliver(r.Context(), orderID)
	if err != nil {
		h.handleTransitionError(w, err, "deliver")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Order marked as delivered",
		"order":   order,
	})
}

func (h *OrderHandler) handleTransitionError(w http.ResponseWriter, err error, operation string) {
	var transitionErr *usecase.InvalidTransitionError

	switch {
	case errors.Is(err, usecase.ErrOrderNotFound):
		utils.ResponseNotFound(w, "Order not found")

	case errors.Is(err, usecase.ErrNotOrderOwner):
		utils.ResponseForbidden(w, "You can only cancel your own orders")

	case errors.As(err, &transitionErr):
		utils.ResponseBadRequest(w, transitionErr.Error(), nil)

	case errors.Is(err, usecase.ErrInvalidTransition):
		utils.ResponseBadRequest(w, "Only pending orders can be updated", nil)

	default:
		h.log.Error("Failed to "+operation+" order", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to update order")
	}
}
