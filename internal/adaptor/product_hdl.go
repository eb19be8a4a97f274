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

type ProductHandler struct {
	service usecase.ProductService
	log     *zap.Logger
}

func NewProductHandler(service usecase.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log.With(zap.String("handler", "product")),
	}
}

// List handles GET /api/products (public)
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		h.log.Error("Failed to fetch products", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch products")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, products)
}

// ListOwn handles GET /api/my-products (protected)
func (h *ProductHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	products, err := h.service.ListByOwner(r.Context(), user.ID)
	if err != nil {
		h.log.Error("Failed to fetch owner products", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to fetch products")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"products": products,
	})
}

// Create handles POST /api/products (admin)
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	product, err := h.service.Create(r.Context(), user.ID, &req)
	if err != nil {
		h.log.Error("Failed to create product", zap.Error(err))
		utils.ResponseBadRequest(w, "Failed to create product", nil)
		return
	}

	utils.ResponseJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    product,
	})
}

// Update handles PUT /api/products/{productId} (protected, owner only)
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	var req request.UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Name, description, price, and category are required", validationErrors)
		return
	}

	product, err := h.service.Update(r.Context(), productID, user.ID, &req)
	if err != nil {
		h.handleProductError(w, err, "update")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// Delete handles DELETE /api/products/{productId} (protected, owner only)
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := utils.GetAuthUser(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	productID, err := uuid.Parse(chi.URLParam(r, "productId"))
	if err != nil {
		utils.ResponseBadRequest(w, "Product ID is required", nil)
		return
	}

	if err := h.service.Delete(r.Context(), productID, user.ID); err != nil {
		h.handleProductError(w, err, "delete")
		return
	}

	utils.ResponseJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func (h *ProductHandler) handleProductError(w http.ResponseWriter, err error, operation string) {
	if errors.Is(err, usecase.ErrProductNotFound) {
		utils.ResponseNotFound(w, "Product not found or you do not have permission to "+operation+" it")
		return
	}

	h.log.Error("Failed to "+operation+" product", zap.Error(err))
	utils.ResponseInternalError(w, "Failed to "+operation+" product")
}
