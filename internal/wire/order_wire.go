package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireOrder(
	r chi.Router,
	orderHandler *adaptor.OrderHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	// Authenticated routes: checkout, own order history, owner-guarded cancel
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, secret, log))

		r.Post("/api/orders/user", orderHandler.Create)
		r.Get("/api/orders/user", orderHandler.ListOwn)
		r.Patch("/api/orders/{orderId}/cancel", orderHandler.Cancel)
	})

	// Admin routes: full listing with status filter, deliver transition
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, secret, log))
		r.Use(middleware.AdminOnly(log))

		r.Get("/api/orders", orderHandler.ListAll)
		r.Patch("/api/orders/{orderId}/deliver", orderHandler.Deliver)
	})
}
