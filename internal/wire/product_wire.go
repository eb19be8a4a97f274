package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireProduct(
	r chi.Router,
	productHandler *adaptor.ProductHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	// Public catalog
	r.Get("/api/products", productHandler.List)

	// Owner-guarded mutations; ownership is checked in the service layer
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, secret, log))

		r.Get("/api/my-products", productHandler.ListOwn)
		r.Put("/api/products/{productId}", productHandler.Update)
		r.Delete("/api/products/{productId}", productHandler.Delete)
	})

	// Creating catalog entries is admin-only
	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, secret, log))
		r.Use(middleware.AdminOnly(log))

		r.Post("/api/products", productHandler.Create)
	})
}
