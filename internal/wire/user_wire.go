package wire

import (
	"storefront/internal/adaptor"
	"storefront/internal/data/repository"
	"storefront/pkg/middleware"
	"storefront/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	secret := []byte(config.JWT.Secret)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(repo.User, secret, log))
		r.Use(middleware.AdminOnly(log))

		r.Get("/api/users", userHandler.List)
	})
}
