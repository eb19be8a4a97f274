package utils

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const authUserKey contextKey = "auth_user"

// AuthUser is the trimmed identity the auth middleware attaches to the request
// context. It never carries the password hash.
type AuthUser struct {
	ID    uuid.UUID
	Email string
	Role  string
}

func SetAuthUser(ctx context.Context, user AuthUser) context.Context {
	return context.WithValue(ctx, authUserKey, user)
}

func GetAuthUser(ctx context.Context) (AuthUser, bool) {
	user, ok := ctx.Value(authUserKey).(AuthUser)
	return user, ok
}
