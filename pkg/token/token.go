package token

import (
	"errors"
	"strings"
	"time"

	"storefront/internal/data/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMalformed means the credential is not a three-segment signed token.
	ErrMalformed = errors.New("malformed token")
	// ErrInvalidSignature means the signature does not match the server secret.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrExpired means the embedded expiry timestamp is in the past.
	ErrExpired = errors.New("token expired")
)

// Claims is the identity carried inside a signed token.
type Claims struct {
	UserID uuid.UUID
	Email  string
}

type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue signs a token for the user with the given lifetime.
func Issue(user *entity.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwtClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// Verify checks the token signature and expiry against the secret and the
// current time. It has no side effects; callers resolve the subject themselves.
func Verify(tokenStr string, secret []byte) (*Claims, error) {
	if strings.Count(tokenStr, ".") != 2 {
		return nil, ErrMalformed
	}

	var claims jwtClaims
	parsed, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return secret, nil
	})

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrInvalidSignature
	case err != nil:
		return nil, ErrMalformed
	case !parsed.Valid:
		return nil, ErrMalformed
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrMalformed
	}

	return &Claims{UserID: userID, Email: claims.Email}, nil
}
