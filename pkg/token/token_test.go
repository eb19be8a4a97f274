package token

import (
	"testing"
	"time"

	"storefront/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func testUser() *entity.User {
	return &entity.User{
		Base:  entity.Base{ID: uuid.New()},
		Email: "customer@example.com",
		Role:  entity.RoleCustomer,
	}
}

func TestIssueAndVerify(t *testing.T) {
	user := testUser()

	signed, err := Issue(user, testSecret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := Verify(signed, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
}

func TestVerifyExpired(t *testing.T) {
	signed, err := Issue(testUser(), testSecret, -time.Hour)
	require.NoError(t, err)

	claims, err := Verify(signed, testSecret)
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := Issue(testUser(), testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := Verify(signed, []byte("another-secret"))
	assert.Nil(t, claims)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestVerifyMalformed(t *testing.T) {
	for _, tokenStr := range []string{
		"",
		"garbage",
		"only.one",
		"a.b.c.d",
		"not.a.jwt",
	} {
		claims, err := Verify(tokenStr, testSecret)
		assert.Nil(t, claims, "token %q", tokenStr)
		assert.ErrorIs(t, err, ErrMalformed, "token %q", tokenStr)
	}
}
