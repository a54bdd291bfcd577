package service

import (
	"context"
	"testing"
	"time"

	"quiz-course/internal/config"
	"quiz-course/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAuthService(t *testing.T) AuthService {
	t.Helper()
	svc, err := NewAuthService(testConfig())
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresSecret(t *testing.T) {
	_, err := NewAuthService(&config.Config{})
	assert.Error(t, err)
}

func TestAuthService_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	token, err := svc.CreateJWT(ctx, "user-42", []string{"Editor", "Admin"}, time.Minute)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", claims.UserID)
	assert.NotEmpty(t, claims.ID)

	actor := svc.ActorFromClaims(claims)
	assert.Equal(t, "user-42", actor.UserID)
	assert.True(t, actor.IsAdmin)
}

func TestAuthService_ActorWithoutAdminRole(t *testing.T) {
	svc := newTestAuthService(t)
	actor := svc.ActorFromClaims(&dto.AuthClaims{UserID: "u", Roles: []string{"admin", "Editor"}})
	assert.False(t, actor.IsAdmin, "role names are case sensitive")
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	sign := func(secret string, claims dto.AuthClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	valid := func() dto.AuthClaims {
		return dto.AuthClaims{
			UserID:    "u",
			TokenType: tokenTypeAccess,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
			},
		}
	}

	expired := valid()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	refresh := valid()
	refresh.TokenType = "refresh"
	anonymous := valid()
	anonymous.UserID = ""

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-jwt"},
		{"wrong secret", sign("other-secret", valid())},
		{"expired", sign("test-secret", expired)},
		{"refresh token", sign("test-secret", refresh)},
		{"missing user", sign("test-secret", anonymous)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateJWT(ctx, tt.token)
			assert.ErrorIs(t, err, ErrInvalidJWTToken)
		})
	}
}
