package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hingmart/internal/core/apperror"
	"hingmart/internal/domain/auth"
	"hingmart/internal/infrastructure/storage/memory"
)

func newAuthService() *auth.Service {
	store := memory.NewUserStore()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	return auth.NewService(store, store, nil, jwtService, auth.DefaultServiceConfig())
}

func register(t *testing.T, svc *auth.Service, email, password string) *auth.User {
	t.Helper()
	user, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    email,
		Password: password,
		Name:     "Seller",
	})
	require.NoError(t, err)
	return user
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()

	user := register(t, svc, "  Seller@Example.COM ", "secret-password")
	assert.Equal(t, "seller@example.com", user.Email, "email is normalized")
	assert.NotEqual(t, "secret-password", user.PasswordHash)
	assert.True(t, user.IsActive)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterRequest{Email: "seller@example.com", Password: "secret-password"})
		require.Error(t, err)
		assert.Equal(t, apperror.CodeConflict, errCode(t, err))
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.Register(ctx, auth.RegisterRequest{Email: "other@example.com", Password: "short"})
		require.Error(t, err)
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	register(t, svc, "seller@example.com", "secret-password")

	t.Run("success", func(t *testing.T) {
		tokens, user, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "secret-password"})
		require.NoError(t, err)
		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "Bearer", tokens.TokenType)
		assert.Equal(t, "seller@example.com", user.Email)

		claims, err := svc.ValidateToken(tokens.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "wrong-password"})
		require.Error(t, err)
		assert.Equal(t, apperror.CodeUnauthorized, errCode(t, err))
	})

	t.Run("unknown email reads the same as wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, auth.Credentials{Email: "nobody@example.com", Password: "secret-password"})
		require.Error(t, err)
		assert.Equal(t, apperror.CodeUnauthorized, errCode(t, err))
	})
}

func TestLogin_LockoutAfterRepeatedFailures(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	register(t, svc, "seller@example.com", "secret-password")

	for i := 0; i < auth.DefaultServiceConfig().MaxLoginAttempts; i++ {
		_, _, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "wrong-password"})
		require.Error(t, err)
	}

	_, _, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "secret-password"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeForbidden, errCode(t, err))
}

func TestRefreshToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	register(t, svc, "seller@example.com", "secret-password")
	tokens, _, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "secret-password"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, tokens.RefreshToken, refreshed.RefreshToken)

	t.Run("old token is revoked after rotation", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, tokens.RefreshToken)
		require.Error(t, err)
		assert.Equal(t, apperror.CodeUnauthorized, errCode(t, err))
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := svc.RefreshToken(ctx, "deadbeef")
		require.Error(t, err)
		assert.Equal(t, apperror.CodeUnauthorized, errCode(t, err))
	})
}

func TestLogout_RevokesAllTokens(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	user := register(t, svc, "seller@example.com", "secret-password")
	tokens, _, err := svc.Login(ctx, auth.Credentials{Email: "seller@example.com", Password: "secret-password"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, user.ID))

	_, err = svc.RefreshToken(ctx, tokens.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUnauthorized, errCode(t, err))
}

func TestGetUserByID(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService()
	user := register(t, svc, "seller@example.com", "secret-password")

	got, err := svc.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
}
