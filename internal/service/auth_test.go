package service

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/config"
	apperrors "github.com/campushub/campus-server/internal/errors"
)

func newTestAuth(t *testing.T, cfg *config.Config) (*AuthService, *auth.TokenService) {
	t.Helper()

	tokens, err := auth.NewTokenService(bytes.Repeat([]byte{7}, 32), time.Hour)
	require.NoError(t, err)
	return NewAuthService(setupServiceStore(t), tokens, cfg, discardLogger()), tokens
}

func TestAuthService_LoginCreatesAccount(t *testing.T) {
	svc, tokens := newTestAuth(t, &config.Config{})
	ctx := context.Background()

	result, err := svc.Login(ctx, "Ana@Campus.edu", "Ana García")
	require.NoError(t, err)
	assert.Equal(t, "ana@campus.edu", result.User.Email)
	assert.Equal(t, "Ana García", result.User.DisplayName)
	assert.False(t, result.User.IsAdmin)
	assert.NotEmpty(t, result.User.ID)

	claims, err := tokens.VerifyAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, claims.UserID)
	assert.Equal(t, "ana@campus.edu", claims.Email)
}

func TestAuthService_LoginUpsertsExisting(t *testing.T) {
	svc, _ := newTestAuth(t, &config.Config{})
	ctx := context.Background()

	first, err := svc.Login(ctx, "ana@campus.edu", "Ana")
	require.NoError(t, err)

	second, err := svc.Login(ctx, "ana@campus.edu", "Ana García")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, "Ana García", second.User.DisplayName)
	assert.False(t, second.User.LastLoginAt.Before(first.User.LastLoginAt))
}

func TestAuthService_DomainAllowList(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.AllowedEmailDomains = []string{"campus.edu"}
	svc, _ := newTestAuth(t, cfg)
	ctx := context.Background()

	_, err := svc.Login(ctx, "ana@campus.edu", "Ana")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "mallory@elsewhere.com", "Mallory")
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestAuthService_AdminFlag(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.AdminEmails = []string{"dean@campus.edu"}
	svc, tokens := newTestAuth(t, cfg)
	ctx := context.Background()

	result, err := svc.Login(ctx, "Dean@Campus.edu", "The Dean")
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)

	claims, err := tokens.VerifyAccessToken(result.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
}

func TestAuthService_GetUser(t *testing.T) {
	svc, _ := newTestAuth(t, &config.Config{})
	ctx := context.Background()

	result, err := svc.Login(ctx, "ana@campus.edu", "Ana")
	require.NoError(t, err)

	user, err := svc.GetUser(ctx, result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@campus.edu", user.Email)

	_, err = svc.GetUser(ctx, "user_missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
