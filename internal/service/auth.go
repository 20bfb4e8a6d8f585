package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushub/campus-server/internal/auth"
	"github.com/campushub/campus-server/internal/config"
	"github.com/campushub/campus-server/internal/domain"
	"github.com/campushub/campus-server/internal/errors"
	"github.com/campushub/campus-server/internal/id"
	"github.com/campushub/campus-server/internal/store"
)

// AuthService handles login and account upsert.
//
// The portal trusts the campus email domain as identity: a login with an
// allowed address creates or refreshes the account and returns an access
// token. There are no passwords here; production deployments sit behind the
// university's SSO proxy, which has already authenticated the address.
type AuthService struct {
	store  *store.Store
	tokens *auth.TokenService
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(st *store.Store, tokens *auth.TokenService, cfg *config.Config, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  st,
		tokens: tokens,
		cfg:    cfg,
		logger: logger,
	}
}

// LoginResult carries the token and the account it identifies.
type LoginResult struct {
	User        *domain.User `json:"user"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

// Login authenticates an email address, upserting the account.
func (s *AuthService) Login(ctx context.Context, email, displayName string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if !s.cfg.DomainAllowed(email) {
		return nil, errors.Forbidden("email domain is not allowed on this portal")
	}

	user, err := s.store.Users.GetByIndex(ctx, "email", email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		userID, idErr := id.Generate("user")
		if idErr != nil {
			return nil, fmt.Errorf("generate user ID: %w", idErr)
		}
		user = domain.NewUser(userID, email, displayName, s.cfg.IsAdmin(email))
		if createErr := s.store.Users.Create(ctx, user.ID, user); createErr != nil {
			return nil, fmt.Errorf("create user: %w", createErr)
		}
		s.logger.Info("user registered", "user_id", user.ID, "email", user.Email, "is_admin", user.IsAdmin)

	case err != nil:
		return nil, fmt.Errorf("look up user: %w", err)

	default:
		// Refresh login time, display name, and admin flag (config may have
		// changed since last login).
		user.LastLoginAt = time.Now()
		if displayName != "" {
			user.DisplayName = displayName
		}
		user.IsAdmin = s.cfg.IsAdmin(email)
		if updateErr := s.store.Users.Update(ctx, user.ID, user); updateErr != nil {
			return nil, fmt.Errorf("update user: %w", updateErr)
		}
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &LoginResult{
		User:        user,
		AccessToken: token,
		ExpiresAt:   time.Now().Add(s.tokens.AccessTokenDuration()),
	}, nil
}

// GetUser retrieves an account by ID.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.store.Users.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
