package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

// AuthService checks email/password credentials and issues session tokens.
type AuthService struct {
	store     ports.CredentialStore
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
}

func NewAuthService(store ports.CredentialStore, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL, logger: logger}
}

// Authorize returns the user matching creds. Malformed credentials, unknown
// emails and wrong passwords all decline the same way: nil user, nil error.
// Only a failing credential store yields an error.
func (s *AuthService) Authorize(ctx context.Context, creds ports.Credentials) (*domain.User, error) {
	if err := formValidator.Struct(creds); err != nil {
		s.logger.Debug().Msg("invalid credentials")
		return nil, nil
	}

	user, err := s.store.FindByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Debug().Msg("invalid credentials")
			return nil, nil
		}
		s.logger.Error().Err(err).Msg("failed to fetch user")
		return nil, domain.NewPublicError("Failed to fetch user.", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)) != nil {
		s.logger.Debug().Msg("invalid credentials")
		return nil, nil
	}
	return user, nil
}

// SignIn authorizes creds and issues a token. Declines come back as
// AuthCredentialsSignin, store failures as AuthCallbackError.
func (s *AuthService) SignIn(ctx context.Context, creds ports.Credentials) (*ports.Session, error) {
	user, err := s.Authorize(ctx, creds)
	if err != nil {
		return nil, &domain.AuthError{Kind: domain.AuthCallbackError, Err: err}
	}
	if user == nil {
		return nil, &domain.AuthError{Kind: domain.AuthCredentialsSignin}
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, fmt.Errorf("sign in: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return &ports.Session{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"name":  user.Name,
		"exp":   time.Now().Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
