package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/acmedash/billing-admin/internal/core/domain"
	"github.com/acmedash/billing-admin/internal/core/ports"
)

type stubCredentialStore struct {
	users   map[string]*domain.User
	err     error
	lookups int
}

func newStubCredentialStore(t *testing.T) *stubCredentialStore {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("123456"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &stubCredentialStore{users: map[string]*domain.User{
		"user@nextmail.com": {
			ID:           "410544b2-4001-4271-9855-fec4b6a6442a",
			Name:         "User",
			Email:        "user@nextmail.com",
			PasswordHash: string(hash),
		},
	}}
}

func (s *stubCredentialStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	s.lookups++
	if s.err != nil {
		return nil, &domain.PersistenceError{Op: "find user", Err: s.err}
	}
	u, ok := s.users[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func TestAuthService_Authorize_Success(t *testing.T) {
	store := newStubCredentialStore(t)
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	user, err := svc.Authorize(context.Background(), ports.Credentials{Email: "user@nextmail.com", Password: "123456"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user == nil || user.Email != "user@nextmail.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestAuthService_Authorize_ShapeCheckedBeforeLookup(t *testing.T) {
	store := newStubCredentialStore(t)
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	bad := []ports.Credentials{
		{Email: "a@b.com", Password: "short"},
		{Email: "not-an-email", Password: "123456"},
		{Email: "", Password: ""},
	}
	for _, creds := range bad {
		user, err := svc.Authorize(context.Background(), creds)
		if err != nil || user != nil {
			t.Errorf("%+v: expected silent decline, got %v, %v", creds, user, err)
		}
	}
	if store.lookups != 0 {
		t.Errorf("credential store must not be queried, got %d lookups", store.lookups)
	}
}

func TestAuthService_Authorize_DeclinesWithoutDistinction(t *testing.T) {
	store := newStubCredentialStore(t)
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	wrongPassword, err1 := svc.Authorize(context.Background(), ports.Credentials{Email: "user@nextmail.com", Password: "wrongpass"})
	unknownEmail, err2 := svc.Authorize(context.Background(), ports.Credentials{Email: "ghost@nextmail.com", Password: "123456"})
	if wrongPassword != nil || unknownEmail != nil || err1 != nil || err2 != nil {
		t.Fatalf("expected both declined identically, got (%v, %v) and (%v, %v)", wrongPassword, err1, unknownEmail, err2)
	}
}

func TestAuthService_SignIn_Success(t *testing.T) {
	store := newStubCredentialStore(t)
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	session, err := svc.SignIn(context.Background(), ports.Credentials{Email: "user@nextmail.com", Password: "123456"})
	if err != nil {
		t.Fatalf("sign in failed: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(session.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != session.User.ID || claims["email"] != "user@nextmail.com" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestAuthService_SignIn_InvalidCredentials(t *testing.T) {
	store := newStubCredentialStore(t)
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	for _, creds := range []ports.Credentials{
		{Email: "user@nextmail.com", Password: "wrongpass"},
		{Email: "ghost@nextmail.com", Password: "123456"},
	} {
		_, err := svc.SignIn(context.Background(), creds)
		var ae *domain.AuthError
		if !errors.As(err, &ae) || ae.Kind != domain.AuthCredentialsSignin {
			t.Fatalf("%s: expected CredentialsSignin, got %v", creds.Email, err)
		}
		if msg, _ := domain.AuthErrorMessage(err); msg != "Invalid credentials." {
			t.Fatalf("%s: unexpected message %q", creds.Email, msg)
		}
	}
}

func TestAuthService_SignIn_StoreFailure(t *testing.T) {
	store := newStubCredentialStore(t)
	store.err = errStoreDown
	svc := NewAuthService(store, "secret", time.Hour, discardLogger)

	_, err := svc.SignIn(context.Background(), ports.Credentials{Email: "user@nextmail.com", Password: "123456"})
	var ae *domain.AuthError
	if !errors.As(err, &ae) || ae.Kind != domain.AuthCallbackError {
		t.Fatalf("expected CallbackError, got %v", err)
	}
	if msg, _ := domain.AuthErrorMessage(err); msg != "Something went wrong." {
		t.Fatalf("unexpected message %q", msg)
	}
	if !errors.Is(err, errStoreDown) {
		t.Fatalf("cause should be wrapped")
	}
}
