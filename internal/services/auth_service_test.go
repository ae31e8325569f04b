package services

import (
	"errors"
	"testing"
	"time"

	"storefront/internal/redis"

	"golang.org/x/crypto/bcrypt"
)

type fakeSessionStore struct {
	sessions map[string]*redis.SessionData
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]*redis.SessionData{}}
}

func (f *fakeSessionStore) SetSession(token string, data *redis.SessionData, ttl time.Duration) error {
	f.sessions[token] = data
	return nil
}

func (f *fakeSessionStore) GetSession(token string) (*redis.SessionData, error) {
	s, ok := f.sessions[token]
	if !ok {
		return nil, errors.New("session not found")
	}
	return s, nil
}

func (f *fakeSessionStore) DeleteSession(token string) error {
	delete(f.sessions, token)
	return nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	return string(hash)
}

func TestLoginIssuesSessionToken(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewAuthService(store, hashFor(t, "s3cret"), time.Hour)

	token, err := svc.Login("s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if token == "" {
		t.Fatal("empty token issued")
	}
	if !svc.Validate(token) {
		t.Fatal("issued token does not validate")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeSessionStore(), hashFor(t, "s3cret"), time.Hour)

	if _, err := svc.Login("guess"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService(newFakeSessionStore(), "", time.Hour)

	if _, err := svc.Login("anything"); !errors.Is(err, ErrAuthNotConfigured) {
		t.Fatalf("expected ErrAuthNotConfigured, got %v", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	svc := NewAuthService(newFakeSessionStore(), hashFor(t, "s3cret"), time.Hour)

	if svc.Validate("") || svc.Validate("bogus") {
		t.Fatal("unknown token validated")
	}
}

func TestLogoutInvalidatesToken(t *testing.T) {
	store := newFakeSessionStore()
	svc := NewAuthService(store, hashFor(t, "s3cret"), time.Hour)

	token, err := svc.Login("s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if err := svc.Logout(token); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if svc.Validate(token) {
		t.Fatal("token still valid after logout")
	}
}
