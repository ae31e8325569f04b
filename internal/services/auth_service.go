package services

import (
	"errors"
	"time"

	"storefront/internal/redis"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuthNotConfigured  = errors.New("admin password is not configured")
)

// SessionStore holds issued operator sessions; backed by Redis in production.
type SessionStore interface {
	SetSession(token string, data *redis.SessionData, ttl time.Duration) error
	GetSession(token string) (*redis.SessionData, error)
	DeleteSession(token string) error
}

// AuthService verifies the operator credential server-side and issues
// opaque session tokens. Passwords are never compared in plaintext and
// never leave the server.
type AuthService interface {
	Login(password string) (string, error)
	Validate(token string) bool
	Logout(token string) error
}

type authService struct {
	sessions     SessionStore
	passwordHash string
	sessionTTL   time.Duration
}

func NewAuthService(sessions SessionStore, passwordHash string, sessionTTL time.Duration) AuthService {
	return &authService{
		sessions:     sessions,
		passwordHash: passwordHash,
		sessionTTL:   sessionTTL,
	}
}

func (s *authService) Login(password string) (string, error) {
	if s.passwordHash == "" {
		return "", ErrAuthNotConfigured
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token := uuid.NewString()
	session := &redis.SessionData{
		Token:     token,
		Role:      "admin",
		CreatedAt: time.Now(),
	}
	if err := s.sessions.SetSession(token, session, s.sessionTTL); err != nil {
		return "", err
	}
	return token, nil
}

func (s *authService) Validate(token string) bool {
	if token == "" {
		return false
	}
	_, err := s.sessions.GetSession(token)
	return err == nil
}

func (s *authService) Logout(token string) error {
	return s.sessions.DeleteSession(token)
}
