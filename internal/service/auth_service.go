package service

import (
	"errors"
	"time"

	"github.com/spec-kit/ticket-bot/internal/auth"
	"github.com/spec-kit/ticket-bot/internal/config"
)

// AuthService exchanges the configured operator key for API tokens.
type AuthService struct {
	tokens          *auth.TokenManager
	operatorKeyHash string
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokens:          auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		operatorKeyHash: cfg.OperatorKeyHash,
	}
}

// IssueToken verifies the presented operator key and returns a signed token.
func (s *AuthService) IssueToken(operatorName, operatorKey string) (string, time.Time, error) {
	if s.operatorKeyHash == "" {
		return "", time.Time{}, errors.New("operator key not configured")
	}
	if err := auth.VerifyOperatorKey(s.operatorKeyHash, operatorKey); err != nil {
		return "", time.Time{}, errors.New("invalid operator key")
	}
	return s.tokens.GenerateToken(operatorName)
}

// TokenManager exposes the token manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}
