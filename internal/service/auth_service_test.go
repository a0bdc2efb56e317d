package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/ticket-bot/internal/auth"
	"github.com/spec-kit/ticket-bot/internal/config"
)

func newAuthService(t *testing.T, operatorKey string) *AuthService {
	t.Helper()
	hash, err := auth.HashOperatorKey(operatorKey, bcrypt.MinCost)
	require.NoError(t, err)
	return NewAuthService(config.AuthConfig{
		JWTSecret:             "test-secret",
		AccessTokenTTLMinutes: 60,
		OperatorKeyHash:       hash,
	})
}

func TestIssueTokenWithValidKey(t *testing.T) {
	svc := newAuthService(t, "correct-key")

	token, _, err := svc.IssueToken("ops-alice", "correct-key")
	require.NoError(t, err)

	claims, err := svc.TokenManager().ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "ops-alice", claims.OperatorName)
}

func TestIssueTokenRejectsWrongKey(t *testing.T) {
	svc := newAuthService(t, "correct-key")

	_, _, err := svc.IssueToken("ops-alice", "wrong-key")
	assert.Error(t, err)
}

func TestIssueTokenWithoutConfiguredHash(t *testing.T) {
	svc := NewAuthService(config.AuthConfig{JWTSecret: "test-secret", AccessTokenTTLMinutes: 60})

	_, _, err := svc.IssueToken("ops-alice", "anything")
	assert.Error(t, err)
}
