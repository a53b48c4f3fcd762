package auth

import (
	"testing"

	"resolvenow_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	cfg := &config.Config{}
	cfg.JWT.Secret = "unit-test-secret"
	cfg.JWT.TTL = 60
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken("user-123", "agent")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "agent", claims.Role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := ParseToken("not.a.token")
	require.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-123", "user")
	require.NoError(t, err)

	config.AppConfig.JWT.Secret = "different-secret"
	defer func() { config.AppConfig.JWT.Secret = "unit-test-secret" }()

	_, err = ParseToken(token)
	require.Error(t, err)
}

func TestEmailToken(t *testing.T) {
	token, err := GenerateEmailToken("rita@example.com")
	require.NoError(t, err)

	emailAddr, err := ParseEmailToken(token)
	require.NoError(t, err)
	assert.Equal(t, "rita@example.com", emailAddr)

	_, err = ParseEmailToken("garbage")
	require.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPasswordHash("secret123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
