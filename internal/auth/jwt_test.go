package auth

import (
	"testing"

	"carhub_backend/internal/config"

	"github.com/stretchr/testify/assert"
)

func setTestConfig(t *testing.T, ttlMinutes int) {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTLMinutes = ttlMinutes
	config.AppConfig = cfg
}

func TestGenerateAndParseToken(t *testing.T) {
	setTestConfig(t, 60)

	token, err := GenerateToken(7, "user@test.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
}

func TestParseToken_Expired(t *testing.T) {
	setTestConfig(t, -1)

	token, err := GenerateToken(1, "late@test.com")
	assert.NoError(t, err)

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t, 60)

	token, err := GenerateToken(1, "user@test.com")
	assert.NoError(t, err)

	config.AppConfig.JWT.Secret = "another-secret"

	_, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	setTestConfig(t, 60)

	_, err := ParseToken("not-a-jwt")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("super_password123")
	assert.NoError(t, err)
	assert.NotEqual(t, "super_password123", hash)

	assert.True(t, CheckPasswordHash("super_password123", hash))
	assert.False(t, CheckPasswordHash("wrong_password", hash))
}
