package auth_test

import (
	"testing"
	"time"

	"eureka/internal/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

const testSecret = "test-secret-key"

func TestGenerateAndParseToken(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, 24*time.Hour)

	// Generate a token
	userID := "test-user-id"
	token, err := manager.Generate(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	// Parse it back
	parsedUserID, err := manager.Parse(token)

	assert.NoError(t, err)
	assert.Equal(t, userID, parsedUserID)
}

func TestParseToken_InvalidToken(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	_, err := manager.Parse("invalid-token")

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := auth.NewTokenManager("another-secret", time.Hour).Generate("user")
	assert.NoError(t, err)

	_, err = auth.NewTokenManager(testSecret, time.Hour).Parse(token)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_ExpiredToken(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	// Token expired an hour ago
	claims := jwt.MapClaims{
		"user_id": "test-user-id",
		"exp":     time.Now().Add(-1 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	expiredToken, _ := token.SignedString([]byte(testSecret))

	_, err := manager.Parse(expiredToken)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestParseToken_MissingClaims(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	// No "user_id" claim
	claims := jwt.MapClaims{
		"exp": time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenWithoutUserID, _ := token.SignedString([]byte(testSecret))

	_, err := manager.Parse(tokenWithoutUserID)

	assert.ErrorIs(t, err, auth.ErrInvalidClaims)
}

func TestParseToken_RejectsOtherAlgorithms(t *testing.T) {
	manager := auth.NewTokenManager(testSecret, time.Hour)

	claims := jwt.MapClaims{
		"user_id": "test-user-id",
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, _ := token.SignedString([]byte(testSecret))

	_, err := manager.Parse(signed)

	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
