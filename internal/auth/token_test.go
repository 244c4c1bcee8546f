package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testKey = []byte("test-secret")

func TestGenerateAndParseToken(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateToken(testKey, userID, true, time.Hour)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := ParseToken(testKey, token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestParseToken_Expired(t *testing.T) {
	token, err := GenerateToken(testKey, uuid.New(), false, -time.Minute)
	assert.NoError(t, err)

	_, err = ParseToken(testKey, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testKey, uuid.New(), false, time.Hour)
	assert.NoError(t, err)

	_, err = ParseToken([]byte("other-secret"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testKey, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("hunter2")
	assert.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	assert.True(t, CheckPasswordHash(hash, "hunter2"))
	assert.False(t, CheckPasswordHash(hash, "hunter3"))
}
