package auth

import (
	"testing"
	"time"

	"klarfix/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("test123")
	require.NoError(t, err)
	assert.NotEqual(t, "test123", hash)

	assert.True(t, CheckPasswordHash("test123", hash))
	assert.False(t, CheckPasswordHash("test124", hash))

	assert.ErrorIs(t, ValidatePassword("12345"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	user := &models.User{Username: "anna@example.com", Role: models.UserRoleHelper}
	user.ID = 7

	token, expiresAt, err := m.Generate(user)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := m.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "anna@example.com", claims.Username)
	assert.Equal(t, models.UserRoleHelper, claims.Role)
	assert.Equal(t, "7", claims.Subject)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	user := &models.User{Username: "a@b.de", Role: models.UserRoleClient}
	user.ID = 1

	token, _, err := m.Generate(user)
	require.NoError(t, err)

	other := NewTokenManager("another-secret", time.Hour)
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewTokenManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Generate(user)
	require.NoError(t, err)
	_, err = m.Parse(old)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestPermissions(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleAdmin, PermReviewVerifications))
	assert.False(t, HasPermission(models.UserRoleHelper, PermReviewVerifications))
	assert.True(t, HasPermission(models.UserRoleHelper, PermSubmitVerification))
	assert.False(t, HasPermission(models.UserRoleClient, PermSubmitVerification))
	assert.True(t, IsAdmin(&Claims{Role: models.UserRoleAdmin}))
	assert.False(t, IsAdmin(nil))
}
