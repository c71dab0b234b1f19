package auth

import (
	"testing"
	"time"

	"hiremind_backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cretpass", hash)
	assert.True(t, CheckPasswordHash("s3cretpass", hash))
	assert.False(t, CheckPasswordHash("wrong-pass1", hash))
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword("onlyletters"))
	assert.Error(t, ValidatePassword("1234567890"))
	assert.NoError(t, ValidatePassword("letters123"))
}

func TestTokenRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.GenerateToken("user-1", models.UserRoleRecruiter)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleRecruiter, claims.Role)
}

func TestTokenExpired(t *testing.T) {
	m := NewTokenManager("secret", time.Minute)
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }

	token, err := m.GenerateToken("user-1", models.UserRoleRecruiter)
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).GenerateToken("user-1", models.UserRoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("secret-b", time.Hour).ParseToken(token)
	assert.Error(t, err)
}

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(models.UserRoleAdmin, PermUsersRead))
	assert.False(t, HasPermission(models.UserRoleRecruiter, PermUsersRead))
	assert.True(t, HasPermission(models.UserRoleRecruiter, PermJobsWrite))
}
