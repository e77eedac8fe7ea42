package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID, tenantID := uuid.New(), uuid.New()

	token, err := m.GenerateAccessToken(userID, tenantID, "owner@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, tenantID, claims.TenantID)
	assert.Equal(t, "owner@example.com", claims.Email)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	userID := uuid.New()

	refresh, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	got, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	access, err := m.GenerateAccessToken(userID, uuid.New(), "a@b.c")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTRejectsOtherSecret(t *testing.T) {
	token, err := NewJWTManager("one", time.Hour, time.Hour).GenerateAccessToken(uuid.New(), uuid.New(), "x@y.z")
	require.NoError(t, err)

	_, err = NewJWTManager("two", time.Hour, time.Hour).ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret!")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("s3cret!", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sun-power-pvt-ltd", Slugify("  Sun Power (Pvt) Ltd "))
	assert.Equal(t, "a-b", Slugify("a -- b"))

	slug := UniqueSlug("!!!")
	assert.True(t, strings.HasPrefix(slug, "tenant-"))
}
