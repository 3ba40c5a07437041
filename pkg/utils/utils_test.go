package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	token, expires, err := m.GenerateToken("marites")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expires, time.Minute)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "marites", claims.Clerk)
	assert.Equal(t, "marites", claims.Subject)
}

func TestJWTManagerRejects(t *testing.T) {
	t.Parallel()

	m := NewJWTManager("secret", time.Hour)
	token, _, err := m.GenerateToken("marites")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).ValidateToken(token)
	assert.Error(t, err, "wrong secret")

	expired := NewJWTManager("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.GenerateToken("marites")
	require.NoError(t, err)
	_, err = m.ValidateToken(old)
	assert.Error(t, err, "expired")

	_, err = m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("4321")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("4321", hash))
	assert.False(t, CheckPasswordHash("1234", hash))
	assert.False(t, CheckPasswordHash("4321", "not-a-hash"))
}
