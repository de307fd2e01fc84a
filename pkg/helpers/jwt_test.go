package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "user-order-service")
	tok, exp, err := m.GenerateToken("ops")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := m.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
}

func TestTokenManagerRejectsForeignTokens(t *testing.T) {
	issued := NewTokenManager("secret", time.Hour, "user-order-service")
	tok, _, err := issued.GenerateToken("ops")
	require.NoError(t, err)

	_, err = NewTokenManager("other-secret", time.Hour, "user-order-service").ParseToken(tok)
	assert.Error(t, err)

	_, err = NewTokenManager("secret", time.Hour, "someone-else").ParseToken(tok)
	assert.Error(t, err)
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute, "user-order-service")
	tok, _, err := m.GenerateToken("ops")
	require.NoError(t, err)

	_, err = m.ParseToken(tok)
	assert.Error(t, err)
}
