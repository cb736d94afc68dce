package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func TestIssueAndVerify(t *testing.T) {
	iss, err := NewIssuer(testSecret, "herothreads-api", time.Hour)
	require.NoError(t, err)

	now := time.Now()
	tok, err := iss.Issue("acc-1", "ana@example.com", "Ana", "client", now)
	require.NoError(t, err)

	claims, err := iss.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.Subject)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "Ana", claims.Name)
	assert.Equal(t, "client", claims.Role)
}

func TestVerifyExpired(t *testing.T) {
	iss, err := NewIssuer(testSecret, "herothreads-api", time.Minute)
	require.NoError(t, err)

	tok, err := iss.Issue("acc-1", "ana@example.com", "Ana", "client", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = iss.Verify(tok)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	a, err := NewIssuer(testSecret, "herothreads-api", time.Hour)
	require.NoError(t, err)
	b, err := NewIssuer([]byte("ffffffffffffffffffffffffffffffff"), "herothreads-api", time.Hour)
	require.NoError(t, err)

	tok, err := a.Issue("acc-1", "ana@example.com", "Ana", "client", time.Now())
	require.NoError(t, err)

	_, err = b.Verify(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	iss, err := NewIssuer(testSecret, "herothreads-api", time.Hour)
	require.NoError(t, err)

	_, err = iss.Verify("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewIssuerShortSecret(t *testing.T) {
	_, err := NewIssuer([]byte("short"), "herothreads-api", time.Hour)
	assert.Error(t, err)
}
