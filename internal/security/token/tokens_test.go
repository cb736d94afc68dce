package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	a, err := Generate(DefaultBytes)
	require.NoError(t, err)
	b, err := Generate(DefaultBytes)
	require.NoError(t, err)

	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
	// base64url, sin caracteres problemáticos para URLs
	assert.NotContains(t, a, "+")
	assert.NotContains(t, a, "/")
	assert.NotContains(t, a, "=")
}

func TestIssue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tok, expires, err := Issue(now, 24*time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tok)
	assert.Equal(t, now.Add(24*time.Hour), expires)
}
