package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	phc, err := Hash(Default, "hunter22")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(phc, "$argon2id$"))

	assert.True(t, Verify("hunter22", phc))
	assert.False(t, Verify("hunter23", phc))
	assert.False(t, Verify("", phc))
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash(Default, "same-password")
	require.NoError(t, err)
	b, err := Hash(Default, "same-password")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestVerifyMalformed(t *testing.T) {
	for _, phc := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=65536,t=3,p=1$only-five-parts",
		"$argon2i$v=19$m=65536,t=3,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=1$!!notb64!!$aGFzaA",
	} {
		assert.False(t, Verify("whatever", phc), "phc=%q", phc)
	}
}
