package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidEmail(t *testing.T) {
	for _, ok := range []string{
		"ana@example.com",
		"a.b+tag@sub.dominio.co",
		"admin@admin.com",
	} {
		assert.True(t, ValidEmail(ok), ok)
	}
	for _, bad := range []string{
		"",
		"sin-arroba",
		"dos@@arrobas.com",
		"espacio en@medio.com",
		"@dominio.com",
		"user@",
		"user@dominio",
	} {
		assert.False(t, ValidEmail(bad), bad)
	}
}

func TestValidPassword(t *testing.T) {
	assert.False(t, ValidPassword(""))
	assert.False(t, ValidPassword("corta"))
	assert.True(t, ValidPassword("123456"))
	assert.True(t, ValidPassword("admin123"))
}
