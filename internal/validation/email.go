// Package validation agrupa las reglas de formato de los campos de
// entrada del API.
package validation

import "regexp"

// Email rules: forma usuario@dominio.tld, sin espacios. No intenta ser
// RFC 5322 completo; alcanza para rechazar typos obvios antes de tocar
// la base.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]{2,}$`)

// ValidEmail reporta si el email tiene forma válida.
func ValidEmail(s string) bool {
	return len(s) <= 254 && emailRe.MatchString(s)
}

// MinPasswordLen es el largo mínimo aceptado para passwords nuevos.
const MinPasswordLen = 6

// ValidPassword reporta si el password cumple el largo mínimo.
func ValidPassword(s string) bool {
	return len(s) >= MinPasswordLen
}
