// Package token genera tokens opacos de un solo uso para verificación de
// email y reset de password. Boundary de seguridad: siempre crypto/rand.
package token

import (
	"crypto/rand"
	"encoding/base64"
	"time"
)

// DefaultBytes produce tokens de 256 bits de entropía.
const DefaultBytes = 32

// Generate genera un token opaco aleatorio (base64url sin padding).
func Generate(nBytes int) (string, error) {
	b := make([]byte, nBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Issue devuelve un token opaco y su expiry a partir de (now, ttl).
// Función pura de sus argumentos más la fuente aleatoria; sin estado.
func Issue(now time.Time, ttl time.Duration) (string, time.Time, error) {
	tok, err := Generate(DefaultBytes)
	if err != nil {
		return "", time.Time{}, err
	}
	return tok, now.Add(ttl), nil
}
