// Package bootstrap siembra el estado mínimo que el service necesita al
// arrancar: la cuenta admin.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/security/password"
	"github.com/herothreads/api/internal/store/core"
	"github.com/herothreads/api/internal/util"
)

// AdminConfig describe la cuenta admin a garantizar.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// EnsureAdmin garantiza que exista la cuenta admin sembrada. El admin es
// una fila más de la colección de cuentas, ya verificada: el login lo
// autentica por el camino normal, sin ramas especiales. Idempotente; si
// la cuenta ya existe no toca nada, ni siquiera el password.
func EnsureAdmin(ctx context.Context, accounts core.AccountRepository, cfg AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("bootstrap: admin email and password are required")
	}

	if _, err := accounts.GetByEmail(ctx, cfg.Email); err == nil {
		return nil
	} else if !errors.Is(err, core.ErrNotFound) {
		return fmt.Errorf("bootstrap: check admin: %w", err)
	}

	hash, err := password.Hash(password.Default, cfg.Password)
	if err != nil {
		return fmt.Errorf("bootstrap: hash admin password: %w", err)
	}

	name := cfg.Name
	if name == "" {
		name = "Administrador"
	}

	now := time.Now().UTC()
	admin := &core.Account{
		ID:            uuid.NewString(),
		Email:         cfg.Email,
		Name:          name,
		PasswordHash:  &hash,
		Role:          core.RoleAdmin,
		Status:        core.StatusActive,
		EmailVerified: true,
		LastActivity:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := accounts.Create(ctx, admin); err != nil {
		if errors.Is(err, core.ErrConflict) {
			// Otro proceso sembró primero.
			return nil
		}
		return fmt.Errorf("bootstrap: create admin: %w", err)
	}

	logger.L().Info("admin account seeded", logger.Email(util.MaskEmail(cfg.Email)))
	return nil
}
