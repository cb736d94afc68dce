// Package session implementa el tracker de actividad: el frontend hace
// ping periódico y consulta cuánto tiempo de inactividad le queda a la
// sesión antes del logout automático.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/herothreads/api/internal/store/core"
)

// IdleTimeout es la ventana de inactividad tras la cual el frontend
// cierra la sesión.
const IdleTimeout = 15 * time.Minute

var ErrUserNotFound = errors.New("session: user not found")

type Service struct {
	accounts core.AccountRepository
	idle     time.Duration

	now func() time.Time
}

func New(accounts core.AccountRepository, idle time.Duration) *Service {
	if idle <= 0 {
		idle = IdleTimeout
	}
	return &Service{accounts: accounts, idle: idle, now: time.Now}
}

// WithClock fija el reloj del service; solo para tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RecordActivity reinicia la ventana de inactividad de la cuenta.
func (s *Service) RecordActivity(ctx context.Context, accountID string) error {
	if err := s.accounts.TouchActivity(ctx, accountID, s.now().UTC()); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("record activity: %w", err)
	}
	return nil
}

// Info es el estado de inactividad de una cuenta. Remaining nunca es
// negativo: una sesión vencida reporta cero.
type Info struct {
	LastActivity time.Time
	Remaining    time.Duration
	Status       string
}

// Info calcula el tiempo restante contra la ventana de inactividad.
func (s *Service) Info(ctx context.Context, accountID string) (*Info, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("session info: %w", err)
	}

	now := s.now().UTC()
	last := acc.LastActivity
	if last.IsZero() {
		last = now
	}

	remaining := s.idle - now.Sub(last)
	if remaining < 0 {
		remaining = 0
	}

	return &Info{LastActivity: last, Remaining: remaining, Status: acc.Status}, nil
}
