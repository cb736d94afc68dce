// Package accounts implementa la consola admin de cuentas.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/herothreads/api/internal/store/core"
)

var (
	ErrNotFound   = errors.New("accounts: account not found")
	ErrEmailTaken = errors.New("accounts: email already in use")
)

type Service struct {
	accounts core.AccountRepository
}

func New(accounts core.AccountRepository) *Service {
	return &Service{accounts: accounts}
}

func (s *Service) List(ctx context.Context) ([]core.Account, error) {
	items, err := s.accounts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*core.Account, error) {
	acc, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return acc, nil
}

// Update modifica perfil y estado. El email no se edita desde acá: el
// flujo de identidad depende de que el email verificado no cambie por
// detrás.
func (s *Service) Update(ctx context.Context, id string, upd core.AccountUpdate) (*core.Account, error) {
	acc, err := s.accounts.Update(ctx, id, upd)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, core.ErrConflict):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("update account: %w", err)
	}
	return acc, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}
