package core

import (
	"context"
	"time"
)

// AccountUpdate son los campos editables desde la superficie admin.
// Un puntero nil deja el campo como está.
type AccountUpdate struct {
	Name    *string
	Phone   *string
	Address *string
	City    *string
	Status  *string
}

// AccountRepository persiste cuentas. Los emails se guardan normalizados
// (lowercase, trim); la unicidad la garantiza el store con un índice único
// y se reporta como ErrConflict.
//
// Las operaciones Consume* son updates condicionales: el match por token +
// expiry y la escritura del nuevo estado ocurren en un solo paso sobre el
// documento, para cerrar la carrera de dos requests validando el mismo token.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	List(ctx context.Context) ([]Account, error)
	Update(ctx context.Context, id string, upd AccountUpdate) (*Account, error)
	Delete(ctx context.Context, id string) error

	// ConsumeVerifyToken marca la cuenta como verificada y limpia token+expiry
	// si el token coincide y no expiró. ErrNotFound en cualquier otro caso.
	ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*Account, error)

	// SetResetToken persiste un token de reset con su expiry.
	SetResetToken(ctx context.Context, id, token string, expires time.Time, now time.Time) error

	// GetByResetToken valida un token de reset vigente sin consumirlo.
	GetByResetToken(ctx context.Context, token string, now time.Time) (*Account, error)

	// ConsumeResetToken reemplaza el hash y limpia token+expiry si el token
	// coincide y no expiró. ErrNotFound en cualquier otro caso.
	ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (*Account, error)

	// LinkGoogle adjunta el subject del provider, fuerza emailVerified y
	// actualiza lastActivity.
	LinkGoogle(ctx context.Context, id, googleID string, now time.Time) (*Account, error)

	// TouchActivity actualiza lastActivity. ErrNotFound si la cuenta no existe.
	TouchActivity(ctx context.Context, id string, now time.Time) error
}

// ProductRepository persiste el catálogo. Name es único (ErrConflict).
type ProductRepository interface {
	Create(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}

// SaleRepository persiste ventas.
type SaleRepository interface {
	Create(ctx context.Context, s *Sale) error
	GetByID(ctx context.Context, id string) (*Sale, error)
	List(ctx context.Context) ([]Sale, error)
}

// Repository agrupa los repos por entidad sobre un mismo backend.
type Repository interface {
	Ping(ctx context.Context) error
	Close(ctx context.Context) error

	Accounts() AccountRepository
	Products() ProductRepository
	Sales() SaleRepository
}
