// Package accounts define los contratos de la consola admin de cuentas.
package accounts

import (
	"time"

	"github.com/herothreads/api/internal/store/core"
)

// UpdateRequest actualiza campos de perfil y estado. Punteros nil
// significan "sin cambio". El email no se edita por esta vía.
type UpdateRequest struct {
	Nombre    *string `json:"nombre,omitempty"`
	Celular   *string `json:"celular,omitempty"`
	Direccion *string `json:"direccion,omitempty"`
	Ciudad    *string `json:"ciudad,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// Payload es la vista admin de una cuenta; nunca expone hashes ni tokens.
type Payload struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Celular       string    `json:"celular,omitempty"`
	Direccion     string    `json:"direccion,omitempty"`
	Ciudad        string    `json:"ciudad,omitempty"`
	Role          string    `json:"role"`
	Status        string    `json:"status"`
	EmailVerified bool      `json:"emailVerified"`
	HasGoogle     bool      `json:"hasGoogle"`
	LastActivity  time.Time `json:"lastActivity"`
	CreatedAt     time.Time `json:"createdAt"`
}

func FromCore(a *core.Account) Payload {
	return Payload{
		ID:            a.ID,
		Nombre:        a.Name,
		Email:         a.Email,
		Celular:       a.Phone,
		Direccion:     a.Address,
		Ciudad:        a.City,
		Role:          a.Role,
		Status:        a.Status,
		EmailVerified: a.EmailVerified,
		HasGoogle:     a.GoogleID != nil,
		LastActivity:  a.LastActivity,
		CreatedAt:     a.CreatedAt,
	}
}
