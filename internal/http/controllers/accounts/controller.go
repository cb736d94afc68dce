// Package accounts expone la consola admin de cuentas.
package accounts

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/herothreads/api/internal/audit"
	accountsdto "github.com/herothreads/api/internal/http/dto/accounts"
	httperrors "github.com/herothreads/api/internal/http/errors"
	"github.com/herothreads/api/internal/http/middlewares"
	"github.com/herothreads/api/internal/http/render"
	accountssvc "github.com/herothreads/api/internal/http/services/accounts"
	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/store/core"
)

type Controller struct {
	svc *accountssvc.Service
}

func New(svc *accountssvc.Service) *Controller {
	return &Controller{svc: svc}
}

// List maneja GET /api/accounts.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.svc.List(r.Context())
	if err != nil {
		c.fail(w, r, err, "list accounts failed")
		return
	}
	out := make([]accountsdto.Payload, 0, len(items))
	for i := range items {
		out = append(out, accountsdto.FromCore(&items[i]))
	}
	render.JSON(w, http.StatusOK, out)
}

// Get maneja GET /api/accounts/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	acc, err := c.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, accountssvc.ErrNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("cuenta no encontrada"))
			return
		}
		c.fail(w, r, err, "get account failed")
		return
	}
	render.JSON(w, http.StatusOK, accountsdto.FromCore(acc))
}

// Update maneja PUT /api/accounts/{id}.
func (c *Controller) Update(w http.ResponseWriter, r *http.Request) {
	var req accountsdto.UpdateRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Status != nil && *req.Status != core.StatusActive && *req.Status != core.StatusInactive {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("status inválido"))
		return
	}

	acc, err := c.svc.Update(r.Context(), chi.URLParam(r, "id"), core.AccountUpdate{
		Name:    req.Nombre,
		Phone:   req.Celular,
		Address: req.Direccion,
		City:    req.Ciudad,
		Status:  req.Status,
	})
	if err != nil {
		if errors.Is(err, accountssvc.ErrNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("cuenta no encontrada"))
			return
		}
		c.fail(w, r, err, "update account failed")
		return
	}

	audit.Log(r.Context(), "account.update", actorID(r), acc.ID)
	logger.From(r.Context()).Info("account updated", logger.AccountID(acc.ID))
	render.JSON(w, http.StatusOK, accountsdto.FromCore(acc))
}

// Delete maneja DELETE /api/accounts/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, accountssvc.ErrNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("cuenta no encontrada"))
			return
		}
		c.fail(w, r, err, "delete account failed")
		return
	}

	audit.Log(r.Context(), "account.delete", actorID(r), id)
	logger.From(r.Context()).Info("account deleted", logger.AccountID(id))
	render.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Cuenta eliminada"})
}

func actorID(r *http.Request) string {
	if claims, ok := middlewares.GetClaims(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func (c *Controller) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.From(r.Context()).Error(msg, logger.Err(err))
	httperrors.WriteError(w, httperrors.ErrInternal)
}
