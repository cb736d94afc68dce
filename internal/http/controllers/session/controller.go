// Package session expone los endpoints del tracker de actividad.
package session

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	sessiondto "github.com/herothreads/api/internal/http/dto/session"
	httperrors "github.com/herothreads/api/internal/http/errors"
	"github.com/herothreads/api/internal/http/render"
	sessionsvc "github.com/herothreads/api/internal/http/services/session"
	"github.com/herothreads/api/internal/observability/logger"
)

type Controller struct {
	svc *sessionsvc.Service
}

func New(svc *sessionsvc.Service) *Controller {
	return &Controller{svc: svc}
}

// UpdateActivity maneja POST /api/session/update-activity.
func (c *Controller) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	var req sessiondto.UpdateActivityRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.UserID == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("userId"))
		return
	}

	if err := c.svc.RecordActivity(r.Context(), req.UserID); err != nil {
		if errors.Is(err, sessionsvc.ErrUserNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("usuario no encontrado"))
			return
		}
		logger.From(r.Context()).Error("update activity failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}

	render.JSON(w, http.StatusOK, sessiondto.MessageResponse{
		Success: true,
		Message: "Activity updated successfully",
	})
}

// Info maneja GET /api/session/info/{id}. remainingTime va en segundos.
func (c *Controller) Info(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	info, err := c.svc.Info(r.Context(), id)
	if err != nil {
		if errors.Is(err, sessionsvc.ErrUserNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("usuario no encontrado"))
			return
		}
		logger.From(r.Context()).Error("session info failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternal)
		return
	}

	render.JSON(w, http.StatusOK, sessiondto.InfoResponse{
		Success: true,
		Data: sessiondto.InfoData{
			LastActivity:  info.LastActivity,
			RemainingTime: int64(info.Remaining.Seconds()),
			Status:        info.Status,
		},
	})
}
