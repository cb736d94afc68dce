// Package health expone el endpoint de salud del service.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/herothreads/api/internal/http/render"
	"github.com/herothreads/api/internal/store/core"
)

type Controller struct {
	repo    core.Repository
	version string
}

func New(repo core.Repository, version string) *Controller {
	return &Controller{repo: repo, version: version}
}

// Health maneja GET /api/health: chequea la base con un timeout corto.
func (c *Controller) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	overall := "ok"
	dbStatus := "ok"
	status := http.StatusOK
	if err := c.repo.Ping(ctx); err != nil {
		overall = "degraded"
		dbStatus = "unreachable"
		status = http.StatusServiceUnavailable
	}

	render.JSON(w, status, map[string]any{
		"status":  overall,
		"version": c.version,
		"db":      dbStatus,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}
