// Package audit registra acciones administrativas como eventos
// estructurados. Por ahora el sink es el logger; puede cablearse a DB
// o a un sink externo sin tocar a los callers.
package audit

import (
	"context"

	"go.uber.org/zap"

	"github.com/herothreads/api/internal/observability/logger"
)

// Log escribe un evento de auditoría con el actor y el recurso afectado.
func Log(ctx context.Context, event, actorID, resource string) {
	logger.From(ctx).Info("audit",
		zap.String("event", event),
		zap.String("actor", actorID),
		zap.String("resource", resource),
	)
}
