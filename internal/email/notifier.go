package email

import (
	"context"
	"errors"

	"github.com/herothreads/api/internal/metrics"
	"github.com/herothreads/api/internal/observability/logger"
)

// ErrNotConfigured indica que no hay credenciales SMTP. Los callers lo
// tratan como "no enviado" no-fatal, nunca como fallo de la operación
// principal.
var ErrNotConfigured = errors.New("email: sender not configured")

const (
	subjectVerify = "Verificación de Email - Hero Threads"
	subjectReset  = "Restablecer Contraseña - Hero Threads"
)

var _ Notifier = (*Service)(nil)

// SendVerification renderiza y envía el email de verificación.
func (s *Service) SendVerification(ctx context.Context, to, name, rawToken string) error {
	link := s.verifyLink(rawToken)
	log := logger.From(ctx).With(
		logger.Component("email"),
		logger.Template("verify"),
	)

	if s.sender == nil {
		// Credenciales no configuradas: el registro sigue siendo válido,
		// el link queda en el log para desarrollo.
		log.Warn("smtp not configured, verification link not sent", logger.String("link", link))
		metrics.EmailsSent.WithLabelValues("verify", "skipped").Inc()
		return ErrNotConfigured
	}

	html, text, err := renderVerify(templateVars{Name: name, Link: link})
	if err != nil {
		return err
	}
	if err := s.sender.Send(to, subjectVerify, html, text); err != nil {
		log.Error("verification email failed", logger.Err(err))
		metrics.EmailsSent.WithLabelValues("verify", "error").Inc()
		return err
	}
	log.Info("verification email sent")
	metrics.EmailsSent.WithLabelValues("verify", "sent").Inc()
	return nil
}

// SendPasswordReset renderiza y envía el email de reset.
func (s *Service) SendPasswordReset(ctx context.Context, to, name, rawToken string) error {
	link := s.resetLink(rawToken)
	log := logger.From(ctx).With(
		logger.Component("email"),
		logger.Template("reset"),
	)

	if s.sender == nil {
		log.Warn("smtp not configured, reset link not sent", logger.String("link", link))
		metrics.EmailsSent.WithLabelValues("reset", "skipped").Inc()
		return ErrNotConfigured
	}

	html, text, err := renderReset(templateVars{Name: name, Link: link})
	if err != nil {
		return err
	}
	if err := s.sender.Send(to, subjectReset, html, text); err != nil {
		log.Error("reset email failed", logger.Err(err))
		metrics.EmailsSent.WithLabelValues("reset", "error").Inc()
		return err
	}
	log.Info("reset email sent")
	metrics.EmailsSent.WithLabelValues("reset", "sent").Inc()
	return nil
}
