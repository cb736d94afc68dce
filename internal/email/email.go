// Package email arma y envía las notificaciones del storefront.
//
// El Notifier es una capability inyectada: el lifecycle service lo llama
// después de persistir, y un fallo de envío nunca deshace el estado ya
// escrito. Sin credenciales SMTP se degrada a loguear el link (modo dev).
package email

import (
	"context"
	"fmt"
)

// Sender envía un email con contenido HTML y texto plano.
// Implementada por SMTPSender.
type Sender interface {
	Send(to, subject, htmlBody, textBody string) error
}

// Notifier es lo que el lifecycle service conoce del subsistema de email.
type Notifier interface {
	// SendVerification envía el link de verificación de cuenta (token de 24h).
	SendVerification(ctx context.Context, to, name, rawToken string) error

	// SendPasswordReset envía el link de reset de password (token de 1h).
	SendPasswordReset(ctx context.Context, to, name, rawToken string) error
}

// Service implementa Notifier componiendo un Sender con los templates.
type Service struct {
	sender  Sender
	baseURL string
}

// NewService crea el Notifier. sender puede ser nil: en ese caso cada envío
// se resuelve como no-op logueado (ver notifier.go).
func NewService(sender Sender, baseURL string) *Service {
	if baseURL == "" {
		baseURL = "http://localhost:3000"
	}
	return &Service{sender: sender, baseURL: baseURL}
}

func (s *Service) verifyLink(token string) string {
	return fmt.Sprintf("%s/verify-email?token=%s", s.baseURL, token)
}

func (s *Service) resetLink(token string) string {
	return fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
}
