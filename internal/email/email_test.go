package email

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// senderRecorder captura lo que se habría enviado por SMTP.
type senderRecorder struct {
	to, subject, html, text string
	sent                    int
}

func (s *senderRecorder) Send(to, subject, htmlBody, textBody string) error {
	s.to, s.subject, s.html, s.text = to, subject, htmlBody, textBody
	s.sent++
	return nil
}

func TestSendVerificationRendersLink(t *testing.T) {
	rec := &senderRecorder{}
	svc := NewService(rec, "http://localhost:5173")

	err := svc.SendVerification(context.Background(), "ana@example.com", "Ana", "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, 1, rec.sent)
	assert.Equal(t, "ana@example.com", rec.to)
	assert.Contains(t, rec.subject, "Verificación")
	assert.Contains(t, rec.html, "http://localhost:5173/verify-email?token=tok-abc")
	assert.Contains(t, rec.html, "Ana")
	assert.Contains(t, rec.text, "tok-abc")
}

func TestSendPasswordResetRendersLink(t *testing.T) {
	rec := &senderRecorder{}
	svc := NewService(rec, "http://localhost:5173")

	err := svc.SendPasswordReset(context.Background(), "ana@example.com", "Ana", "tok-reset")
	require.NoError(t, err)
	assert.Contains(t, rec.html, "http://localhost:5173/reset-password?token=tok-reset")
	assert.Contains(t, rec.subject, "Restablecer")
}

func TestUnconfiguredSenderDegrades(t *testing.T) {
	svc := NewService(nil, "http://localhost:5173")

	err := svc.SendVerification(context.Background(), "ana@example.com", "Ana", "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)

	err = svc.SendPasswordReset(context.Background(), "ana@example.com", "Ana", "tok")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
