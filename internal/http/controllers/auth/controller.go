// Package auth expone los endpoints HTTP del flujo de identidad.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	authdto "github.com/herothreads/api/internal/http/dto/auth"
	httperrors "github.com/herothreads/api/internal/http/errors"
	"github.com/herothreads/api/internal/http/render"
	"github.com/herothreads/api/internal/metrics"
	authsvc "github.com/herothreads/api/internal/http/services/auth"
	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/store/core"
	"github.com/herothreads/api/internal/util"
	"github.com/herothreads/api/internal/validation"
)

type Controller struct {
	svc *authsvc.Service
}

func New(svc *authsvc.Service) *Controller {
	return &Controller{svc: svc}
}

func userPayload(a *core.Account) authdto.UserPayload {
	return authdto.UserPayload{ID: a.ID, Nombre: a.Name, Email: a.Email, Role: a.Role}
}

// Register maneja POST /api/auth/register.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req authdto.RegisterRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	req.Normalize()
	if missing := req.Validate(); len(missing) > 0 {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(strings.Join(missing, ", ")))
		return
	}
	if !validation.ValidEmail(req.Email) {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("email inválido"))
		return
	}
	if !validation.ValidPassword(req.Password) {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("la contraseña debe tener al menos 6 caracteres"))
		return
	}

	res, err := c.svc.Register(r.Context(), req.Nombre, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrEmailTaken) {
			httperrors.WriteError(w, httperrors.ErrEmailTaken)
			return
		}
		c.fail(w, r, err, "register failed")
		return
	}

	metrics.Registrations.Inc()
	logger.From(r.Context()).Info("account registered",
		logger.AccountID(res.Account.ID), logger.Email(util.MaskEmail(res.Account.Email)))

	render.JSON(w, http.StatusCreated, authdto.RegisterResponse{
		Success:   true,
		Message:   "Usuario registrado exitosamente. Se ha enviado un email de confirmación.",
		User:      userPayload(res.Account),
		EmailSent: res.EmailSent,
	})
}

// VerifyEmail maneja GET /api/email/verify/{token}.
func (c *Controller) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	acc, err := c.svc.VerifyEmail(r.Context(), token)
	if err != nil {
		if errors.Is(err, authsvc.ErrTokenInvalid) {
			httperrors.WriteError(w, httperrors.ErrTokenInvalidOrExpired)
			return
		}
		c.fail(w, r, err, "email verification failed")
		return
	}

	logger.From(r.Context()).Info("email verified", logger.AccountID(acc.ID))

	render.JSON(w, http.StatusOK, authdto.MessageResponse{
		Success: true,
		Message: "Email verificado correctamente. Ya puedes iniciar sesión.",
	})
}

// Login maneja POST /api/login. Cada puerta fallida tiene su propio
// mensaje 401; el contrato del frontend los distingue.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req authdto.LoginRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	req.Normalize()
	if req.Email == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields)
		return
	}

	res, err := c.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrUserNotFound):
			metrics.Logins.WithLabelValues("not_found").Inc()
			httperrors.WriteError(w, httperrors.ErrUserNotFound)
		case errors.Is(err, authsvc.ErrBadPassword):
			metrics.Logins.WithLabelValues("bad_password").Inc()
			httperrors.WriteError(w, httperrors.ErrBadPassword)
		case errors.Is(err, authsvc.ErrAccountInactive):
			metrics.Logins.WithLabelValues("inactive").Inc()
			httperrors.WriteError(w, httperrors.ErrAccountInactive)
		case errors.Is(err, authsvc.ErrEmailNotVerified):
			metrics.Logins.WithLabelValues("unverified").Inc()
			httperrors.WriteError(w, httperrors.ErrEmailNotVerified)
		default:
			c.fail(w, r, err, "login failed")
		}
		return
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	logger.From(r.Context()).Info("login ok",
		logger.AccountID(res.Account.ID), logger.Role(res.Account.Role))

	render.JSON(w, http.StatusOK, authdto.SessionResponse{
		Success: true,
		Message: "Usuario autenticado correctamente",
		User:    userPayload(res.Account),
		Token:   res.Token,
	})
}

// ForgotPassword maneja POST /api/auth/forgot-password. La respuesta es
// la misma exista o no la cuenta.
func (c *Controller) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req authdto.ForgotPasswordRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("email"))
		return
	}

	if err := c.svc.ForgotPassword(r.Context(), email); err != nil {
		if errors.Is(err, authsvc.ErrEmailSend) {
			logger.From(r.Context()).Error("reset email send failed", logger.Err(err))
			httperrors.WriteError(w, httperrors.ErrUpstream.WithDetail("no se pudo enviar el email de restablecimiento"))
			return
		}
		c.fail(w, r, err, "forgot password failed")
		return
	}

	render.JSON(w, http.StatusOK, authdto.MessageResponse{
		Success: true,
		Message: "Si el email existe en nuestra base de datos, recibirás un enlace para restablecer tu contraseña.",
	})
}

// ValidateResetToken maneja GET /api/auth/validate-reset-token/{token}.
func (c *Controller) ValidateResetToken(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if err := c.svc.ValidateResetToken(r.Context(), token); err != nil {
		if errors.Is(err, authsvc.ErrTokenInvalid) {
			httperrors.WriteError(w, httperrors.ErrTokenInvalidOrExpired)
			return
		}
		c.fail(w, r, err, "validate reset token failed")
		return
	}

	render.JSON(w, http.StatusOK, authdto.MessageResponse{Success: true, Message: "Token válido"})
}

// ResetPassword maneja POST /api/auth/reset-password.
func (c *Controller) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req authdto.ResetPasswordRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Token == "" || req.Password == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("token, password"))
		return
	}
	if !validation.ValidPassword(req.Password) {
		httperrors.WriteError(w, httperrors.ErrBadRequest.WithDetail("la contraseña debe tener al menos 6 caracteres"))
		return
	}

	if err := c.svc.ResetPassword(r.Context(), req.Token, req.Password); err != nil {
		if errors.Is(err, authsvc.ErrTokenInvalid) {
			httperrors.WriteError(w, httperrors.ErrTokenInvalidOrExpired)
			return
		}
		c.fail(w, r, err, "reset password failed")
		return
	}

	render.JSON(w, http.StatusOK, authdto.MessageResponse{
		Success: true,
		Message: "Contraseña actualizada exitosamente",
	})
}

// GoogleAuthURL maneja GET /api/auth/google/url.
func (c *Controller) GoogleAuthURL(w http.ResponseWriter, r *http.Request) {
	url, err := c.svc.GoogleAuthURL(r.Context())
	if err != nil {
		if errors.Is(err, authsvc.ErrProviderDisabled) {
			httperrors.WriteError(w, httperrors.ErrProviderAuth.WithDetail("provider no configurado"))
			return
		}
		c.fail(w, r, err, "google auth url failed")
		return
	}

	render.JSON(w, http.StatusOK, authdto.AuthURLResponse{Success: true, AuthURL: url})
}

// GoogleCallback maneja POST /api/auth/google/callback.
func (c *Controller) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	var req authdto.GoogleCallbackRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if req.Code == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("code"))
		return
	}
	if req.State == "" {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail("state"))
		return
	}

	res, err := c.svc.GoogleCallback(r.Context(), req.Code, req.State)
	if err != nil {
		if errors.Is(err, authsvc.ErrStateInvalid) {
			httperrors.WriteError(w, httperrors.ErrTokenInvalidOrExpired.WithDetail("state"))
			return
		}
		if errors.Is(err, authsvc.ErrProviderAuth) || errors.Is(err, authsvc.ErrProviderDisabled) {
			httperrors.WriteError(w, httperrors.ErrProviderAuth)
			return
		}
		c.fail(w, r, err, "google callback failed")
		return
	}

	logger.From(r.Context()).Info("google login ok", logger.AccountID(res.Account.ID))

	render.JSON(w, http.StatusOK, authdto.SessionResponse{
		Success: true,
		Message: "Autenticación con Google exitosa",
		User:    userPayload(res.Account),
		Token:   res.Token,
	})
}

func (c *Controller) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.From(r.Context()).Error(msg, logger.Err(err))
	httperrors.WriteError(w, httperrors.ErrInternal)
}
