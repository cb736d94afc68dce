// Package auth implementa el ciclo de vida de cuentas: registro,
// verificación de email, login, reset de contraseña y login federado
// con Google. Los controllers traducen los sentinels de este package
// a errores HTTP.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/herothreads/api/internal/cache"
	"github.com/herothreads/api/internal/email"
	"github.com/herothreads/api/internal/jwt"
	"github.com/herothreads/api/internal/oauth/google"
	"github.com/herothreads/api/internal/observability/logger"
	"github.com/herothreads/api/internal/security/password"
	"github.com/herothreads/api/internal/security/token"
	"github.com/herothreads/api/internal/store/core"
	"github.com/herothreads/api/internal/util"
)

// Sentinels del dominio de identidad.
var (
	ErrEmailTaken       = errors.New("auth: email already registered")
	ErrUserNotFound     = errors.New("auth: user not found")
	ErrBadPassword      = errors.New("auth: incorrect password")
	ErrAccountInactive  = errors.New("auth: account inactive")
	ErrEmailNotVerified = errors.New("auth: email not verified")
	ErrTokenInvalid     = errors.New("auth: token invalid or expired")
	ErrProviderDisabled = errors.New("auth: google provider not configured")
	ErrProviderAuth     = errors.New("auth: google authentication failed")
	ErrStateInvalid     = errors.New("auth: oauth state invalid or expired")
	ErrEmailSend        = errors.New("auth: could not send email")
)

const stateKeyPrefix = "oauth:state:"

// Config arma el Service con sus dependencias.
type Config struct {
	Accounts  core.AccountRepository
	Mail      email.Notifier
	Google    *google.Client
	Sessions  *jwt.Issuer
	State     cache.Client
	VerifyTTL time.Duration
	ResetTTL  time.Duration
	StateTTL  time.Duration
}

type Service struct {
	accounts  core.AccountRepository
	mail      email.Notifier
	google    *google.Client
	sessions  *jwt.Issuer
	state     cache.Client
	verifyTTL time.Duration
	resetTTL  time.Duration
	stateTTL  time.Duration
	hash      password.Params

	now func() time.Time
}

func New(cfg Config) *Service {
	s := &Service{
		accounts:  cfg.Accounts,
		mail:      cfg.Mail,
		google:    cfg.Google,
		sessions:  cfg.Sessions,
		state:     cfg.State,
		verifyTTL: cfg.VerifyTTL,
		resetTTL:  cfg.ResetTTL,
		stateTTL:  cfg.StateTTL,
		hash:      password.Default,
		now:       time.Now,
	}
	if s.verifyTTL <= 0 {
		s.verifyTTL = 24 * time.Hour
	}
	if s.resetTTL <= 0 {
		s.resetTTL = time.Hour
	}
	if s.stateTTL <= 0 {
		s.stateTTL = 10 * time.Minute
	}
	return s
}

// WithClock fija el reloj del service; solo para tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// RegisterResult devuelve la cuenta nueva y si el email de verificación
// llegó a salir. El registro no falla por un fallo de envío.
type RegisterResult struct {
	Account   *core.Account
	EmailSent bool
}

// SessionResult es el resultado de una autenticación exitosa.
type SessionResult struct {
	Account *core.Account
	Token   string
}

// Register da de alta una cuenta client sin verificar y dispara el email
// de verificación. El índice único de email es la última palabra sobre
// duplicados: un ErrConflict del store se reporta como ErrEmailTaken
// aunque el chequeo previo no lo haya visto.
func (s *Service) Register(ctx context.Context, name, normEmail, plain string) (*RegisterResult, error) {
	now := s.now().UTC()

	if _, err := s.accounts.GetByEmail(ctx, normEmail); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("register: lookup: %w", err)
	}

	hash, err := password.Hash(s.hash, plain)
	if err != nil {
		return nil, fmt.Errorf("register: hash: %w", err)
	}

	verifyToken, verifyExpires, err := token.Issue(now, s.verifyTTL)
	if err != nil {
		return nil, fmt.Errorf("register: token: %w", err)
	}

	acc := &core.Account{
		ID:            uuid.NewString(),
		Email:         normEmail,
		Name:          name,
		PasswordHash:  &hash,
		Role:          core.RoleClient,
		Status:        core.StatusActive,
		EmailVerified: false,
		VerifyToken:   &verifyToken,
		VerifyExpires: &verifyExpires,
		LastActivity:  now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.accounts.Create(ctx, acc); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("register: create: %w", err)
	}

	sent := true
	if err := s.mail.SendVerification(ctx, acc.Email, acc.Name, verifyToken); err != nil {
		sent = false
		logger.From(ctx).Warn("verification email not sent",
			logger.Email(util.MaskEmail(acc.Email)), logger.Err(err))
	}

	return &RegisterResult{Account: acc, EmailSent: sent}, nil
}

// VerifyEmail consume un token de verificación. El consumo es atómico en
// el store: de dos requests con el mismo token, exactamente uno gana.
func (s *Service) VerifyEmail(ctx context.Context, rawToken string) (*core.Account, error) {
	if rawToken == "" {
		return nil, ErrTokenInvalid
	}
	acc, err := s.accounts.ConsumeVerifyToken(ctx, rawToken, s.now().UTC())
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("verify email: %w", err)
	}
	return acc, nil
}

// Login autentica con email y password. Las puertas se evalúan en orden
// fijo: existencia, password, estado, verificación de email. Los admins
// no necesitan email verificado.
func (s *Service) Login(ctx context.Context, normEmail, plain string) (*SessionResult, error) {
	acc, err := s.accounts.GetByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("login: lookup: %w", err)
	}

	if !acc.HasPassword() || !password.Verify(plain, *acc.PasswordHash) {
		return nil, ErrBadPassword
	}

	if acc.Status == core.StatusInactive {
		return nil, ErrAccountInactive
	}

	if acc.Role != core.RoleAdmin && !acc.EmailVerified {
		return nil, ErrEmailNotVerified
	}

	now := s.now().UTC()
	if err := s.accounts.TouchActivity(ctx, acc.ID, now); err != nil {
		return nil, fmt.Errorf("login: touch activity: %w", err)
	}
	acc.LastActivity = now

	return s.openSession(acc, now)
}

// ForgotPassword genera un token de reset de 1 hora y lo envía por email.
// Para no revelar qué emails existen, un email desconocido también
// responde éxito. Un fallo real del envío sí se reporta: el usuario
// quedaría esperando un correo que nunca va a llegar.
func (s *Service) ForgotPassword(ctx context.Context, normEmail string) error {
	acc, err := s.accounts.GetByEmail(ctx, normEmail)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("forgot password: lookup: %w", err)
	}

	now := s.now().UTC()
	resetToken, resetExpires, err := token.Issue(now, s.resetTTL)
	if err != nil {
		return fmt.Errorf("forgot password: token: %w", err)
	}

	if err := s.accounts.SetResetToken(ctx, acc.ID, resetToken, resetExpires, now); err != nil {
		return fmt.Errorf("forgot password: persist token: %w", err)
	}

	if err := s.mail.SendPasswordReset(ctx, acc.Email, acc.Name, resetToken); err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			// Modo dev: el link quedó en el log.
			return nil
		}
		return fmt.Errorf("%w: %v", ErrEmailSend, err)
	}
	return nil
}

// ValidateResetToken chequea que un token de reset exista y no haya
// expirado, sin consumirlo.
func (s *Service) ValidateResetToken(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return ErrTokenInvalid
	}
	if _, err := s.accounts.GetByResetToken(ctx, rawToken, s.now().UTC()); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("validate reset token: %w", err)
	}
	return nil
}

// ResetPassword consume el token y reemplaza el hash en un solo paso.
func (s *Service) ResetPassword(ctx context.Context, rawToken, plain string) error {
	hash, err := password.Hash(s.hash, plain)
	if err != nil {
		return fmt.Errorf("reset password: hash: %w", err)
	}
	if _, err := s.accounts.ConsumeResetToken(ctx, rawToken, s.now().UTC(), hash); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}

// GoogleAuthURL genera la URL de autorización con un state de un solo
// uso guardado en cache.
func (s *Service) GoogleAuthURL(ctx context.Context) (string, error) {
	if s.google == nil || !s.google.Enabled() {
		return "", ErrProviderDisabled
	}
	state, err := token.Generate(16)
	if err != nil {
		return "", fmt.Errorf("google url: state: %w", err)
	}
	if err := s.state.Set(ctx, stateKeyPrefix+state, "1", s.stateTTL); err != nil {
		return "", fmt.Errorf("google url: cache state: %w", err)
	}
	return s.google.AuthURL(state), nil
}

// GoogleCallback valida y consume el state, canjea el code, trae el
// perfil y hace upsert de la cuenta: si el email no existe se crea una
// cuenta client ya verificada y sin password; si existe, se vincula el
// googleId y se fuerza la verificación.
func (s *Service) GoogleCallback(ctx context.Context, code, state string) (*SessionResult, error) {
	if s.google == nil || !s.google.Enabled() {
		return nil, ErrProviderDisabled
	}

	if err := s.consumeState(ctx, state); err != nil {
		return nil, err
	}

	tok, err := s.google.ExchangeCode(ctx, code)
	if err != nil {
		logger.From(ctx).Warn("google code exchange failed", logger.Err(err))
		return nil, ErrProviderAuth
	}

	info, err := s.google.FetchUserInfo(ctx, tok.AccessToken)
	if err != nil {
		logger.From(ctx).Warn("google userinfo fetch failed", logger.Err(err))
		return nil, ErrProviderAuth
	}

	now := s.now().UTC()
	normEmail := strings.ToLower(strings.TrimSpace(info.Email))

	acc, err := s.accounts.GetByEmail(ctx, normEmail)
	switch {
	case err == nil:
		acc, err = s.accounts.LinkGoogle(ctx, acc.ID, info.ID, now)
		if err != nil {
			return nil, fmt.Errorf("google callback: link: %w", err)
		}
	case errors.Is(err, core.ErrNotFound):
		gid := info.ID
		acc = &core.Account{
			ID:            uuid.NewString(),
			Email:         normEmail,
			Name:          info.Name,
			Role:          core.RoleClient,
			Status:        core.StatusActive,
			EmailVerified: true,
			GoogleID:      &gid,
			LastActivity:  now,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := s.accounts.Create(ctx, acc); err != nil {
			if errors.Is(err, core.ErrConflict) {
				// Registro concurrente con el mismo email: vincular sobre el ganador.
				if existing, lookupErr := s.accounts.GetByEmail(ctx, normEmail); lookupErr == nil {
					acc, err = s.accounts.LinkGoogle(ctx, existing.ID, info.ID, now)
				}
			}
			if err != nil {
				return nil, fmt.Errorf("google callback: create: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("google callback: lookup: %w", err)
	}

	return s.openSession(acc, now)
}

// consumeState quema el state de un solo uso emitido por GoogleAuthURL.
// Un state desconocido, expirado o ya usado corta el flujo antes de
// canjear el code.
func (s *Service) consumeState(ctx context.Context, state string) error {
	if state == "" {
		return ErrStateInvalid
	}
	key := stateKeyPrefix + state
	if _, err := s.state.Get(ctx, key); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return ErrStateInvalid
		}
		return fmt.Errorf("google callback: state lookup: %w", err)
	}
	if err := s.state.Delete(ctx, key); err != nil {
		return fmt.Errorf("google callback: state consume: %w", err)
	}
	return nil
}

func (s *Service) openSession(acc *core.Account, now time.Time) (*SessionResult, error) {
	tok, err := s.sessions.Issue(acc.ID, acc.Email, acc.Name, acc.Role, now)
	if err != nil {
		return nil, fmt.Errorf("issue session token: %w", err)
	}
	return &SessionResult{Account: acc, Token: tok}, nil
}
