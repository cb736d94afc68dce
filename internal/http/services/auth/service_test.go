package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachemem "github.com/herothreads/api/internal/cache/memory"
	"github.com/herothreads/api/internal/email"
	"github.com/herothreads/api/internal/jwt"
	"github.com/herothreads/api/internal/oauth/google"
	"github.com/herothreads/api/internal/store/core"
	"github.com/herothreads/api/internal/store/memory"
)

// mailRecorder captura los envíos en vez de hablar SMTP.
type mailRecorder struct {
	verifyTokens []string
	resetTokens  []string
	failWith     error
}

func (m *mailRecorder) SendVerification(ctx context.Context, to, name, rawToken string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.verifyTokens = append(m.verifyTokens, rawToken)
	return nil
}

func (m *mailRecorder) SendPasswordReset(ctx context.Context, to, name, rawToken string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.resetTokens = append(m.resetTokens, rawToken)
	return nil
}

func newTestService(t *testing.T, mail *mailRecorder) (*Service, core.AccountRepository) {
	t.Helper()
	repo := memory.New()
	issuer, err := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "test", time.Hour)
	require.NoError(t, err)
	svc := New(Config{
		Accounts:  repo.Accounts(),
		Mail:      mail,
		Sessions:  issuer,
		State:     cachemem.New(time.Minute),
		VerifyTTL: 24 * time.Hour,
		ResetTTL:  time.Hour,
	})
	return svc, repo.Accounts()
}

func TestRegisterHappyPath(t *testing.T) {
	mail := &mailRecorder{}
	svc, accounts := newTestService(t, mail)
	ctx := context.Background()

	res, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.True(t, res.EmailSent)
	assert.Equal(t, core.RoleClient, res.Account.Role)
	assert.False(t, res.Account.EmailVerified)
	require.Len(t, mail.verifyTokens, 1)

	stored, err := accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.VerifyToken)
	assert.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, "secreta1", *stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t, &mailRecorder{})
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Otra Ana", "ana@example.com", "otracosa")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestRegisterEmailSendFailureIsNotFatal(t *testing.T) {
	mail := &mailRecorder{failWith: email.ErrNotConfigured}
	svc, _ := newTestService(t, mail)

	res, err := svc.Register(context.Background(), "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.False(t, res.EmailSent)
}

// Flujo completo estilo "usuaria nueva": registro, login bloqueado,
// verificación, login exitoso.
func TestRegisterVerifyLoginFlow(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	// login antes de verificar
	_, err = svc.Login(ctx, "ana@example.com", "secreta1")
	assert.ErrorIs(t, err, ErrEmailNotVerified)

	// verificar con el token del email
	require.Len(t, mail.verifyTokens, 1)
	acc, err := svc.VerifyEmail(ctx, mail.verifyTokens[0])
	require.NoError(t, err)
	assert.True(t, acc.EmailVerified)

	// ahora sí
	res, err := svc.Login(ctx, "ana@example.com", "secreta1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)

	// el token de verificación es de un solo uso
	_, err = svc.VerifyEmail(ctx, mail.verifyTokens[0])
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyEmailExpiredToken(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	// avanzar el reloj más allá del TTL de 24h
	svc.WithClock(func() time.Time { return time.Now().Add(25 * time.Hour) })

	_, err = svc.VerifyEmail(ctx, mail.verifyTokens[0])
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestLoginGates(t *testing.T) {
	mail := &mailRecorder{}
	svc, accounts := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Login(ctx, "nadie@example.com", "x")
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	// password incorrecto gana sobre email sin verificar
	_, err = svc.Login(ctx, "ana@example.com", "incorrecta")
	assert.ErrorIs(t, err, ErrBadPassword)

	_, err = svc.VerifyEmail(ctx, mail.verifyTokens[0])
	require.NoError(t, err)

	// cuenta inactiva
	acc, err := accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	inactive := core.StatusInactive
	_, err = accounts.Update(ctx, acc.ID, core.AccountUpdate{Status: &inactive})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "ana@example.com", "secreta1")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestLoginGoogleOnlyAccountHasNoPassword(t *testing.T) {
	svc, accounts := newTestService(t, &mailRecorder{})
	ctx := context.Background()
	now := time.Now().UTC()

	gid := "google-sub"
	require.NoError(t, accounts.Create(ctx, &core.Account{
		ID: "g1", Email: "solo-google@example.com", Name: "G",
		Role: core.RoleClient, Status: core.StatusActive,
		EmailVerified: true, GoogleID: &gid,
		LastActivity: now, CreatedAt: now, UpdatedAt: now,
	}))

	_, err := svc.Login(ctx, "solo-google@example.com", "cualquiercosa")
	assert.ErrorIs(t, err, ErrBadPassword)
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)

	err := svc.ForgotPassword(context.Background(), "nadie@example.com")
	assert.NoError(t, err)
	assert.Empty(t, mail.resetTokens)
}

func TestForgotAndResetPassword(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "vieja-clave")
	require.NoError(t, err)
	_, err = svc.VerifyEmail(ctx, mail.verifyTokens[0])
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "ana@example.com"))
	require.Len(t, mail.resetTokens, 1)
	resetToken := mail.resetTokens[0]

	// validar no consume
	require.NoError(t, svc.ValidateResetToken(ctx, resetToken))
	require.NoError(t, svc.ValidateResetToken(ctx, resetToken))

	require.NoError(t, svc.ResetPassword(ctx, resetToken, "nueva-clave"))

	// la clave vieja ya no sirve, la nueva sí
	_, err = svc.Login(ctx, "ana@example.com", "vieja-clave")
	assert.ErrorIs(t, err, ErrBadPassword)
	_, err = svc.Login(ctx, "ana@example.com", "nueva-clave")
	assert.NoError(t, err)

	// el token quedó quemado
	assert.ErrorIs(t, svc.ValidateResetToken(ctx, resetToken), ErrTokenInvalid)
	assert.ErrorIs(t, svc.ResetPassword(ctx, resetToken, "otra"), ErrTokenInvalid)
}

func TestForgotPasswordInvalidatesPreviousToken(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "ana@example.com"))
	require.NoError(t, svc.ForgotPassword(ctx, "ana@example.com"))
	require.Len(t, mail.resetTokens, 2)

	// solo el último token emitido es válido
	assert.ErrorIs(t, svc.ValidateResetToken(ctx, mail.resetTokens[0]), ErrTokenInvalid)
	assert.NoError(t, svc.ValidateResetToken(ctx, mail.resetTokens[1]))
}

func TestResetTokenExpires(t *testing.T) {
	mail := &mailRecorder{}
	svc, _ := newTestService(t, mail)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)
	require.NoError(t, svc.ForgotPassword(ctx, "ana@example.com"))

	svc.WithClock(func() time.Time { return time.Now().Add(2 * time.Hour) })

	assert.ErrorIs(t, svc.ValidateResetToken(ctx, mail.resetTokens[0]), ErrTokenInvalid)
}

func TestGoogleAuthURLDisabled(t *testing.T) {
	svc, _ := newTestService(t, &mailRecorder{})
	_, err := svc.GoogleAuthURL(context.Background())
	assert.ErrorIs(t, err, ErrProviderDisabled)
}

// fakeGoogle levanta endpoints token+userinfo locales.
func fakeGoogle(t *testing.T, info google.UserInfo) *google.Client {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"access_token": "at-123", "token_type": "Bearer"})
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer at-123", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(info)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	g := google.New("client-id", "client-secret", "http://localhost/callback", nil)
	g.TokenEndpoint = srv.URL + "/token"
	g.UserinfoEndpoint = srv.URL + "/userinfo"
	return g
}

// issueState pide una AuthURL y extrae el state recién cacheado.
func issueState(t *testing.T, svc *Service) string {
	t.Helper()
	authURL, err := svc.GoogleAuthURL(context.Background())
	require.NoError(t, err)
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	state := u.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

func TestGoogleCallbackCreatesVerifiedClient(t *testing.T) {
	svc, accounts := newTestService(t, &mailRecorder{})
	svc.google = fakeGoogle(t, google.UserInfo{ID: "sub-1", Email: "Nueva@Example.com", Name: "Nueva"})
	ctx := context.Background()

	res, err := svc.GoogleCallback(ctx, "auth-code", issueState(t, svc))
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, core.RoleClient, res.Account.Role)
	assert.True(t, res.Account.EmailVerified)
	assert.False(t, res.Account.HasPassword())

	// el email quedó normalizado
	stored, err := accounts.GetByEmail(ctx, "nueva@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "sub-1", *stored.GoogleID)
}

func TestGoogleCallbackLinksExistingAccount(t *testing.T) {
	mail := &mailRecorder{}
	svc, accounts := newTestService(t, mail)
	svc.google = fakeGoogle(t, google.UserInfo{ID: "sub-2", Email: "ana@example.com", Name: "Ana"})
	ctx := context.Background()

	// cuenta previa por password, sin verificar
	_, err := svc.Register(ctx, "Ana", "ana@example.com", "secreta1")
	require.NoError(t, err)

	res, err := svc.GoogleCallback(ctx, "auth-code", issueState(t, svc))
	require.NoError(t, err)
	assert.True(t, res.Account.EmailVerified)

	stored, err := accounts.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored.GoogleID)
	assert.Equal(t, "sub-2", *stored.GoogleID)
	// el password original sigue sirviendo
	assert.True(t, stored.HasPassword())
}

func TestGoogleCallbackRejectsMissingState(t *testing.T) {
	svc, _ := newTestService(t, &mailRecorder{})
	svc.google = fakeGoogle(t, google.UserInfo{ID: "sub-3", Email: "x@example.com", Name: "X"})

	_, err := svc.GoogleCallback(context.Background(), "auth-code", "")
	assert.ErrorIs(t, err, ErrStateInvalid)
}

func TestGoogleCallbackRejectsUnknownState(t *testing.T) {
	svc, _ := newTestService(t, &mailRecorder{})
	svc.google = fakeGoogle(t, google.UserInfo{ID: "sub-3", Email: "x@example.com", Name: "X"})

	// hay un state emitido, pero el callback trae otro
	_ = issueState(t, svc)
	_, err := svc.GoogleCallback(context.Background(), "auth-code", "forjado")
	assert.ErrorIs(t, err, ErrStateInvalid)
}

func TestGoogleCallbackStateIsSingleUse(t *testing.T) {
	svc, _ := newTestService(t, &mailRecorder{})
	svc.google = fakeGoogle(t, google.UserInfo{ID: "sub-4", Email: "y@example.com", Name: "Y"})
	ctx := context.Background()

	state := issueState(t, svc)
	_, err := svc.GoogleCallback(ctx, "auth-code", state)
	require.NoError(t, err)

	// el mismo state no sirve dos veces
	_, err = svc.GoogleCallback(ctx, "auth-code", state)
	assert.ErrorIs(t, err, ErrStateInvalid)
}
