package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herothreads/api/internal/bootstrap"
	cachemem "github.com/herothreads/api/internal/cache/memory"
	accountsctl "github.com/herothreads/api/internal/http/controllers/accounts"
	authctl "github.com/herothreads/api/internal/http/controllers/auth"
	catalogctl "github.com/herothreads/api/internal/http/controllers/catalog"
	healthctl "github.com/herothreads/api/internal/http/controllers/health"
	sessionctl "github.com/herothreads/api/internal/http/controllers/session"
	accountssvc "github.com/herothreads/api/internal/http/services/accounts"
	authsvc "github.com/herothreads/api/internal/http/services/auth"
	catalogsvc "github.com/herothreads/api/internal/http/services/catalog"
	sessionsvc "github.com/herothreads/api/internal/http/services/session"
	"github.com/herothreads/api/internal/jwt"
	"github.com/herothreads/api/internal/rate"
	"github.com/herothreads/api/internal/store/memory"
)

type capturedMail struct {
	verifyTokens []string
	resetTokens  []string
}

func (m *capturedMail) SendVerification(ctx context.Context, to, name, rawToken string) error {
	m.verifyTokens = append(m.verifyTokens, rawToken)
	return nil
}

func (m *capturedMail) SendPasswordReset(ctx context.Context, to, name, rawToken string) error {
	m.resetTokens = append(m.resetTokens, rawToken)
	return nil
}

type testAPI struct {
	handler http.Handler
	mail    *capturedMail
}

func newTestAPI(t *testing.T, limiter rate.Limiter) *testAPI {
	t.Helper()

	repo := memory.New()
	mail := &capturedMail{}
	issuer, err := jwt.NewIssuer([]byte("0123456789abcdef0123456789abcdef"), "test", time.Hour)
	require.NoError(t, err)

	require.NoError(t, bootstrap.EnsureAdmin(context.Background(), repo.Accounts(), bootstrap.AdminConfig{
		Email:    "admin@admin.com",
		Password: "admin123",
		Name:     "Administrador",
	}))

	authService := authsvc.New(authsvc.Config{
		Accounts:  repo.Accounts(),
		Mail:      mail,
		Sessions:  issuer,
		State:     cachemem.New(time.Minute),
		VerifyTTL: 24 * time.Hour,
		ResetTTL:  time.Hour,
	})

	handler := New(Deps{
		Auth:         authctl.New(authService),
		Session:      sessionctl.New(sessionsvc.New(repo.Accounts(), 15*time.Minute)),
		Catalog:      catalogctl.New(catalogsvc.New(repo.Products(), repo.Sales())),
		Accounts:     accountsctl.New(accountssvc.New(repo.Accounts())),
		Health:       healthctl.New(repo, "test"),
		Sessions:     issuer,
		LoginLimiter: limiter,
	})

	return &testAPI{handler: handler, mail: mail}
}

func (a *testAPI) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(t, "GET", "/api/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestFullAccountLifecycle(t *testing.T) {
	api := newTestAPI(t, nil)

	// registro
	rec := api.do(t, "POST", "/api/auth/register",
		`{"nombre":"Ana","email":"Ana@Example.com","password":"secreta1"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["emailSent"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "ana@example.com", user["email"])
	assert.Equal(t, "client", user["role"])

	// login bloqueado hasta verificar
	rec = api.do(t, "POST", "/api/login",
		`{"email":"ana@example.com","password":"secreta1"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, decode(t, rec)["message"], "Verifica tu email")

	// verificación con el token del email
	require.Len(t, api.mail.verifyTokens, 1)
	rec = api.do(t, "GET", "/api/email/verify/"+api.mail.verifyTokens[0], "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	// reuso del token
	rec = api.do(t, "GET", "/api/email/verify/"+api.mail.verifyTokens[0], "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// login exitoso con token de sesión
	rec = api.do(t, "POST", "/api/login",
		`{"email":"ana@example.com","password":"secreta1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body = decode(t, rec)
	token := body["token"].(string)
	assert.NotEmpty(t, token)
	userID := body["user"].(map[string]any)["id"].(string)

	// tracker de sesión
	rec = api.do(t, "POST", "/api/session/update-activity",
		`{"userId":"`+userID+`"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, "GET", "/api/session/info/"+userID, "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decode(t, rec)["data"].(map[string]any)
	assert.InDelta(t, 15*60, data["remainingTime"].(float64), 2)
	assert.Equal(t, "active", data["status"])
}

func TestLoginDistinct401Messages(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, "POST", "/api/login", `{"email":"nadie@example.com","password":"x"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Usuario no encontrado", decode(t, rec)["message"])

	rec = api.do(t, "POST", "/api/login", `{"email":"admin@admin.com","password":"mala"}`, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Contraseña incorrecta", decode(t, rec)["message"])
}

func TestAdminLoginViaSeededAccount(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, "POST", "/api/login", `{"email":"admin@admin.com","password":"admin123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.Equal(t, "admin", body["user"].(map[string]any)["role"])
	assert.NotEmpty(t, body["token"])
}

func TestRegisterDuplicateEmailIs400(t *testing.T) {
	api := newTestAPI(t, nil)

	payload := `{"nombre":"Ana","email":"ana@example.com","password":"secreta1"}`
	rec := api.do(t, "POST", "/api/auth/register", payload, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = api.do(t, "POST", "/api/auth/register", payload, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "EMAIL_TAKEN", body["code"])
	assert.Equal(t, "El email ya está registrado", body["message"])
}

func TestForgotPasswordAlwaysSameResponse(t *testing.T) {
	api := newTestAPI(t, nil)

	recUnknown := api.do(t, "POST", "/api/auth/forgot-password", `{"email":"nadie@example.com"}`, "")
	require.Equal(t, http.StatusOK, recUnknown.Code)

	api.do(t, "POST", "/api/auth/register", `{"nombre":"Ana","email":"ana@example.com","password":"secreta1"}`, "")
	recKnown := api.do(t, "POST", "/api/auth/forgot-password", `{"email":"ana@example.com"}`, "")
	require.Equal(t, http.StatusOK, recKnown.Code)

	// misma respuesta exacta, exista o no la cuenta
	assert.JSONEq(t, recUnknown.Body.String(), recKnown.Body.String())
	require.Len(t, api.mail.resetTokens, 1)
}

func TestResetPasswordFlowOverHTTP(t *testing.T) {
	api := newTestAPI(t, nil)

	api.do(t, "POST", "/api/auth/register", `{"nombre":"Ana","email":"ana@example.com","password":"vieja123"}`, "")
	api.do(t, "GET", "/api/email/verify/"+api.mail.verifyTokens[0], "", "")
	api.do(t, "POST", "/api/auth/forgot-password", `{"email":"ana@example.com"}`, "")
	require.Len(t, api.mail.resetTokens, 1)
	token := api.mail.resetTokens[0]

	rec := api.do(t, "GET", "/api/auth/validate-reset-token/"+token, "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = api.do(t, "POST", "/api/auth/reset-password",
		`{"token":"`+token+`","password":"nueva123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	// token quemado
	rec = api.do(t, "GET", "/api/auth/validate-reset-token/"+token, "", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = api.do(t, "POST", "/api/login", `{"email":"ana@example.com","password":"nueva123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestProductMutationsRequireAdmin(t *testing.T) {
	api := newTestAPI(t, nil)

	// listado público
	rec := api.do(t, "GET", "/api/products/", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	payload := `{"name":"Camiseta Hulk","description":"Verde","price":17}`

	// sin token
	rec = api.do(t, "POST", "/api/products/", payload, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// con token de cliente
	api.do(t, "POST", "/api/auth/register", `{"nombre":"Ana","email":"ana@example.com","password":"secreta1"}`, "")
	api.do(t, "GET", "/api/email/verify/"+api.mail.verifyTokens[0], "", "")
	loginRec := api.do(t, "POST", "/api/login", `{"email":"ana@example.com","password":"secreta1"}`, "")
	clientToken := decode(t, loginRec)["token"].(string)

	rec = api.do(t, "POST", "/api/products/", payload, clientToken)
	require.Equal(t, http.StatusForbidden, rec.Code)

	// con token admin
	adminRec := api.do(t, "POST", "/api/login", `{"email":"admin@admin.com","password":"admin123"}`, "")
	adminToken := decode(t, adminRec)["token"].(string)

	rec = api.do(t, "POST", "/api/products/", payload, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// nombre duplicado
	rec = api.do(t, "POST", "/api/products/", payload, adminToken)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSalesEndpoints(t *testing.T) {
	api := newTestAPI(t, nil)

	adminRec := api.do(t, "POST", "/api/login", `{"email":"admin@admin.com","password":"admin123"}`, "")
	adminToken := decode(t, adminRec)["token"].(string)

	sale := `{"customer":{"id":"c1","name":"Ana","email":"ana@example.com"},` +
		`"items":[{"productId":"p1","name":"Camiseta Hulk","price":17,"quantity":2,"total":34}],` +
		`"total":34,"paymentMethod":"card"}`

	// crear requiere sesión
	rec := api.do(t, "POST", "/api/sales/", sale, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = api.do(t, "POST", "/api/sales/", sale, adminToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, "completed", created["status"])

	// listar es solo admin
	rec = api.do(t, "GET", "/api/sales/", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestAccountsSurfaceRequiresAdmin(t *testing.T) {
	api := newTestAPI(t, nil)

	rec := api.do(t, "GET", "/api/accounts/", "", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	adminRec := api.do(t, "POST", "/api/login", `{"email":"admin@admin.com","password":"admin123"}`, "")
	adminToken := decode(t, adminRec)["token"].(string)

	rec = api.do(t, "GET", "/api/accounts/", "", adminToken)
	require.Equal(t, http.StatusOK, rec.Code)

	var accounts []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accounts))
	require.NotEmpty(t, accounts)
	// nunca se exponen hashes ni tokens
	for _, a := range accounts {
		_, hasHash := a["passwordHash"]
		assert.False(t, hasHash)
	}
}

func TestLoginRateLimit(t *testing.T) {
	api := newTestAPI(t, rate.NewMemoryLimiter(3, time.Minute))

	for i := 0; i < 3; i++ {
		rec := api.do(t, "POST", "/api/login", `{"email":"nadie@example.com","password":"x"}`, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	}
	rec := api.do(t, "POST", "/api/login", `{"email":"nadie@example.com","password":"x"}`, "")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestInvalidTokenRejected(t *testing.T) {
	api := newTestAPI(t, nil)
	rec := api.do(t, "GET", "/api/accounts/", "", "token-falso")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
