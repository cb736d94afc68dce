package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herothreads/api/internal/store/core"
)

func strPtr(s string) *string { return &s }

func newAccount(id, email string) *core.Account {
	now := time.Now().UTC()
	return &core.Account{
		ID:           id,
		Email:        email,
		Name:         "Test",
		Role:         core.RoleClient,
		Status:       core.StatusActive,
		LastActivity: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestAccountCreateDuplicateEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Accounts().Create(ctx, newAccount("a1", "ana@example.com")))
	err := s.Accounts().Create(ctx, newAccount("a2", "ana@example.com"))
	assert.ErrorIs(t, err, core.ErrConflict)
}

func TestConsumeVerifyTokenSingleUse(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	acc := newAccount("a1", "ana@example.com")
	exp := now.Add(24 * time.Hour)
	acc.VerifyToken = strPtr("tok-123")
	acc.VerifyExpires = &exp
	require.NoError(t, s.Accounts().Create(ctx, acc))

	got, err := s.Accounts().ConsumeVerifyToken(ctx, "tok-123", now)
	require.NoError(t, err)
	assert.True(t, got.EmailVerified)
	assert.Nil(t, got.VerifyToken)

	// segundo intento con el mismo token
	_, err = s.Accounts().ConsumeVerifyToken(ctx, "tok-123", now)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestConsumeVerifyTokenExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	acc := newAccount("a1", "ana@example.com")
	exp := now.Add(-time.Minute)
	acc.VerifyToken = strPtr("tok-expired")
	acc.VerifyExpires = &exp
	require.NoError(t, s.Accounts().Create(ctx, acc))

	_, err := s.Accounts().ConsumeVerifyToken(ctx, "tok-expired", now)
	assert.ErrorIs(t, err, core.ErrNotFound)

	// la cuenta sigue sin verificar
	got, err := s.Accounts().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.False(t, got.EmailVerified)
}

func TestResetTokenLifecycle(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	acc := newAccount("a1", "ana@example.com")
	acc.PasswordHash = strPtr("old-hash")
	require.NoError(t, s.Accounts().Create(ctx, acc))

	require.NoError(t, s.Accounts().SetResetToken(ctx, "a1", "reset-1", now.Add(time.Hour), now))

	// validar sin consumir no lo quema
	_, err := s.Accounts().GetByResetToken(ctx, "reset-1", now)
	require.NoError(t, err)
	_, err = s.Accounts().GetByResetToken(ctx, "reset-1", now)
	require.NoError(t, err)

	got, err := s.Accounts().ConsumeResetToken(ctx, "reset-1", now, "new-hash")
	require.NoError(t, err)
	assert.Equal(t, "new-hash", *got.PasswordHash)
	assert.Nil(t, got.ResetToken)

	_, err = s.Accounts().ConsumeResetToken(ctx, "reset-1", now, "other-hash")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestResetTokenExpired(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	acc := newAccount("a1", "ana@example.com")
	require.NoError(t, s.Accounts().Create(ctx, acc))
	require.NoError(t, s.Accounts().SetResetToken(ctx, "a1", "reset-1", now.Add(time.Hour), now))

	later := now.Add(2 * time.Hour)
	_, err := s.Accounts().GetByResetToken(ctx, "reset-1", later)
	assert.ErrorIs(t, err, core.ErrNotFound)
	_, err = s.Accounts().ConsumeResetToken(ctx, "reset-1", later, "x")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestLinkGoogleForcesVerified(t *testing.T) {
	s := New()
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Accounts().Create(ctx, newAccount("a1", "ana@example.com")))

	got, err := s.Accounts().LinkGoogle(ctx, "a1", "google-sub-1", now)
	require.NoError(t, err)
	require.NotNil(t, got.GoogleID)
	assert.Equal(t, "google-sub-1", *got.GoogleID)
	assert.True(t, got.EmailVerified)
	assert.Equal(t, now, got.LastActivity)
}

func TestTouchActivity(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Accounts().Create(ctx, newAccount("a1", "ana@example.com")))

	later := time.Now().UTC().Add(5 * time.Minute)
	require.NoError(t, s.Accounts().TouchActivity(ctx, "a1", later))

	got, err := s.Accounts().GetByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, later, got.LastActivity)

	assert.ErrorIs(t, s.Accounts().TouchActivity(ctx, "nope", later), core.ErrNotFound)
}

func TestAccountDeleteFreesEmail(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Accounts().Create(ctx, newAccount("a1", "ana@example.com")))
	require.NoError(t, s.Accounts().Delete(ctx, "a1"))
	require.NoError(t, s.Accounts().Create(ctx, newAccount("a2", "ana@example.com")))
}

func TestProductNameUnique(t *testing.T) {
	s := New()
	ctx := context.Background()

	p := &core.Product{ID: "p1", Name: "Camiseta Hulk", Price: 17}
	require.NoError(t, s.Products().Create(ctx, p))

	dup := &core.Product{ID: "p2", Name: "Camiseta Hulk", Price: 20}
	assert.ErrorIs(t, s.Products().Create(ctx, dup), core.ErrConflict)

	// update tampoco puede pisar un nombre ajeno
	p3 := &core.Product{ID: "p3", Name: "Camiseta Thor", Price: 17}
	require.NoError(t, s.Products().Create(ctx, p3))
	p3.Name = "Camiseta Hulk"
	assert.ErrorIs(t, s.Products().Update(ctx, p3), core.ErrConflict)
}

func TestSalesListNewestFirst(t *testing.T) {
	s := New()
	ctx := context.Background()
	base := time.Now().UTC()

	for i, id := range []string{"s1", "s2", "s3"} {
		require.NoError(t, s.Sales().Create(ctx, &core.Sale{
			ID:            id,
			Total:         17,
			PaymentMethod: core.PaymentCard,
			Status:        core.SaleCompleted,
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		}))
	}

	out, err := s.Sales().List(ctx)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "s3", out[0].ID)
	assert.Equal(t, "s1", out[2].ID)
}
