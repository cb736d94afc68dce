// Package memory implementa el Repository en memoria, para desarrollo y tests.
// Las mismas invariantes que el adapter de MongoDB: email único, consumos de
// token condicionales bajo lock.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/herothreads/api/internal/store/core"
)

type Store struct {
	mu       sync.Mutex
	accounts map[string]*core.Account // id -> account
	emails   map[string]string        // email -> id
	products map[string]*core.Product
	sales    map[string]*core.Sale
}

func New() *Store {
	return &Store{
		accounts: make(map[string]*core.Account),
		emails:   make(map[string]string),
		products: make(map[string]*core.Product),
		sales:    make(map[string]*core.Sale),
	}
}

func (s *Store) Ping(ctx context.Context) error  { return nil }
func (s *Store) Close(ctx context.Context) error { return nil }

func (s *Store) Accounts() core.AccountRepository { return (*accountRepo)(s) }
func (s *Store) Products() core.ProductRepository { return (*productRepo)(s) }
func (s *Store) Sales() core.SaleRepository       { return (*saleRepo)(s) }

// ───────────────────────── accounts ─────────────────────────

type accountRepo Store

var _ core.AccountRepository = (*accountRepo)(nil)

func copyAccount(a *core.Account) *core.Account {
	c := *a
	return &c
}

func (r *accountRepo) Create(ctx context.Context, a *core.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.emails[a.Email]; taken {
		return core.ErrConflict
	}
	if _, exists := r.accounts[a.ID]; exists {
		return core.ErrConflict
	}
	r.accounts[a.ID] = copyAccount(a)
	r.emails[a.Email] = a.ID
	return nil
}

func (r *accountRepo) GetByID(ctx context.Context, id string) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return copyAccount(a), nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.emails[email]
	if !ok {
		return nil, core.ErrNotFound
	}
	return copyAccount(r.accounts[id]), nil
}

func (r *accountRepo) List(ctx context.Context) ([]core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *accountRepo) Update(ctx context.Context, id string, upd core.AccountUpdate) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Phone != nil {
		a.Phone = *upd.Phone
	}
	if upd.Address != nil {
		a.Address = *upd.Address
	}
	if upd.City != nil {
		a.City = *upd.City
	}
	if upd.Status != nil {
		a.Status = *upd.Status
	}
	a.UpdatedAt = time.Now().UTC()
	return copyAccount(a), nil
}

func (r *accountRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	delete(r.emails, a.Email)
	delete(r.accounts, id)
	return nil
}

func (r *accountRepo) ConsumeVerifyToken(ctx context.Context, token string, now time.Time) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.VerifyToken != nil && *a.VerifyToken == token &&
			a.VerifyExpires != nil && a.VerifyExpires.After(now) {
			a.EmailVerified = true
			a.VerifyToken = nil
			a.VerifyExpires = nil
			a.UpdatedAt = now
			return copyAccount(a), nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *accountRepo) SetResetToken(ctx context.Context, id, token string, expires, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	a.ResetToken = &token
	exp := expires
	a.ResetExpires = &exp
	a.UpdatedAt = now
	return nil
}

func (r *accountRepo) GetByResetToken(ctx context.Context, token string, now time.Time) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token &&
			a.ResetExpires != nil && a.ResetExpires.After(now) {
			return copyAccount(a), nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *accountRepo) ConsumeResetToken(ctx context.Context, token string, now time.Time, newHash string) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.ResetToken != nil && *a.ResetToken == token &&
			a.ResetExpires != nil && a.ResetExpires.After(now) {
			h := newHash
			a.PasswordHash = &h
			a.ResetToken = nil
			a.ResetExpires = nil
			a.LastActivity = now
			a.UpdatedAt = now
			return copyAccount(a), nil
		}
	}
	return nil, core.ErrNotFound
}

func (r *accountRepo) LinkGoogle(ctx context.Context, id, googleID string, now time.Time) (*core.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	g := googleID
	a.GoogleID = &g
	a.EmailVerified = true
	a.LastActivity = now
	a.UpdatedAt = now
	return copyAccount(a), nil
}

func (r *accountRepo) TouchActivity(ctx context.Context, id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return core.ErrNotFound
	}
	a.LastActivity = now
	return nil
}

// ───────────────────────── products ─────────────────────────

type productRepo Store

var _ core.ProductRepository = (*productRepo)(nil)

func (r *productRepo) Create(ctx context.Context, p *core.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.products {
		if existing.Name == p.Name {
			return core.ErrConflict
		}
	}
	c := *p
	r.products[p.ID] = &c
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*core.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *productRepo) List(ctx context.Context) ([]core.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *productRepo) Update(ctx context.Context, p *core.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[p.ID]; !ok {
		return core.ErrNotFound
	}
	for id, existing := range r.products {
		if id != p.ID && existing.Name == p.Name {
			return core.ErrConflict
		}
	}
	c := *p
	c.UpdatedAt = time.Now().UTC()
	r.products[p.ID] = &c
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return core.ErrNotFound
	}
	delete(r.products, id)
	return nil
}

// ───────────────────────── sales ─────────────────────────

type saleRepo Store

var _ core.SaleRepository = (*saleRepo)(nil)

func (r *saleRepo) Create(ctx context.Context, s *core.Sale) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.sales[s.ID]; exists {
		return core.ErrConflict
	}
	c := *s
	c.Items = append([]core.SaleItem(nil), s.Items...)
	r.sales[s.ID] = &c
	return nil
}

func (r *saleRepo) GetByID(ctx context.Context, id string) (*core.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sales[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	c := *s
	c.Items = append([]core.SaleItem(nil), s.Items...)
	return &c, nil
}

func (r *saleRepo) List(ctx context.Context) ([]core.Sale, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]core.Sale, 0, len(r.sales))
	for _, s := range r.sales {
		c := *s
		c.Items = append([]core.SaleItem(nil), s.Items...)
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
