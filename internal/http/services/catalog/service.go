// Package catalog implementa productos y ventas.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/herothreads/api/internal/store/core"
)

var (
	ErrProductNotFound = errors.New("catalog: product not found")
	ErrNameTaken       = errors.New("catalog: product name already exists")
	ErrSaleNotFound    = errors.New("catalog: sale not found")
)

type Service struct {
	products core.ProductRepository
	sales    core.SaleRepository

	now func() time.Time
}

func New(products core.ProductRepository, sales core.SaleRepository) *Service {
	return &Service{products: products, sales: sales, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) CreateProduct(ctx context.Context, name, description string, price float64, image string) (*core.Product, error) {
	now := s.now().UTC()
	p := &core.Product{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Price:       price,
		Image:       image,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.products.Create(ctx, p); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrNameTaken
		}
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*core.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *Service) ListProducts(ctx context.Context) ([]core.Product, error) {
	items, err := s.products.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return items, nil
}

func (s *Service) UpdateProduct(ctx context.Context, id, name, description string, price float64, image string) (*core.Product, error) {
	p, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	p.Name = name
	p.Description = description
	p.Price = price
	p.Image = image
	p.UpdatedAt = s.now().UTC()
	if err := s.products.Update(ctx, p); err != nil {
		if errors.Is(err, core.ErrConflict) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}
	return p, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	if err := s.products.Delete(ctx, id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// CreateSale registra la venta tal como llega: los totales vienen
// calculados por el frontend y se almacenan sin recomputar.
func (s *Service) CreateSale(ctx context.Context, sale *core.Sale) (*core.Sale, error) {
	sale.ID = uuid.NewString()
	if sale.Status == "" {
		sale.Status = core.SaleCompleted
	}
	sale.CreatedAt = s.now().UTC()
	if err := s.sales.Create(ctx, sale); err != nil {
		return nil, fmt.Errorf("create sale: %w", err)
	}
	return sale, nil
}

func (s *Service) GetSale(ctx context.Context, id string) (*core.Sale, error) {
	sale, err := s.sales.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrSaleNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

func (s *Service) ListSales(ctx context.Context) ([]core.Sale, error) {
	items, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	return items, nil
}
