// Package catalog expone los endpoints de productos y ventas.
package catalog

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/herothreads/api/internal/audit"
	catalogdto "github.com/herothreads/api/internal/http/dto/catalog"
	httperrors "github.com/herothreads/api/internal/http/errors"
	"github.com/herothreads/api/internal/http/middlewares"
	"github.com/herothreads/api/internal/http/render"
	catalogsvc "github.com/herothreads/api/internal/http/services/catalog"
	"github.com/herothreads/api/internal/observability/logger"
)

type Controller struct {
	svc *catalogsvc.Service
}

func New(svc *catalogsvc.Service) *Controller {
	return &Controller{svc: svc}
}

// ListProducts maneja GET /api/products.
func (c *Controller) ListProducts(w http.ResponseWriter, r *http.Request) {
	items, err := c.svc.ListProducts(r.Context())
	if err != nil {
		c.fail(w, r, err, "list products failed")
		return
	}
	out := make([]catalogdto.ProductPayload, 0, len(items))
	for i := range items {
		out = append(out, catalogdto.ProductFromCore(&items[i]))
	}
	render.JSON(w, http.StatusOK, out)
}

// GetProduct maneja GET /api/products/{id}.
func (c *Controller) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := c.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalogsvc.ErrProductNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("producto no encontrado"))
			return
		}
		c.fail(w, r, err, "get product failed")
		return
	}
	render.JSON(w, http.StatusOK, catalogdto.ProductFromCore(p))
}

// CreateProduct maneja POST /api/products (solo admin).
func (c *Controller) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalogdto.ProductRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	req.Normalize()
	if missing := req.Validate(); len(missing) > 0 {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(strings.Join(missing, ", ")))
		return
	}

	p, err := c.svc.CreateProduct(r.Context(), req.Name, req.Description, req.Price, req.Image)
	if err != nil {
		if errors.Is(err, catalogsvc.ErrNameTaken) {
			httperrors.WriteError(w, httperrors.ErrNameTaken)
			return
		}
		c.fail(w, r, err, "create product failed")
		return
	}

	audit.Log(r.Context(), "product.create", actorID(r), p.ID)
	logger.From(r.Context()).Info("product created", logger.ProductID(p.ID))
	render.JSON(w, http.StatusCreated, catalogdto.ProductFromCore(p))
}

// UpdateProduct maneja PUT /api/products/{id} (solo admin).
func (c *Controller) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req catalogdto.ProductRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	req.Normalize()
	if missing := req.Validate(); len(missing) > 0 {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(strings.Join(missing, ", ")))
		return
	}

	p, err := c.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req.Name, req.Description, req.Price, req.Image)
	if err != nil {
		switch {
		case errors.Is(err, catalogsvc.ErrProductNotFound):
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("producto no encontrado"))
		case errors.Is(err, catalogsvc.ErrNameTaken):
			httperrors.WriteError(w, httperrors.ErrNameTaken)
		default:
			c.fail(w, r, err, "update product failed")
		}
		return
	}
	audit.Log(r.Context(), "product.update", actorID(r), p.ID)
	render.JSON(w, http.StatusOK, catalogdto.ProductFromCore(p))
}

// DeleteProduct maneja DELETE /api/products/{id} (solo admin).
func (c *Controller) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := c.svc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, catalogsvc.ErrProductNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("producto no encontrado"))
			return
		}
		c.fail(w, r, err, "delete product failed")
		return
	}
	audit.Log(r.Context(), "product.delete", actorID(r), id)
	render.JSON(w, http.StatusOK, map[string]any{"success": true, "message": "Producto eliminado"})
}

// CreateSale maneja POST /api/sales (requiere sesión).
func (c *Controller) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req catalogdto.SaleRequest
	if err := render.Decode(r, &req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}
	if missing := req.Validate(); len(missing) > 0 {
		httperrors.WriteError(w, httperrors.ErrMissingFields.WithDetail(strings.Join(missing, ", ")))
		return
	}

	sale, err := c.svc.CreateSale(r.Context(), req.ToCore())
	if err != nil {
		c.fail(w, r, err, "create sale failed")
		return
	}

	logger.From(r.Context()).Info("sale recorded", logger.SaleID(sale.ID))
	render.JSON(w, http.StatusCreated, catalogdto.SaleFromCore(sale))
}

// ListSales maneja GET /api/sales (solo admin).
func (c *Controller) ListSales(w http.ResponseWriter, r *http.Request) {
	items, err := c.svc.ListSales(r.Context())
	if err != nil {
		c.fail(w, r, err, "list sales failed")
		return
	}
	out := make([]catalogdto.SalePayload, 0, len(items))
	for i := range items {
		out = append(out, catalogdto.SaleFromCore(&items[i]))
	}
	render.JSON(w, http.StatusOK, out)
}

// GetSale maneja GET /api/sales/{id} (solo admin).
func (c *Controller) GetSale(w http.ResponseWriter, r *http.Request) {
	sale, err := c.svc.GetSale(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalogsvc.ErrSaleNotFound) {
			httperrors.WriteError(w, httperrors.ErrNotFound.WithDetail("venta no encontrada"))
			return
		}
		c.fail(w, r, err, "get sale failed")
		return
	}
	render.JSON(w, http.StatusOK, catalogdto.SaleFromCore(sale))
}

func actorID(r *http.Request) string {
	if claims, ok := middlewares.GetClaims(r.Context()); ok {
		return claims.Subject
	}
	return ""
}

func (c *Controller) fail(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger.From(r.Context()).Error(msg, logger.Err(err))
	httperrors.WriteError(w, httperrors.ErrInternal)
}
