// Package catalog define los contratos de productos y ventas.
package catalog

import (
	"strings"
	"time"

	"github.com/herothreads/api/internal/store/core"
)

type ProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func (r *ProductRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
}

func (r *ProductRequest) Validate() []string {
	var missing []string
	if r.Name == "" {
		missing = append(missing, "name")
	}
	if r.Description == "" {
		missing = append(missing, "description")
	}
	if r.Price <= 0 {
		missing = append(missing, "price")
	}
	return missing
}

type ProductPayload struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ProductFromCore(p *core.Product) ProductPayload {
	return ProductPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

type SaleCustomer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type SaleItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Total     float64 `json:"total"`
}

type SaleRequest struct {
	Customer      SaleCustomer `json:"customer"`
	Items         []SaleItem   `json:"items"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"paymentMethod"`
	ReceiptFile   string       `json:"receiptFile,omitempty"`
	Status        string       `json:"status,omitempty"`
}

func (r *SaleRequest) Validate() []string {
	var missing []string
	if r.Customer.Email == "" {
		missing = append(missing, "customer")
	}
	if len(r.Items) == 0 {
		missing = append(missing, "items")
	}
	if r.Total <= 0 {
		missing = append(missing, "total")
	}
	if r.PaymentMethod == "" {
		missing = append(missing, "paymentMethod")
	}
	return missing
}

type SalePayload struct {
	ID            string       `json:"id"`
	Customer      SaleCustomer `json:"customer"`
	Items         []SaleItem   `json:"items"`
	Total         float64      `json:"total"`
	PaymentMethod string       `json:"paymentMethod"`
	ReceiptFile   string       `json:"receiptFile,omitempty"`
	Status        string       `json:"status"`
	CreatedAt     time.Time    `json:"createdAt"`
}

func SaleFromCore(s *core.Sale) SalePayload {
	items := make([]SaleItem, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}
	return SalePayload{
		ID:            s.ID,
		Customer:      SaleCustomer{ID: s.Customer.ID, Name: s.Customer.Name, Email: s.Customer.Email},
		Items:         items,
		Total:         s.Total,
		PaymentMethod: s.PaymentMethod,
		ReceiptFile:   s.ReceiptFile,
		Status:        s.Status,
		CreatedAt:     s.CreatedAt,
	}
}

func (r *SaleRequest) ToCore() *core.Sale {
	items := make([]core.SaleItem, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, core.SaleItem{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price,
			Quantity:  it.Quantity,
			Total:     it.Total,
		})
	}
	return &core.Sale{
		Customer:      core.SaleCustomer{ID: r.Customer.ID, Name: r.Customer.Name, Email: r.Customer.Email},
		Items:         items,
		Total:         r.Total,
		PaymentMethod: r.PaymentMethod,
		ReceiptFile:   r.ReceiptFile,
		Status:        r.Status,
	}
}
