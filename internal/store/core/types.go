package core

import "time"

// Roles de cuenta. El registro público y el alta por OAuth siempre
// producen RoleClient; RoleAdmin solo nace del seed de bootstrap.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

// Estados de cuenta.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Account es el registro de identidad persistido: credenciales, perfil,
// rol y estado de verificación/reset.
type Account struct {
	ID    string `bson:"_id"`
	Email string `bson:"email"`
	Name  string `bson:"name"`

	Phone   string `bson:"phone,omitempty"`
	Address string `bson:"address,omitempty"`
	City    string `bson:"city,omitempty"`

	// PasswordHash es nil para cuentas creadas solo por OAuth.
	PasswordHash *string `bson:"passwordHash,omitempty"`

	Role   string `bson:"role"`
	Status string `bson:"status"`

	EmailVerified bool       `bson:"emailVerified"`
	VerifyToken   *string    `bson:"verifyToken,omitempty"`
	VerifyExpires *time.Time `bson:"verifyExpires,omitempty"`

	ResetToken   *string    `bson:"resetToken,omitempty"`
	ResetExpires *time.Time `bson:"resetExpires,omitempty"`

	// GoogleID es el subject del provider federado, si la cuenta fue vinculada.
	GoogleID *string `bson:"googleId,omitempty"`

	LastActivity time.Time `bson:"lastActivity"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// HasPassword indica si la cuenta puede autenticarse por password.
func (a *Account) HasPassword() bool {
	return a.PasswordHash != nil && *a.PasswordHash != ""
}

// Product es un ítem del catálogo.
type Product struct {
	ID          string    `bson:"_id"`
	Name        string    `bson:"name"`
	Description string    `bson:"description"`
	Price       float64   `bson:"price"`
	Image       string    `bson:"image"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

// Métodos de pago aceptados en una venta. Se almacenan tal cual,
// sin ramificación de lógica por método.
const (
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCash     = "cash"
)

// Estados de una venta.
const (
	SalePending   = "pending"
	SaleCompleted = "completed"
	SaleCancelled = "cancelled"
)

// SaleCustomer es el snapshot del comprador embebido en la venta.
type SaleCustomer struct {
	ID    string `bson:"id"`
	Name  string `bson:"name"`
	Email string `bson:"email"`
}

// SaleItem es una línea de venta.
type SaleItem struct {
	ProductID string  `bson:"productId"`
	Name      string  `bson:"name"`
	Price     float64 `bson:"price"`
	Quantity  int     `bson:"quantity"`
	Total     float64 `bson:"total"`
}

// Sale es una venta registrada.
type Sale struct {
	ID            string       `bson:"_id"`
	Customer      SaleCustomer `bson:"customer"`
	Items         []SaleItem   `bson:"items"`
	Total         float64      `bson:"total"`
	PaymentMethod string       `bson:"paymentMethod"`
	ReceiptFile   string       `bson:"receiptFile,omitempty"`
	Status        string       `bson:"status"`
	CreatedAt     time.Time    `bson:"createdAt"`
}
