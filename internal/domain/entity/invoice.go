package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice nota fiscal de compra (entrada de mercadería).
type Invoice struct {
	ID         string
	CompanyID  string
	UserID     string
	Number     string
	Date       time.Time
	IssuerCNPJ string
	IssuerName string
	Notes      string
	Items      []InvoiceItem // JSONB
	Total      decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// InvoiceItem línea de la nota fiscal.
type InvoiceItem struct {
	ProductCode string          `json:"product_code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitValue   decimal.Decimal `json:"unit_value"`
	Total       decimal.Decimal `json:"total"`
	BodyPart    string          `json:"body_part,omitempty"`
}
