package dto

import "time"

// InvoiceItemRequest línea de nota fiscal.
type InvoiceItemRequest struct {
	ProductCode string     `json:"product_code"`
	Description string     `json:"description" validate:"required"`
	Quantity    NumberText `json:"quantity" swaggertype:"string"`
	UnitValue   NumberText `json:"unit_value" swaggertype:"string"`
	BodyPart    string     `json:"body_part"`
}

// InvoiceRequest alta o edición de una nota fiscal de compra.
type InvoiceRequest struct {
	Number     string               `json:"number" validate:"required"`
	Date       *time.Time           `json:"date"`
	IssuerCNPJ string               `json:"issuer_cnpj"`
	IssuerName string               `json:"issuer_name"`
	Notes      string               `json:"notes"`
	Items      []InvoiceItemRequest `json:"items"`
}

// InvoiceItemResponse línea con total calculado.
type InvoiceItemResponse struct {
	ProductCode string `json:"product_code"`
	Description string `json:"description"`
	Quantity    string `json:"quantity"`
	UnitValue   string `json:"unit_value"`
	Total       string `json:"total"`
	BodyPart    string `json:"body_part,omitempty"`
}

// InvoiceResponse nota fiscal guardada.
type InvoiceResponse struct {
	ID         string                `json:"id"`
	Number     string                `json:"number"`
	Date       time.Time             `json:"date"`
	IssuerCNPJ string                `json:"issuer_cnpj"`
	IssuerName string                `json:"issuer_name"`
	Notes      string                `json:"notes"`
	Items      []InvoiceItemResponse `json:"items"`
	Total      string                `json:"total"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  time.Time             `json:"updated_at"`
}

// InvoiceListResponse lista paginada de notas fiscales.
type InvoiceListResponse struct {
	Items []InvoiceResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
