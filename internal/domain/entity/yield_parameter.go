package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// YieldParameter parámetro de rendimiento de una pieza (catálogo del tenant).
type YieldParameter struct {
	ID                   string
	CompanyID            string
	UserID               string
	PieceCode            string // único por empresa
	PieceName            string
	PartCode             string
	PartName             string
	ExpectedYieldPercent decimal.Decimal
	SalePricePerKg       *decimal.Decimal // NULL si no informado
	Description          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
