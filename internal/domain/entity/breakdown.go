package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Breakdown desossa guardada: totales del lote, totales calculados y cortes.
type Breakdown struct {
	ID              string
	CompanyID       string
	UserID          string
	Name            string
	Date            time.Time
	AnimalType      string // bovino, suino
	InitialWeightKg decimal.Decimal
	CarcassCost     decimal.Decimal

	TotalRevenue       decimal.Decimal
	TotalAllocatedCost decimal.Decimal
	TotalYieldPercent  decimal.Decimal
	GrossProfit        decimal.Decimal
	DiscardCost        decimal.Decimal

	Cuts      []BreakdownCut // JSONB
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BreakdownCut corte guardado con sus campos derivados (2 decimales).
type BreakdownCut struct {
	Name               string          `json:"name"`
	Code               string          `json:"code"`
	WeightKg           decimal.Decimal `json:"weight_kg"`
	SalePricePerKg     decimal.Decimal `json:"sale_price_per_kg"`
	BodyPart           string          `json:"body_part"`
	SaleValue          decimal.Decimal `json:"sale_value"`
	SaleIndexPercent   decimal.Decimal `json:"sale_index_percent"`
	AllocatedCost      decimal.Decimal `json:"allocated_cost"`
	AllocatedCostPerKg decimal.Decimal `json:"allocated_cost_per_kg"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
}
