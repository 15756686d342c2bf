package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryCount inventario físico guardado con nombre: ítems contados y su análisis de quebra.
type InventoryCount struct {
	ID        string
	CompanyID string
	UserID    string
	Name      string
	Date      time.Time
	Notes     string
	Items     []InventoryItem // JSONB
	CreatedAt time.Time
	UpdatedAt time.Time
}

// InventoryItem ítem con su movimentação del período y los derivados (2 decimales).
type InventoryItem struct {
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	Unit            string          `json:"unit"`
	BodyPart        string          `json:"body_part,omitempty"`
	Quantity        decimal.Decimal `json:"quantity"`
	OpeningStock    decimal.Decimal `json:"opening_stock"`
	Purchases       decimal.Decimal `json:"purchases"`
	OtherEntries    decimal.Decimal `json:"other_entries"`
	Sales           decimal.Decimal `json:"sales"`
	OtherExits      decimal.Decimal `json:"other_exits"`
	CountedStock    decimal.Decimal `json:"counted_stock"`
	AverageUnitCost decimal.Decimal `json:"average_unit_cost"`

	CalculatedStock  decimal.Decimal `json:"calculated_stock"`
	Divergence       decimal.Decimal `json:"divergence"`
	DivergenceValue  decimal.Decimal `json:"divergence_value"`
	ShrinkagePercent decimal.Decimal `json:"shrinkage_percent"`
	Status           string          `json:"status"`
}
