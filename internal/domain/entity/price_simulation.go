package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceSimulation simulación de precios guardada.
type PriceSimulation struct {
	ID        string
	CompanyID string
	UserID    string
	Name      string
	Date      time.Time
	Notes     string
	Items     []SimulationLine // JSONB
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SimulationLine ítem guardado. Los campos derivados son nil mientras no haya precio nuevo.
type SimulationLine struct {
	Code                string           `json:"code"`
	Name                string           `json:"name"`
	WeightKg            decimal.Decimal  `json:"weight_kg"`
	CurrentCost         decimal.Decimal  `json:"current_cost"`
	CurrentSalePrice    decimal.Decimal  `json:"current_sale_price"`
	TargetMarginPercent *decimal.Decimal `json:"target_margin_percent,omitempty"`
	OfferPricePerKg     *decimal.Decimal `json:"offer_price_per_kg,omitempty"`
	NewSalePrice        *decimal.Decimal `json:"new_sale_price,omitempty"`
	NewTotalRevenue     decimal.Decimal  `json:"new_total_revenue"`
	NewAllocatedCost    decimal.Decimal  `json:"new_allocated_cost"`
	NewMarginPercent    decimal.Decimal  `json:"new_margin_percent"`
	Markup              string           `json:"markup"` // número con 2 decimales o "inf"
}
