package dto

import "time"

// CutInput corte tal como llega del formulario o de la planilla.
type CutInput struct {
	Name           string     `json:"name"`
	Code           string     `json:"code"`
	WeightKg       NumberText `json:"weight_kg" swaggertype:"string"`
	SalePricePerKg NumberText `json:"sale_price_per_kg" swaggertype:"string"`
	BodyPart       string     `json:"body_part"`
}

// CalculateBreakdownRequest entrada del calculador de desossa (sin persistir).
type CalculateBreakdownRequest struct {
	InitialWeightKg NumberText `json:"initial_weight_kg" swaggertype:"string"`
	CarcassCost     NumberText `json:"carcass_cost" swaggertype:"string"`
	AnimalType      string     `json:"animal_type"`
	Cuts            []CutInput `json:"cuts"`
}

// SaveBreakdownRequest entrada para crear o actualizar una desossa.
type SaveBreakdownRequest struct {
	CalculateBreakdownRequest
	Name  string     `json:"name" validate:"required,max=200"`
	Date  *time.Time `json:"date"`
	Notes string     `json:"notes"`
}

// CutResult corte con derivados formateados a 2 decimales.
type CutResult struct {
	Name               string `json:"name"`
	Code               string `json:"code"`
	WeightKg           string `json:"weight_kg"`
	SalePricePerKg     string `json:"sale_price_per_kg"`
	BodyPart           string `json:"body_part"`
	IsDiscard          bool   `json:"is_discard"`
	SaleValue          string `json:"sale_value"`
	SaleIndex          string `json:"sale_index"` // "80.00%"
	AllocatedCost      string `json:"allocated_cost"`
	AllocatedCostPerKg string `json:"allocated_cost_per_kg"`
	MarginPercent      string `json:"margin_percent"`
}

// PartResult agregado por parte del animal.
type PartResult struct {
	Part          string `json:"part"`
	Label         string `json:"label"`
	WeightKg      string `json:"weight_kg"`
	Revenue       string `json:"revenue"`
	AllocatedCost string `json:"allocated_cost"`
	ProfitOrLoss  string `json:"profit_or_loss"`
	Items         int    `json:"items"`
}

// BreakdownResult resultado del rateio.
type BreakdownResult struct {
	InitialWeightKg      string       `json:"initial_weight_kg"`
	CarcassCost          string       `json:"carcass_cost"`
	TotalRevenue         string       `json:"total_revenue"`
	TotalAllocatedCost   string       `json:"total_allocated_cost"`
	CommercialWeightKg   string       `json:"commercial_weight_kg"`
	DiscardWeightKg      string       `json:"discard_weight_kg"`
	TotalYieldPercent    string       `json:"total_yield_percent"`
	EstimatedGrossProfit string       `json:"estimated_gross_profit"`
	TotalDiscardCost     string       `json:"total_discard_cost"`
	Cuts                 []CutResult  `json:"cuts"`
	Parts                []PartResult `json:"parts"`
}

// BreakdownResponse desossa guardada.
type BreakdownResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Date       time.Time       `json:"date"`
	AnimalType string          `json:"animal_type"`
	Notes      string          `json:"notes"`
	Result     BreakdownResult `json:"result"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// BreakdownSummary fila del listado de desossas.
type BreakdownSummary struct {
	ID                string    `json:"id"`
	Name              string    `json:"name"`
	Date              time.Time `json:"date"`
	AnimalType        string    `json:"animal_type"`
	InitialWeightKg   string    `json:"initial_weight_kg"`
	CarcassCost       string    `json:"carcass_cost"`
	TotalRevenue      string    `json:"total_revenue"`
	TotalYieldPercent string    `json:"total_yield_percent"`
	Cuts              int       `json:"cuts"`
}

// BreakdownListResponse lista paginada de desossas.
type BreakdownListResponse struct {
	Items []BreakdownSummary `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ImportCutsResponse cortes leídos de una planilla.
type ImportCutsResponse struct {
	Cuts []CutInput `json:"cuts"`
}
