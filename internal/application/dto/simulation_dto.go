package dto

import "time"

// SimulationItem ítem de simulación en el cable. Entrada y salida comparten forma;
// los campos derivados se ignoran al entrar y se recalculan.
type SimulationItem struct {
	Code                string     `json:"code"`
	Name                string     `json:"name"`
	WeightKg            NumberText `json:"weight_kg" swaggertype:"string"`
	CurrentCost         NumberText `json:"current_cost" swaggertype:"string"`
	CurrentSalePrice    NumberText `json:"current_sale_price" swaggertype:"string"`
	TargetMarginPercent NumberText `json:"target_margin_percent" swaggertype:"string"`
	OfferPricePerKg     NumberText `json:"offer_price_per_kg" swaggertype:"string"`
	NewSalePrice        NumberText `json:"new_sale_price" swaggertype:"string"`
	NewTotalRevenue     NumberText `json:"new_total_revenue" swaggertype:"string"`
	NewAllocatedCost    NumberText `json:"new_allocated_cost" swaggertype:"string"`
	NewMarginPercent    NumberText `json:"new_margin_percent" swaggertype:"string"`
	Markup              string     `json:"markup"`

	// Solo salida.
	CurrentMarginPercent string `json:"current_margin_percent,omitempty"` // "N/A" sin precio
	CurrentTotalSale     string `json:"current_total_sale,omitempty"`     // "N/A" sin peso
}

// ApplyChangeRequest cambio de un campo de un ítem.
// Field: target_margin, offer_price, weight, current_cost, current_sale_price, code, name.
type ApplyChangeRequest struct {
	Item  SimulationItem `json:"item"`
	Field string         `json:"field"`
	Value NumberText     `json:"value" swaggertype:"string"`
}

// DashboardRequest ítems sobre los que se calcula el margen de la cartera.
type DashboardRequest struct {
	Items []SimulationItem `json:"items"`
}

// DashboardResponse margen de la cartera.
type DashboardResponse struct {
	TotalRevenue  string `json:"total_revenue"`
	TotalCost     string `json:"total_cost"`
	TotalProfit   string `json:"total_profit"`
	MarginPercent string `json:"margin_percent"`
	ItemsAnalyzed int    `json:"items_analyzed"`
}

// SaveSimulationRequest entrada para crear o actualizar una simulación.
type SaveSimulationRequest struct {
	Name  string           `json:"name" validate:"required,max=200"`
	Date  *time.Time       `json:"date"`
	Notes string           `json:"notes"`
	Items []SimulationItem `json:"items"`
}

// SimulationResponse simulación guardada con su dashboard.
type SimulationResponse struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	Date      time.Time         `json:"date"`
	Notes     string            `json:"notes"`
	Items     []SimulationItem  `json:"items"`
	Dashboard DashboardResponse `json:"dashboard"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SimulationSummary fila del listado.
type SimulationSummary struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Date  time.Time `json:"date"`
	Items int       `json:"items"`
}

// SimulationListResponse lista paginada de simulaciones.
type SimulationListResponse struct {
	Items []SimulationSummary `json:"items"`
	Page  PageResponse        `json:"page"`
}

// SeedResponse ítems sembrados desde una desossa o una nota fiscal (sin persistir).
type SeedResponse struct {
	Source    string            `json:"source"` // desossa | nota_fiscal
	SourceID  string            `json:"source_id"`
	Name      string            `json:"name"`
	Items     []SimulationItem  `json:"items"`
	Dashboard DashboardResponse `json:"dashboard"`
}
