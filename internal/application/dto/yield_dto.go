package dto

import "time"

// YieldParameterRequest alta o edición de un parámetro de rendimiento.
type YieldParameterRequest struct {
	PieceCode            string     `json:"piece_code" validate:"required"`
	PieceName            string     `json:"piece_name" validate:"required"`
	PartCode             string     `json:"part_code"`
	PartName             string     `json:"part_name"`
	ExpectedYieldPercent NumberText `json:"expected_yield_percent" swaggertype:"string"`
	SalePricePerKg       NumberText `json:"sale_price_per_kg" swaggertype:"string"`
	Description          string     `json:"description"`
}

// YieldParameterResponse parámetro guardado.
type YieldParameterResponse struct {
	ID                   string    `json:"id"`
	PieceCode            string    `json:"piece_code"`
	PieceName            string    `json:"piece_name"`
	PartCode             string    `json:"part_code"`
	PartName             string    `json:"part_name"`
	ExpectedYieldPercent string    `json:"expected_yield_percent"`
	SalePricePerKg       string    `json:"sale_price_per_kg"` // "" si no informado
	Description          string    `json:"description"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// YieldParameterListResponse catálogo completo.
type YieldParameterListResponse struct {
	Items []YieldParameterResponse `json:"items"`
}

// ProjectRequest proyección para un peso de carcaça. Sin Pieces se usa el catálogo guardado.
type ProjectRequest struct {
	TotalWeightKg NumberText              `json:"total_weight_kg" swaggertype:"string"`
	Part          string                  `json:"part"` // "todos" o nombre de parte
	Pieces        []YieldParameterRequest `json:"pieces,omitempty"`
}

// ProjectedPiece pieza proyectada.
type ProjectedPiece struct {
	PieceCode      string `json:"piece_code"`
	PieceName      string `json:"piece_name"`
	Part           string `json:"part"`
	WeightKg       string `json:"weight_kg"` // 3 decimales
	SalePricePerKg string `json:"sale_price_per_kg"`
	PieceValue     string `json:"piece_value"`
	WeightShare    string `json:"weight_share"`
	RevenueShare   string `json:"revenue_share"`
	CostPerKg      string `json:"cost_per_kg"`
	MarginPercent  string `json:"margin_percent"`
}

// ProjectionResponse resultado de la proyección.
type ProjectionResponse struct {
	TotalWeightKg string           `json:"total_weight_kg"`
	Part          string           `json:"part"`
	Pieces        []ProjectedPiece `json:"pieces"`
}

// PartsResponse partes disponibles en el catálogo de rendimiento y en el catálogo fijo.
type PartsResponse struct {
	Available []string     `json:"available"`
	Bovino    []PartOption `json:"bovino"`
	Suino     []PartOption `json:"suino"`
}

// PartOption entrada del catálogo fijo de partes.
type PartOption struct {
	Slug  string `json:"slug"`
	Label string `json:"label"`
}
