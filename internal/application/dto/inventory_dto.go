package dto

import "time"

// InventoryItemRequest ítem del inventario físico. Un campo numérico vacío vale cero.
// Sin AverageUnitCost y con costos de apertura/compra se usa el custo médio ponderado.
type InventoryItemRequest struct {
	Code             string     `json:"code" validate:"required"`
	Name             string     `json:"name" validate:"required"`
	Unit             string     `json:"unit"`
	BodyPart         string     `json:"body_part"`
	Quantity         NumberText `json:"quantity" swaggertype:"string"`
	OpeningStock     NumberText `json:"opening_stock" swaggertype:"string"`
	Purchases        NumberText `json:"purchases" swaggertype:"string"`
	OtherEntries     NumberText `json:"other_entries" swaggertype:"string"`
	Sales            NumberText `json:"sales" swaggertype:"string"`
	OtherExits       NumberText `json:"other_exits" swaggertype:"string"`
	CountedStock     NumberText `json:"counted_stock" swaggertype:"string"`
	AverageUnitCost  NumberText `json:"average_unit_cost" swaggertype:"string"`
	OpeningUnitCost  NumberText `json:"opening_unit_cost,omitempty" swaggertype:"string"`
	PurchaseUnitCost NumberText `json:"purchase_unit_cost,omitempty" swaggertype:"string"`
}

// InventoryAnalysisRequest análisis de quebras sin persistir.
type InventoryAnalysisRequest struct {
	Items []InventoryItemRequest `json:"items"`
}

// InventoryCountRequest alta o edición de un inventario guardado.
type InventoryCountRequest struct {
	Name  string                 `json:"name" validate:"required"`
	Date  *time.Time             `json:"date"`
	Notes string                 `json:"notes"`
	Items []InventoryItemRequest `json:"items"`
}

// InventoryItemResult ítem con la análisis (2 decimales).
type InventoryItemResult struct {
	Code             string `json:"code"`
	Name             string `json:"name"`
	Unit             string `json:"unit"`
	BodyPart         string `json:"body_part,omitempty"`
	Quantity         string `json:"quantity"`
	OpeningStock     string `json:"opening_stock"`
	Purchases        string `json:"purchases"`
	OtherEntries     string `json:"other_entries"`
	Sales            string `json:"sales"`
	OtherExits       string `json:"other_exits"`
	CountedStock     string `json:"counted_stock"`
	AverageUnitCost  string `json:"average_unit_cost"`
	CalculatedStock  string `json:"calculated_stock"`
	Divergence       string `json:"divergence"`
	DivergenceValue  string `json:"divergence_value"`
	ShrinkagePercent string `json:"shrinkage_percent"`
	Status           string `json:"status"` // quebra_acima, quebra_aceitavel, sobra
	Message          string `json:"message"`
}

// InventorySummary resumen financiero de quebras y sobras.
type InventorySummary struct {
	Items          int    `json:"items"`
	ShrinkageQty   string `json:"shrinkage_qty"`
	ShrinkageValue string `json:"shrinkage_value"`
	SurplusQty     string `json:"surplus_qty"`
	SurplusValue   string `json:"surplus_value"`
	NetQty         string `json:"net_qty"`
	NetValue       string `json:"net_value"`
}

// InventoryAnalysisResult ítems analizados más el resumen.
type InventoryAnalysisResult struct {
	Items   []InventoryItemResult `json:"items"`
	Summary InventorySummary      `json:"summary"`
}

// InventoryCountResponse inventario guardado.
type InventoryCountResponse struct {
	ID        string                  `json:"id"`
	Name      string                  `json:"name"`
	Date      time.Time               `json:"date"`
	Notes     string                  `json:"notes"`
	Result    InventoryAnalysisResult `json:"result"`
	CreatedAt time.Time               `json:"created_at"`
	UpdatedAt time.Time               `json:"updated_at"`
}

// InventoryCountSummary fila del listado.
type InventoryCountSummary struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	Items          int       `json:"items"`
	ShrinkageValue string    `json:"shrinkage_value"`
	SurplusValue   string    `json:"surplus_value"`
	NetValue       string    `json:"net_value"`
}

// InventoryCountListResponse lista paginada de inventarios.
type InventoryCountListResponse struct {
	Items []InventoryCountSummary `json:"items"`
	Page  PageResponse            `json:"page"`
}

// ImportInventoryResponse ítems leídos de la planilla, sin persistir.
type ImportInventoryResponse struct {
	Items []InventoryItemRequest `json:"items"`
}
