package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	engine "github.com/jhoicas/desossa-api/internal/domain/inventory"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/pkg/logger"
)

// CountUseCase inventario físico: análisis de quebras, inventarios guardados, planillas y PDF.
type CountUseCase struct {
	repo      repository.InventoryCountRepository
	companies ports.CompanyLookup
	pdf       ReportGenerator
	sheets    SheetCodec
	log       *logger.Logger
}

// NewCountUseCase construye el caso de uso. pdf y sheets pueden ser nil si no se exponen reportes.
func NewCountUseCase(
	repo repository.InventoryCountRepository,
	companies ports.CompanyLookup,
	pdf ReportGenerator,
	sheets SheetCodec,
	log *logger.Logger,
) *CountUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &CountUseCase{repo: repo, companies: companies, pdf: pdf, sheets: sheets, log: log}
}

// Analyze calcula la análisis de quebras sin persistir.
func (uc *CountUseCase) Analyze(req dto.InventoryAnalysisRequest) (*dto.InventoryAnalysisResult, error) {
	items, err := BuildItems(req.Items)
	if err != nil {
		return nil, err
	}
	out := ToResult(items)
	return &out, nil
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

// Create valida, analiza y guarda el inventario.
func (uc *CountUseCase) Create(ctx context.Context, scope repository.Scope, req dto.InventoryCountRequest) (*dto.InventoryCountResponse, error) {
	items, err := validateCount(req)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.InventoryCount{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		UserID:    scope.UserID,
		CreatedAt: now,
	}
	fillCount(c, req, items, now)
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("inventario: guardar: %w", err)
	}
	return toResponse(c), nil
}

// Update recalcula y reemplaza un inventario existente.
func (uc *CountUseCase) Update(ctx context.Context, scope repository.Scope, id string, req dto.InventoryCountRequest) (*dto.InventoryCountResponse, error) {
	items, err := validateCount(req)
	if err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	fillCount(c, req, items, time.Now())
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("inventario: actualizar: %w", err)
	}
	return toResponse(c), nil
}

// Get devuelve un inventario guardado con su resumen.
func (uc *CountUseCase) Get(ctx context.Context, scope repository.Scope, id string) (*dto.InventoryCountResponse, error) {
	c, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toResponse(c), nil
}

// List lista inventarios, más recientes primero.
func (uc *CountUseCase) List(ctx context.Context, scope repository.Scope, page dto.PageRequest) (*dto.InventoryCountListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("inventario: listar: %w", err)
	}
	items := make([]dto.InventoryCountSummary, 0, len(list))
	for _, c := range list {
		s := summarize(c.Items)
		items = append(items, dto.InventoryCountSummary{
			ID:             c.ID,
			Name:           c.Name,
			Date:           c.Date,
			Items:          s.Items,
			ShrinkageValue: s.ShrinkageValue.StringFixed(2),
			SurplusValue:   s.SurplusValue.StringFixed(2),
			NetValue:       s.NetValue.StringFixed(2),
		})
	}
	return &dto.InventoryCountListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un inventario del scope.
func (uc *CountUseCase) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return uc.repo.Delete(ctx, scope, id)
}

// ── Planillas y reportes ─────────────────────────────────────────────────────

// Import lee ítems de una planilla sin persistir. Códigos repetidos se combinan.
func (uc *CountUseCase) Import(r io.Reader) (*dto.ImportInventoryResponse, error) {
	rows, err := uc.readItems(r)
	if err != nil {
		return nil, err
	}
	return &dto.ImportInventoryResponse{Items: MergeRows(nil, rows)}, nil
}

// ImportInto combina una planilla con un inventario guardado y lo recalcula.
func (uc *CountUseCase) ImportInto(ctx context.Context, scope repository.Scope, id string, r io.Reader) (*dto.InventoryCountResponse, error) {
	c, err := uc.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	rows, err := uc.readItems(r)
	if err != nil {
		return nil, err
	}
	items, err := BuildItems(MergeRows(requestsFromItems(c.Items), rows))
	if err != nil {
		return nil, err
	}
	c.Items = items
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("inventario: actualizar: %w", err)
	}
	uc.log.Tenant(scope.CompanyID, scope.UserID).Info().
		Str("inventory_id", id).Int("rows", len(rows)).Int("items", len(items)).Msg("planilla de inventario importada")
	return toResponse(c), nil
}

// Template planilla modelo de importación.
func (uc *CountUseCase) Template() ([]byte, string, error) {
	data, err := uc.sheets.InventoryTemplateXLSX()
	if err != nil {
		return nil, "", fmt.Errorf("inventario: modelo: %w", err)
	}
	return data, "modelo_inventario.xlsx", nil
}

// XLSX planilla "Análise de Quebras" de un inventario guardado.
func (uc *CountUseCase) XLSX(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := uc.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.sheets.InventoryXLSX(resp)
	if err != nil {
		uc.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("inventory_id", id).Msg("xlsx de inventario")
		return nil, "", fmt.Errorf("inventario: xlsx: %w", err)
	}
	return data, dto.DownloadName("inventario", resp.Name, resp.Date, "xlsx"), nil
}

// PDF reporte de quebras y sobras de un inventario guardado.
func (uc *CountUseCase) PDF(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := uc.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	h := ports.NewReportHeader(ctx, uc.companies, scope.CompanyID, "Análise de Quebras - "+resp.Name)
	data, err := uc.pdf.InventoryPDF(ctx, h, resp)
	if err != nil {
		uc.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("inventory_id", id).Msg("pdf de inventario")
		return nil, "", fmt.Errorf("inventario: pdf: %w", err)
	}
	return data, dto.DownloadName("inventario", resp.Name, resp.Date, "pdf"), nil
}

// ── Cálculo ──────────────────────────────────────────────────────────────────

// BuildItems valida cada ítem y le aplica la análisis de quebra.
// Un campo numérico vacío vale cero; texto inválido o negativo es ErrInvalidInventoryItem.
func BuildItems(in []dto.InventoryItemRequest) ([]entity.InventoryItem, error) {
	items := make([]entity.InventoryItem, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, req := range in {
		code := strings.TrimSpace(req.Code)
		name := strings.TrimSpace(req.Name)
		if code == "" || name == "" {
			return nil, itemError(i, "código e nome são obrigatórios")
		}
		key := strings.ToLower(code)
		if seen[key] {
			return nil, itemError(i, "código "+code+" repetido")
		}
		seen[key] = true

		var p numbers
		it := entity.InventoryItem{
			Code:         code,
			Name:         name,
			Unit:         unitOrDefault(req.Unit),
			BodyPart:     strings.TrimSpace(req.BodyPart),
			Quantity:     p.value("quantidade", req.Quantity),
			OpeningStock: p.value("estoque inicial", req.OpeningStock),
			Purchases:    p.value("compras", req.Purchases),
			OtherEntries: p.value("outras entradas", req.OtherEntries),
			Sales:        p.value("vendas", req.Sales),
			OtherExits:   p.value("outras saídas", req.OtherExits),
			CountedStock: p.value("estoque físico contado", req.CountedStock),
		}
		avg := p.optional("custo médio unitário", req.AverageUnitCost)
		openingCost := p.optional("custo de abertura", req.OpeningUnitCost)
		purchaseCost := p.optional("custo de compra", req.PurchaseUnitCost)
		if p.invalid != "" {
			return nil, itemError(i, p.invalid+" inválido")
		}
		switch {
		case avg != nil:
			it.AverageUnitCost = *avg
		case openingCost != nil || purchaseCost != nil:
			it.AverageUnitCost = engine.WeightedAverageCost(
				it.OpeningStock, orZero(openingCost), it.Purchases, orZero(purchaseCost),
			).Round(4)
		}
		analyze(&it)
		items = append(items, it)
	}
	return items, nil
}

func analyze(it *entity.InventoryItem) {
	a := engine.Analyze(engine.Movement{
		Opening:         it.OpeningStock,
		Purchases:       it.Purchases,
		OtherEntries:    it.OtherEntries,
		Sales:           it.Sales,
		OtherExits:      it.OtherExits,
		Counted:         it.CountedStock,
		AverageUnitCost: it.AverageUnitCost,
	}).Rounded()
	it.CalculatedStock = a.CalculatedStock
	it.Divergence = a.Divergence
	it.DivergenceValue = a.DivergenceValue
	it.ShrinkagePercent = a.ShrinkagePercent
	it.Status = a.Status
}

// ToResult formatea ítems analizados y el resumen.
func ToResult(items []entity.InventoryItem) dto.InventoryAnalysisResult {
	out := dto.InventoryAnalysisResult{Items: make([]dto.InventoryItemResult, 0, len(items))}
	for _, it := range items {
		out.Items = append(out.Items, dto.InventoryItemResult{
			Code:             it.Code,
			Name:             it.Name,
			Unit:             it.Unit,
			BodyPart:         it.BodyPart,
			Quantity:         it.Quantity.StringFixed(3),
			OpeningStock:     it.OpeningStock.StringFixed(3),
			Purchases:        it.Purchases.StringFixed(3),
			OtherEntries:     it.OtherEntries.StringFixed(3),
			Sales:            it.Sales.StringFixed(3),
			OtherExits:       it.OtherExits.StringFixed(3),
			CountedStock:     it.CountedStock.StringFixed(3),
			AverageUnitCost:  it.AverageUnitCost.StringFixed(2),
			CalculatedStock:  it.CalculatedStock.StringFixed(2),
			Divergence:       it.Divergence.StringFixed(2),
			DivergenceValue:  it.DivergenceValue.StringFixed(2),
			ShrinkagePercent: it.ShrinkagePercent.StringFixed(2),
			Status:           it.Status,
			Message:          engine.Message(it.Status, it.ShrinkagePercent),
		})
	}
	s := summarize(items)
	out.Summary = dto.InventorySummary{
		Items:          s.Items,
		ShrinkageQty:   s.ShrinkageQty.StringFixed(2),
		ShrinkageValue: s.ShrinkageValue.StringFixed(2),
		SurplusQty:     s.SurplusQty.StringFixed(2),
		SurplusValue:   s.SurplusValue.StringFixed(2),
		NetQty:         s.NetQty.StringFixed(2),
		NetValue:       s.NetValue.StringFixed(2),
	}
	return out
}

func summarize(items []entity.InventoryItem) engine.Summary {
	analyses := make([]engine.Analysis, 0, len(items))
	for _, it := range items {
		analyses = append(analyses, engine.Analysis{Divergence: it.Divergence, DivergenceValue: it.DivergenceValue})
	}
	return engine.Summarize(analyses)
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (uc *CountUseCase) load(ctx context.Context, scope repository.Scope, id string) (*entity.InventoryCount, error) {
	c, err := uc.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("inventario: obtener: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func (uc *CountUseCase) readItems(r io.Reader) ([]dto.InventoryItemRequest, error) {
	rows, err := uc.sheets.ReadInventoryItems(r)
	if err != nil {
		return nil, fmt.Errorf("%w: planilha inválida: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: planilha vazia ou sem a coluna codigo_produto", domain.ErrInvalidInput)
	}
	return rows, nil
}

func validateCount(req dto.InventoryCountRequest) ([]entity.InventoryItem, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: nome do inventário é obrigatório", domain.ErrInvalidInput)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: nenhum item para salvar", domain.ErrInvalidInput)
	}
	return BuildItems(req.Items)
}

func fillCount(c *entity.InventoryCount, req dto.InventoryCountRequest, items []entity.InventoryItem, now time.Time) {
	c.Name = strings.TrimSpace(req.Name)
	c.Date = now
	if req.Date != nil {
		c.Date = *req.Date
	}
	c.Notes = req.Notes
	c.Items = items
	c.UpdatedAt = now
}

func toResponse(c *entity.InventoryCount) *dto.InventoryCountResponse {
	return &dto.InventoryCountResponse{
		ID:        c.ID,
		Name:      c.Name,
		Date:      c.Date,
		Notes:     c.Notes,
		Result:    ToResult(c.Items),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func itemError(i int, detail string) error {
	return domain.NewValidationError(domain.CodeInvalidInventoryItem, fmt.Sprintf("Item %d do inventário: %s.", i+1, detail))
}

// numbers parsea campos numéricos y recuerda el primero inválido.
type numbers struct{ invalid string }

func (p *numbers) optional(field string, n dto.NumberText) *decimal.Decimal {
	f, err := dto.ParseOptionalNumber(n)
	if err != nil || (f != nil && *f < 0) {
		if p.invalid == "" {
			p.invalid = field
		}
		return nil
	}
	if f == nil {
		return nil
	}
	v := dto.ToDecimalExact(*f)
	return &v
}

func (p *numbers) value(field string, n dto.NumberText) decimal.Decimal {
	return orZero(p.optional(field, n))
}

func orZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func unitOrDefault(u string) string {
	if u = strings.TrimSpace(u); u != "" {
		return u
	}
	return "kg"
}
