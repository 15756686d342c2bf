package desossa

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/domain"
	engine "github.com/jhoicas/desossa-api/internal/domain/desossa"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/pkg/logger"
)

// Service casos de uso de desossa: cálculo, CRUD, reportes e importación de cortes.
type Service struct {
	repo      repository.BreakdownRepository
	companies ports.CompanyLookup
	pdf       ports.ReportPDFGenerator
	sheets    ports.SpreadsheetCodec
	log       *logger.Logger
}

// NewService construye el servicio. pdf y sheets pueden ser nil si no se exponen reportes.
func NewService(
	repo repository.BreakdownRepository,
	companies ports.CompanyLookup,
	pdf ports.ReportPDFGenerator,
	sheets ports.SpreadsheetCodec,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{repo: repo, companies: companies, pdf: pdf, sheets: sheets, log: log}
}

// Calculate ejecuta el rateio sin persistir.
func (s *Service) Calculate(req dto.CalculateBreakdownRequest) (*dto.BreakdownResult, error) {
	res, err := AllocateInput(req)
	if err != nil {
		return nil, err
	}
	out := ToResult(res)
	return &out, nil
}

// AllocateInput parsea la entrada del usuario y ejecuta el motor.
// Un texto no numérico en un campo obligatorio produce el mismo error de validación
// que un valor fuera de rango.
func AllocateInput(req dto.CalculateBreakdownRequest) (*engine.BatchResult, error) {
	weight, errW := dto.ParseNumber(req.InitialWeightKg)
	cost, errC := dto.ParseNumber(req.CarcassCost)
	if errW != nil || errC != nil {
		return nil, domain.ErrInvalidBatchTotals
	}
	cuts, err := ParseCuts(req.Cuts)
	if err != nil {
		return nil, err
	}
	return engine.Allocate(cuts, weight, cost)
}

// ParseCuts convierte los cortes de texto a valores del motor.
// En descarte el precio se ignora (puede venir vacío o inválido).
func ParseCuts(in []dto.CutInput) ([]engine.Cut, error) {
	cuts := make([]engine.Cut, 0, len(in))
	for i, c := range in {
		cut := engine.Cut{
			Name:     strings.TrimSpace(c.Name),
			Code:     strings.TrimSpace(c.Code),
			BodyPart: strings.TrimSpace(c.BodyPart),
		}
		if cut.Name == "" {
			return nil, engine.InvalidCutError(i, "nome obrigatório")
		}
		w, err := dto.ParseNumber(c.WeightKg)
		if err != nil {
			return nil, engine.InvalidCutError(i, "peso inválido")
		}
		cut.WeightKg = w
		if !cut.IsDiscard() {
			p, err := dto.ParseNumber(c.SalePricePerKg)
			if err != nil {
				return nil, engine.InvalidCutError(i, "preço de venda inválido")
			}
			cut.SalePricePerKg = p
		}
		cuts = append(cuts, cut)
	}
	return cuts, nil
}

// ToResult formatea el resultado del motor para la salida (2 decimales).
func ToResult(res *engine.BatchResult) dto.BreakdownResult {
	out := dto.BreakdownResult{
		InitialWeightKg:      dto.Fixed2(res.InitialWeightKg),
		CarcassCost:          dto.Fixed2(res.TotalCarcassCost),
		TotalRevenue:         dto.Fixed2(res.TotalRevenue),
		TotalAllocatedCost:   dto.Fixed2(res.TotalAllocatedCost),
		CommercialWeightKg:   dto.Fixed2(res.CommercialWeightKg),
		DiscardWeightKg:      dto.Fixed2(res.DiscardWeightKg),
		TotalYieldPercent:    dto.Percent2(res.TotalYieldPercent),
		EstimatedGrossProfit: dto.Fixed2(res.EstimatedGrossProfit),
		TotalDiscardCost:     dto.Fixed2(res.TotalDiscardCost),
		Cuts:                 make([]dto.CutResult, 0, len(res.Cuts)),
		Parts:                make([]dto.PartResult, 0, len(res.Parts)),
	}
	for _, c := range res.Cuts {
		out.Cuts = append(out.Cuts, dto.CutResult{
			Name:               c.Name,
			Code:               c.Code,
			WeightKg:           dto.Fixed2(c.WeightKg),
			SalePricePerKg:     dto.Fixed2(c.EffectivePricePerKg),
			BodyPart:           c.BodyPart,
			IsDiscard:          c.IsDiscard(),
			SaleValue:          dto.Fixed2(c.SaleValue),
			SaleIndex:          dto.Percent2(c.SaleIndex * 100),
			AllocatedCost:      dto.Fixed2(c.AllocatedCost),
			AllocatedCostPerKg: dto.Fixed2(c.AllocatedCostPerKg),
			MarginPercent:      dto.Percent2(c.MarginPercent),
		})
	}
	for _, p := range res.Parts {
		out.Parts = append(out.Parts, ToPartResult(p))
	}
	return out
}

// ToPartResult formatea un agregado por parte.
func ToPartResult(p engine.PartAggregate) dto.PartResult {
	return dto.PartResult{
		Part:          p.Part,
		Label:         p.Label,
		WeightKg:      dto.Fixed2(p.WeightKg),
		Revenue:       dto.Fixed2(p.Revenue),
		AllocatedCost: dto.Fixed2(p.AllocatedCost),
		ProfitOrLoss:  dto.Fixed2(p.ProfitOrLoss),
		Items:         p.Items,
	}
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

// Create valida, calcula y persiste. Un lote inválido nunca se guarda.
func (s *Service) Create(ctx context.Context, scope repository.Scope, req dto.SaveBreakdownRequest) (*dto.BreakdownResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: nome da desossa é obrigatório", domain.ErrInvalidInput)
	}
	res, err := AllocateInput(req.CalculateBreakdownRequest)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	b := &entity.Breakdown{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		UserID:    scope.UserID,
		CreatedAt: now,
	}
	fillBreakdown(b, req, res, now)
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("desossa: guardar: %w", err)
	}
	return toResponse(b, res), nil
}

// Update recalcula y reemplaza una desossa existente.
func (s *Service) Update(ctx context.Context, scope repository.Scope, id string, req dto.SaveBreakdownRequest) (*dto.BreakdownResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: nome da desossa é obrigatório", domain.ErrInvalidInput)
	}
	b, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	res, err := AllocateInput(req.CalculateBreakdownRequest)
	if err != nil {
		return nil, err
	}
	fillBreakdown(b, req, res, time.Now())
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("desossa: actualizar: %w", err)
	}
	return toResponse(b, res), nil
}

// Get devuelve la desossa con el resultado recalculado desde las entradas guardadas.
func (s *Service) Get(ctx context.Context, scope repository.Scope, id string) (*dto.BreakdownResponse, error) {
	b, res, err := s.Load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toResponse(b, res), nil
}

// Load devuelve la entidad y el resultado del motor (usado por la siembra de simulaciones).
func (s *Service) Load(ctx context.Context, scope repository.Scope, id string) (*entity.Breakdown, *engine.BatchResult, error) {
	b, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, nil, err
	}
	res, err := engine.Allocate(cutsFromEntity(b.Cuts), b.InitialWeightKg.InexactFloat64(), b.CarcassCost.InexactFloat64())
	if err != nil {
		return nil, nil, fmt.Errorf("desossa %s: recalcular: %w", id, err)
	}
	return b, res, nil
}

// List lista desossas del usuario en la empresa.
func (s *Service) List(ctx context.Context, scope repository.Scope, page dto.PageRequest) (*dto.BreakdownListResponse, error) {
	page.DefaultPage()
	list, err := s.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("desossa: listar: %w", err)
	}
	items := make([]dto.BreakdownSummary, 0, len(list))
	for _, b := range list {
		items = append(items, dto.BreakdownSummary{
			ID:                b.ID,
			Name:              b.Name,
			Date:              b.Date,
			AnimalType:        b.AnimalType,
			InitialWeightKg:   b.InitialWeightKg.StringFixed(2),
			CarcassCost:       b.CarcassCost.StringFixed(2),
			TotalRevenue:      b.TotalRevenue.StringFixed(2),
			TotalYieldPercent: b.TotalYieldPercent.StringFixed(2) + "%",
			Cuts:              len(b.Cuts),
		})
	}
	return &dto.BreakdownListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina una desossa del scope.
func (s *Service) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return s.repo.Delete(ctx, scope, id)
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// PDF genera el reporte PDF de una desossa guardada.
func (s *Service) PDF(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	h := ports.NewReportHeader(ctx, s.companies, scope.CompanyID, "Relatório de Desossa - "+resp.Name)
	data, err := s.pdf.BreakdownPDF(ctx, h, resp)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("breakdown_id", id).Msg("pdf de desossa")
		return nil, "", fmt.Errorf("desossa: pdf: %w", err)
	}
	return data, dto.DownloadName("desossa", resp.Name, resp.Date, "pdf"), nil
}

// XLSX genera la planilla de una desossa guardada.
func (s *Service) XLSX(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.sheets.BreakdownXLSX(resp)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("breakdown_id", id).Msg("xlsx de desossa")
		return nil, "", fmt.Errorf("desossa: xlsx: %w", err)
	}
	return data, dto.DownloadName("desossa", resp.Name, resp.Date, "xlsx"), nil
}

// ImportCuts lee cortes de una planilla; los valores quedan como texto para el parser común.
func (s *Service) ImportCuts(r io.Reader) (*dto.ImportCutsResponse, error) {
	cuts, err := s.sheets.ReadCuts(r)
	if err != nil {
		return nil, fmt.Errorf("%w: planilha inválida: %v", domain.ErrInvalidInput, err)
	}
	return &dto.ImportCutsResponse{Cuts: cuts}, nil
}

// ── helpers ──────────────────────────────────────────────────────────────────

func (s *Service) load(ctx context.Context, scope repository.Scope, id string) (*entity.Breakdown, error) {
	b, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("desossa: obtener: %w", err)
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

func fillBreakdown(b *entity.Breakdown, req dto.SaveBreakdownRequest, res *engine.BatchResult, now time.Time) {
	b.Name = strings.TrimSpace(req.Name)
	b.Date = now
	if req.Date != nil {
		b.Date = *req.Date
	}
	b.AnimalType = req.AnimalType
	if b.AnimalType == "" {
		b.AnimalType = engine.AnimalBovino
	}
	b.Notes = req.Notes
	b.InitialWeightKg = dto.ToDecimalExact(res.InitialWeightKg)
	b.CarcassCost = dto.ToDecimalExact(res.TotalCarcassCost)
	b.TotalRevenue = dto.ToDecimal(res.TotalRevenue, 2)
	b.TotalAllocatedCost = dto.ToDecimal(res.TotalAllocatedCost, 2)
	b.TotalYieldPercent = dto.ToDecimal(res.TotalYieldPercent, 2)
	b.GrossProfit = dto.ToDecimal(res.EstimatedGrossProfit, 2)
	b.DiscardCost = dto.ToDecimal(res.TotalDiscardCost, 2)
	b.UpdatedAt = now

	b.Cuts = make([]entity.BreakdownCut, 0, len(res.Cuts))
	for _, c := range res.Cuts {
		b.Cuts = append(b.Cuts, entity.BreakdownCut{
			Name:               c.Name,
			Code:               c.Code,
			WeightKg:           dto.ToDecimalExact(c.WeightKg),
			SalePricePerKg:     dto.ToDecimalExact(c.EffectivePricePerKg),
			BodyPart:           c.BodyPart,
			SaleValue:          dto.ToDecimal(c.SaleValue, 2),
			SaleIndexPercent:   dto.ToDecimal(c.SaleIndex*100, 2),
			AllocatedCost:      dto.ToDecimal(c.AllocatedCost, 2),
			AllocatedCostPerKg: dto.ToDecimal(c.AllocatedCostPerKg, 2),
			MarginPercent:      dto.ToDecimal(c.MarginPercent, 2),
		})
	}
}

func cutsFromEntity(stored []entity.BreakdownCut) []engine.Cut {
	cuts := make([]engine.Cut, 0, len(stored))
	for _, c := range stored {
		cuts = append(cuts, engine.Cut{
			Name:           c.Name,
			Code:           c.Code,
			WeightKg:       c.WeightKg.InexactFloat64(),
			SalePricePerKg: c.SalePricePerKg.InexactFloat64(),
			BodyPart:       c.BodyPart,
		})
	}
	return cuts
}

func toResponse(b *entity.Breakdown, res *engine.BatchResult) *dto.BreakdownResponse {
	return &dto.BreakdownResponse{
		ID:         b.ID,
		Name:       b.Name,
		Date:       b.Date,
		AnimalType: b.AnimalType,
		Notes:      b.Notes,
		Result:     ToResult(res),
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
