package yield

import (
	"context"
	"fmt"
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

// Service catálogo de rendimiento y proyector.
type Service struct {
	repo      repository.YieldParameterRepository
	companies ports.CompanyLookup
	pdf       ports.ReportPDFGenerator
	sheets    ports.SpreadsheetCodec
	log       *logger.Logger
}

// NewService construye el servicio de rendimiento.
func NewService(
	repo repository.YieldParameterRepository,
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

// ── Parámetros ───────────────────────────────────────────────────────────────

// Create da de alta un parámetro. El código de pieza es único por empresa.
func (s *Service) Create(ctx context.Context, scope repository.Scope, req dto.YieldParameterRequest) (*dto.YieldParameterResponse, error) {
	now := time.Now()
	p := &entity.YieldParameter{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		UserID:    scope.UserID,
		CreatedAt: now,
	}
	if err := fillParameter(p, req, now); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("rendimiento: crear parámetro: %w", err)
	}
	out := toResponse(p)
	return &out, nil
}

// Update edita un parámetro existente.
func (s *Service) Update(ctx context.Context, scope repository.Scope, id string, req dto.YieldParameterRequest) (*dto.YieldParameterResponse, error) {
	p, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("rendimiento: obtener parámetro: %w", err)
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if err := fillParameter(p, req, time.Now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("rendimiento: actualizar parámetro: %w", err)
	}
	out := toResponse(p)
	return &out, nil
}

// List catálogo completo, filtrado opcionalmente por código o nombre de pieza.
func (s *Service) List(ctx context.Context, scope repository.Scope, search string) (*dto.YieldParameterListResponse, error) {
	list, err := s.repo.ListAll(ctx, scope, strings.TrimSpace(search))
	if err != nil {
		return nil, fmt.Errorf("rendimiento: listar: %w", err)
	}
	items := make([]dto.YieldParameterResponse, 0, len(list))
	for _, p := range list {
		items = append(items, toResponse(p))
	}
	return &dto.YieldParameterListResponse{Items: items}, nil
}

// Delete elimina un parámetro.
func (s *Service) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return s.repo.Delete(ctx, scope, id)
}

// Parts partes presentes en el catálogo más el catálogo fijo por animal.
func (s *Service) Parts(ctx context.Context, scope repository.Scope) (*dto.PartsResponse, error) {
	pieces, err := s.catalog(ctx, scope)
	if err != nil {
		return nil, err
	}
	available := engine.AvailableParts(pieces)
	if available == nil {
		available = []string{}
	}
	return &dto.PartsResponse{
		Available: available,
		Bovino:    partOptions(engine.PartsFor(engine.AnimalBovino)),
		Suino:     partOptions(engine.PartsFor(engine.AnimalSuino)),
	}, nil
}

// ── Proyección ───────────────────────────────────────────────────────────────

// Project proyecta el catálogo (o las piezas enviadas) para un peso de carcaça.
func (s *Service) Project(ctx context.Context, scope repository.Scope, req dto.ProjectRequest) (*dto.ProjectionResponse, error) {
	weight, err := dto.ParseNumber(req.TotalWeightKg)
	if err != nil || weight <= 0 {
		return nil, domain.ErrInvalidProjectionWeight
	}

	var pieces []engine.PieceParam
	if len(req.Pieces) > 0 {
		pieces, err = piecesFromRequest(req.Pieces)
	} else {
		pieces, err = s.catalog(ctx, scope)
	}
	if err != nil {
		return nil, err
	}

	part := strings.TrimSpace(req.Part)
	if part == "" {
		part = engine.AnimalAll
	}
	// peso proyectado cero (filtro sin piezas o rendimientos en 0%) → lista vacía
	projected := engine.Project(engine.FilterPiecesByPart(pieces, part), weight)

	out := &dto.ProjectionResponse{
		TotalWeightKg: dto.Fixed3(weight),
		Part:          part,
		Pieces:        make([]dto.ProjectedPiece, 0, len(projected)),
	}
	for _, p := range projected {
		out.Pieces = append(out.Pieces, dto.ProjectedPiece{
			PieceCode:      p.Code,
			PieceName:      p.Name,
			Part:           p.BodyPart,
			WeightKg:       dto.Fixed3(p.ProjectedWeightKg),
			SalePricePerKg: dto.Fixed2(p.SalePricePerKg),
			PieceValue:     dto.Fixed2(p.PieceValue),
			WeightShare:    dto.Percent2(p.WeightShare * 100),
			RevenueShare:   dto.Percent2(p.RevenueShare * 100),
			CostPerKg:      dto.Fixed2(p.CostPerKg),
			MarginPercent:  dto.Percent2(p.MarginPercent),
		})
	}
	return out, nil
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// PDF reporte del catálogo; con proj incluye la proyección.
func (s *Service) PDF(ctx context.Context, scope repository.Scope, proj *dto.ProjectRequest) ([]byte, string, error) {
	report, err := s.report(ctx, scope, proj)
	if err != nil {
		return nil, "", err
	}
	h := ports.NewReportHeader(ctx, s.companies, scope.CompanyID, "Parâmetros de Rendimento")
	data, err := s.pdf.YieldPDF(ctx, h, report)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Msg("pdf de rendimiento")
		return nil, "", fmt.Errorf("rendimiento: pdf: %w", err)
	}
	return data, dto.DownloadName("rendimento", "parametros", time.Now(), "pdf"), nil
}

// XLSX planilla del catálogo y, si se pidió, de la proyección.
func (s *Service) XLSX(ctx context.Context, scope repository.Scope, proj *dto.ProjectRequest) ([]byte, string, error) {
	report, err := s.report(ctx, scope, proj)
	if err != nil {
		return nil, "", err
	}
	data, err := s.sheets.YieldXLSX(report)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Msg("xlsx de rendimiento")
		return nil, "", fmt.Errorf("rendimiento: xlsx: %w", err)
	}
	return data, dto.DownloadName("rendimento", "parametros", time.Now(), "xlsx"), nil
}

func (s *Service) report(ctx context.Context, scope repository.Scope, proj *dto.ProjectRequest) (*ports.YieldReport, error) {
	list, err := s.List(ctx, scope, "")
	if err != nil {
		return nil, err
	}
	r := &ports.YieldReport{Parameters: list.Items}
	if proj != nil && !proj.TotalWeightKg.IsEmpty() {
		if r.Projection, err = s.Project(ctx, scope, *proj); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (s *Service) catalog(ctx context.Context, scope repository.Scope) ([]engine.PieceParam, error) {
	list, err := s.repo.ListAll(ctx, scope, "")
	if err != nil {
		return nil, fmt.Errorf("rendimiento: leer catálogo: %w", err)
	}
	pieces := make([]engine.PieceParam, 0, len(list))
	for _, p := range list {
		pp := engine.PieceParam{
			Code:                 p.PieceCode,
			Name:                 p.PieceName,
			BodyPart:             p.PartName,
			ExpectedYieldPercent: p.ExpectedYieldPercent.InexactFloat64(),
		}
		if p.SalePricePerKg != nil {
			pp.SalePricePerKg = p.SalePricePerKg.InexactFloat64()
		}
		pieces = append(pieces, pp)
	}
	return pieces, nil
}

// ── Conversión ───────────────────────────────────────────────────────────────

type parsedParam struct {
	yield float64
	price *float64
}

func parseParam(req dto.YieldParameterRequest) (parsedParam, error) {
	if strings.TrimSpace(req.PieceCode) == "" || strings.TrimSpace(req.PieceName) == "" {
		return parsedParam{}, fmt.Errorf("%w: código e nome da peça são obrigatórios", domain.ErrInvalidInput)
	}
	y, err := dto.ParseNumber(req.ExpectedYieldPercent)
	if err != nil || y < 0 || y > 100 {
		return parsedParam{}, fmt.Errorf("%w: rendimento esperado deve estar entre 0 e 100", domain.ErrInvalidInput)
	}
	price, err := dto.ParseOptionalNumber(req.SalePricePerKg)
	if err != nil || (price != nil && *price < 0) {
		return parsedParam{}, fmt.Errorf("%w: preço de venda/kg inválido", domain.ErrInvalidInput)
	}
	return parsedParam{yield: y, price: price}, nil
}

func fillParameter(p *entity.YieldParameter, req dto.YieldParameterRequest, now time.Time) error {
	parsed, err := parseParam(req)
	if err != nil {
		return err
	}
	p.PieceCode = strings.TrimSpace(req.PieceCode)
	p.PieceName = strings.TrimSpace(req.PieceName)
	p.PartCode = strings.TrimSpace(req.PartCode)
	p.PartName = strings.TrimSpace(req.PartName)
	p.ExpectedYieldPercent = dto.ToDecimalExact(parsed.yield)
	p.SalePricePerKg = nil
	if parsed.price != nil {
		d := dto.ToDecimalExact(*parsed.price)
		p.SalePricePerKg = &d
	}
	p.Description = req.Description
	p.UpdatedAt = now
	return nil
}

func piecesFromRequest(in []dto.YieldParameterRequest) ([]engine.PieceParam, error) {
	pieces := make([]engine.PieceParam, 0, len(in))
	for _, req := range in {
		parsed, err := parseParam(req)
		if err != nil {
			return nil, err
		}
		pp := engine.PieceParam{
			Code:                 strings.TrimSpace(req.PieceCode),
			Name:                 strings.TrimSpace(req.PieceName),
			BodyPart:             strings.TrimSpace(req.PartName),
			ExpectedYieldPercent: parsed.yield,
		}
		if parsed.price != nil {
			pp.SalePricePerKg = *parsed.price
		}
		pieces = append(pieces, pp)
	}
	return pieces, nil
}

func toResponse(p *entity.YieldParameter) dto.YieldParameterResponse {
	out := dto.YieldParameterResponse{
		ID:                   p.ID,
		PieceCode:            p.PieceCode,
		PieceName:            p.PieceName,
		PartCode:             p.PartCode,
		PartName:             p.PartName,
		ExpectedYieldPercent: p.ExpectedYieldPercent.StringFixed(2),
		Description:          p.Description,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
	if p.SalePricePerKg != nil {
		out.SalePricePerKg = p.SalePricePerKg.StringFixed(2)
	}
	return out
}

func partOptions(in []engine.PartOption) []dto.PartOption {
	out := make([]dto.PartOption, 0, len(in))
	for _, o := range in {
		out = append(out, dto.PartOption{Slug: o.Slug, Label: o.Label})
	}
	return out
}
