package simulation

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/domain"
	engine "github.com/jhoicas/desossa-api/internal/domain/desossa"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/pkg/logger"
)

const (
	SourceBreakdown = "desossa"
	SourceInvoice   = "nota_fiscal"
)

// BreakdownLoader lee una desossa ya recalculada (lo implementa desossa.Service).
type BreakdownLoader interface {
	Load(ctx context.Context, scope repository.Scope, id string) (*entity.Breakdown, *engine.BatchResult, error)
}

// Service casos de uso de simulación de precios.
type Service struct {
	repo       repository.SimulationRepository
	breakdowns BreakdownLoader
	invoices   repository.InvoiceRepository
	companies  ports.CompanyLookup
	pdf        ports.ReportPDFGenerator
	sheets     ports.SpreadsheetCodec
	log        *logger.Logger
}

// NewService construye el servicio de simulación.
func NewService(
	repo repository.SimulationRepository,
	breakdowns BreakdownLoader,
	invoices repository.InvoiceRepository,
	companies ports.CompanyLookup,
	pdf ports.ReportPDFGenerator,
	sheets ports.SpreadsheetCodec,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		repo:       repo,
		breakdowns: breakdowns,
		invoices:   invoices,
		companies:  companies,
		pdf:        pdf,
		sheets:     sheets,
		log:        log,
	}
}

// ── Calculadora ──────────────────────────────────────────────────────────────

// Apply aplica el cambio de un campo al ítem (reducer puro sobre el ítem del cliente).
// Un valor vacío en margen u oferta solo borra ese driver.
func (s *Service) Apply(req dto.ApplyChangeRequest) (*dto.SimulationItem, error) {
	item, err := FromDTO(req.Item)
	if err != nil {
		return nil, err
	}
	field := engine.Field(strings.TrimSpace(req.Field))
	switch field {
	case "code":
		item = item.SetText(string(req.Value), item.Name)
	case "name":
		item = item.SetText(item.Code, string(req.Value))
	default:
		if req.Value.IsEmpty() && (field == engine.FieldTargetMargin || field == engine.FieldOfferPrice) {
			item, err = engine.ClearDriver(item, field)
			break
		}
		v, perr := dto.ParseNumber(req.Value)
		if perr != nil {
			return nil, domain.ErrInvalidSimulationField
		}
		item, err = engine.Simulate(item, field, v)
	}
	if err != nil {
		return nil, err
	}
	out := ToDTO(item)
	return &out, nil
}

// Dashboard margen de la cartera sobre los ítems enviados.
func (s *Service) Dashboard(req dto.DashboardRequest) (*dto.DashboardResponse, error) {
	items, err := fromDTOs(req.Items)
	if err != nil {
		return nil, err
	}
	d := toDashboard(engine.Dashboard(items))
	return &d, nil
}

// ── CRUD ─────────────────────────────────────────────────────────────────────

// Create guarda una simulación.
func (s *Service) Create(ctx context.Context, scope repository.Scope, req dto.SaveSimulationRequest) (*dto.SimulationResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: nome da simulação é obrigatório", domain.ErrInvalidInput)
	}
	items, err := fromDTOs(req.Items)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	sim := &entity.PriceSimulation{
		ID:        uuid.New().String(),
		CompanyID: scope.CompanyID,
		UserID:    scope.UserID,
		CreatedAt: now,
	}
	fillSimulation(sim, req, items, now)
	if err := s.repo.Create(ctx, sim); err != nil {
		return nil, fmt.Errorf("simulación: guardar: %w", err)
	}
	return toResponse(sim), nil
}

// Update reemplaza una simulación existente.
func (s *Service) Update(ctx context.Context, scope repository.Scope, id string, req dto.SaveSimulationRequest) (*dto.SimulationResponse, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: nome da simulação é obrigatório", domain.ErrInvalidInput)
	}
	sim, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	items, err := fromDTOs(req.Items)
	if err != nil {
		return nil, err
	}
	fillSimulation(sim, req, items, time.Now())
	if err := s.repo.Update(ctx, sim); err != nil {
		return nil, fmt.Errorf("simulación: actualizar: %w", err)
	}
	return toResponse(sim), nil
}

// Get devuelve una simulación con su dashboard.
func (s *Service) Get(ctx context.Context, scope repository.Scope, id string) (*dto.SimulationResponse, error) {
	sim, err := s.load(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return toResponse(sim), nil
}

// List lista simulaciones del usuario.
func (s *Service) List(ctx context.Context, scope repository.Scope, page dto.PageRequest) (*dto.SimulationListResponse, error) {
	page.DefaultPage()
	list, err := s.repo.List(ctx, scope, page.Limit, page.Offset)
	if err != nil {
		return nil, fmt.Errorf("simulación: listar: %w", err)
	}
	items := make([]dto.SimulationSummary, 0, len(list))
	for _, sim := range list {
		items = append(items, dto.SimulationSummary{ID: sim.ID, Name: sim.Name, Date: sim.Date, Items: len(sim.Items)})
	}
	return &dto.SimulationListResponse{Items: items, Page: dto.PageResponse{Limit: page.Limit, Offset: page.Offset}}, nil
}

// Delete elimina una simulación.
func (s *Service) Delete(ctx context.Context, scope repository.Scope, id string) error {
	return s.repo.Delete(ctx, scope, id)
}

// ── Siembra ──────────────────────────────────────────────────────────────────

// SeedFromBreakdown arma ítems a partir de los cortes de una desossa guardada.
func (s *Service) SeedFromBreakdown(ctx context.Context, scope repository.Scope, breakdownID string) (*dto.SeedResponse, error) {
	b, res, err := s.breakdowns.Load(ctx, scope, breakdownID)
	if err != nil {
		return nil, err
	}
	items := engine.SeedFromBreakdown(res)
	return seedResponse(SourceBreakdown, b.ID, b.Name, items), nil
}

// SeedFromInvoice arma ítems a partir de una nota fiscal (costo = valor unitario, peso = cantidad).
func (s *Service) SeedFromInvoice(ctx context.Context, scope repository.Scope, invoiceID string) (*dto.SeedResponse, error) {
	inv, err := s.invoices.GetByID(ctx, scope, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("simulación: obtener nota fiscal: %w", err)
	}
	if inv == nil {
		return nil, domain.ErrNotFound
	}
	lines := make([]engine.InvoiceLine, 0, len(inv.Items))
	for _, it := range inv.Items {
		lines = append(lines, engine.InvoiceLine{
			Code:      it.ProductCode,
			Name:      it.Description,
			Quantity:  it.Quantity.InexactFloat64(),
			UnitValue: it.UnitValue.InexactFloat64(),
		})
	}
	return seedResponse(SourceInvoice, inv.ID, "NF "+inv.Number, engine.SeedFromInvoice(lines)), nil
}

func seedResponse(source, id, name string, items []engine.SimulationItem) *dto.SeedResponse {
	return &dto.SeedResponse{
		Source:    source,
		SourceID:  id,
		Name:      name,
		Items:     toDTOs(items),
		Dashboard: toDashboard(engine.Dashboard(items)),
	}
}

// ── Reportes ─────────────────────────────────────────────────────────────────

// PDF reporte de una simulación guardada.
func (s *Service) PDF(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	h := ports.NewReportHeader(ctx, s.companies, scope.CompanyID, "Simulação de Preços - "+resp.Name)
	data, err := s.pdf.SimulationPDF(ctx, h, resp)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("simulation_id", id).Msg("pdf de simulación")
		return nil, "", fmt.Errorf("simulación: pdf: %w", err)
	}
	return data, dto.DownloadName("simulacao", resp.Name, resp.Date, "pdf"), nil
}

// XLSX planilla de una simulación guardada.
func (s *Service) XLSX(ctx context.Context, scope repository.Scope, id string) ([]byte, string, error) {
	resp, err := s.Get(ctx, scope, id)
	if err != nil {
		return nil, "", err
	}
	data, err := s.sheets.SimulationXLSX(resp)
	if err != nil {
		s.log.Tenant(scope.CompanyID, scope.UserID).Error().Err(err).Str("simulation_id", id).Msg("xlsx de simulación")
		return nil, "", fmt.Errorf("simulación: xlsx: %w", err)
	}
	return data, dto.DownloadName("simulacao", resp.Name, resp.Date, "xlsx"), nil
}

func (s *Service) load(ctx context.Context, scope repository.Scope, id string) (*entity.PriceSimulation, error) {
	sim, err := s.repo.GetByID(ctx, scope, id)
	if err != nil {
		return nil, fmt.Errorf("simulación: obtener: %w", err)
	}
	if sim == nil {
		return nil, domain.ErrNotFound
	}
	return sim, nil
}

// ── Conversión cable <-> motor <-> entidad ───────────────────────────────────

// FromDTO parsea un ítem del cliente. Los derivados vacíos quedan en cero.
func FromDTO(in dto.SimulationItem) (engine.SimulationItem, error) {
	var (
		it   = engine.SimulationItem{Code: in.Code, Name: in.Name}
		perr error
	)
	num := func(n dto.NumberText) float64 {
		if n.IsEmpty() || perr != nil {
			return 0
		}
		f, err := dto.ParseNumber(n)
		if err != nil {
			perr = err
		}
		return f
	}
	opt := func(n dto.NumberText) *float64 {
		if perr != nil {
			return nil
		}
		f, err := dto.ParseOptionalNumber(n)
		if err != nil {
			perr = err
		}
		return f
	}
	it.WeightKg = num(in.WeightKg)
	it.CurrentCost = num(in.CurrentCost)
	it.CurrentSalePrice = num(in.CurrentSalePrice)
	it.TargetMarginPercent = opt(in.TargetMarginPercent)
	it.OfferPricePerKg = opt(in.OfferPricePerKg)
	it.NewSalePrice = opt(in.NewSalePrice)
	it.NewTotalRevenue = num(in.NewTotalRevenue)
	it.NewAllocatedCost = num(in.NewAllocatedCost)
	it.NewMarginPercent = num(in.NewMarginPercent)
	it.MarkupPercent = parseMarkup(in.Markup)
	if perr != nil {
		return engine.SimulationItem{}, domain.NewValidationError(domain.CodeInvalidSimulationField,
			fmt.Sprintf("%s (item %q)", domain.ErrInvalidSimulationField.Message, in.Name))
	}
	return it, nil
}

func fromDTOs(in []dto.SimulationItem) ([]engine.SimulationItem, error) {
	items := make([]engine.SimulationItem, 0, len(in))
	for _, it := range in {
		e, err := FromDTO(it)
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	return items, nil
}

// ToDTO formatea un ítem para la salida. Sin precio nuevo los derivados van vacíos.
func ToDTO(it engine.SimulationItem) dto.SimulationItem {
	out := dto.SimulationItem{
		Code:                it.Code,
		Name:                it.Name,
		WeightKg:            dto.NumberText(dto.Fixed2(it.WeightKg)),
		CurrentCost:         dto.NumberText(dto.Fixed2(it.CurrentCost)),
		CurrentSalePrice:    dto.NumberText(dto.Fixed2(it.CurrentSalePrice)),
		TargetMarginPercent: dto.NumberText(dto.OptionalFixed2(it.TargetMarginPercent)),
		OfferPricePerKg:     dto.NumberText(dto.OptionalFixed2(it.OfferPricePerKg)),
		NewSalePrice:        dto.NumberText(dto.OptionalFixed2(it.NewSalePrice)),
	}
	if it.NewSalePrice != nil {
		out.NewTotalRevenue = dto.NumberText(dto.Fixed2(it.NewTotalRevenue))
		out.NewAllocatedCost = dto.NumberText(dto.Fixed2(it.NewAllocatedCost))
		out.NewMarginPercent = dto.NumberText(dto.Fixed2(it.NewMarginPercent))
		out.Markup = dto.Fixed2(it.MarkupPercent)
	}
	out.CurrentMarginPercent = "N/A"
	if m, ok := engine.CurrentMarginPercent(it.CurrentCost, it.CurrentSalePrice); ok {
		out.CurrentMarginPercent = dto.Percent2(m)
	}
	out.CurrentTotalSale = "N/A"
	if t, ok := engine.CurrentTotalSale(it.CurrentSalePrice, it.WeightKg); ok {
		out.CurrentTotalSale = dto.Fixed2(t)
	}
	return out
}

func toDTOs(items []engine.SimulationItem) []dto.SimulationItem {
	out := make([]dto.SimulationItem, 0, len(items))
	for _, it := range items {
		out = append(out, ToDTO(it))
	}
	return out
}

func toDashboard(d engine.DashboardResult) dto.DashboardResponse {
	return dto.DashboardResponse{
		TotalRevenue:  dto.Fixed2(d.TotalRevenue),
		TotalCost:     dto.Fixed2(d.TotalCost),
		TotalProfit:   dto.Fixed2(d.TotalProfit),
		MarginPercent: dto.Percent2(d.MarginPercent),
		ItemsAnalyzed: d.ItemsAnalyzed,
	}
}

func fillSimulation(sim *entity.PriceSimulation, req dto.SaveSimulationRequest, items []engine.SimulationItem, now time.Time) {
	sim.Name = strings.TrimSpace(req.Name)
	sim.Date = now
	if req.Date != nil {
		sim.Date = *req.Date
	}
	sim.Notes = req.Notes
	sim.UpdatedAt = now
	sim.Items = make([]entity.SimulationLine, 0, len(items))
	for _, it := range items {
		sim.Items = append(sim.Items, toLine(it))
	}
}

func toLine(it engine.SimulationItem) entity.SimulationLine {
	line := entity.SimulationLine{
		Code:                it.Code,
		Name:                it.Name,
		WeightKg:            dto.ToDecimalExact(it.WeightKg),
		CurrentCost:         dto.ToDecimalExact(it.CurrentCost),
		CurrentSalePrice:    dto.ToDecimalExact(it.CurrentSalePrice),
		TargetMarginPercent: optDecimal(it.TargetMarginPercent),
		OfferPricePerKg:     optDecimal(it.OfferPricePerKg),
	}
	if it.NewSalePrice != nil {
		p := dto.ToDecimal(*it.NewSalePrice, 2)
		line.NewSalePrice = &p
		line.NewTotalRevenue = dto.ToDecimal(it.NewTotalRevenue, 2)
		line.NewAllocatedCost = dto.ToDecimal(it.NewAllocatedCost, 2)
		line.NewMarginPercent = dto.ToDecimal(it.NewMarginPercent, 2)
		line.Markup = dto.Fixed2(it.MarkupPercent)
	}
	return line
}

func fromLine(l entity.SimulationLine) engine.SimulationItem {
	it := engine.SimulationItem{
		Code:                l.Code,
		Name:                l.Name,
		WeightKg:            l.WeightKg.InexactFloat64(),
		CurrentCost:         l.CurrentCost.InexactFloat64(),
		CurrentSalePrice:    l.CurrentSalePrice.InexactFloat64(),
		TargetMarginPercent: optFloat(l.TargetMarginPercent),
		OfferPricePerKg:     optFloat(l.OfferPricePerKg),
		NewSalePrice:        optFloat(l.NewSalePrice),
		NewTotalRevenue:     l.NewTotalRevenue.InexactFloat64(),
		NewAllocatedCost:    l.NewAllocatedCost.InexactFloat64(),
		NewMarginPercent:    l.NewMarginPercent.InexactFloat64(),
	}
	it.MarkupPercent = parseMarkup(l.Markup)
	return it
}

func toResponse(sim *entity.PriceSimulation) *dto.SimulationResponse {
	items := make([]engine.SimulationItem, 0, len(sim.Items))
	for _, l := range sim.Items {
		items = append(items, fromLine(l))
	}
	return &dto.SimulationResponse{
		ID:        sim.ID,
		Name:      sim.Name,
		Date:      sim.Date,
		Notes:     sim.Notes,
		Items:     toDTOs(items),
		Dashboard: toDashboard(engine.Dashboard(items)),
		CreatedAt: sim.CreatedAt,
		UpdatedAt: sim.UpdatedAt,
	}
}

// parseMarkup acepta "inf"; cualquier otro texto no numérico vale cero.
func parseMarkup(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "inf" {
		return math.Inf(1)
	}
	m, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}
	return m.InexactFloat64()
}

func optDecimal(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := dto.ToDecimalExact(*f)
	return &d
}

func optFloat(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := d.InexactFloat64()
	return &f
}
