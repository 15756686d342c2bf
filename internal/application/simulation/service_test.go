package simulation_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdesossa "github.com/jhoicas/desossa-api/internal/application/desossa"
	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/application/simulation"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/internal/infrastructure/memory"
)

var (
	scopeA = repository.Scope{CompanyID: "c1", UserID: "u1"}
	scopeB = repository.Scope{CompanyID: "c2", UserID: "u1"}
)

type stubReports struct{ title string }

func (s *stubReports) BreakdownPDF(context.Context, ports.ReportHeader, *dto.BreakdownResponse) ([]byte, error) {
	return nil, nil
}
func (s *stubReports) SimulationPDF(_ context.Context, h ports.ReportHeader, _ *dto.SimulationResponse) ([]byte, error) {
	s.title = h.Title
	return []byte("%PDF"), nil
}
func (s *stubReports) YieldPDF(context.Context, ports.ReportHeader, *ports.YieldReport) ([]byte, error) {
	return nil, nil
}
func (s *stubReports) BreakdownXLSX(*dto.BreakdownResponse) ([]byte, error) { return nil, nil }
func (s *stubReports) SimulationXLSX(*dto.SimulationResponse) ([]byte, error) {
	return []byte("PK"), nil
}
func (s *stubReports) YieldXLSX(*ports.YieldReport) ([]byte, error) { return nil, nil }
func (s *stubReports) ReadCuts(io.Reader) ([]dto.CutInput, error)   { return nil, nil }

type fixture struct {
	svc        *simulation.Service
	breakdowns *appdesossa.Service
	store      *memory.Store
	reports    *stubReports
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.NewStore()
	reports := &stubReports{}
	bd := appdesossa.NewService(store.Breakdowns(), store.Companies(), reports, reports, nil)
	svc := simulation.NewService(store.Simulations(), bd, store.Invoices(), store.Companies(), reports, reports, nil)
	return fixture{svc: svc, breakdowns: bd, store: store, reports: reports}
}

func picanha() dto.SimulationItem {
	return dto.SimulationItem{Code: "P01", Name: "Picanha", WeightKg: "10", CurrentCost: "30,00", CurrentSalePrice: "50"}
}

func TestApply_MargenObjetivo(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "target_margin", Value: "40"})
	require.NoError(t, err)

	assert.Equal(t, dto.NumberText("50.00"), out.NewSalePrice)
	assert.Equal(t, dto.NumberText("40.00"), out.NewMarginPercent)
	assert.Equal(t, "66.67", out.Markup)
	assert.Equal(t, dto.NumberText("500.00"), out.NewTotalRevenue)
	assert.Equal(t, dto.NumberText("300.00"), out.NewAllocatedCost)
	assert.Equal(t, "40.00%", out.CurrentMarginPercent)
	assert.Equal(t, "500.00", out.CurrentTotalSale)
}

func TestApply_MargenInvalidoNoCambiaElItem(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "target_margin", Value: "100"})
	assert.ErrorIs(t, err, domain.ErrInvalidMargin)

	_, err = f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "offer_price", Value: "barato"})
	assert.ErrorIs(t, err, domain.ErrInvalidSimulationField)

	_, err = f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "cor", Value: "1"})
	assert.ErrorIs(t, err, domain.ErrInvalidSimulationField)
}

func TestApply_ValorVacioBorraElDriver(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "offer_price", Value: "60"})
	require.NoError(t, err)

	out, err = f.svc.Apply(dto.ApplyChangeRequest{Item: *out, Field: "offer_price", Value: ""})
	require.NoError(t, err)
	assert.Empty(t, out.OfferPricePerKg)
	assert.Equal(t, dto.NumberText("60.00"), out.NewSalePrice)
}

func TestApply_SinCostoMarkupInfinito(t *testing.T) {
	f := newFixture(t)
	item := picanha()
	item.CurrentCost = ""
	out, err := f.svc.Apply(dto.ApplyChangeRequest{Item: item, Field: "offer_price", Value: "20"})
	require.NoError(t, err)
	assert.Equal(t, "inf", out.Markup)

	again, err := f.svc.Apply(dto.ApplyChangeRequest{Item: *out, Field: "weight", Value: "2"})
	require.NoError(t, err)
	assert.Equal(t, "inf", again.Markup)
	assert.Equal(t, dto.NumberText("40.00"), again.NewTotalRevenue)
}

func TestApply_CamposDeTexto(t *testing.T) {
	f := newFixture(t)
	out, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "name", Value: "Picanha Premium"})
	require.NoError(t, err)
	assert.Equal(t, "Picanha Premium", out.Name)
	assert.Equal(t, "P01", out.Code)
	assert.Empty(t, out.NewSalePrice)
	assert.Empty(t, out.Markup)
}

func TestDashboard_Cartera(t *testing.T) {
	f := newFixture(t)
	a, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "target_margin", Value: "50"})
	require.NoError(t, err)
	b := dto.SimulationItem{Name: "Sem preço", WeightKg: "5", CurrentCost: "10"}

	d, err := f.svc.Dashboard(dto.DashboardRequest{Items: []dto.SimulationItem{*a, b}})
	require.NoError(t, err)
	assert.Equal(t, 1, d.ItemsAnalyzed)
	assert.Equal(t, "600.00", d.TotalRevenue)
	assert.Equal(t, "300.00", d.TotalCost)
	assert.Equal(t, "50.00%", d.MarginPercent)
}

func TestCRUD_Simulacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	item, err := f.svc.Apply(dto.ApplyChangeRequest{Item: picanha(), Field: "target_margin", Value: "25"})
	require.NoError(t, err)

	_, err = f.svc.Create(ctx, scopeA, dto.SaveSimulationRequest{Items: []dto.SimulationItem{*item}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := f.svc.Create(ctx, scopeA, dto.SaveSimulationRequest{Name: "Semana 10", Items: []dto.SimulationItem{*item}})
	require.NoError(t, err)
	assert.Equal(t, "25.00%", created.Dashboard.MarginPercent)

	got, err := f.svc.Get(ctx, scopeA, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, dto.NumberText("25.00"), got.Items[0].TargetMarginPercent)
	assert.Equal(t, dto.NumberText("40.00"), got.Items[0].NewSalePrice)

	_, err = f.svc.Get(ctx, scopeB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	upd, err := f.svc.Update(ctx, scopeA, created.ID, dto.SaveSimulationRequest{Name: "Semana 11"})
	require.NoError(t, err)
	assert.Empty(t, upd.Items)
	assert.Zero(t, upd.Dashboard.ItemsAnalyzed)

	list, err := f.svc.List(ctx, scopeA, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Semana 11", list.Items[0].Name)

	require.NoError(t, f.svc.Delete(ctx, scopeA, created.ID))
	_, err = f.svc.Get(ctx, scopeA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedFromBreakdown(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b, err := f.breakdowns.Create(ctx, scopeA, dto.SaveBreakdownRequest{
		Name: "Boi 01",
		CalculateBreakdownRequest: dto.CalculateBreakdownRequest{
			InitialWeightKg: "100",
			CarcassCost:     "500",
			Cuts: []dto.CutInput{
				{Name: "A", WeightKg: "60", SalePricePerKg: "10", BodyPart: "traseiro"},
				{Name: "B", WeightKg: "30", SalePricePerKg: "5", BodyPart: "dianteiro"},
				{Name: "Osso", WeightKg: "10", BodyPart: "descarte"},
			},
		},
	})
	require.NoError(t, err)

	seed, err := f.svc.SeedFromBreakdown(ctx, scopeA, b.ID)
	require.NoError(t, err)
	assert.Equal(t, simulation.SourceBreakdown, seed.Source)
	require.Len(t, seed.Items, 2)
	assert.Equal(t, dto.NumberText("6.67"), seed.Items[0].CurrentCost)
	assert.Equal(t, "750.00", seed.Dashboard.TotalRevenue)
	assert.Equal(t, "500.00", seed.Dashboard.TotalCost)

	_, err = f.svc.SeedFromBreakdown(ctx, scopeB, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSeedFromInvoice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	inv := &entity.Invoice{
		ID:        "nf-1",
		CompanyID: scopeA.CompanyID,
		UserID:    scopeA.UserID,
		Number:    "4512",
		Date:      time.Now(),
		Items: []entity.InvoiceItem{
			{ProductCode: "9", Description: "Boi casado", Quantity: decimal.NewFromInt(250), UnitValue: decimal.RequireFromString("21.5")},
		},
	}
	require.NoError(t, f.store.Invoices().Create(ctx, inv))

	seed, err := f.svc.SeedFromInvoice(ctx, scopeA, "nf-1")
	require.NoError(t, err)
	assert.Equal(t, "NF 4512", seed.Name)
	require.Len(t, seed.Items, 1)
	assert.Equal(t, dto.NumberText("250.00"), seed.Items[0].WeightKg)
	assert.Equal(t, dto.NumberText("21.50"), seed.Items[0].CurrentCost)
	assert.Empty(t, seed.Items[0].NewSalePrice)

	_, err = f.svc.SeedFromInvoice(ctx, scopeA, "nao-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportesSimulacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	created, err := f.svc.Create(ctx, scopeA, dto.SaveSimulationRequest{Name: "Promo", Items: []dto.SimulationItem{picanha()}})
	require.NoError(t, err)

	data, name, err := f.svc.PDF(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Contains(t, name, "simulacao_Promo_")
	assert.Contains(t, f.reports.title, "Promo")

	_, name, err = f.svc.XLSX(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.Regexp(t, `\.xlsx$`, name)
}
