package yield_test

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/application/yield"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/internal/infrastructure/memory"
)

var scope = repository.Scope{CompanyID: "c1", UserID: "u1"}

type stubReports struct{ report *ports.YieldReport }

func (s *stubReports) BreakdownPDF(context.Context, ports.ReportHeader, *dto.BreakdownResponse) ([]byte, error) {
	return nil, nil
}
func (s *stubReports) SimulationPDF(context.Context, ports.ReportHeader, *dto.SimulationResponse) ([]byte, error) {
	return nil, nil
}
func (s *stubReports) YieldPDF(_ context.Context, _ ports.ReportHeader, r *ports.YieldReport) ([]byte, error) {
	s.report = r
	return []byte("%PDF"), nil
}
func (s *stubReports) BreakdownXLSX(*dto.BreakdownResponse) ([]byte, error)   { return nil, nil }
func (s *stubReports) SimulationXLSX(*dto.SimulationResponse) ([]byte, error) { return nil, nil }
func (s *stubReports) YieldXLSX(r *ports.YieldReport) ([]byte, error) {
	s.report = r
	return []byte("PK"), nil
}
func (s *stubReports) ReadCuts(io.Reader) ([]dto.CutInput, error) { return nil, nil }

func newService(t *testing.T) (*yield.Service, *stubReports) {
	t.Helper()
	store := memory.NewStore()
	reports := &stubReports{}
	return yield.NewService(store.YieldParameters(), store.Companies(), reports, reports, nil), reports
}

func seedCatalog(t *testing.T, svc *yield.Service) {
	t.Helper()
	ctx := context.Background()
	for _, req := range []dto.YieldParameterRequest{
		{PieceCode: "01", PieceName: "Picanha", PartName: "Traseiro", ExpectedYieldPercent: "10", SalePricePerKg: "80,00"},
		{PieceCode: "02", PieceName: "Acém", PartName: "Dianteiro", ExpectedYieldPercent: "30", SalePricePerKg: "20"},
	} {
		_, err := svc.Create(ctx, scope, req)
		require.NoError(t, err)
	}
}

func TestParametros_CRUD(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, scope, dto.YieldParameterRequest{
		PieceCode: "01", PieceName: "Picanha", PartName: "Traseiro", ExpectedYieldPercent: "2,5",
	})
	require.NoError(t, err)
	assert.Equal(t, "2.50", created.ExpectedYieldPercent)
	assert.Empty(t, created.SalePricePerKg)

	_, err = svc.Create(ctx, scope, dto.YieldParameterRequest{PieceCode: "01", PieceName: "Outra", ExpectedYieldPercent: "1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	upd, err := svc.Update(ctx, scope, created.ID, dto.YieldParameterRequest{
		PieceCode: "01", PieceName: "Picanha", PartName: "Traseiro", ExpectedYieldPercent: "3", SalePricePerKg: "89.9",
	})
	require.NoError(t, err)
	assert.Equal(t, "89.90", upd.SalePricePerKg)

	list, err := svc.List(ctx, scope, "pica")
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.NoError(t, svc.Delete(ctx, scope, created.ID))
	_, err = svc.Update(ctx, scope, created.ID, dto.YieldParameterRequest{PieceCode: "01", PieceName: "x", ExpectedYieldPercent: "1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParametros_Validacion(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	cases := []dto.YieldParameterRequest{
		{PieceName: "Sem código", ExpectedYieldPercent: "1"},
		{PieceCode: "01", PieceName: "x", ExpectedYieldPercent: "muito"},
		{PieceCode: "01", PieceName: "x", ExpectedYieldPercent: "120"},
		{PieceCode: "01", PieceName: "x", ExpectedYieldPercent: "1", SalePricePerKg: "-3"},
	}
	for _, c := range cases {
		_, err := svc.Create(ctx, scope, c)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestProject_Catalogo(t *testing.T) {
	svc, _ := newService(t)
	seedCatalog(t, svc)

	out, err := svc.Project(context.Background(), scope, dto.ProjectRequest{TotalWeightKg: "200"})
	require.NoError(t, err)
	assert.Equal(t, "todos", out.Part)
	require.Len(t, out.Pieces, 2)

	p := out.Pieces[0]
	assert.Equal(t, "Picanha", p.PieceName)
	assert.Equal(t, "20.000", p.WeightKg)
	assert.Equal(t, "1600.00", p.PieceValue)
	assert.Equal(t, "25.00%", p.WeightShare)
	assert.Equal(t, "57.14%", p.RevenueShare)
	assert.Equal(t, "34.29", p.CostPerKg)
	assert.Equal(t, "57.14%", p.MarginPercent)

	assert.Equal(t, "60.000", out.Pieces[1].WeightKg)
	assert.Equal(t, "42.86%", out.Pieces[1].MarginPercent)
}

func TestProject_FiltroYPesoInvalido(t *testing.T) {
	svc, _ := newService(t)
	seedCatalog(t, svc)
	ctx := context.Background()

	out, err := svc.Project(ctx, scope, dto.ProjectRequest{TotalWeightKg: "200", Part: "Dianteiro"})
	require.NoError(t, err)
	require.Len(t, out.Pieces, 1)
	assert.Equal(t, "100.00%", out.Pieces[0].WeightShare)

	out, err = svc.Project(ctx, scope, dto.ProjectRequest{TotalWeightKg: "200", Part: "Costela"})
	require.NoError(t, err)
	assert.Equal(t, "Costela", out.Part)
	assert.NotNil(t, out.Pieces)
	assert.Empty(t, out.Pieces)

	for _, w := range []dto.NumberText{"0", "-5", "", "abc"} {
		_, err = svc.Project(ctx, scope, dto.ProjectRequest{TotalWeightKg: w})
		assert.ErrorIs(t, err, domain.ErrInvalidProjectionWeight, "peso %q", w)
	}
}

func TestProject_PiezasDelRequest(t *testing.T) {
	svc, _ := newService(t)
	out, err := svc.Project(context.Background(), scope, dto.ProjectRequest{
		TotalWeightKg: "50",
		Pieces: []dto.YieldParameterRequest{
			{PieceCode: "X", PieceName: "Lombo", PartName: "Lombo", ExpectedYieldPercent: "20"},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Pieces, 1)
	assert.Equal(t, "10.000", out.Pieces[0].WeightKg)
	assert.Equal(t, "0.00%", out.Pieces[0].MarginPercent)
}

func TestProject_PesoProyectadoCero(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	out, err := svc.Project(ctx, scope, dto.ProjectRequest{
		TotalWeightKg: "250",
		Pieces: []dto.YieldParameterRequest{
			{PieceCode: "A", PieceName: "Aparas", ExpectedYieldPercent: "0", SalePricePerKg: "10"},
			{PieceCode: "B", PieceName: "Osso", ExpectedYieldPercent: "0,00"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "250.000", out.TotalWeightKg)
	assert.NotNil(t, out.Pieces)
	assert.Empty(t, out.Pieces)

	// catálogo vacío
	out, err = svc.Project(ctx, scope, dto.ProjectRequest{TotalWeightKg: "100"})
	require.NoError(t, err)
	assert.Empty(t, out.Pieces)
}

func TestParts(t *testing.T) {
	svc, _ := newService(t)
	seedCatalog(t, svc)
	parts, err := svc.Parts(context.Background(), scope)
	require.NoError(t, err)
	assert.Equal(t, []string{"Traseiro", "Dianteiro"}, parts.Available)
	assert.NotEmpty(t, parts.Bovino)
	assert.NotEmpty(t, parts.Suino)
}

func TestExport_ConProyeccion(t *testing.T) {
	svc, reports := newService(t)
	seedCatalog(t, svc)
	ctx := context.Background()

	_, name, err := svc.XLSX(ctx, scope, &dto.ProjectRequest{TotalWeightKg: "100"})
	require.NoError(t, err)
	assert.Regexp(t, `^rendimento_parametros_.*\.xlsx$`, name)
	require.NotNil(t, reports.report.Projection)
	assert.Len(t, reports.report.Parameters, 2)

	data, _, err := svc.PDF(ctx, scope, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Nil(t, reports.report.Projection)
}
