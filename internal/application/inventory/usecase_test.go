package inventory_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/inventory"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/internal/infrastructure/memory"
)

var (
	scopeA = repository.Scope{CompanyID: "c1", UserID: "u1"}
	scopeB = repository.Scope{CompanyID: "c1", UserID: "u2"}
)

// stubReports devuelve bytes fijos y las filas configuradas como planilla leída.
type stubReports struct {
	lastHeader ports.ReportHeader
	rows       []dto.InventoryItemRequest
	fail       bool
}

func (s *stubReports) InventoryPDF(_ context.Context, h ports.ReportHeader, _ *dto.InventoryCountResponse) ([]byte, error) {
	s.lastHeader = h
	if s.fail {
		return nil, errors.New("render")
	}
	return []byte("%PDF"), nil
}
func (s *stubReports) InventoryXLSX(*dto.InventoryCountResponse) ([]byte, error) {
	return []byte("PK"), nil
}
func (s *stubReports) InventoryTemplateXLSX() ([]byte, error) { return []byte("PK"), nil }
func (s *stubReports) ReadInventoryItems(io.Reader) ([]dto.InventoryItemRequest, error) {
	if s.fail {
		return nil, errors.New("zip: not a valid zip file")
	}
	return s.rows, nil
}

func newUseCase(t *testing.T) (*inventory.CountUseCase, *stubReports) {
	t.Helper()
	store := memory.NewStore()
	reports := &stubReports{}
	return inventory.NewCountUseCase(store.InventoryCounts(), store.Companies(), reports, reports, nil), reports
}

func sampleItems() []dto.InventoryItemRequest {
	return []dto.InventoryItemRequest{
		{Code: "P001", Name: "Picanha", Unit: "kg", BodyPart: "traseiro", Quantity: "10,5",
			OpeningStock: "100", Purchases: "50", OtherEntries: "10", Sales: "80", OtherExits: "5",
			CountedStock: "72", AverageUnitCost: "55,90"},
		{Code: "A002", Name: "Alcatra", Unit: "un", Quantity: "5",
			OpeningStock: "50", Purchases: "20", OtherEntries: "0", Sales: "40", OtherExits: "2",
			CountedStock: "28", AverageUnitCost: "42.50"},
	}
}

func TestAnalyze_PlanilhaModelo(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.Analyze(dto.InventoryAnalysisRequest{Items: sampleItems()})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	p := out.Items[0]
	assert.Equal(t, "10.500", p.Quantity)
	assert.Equal(t, "75.00", p.CalculatedStock)
	assert.Equal(t, "-3.00", p.Divergence)
	assert.Equal(t, "-167.70", p.DivergenceValue)
	assert.Equal(t, "4.00", p.ShrinkagePercent)
	assert.Equal(t, "quebra_acima", p.Status)
	assert.Equal(t, "Atenção! Quebra de 4.00% acima do aceitável.", p.Message)

	assert.Equal(t, "Parabéns! Quebra de 0.00% dentro do aceitável.", out.Items[1].Message)

	assert.Equal(t, 2, out.Summary.Items)
	assert.Equal(t, "3.00", out.Summary.ShrinkageQty)
	assert.Equal(t, "167.70", out.Summary.ShrinkageValue)
	assert.Equal(t, "0.00", out.Summary.SurplusValue)
	assert.Equal(t, "-167.70", out.Summary.NetValue)
}

func TestAnalyze_SinItems(t *testing.T) {
	uc, _ := newUseCase(t)
	out, err := uc.Analyze(dto.InventoryAnalysisRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, "0.00", out.Summary.NetValue)
}

func TestBuildItems_Validaciones(t *testing.T) {
	cases := []struct {
		name  string
		items []dto.InventoryItemRequest
		want  string
	}{
		{"sin código", []dto.InventoryItemRequest{{Name: "Picanha"}}, "Item 1"},
		{"sin nombre", []dto.InventoryItemRequest{{Code: "P1"}}, "Item 1"},
		{"código repetido", []dto.InventoryItemRequest{{Code: "P1", Name: "a"}, {Code: " p1 ", Name: "b"}}, "Item 2"},
		{"texto no numérico", []dto.InventoryItemRequest{{Code: "P1", Name: "a", Sales: "abc"}}, "vendas"},
		{"negativo", []dto.InventoryItemRequest{{Code: "P1", Name: "a", CountedStock: "-1"}}, "estoque físico contado"},
		{"costo negativo", []dto.InventoryItemRequest{{Code: "P1", Name: "a", AverageUnitCost: "-2"}}, "custo médio"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := inventory.BuildItems(tc.items)
			require.ErrorIs(t, err, domain.ErrInvalidInventoryItem)
			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Contains(t, ve.Message, tc.want)
		})
	}
}

func TestBuildItems_VaciosValenCeroYUnidadKg(t *testing.T) {
	items, err := inventory.BuildItems([]dto.InventoryItemRequest{{Code: "X", Name: "Cupim", CountedStock: "4"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "kg", items[0].Unit)
	assert.True(t, items[0].OpeningStock.IsZero())
	assert.Equal(t, "4", items[0].Divergence.String())
	assert.Equal(t, "-100", items[0].ShrinkagePercent.String())
	assert.Equal(t, "sobra", items[0].Status)
}

func TestBuildItems_CustoMedioPonderado(t *testing.T) {
	items, err := inventory.BuildItems([]dto.InventoryItemRequest{{
		Code: "P1", Name: "Picanha", OpeningStock: "100", Purchases: "50", Sales: "10", CountedStock: "130",
		OpeningUnitCost: "10", PurchaseUnitCost: "16",
	}})
	require.NoError(t, err)
	// (100×10 + 50×16) / 150 = 12
	assert.Equal(t, "12", items[0].AverageUnitCost.String())
	assert.Equal(t, "-120", items[0].DivergenceValue.String())

	// el custo médio informado tiene prioridad
	items, err = inventory.BuildItems([]dto.InventoryItemRequest{{
		Code: "P1", Name: "Picanha", OpeningStock: "100", AverageUnitCost: "20", OpeningUnitCost: "10",
	}})
	require.NoError(t, err)
	assert.Equal(t, "20", items[0].AverageUnitCost.String())
}

func TestCRUD_ScopeYListado(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	created, err := uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: " Fechamento ", Notes: "mensal", Items: sampleItems()})
	require.NoError(t, err)
	assert.Equal(t, "Fechamento", created.Name)
	assert.False(t, created.Date.IsZero())

	_, err = uc.Get(ctx, scopeB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := uc.Get(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "-167.70", got.Result.Summary.NetValue)
	assert.Equal(t, "Atenção! Quebra de 4.00% acima do aceitável.", got.Result.Items[0].Message)

	items := sampleItems()
	items[0].CountedStock = "75"
	updated, err := uc.Update(ctx, scopeA, created.ID, dto.InventoryCountRequest{Name: "Fechamento", Items: items})
	require.NoError(t, err)
	assert.Equal(t, "0.00", updated.Result.Summary.NetValue)

	_, err = uc.Update(ctx, scopeB, created.ID, dto.InventoryCountRequest{Name: "x", Items: items})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(ctx, scopeA, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Items[0].Items)
	assert.Equal(t, 20, list.Page.Limit)

	list, err = uc.List(ctx, scopeB, dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	require.ErrorIs(t, uc.Delete(ctx, scopeB, created.ID), domain.ErrNotFound)
	require.NoError(t, uc.Delete(ctx, scopeA, created.ID))
	_, err = uc.Get(ctx, scopeA, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	uc, _ := newUseCase(t)
	ctx := context.Background()

	_, err := uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: "  ", Items: sampleItems()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: "Vazio"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: "Ruim", Items: []dto.InventoryItemRequest{{Code: "A"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInventoryItem)
}

func TestImport_CombinaCodigosYAplicaDefaults(t *testing.T) {
	uc, reports := newUseCase(t)
	reports.rows = []dto.InventoryItemRequest{
		{Code: "P001", Name: "Picanha", CountedStock: "70"},
		{Code: "p001", CountedStock: "72"},
		{Code: "N9"},
	}
	out, err := uc.Import(strings.NewReader("xlsx"))
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.Equal(t, dto.NumberText("72"), out.Items[0].CountedStock)
	assert.Equal(t, "kg", out.Items[0].Unit)
	assert.Equal(t, "Novo Item", out.Items[1].Name)
}

func TestImport_PlanilhaInvalidaOVacia(t *testing.T) {
	uc, reports := newUseCase(t)
	_, err := uc.Import(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	reports.fail = true
	_, err = uc.Import(strings.NewReader("x"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestImportInto_ReemplazaCeldasInformadas(t *testing.T) {
	uc, reports := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: "Maio", Items: sampleItems()})
	require.NoError(t, err)

	reports.rows = []dto.InventoryItemRequest{
		{Code: " p001 ", CountedStock: "75", AverageUnitCost: ""},
		{Code: "F003", Name: "Fraldinha", OpeningStock: "10", CountedStock: "12", AverageUnitCost: "30"},
	}
	out, err := uc.ImportInto(ctx, scopeA, created.ID, strings.NewReader("xlsx"))
	require.NoError(t, err)
	require.Len(t, out.Result.Items, 3)

	p := out.Result.Items[0]
	assert.Equal(t, "P001", p.Code)
	assert.Equal(t, "Picanha", p.Name)
	assert.Equal(t, "55.90", p.AverageUnitCost)
	assert.Equal(t, "0.00", p.Divergence)

	f := out.Result.Items[2]
	assert.Equal(t, "F003", f.Code)
	assert.Equal(t, "2.00", f.Divergence)
	assert.Equal(t, "60.00", f.DivergenceValue)
	assert.Equal(t, "sobra", f.Status)

	got, err := uc.Get(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.Len(t, got.Result.Items, 3)

	_, err = uc.ImportInto(ctx, scopeB, created.ID, strings.NewReader("xlsx"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReportes_PDFYXLSX(t *testing.T) {
	uc, reports := newUseCase(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, scopeA, dto.InventoryCountRequest{Name: "Fechamento Maio", Items: sampleItems()})
	require.NoError(t, err)

	data, name, err := uc.PDF(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.True(t, strings.HasPrefix(name, "inventario_Fechamento_Maio"))
	assert.True(t, strings.HasSuffix(name, ".pdf"))
	assert.Equal(t, "Análise de Quebras - Fechamento Maio", reports.lastHeader.Title)

	_, name, err = uc.XLSX(ctx, scopeA, created.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".xlsx"))

	_, name, err = uc.Template()
	require.NoError(t, err)
	assert.Equal(t, "modelo_inventario.xlsx", name)

	_, _, err = uc.PDF(ctx, scopeB, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	reports.fail = true
	_, _, err = uc.PDF(ctx, scopeA, created.ID)
	assert.Error(t, err)
}

func TestMergeRows_SinCodigoSeIgnora(t *testing.T) {
	out := inventory.MergeRows(
		[]dto.InventoryItemRequest{{Code: "A", Name: "Acém", Unit: "kg", Sales: "3"}},
		[]dto.InventoryItemRequest{{Code: "  ", Name: "nada"}, {Code: "a", Name: "Acém novo", Unit: " "}},
	)
	require.Len(t, out, 1)
	assert.Equal(t, "Acém novo", out[0].Name)
	assert.Equal(t, "kg", out[0].Unit)
	assert.Equal(t, dto.NumberText("3"), out[0].Sales)
}
