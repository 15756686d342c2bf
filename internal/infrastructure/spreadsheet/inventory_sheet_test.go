package spreadsheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/infrastructure/spreadsheet"
)

func TestInventoryTemplate_SeLeeDeVuelta(t *testing.T) {
	codec := spreadsheet.NewExcelCodec()
	data, err := codec.InventoryTemplateXLSX()
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{spreadsheet.SheetInventoryTemplate}, f.GetSheetList())
	rows, err := f.GetRows(spreadsheet.SheetInventoryTemplate)
	require.NoError(t, err)
	assert.Equal(t, spreadsheet.InventoryTemplateHeaders, rows[0])

	items, err := codec.ReadInventoryItems(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "P001", items[0].Code)
	assert.Equal(t, "Picanha", items[0].Name)
	assert.Equal(t, dto.NumberText("10.5"), items[0].Quantity)
	assert.Equal(t, "traseiro", items[0].BodyPart)
	assert.Equal(t, dto.NumberText("72"), items[0].CountedStock)
	assert.Equal(t, dto.NumberText("55.9"), items[0].AverageUnitCost)
	assert.Equal(t, "un", items[1].Unit)
	assert.Equal(t, dto.NumberText("0"), items[1].OtherEntries)
}

func TestReadInventoryItems_ColumnasPorNombre(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Estoque Físico Contado", "observação", "Código", "Nome do Item"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"12", "x", "C10", "Cupim"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"5", "sem código", "", "Fraldinha"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]any{"", "", "", ""}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items, err := spreadsheet.NewExcelCodec().ReadInventoryItems(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "C10", items[0].Code)
	assert.Equal(t, "Cupim", items[0].Name)
	assert.Equal(t, dto.NumberText("12"), items[0].CountedStock)
	assert.True(t, items[0].Sales.IsEmpty())
}

func TestReadInventoryItems_SinColumnaCodigo(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A1", &[]any{"nome", "peso"}))
	require.NoError(t, f.SetSheetRow(f.GetSheetName(0), "A2", &[]any{"Picanha", "10"}))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	items, err := spreadsheet.NewExcelCodec().ReadInventoryItems(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReadInventoryItems_ArchivoInvalido(t *testing.T) {
	_, err := spreadsheet.NewExcelCodec().ReadInventoryItems(bytes.NewReader([]byte("não é xlsx")))
	assert.Error(t, err)
}

func TestInventoryXLSX_AnaliseYResumo(t *testing.T) {
	inv := &dto.InventoryCountResponse{
		Name: "Inventário Maio",
		Date: time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Result: dto.InventoryAnalysisResult{
			Items: []dto.InventoryItemResult{{
				Code: "P001", Name: "Picanha", Quantity: "10.500", Unit: "kg", BodyPart: "traseiro",
				OpeningStock: "100.000", Purchases: "50.000", OtherEntries: "10.000", Sales: "80.000",
				OtherExits: "5.000", CountedStock: "72.000", AverageUnitCost: "55.90",
				CalculatedStock: "75.00", Divergence: "-3.00", DivergenceValue: "-167.70", ShrinkagePercent: "4.00",
				Status: "quebra_acima", Message: "Atenção! Quebra de 4.00% acima do aceitável.",
			}},
			Summary: dto.InventorySummary{
				Items: 1, ShrinkageQty: "3.00", ShrinkageValue: "167.70", SurplusQty: "0.00",
				SurplusValue: "0.00", NetQty: "-3.00", NetValue: "-167.70",
			},
		},
	}

	data, err := spreadsheet.NewExcelCodec().InventoryXLSX(inv)
	require.NoError(t, err)

	f := open(t, data)
	assert.Equal(t, []string{spreadsheet.SheetInventory, spreadsheet.SheetSummary}, f.GetSheetList())
	rows, err := f.GetRows(spreadsheet.SheetInventory)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Código", rows[0][0])
	assert.Equal(t, "Análise", rows[0][16])
	assert.Equal(t, "-167.7", rows[1][14])
	assert.Equal(t, "Atenção! Quebra de 4.00% acima do aceitável.", rows[1][16])

	v, err := f.GetCellValue(spreadsheet.SheetSummary, "B6")
	require.NoError(t, err)
	assert.Equal(t, "167.7", v)
	v, err = f.GetCellValue(spreadsheet.SheetSummary, "B3")
	require.NoError(t, err)
	assert.Equal(t, "31/05/2026", v)
}

// la planilla exportada se puede volver a importar.
func TestInventoryXLSX_Reimportable(t *testing.T) {
	codec := spreadsheet.NewExcelCodec()
	data, err := codec.InventoryXLSX(&dto.InventoryCountResponse{
		Name: "Inv",
		Result: dto.InventoryAnalysisResult{Items: []dto.InventoryItemResult{{
			Code: "A002", Name: "Alcatra", Unit: "un", Quantity: "5.000", OpeningStock: "50.000",
			CountedStock: "28.000", AverageUnitCost: "42.50",
		}}},
	})
	require.NoError(t, err)

	items, err := codec.ReadInventoryItems(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A002", items[0].Code)
	assert.Equal(t, dto.NumberText("50"), items[0].OpeningStock)
	assert.Equal(t, dto.NumberText("42.5"), items[0].AverageUnitCost)
}
