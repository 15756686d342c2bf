// Package spreadsheet exporta desossas, simulaciones, el catálogo de rendimiento e inventarios a xlsx
// e importa cortes e ítems de inventario desde una planilla.
package spreadsheet

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
)

// Nombres de hoja.
const (
	SheetCuts        = "Cortes"
	SheetSummary     = "Resumo"
	SheetSimulation  = "Simulação de Preços"
	SheetParameters  = "Parâmetros Cadastrados"
	SheetProjection  = "Resultados do Cálculo"
	defaultSheetName = "Sheet1"
)

var _ ports.SpreadsheetCodec = (*ExcelCodec)(nil)

// ExcelCodec implementa ports.SpreadsheetCodec con excelize.
type ExcelCodec struct{}

// NewExcelCodec construye el codec.
func NewExcelCodec() *ExcelCodec { return &ExcelCodec{} }

// BreakdownXLSX hoja "Cortes" con los derivados y hoja "Resumo" con los totales del lote.
func (c *ExcelCodec) BreakdownXLSX(b *dto.BreakdownResponse) ([]byte, error) {
	w, err := newWorkbook(SheetCuts)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	res := b.Result
	rows := make([][]any, 0, len(res.Cuts))
	for _, cut := range res.Cuts {
		rows = append(rows, []any{
			cut.Name, cut.Code, cut.BodyPart, num(cut.WeightKg), num(cut.SalePricePerKg),
			num(cut.SaleValue), num(cut.SaleIndex), num(cut.AllocatedCost),
			num(cut.AllocatedCostPerKg), num(cut.MarginPercent),
		})
	}
	if err := w.table(SheetCuts, []string{
		"Nome", "Código", "Parte", "Peso (kg)", "Preço/kg", "Valor de venda",
		"Índice de venda (%)", "Custo rateado", "Custo rateado/kg", "Margem (%)",
	}, rows); err != nil {
		return nil, err
	}

	if err := w.addSheet(SheetSummary); err != nil {
		return nil, err
	}
	summary := [][]any{
		{"Nome", b.Name},
		{"Data", b.Date.Format("02/01/2006")},
		{"Animal", b.AnimalType},
		{"Peso inicial (kg)", num(res.InitialWeightKg)},
		{"Custo da carcaça", num(res.CarcassCost)},
		{"Receita total", num(res.TotalRevenue)},
		{"Custo rateado total", num(res.TotalAllocatedCost)},
		{"Peso comercial (kg)", num(res.CommercialWeightKg)},
		{"Peso de descarte (kg)", num(res.DiscardWeightKg)},
		{"Rendimento (%)", num(res.TotalYieldPercent)},
		{"Lucro bruto estimado", num(res.EstimatedGrossProfit)},
		{"Custo do descarte", num(res.TotalDiscardCost)},
	}
	if err := w.table(SheetSummary, []string{"Indicador", "Valor"}, summary); err != nil {
		return nil, err
	}
	if len(res.Parts) > 0 {
		start := len(summary) + 3
		parts := make([][]any, 0, len(res.Parts))
		for _, p := range res.Parts {
			parts = append(parts, []any{p.Label, num(p.WeightKg), num(p.Revenue), num(p.AllocatedCost), num(p.ProfitOrLoss), p.Items})
		}
		if err := w.tableAt(SheetSummary, start, []string{
			"Parte", "Peso (kg)", "Receita", "Custo rateado", "Lucro/Prejuízo", "Itens",
		}, parts); err != nil {
			return nil, err
		}
	}
	return w.bytes()
}

// SimulationXLSX hoja "Simulação de Preços" con cabecera en negrita sobre gris.
func (c *ExcelCodec) SimulationXLSX(s *dto.SimulationResponse) ([]byte, error) {
	w, err := newWorkbook(SheetSimulation)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	rows := make([][]any, 0, len(s.Items)+1)
	for _, it := range s.Items {
		rows = append(rows, []any{
			it.Code, it.Name, num(string(it.WeightKg)), num(string(it.CurrentCost)),
			num(string(it.CurrentSalePrice)), num(it.CurrentMarginPercent),
			num(string(it.TargetMarginPercent)), num(string(it.OfferPricePerKg)),
			num(string(it.NewSalePrice)), num(string(it.NewTotalRevenue)),
			num(string(it.NewAllocatedCost)), num(string(it.NewMarginPercent)), num(it.Markup),
		})
	}
	rows = append(rows, []any{
		"", "TOTAL", "", "", "", "", "", "", "",
		num(s.Dashboard.TotalRevenue), num(s.Dashboard.TotalCost), num(s.Dashboard.MarginPercent), "",
	})
	if err := w.table(SheetSimulation, []string{
		"Código", "Produto", "Peso (kg)", "Custo/kg", "Preço atual", "Margem atual (%)",
		"Margem alvo (%)", "Preço oferta/kg", "Novo preço", "Nova receita", "Novo custo",
		"Nova margem (%)", "Markup (%)",
	}, rows); err != nil {
		return nil, err
	}
	return w.bytes()
}

// YieldXLSX hoja "Parâmetros Cadastrados" y, si hay proyección, "Resultados do Cálculo".
func (c *ExcelCodec) YieldXLSX(r *ports.YieldReport) ([]byte, error) {
	w, err := newWorkbook(SheetParameters)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	rows := make([][]any, 0, len(r.Parameters))
	for _, p := range r.Parameters {
		rows = append(rows, []any{
			p.PieceCode, p.PieceName, p.PartCode, p.PartName,
			num(p.ExpectedYieldPercent), num(p.SalePricePerKg), p.Description,
		})
	}
	if err := w.table(SheetParameters, []string{
		"Código", "Peça", "Código da parte", "Parte", "Rendimento esperado (%)", "Preço/kg", "Descrição",
	}, rows); err != nil {
		return nil, err
	}

	if p := r.Projection; p != nil {
		if err := w.addSheet(SheetProjection); err != nil {
			return nil, err
		}
		proj := make([][]any, 0, len(p.Pieces))
		for _, pc := range p.Pieces {
			proj = append(proj, []any{
				pc.PieceCode, pc.PieceName, pc.Part, num(pc.WeightKg), num(pc.SalePricePerKg),
				num(pc.PieceValue), num(pc.WeightShare), num(pc.RevenueShare), num(pc.CostPerKg), num(pc.MarginPercent),
			})
		}
		if err := w.table(SheetProjection, []string{
			"Código", "Peça", "Parte", "Peso (kg)", "Preço/kg", "Valor",
			"% do peso", "% da receita", "Custo/kg", "Margem (%)",
		}, proj); err != nil {
			return nil, err
		}
	}
	return w.bytes()
}

// ReadCuts lee la primera hoja: cabecera y filas nome, código, peso, preço/kg, parte.
// Las filas vacías se saltan; los números quedan como texto y se validan en el calculador.
func (c *ExcelCodec) ReadCuts(r io.Reader) ([]dto.CutInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir planilla: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx: planilla sin hojas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: leer hoja %s: %w", sheets[0], err)
	}

	cuts := make([]dto.CutInput, 0, len(rows))
	for i, row := range rows {
		if i == 0 || blank(row) {
			continue
		}
		cuts = append(cuts, dto.CutInput{
			Name:           cell(row, 0),
			Code:           cell(row, 1),
			WeightKg:       dto.NumberText(cell(row, 2)),
			SalePricePerKg: dto.NumberText(cell(row, 3)),
			BodyPart:       cell(row, 4),
		})
	}
	return cuts, nil
}

// ── workbook ──────────────────────────────────────────────────────────────────

type workbook struct {
	f      *excelize.File
	header int
}

func newWorkbook(first string) (*workbook, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(defaultSheetName, first); err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9D9D9"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	return &workbook{f: f, header: style}, nil
}

func (w *workbook) addSheet(name string) error {
	if _, err := w.f.NewSheet(name); err != nil {
		return fmt.Errorf("xlsx: crear hoja %s: %w", name, err)
	}
	return nil
}

func (w *workbook) table(sheet string, headers []string, rows [][]any) error {
	return w.tableAt(sheet, 1, headers, rows)
}

// tableAt escribe cabecera en la fila start y los registros debajo.
func (w *workbook) tableAt(sheet string, start int, headers []string, rows [][]any) error {
	head := make([]any, len(headers))
	for i, h := range headers {
		head[i] = h
	}
	first, err := excelize.CoordinatesToCellName(1, start)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), start)
	if err != nil {
		return err
	}
	if err := w.f.SetSheetRow(sheet, first, &head); err != nil {
		return fmt.Errorf("xlsx: cabecera %s: %w", sheet, err)
	}
	if err := w.f.SetCellStyle(sheet, first, last, w.header); err != nil {
		return fmt.Errorf("xlsx: estilo %s: %w", sheet, err)
	}
	for i, row := range rows {
		axis, err := excelize.CoordinatesToCellName(1, start+1+i)
		if err != nil {
			return err
		}
		r := row
		if err := w.f.SetSheetRow(sheet, axis, &r); err != nil {
			return fmt.Errorf("xlsx: fila %d de %s: %w", i+1, sheet, err)
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(headers))
	return w.f.SetColWidth(sheet, "A", lastCol, 16)
}

func (w *workbook) bytes() ([]byte, error) {
	w.f.SetActiveSheet(0)
	buf, err := w.f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// num escribe como número lo que se pueda parsear ("12.50", "33.33%"); el resto como texto.
func num(s string) any {
	t := strings.TrimSuffix(strings.TrimSpace(s), "%")
	if t == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil && t != "inf" && t != "-inf" {
		return f
	}
	return s
}

func cell(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
