// Package pdf implementa los reportes imprimibles de desossa, simulación, rendimiento e inventario.
//
// Layout común de la página A4 (horizontal):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + CNPJ      │  Título + Fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DATOS DEL LOTE / DASHBOARD                                  │
//	│  TABLA de ítems                                              │
//	│  TOTALES / ANÁLISIS POR PARTE                                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: texto configurable                                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	cnpjfmt "github.com/jhoicas/desossa-api/pkg/cnpj"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 28, Blue: 19}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorLight   = &props.Color{Red: 230, Green: 230, Blue: 230}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLoss    = &props.Color{Red: 190, Green: 0, Blue: 0}
)

// gridSize columnas del grid; las tablas de cortes no caben en 12.
const gridSize = 20

var _ ports.ReportPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	footer string
}

// NewMarotoPDFGenerator construye el generador. footer va al pie de cada reporte.
func NewMarotoPDFGenerator(footer string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{footer: footer}
}

// BreakdownPDF reporte de desossa: lote, cortes, totales y análisis por parte.
func (g *MarotoPDFGenerator) BreakdownPDF(_ context.Context, h ports.ReportHeader, b *dto.BreakdownResponse) ([]byte, error) {
	m := g.newDocument(h)
	res := b.Result

	m.AddRows(sectionTitle("DADOS DO LOTE"))
	m.AddRows(keyValueRow(
		"Data", b.Date.Format("02/01/2006"),
		"Animal", nonEmpty(b.AnimalType, "-"),
	))
	m.AddRows(keyValueRow(
		"Peso inicial", Weight(res.InitialWeightKg),
		"Custo da carcaça", Money(res.CarcassCost),
	))

	m.AddRows(sectionTitle("CORTES"))
	cutRows := make([][]string, 0, len(res.Cuts))
	for _, c := range res.Cuts {
		cutRows = append(cutRows, []string{
			c.Name, c.Code, c.BodyPart, Weight(c.WeightKg), Money(c.SalePricePerKg),
			Money(c.SaleValue), Percent(c.SaleIndex), Money(c.AllocatedCost),
			Money(c.AllocatedCostPerKg), Percent(c.MarginPercent),
		})
	}
	m.AddRows(table([]column{
		{"Corte", 3, align.Left}, {"Código", 1, align.Left}, {"Parte", 2, align.Left},
		{"Peso", 2, align.Right}, {"Preço/kg", 2, align.Right}, {"Valor venda", 2, align.Right},
		{"Índice", 2, align.Right}, {"Custo rateado", 2, align.Right}, {"Custo/kg", 2, align.Right},
		{"Margem", 2, align.Right},
	}, cutRows)...)

	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionTitle("TOTAIS"))
	m.AddRows(keyValueRow(
		"Receita total", Money(res.TotalRevenue),
		"Custo rateado", Money(res.TotalAllocatedCost),
	))
	m.AddRows(keyValueRow(
		"Peso comercial", Weight(res.CommercialWeightKg),
		"Peso de descarte", Weight(res.DiscardWeightKg),
	))
	m.AddRows(keyValueRow(
		"Rendimento", Percent(res.TotalYieldPercent),
		"Custo do descarte", Money(res.TotalDiscardCost),
	))
	m.AddRows(highlightRow("LUCRO BRUTO ESTIMADO", Money(res.EstimatedGrossProfit), isNegative(res.EstimatedGrossProfit)))

	if len(res.Parts) > 0 {
		m.AddRows(sectionTitle("ANÁLISE POR PARTE"))
		partRows := make([][]string, 0, len(res.Parts))
		for _, p := range res.Parts {
			partRows = append(partRows, []string{
				p.Label, Weight(p.WeightKg), Money(p.Revenue), Money(p.AllocatedCost),
				Money(p.ProfitOrLoss), fmt.Sprintf("%d", p.Items),
			})
		}
		m.AddRows(table([]column{
			{"Parte", 5, align.Left}, {"Peso", 3, align.Right}, {"Receita", 3, align.Right},
			{"Custo", 3, align.Right}, {"Lucro/Prejuízo", 4, align.Right}, {"Itens", 2, align.Center},
		}, partRows)...)
	}

	if b.Notes != "" {
		m.AddRows(sectionTitle("OBSERVAÇÕES"))
		m.AddRows(text.NewRow(8, b.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}))
	}

	return g.finish(m)
}

// SimulationPDF reporte de simulación: ítems y dashboard de margen.
func (g *MarotoPDFGenerator) SimulationPDF(_ context.Context, h ports.ReportHeader, s *dto.SimulationResponse) ([]byte, error) {
	m := g.newDocument(h)

	m.AddRows(sectionTitle("MARGEM DA CARTEIRA"))
	m.AddRows(keyValueRow(
		"Receita total", Money(s.Dashboard.TotalRevenue),
		"Custo total", Money(s.Dashboard.TotalCost),
	))
	m.AddRows(keyValueRow(
		"Lucro total", Money(s.Dashboard.TotalProfit),
		"Itens analisados", fmt.Sprintf("%d", s.Dashboard.ItemsAnalyzed),
	))
	m.AddRows(highlightRow("MARGEM", Percent(s.Dashboard.MarginPercent), isNegative(s.Dashboard.TotalProfit)))

	m.AddRows(sectionTitle("ITENS"))
	itemRows := make([][]string, 0, len(s.Items))
	for _, it := range s.Items {
		itemRows = append(itemRows, []string{
			it.Code, it.Name, Weight(string(it.WeightKg)), Money(string(it.CurrentCost)),
			Money(string(it.CurrentSalePrice)), Percent(it.CurrentMarginPercent),
			Money(string(it.NewSalePrice)), Percent(string(it.NewMarginPercent)), Markup(it.Markup),
		})
	}
	m.AddRows(table([]column{
		{"Código", 2, align.Left}, {"Produto", 4, align.Left}, {"Peso", 2, align.Right},
		{"Custo/kg", 2, align.Right}, {"Preço atual", 2, align.Right}, {"Margem atual", 2, align.Right},
		{"Novo preço", 2, align.Right}, {"Nova margem", 2, align.Right}, {"Markup", 2, align.Right},
	}, itemRows)...)

	if s.Notes != "" {
		m.AddRows(sectionTitle("OBSERVAÇÕES"))
		m.AddRows(text.NewRow(8, s.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}))
	}

	return g.finish(m)
}

// YieldPDF reporte del catálogo de rendimiento y, si existe, de la proyección.
func (g *MarotoPDFGenerator) YieldPDF(_ context.Context, h ports.ReportHeader, r *ports.YieldReport) ([]byte, error) {
	m := g.newDocument(h)

	m.AddRows(sectionTitle("PARÂMETROS CADASTRADOS"))
	paramRows := make([][]string, 0, len(r.Parameters))
	for _, p := range r.Parameters {
		paramRows = append(paramRows, []string{
			p.PieceCode, p.PieceName, nonEmpty(p.PartName, p.PartCode),
			Percent(p.ExpectedYieldPercent), Money(p.SalePricePerKg),
		})
	}
	m.AddRows(table([]column{
		{"Código", 3, align.Left}, {"Peça", 6, align.Left}, {"Parte", 4, align.Left},
		{"Rendimento", 3, align.Right}, {"Preço/kg", 4, align.Right},
	}, paramRows)...)

	if p := r.Projection; p != nil {
		m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
		m.AddRows(sectionTitle("RESULTADOS DO CÁLCULO"))
		m.AddRows(keyValueRow(
			"Peso da carcaça", Weight(p.TotalWeightKg),
			"Parte", nonEmpty(p.Part, "todos"),
		))
		projRows := make([][]string, 0, len(p.Pieces))
		for _, pc := range p.Pieces {
			projRows = append(projRows, []string{
				pc.PieceName, pc.Part, Weight(pc.WeightKg), Money(pc.SalePricePerKg),
				Money(pc.PieceValue), Percent(pc.WeightShare), Percent(pc.RevenueShare), Percent(pc.MarginPercent),
			})
		}
		m.AddRows(table([]column{
			{"Peça", 5, align.Left}, {"Parte", 3, align.Left}, {"Peso", 2, align.Right},
			{"Preço/kg", 2, align.Right}, {"Valor", 2, align.Right}, {"% Peso", 2, align.Right},
			{"% Receita", 2, align.Right}, {"Margem", 2, align.Right},
		}, projRows)...)
	}

	return g.finish(m)
}

func (g *MarotoPDFGenerator) newDocument(h ports.ReportHeader) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(h.Title, true).
		WithAuthor(nonEmpty(h.CompanyName, "desossa"), true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(h))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	return m
}

func (g *MarotoPDFGenerator) finish(m core.Maroto) ([]byte, error) {
	if g.footer != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
		m.AddRows(text.NewRow(6, g.footer, props.Text{Size: 6.5, Color: colorGray, Top: 1, Align: align.Center}))
	}
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + CNPJ (izq) y título + fecha (der).
func headerRow(h ports.ReportHeader) core.Row {
	company := nonEmpty(h.CompanyName, "Desossa")
	cnpj := "-"
	if h.CNPJ != "" {
		cnpj = cnpjfmt.Format(h.CNPJ)
	}
	return row.New(18).Add(
		col.New(11).Add(
			text.New(company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ: "+cnpj, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(9).Add(
			text.New(h.Title, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido em: "+h.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

// keyValueRow dos pares etiqueta/valor en una fila.
func keyValueRow(k1, v1, k2, v2 string) core.Row {
	label := func(s string) core.Col {
		return col.New(4).Add(text.New(s+":", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}))
	}
	value := func(s string) core.Col {
		return col.New(6).Add(text.New(s, props.Text{Size: 8, Top: 1}))
	}
	return row.New(6).Add(label(k1), value(v1), label(k2), value(v2))
}

// highlightRow valor destacado a la derecha; en rojo si es pérdida.
func highlightRow(label, value string, loss bool) core.Row {
	c := colorPrimary
	if loss {
		c = colorLoss
	}
	return row.New(9).Add(
		col.New(10),
		col.New(5).Add(text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Top: 2, Right: 2,
		})),
		col.New(5).Add(text.New(value, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: c, Top: 2, Right: 1,
		})),
	)
}

type column struct {
	label string
	size  int
	align align.Type
}

// table cabecera con fondo y una fila por registro; filas alternas sombreadas.
func table(cols []column, data [][]string) []core.Row {
	header := make([]core.Col, 0, len(cols))
	for _, c := range cols {
		header = append(header, col.New(c.size).Add(text.New(c.label, props.Text{
			Style: fontstyle.Bold, Size: 7.5, Align: c.align, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	rows := []core.Row{row.New(8).Add(header...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})}

	for i, values := range data {
		cells := make([]core.Col, 0, len(cols))
		for j, c := range cols {
			v := ""
			if j < len(values) {
				v = values[j]
			}
			cells = append(cells, col.New(c.size).Add(text.New(v, props.Text{
				Size: 7.5, Align: c.align, Top: 1, Left: 1, Right: 1,
			})))
		}
		r := row.New(6).Add(cells...)
		if i%2 == 1 {
			r = r.WithStyle(&props.Cell{BackgroundColor: colorLight})
		}
		rows = append(rows, r)
	}
	if len(data) == 0 {
		rows = append(rows, text.NewRow(6, "Nenhum item.", props.Text{Size: 7.5, Color: colorGray, Top: 1, Align: align.Center}))
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}
