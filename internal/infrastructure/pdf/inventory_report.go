package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	appinventory "github.com/jhoicas/desossa-api/internal/application/inventory"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/domain/inventory"
)

var _ appinventory.ReportGenerator = (*MarotoPDFGenerator)(nil)

var statusLabels = map[string]string{
	inventory.StatusAboveAcceptable: "Quebra acima",
	inventory.StatusAcceptable:      "Quebra aceitável",
	inventory.StatusSurplus:         "Sobra",
}

// InventoryPDF reporte de inventario: resumen de quebras y sobras y tabla por ítem.
func (g *MarotoPDFGenerator) InventoryPDF(_ context.Context, h ports.ReportHeader, inv *dto.InventoryCountResponse) ([]byte, error) {
	m := g.newDocument(h)
	s := inv.Result.Summary

	m.AddRows(sectionTitle("RESUMO DAS QUEBRAS E SOBRAS"))
	m.AddRows(keyValueRow(
		"Inventário", inv.Name,
		"Data", inv.Date.Format("02/01/2006"),
	))
	m.AddRows(keyValueRow(
		"Quebra (qtd)", Quantity(s.ShrinkageQty),
		"Quebra (valor)", Money(s.ShrinkageValue),
	))
	m.AddRows(keyValueRow(
		"Sobra (qtd)", Quantity(s.SurplusQty),
		"Sobra (valor)", Money(s.SurplusValue),
	))
	m.AddRows(keyValueRow(
		"Itens analisados", fmt.Sprintf("%d", s.Items),
		"Resultado (qtd)", Quantity(s.NetQty),
	))
	m.AddRows(highlightRow("RESULTADO LÍQUIDO", Money(s.NetValue), isNegative(s.NetValue)))

	m.AddRows(sectionTitle("ANÁLISE POR ITEM"))
	itemRows := make([][]string, 0, len(inv.Result.Items))
	for _, it := range inv.Result.Items {
		itemRows = append(itemRows, []string{
			it.Code, it.Name, Quantity(it.CalculatedStock), Quantity(it.CountedStock),
			Quantity(it.Divergence), Money(it.DivergenceValue), Percent(it.ShrinkagePercent),
			nonEmpty(statusLabels[it.Status], it.Status),
		})
	}
	m.AddRows(table([]column{
		{"Código", 2, align.Left}, {"Item", 4, align.Left}, {"Calculado", 2, align.Right},
		{"Contado", 2, align.Right}, {"Divergência", 2, align.Right}, {"Divergência R$", 2, align.Right},
		{"Quebra/Sobra", 2, align.Right}, {"Análise", 4, align.Left},
	}, itemRows)...)

	if strings.TrimSpace(inv.Notes) != "" {
		m.AddRows(sectionTitle("OBSERVAÇÕES"))
		m.AddRows(text.NewRow(8, inv.Notes, props.Text{Size: 8, Color: colorGray, Top: 1}))
	}

	return g.finish(m)
}
