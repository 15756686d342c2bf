package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	appinventory "github.com/jhoicas/desossa-api/internal/application/inventory"
)

// Hojas del inventario.
const (
	SheetInventory         = "Análise de Quebras"
	SheetInventoryTemplate = "ModeloUnificadoInventario"
)

var _ appinventory.SheetCodec = (*ExcelCodec)(nil)

// InventoryTemplateHeaders cabecera de la planilla modelo, en el orden de importación.
var InventoryTemplateHeaders = []string{
	"codigo_produto", "nome_produto", "quantidade_estoque", "unidade", "parte_boi",
	"estoque_inicial", "compras", "outras_entradas", "vendas", "outras_saidas",
	"estoque_fisico_contado", "custo_medio_unitario",
}

// columnas aceptadas al importar: las del modelo y las de la planilla exportada.
var inventoryColumns = map[string]string{
	"codigo_produto":            "code",
	"código":                    "code",
	"nome_produto":              "name",
	"nome do item":              "name",
	"quantidade_estoque":        "quantity",
	"quantidade atual":          "quantity",
	"unidade":                   "unit",
	"parte_boi":                 "body_part",
	"parte do boi":              "body_part",
	"estoque_inicial":           "opening",
	"estoque inicial":           "opening",
	"compras":                   "purchases",
	"outras_entradas":           "other_entries",
	"outras entradas":           "other_entries",
	"vendas":                    "sales",
	"outras_saidas":             "other_exits",
	"outras saídas":             "other_exits",
	"estoque_fisico_contado":    "counted",
	"estoque físico contado":    "counted",
	"custo_medio_unitario":      "avg_cost",
	"custo médio unitário (r$)": "avg_cost",
	"custo_unitario_abertura":   "opening_cost",
	"custo_unitario_compra":     "purchase_cost",
}

// InventoryXLSX hoja "Análise de Quebras" con un ítem por fila y hoja "Resumo".
func (c *ExcelCodec) InventoryXLSX(inv *dto.InventoryCountResponse) ([]byte, error) {
	w, err := newWorkbook(SheetInventory)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	rows := make([][]any, 0, len(inv.Result.Items))
	for _, it := range inv.Result.Items {
		rows = append(rows, []any{
			it.Code, it.Name, num(it.Quantity), it.Unit, it.BodyPart,
			num(it.OpeningStock), num(it.Purchases), num(it.OtherEntries), num(it.Sales), num(it.OtherExits),
			num(it.CountedStock), num(it.AverageUnitCost),
			num(it.CalculatedStock), num(it.Divergence), num(it.DivergenceValue), num(it.ShrinkagePercent),
			it.Message,
		})
	}
	if err := w.table(SheetInventory, []string{
		"Código", "Nome do Item", "Quantidade Atual", "Unidade", "Parte do Boi",
		"Estoque Inicial", "Compras", "Outras Entradas", "Vendas", "Outras Saídas",
		"Estoque Físico Contado", "Custo Médio Unitário (R$)",
		"Estoque Calculado", "Divergência (Qtd)", "Divergência (R$)", "Percentual Quebra/Sobra (%)", "Análise",
	}, rows); err != nil {
		return nil, err
	}
	if err := w.f.SetColWidth(SheetInventory, "Q", "Q", 45); err != nil {
		return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
	}

	if err := w.addSheet(SheetSummary); err != nil {
		return nil, err
	}
	s := inv.Result.Summary
	if err := w.table(SheetSummary, []string{"Campo", "Valor"}, [][]any{
		{"Inventário", inv.Name},
		{"Data", inv.Date.Format("02/01/2006")},
		{"Itens", s.Items},
		{"Quebra (Qtd)", num(s.ShrinkageQty)},
		{"Quebra (R$)", num(s.ShrinkageValue)},
		{"Sobra (Qtd)", num(s.SurplusQty)},
		{"Sobra (R$)", num(s.SurplusValue)},
		{"Resultado líquido (Qtd)", num(s.NetQty)},
		{"Resultado líquido (R$)", num(s.NetValue)},
	}); err != nil {
		return nil, err
	}
	return w.bytes()
}

// InventoryTemplateXLSX planilla modelo con dos ítens de ejemplo.
func (c *ExcelCodec) InventoryTemplateXLSX() ([]byte, error) {
	w, err := newWorkbook(SheetInventoryTemplate)
	if err != nil {
		return nil, err
	}
	defer w.f.Close()

	if err := w.table(SheetInventoryTemplate, InventoryTemplateHeaders, [][]any{
		{"P001", "Picanha", 10.5, "kg", "traseiro", 100, 50, 10, 80, 5, 72, 55.90},
		{"A002", "Alcatra", 5, "un", "traseiro", 50, 20, 0, 40, 2, 28, 42.50},
	}); err != nil {
		return nil, err
	}
	return w.bytes()
}

// ReadInventoryItems lee la primera hoja ubicando las columnas por nombre de cabecera.
// Columnas desconocidas se ignoran; filas sin código se saltan.
func (c *ExcelCodec) ReadInventoryItems(r io.Reader) ([]dto.InventoryItemRequest, error) {
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
	if len(rows) == 0 {
		return nil, nil
	}

	index := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		if field, ok := inventoryColumns[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[field]; !dup {
				index[field] = i
			}
		}
	}
	if _, ok := index["code"]; !ok {
		return nil, nil
	}
	get := func(row []string, field string) string {
		i, ok := index[field]
		if !ok {
			return ""
		}
		return cell(row, i)
	}

	items := make([]dto.InventoryItemRequest, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) || get(row, "code") == "" {
			continue
		}
		items = append(items, dto.InventoryItemRequest{
			Code:             get(row, "code"),
			Name:             get(row, "name"),
			Unit:             get(row, "unit"),
			BodyPart:         get(row, "body_part"),
			Quantity:         dto.NumberText(get(row, "quantity")),
			OpeningStock:     dto.NumberText(get(row, "opening")),
			Purchases:        dto.NumberText(get(row, "purchases")),
			OtherEntries:     dto.NumberText(get(row, "other_entries")),
			Sales:            dto.NumberText(get(row, "sales")),
			OtherExits:       dto.NumberText(get(row, "other_exits")),
			CountedStock:     dto.NumberText(get(row, "counted")),
			AverageUnitCost:  dto.NumberText(get(row, "avg_cost")),
			OpeningUnitCost:  dto.NumberText(get(row, "opening_cost")),
			PurchaseUnitCost: dto.NumberText(get(row, "purchase_cost")),
		})
	}
	return items, nil
}
