package inventory

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
)

// MergeRows combina filas de planilla con ítems existentes por código (sin distinguir mayúsculas).
// Celdas informadas reemplazan el valor; códigos nuevos se agregan con nombre "Novo Item" y unidad kg.
func MergeRows(base, rows []dto.InventoryItemRequest) []dto.InventoryItemRequest {
	out := make([]dto.InventoryItemRequest, 0, len(base)+len(rows))
	index := make(map[string]int, len(base)+len(rows))
	for _, it := range base {
		index[codeKey(it.Code)] = len(out)
		out = append(out, it)
	}
	for _, row := range rows {
		key := codeKey(row.Code)
		if key == "" {
			continue
		}
		if i, ok := index[key]; ok {
			overlay(&out[i], row)
			continue
		}
		row.Code = strings.TrimSpace(row.Code)
		if strings.TrimSpace(row.Name) == "" {
			row.Name = "Novo Item"
		}
		row.Unit = unitOrDefault(row.Unit)
		index[key] = len(out)
		out = append(out, row)
	}
	return out
}

func overlay(dst *dto.InventoryItemRequest, row dto.InventoryItemRequest) {
	text := func(d *string, v string) {
		if v = strings.TrimSpace(v); v != "" {
			*d = v
		}
	}
	num := func(d *dto.NumberText, v dto.NumberText) {
		if !v.IsEmpty() {
			*d = v
		}
	}
	text(&dst.Name, row.Name)
	text(&dst.Unit, row.Unit)
	text(&dst.BodyPart, row.BodyPart)
	num(&dst.Quantity, row.Quantity)
	num(&dst.OpeningStock, row.OpeningStock)
	num(&dst.Purchases, row.Purchases)
	num(&dst.OtherEntries, row.OtherEntries)
	num(&dst.Sales, row.Sales)
	num(&dst.OtherExits, row.OtherExits)
	num(&dst.CountedStock, row.CountedStock)
	num(&dst.AverageUnitCost, row.AverageUnitCost)
	num(&dst.OpeningUnitCost, row.OpeningUnitCost)
	num(&dst.PurchaseUnitCost, row.PurchaseUnitCost)
}

func requestsFromItems(items []entity.InventoryItem) []dto.InventoryItemRequest {
	out := make([]dto.InventoryItemRequest, 0, len(items))
	text := func(d decimal.Decimal) dto.NumberText { return dto.NumberText(d.String()) }
	for _, it := range items {
		out = append(out, dto.InventoryItemRequest{
			Code:            it.Code,
			Name:            it.Name,
			Unit:            it.Unit,
			BodyPart:        it.BodyPart,
			Quantity:        text(it.Quantity),
			OpeningStock:    text(it.OpeningStock),
			Purchases:       text(it.Purchases),
			OtherEntries:    text(it.OtherEntries),
			Sales:           text(it.Sales),
			OtherExits:      text(it.OtherExits),
			CountedStock:    text(it.CountedStock),
			AverageUnitCost: text(it.AverageUnitCost),
		})
	}
	return out
}

func codeKey(code string) string { return strings.ToLower(strings.TrimSpace(code)) }
