package desossa

import (
	"math"

	"github.com/jhoicas/desossa-api/internal/domain"
)

// Field campo editable de un SimulationItem.
type Field string

const (
	FieldTargetMargin     Field = "target_margin"
	FieldOfferPrice       Field = "offer_price"
	FieldWeight           Field = "weight"
	FieldCurrentCost      Field = "current_cost"
	FieldCurrentSalePrice Field = "current_sale_price"
)

// SimulationItem ítem de la simulación de precios.
// TargetMarginPercent y OfferPricePerKg son excluyentes: a lo sumo uno es no nil.
type SimulationItem struct {
	Code             string
	Name             string
	WeightKg         float64
	CurrentCost      float64 // costo por kg
	CurrentSalePrice float64

	TargetMarginPercent *float64
	OfferPricePerKg     *float64

	NewSalePrice     *float64
	NewTotalRevenue  float64
	NewAllocatedCost float64
	NewMarginPercent float64
	MarkupPercent    float64 // +Inf cuando el costo es <= 0
}

// HasInfiniteMarkup indica el centinela "inf" (costo <= 0).
func (it SimulationItem) HasInfiniteMarkup() bool { return math.IsInf(it.MarkupPercent, 1) }

// Simulate aplica el cambio de un campo y recalcula solo lo que depende de él.
// En error devuelve el ítem original sin cambios.
func Simulate(item SimulationItem, field Field, value float64) (SimulationItem, error) {
	if !finite(value) {
		return item, domain.ErrInvalidSimulationField
	}
	out := item
	switch field {
	case FieldTargetMargin:
		if value < 0 || value >= 100 {
			return item, domain.ErrInvalidMargin
		}
		m := value
		out.TargetMarginPercent = &m
		out.OfferPricePerKg = nil
		out.applyPrice(out.CurrentCost / (1 - value/100))
	case FieldOfferPrice:
		if value < 0 {
			return item, domain.ErrInvalidSimulationField
		}
		p := value
		out.OfferPricePerKg = &p
		out.TargetMarginPercent = nil
		out.applyPrice(value)
	case FieldWeight:
		if value < 0 {
			return item, domain.ErrInvalidSimulationField
		}
		out.WeightKg = value
		if out.NewSalePrice != nil {
			out.applyWeight()
		}
	case FieldCurrentCost:
		out.CurrentCost = value
	case FieldCurrentSalePrice:
		out.CurrentSalePrice = value
	default:
		return item, domain.ErrInvalidSimulationField
	}
	return out, nil
}

// ClearDriver borra el margen objetivo o el precio de oferta sin tocar los derivados.
func ClearDriver(item SimulationItem, field Field) (SimulationItem, error) {
	switch field {
	case FieldTargetMargin:
		item.TargetMarginPercent = nil
	case FieldOfferPrice:
		item.OfferPricePerKg = nil
	default:
		return item, domain.ErrInvalidSimulationField
	}
	return item, nil
}

// SetText asigna campos de texto (código o nombre); no hay recálculo.
func (it SimulationItem) SetText(code, name string) SimulationItem {
	it.Code = code
	it.Name = name
	return it
}

func (it *SimulationItem) applyPrice(price float64) {
	p := price
	it.NewSalePrice = &p
	it.MarkupPercent = markup(price, it.CurrentCost)
	it.NewMarginPercent = 0
	if price > 0 {
		it.NewMarginPercent = (price - it.CurrentCost) / price * 100
	}
	it.applyWeight()
}

func markup(price, cost float64) float64 {
	if cost <= 0 {
		return math.Inf(1)
	}
	return (price - cost) / cost * 100
}

// applyWeight recalcula receita y costo proyectados con el precio ya definido.
func (it *SimulationItem) applyWeight() {
	if it.WeightKg <= 0 {
		it.NewTotalRevenue = 0
		it.NewAllocatedCost = 0
		return
	}
	it.NewTotalRevenue = *it.NewSalePrice * it.WeightKg
	it.NewAllocatedCost = it.CurrentCost * it.WeightKg
}

// CurrentMarginPercent margen actual sobre el precio; ok=false si el precio es <= 0.
func CurrentMarginPercent(cost, salePrice float64) (float64, bool) {
	if salePrice <= 0 {
		return 0, false
	}
	return (salePrice - cost) / salePrice * 100, true
}

// CurrentTotalSale venta total al precio actual; ok=false si el peso es <= 0.
func CurrentTotalSale(salePrice, weightKg float64) (float64, bool) {
	if weightKg <= 0 {
		return 0, false
	}
	return salePrice * weightKg, true
}

// DashboardResult margen de la cartera ponderado por receita.
type DashboardResult struct {
	TotalRevenue  float64
	TotalCost     float64
	TotalProfit   float64
	MarginPercent float64
	ItemsAnalyzed int
}

// Dashboard agrega solo los ítems con receita y costo proyectados positivos.
// El margen es lucro/receita del conjunto, no el promedio de márgenes.
func Dashboard(items []SimulationItem) DashboardResult {
	var d DashboardResult
	for _, it := range items {
		if it.NewTotalRevenue > 0 && it.NewAllocatedCost > 0 {
			d.TotalRevenue += it.NewTotalRevenue
			d.TotalCost += it.NewAllocatedCost
			d.ItemsAnalyzed++
		}
	}
	d.TotalProfit = d.TotalRevenue - d.TotalCost
	if d.TotalRevenue > 0 {
		d.MarginPercent = d.TotalProfit / d.TotalRevenue * 100
	}
	return d
}

// SeedFromBreakdown convierte los cortes de una desossa en ítems de simulación.
// Los descartes no tienen precio y quedan fuera.
func SeedFromBreakdown(res *BatchResult) []SimulationItem {
	if res == nil {
		return nil
	}
	items := make([]SimulationItem, 0, len(res.Cuts))
	for _, c := range res.Cuts {
		if c.IsDiscard() {
			continue
		}
		price := c.EffectivePricePerKg
		items = append(items, SimulationItem{
			Code:             c.Code,
			Name:             c.Name,
			WeightKg:         c.WeightKg,
			CurrentCost:      c.AllocatedCostPerKg,
			CurrentSalePrice: price,
			NewSalePrice:     &price,
			NewTotalRevenue:  c.SaleValue,
			NewAllocatedCost: c.AllocatedCost,
			NewMarginPercent: c.MarginPercent,
			MarkupPercent:    markup(price, c.AllocatedCostPerKg),
		})
	}
	return items
}

// InvoiceLine línea de nota fiscal usada para sembrar una simulación.
type InvoiceLine struct {
	Code      string
	Name      string
	Quantity  float64
	UnitValue float64
}

// SeedFromInvoice crea ítems con costo = valor unitario y peso = cantidad.
func SeedFromInvoice(lines []InvoiceLine) []SimulationItem {
	items := make([]SimulationItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SimulationItem{
			Code:        l.Code,
			Name:        l.Name,
			WeightKg:    l.Quantity,
			CurrentCost: l.UnitValue,
		})
	}
	return items
}
