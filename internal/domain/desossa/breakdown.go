// Package desossa contiene el motor de costeo de la desossa: rateio del costo de la
// carcaça por índice de venta, simulación de precios y proyección de rendimiento.
//
// Todas las funciones son puras: reciben valores ya parseados y devuelven valores
// nuevos, sin I/O ni estado compartido. Los porcentajes se calculan en float64 con
// precisión completa; el redondeo a 2 decimales ocurre solo al formatear la salida.
package desossa

import (
	"fmt"
	"math"

	"github.com/jhoicas/desossa-api/internal/domain"
)

// Cut corte resultante de la desossa (entrada del rateio).
type Cut struct {
	Name           string
	Code           string
	WeightKg       float64
	SalePricePerKg float64
	BodyPart       string
}

// IsDiscard indica si el corte es descarte.
func (c Cut) IsDiscard() bool { return c.BodyPart == PartDiscard }

// AllocatedCut corte con los campos derivados del rateio.
type AllocatedCut struct {
	Cut
	EffectivePricePerKg float64 // 0 en descarte, sin importar el precio digitado
	SaleValue           float64 // peso * precio efectivo
	SaleIndex           float64 // fracción de la receita total (0..1)
	AllocatedCost       float64
	AllocatedCostPerKg  float64
	MarginPercent       float64
}

// PartAggregate agregado por parte del animal.
type PartAggregate struct {
	Part          string
	Label         string
	WeightKg      float64
	Revenue       float64
	AllocatedCost float64
	ProfitOrLoss  float64
	Items         int
}

// BatchResult resultado completo de una desossa.
type BatchResult struct {
	InitialWeightKg      float64
	TotalCarcassCost     float64
	Cuts                 []AllocatedCut
	Parts                []PartAggregate
	CommercialWeightKg   float64
	DiscardWeightKg      float64
	TotalRevenue         float64
	TotalAllocatedCost   float64
	TotalYieldPercent    float64
	EstimatedGrossProfit float64
	TotalDiscardCost     float64
}

// Allocate reparte totalCarcassCost entre los cortes proporcionalmente a su valor de venta.
//
// Dos pasadas obligatorias: la primera obtiene la receita total (base del índice de venta),
// la segunda asigna costo, costo/kg y margen a cada corte. Valida todo antes de calcular;
// nunca devuelve resultados parciales.
func Allocate(cuts []Cut, initialWeightKg, totalCarcassCost float64) (*BatchResult, error) {
	if !finite(initialWeightKg) || initialWeightKg <= 0 || !finite(totalCarcassCost) || totalCarcassCost < 0 {
		return nil, domain.ErrInvalidBatchTotals
	}
	for i, c := range cuts {
		if err := validateCut(i, c); err != nil {
			return nil, err
		}
	}

	// Pasada 1: receita total de los cortes comercializables.
	var totalRevenue float64
	for _, c := range cuts {
		if !c.IsDiscard() {
			totalRevenue += c.WeightKg * c.SalePricePerKg
		}
	}
	if totalRevenue <= 0 {
		return nil, domain.ErrZeroOrNegativeRevenue
	}

	// Pasada 2: rateio por índice de venta.
	res := &BatchResult{
		InitialWeightKg:  initialWeightKg,
		TotalCarcassCost: totalCarcassCost,
		TotalRevenue:     totalRevenue,
		Cuts:             make([]AllocatedCut, 0, len(cuts)),
	}
	for _, c := range cuts {
		ac := allocateCut(c, totalRevenue, totalCarcassCost)
		if c.IsDiscard() {
			res.DiscardWeightKg += c.WeightKg
		} else {
			res.CommercialWeightKg += c.WeightKg
		}
		res.TotalAllocatedCost += ac.AllocatedCost
		res.Cuts = append(res.Cuts, ac)
	}

	res.TotalYieldPercent = res.CommercialWeightKg / initialWeightKg * 100
	// Residuo: lo que queda del costo de la carcaça tras el rateio (no se recalcula por corte).
	res.TotalDiscardCost = totalCarcassCost - res.TotalAllocatedCost
	res.EstimatedGrossProfit = totalRevenue - totalCarcassCost
	res.Parts = aggregateParts(res.Cuts)
	return res, nil
}

func validateCut(i int, c Cut) error {
	switch {
	case c.Name == "":
		return InvalidCutError(i, "nome obrigatório")
	case !finite(c.WeightKg) || c.WeightKg < 0:
		return InvalidCutError(i, "peso inválido")
	case !c.IsDiscard() && (!finite(c.SalePricePerKg) || c.SalePricePerKg < 0):
		return InvalidCutError(i, "preço de venda inválido")
	}
	return nil
}

// InvalidCutError error invalid-cut-fields que identifica el corte (índice base 0).
func InvalidCutError(i int, detail string) error {
	return domain.NewValidationError(domain.CodeInvalidCutFields,
		fmt.Sprintf("%s (corte %d: %s)", domain.ErrInvalidCutFields.Message, i+1, detail))
}

func allocateCut(c Cut, totalRevenue, totalCarcassCost float64) AllocatedCut {
	price := c.SalePricePerKg
	if c.IsDiscard() {
		price = 0
	}
	ac := AllocatedCut{Cut: c, EffectivePricePerKg: price}
	ac.SaleValue = c.WeightKg * price
	ac.SaleIndex = ac.SaleValue / totalRevenue
	if !c.IsDiscard() {
		ac.AllocatedCost = ac.SaleIndex * totalCarcassCost
	}
	if c.WeightKg > 0 {
		ac.AllocatedCostPerKg = ac.AllocatedCost / c.WeightKg
	}
	if price > 0 {
		ac.MarginPercent = (price - ac.AllocatedCostPerKg) / price * 100
	}
	return ac
}

// aggregateParts agrupa por parte en orden de primera aparición.
func aggregateParts(cuts []AllocatedCut) []PartAggregate {
	index := make(map[string]int)
	var parts []PartAggregate
	for _, c := range cuts {
		key := c.BodyPart
		if key == "" {
			key = PartUndefined
		}
		i, ok := index[key]
		if !ok {
			i = len(parts)
			index[key] = i
			parts = append(parts, PartAggregate{Part: key, Label: PartLabel(key)})
		}
		p := &parts[i]
		p.WeightKg += c.WeightKg
		p.Revenue += c.SaleValue
		p.AllocatedCost += c.AllocatedCost
		p.Items++
	}
	for i := range parts {
		parts[i].ProfitOrLoss = parts[i].Revenue - parts[i].AllocatedCost
	}
	return parts
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
