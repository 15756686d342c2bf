// Package inventory análisis del inventario físico: estoque calculado, divergencia y
// percentual de quebra/sobra por ítem, más el resumen financiero del inventario.
package inventory

import "github.com/shopspring/decimal"

// Estados de la análisis de un ítem.
const (
	StatusAboveAcceptable = "quebra_acima"
	StatusAcceptable      = "quebra_aceitavel"
	StatusSurplus         = "sobra"
)

var (
	// AcceptableShrinkagePercent quebra máxima aceptable (inclusive).
	AcceptableShrinkagePercent = decimal.NewFromInt(2)

	hundred      = decimal.NewFromInt(100)
	minusHundred = decimal.NewFromInt(-100)
)

// Movement movimentação de un ítem en el período del inventario.
type Movement struct {
	Opening         decimal.Decimal
	Purchases       decimal.Decimal
	OtherEntries    decimal.Decimal
	Sales           decimal.Decimal
	OtherExits      decimal.Decimal
	Counted         decimal.Decimal
	AverageUnitCost decimal.Decimal
}

// Analysis resultado de un ítem. Divergence negativa = quebra; positiva = sobra.
// ShrinkagePercent positivo = quebra, negativo = sobra.
type Analysis struct {
	CalculatedStock  decimal.Decimal
	Divergence       decimal.Decimal
	DivergenceValue  decimal.Decimal
	ShrinkagePercent decimal.Decimal
	Status           string
}

// Analyze calcula estoque = inicial + entradas + compras − vendas − saídas,
// divergencia = contado − calculado y el percentual de quebra sobre el calculado.
func Analyze(m Movement) Analysis {
	calc := m.Opening.Add(m.OtherEntries).Add(m.Purchases).Sub(m.Sales).Sub(m.OtherExits)
	div := m.Counted.Sub(calc)
	p := shrinkagePercent(calc, m.Counted)
	return Analysis{
		CalculatedStock:  calc,
		Divergence:       div,
		DivergenceValue:  div.Mul(m.AverageUnitCost),
		ShrinkagePercent: p,
		Status:           classify(p),
	}
}

func shrinkagePercent(calc, counted decimal.Decimal) decimal.Decimal {
	switch {
	case calc.IsPositive():
		return calc.Sub(counted).Div(calc).Mul(hundred)
	case counted.IsPositive():
		// sin estoque calculado, todo lo contado es sobra
		return minusHundred
	case calc.IsNegative() && counted.GreaterThan(calc):
		return minusHundred
	}
	return decimal.Zero
}

// classify usa el percentual sin redondear.
func classify(p decimal.Decimal) string {
	switch {
	case p.GreaterThan(AcceptableShrinkagePercent):
		return StatusAboveAcceptable
	case !p.IsNegative():
		return StatusAcceptable
	}
	return StatusSurplus
}

// Rounded redondea los valores a 2 decimales; el estado se conserva.
func (a Analysis) Rounded() Analysis {
	a.CalculatedStock = a.CalculatedStock.Round(2)
	a.Divergence = a.Divergence.Round(2)
	a.DivergenceValue = a.DivergenceValue.Round(2)
	a.ShrinkagePercent = a.ShrinkagePercent.Round(2)
	return a
}

// Message texto de la análisis para el usuario.
func Message(status string, percent decimal.Decimal) string {
	switch status {
	case StatusAboveAcceptable:
		return "Atenção! Quebra de " + percent.StringFixed(2) + "% acima do aceitável."
	case StatusAcceptable:
		return "Parabéns! Quebra de " + percent.StringFixed(2) + "% dentro do aceitável."
	case StatusSurplus:
		return "Sobra de " + percent.Abs().StringFixed(2) + "% identificada."
	}
	return ""
}

// Summary resumen financiero de quebras y sobras.
type Summary struct {
	Items          int
	ShrinkageQty   decimal.Decimal
	ShrinkageValue decimal.Decimal
	SurplusQty     decimal.Decimal
	SurplusValue   decimal.Decimal
	NetQty         decimal.Decimal // sobras − quebras
	NetValue       decimal.Decimal
}

// Summarize suma divergencias negativas como quebra (en módulo) y positivas como sobra.
func Summarize(items []Analysis) Summary {
	s := Summary{Items: len(items)}
	for _, a := range items {
		switch {
		case a.Divergence.IsNegative():
			s.ShrinkageQty = s.ShrinkageQty.Add(a.Divergence.Abs())
			s.ShrinkageValue = s.ShrinkageValue.Add(a.DivergenceValue.Abs())
		case a.Divergence.IsPositive():
			s.SurplusQty = s.SurplusQty.Add(a.Divergence)
			s.SurplusValue = s.SurplusValue.Add(a.DivergenceValue)
		}
	}
	s.NetQty = s.SurplusQty.Sub(s.ShrinkageQty)
	s.NetValue = s.SurplusValue.Sub(s.ShrinkageValue)
	return s
}
