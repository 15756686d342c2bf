package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/desossa-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// movement estoque calculado = opening + purchases − sales.
func movement(opening, purchases, sales, counted string) inventory.Movement {
	return inventory.Movement{
		Opening:   d(opening),
		Purchases: d(purchases),
		Sales:     d(sales),
		Counted:   d(counted),
	}
}

func TestAnalyze_PlanilhaModelo(t *testing.T) {
	// P001 Picanha: 100 + 50 + 10 − 80 − 5 = 75; contado 72
	a := inventory.Analyze(inventory.Movement{
		Opening: d("100"), Purchases: d("50"), OtherEntries: d("10"),
		Sales: d("80"), OtherExits: d("5"), Counted: d("72"), AverageUnitCost: d("55.90"),
	})
	assert.Equal(t, "75.00", a.CalculatedStock.StringFixed(2))
	assert.Equal(t, "-3.00", a.Divergence.StringFixed(2))
	assert.Equal(t, "-167.70", a.DivergenceValue.StringFixed(2))
	assert.Equal(t, "4.00", a.ShrinkagePercent.StringFixed(2))
	assert.Equal(t, inventory.StatusAboveAcceptable, a.Status)
	assert.Equal(t, "Atenção! Quebra de 4.00% acima do aceitável.", inventory.Message(a.Status, a.ShrinkagePercent))

	// A002 Alcatra: 50 + 20 + 0 − 40 − 2 = 28; contado 28
	a = inventory.Analyze(inventory.Movement{
		Opening: d("50"), Purchases: d("20"), Sales: d("40"), OtherExits: d("2"),
		Counted: d("28"), AverageUnitCost: d("42.50"),
	})
	assert.True(t, a.Divergence.IsZero())
	assert.True(t, a.ShrinkagePercent.IsZero())
	assert.Equal(t, inventory.StatusAcceptable, a.Status)
	assert.Equal(t, "Parabéns! Quebra de 0.00% dentro do aceitável.", inventory.Message(a.Status, a.ShrinkagePercent))
}

func TestAnalyze_Ramas(t *testing.T) {
	cases := []struct {
		name    string
		m       inventory.Movement
		percent string
		status  string
	}{
		{"quebra en el límite", movement("100", "0", "0", "98"), "2.00", inventory.StatusAcceptable},
		{"sobra con estoque positivo", movement("100", "0", "0", "110"), "-10.00", inventory.StatusSurplus},
		{"calculado cero y contado positivo", movement("0", "0", "0", "5"), "-100.00", inventory.StatusSurplus},
		{"calculado negativo y contado positivo", movement("0", "0", "5", "3"), "-100.00", inventory.StatusSurplus},
		{"calculado y contado en cero", movement("0", "0", "0", "0"), "0.00", inventory.StatusAcceptable},
		{"calculado negativo y contado cero", movement("0", "0", "5", "0"), "-100.00", inventory.StatusSurplus},
		{"contado por debajo del calculado negativo", movement("0", "0", "5", "-10"), "0.00", inventory.StatusAcceptable},
		{"todo perdido", movement("40", "0", "0", "0"), "100.00", inventory.StatusAboveAcceptable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := inventory.Analyze(tc.m)
			assert.Equal(t, tc.percent, a.ShrinkagePercent.StringFixed(2))
			assert.Equal(t, tc.status, a.Status)
		})
	}
}

func TestAnalyze_ClasificaSinRedondear(t *testing.T) {
	// 5.01 / 250 = 2.004% → se muestra 2.00 pero supera el aceptable
	a := inventory.Analyze(movement("250", "0", "0", "244.99"))
	assert.Equal(t, inventory.StatusAboveAcceptable, a.Status)

	r := a.Rounded()
	assert.Equal(t, "2", r.ShrinkagePercent.String())
	assert.Equal(t, inventory.StatusAboveAcceptable, r.Status)
	assert.Equal(t, "Atenção! Quebra de 2.00% acima do aceitável.", inventory.Message(r.Status, r.ShrinkagePercent))
}

func TestMessage_Sobra(t *testing.T) {
	assert.Equal(t, "Sobra de 12.50% identificada.", inventory.Message(inventory.StatusSurplus, d("-12.5")))
	assert.Empty(t, inventory.Message("otro", d("1")))
}

func TestSummarize(t *testing.T) {
	items := []inventory.Analysis{
		{Divergence: d("-3"), DivergenceValue: d("-167.70")},
		{Divergence: d("10"), DivergenceValue: d("100")},
		{Divergence: d("0"), DivergenceValue: d("0")},
		{Divergence: d("-0.5"), DivergenceValue: d("-10")},
	}
	s := inventory.Summarize(items)
	assert.Equal(t, 4, s.Items)
	assert.Equal(t, "3.50", s.ShrinkageQty.StringFixed(2))
	assert.Equal(t, "177.70", s.ShrinkageValue.StringFixed(2))
	assert.Equal(t, "10.00", s.SurplusQty.StringFixed(2))
	assert.Equal(t, "100.00", s.SurplusValue.StringFixed(2))
	assert.Equal(t, "6.50", s.NetQty.StringFixed(2))
	assert.Equal(t, "-77.70", s.NetValue.StringFixed(2))
}

func TestSummarize_Vacio(t *testing.T) {
	s := inventory.Summarize(nil)
	assert.Zero(t, s.Items)
	assert.True(t, s.NetValue.IsZero())
}

func TestWeightedAverageCost(t *testing.T) {
	got := inventory.WeightedAverageCost(d("10"), d("20"), d("30"), d("40"))
	assert.Equal(t, "35.00", got.StringFixed(2))

	// sin estoque previo el custo es el de la entrada
	got = inventory.WeightedAverageCost(d("0"), d("99"), d("8"), d("12.5"))
	assert.Equal(t, "12.50", got.StringFixed(2))

	assert.True(t, inventory.WeightedAverageCost(d("0"), d("10"), d("0"), d("10")).IsZero())
	assert.True(t, inventory.WeightedAverageCost(d("5"), d("10"), d("-5"), d("10")).IsZero())
}
