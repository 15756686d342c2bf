package desossa_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/desossa"
)

const eps = 1e-9

// ──────────────────────────────────────────────────────────────────────────────
// Lote de referencia: 100 kg, R$ 500; A(60 kg, 10), B(30 kg, 5), C(10 kg, descarte).
// ──────────────────────────────────────────────────────────────────────────────

func referenceCuts() []desossa.Cut {
	return []desossa.Cut{
		{Name: "A", Code: "001", WeightKg: 60, SalePricePerKg: 10, BodyPart: "traseiro"},
		{Name: "B", Code: "002", WeightKg: 30, SalePricePerKg: 5, BodyPart: "dianteiro"},
		{Name: "C", Code: "003", WeightKg: 10, SalePricePerKg: 0, BodyPart: desossa.PartDiscard},
	}
}

func TestAllocate_LoteDeReferencia(t *testing.T) {
	res, err := desossa.Allocate(referenceCuts(), 100, 500)
	require.NoError(t, err)
	require.Len(t, res.Cuts, 3)

	assert.InDelta(t, 750, res.TotalRevenue, eps)

	a, b, c := res.Cuts[0], res.Cuts[1], res.Cuts[2]
	assert.InDelta(t, 0.8, a.SaleIndex, eps)
	assert.InDelta(t, 400, a.AllocatedCost, eps)
	assert.InDelta(t, 6.667, a.AllocatedCostPerKg, 1e-3)
	assert.InDelta(t, 33.33, a.MarginPercent, 1e-2)

	assert.InDelta(t, 0.2, b.SaleIndex, eps)
	assert.InDelta(t, 100, b.AllocatedCost, eps)
	assert.InDelta(t, 3.333, b.AllocatedCostPerKg, 1e-3)
	assert.InDelta(t, 33.33, b.MarginPercent, 1e-2)

	assert.Zero(t, c.AllocatedCost)
	assert.Zero(t, c.SaleIndex)

	assert.InDelta(t, 90, res.TotalYieldPercent, eps)
	assert.InDelta(t, 250, res.EstimatedGrossProfit, eps)
	assert.InDelta(t, 0, res.TotalDiscardCost, eps)
	assert.InDelta(t, 90, res.CommercialWeightKg, eps)
	assert.InDelta(t, 10, res.DiscardWeightKg, eps)
}

func TestAllocate_RechazaReceitaCero(t *testing.T) {
	cuts := []desossa.Cut{{Name: "Único", WeightKg: 50, SalePricePerKg: 0, BodyPart: "traseiro"}}
	res, err := desossa.Allocate(cuts, 50, 100)
	assert.Nil(t, res, "no debe devolver un resultado con costo 0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrZeroOrNegativeRevenue))
}

func TestAllocate_SoloDescartes(t *testing.T) {
	cuts := []desossa.Cut{{Name: "Osso", WeightKg: 20, SalePricePerKg: 12, BodyPart: desossa.PartDiscard}}
	_, err := desossa.Allocate(cuts, 50, 100)
	assert.ErrorIs(t, err, domain.ErrZeroOrNegativeRevenue)
}

func TestAllocate_TotalesInvalidos(t *testing.T) {
	cases := []struct {
		name   string
		weight float64
		cost   float64
	}{
		{"peso cero", 0, 100},
		{"peso negativo", -1, 100},
		{"costo negativo", 100, -0.01},
		{"peso NaN", math.NaN(), 100},
		{"costo infinito", 100, math.Inf(1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := desossa.Allocate(referenceCuts(), tc.weight, tc.cost)
			assert.ErrorIs(t, err, domain.ErrInvalidBatchTotals)
		})
	}
}

func TestAllocate_CostoCeroEsValido(t *testing.T) {
	res, err := desossa.Allocate(referenceCuts(), 100, 0)
	require.NoError(t, err)
	assert.Zero(t, res.TotalAllocatedCost)
	assert.InDelta(t, 100, res.Cuts[0].MarginPercent, eps)
}

func TestAllocate_CamposDeCorteInvalidos(t *testing.T) {
	cases := map[string]desossa.Cut{
		"sin nombre":      {WeightKg: 1, SalePricePerKg: 1},
		"peso negativo":   {Name: "X", WeightKg: -1, SalePricePerKg: 1},
		"precio negativo": {Name: "X", WeightKg: 1, SalePricePerKg: -1},
		"precio NaN":      {Name: "X", WeightKg: 1, SalePricePerKg: math.NaN()},
	}
	for name, cut := range cases {
		t.Run(name, func(t *testing.T) {
			cuts := append(referenceCuts(), cut)
			_, err := desossa.Allocate(cuts, 100, 500)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidCutFields)

			ve, ok := domain.AsValidationError(err)
			require.True(t, ok)
			assert.Equal(t, domain.CodeInvalidCutFields, ve.Code)
			assert.Contains(t, ve.Message, "corte 4")
		})
	}
}

func TestAllocate_DescarteIgnoraPrecioNegativo(t *testing.T) {
	cuts := referenceCuts()
	cuts[2].SalePricePerKg = -3
	_, err := desossa.Allocate(cuts, 100, 500)
	assert.NoError(t, err)
}

func TestAllocate_Conservacion(t *testing.T) {
	cuts := []desossa.Cut{
		{Name: "Picanha", WeightKg: 1.37, SalePricePerKg: 89.9, BodyPart: "traseiro"},
		{Name: "Alcatra", WeightKg: 7.21, SalePricePerKg: 45.5, BodyPart: "traseiro"},
		{Name: "Acém", WeightKg: 19.03, SalePricePerKg: 27.99, BodyPart: "dianteiro"},
		{Name: "Costela", WeightKg: 13.3, SalePricePerKg: 24.9, BodyPart: "costela"},
		{Name: "Osso", WeightKg: 21.7, SalePricePerKg: 0, BodyPart: desossa.PartDiscard},
		{Name: "Sebo", WeightKg: 3.1, SalePricePerKg: 2, BodyPart: ""},
	}
	res, err := desossa.Allocate(cuts, 70, 1873.45)
	require.NoError(t, err)

	var sum float64
	for _, c := range res.Cuts {
		if !c.IsDiscard() {
			sum += c.AllocatedCost
		}
	}
	assert.InDelta(t, res.TotalCarcassCost-res.TotalDiscardCost, sum, eps)
	assert.InDelta(t, res.TotalCarcassCost, res.TotalAllocatedCost, 1e-9)
}

func TestAllocate_ProporcionalALaVenta(t *testing.T) {
	res, err := desossa.Allocate(referenceCuts(), 100, 733.21)
	require.NoError(t, err)

	a, b := res.Cuts[0], res.Cuts[1]
	assert.InDelta(t, a.SaleValue/b.SaleValue, a.AllocatedCost/b.AllocatedCost, eps)
}

func TestAllocate_NeutralidadDelDescarte(t *testing.T) {
	cuts := referenceCuts()
	cuts[1].BodyPart = desossa.PartDiscard // B tenía precio 5

	res, err := desossa.Allocate(cuts, 100, 500)
	require.NoError(t, err)

	b := res.Cuts[1]
	assert.Zero(t, b.EffectivePricePerKg)
	assert.Zero(t, b.SaleValue)
	assert.Zero(t, b.AllocatedCost)
	assert.InDelta(t, 60, res.TotalYieldPercent, eps)
	assert.InDelta(t, 600, res.TotalRevenue, eps)
	assert.InDelta(t, 500, res.Cuts[0].AllocatedCost, eps)
}

func TestAllocate_AgregadoPorParte(t *testing.T) {
	cuts := []desossa.Cut{
		{Name: "A", WeightKg: 10, SalePricePerKg: 10, BodyPart: "traseiro"},
		{Name: "B", WeightKg: 10, SalePricePerKg: 30, BodyPart: "dianteiro"},
		{Name: "C", WeightKg: 5, SalePricePerKg: 20, BodyPart: "traseiro"},
		{Name: "D", WeightKg: 2, SalePricePerKg: 10, BodyPart: ""},
	}
	res, err := desossa.Allocate(cuts, 30, 300)
	require.NoError(t, err)
	require.Len(t, res.Parts, 3)

	tr := res.Parts[0]
	assert.Equal(t, "traseiro", tr.Part)
	assert.Equal(t, "Traseiro", tr.Label)
	assert.Equal(t, 2, tr.Items)
	assert.InDelta(t, 15, tr.WeightKg, eps)
	assert.InDelta(t, 200, tr.Revenue, eps)
	assert.InDelta(t, tr.Revenue-tr.AllocatedCost, tr.ProfitOrLoss, eps)

	assert.Equal(t, "dianteiro", res.Parts[1].Part)
	assert.Equal(t, desossa.PartUndefined, res.Parts[2].Part)
	assert.Equal(t, "Não Definida", res.Parts[2].Label)
}

func TestAllocate_NoModificaLaEntrada(t *testing.T) {
	cuts := referenceCuts()
	cuts[2].SalePricePerKg = 99
	_, err := desossa.Allocate(cuts, 100, 500)
	require.NoError(t, err)
	assert.Equal(t, 99.0, cuts[2].SalePricePerKg)
}
