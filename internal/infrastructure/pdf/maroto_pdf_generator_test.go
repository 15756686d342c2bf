package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/ports"
	"github.com/jhoicas/desossa-api/internal/infrastructure/pdf"
)

func header() ports.ReportHeader {
	return ports.ReportHeader{
		CompanyName: "Açougue Boi Bom",
		CNPJ:        "12345678000195",
		Title:       "Relatório de Desossa",
		GeneratedAt: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC),
	}
}

func TestFormat_Money(t *testing.T) {
	assert.Equal(t, "R$ 1.234,56", pdf.Money("1234.56"))
	assert.Equal(t, "R$ 0,50", pdf.Money("0.5"))
	assert.Equal(t, "N/A", pdf.Money("N/A"))
	assert.Equal(t, "-", pdf.Money(""))
}

func TestFormat_PercentWeightMarkup(t *testing.T) {
	assert.Equal(t, "33,33%", pdf.Percent("33.33%"))
	assert.Equal(t, "12,50%", pdf.Percent("12.5"))
	assert.Equal(t, "N/A", pdf.Percent("N/A"))
	assert.Equal(t, "100,000 kg", pdf.Weight("100"))
	assert.Equal(t, "25,00%", pdf.Markup("25.00"))
	assert.Equal(t, "infinito", pdf.Markup("inf"))
}

func TestBreakdownPDF_GeneratesDocument(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("Relatório gerado automaticamente")
	b := &dto.BreakdownResponse{
		Name:       "Lote 1",
		Date:       time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		AnimalType: "bovino",
		Notes:      "Boi de 18 arrobas",
		Result: dto.BreakdownResult{
			InitialWeightKg:      "100.00",
			CarcassCost:          "1000.00",
			TotalRevenue:         "1800.00",
			TotalAllocatedCost:   "1000.00",
			CommercialWeightKg:   "70.00",
			DiscardWeightKg:      "10.00",
			TotalYieldPercent:    "80.00",
			EstimatedGrossProfit: "800.00",
			TotalDiscardCost:     "0.00",
			Cuts: []dto.CutResult{
				{Name: "Picanha", Code: "PIC", WeightKg: "10.00", SalePricePerKg: "100.00", BodyPart: "traseiro",
					SaleValue: "1000.00", SaleIndex: "55.56%", AllocatedCost: "555.56", AllocatedCostPerKg: "55.56", MarginPercent: "44.44"},
				{Name: "Osso", Code: "OSS", WeightKg: "10.00", SalePricePerKg: "0.00", BodyPart: "descarte", IsDiscard: true,
					SaleValue: "0.00", SaleIndex: "0.00%", AllocatedCost: "0.00", AllocatedCostPerKg: "0.00", MarginPercent: "0.00"},
			},
			Parts: []dto.PartResult{
				{Part: "traseiro", Label: "Traseiro", WeightKg: "10.00", Revenue: "1000.00", AllocatedCost: "555.56", ProfitOrLoss: "444.44", Items: 1},
			},
		},
	}

	data, err := g.BreakdownPDF(context.Background(), header(), b)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestSimulationPDF_GeneratesDocument(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("")
	s := &dto.SimulationResponse{
		Name: "Tabela março",
		Items: []dto.SimulationItem{
			{Code: "PIC", Name: "Picanha", WeightKg: "10", CurrentCost: "50", CurrentSalePrice: "80",
				NewSalePrice: "100.00", NewMarginPercent: "50.00", Markup: "100.00", CurrentMarginPercent: "37.50"},
			{Code: "ACM", Name: "Acém", WeightKg: "5", CurrentCost: "0", CurrentSalePrice: "0",
				Markup: "inf", CurrentMarginPercent: "N/A"},
		},
		Dashboard: dto.DashboardResponse{
			TotalRevenue: "1000.00", TotalCost: "500.00", TotalProfit: "500.00", MarginPercent: "50.00%", ItemsAnalyzed: 1,
		},
	}

	data, err := g.SimulationPDF(context.Background(), header(), s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestYieldPDF_WithAndWithoutProjection(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("rodapé")
	r := &ports.YieldReport{
		Parameters: []dto.YieldParameterResponse{
			{PieceCode: "PIC", PieceName: "Picanha", PartName: "traseiro", ExpectedYieldPercent: "20.00", SalePricePerKg: "80.00"},
			{PieceCode: "ACM", PieceName: "Acém", PartName: "dianteiro", ExpectedYieldPercent: "15.00"},
		},
	}

	data, err := g.YieldPDF(context.Background(), header(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	r.Projection = &dto.ProjectionResponse{
		TotalWeightKg: "200.000",
		Part:          "todos",
		Pieces: []dto.ProjectedPiece{
			{PieceCode: "PIC", PieceName: "Picanha", Part: "traseiro", WeightKg: "40.000", SalePricePerKg: "80.00",
				PieceValue: "3200.00", WeightShare: "57.14%", RevenueShare: "100.00%", CostPerKg: "0.00", MarginPercent: "0.00%"},
		},
	}
	data, err = g.YieldPDF(context.Background(), header(), r)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestBreakdownPDF_EmptyCuts(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator("")
	data, err := g.BreakdownPDF(context.Background(), ports.ReportHeader{Title: "Vazio"}, &dto.BreakdownResponse{Name: "Vazio"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
