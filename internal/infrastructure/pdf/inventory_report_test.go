package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/infrastructure/pdf"
)

func TestFormat_Quantity(t *testing.T) {
	assert.Equal(t, "1.234,50", pdf.Quantity("1234.5"))
	assert.Equal(t, "-3,00", pdf.Quantity("-3"))
	assert.Equal(t, "-", pdf.Quantity(""))
}

func TestInventoryPDF_GeneraDocumento(t *testing.T) {
	inv := &dto.InventoryCountResponse{
		Name:  "Inventário Maio",
		Date:  time.Date(2026, 5, 31, 0, 0, 0, 0, time.UTC),
		Notes: "Contagem de fechamento",
		Result: dto.InventoryAnalysisResult{
			Items: []dto.InventoryItemResult{
				{Code: "P001", Name: "Picanha", CalculatedStock: "75.00", CountedStock: "72.000",
					Divergence: "-3.00", DivergenceValue: "-167.70", ShrinkagePercent: "4.00", Status: "quebra_acima"},
				{Code: "F003", Name: "Fraldinha", CalculatedStock: "10.00", CountedStock: "20.000",
					Divergence: "10.00", DivergenceValue: "100.00", ShrinkagePercent: "-100.00", Status: "sobra"},
			},
			Summary: dto.InventorySummary{Items: 2, ShrinkageQty: "3.00", ShrinkageValue: "167.70",
				SurplusQty: "10.00", SurplusValue: "100.00", NetQty: "7.00", NetValue: "-67.70"},
		},
	}

	data, err := pdf.NewMarotoPDFGenerator("Desossa").InventoryPDF(context.Background(), header(), inv)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestInventoryPDF_SinItems(t *testing.T) {
	data, err := pdf.NewMarotoPDFGenerator("").InventoryPDF(context.Background(), header(), &dto.InventoryCountResponse{Name: "Vazio"})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
