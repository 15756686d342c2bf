package http_test

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/domain"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/infrastructure/spreadsheet"
)

func inventoryItems() []map[string]any {
	return []map[string]any{
		{"code": "P001", "name": "Picanha", "unit": "kg", "body_part": "traseiro", "quantity": 10.5,
			"opening_stock": 100, "purchases": 50, "other_entries": 10, "sales": 80, "other_exits": 5,
			"counted_stock": 72, "average_unit_cost": "55,90"},
		{"code": "A002", "name": "Alcatra", "unit": "un", "opening_stock": 50, "purchases": 20,
			"other_entries": 0, "sales": 40, "other_exits": 2, "counted_stock": 28, "average_unit_cost": 42.5},
	}
}

func (e *testEnv) upload(t *testing.T, path, auth string, xlsx []byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "inventario.xlsx")
	require.NoError(t, err)
	_, err = part.Write(xlsx)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", auth)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestInventory_Analisis(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inventory/analyze", env.token(t, entity.RoleOperador),
		map[string]any{"items": inventoryItems()})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.InventoryAnalysisResult](t, resp)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "75.00", out.Items[0].CalculatedStock)
	assert.Equal(t, "-3.00", out.Items[0].Divergence)
	assert.Equal(t, "-167.70", out.Items[0].DivergenceValue)
	assert.Equal(t, "4.00", out.Items[0].ShrinkagePercent)
	assert.Equal(t, "quebra_acima", out.Items[0].Status)
	assert.Equal(t, "quebra_aceitavel", out.Items[1].Status)
	assert.Equal(t, "167.70", out.Summary.ShrinkageValue)
	assert.Equal(t, "-167.70", out.Summary.NetValue)
}

func TestInventory_ItemInvalidoDevuelve422(t *testing.T) {
	env := newTestEnv(t)
	items := inventoryItems()
	items[1]["sales"] = "-4"
	resp := env.do(t, http.MethodPost, "/api/inventory/analyze", env.token(t, entity.RoleOperador),
		map[string]any{"items": items})
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, domain.CodeInvalidInventoryItem, out.Code)
	assert.Contains(t, out.Message, "Item 2")
}

func TestInventory_CRUDImportacionYDescargas(t *testing.T) {
	env := newTestEnv(t)
	op := env.token(t, entity.RoleOperador)

	resp := env.do(t, http.MethodPost, "/api/inventory", op, map[string]any{"name": "", "items": inventoryItems()})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/inventory", op, map[string]any{"name": "Fechamento maio", "items": inventoryItems()})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.InventoryCountResponse](t, resp)
	require.NotEmpty(t, created.ID)

	list := decode[dto.InventoryCountListResponse](t, env.do(t, http.MethodGet, "/api/inventory", op, nil))
	require.Len(t, list.Items, 1)
	assert.Equal(t, 2, list.Items[0].Items)
	assert.Equal(t, "-167.70", list.Items[0].NetValue)

	// la planilla corrige la contagem de P001 y agrega un ítem nuevo
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"codigo_produto", "estoque_fisico_contado", "estoque_inicial"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"p001", 75, ""}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"C003", 9, 10}))
	xlsx, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	resp = env.upload(t, "/api/inventory/"+created.ID+"/import", op, xlsx.Bytes())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	merged := decode[dto.InventoryCountResponse](t, resp)
	require.Len(t, merged.Result.Items, 3)
	assert.Equal(t, "0.00", merged.Result.Items[0].Divergence)
	assert.Equal(t, "Picanha", merged.Result.Items[0].Name)
	assert.Equal(t, "Novo Item", merged.Result.Items[2].Name)
	assert.Equal(t, "kg", merged.Result.Items[2].Unit)

	resp = env.do(t, http.MethodGet, "/api/inventory/"+created.ID+"/xlsx", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	out, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer out.Close()
	assert.Contains(t, out.GetSheetList(), spreadsheet.SheetInventory)

	resp = env.do(t, http.MethodGet, "/api/inventory/"+created.ID+"/pdf", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "pdf")
	resp.Body.Close()

	resp = env.do(t, http.MethodDelete, "/api/inventory/"+created.ID, op, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp = env.do(t, http.MethodDelete, "/api/inventory/"+created.ID, env.token(t, entity.RoleAdmin), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = env.do(t, http.MethodGet, "/api/inventory/"+created.ID, op, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventory_ModeloEImportacion(t *testing.T) {
	env := newTestEnv(t)
	op := env.token(t, entity.RoleOperador)

	resp := env.do(t, http.MethodGet, "/api/inventory/template", op, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "modelo_inventario.xlsx")
	template, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	resp = env.upload(t, "/api/inventory/import", op, template)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ImportInventoryResponse](t, resp)
	require.Len(t, out.Items, 2)
	assert.Equal(t, "P001", out.Items[0].Code)
	assert.Equal(t, dto.NumberText("72"), out.Items[0].CountedStock)
}

func TestInventory_ImportarSinArchivo(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/inventory/import", env.token(t, entity.RoleOperador), nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "MISSING_FILE", decode[dto.ErrorResponse](t, resp).Code)
}
