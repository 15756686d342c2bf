package http

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/inventory"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
)

// InventoryHandler análisis de quebras e inventarios físicos guardados.
type InventoryHandler struct {
	uc      *inventory.CountUseCase
	metrics metrics.Recorder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.CountUseCase, rec metrics.Recorder) *InventoryHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &InventoryHandler{uc: uc, metrics: rec}
}

// Analyze godoc
// @Summary      Analisar quebras do inventário
// @Description  Estoque calculado, divergência e percentual de quebra/sobra por item (aceitável até 2%). Não persiste.
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryAnalysisRequest  true  "Itens"
// @Success      200   {object}  dto.InventoryAnalysisResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/analyze [post]
func (h *InventoryHandler) Analyze(c *fiber.Ctx) error {
	var in dto.InventoryAnalysisRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Analyze(in)
	h.metrics.Calculation(metrics.CalculatorInventory, outcome(err))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Salvar inventário
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InventoryCountRequest  true  "Inventário"
// @Success      201   {object}  dto.InventoryCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.InventoryCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar inventários
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.InventoryCountListResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetScope(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter inventário
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID do inventário"
// @Success      200  {object}  dto.InventoryCountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.uc.Get(c.UserContext(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar inventário
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID do inventário"
// @Param        body  body  dto.InventoryCountRequest  true  "Inventário"
// @Success      200   {object}  dto.InventoryCountResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.InventoryCountRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir inventário
// @Tags         inventario
// @Security     Bearer
// @Param        id   path  string  true  "ID do inventário"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.uc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Relatório PDF de quebras
// @Tags         inventario
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID do inventário"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/pdf [get]
func (h *InventoryHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.uc.PDF(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimePDF)
}

// XLSX godoc
// @Summary      Planilha "Análise de Quebras"
// @Tags         inventario
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID do inventário"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/xlsx [get]
func (h *InventoryHandler) XLSX(c *fiber.Ctx) error {
	data, name, err := h.uc.XLSX(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimeXLSX)
}

// Template godoc
// @Summary      Planilha modelo de importação
// @Tags         inventario
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/inventory/template [get]
func (h *InventoryHandler) Template(c *fiber.Ctx) error {
	data, name, err := h.uc.Template()
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimeXLSX)
}

// Import godoc
// @Summary      Importar itens de planilha
// @Description  Colunas por nome (codigo_produto, nome_produto, ...). Linhas sem código são ignoradas. Não persiste.
// @Tags         inventario
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilha xlsx"
// @Success      200   {object}  dto.ImportInventoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/inventory/import [post]
func (h *InventoryHandler) Import(c *fiber.Ctx) error {
	f, ok, err := uploadedFile(c)
	if !ok {
		return err
	}
	defer f.Close()

	out, err := h.uc.Import(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ImportInto godoc
// @Summary      Importar planilha num inventário salvo
// @Description  Mescla por código: células preenchidas substituem os valores; códigos novos são adicionados.
// @Tags         inventario
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "ID do inventário"
// @Param        file  formData  file    true  "Planilha xlsx"
// @Success      200   {object}  dto.InventoryCountResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/{id}/import [post]
func (h *InventoryHandler) ImportInto(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	f, ok, err := uploadedFile(c)
	if !ok {
		return err
	}
	defer f.Close()

	out, err := h.uc.ImportInto(c.UserContext(), GetScope(c), id, f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// uploadedFile abre el campo "file"; si falta, ya respondió 400.
func uploadedFile(c *fiber.Ctx) (multipart.File, bool, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "arquivo xlsx obrigatório no campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return nil, false, badBody(c)
	}
	return f, true, nil
}
