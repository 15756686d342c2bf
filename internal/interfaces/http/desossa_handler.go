package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/desossa-api/internal/application/desossa"
	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
)

// DesossaHandler calculador de rateio y CRUD de desossas.
type DesossaHandler struct {
	svc     *desossa.Service
	metrics metrics.Recorder
}

// NewDesossaHandler construye el handler.
func NewDesossaHandler(svc *desossa.Service, rec metrics.Recorder) *DesossaHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &DesossaHandler{svc: svc, metrics: rec}
}

// Calculate godoc
// @Summary      Calcular rateio de custos
// @Description  Rateia o custo da carcaça entre os cortes proporcionalmente à receita. Não persiste.
// @Tags         desossa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CalculateBreakdownRequest  true  "Lote e cortes"
// @Success      200   {object}  dto.BreakdownResult
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/desossa/calculate [post]
func (h *DesossaHandler) Calculate(c *fiber.Ctx) error {
	var in dto.CalculateBreakdownRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Calculate(in)
	h.metrics.Calculation(metrics.CalculatorBreakdown, outcome(err))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Salvar desossa
// @Tags         desossa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveBreakdownRequest  true  "Desossa"
// @Success      201   {object}  dto.BreakdownResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/desossa [post]
func (h *DesossaHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveBreakdownRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Create(c.UserContext(), GetScope(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar desossas
// @Tags         desossa
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.BreakdownListResponse
// @Router       /api/desossa [get]
func (h *DesossaHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetScope(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter desossa
// @Tags         desossa
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da desossa"
// @Success      200  {object}  dto.BreakdownResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/desossa/{id} [get]
func (h *DesossaHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	out, err := h.svc.Get(c.UserContext(), GetScope(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar desossa
// @Tags         desossa
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da desossa"
// @Param        body  body  dto.SaveBreakdownRequest   true  "Desossa"
// @Success      200   {object}  dto.BreakdownResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/desossa/{id} [put]
func (h *DesossaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SaveBreakdownRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Update(c.UserContext(), GetScope(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Excluir desossa
// @Tags         desossa
// @Security     Bearer
// @Param        id   path  string  true  "ID da desossa"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/desossa/{id} [delete]
func (h *DesossaHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.svc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Relatório PDF da desossa
// @Tags         desossa
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da desossa"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/desossa/{id}/pdf [get]
func (h *DesossaHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.svc.PDF(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimePDF)
}

// XLSX godoc
// @Summary      Planilha xlsx da desossa
// @Tags         desossa
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID da desossa"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/desossa/{id}/xlsx [get]
func (h *DesossaHandler) XLSX(c *fiber.Ctx) error {
	data, name, err := h.svc.XLSX(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimeXLSX)
}

// Import godoc
// @Summary      Importar cortes de planilha
// @Description  Lê a primeira aba: nome, código, peso, preço/kg, parte. Não persiste.
// @Tags         desossa
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Planilha xlsx"
// @Success      200   {object}  dto.ImportCutsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/desossa/import [post]
func (h *DesossaHandler) Import(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "arquivo xlsx obrigatório no campo 'file'"})
	}
	f, err := fh.Open()
	if err != nil {
		return badBody(c)
	}
	defer f.Close()

	out, err := h.svc.ImportCuts(f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
