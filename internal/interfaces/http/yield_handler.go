package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/yield"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
)

// YieldHandler catálogo de rendimiento y proyector.
type YieldHandler struct {
	svc     *yield.Service
	metrics metrics.Recorder
}

// NewYieldHandler construye el handler.
func NewYieldHandler(svc *yield.Service, rec metrics.Recorder) *YieldHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &YieldHandler{svc: svc, metrics: rec}
}

// Create godoc
// @Summary      Cadastrar parâmetro de rendimento
// @Tags         yield
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.YieldParameterRequest  true  "Parâmetro"
// @Success      201   {object}  dto.YieldParameterResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/yield/parameters [post]
func (h *YieldHandler) Create(c *fiber.Ctx) error {
	var in dto.YieldParameterRequest
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
// @Summary      Listar parâmetros de rendimento
// @Tags         yield
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Filtro por código ou nome da peça"
// @Success      200     {object}  dto.YieldParameterListResponse
// @Router       /api/yield/parameters [get]
func (h *YieldHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetScope(c), c.Query("search"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Atualizar parâmetro de rendimento
// @Tags         yield
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID do parâmetro"
// @Param        body  body  dto.YieldParameterRequest  true  "Parâmetro"
// @Success      200   {object}  dto.YieldParameterResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/yield/parameters/{id} [put]
func (h *YieldHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.YieldParameterRequest
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
// @Summary      Excluir parâmetro de rendimento
// @Tags         yield
// @Security     Bearer
// @Param        id   path  string  true  "ID do parâmetro"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/yield/parameters/{id} [delete]
func (h *YieldHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	if err := h.svc.Delete(c.UserContext(), GetScope(c), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Parts godoc
// @Summary      Partes disponíveis
// @Tags         yield
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PartsResponse
// @Router       /api/yield/parts [get]
func (h *YieldHandler) Parts(c *fiber.Ctx) error {
	out, err := h.svc.Parts(c.UserContext(), GetScope(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Project godoc
// @Summary      Projetar rendimento
// @Description  Projeta peso, valor e margem de cada peça para um peso de carcaça. Sem pieces usa o catálogo salvo.
// @Tags         yield
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProjectRequest  true  "Peso total, parte e peças opcionais"
// @Success      200   {object}  dto.ProjectionResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/yield/project [post]
func (h *YieldHandler) Project(c *fiber.Ctx) error {
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Project(c.UserContext(), GetScope(c), in)
	h.metrics.Calculation(metrics.CalculatorProjection, outcome(err))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ExportPDF godoc
// @Summary      Relatório PDF de rendimento
// @Description  Catálogo e, se o corpo trouxer total_weight_kg, a projeção.
// @Tags         yield
// @Security     Bearer
// @Accept       json
// @Produce      application/pdf
// @Param        body  body  dto.ProjectRequest  false  "Projeção opcional"
// @Success      200   {file}  binary
// @Router       /api/yield/export/pdf [post]
func (h *YieldHandler) ExportPDF(c *fiber.Ctx) error {
	proj, err := optionalProjection(c)
	if err != nil {
		return badBody(c)
	}
	data, name, err := h.svc.PDF(c.UserContext(), GetScope(c), proj)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimePDF)
}

// ExportXLSX godoc
// @Summary      Planilha xlsx de rendimento
// @Tags         yield
// @Security     Bearer
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  dto.ProjectRequest  false  "Projeção opcional"
// @Success      200   {file}  binary
// @Router       /api/yield/export/xlsx [post]
func (h *YieldHandler) ExportXLSX(c *fiber.Ctx) error {
	proj, err := optionalProjection(c)
	if err != nil {
		return badBody(c)
	}
	data, name, err := h.svc.XLSX(c.UserContext(), GetScope(c), proj)
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimeXLSX)
}

// optionalProjection cuerpo vacío o sin peso → solo catálogo.
func optionalProjection(c *fiber.Ctx) (*dto.ProjectRequest, error) {
	if len(c.Body()) == 0 {
		return nil, nil
	}
	var in dto.ProjectRequest
	if err := c.BodyParser(&in); err != nil {
		return nil, err
	}
	if in.TotalWeightKg.IsEmpty() {
		return nil, nil
	}
	return &in, nil
}
