package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/simulation"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
)

// SimulationHandler redutor de simulación, dashboard y CRUD de simulaciones.
type SimulationHandler struct {
	svc     *simulation.Service
	metrics metrics.Recorder
}

// NewSimulationHandler construye el handler.
func NewSimulationHandler(svc *simulation.Service, rec metrics.Recorder) *SimulationHandler {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &SimulationHandler{svc: svc, metrics: rec}
}

// Apply godoc
// @Summary      Aplicar alteração a um item
// @Description  Atualiza um campo (target_margin, offer_price, weight, current_cost, current_sale_price, code, name) e recalcula os derivados.
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyChangeRequest  true  "Item, campo e valor"
// @Success      200   {object}  dto.SimulationItem
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/simulations/apply [post]
func (h *SimulationHandler) Apply(c *fiber.Ctx) error {
	var in dto.ApplyChangeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Apply(in)
	h.metrics.Calculation(metrics.CalculatorSimulation, outcome(err))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Dashboard godoc
// @Summary      Margem da carteira
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DashboardRequest  true  "Itens"
// @Success      200   {object}  dto.DashboardResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/simulations/dashboard [post]
func (h *SimulationHandler) Dashboard(c *fiber.Ctx) error {
	var in dto.DashboardRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.svc.Dashboard(in)
	h.metrics.Calculation(metrics.CalculatorDashboard, outcome(err))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Salvar simulação
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaveSimulationRequest  true  "Simulação"
// @Success      201   {object}  dto.SimulationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/simulations [post]
func (h *SimulationHandler) Create(c *fiber.Ctx) error {
	var in dto.SaveSimulationRequest
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
// @Summary      Listar simulações
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Limite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.SimulationListResponse
// @Router       /api/simulations [get]
func (h *SimulationHandler) List(c *fiber.Ctx) error {
	out, err := h.svc.List(c.UserContext(), GetScope(c), pageFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obter simulação
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da simulação"
// @Success      200  {object}  dto.SimulationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/{id} [get]
func (h *SimulationHandler) Get(c *fiber.Ctx) error {
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
// @Summary      Atualizar simulação
// @Tags         simulations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID da simulação"
// @Param        body  body  dto.SaveSimulationRequest  true  "Simulação"
// @Success      200   {object}  dto.SimulationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/simulations/{id} [put]
func (h *SimulationHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return missingID(c)
	}
	var in dto.SaveSimulationRequest
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
// @Summary      Excluir simulação
// @Tags         simulations
// @Security     Bearer
// @Param        id   path  string  true  "ID da simulação"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/{id} [delete]
func (h *SimulationHandler) Delete(c *fiber.Ctx) error {
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
// @Summary      Relatório PDF da simulação
// @Tags         simulations
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID da simulação"
// @Success      200  {file}  binary
// @Router       /api/simulations/{id}/pdf [get]
func (h *SimulationHandler) PDF(c *fiber.Ctx) error {
	data, name, err := h.svc.PDF(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimePDF)
}

// XLSX godoc
// @Summary      Planilha xlsx da simulação
// @Tags         simulations
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        id   path  string  true  "ID da simulação"
// @Success      200  {file}  binary
// @Router       /api/simulations/{id}/xlsx [get]
func (h *SimulationHandler) XLSX(c *fiber.Ctx) error {
	data, name, err := h.svc.XLSX(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return sendFile(c, data, name, mimeXLSX)
}

// SeedFromBreakdown godoc
// @Summary      Semear simulação a partir de uma desossa
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da desossa"
// @Success      200  {object}  dto.SeedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/seed/desossa/{id} [post]
func (h *SimulationHandler) SeedFromBreakdown(c *fiber.Ctx) error {
	out, err := h.svc.SeedFromBreakdown(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SeedFromInvoice godoc
// @Summary      Semear simulação a partir de uma nota fiscal
// @Tags         simulations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID da nota fiscal"
// @Success      200  {object}  dto.SeedResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/simulations/seed/invoice/{id} [post]
func (h *SimulationHandler) SeedFromInvoice(c *fiber.Ctx) error {
	out, err := h.svc.SeedFromInvoice(c.UserContext(), GetScope(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
