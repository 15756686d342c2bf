package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/desossa-api/internal/application/auth"
	"github.com/jhoicas/desossa-api/internal/application/desossa"
	"github.com/jhoicas/desossa-api/internal/application/inventory"
	"github.com/jhoicas/desossa-api/internal/application/simulation"
	"github.com/jhoicas/desossa-api/internal/application/usecase"
	"github.com/jhoicas/desossa-api/internal/application/yield"
	"github.com/jhoicas/desossa-api/internal/domain/entity"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
	"github.com/jhoicas/desossa-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	CompanyUC     *usecase.CompanyUseCase
	InvoiceUC     *usecase.InvoiceUseCase
	ModuleService *usecase.ModuleService
	Desossa       *desossa.Service
	Simulation    *simulation.Service
	Yield         *yield.Service
	Inventory     *inventory.CountUseCase
	Metrics       *metrics.Metrics // nil → sin /metrics
	Logger        *logger.Logger
	JWTSecret     string
	ServiceName   string
}

// Router registra /health, /metrics y las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	var rec metrics.Recorder = metrics.Nop{}
	if deps.Metrics != nil {
		rec = deps.Metrics
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	api := app.Group("/api", RequestLogger(log))
	authMW := AuthMiddleware(deps.JWTSecret)
	managers := RequireRole(entity.RoleAdmin, entity.RoleGerente)
	module := func(name string) fiber.Handler {
		return RequireModule(name, deps.ModuleService, log)
	}

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC, deps.UserUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", authMW, authHandler.Me)

	// Companies (alta pública para el primer acceso; lectura protegida)
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies := api.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Get("/", authMW, RequireRole(entity.RoleAdmin), companyHandler.List)
	companies.Get("/:id", authMW, companyHandler.GetByID)

	// Desossa
	desossaHandler := NewDesossaHandler(deps.Desossa, rec)
	des := api.Group("/desossa", authMW, module(entity.ModuleDesossa))
	des.Post("/calculate", desossaHandler.Calculate)
	des.Post("/import", desossaHandler.Import)
	des.Post("/", desossaHandler.Create)
	des.Get("/", desossaHandler.List)
	des.Get("/:id", desossaHandler.Get)
	des.Put("/:id", desossaHandler.Update)
	des.Delete("/:id", managers, desossaHandler.Delete)
	des.Get("/:id/pdf", desossaHandler.PDF)
	des.Get("/:id/xlsx", desossaHandler.XLSX)

	// Simulações de preço
	simHandler := NewSimulationHandler(deps.Simulation, rec)
	sims := api.Group("/simulations", authMW, module(entity.ModuleSimulacao))
	sims.Post("/apply", simHandler.Apply)
	sims.Post("/dashboard", simHandler.Dashboard)
	sims.Post("/seed/desossa/:id", simHandler.SeedFromBreakdown)
	sims.Post("/seed/invoice/:id", simHandler.SeedFromInvoice)
	sims.Post("/", simHandler.Create)
	sims.Get("/", simHandler.List)
	sims.Get("/:id", simHandler.Get)
	sims.Put("/:id", simHandler.Update)
	sims.Delete("/:id", managers, simHandler.Delete)
	sims.Get("/:id/pdf", simHandler.PDF)
	sims.Get("/:id/xlsx", simHandler.XLSX)

	// Rendimento
	yieldHandler := NewYieldHandler(deps.Yield, rec)
	yg := api.Group("/yield", authMW, module(entity.ModuleRendimento))
	yg.Post("/project", yieldHandler.Project)
	yg.Get("/parts", yieldHandler.Parts)
	yg.Post("/export/pdf", yieldHandler.ExportPDF)
	yg.Post("/export/xlsx", yieldHandler.ExportXLSX)
	yg.Post("/parameters", yieldHandler.Create)
	yg.Get("/parameters", yieldHandler.List)
	yg.Put("/parameters/:id", yieldHandler.Update)
	yg.Delete("/parameters/:id", managers, yieldHandler.Delete)

	// Notas fiscais de compra
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := api.Group("/invoices", authMW, module(entity.ModuleNotas))
	invoices.Post("/", invoiceHandler.Create)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Put("/:id", invoiceHandler.Update)
	invoices.Delete("/:id", managers, invoiceHandler.Delete)

	// Inventário físico e quebras
	inventoryHandler := NewInventoryHandler(deps.Inventory, rec)
	inv := api.Group("/inventory", authMW, module(entity.ModuleInventario))
	inv.Post("/analyze", inventoryHandler.Analyze)
	inv.Get("/template", inventoryHandler.Template)
	inv.Post("/import", inventoryHandler.Import)
	inv.Post("/", inventoryHandler.Create)
	inv.Get("/", inventoryHandler.List)
	inv.Get("/:id", inventoryHandler.Get)
	inv.Put("/:id", inventoryHandler.Update)
	inv.Delete("/:id", managers, inventoryHandler.Delete)
	inv.Post("/:id/import", inventoryHandler.ImportInto)
	inv.Get("/:id/pdf", inventoryHandler.PDF)
	inv.Get("/:id/xlsx", inventoryHandler.XLSX)
}
