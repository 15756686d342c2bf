package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/desossa-api/internal/application/auth"
	appdesossa "github.com/jhoicas/desossa-api/internal/application/desossa"
	"github.com/jhoicas/desossa-api/internal/application/dto"
	"github.com/jhoicas/desossa-api/internal/application/inventory"
	"github.com/jhoicas/desossa-api/internal/application/simulation"
	"github.com/jhoicas/desossa-api/internal/application/usecase"
	"github.com/jhoicas/desossa-api/internal/application/yield"
	"github.com/jhoicas/desossa-api/internal/domain/repository"
	"github.com/jhoicas/desossa-api/internal/infrastructure/memory"
	"github.com/jhoicas/desossa-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/desossa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/desossa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/desossa-api/internal/infrastructure/spreadsheet"
	httpRouter "github.com/jhoicas/desossa-api/internal/interfaces/http"
	"github.com/jhoicas/desossa-api/pkg/config"
	"github.com/jhoicas/desossa-api/pkg/logger"
)

// repositories conjunto de repositorios según el driver configurado.
type repositories struct {
	companies   repository.CompanyRepository
	users       repository.UserRepository
	breakdowns  repository.BreakdownRepository
	simulations repository.SimulationRepository
	yields      repository.YieldParameterRepository
	invoices    repository.InvoiceRepository
	inventories repository.InventoryCountRepository
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	repos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar persistencia")
	}
	defer repos.close()

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Report.Footer)
	sheets := spreadsheet.NewExcelCodec()
	metricsReg := metrics.New()

	companyUC := usecase.NewCompanyUseCase(repos.companies)
	authUC := auth.NewAuthUseCase(repos.users, repos.companies, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	desossaSvc := appdesossa.NewService(repos.breakdowns, repos.companies, pdfGenerator, sheets, log)
	simulationSvc := simulation.NewService(repos.simulations, desossaSvc, repos.invoices, repos.companies, pdfGenerator, sheets, log)
	yieldSvc := yield.NewService(repos.yields, repos.companies, pdfGenerator, sheets, log)
	inventoryUC := inventory.NewCountUseCase(repos.inventories, repos.companies, pdfGenerator, sheets, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		BodyLimit:    cfg.HTTP.BodyLimitMB * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				code = fe.Code
			}
			if code >= fiber.StatusInternalServerError {
				log.Error().Err(err).Str("path", c.Path()).Msg("error no controlado")
				return c.Status(code).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "erro interno"})
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: err.Error()})
		},
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Desossa API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger no disponible")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(repos.users),
		CompanyUC:     companyUC,
		InvoiceUC:     usecase.NewInvoiceUseCase(repos.invoices),
		ModuleService: usecase.NewModuleService(repos.companies),
		Desossa:       desossaSvc,
		Simulation:    simulationSvc,
		Yield:         yieldSvc,
		Inventory:     inventoryUC,
		Metrics:       metricsReg,
		Logger:        log,
		JWTSecret:     cfg.JWT.Secret,
		ServiceName:   cfg.App.Name,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openRepositories abre PostgreSQL (con migraciones opcionales) o el store en memoria.
func openRepositories(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn().Msg("driver memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		return &repositories{
			companies:   store.Companies(),
			users:       store.Users(),
			breakdowns:  store.Breakdowns(),
			simulations: store.Simulations(),
			yields:      store.YieldParameters(),
			invoices:    store.Invoices(),
			inventories: store.InventoryCounts(),
			close:       func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.DB.MigrateOnStart {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			pool.Close()
			return nil, err
		}
	}
	txRunner := postgres.NewTxRunner(pool)
	return &repositories{
		companies:   postgres.NewCompanyRepository(pool, txRunner),
		users:       postgres.NewUserRepository(pool),
		breakdowns:  postgres.NewBreakdownRepository(pool),
		simulations: postgres.NewSimulationRepository(pool),
		yields:      postgres.NewYieldParameterRepository(pool),
		invoices:    postgres.NewInvoiceRepository(pool),
		inventories: postgres.NewInventoryCountRepository(pool),
		close:       pool.Close,
	}, nil
}
