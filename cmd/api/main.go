package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/auth"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/application/purchasing"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/export"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/erp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/erp-api/internal/infrastructure/postgres"
	"github.com/jhoicas/erp-api/internal/infrastructure/settings"
	httpRouter "github.com/jhoicas/erp-api/internal/interfaces/http"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

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
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	// Montos como números JSON (no strings) en todas las respuestas.
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	txRunner, repos, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer closeStore()

	ledger := inventory.NewLedger()
	numberer := sequence.NewNumberer(log)
	configProvider := settings.NewStaticConfigProvider(cfg.ERP)

	salesEngine := sales.NewEngine(
		txRunner, repos, ledger, numberer, configProvider,
		infrapdf.NewMarotoPDFGenerator(cfg.App.Name), log,
	)
	purchasingUC := purchasing.NewUseCase(txRunner, repos, ledger, numberer, log)
	inventoryUC := inventory.NewUseCase(txRunner, repos, ledger, export.NewExcelExporter())
	lotUC := inventory.NewLotUseCase(repos)
	sequenceUC := sequence.NewUseCase(txRunner, repos)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:         cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}, log)

	// Swagger UI en local: http://localhost:<port>/docs (requiere ./docs/swagger.json generado con swag)
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "ERP API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sales:       salesEngine,
		Purchases:   purchasingUC,
		Inventory:   inventoryUC,
		Lots:        lotUC,
		Sequences:   sequenceUC,
		WarehouseUC: usecase.NewWarehouseUseCase(txRunner, repos.Warehouses),
		ProductUC:   usecase.NewProductUseCase(repos.Products, configProvider),
		CustomerUC:  usecase.NewCustomerUseCase(repos.Customers),
		SupplierUC:  usecase.NewSupplierUseCase(repos.Suppliers),
		Permissions: auth.NewStaticPermissions(),
		JWTSecret:   cfg.JWT.Secret,
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

// openStore elige la implementación de repositorios según STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config) (ports.TxRunner, repository.Repos, func(), error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		store := memory.NewStore()
		return store, store.Repos(), func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, repository.Repos{}, nil, err
	}
	return postgres.NewTxRunner(pool), postgres.NewRepos(pool), pool.Close, nil
}
