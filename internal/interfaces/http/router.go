package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/application/purchasing"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// AppConfig parámetros del servidor Fiber.
type AppConfig struct {
	Name         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewApp crea la aplicación Fiber con recover, log de peticiones y el mapeo de errores de dominio.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: ErrorHandler(log),
	})
	app.Use(RequestLogger(log))
	app.Use(recover.New())
	return app
}

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Sales       *sales.Engine
	Purchases   *purchasing.UseCase
	Inventory   *inventory.UseCase
	Lots        *inventory.LotUseCase
	Sequences   *sequence.UseCase
	WarehouseUC *usecase.WarehouseUseCase
	ProductUC   *usecase.ProductUseCase
	CustomerUC  *usecase.CustomerUseCase
	SupplierUC  *usecase.SupplierUseCase
	Permissions ports.PermissionChecker
	JWTSecret   string
}

// Router registra las rutas de la API. Todas requieren Bearer Token y permiso por acción.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	can := func(action string) fiber.Handler {
		return RequirePermission(deps.Permissions, action)
	}

	// Ventas, notas y guías
	salesHandler := NewSalesHandler(deps.Sales)
	salesGroup := api.Group("/sales")
	salesGroup.Post("/", can(ports.ActionSalesCreate), salesHandler.Create)
	salesGroup.Post("/credit-note", can(ports.ActionSalesNotes), salesHandler.CreditNote)
	salesGroup.Post("/debit-note", can(ports.ActionSalesNotes), salesHandler.DebitNote)
	salesGroup.Post("/guia-despacho", can(ports.ActionDispatchCreate), salesHandler.GuiaDespacho)
	salesGroup.Get("/", can(ports.ActionSalesRead), salesHandler.List)
	salesGroup.Get("/:id", can(ports.ActionSalesRead), salesHandler.GetByID)
	salesGroup.Get("/:id/pdf", can(ports.ActionSalesRead), salesHandler.PDF)
	salesGroup.Post("/:id/payments", can(ports.ActionSalesPayments), salesHandler.ApplyPayments)

	// Compras
	purchaseHandler := NewPurchaseHandler(deps.Purchases)
	api.Post("/goods-receipts", can(ports.ActionPurchasesWrite), purchaseHandler.CreateGoodsReceipt)
	directPurchases := api.Group("/direct-purchases")
	directPurchases.Post("/", can(ports.ActionPurchasesWrite), purchaseHandler.CreateDirectPurchase)
	directPurchases.Get("/:id", can(ports.ActionPurchasesRead), purchaseHandler.GetDirectPurchase)
	directPurchases.Post("/:id/receive", can(ports.ActionPurchasesWrite), purchaseHandler.ReceiveDirectPurchase)
	purchaseOrders := api.Group("/purchase-orders")
	purchaseOrders.Post("/", can(ports.ActionPurchasesWrite), purchaseHandler.CreatePurchaseOrder)
	purchaseOrders.Get("/:id", can(ports.ActionPurchasesRead), purchaseHandler.GetPurchaseOrder)

	// Inventario
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	invGroup := api.Group("/inventory")
	invGroup.Post("/adjust", can(ports.ActionInventoryAdjust), inventoryHandler.Adjust)
	invGroup.Post("/adjust/bulk", can(ports.ActionInventoryAdjust), inventoryHandler.BulkAdjust)
	invGroup.Post("/transfer", can(ports.ActionInventoryAdjust), inventoryHandler.Transfer)
	invGroup.Get("/levels", can(ports.ActionInventoryRead), inventoryHandler.Levels)
	invGroup.Get("/levels/export", can(ports.ActionInventoryRead), inventoryHandler.Export)
	invGroup.Get("/transactions", can(ports.ActionInventoryRead), inventoryHandler.Transactions)

	// Lotes y series
	lotHandler := NewLotHandler(deps.Lots)
	api.Post("/product-lots", can(ports.ActionInventoryAdjust), lotHandler.CreateLot)
	api.Get("/product-lots", can(ports.ActionInventoryRead), lotHandler.ListLots)
	api.Post("/product-serials", can(ports.ActionInventoryAdjust), lotHandler.CreateSerial)
	api.Get("/product-serials", can(ports.ActionInventoryRead), lotHandler.ListSerials)

	// Correlativos
	sequenceHandler := NewSequenceHandler(deps.Sequences)
	sequences := api.Group("/document-sequences", can(ports.ActionSequencesManage))
	sequences.Get("/", sequenceHandler.List)
	sequences.Post("/", sequenceHandler.Create)
	sequences.Put("/:id", sequenceHandler.Update)

	// Catálogo
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := api.Group("/warehouses")
	warehouses.Post("/", can(ports.ActionCatalogWrite), warehouseHandler.Create)
	warehouses.Get("/", can(ports.ActionCatalogRead), warehouseHandler.List)
	warehouses.Get("/:id", can(ports.ActionCatalogRead), warehouseHandler.GetByID)
	warehouses.Put("/:id", can(ports.ActionCatalogWrite), warehouseHandler.Update)

	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/products")
	products.Post("/", can(ports.ActionCatalogWrite), productHandler.Create)
	products.Get("/", can(ports.ActionCatalogRead), productHandler.List)
	products.Get("/:id", can(ports.ActionCatalogRead), productHandler.GetByID)
	products.Put("/:id", can(ports.ActionCatalogWrite), productHandler.Update)

	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers")
	customers.Post("/", can(ports.ActionCatalogWrite), customerHandler.Create)
	customers.Get("/", can(ports.ActionCatalogRead), customerHandler.List)
	customers.Get("/:id", can(ports.ActionCatalogRead), customerHandler.GetByID)
	customers.Put("/:id", can(ports.ActionCatalogWrite), customerHandler.Update)

	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers := api.Group("/suppliers")
	suppliers.Post("/", can(ports.ActionCatalogWrite), supplierHandler.Create)
	suppliers.Get("/", can(ports.ActionCatalogRead), supplierHandler.List)
	suppliers.Get("/:id", can(ports.ActionCatalogRead), supplierHandler.GetByID)
}
