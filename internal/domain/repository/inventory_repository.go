package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// LevelKey clave de un nivel de inventario; LotID nil es el stock sin lote.
type LevelKey struct {
	CompanyID   int64
	ProductID   int64
	WarehouseID int64
	LotID       *int64
}

// LevelFilter filtros de consulta de niveles.
type LevelFilter struct {
	CompanyID   int64
	ProductID   *int64
	WarehouseID *int64
	IncludeZero bool
}

// TransactionFilter filtros de consulta del log de transacciones.
type TransactionFilter struct {
	CompanyID   int64
	ProductID   *int64
	WarehouseID *int64
	LotID       *int64
	Limit       int
	Offset      int
}

// InventoryRepository puerto del ledger: niveles materializados y log inmutable.
type InventoryRepository interface {
	// GetLevelForUpdate bloquea la fila del nivel (SELECT ... FOR UPDATE); nil si no existe.
	GetLevelForUpdate(ctx context.Context, key LevelKey) (*entity.InventoryLevel, error)
	// InsertLevel crea el nivel con StockQuantity como stock inicial. Si otra transacción
	// lo creó en paralelo, suma StockQuantity al existente y deja level con el valor final.
	InsertLevel(ctx context.Context, level *entity.InventoryLevel) error
	UpdateLevelStock(ctx context.Context, level *entity.InventoryLevel) error
	InsertTransaction(ctx context.Context, tx *entity.InventoryTransaction) error
	// AddLotQuantity suma delta a la cantidad del lote en la bodega (upsert).
	AddLotQuantity(ctx context.Context, companyID, lotID, warehouseID int64, delta decimal.Decimal) error
	ListLevels(ctx context.Context, filter LevelFilter) ([]*entity.InventoryLevel, error)
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]*entity.InventoryTransaction, error)
}
