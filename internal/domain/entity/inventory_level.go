package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryLevel representa el stock actual de un producto en una bodega (y lote opcional).
// Es una caché materializada de InventoryTransaction: StockQuantity siempre es la suma
// de los QuantityChange registrados para la misma clave. Puede quedar negativo.
type InventoryLevel struct {
	ID               int64
	CompanyID        int64
	ProductID        int64
	WarehouseID      int64
	LotID            *int64
	StockQuantity    decimal.Decimal
	ReservedQuantity decimal.Decimal
	UpdatedAt        time.Time
}
