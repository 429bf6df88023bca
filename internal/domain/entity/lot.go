package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un número de serie.
const (
	SerialStatusInStock  = "InStock"
	SerialStatusSold     = "Sold"
	SerialStatusReturned = "Returned"
)

// ProductLot lote de un producto (único por empresa+producto+número de lote).
type ProductLot struct {
	ID             int64
	CompanyID      int64
	ProductID      int64
	LotNumber      string
	ExpirationDate *time.Time
	CreatedAt      time.Time
}

// LotStock cantidad de un lote en una bodega; usado en la consulta FEFO.
type LotStock struct {
	Lot         ProductLot
	WarehouseID int64
	Quantity    decimal.Decimal
}

// ProductSerial número de serie de una unidad (único por empresa+producto+serie).
type ProductSerial struct {
	ID           int64
	CompanyID    int64
	ProductID    int64
	SerialNumber string
	WarehouseID  *int64
	Status       string
	SaleID       *int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
