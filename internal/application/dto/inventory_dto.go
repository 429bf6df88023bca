package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustInventoryRequest body para POST /api/inventory/adjust.
type AdjustInventoryRequest struct {
	ProductID      int64           `json:"ProductID" validate:"required,gt=0"`
	WarehouseID    int64           `json:"WarehouseID" validate:"required,gt=0"`
	LotID          *int64          `json:"LotID,omitempty"`
	QuantityChange decimal.Decimal `json:"QuantityChange"`
	Reason         string          `json:"Reason,omitempty" validate:"max=500"`
}

// BulkAdjustItem cantidad objetivo (absoluta) para una clave de inventario.
type BulkAdjustItem struct {
	ProductID      int64           `json:"ProductID" validate:"required,gt=0"`
	WarehouseID    int64           `json:"WarehouseID" validate:"required,gt=0"`
	LotID          *int64          `json:"LotID,omitempty"`
	TargetQuantity decimal.Decimal `json:"TargetQuantity"`
}

// BulkAdjustRequest body para POST /api/inventory/adjust/bulk (conteo físico).
type BulkAdjustRequest struct {
	Reason string           `json:"Reason,omitempty" validate:"max=500"`
	Items  []BulkAdjustItem `json:"Items" validate:"required,min=1,dive"`
}

// BulkAdjustResponse niveles resultantes; BatchID agrupa las transacciones generadas.
type BulkAdjustResponse struct {
	BatchID string                   `json:"BatchID"`
	Levels  []InventoryLevelResponse `json:"Levels"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID       int64           `json:"ProductID" validate:"required,gt=0"`
	FromWarehouseID int64           `json:"FromWarehouseID" validate:"required,gt=0"`
	ToWarehouseID   int64           `json:"ToWarehouseID" validate:"required,gt=0,nefield=FromWarehouseID"`
	LotID           *int64          `json:"LotID,omitempty"`
	Quantity        decimal.Decimal `json:"Quantity"`
	Notes           string          `json:"Notes,omitempty" validate:"max=500"`
}

// TransferResponse niveles de origen y destino tras la transferencia.
type TransferResponse struct {
	BatchID string                 `json:"BatchID"`
	From    InventoryLevelResponse `json:"From"`
	To      InventoryLevelResponse `json:"To"`
}

// InventoryLevelResponse fila de nivel de inventario.
type InventoryLevelResponse struct {
	ID               int64           `json:"ID"`
	ProductID        int64           `json:"ProductID"`
	WarehouseID      int64           `json:"WarehouseID"`
	LotID            *int64          `json:"LotID,omitempty"`
	StockQuantity    decimal.Decimal `json:"StockQuantity"`
	ReservedQuantity decimal.Decimal `json:"ReservedQuantity"`
	UpdatedAt        time.Time       `json:"UpdatedAt"`
}

// LevelQuery filtros de GET /api/inventory/levels.
type LevelQuery struct {
	ProductID   *int64
	WarehouseID *int64
	IncludeZero bool
}

// TransactionQuery filtros de GET /api/inventory/transactions.
type TransactionQuery struct {
	PageRequest
	ProductID   *int64
	WarehouseID *int64
	LotID       *int64
}

// InventoryTransactionResponse fila del log de transacciones.
type InventoryTransactionResponse struct {
	ID              int64           `json:"ID"`
	ProductID       int64           `json:"ProductID"`
	WarehouseID     int64           `json:"WarehouseID"`
	LotID           *int64          `json:"LotID,omitempty"`
	SerialNumber    string          `json:"SerialNumber,omitempty"`
	QuantityChange  decimal.Decimal `json:"QuantityChange"`
	TransactionType string          `json:"TransactionType"`
	ReferenceType   string          `json:"ReferenceType,omitempty"`
	ReferenceID     *int64          `json:"ReferenceID,omitempty"`
	BatchID         string          `json:"BatchID,omitempty"`
	EmployeeID      *int64          `json:"EmployeeID,omitempty"`
	Notes           string          `json:"Notes,omitempty"`
	CreatedAt       time.Time       `json:"CreatedAt"`
}

// CreateLotRequest body para POST /api/product-lots.
type CreateLotRequest struct {
	ProductID      int64      `json:"ProductID" validate:"required,gt=0"`
	LotNumber      string     `json:"LotNumber" validate:"required,max=100"`
	ExpirationDate *time.Time `json:"ExpirationDate,omitempty"`
}

// LotQuery filtros de GET /api/product-lots.
type LotQuery struct {
	ProductID    int64
	WarehouseID  *int64
	IncludeEmpty bool
}

// LotResponse lote, con cantidad por bodega cuando viene de la consulta FEFO.
type LotResponse struct {
	ID             int64            `json:"ID"`
	ProductID      int64            `json:"ProductID"`
	LotNumber      string           `json:"LotNumber"`
	ExpirationDate *time.Time       `json:"ExpirationDate,omitempty"`
	WarehouseID    *int64           `json:"WarehouseID,omitempty"`
	Quantity       *decimal.Decimal `json:"Quantity,omitempty"`
}

// CreateSerialRequest body para POST /api/product-serials.
type CreateSerialRequest struct {
	ProductID    int64  `json:"ProductID" validate:"required,gt=0"`
	SerialNumber string `json:"SerialNumber" validate:"required,max=100"`
	WarehouseID  *int64 `json:"WarehouseID,omitempty"`
}

// SerialResponse número de serie.
type SerialResponse struct {
	ID           int64  `json:"ID"`
	ProductID    int64  `json:"ProductID"`
	SerialNumber string `json:"SerialNumber"`
	WarehouseID  *int64 `json:"WarehouseID,omitempty"`
	Status       string `json:"Status"`
	SaleID       *int64 `json:"SaleID,omitempty"`
}
