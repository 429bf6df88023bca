package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de inventario.
const (
	TxTypeSale             = "Sale"
	TxTypeSaleShipment     = "SaleShipment"
	TxTypeCreditNote       = "CreditNote"
	TxTypeDebitNote        = "DebitNote"
	TxTypePurchaseReceived = "PurchaseReceived"
	TxTypeManualAdjustment = "ManualAdjustment"
	TxTypeTransferOut      = "TransferOut"
	TxTypeTransferIn       = "TransferIn"
)

// Tipos de documento referenciados por una transacción de inventario.
const (
	RefDocSale         = "Sale"
	RefDocGoodsReceipt = "GoodsReceipt"
	RefDocAdjustment   = "Adjustment"
	RefDocTransfer     = "Transfer"
)

// InventoryTransaction registro inmutable (append-only) de un cambio de stock.
// QuantityChange es positivo en entradas y negativo en salidas.
type InventoryTransaction struct {
	ID              int64
	CompanyID       int64
	ProductID       int64
	WarehouseID     int64
	LotID           *int64
	SerialNumber    string
	QuantityChange  decimal.Decimal
	TransactionType string
	ReferenceType   string
	ReferenceID     *int64
	BatchID         string // agrupa los movimientos de una misma operación
	EmployeeID      *int64
	Notes           string
	CreatedAt       time.Time
}
