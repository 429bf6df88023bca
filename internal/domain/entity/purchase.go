package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra o compra directa respecto a lo recibido.
const (
	PurchaseStatusPending           = "Pending"
	PurchaseStatusSubmitted         = "Submitted"
	PurchaseStatusPartiallyReceived = "PartiallyReceived"
	PurchaseStatusReceived          = "Received"
)

// PurchaseOrder cabecera de una orden de compra a proveedor.
type PurchaseOrder struct {
	ID          int64
	CompanyID   int64
	SupplierID  int64
	EmployeeID  *int64
	OrderNumber string
	OrderDate   time.Time
	Status      string
	TotalAmount decimal.Decimal
	Notes       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PurchaseOrderItem línea de una orden de compra. ReceivedQuantity es el único campo mutable.
type PurchaseOrderItem struct {
	ID               int64
	PurchaseOrderID  int64
	CompanyID        int64
	ProductID        int64
	OrderedQuantity  decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
	LineTotal        decimal.Decimal
}

// GoodsReceipt cabecera de una recepción de mercadería en bodega.
// Puede estar enlazada a una orden de compra o a una compra directa.
type GoodsReceipt struct {
	ID               int64
	CompanyID        int64
	SupplierID       int64
	WarehouseID      int64
	EmployeeID       *int64
	ReceiptNumber    string
	ReceiptDate      time.Time
	PurchaseOrderID  *int64
	DirectPurchaseID *int64
	Notes            string
	CreatedAt        time.Time
}

// GoodsReceiptItem línea recibida.
type GoodsReceiptItem struct {
	ID                   int64
	GoodsReceiptID       int64
	CompanyID            int64
	ProductID            int64
	PurchaseOrderItemID  *int64
	DirectPurchaseItemID *int64
	LotID                *int64
	QuantityReceived     decimal.Decimal
	UnitCost             decimal.Decimal
}

// DirectPurchase compra registrada sin orden previa; el stock se mueve al recibirla.
type DirectPurchase struct {
	ID             int64
	CompanyID      int64
	SupplierID     int64
	WarehouseID    *int64
	EmployeeID     *int64
	ReceiptNumber  string
	PurchaseDate   time.Time
	Status         string
	TotalAmount    decimal.Decimal
	TaxAmountTotal decimal.Decimal
	FinalAmount    decimal.Decimal
	Notes          string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DirectPurchaseItem línea de una compra directa.
type DirectPurchaseItem struct {
	ID               int64
	DirectPurchaseID int64
	CompanyID        int64
	ProductID        int64
	Quantity         decimal.Decimal
	ReceivedQuantity decimal.Decimal
	UnitCost         decimal.Decimal
	TaxPct           decimal.Decimal
	TaxAmount        decimal.Decimal
	LineTotal        decimal.Decimal
}
