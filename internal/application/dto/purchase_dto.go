package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de orden de compra.
type PurchaseOrderItemRequest struct {
	ProductID int64           `json:"ProductID" validate:"required,gt=0"`
	Quantity  decimal.Decimal `json:"Quantity"`
	UnitCost  decimal.Decimal `json:"UnitCost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID int64                      `json:"SupplierID" validate:"required,gt=0"`
	OrderDate  *time.Time                 `json:"OrderDate,omitempty"`
	Notes      string                     `json:"Notes,omitempty" validate:"max=500"`
	Items      []PurchaseOrderItemRequest `json:"Items" validate:"required,min=1,dive"`
}

// PurchaseOrderHeader cabecera de orden de compra en respuestas.
type PurchaseOrderHeader struct {
	ID          int64           `json:"ID"`
	SupplierID  int64           `json:"SupplierID"`
	OrderNumber string          `json:"OrderNumber"`
	OrderDate   time.Time       `json:"OrderDate"`
	Status      string          `json:"Status"`
	TotalAmount decimal.Decimal `json:"TotalAmount"`
	Notes       string          `json:"Notes,omitempty"`
}

// PurchaseOrderItemResponse línea de orden de compra en respuestas.
type PurchaseOrderItemResponse struct {
	ID               int64           `json:"ID"`
	ProductID        int64           `json:"ProductID"`
	OrderedQuantity  decimal.Decimal `json:"OrderedQuantity"`
	ReceivedQuantity decimal.Decimal `json:"ReceivedQuantity"`
	UnitCost         decimal.Decimal `json:"UnitCost"`
	LineTotal        decimal.Decimal `json:"LineTotal"`
}

// PurchaseOrderResponse respuesta de POST/GET de órdenes de compra.
type PurchaseOrderResponse struct {
	Header PurchaseOrderHeader         `json:"header"`
	Items  []PurchaseOrderItemResponse `json:"items"`
}

// GoodsReceiptItemRequest línea recibida. LotNumber crea o reutiliza el lote del producto.
type GoodsReceiptItemRequest struct {
	ProductID           int64           `json:"ProductID" validate:"required,gt=0"`
	QuantityReceived    decimal.Decimal `json:"QuantityReceived"`
	UnitCost            decimal.Decimal `json:"UnitCost"`
	PurchaseOrderItemID *int64          `json:"PurchaseOrderItemID,omitempty"`
	LotID               *int64          `json:"LotID,omitempty"`
	LotNumber           string          `json:"LotNumber,omitempty" validate:"max=100"`
	ExpirationDate      *time.Time      `json:"ExpirationDate,omitempty"`
}

// CreateGoodsReceiptRequest body para POST /api/goods-receipts.
type CreateGoodsReceiptRequest struct {
	SupplierID      int64                     `json:"SupplierID" validate:"required,gt=0"`
	WarehouseID     int64                     `json:"WarehouseID" validate:"required,gt=0"`
	ReceiptNumber   string                    `json:"ReceiptNumber" validate:"required,max=60"`
	PurchaseOrderID *int64                    `json:"PurchaseOrderID,omitempty"`
	ReceiptDate     *time.Time                `json:"ReceiptDate,omitempty"`
	Notes           string                    `json:"Notes,omitempty" validate:"max=500"`
	Items           []GoodsReceiptItemRequest `json:"Items" validate:"required,min=1,dive"`
}

// GoodsReceiptHeader cabecera de recepción en respuestas.
type GoodsReceiptHeader struct {
	ID               int64     `json:"ID"`
	SupplierID       int64     `json:"SupplierID"`
	WarehouseID      int64     `json:"WarehouseID"`
	ReceiptNumber    string    `json:"ReceiptNumber"`
	ReceiptDate      time.Time `json:"ReceiptDate"`
	PurchaseOrderID  *int64    `json:"PurchaseOrderID,omitempty"`
	DirectPurchaseID *int64    `json:"DirectPurchaseID,omitempty"`
	Notes            string    `json:"Notes,omitempty"`
}

// GoodsReceiptItemResponse línea recibida en respuestas.
type GoodsReceiptItemResponse struct {
	ID                   int64           `json:"ID"`
	ProductID            int64           `json:"ProductID"`
	QuantityReceived     decimal.Decimal `json:"QuantityReceived"`
	UnitCost             decimal.Decimal `json:"UnitCost"`
	PurchaseOrderItemID  *int64          `json:"PurchaseOrderItemID,omitempty"`
	DirectPurchaseItemID *int64          `json:"DirectPurchaseItemID,omitempty"`
	LotID                *int64          `json:"LotID,omitempty"`
}

// GoodsReceiptResponse respuesta de POST /api/goods-receipts.
type GoodsReceiptResponse struct {
	Header GoodsReceiptHeader         `json:"header"`
	Items  []GoodsReceiptItemResponse `json:"items"`
}

// DirectPurchaseItemRequest línea de compra directa. TaxPct nil toma el IVA del producto.
type DirectPurchaseItemRequest struct {
	ProductID int64            `json:"ProductID" validate:"required,gt=0"`
	Quantity  decimal.Decimal  `json:"Quantity"`
	UnitCost  decimal.Decimal  `json:"UnitCost"`
	TaxPct    *decimal.Decimal `json:"TaxPct,omitempty"`
}

// CreateDirectPurchaseRequest body para POST /api/direct-purchases.
type CreateDirectPurchaseRequest struct {
	SupplierID    int64                       `json:"SupplierID" validate:"required,gt=0"`
	WarehouseID   *int64                      `json:"WarehouseID,omitempty"`
	ReceiptNumber string                      `json:"ReceiptNumber" validate:"required,max=60"`
	PurchaseDate  *time.Time                  `json:"PurchaseDate,omitempty"`
	Notes         string                      `json:"Notes,omitempty" validate:"max=500"`
	Items         []DirectPurchaseItemRequest `json:"Items" validate:"required,min=1,dive"`
}

// DirectPurchaseHeader cabecera de compra directa en respuestas.
type DirectPurchaseHeader struct {
	ID             int64           `json:"ID"`
	SupplierID     int64           `json:"SupplierID"`
	WarehouseID    *int64          `json:"WarehouseID,omitempty"`
	ReceiptNumber  string          `json:"ReceiptNumber"`
	PurchaseDate   time.Time       `json:"PurchaseDate"`
	Status         string          `json:"Status"`
	TotalAmount    decimal.Decimal `json:"TotalAmount"`
	TaxAmountTotal decimal.Decimal `json:"TaxAmountTotal"`
	FinalAmount    decimal.Decimal `json:"FinalAmount"`
	Notes          string          `json:"Notes,omitempty"`
}

// DirectPurchaseItemResponse línea de compra directa en respuestas.
type DirectPurchaseItemResponse struct {
	ID               int64           `json:"ID"`
	ProductID        int64           `json:"ProductID"`
	Quantity         decimal.Decimal `json:"Quantity"`
	ReceivedQuantity decimal.Decimal `json:"ReceivedQuantity"`
	UnitCost         decimal.Decimal `json:"UnitCost"`
	TaxPct           decimal.Decimal `json:"TaxPct"`
	TaxAmount        decimal.Decimal `json:"TaxAmount"`
	LineTotal        decimal.Decimal `json:"LineTotal"`
}

// DirectPurchaseResponse respuesta de POST/GET de compras directas.
type DirectPurchaseResponse struct {
	Header DirectPurchaseHeader         `json:"header"`
	Items  []DirectPurchaseItemResponse `json:"items"`
}

// ReceiveDirectPurchaseItem cantidad a recibir de una línea de compra directa.
type ReceiveDirectPurchaseItem struct {
	DirectPurchaseItemID int64           `json:"DirectPurchaseItemID" validate:"required,gt=0"`
	Quantity             decimal.Decimal `json:"Quantity"`
	LotNumber            string          `json:"LotNumber,omitempty" validate:"max=100"`
	ExpirationDate       *time.Time      `json:"ExpirationDate,omitempty"`
}

// ReceiveDirectPurchaseRequest body para POST /api/direct-purchases/:id/receive.
// Sin Items se recibe todo lo pendiente; WarehouseID nil usa la bodega de la compra.
// ReceiptNumber vacío usa el número de la compra.
type ReceiveDirectPurchaseRequest struct {
	WarehouseID   *int64                      `json:"WarehouseID,omitempty"`
	ReceiptNumber string                      `json:"ReceiptNumber,omitempty" validate:"max=60"`
	Items         []ReceiveDirectPurchaseItem `json:"Items" validate:"dive"`
}
