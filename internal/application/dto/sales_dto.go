package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta, guía o nota.
// UnitPrice nil toma el precio del producto (o el precio vendido, en notas); TaxPct nil toma el IVA del producto.
// DiscountAmount, si viene, reemplaza al descuento porcentual.
type SaleItemRequest struct {
	ProductID      int64            `json:"ProductID" validate:"required,gt=0"`
	Quantity       decimal.Decimal  `json:"Quantity"`
	UnitPrice      *decimal.Decimal `json:"UnitPrice,omitempty"`
	DiscountPct    decimal.Decimal  `json:"DiscountPct"`
	DiscountAmount *decimal.Decimal `json:"DiscountAmount,omitempty"`
	TaxPct         *decimal.Decimal `json:"TaxPct,omitempty"`
	TaxExempt      bool             `json:"TaxExempt"`
	LotID          *int64           `json:"LotID,omitempty"`
	SerialNumber   string           `json:"SerialNumber,omitempty" validate:"max=100"`
}

// PaymentRequest pago aplicado a una venta.
type PaymentRequest struct {
	PaymentMethod string          `json:"PaymentMethod" validate:"required,max=50"`
	Amount        decimal.Decimal `json:"Amount"`
	Reference     string          `json:"Reference,omitempty" validate:"max=100"`
}

// CreateSaleRequest body para POST /api/sales.
// DocumentType vacío usa el tipo configurado para la empresa; WarehouseID nil usa la bodega por defecto.
type CreateSaleRequest struct {
	CustomerID   *int64            `json:"CustomerID,omitempty"`
	DocumentType string            `json:"DocumentType,omitempty" validate:"max=40"`
	WarehouseID  *int64            `json:"WarehouseID,omitempty"`
	IsElectronic *bool             `json:"IsElectronic,omitempty"`
	IsTaxExempt  bool              `json:"IsTaxExempt"`
	CurrencyID   *int64            `json:"CurrencyID,omitempty"`
	SaleDate     *time.Time        `json:"SaleDate,omitempty"`
	Notes        string            `json:"Notes,omitempty" validate:"max=500"`
	Items        []SaleItemRequest `json:"Items" validate:"required,min=1,dive"`
	Payments     []PaymentRequest  `json:"Payments" validate:"dive"`
}

// SaleTotals totales de cabecera. TotalAmount es la suma de brutos (cantidad * precio).
type SaleTotals struct {
	TotalAmount         decimal.Decimal `json:"TotalAmount"`
	DiscountAmountTotal decimal.Decimal `json:"DiscountAmountTotal"`
	TaxAmountTotal      decimal.Decimal `json:"TaxAmountTotal"`
	FinalAmount         decimal.Decimal `json:"FinalAmount"`
	AmountPaid          decimal.Decimal `json:"AmountPaid"`
}

// CreateSaleResponse respuesta de POST /api/sales.
type CreateSaleResponse struct {
	SaleID         int64      `json:"SaleID"`
	DocumentType   string     `json:"DocumentType"`
	DocumentNumber string     `json:"DocumentNumber"`
	PaymentStatus  string     `json:"PaymentStatus"`
	Totals         SaleTotals `json:"totals"`
}

// CreateNoteRequest body para POST /api/sales/credit-note y /api/sales/debit-note.
// WarehouseID nil usa la bodega de la venta original.
type CreateNoteRequest struct {
	OriginalSaleID int64             `json:"OriginalSaleID" validate:"required,gt=0"`
	WarehouseID    *int64            `json:"WarehouseID,omitempty"`
	IsElectronic   *bool             `json:"IsElectronic,omitempty"`
	Notes          string            `json:"Notes,omitempty" validate:"max=500"`
	Items          []SaleItemRequest `json:"Items" validate:"required,min=1,dive"`
}

// CreditNoteResponse respuesta de POST /api/sales/credit-note.
type CreditNoteResponse struct {
	CreditNoteID   int64           `json:"CreditNoteID"`
	DocumentNumber string          `json:"DocumentNumber"`
	FinalAmount    decimal.Decimal `json:"FinalAmount"`
}

// DebitNoteResponse respuesta de POST /api/sales/debit-note.
type DebitNoteResponse struct {
	DebitNoteID    int64           `json:"DebitNoteID"`
	DocumentNumber string          `json:"DocumentNumber"`
	FinalAmount    decimal.Decimal `json:"FinalAmount"`
}

// CreateGuiaDespachoRequest body para POST /api/sales/guia-despacho.
type CreateGuiaDespachoRequest struct {
	CustomerID   *int64            `json:"CustomerID,omitempty"`
	WarehouseID  *int64            `json:"WarehouseID,omitempty"`
	CurrencyID   *int64            `json:"CurrencyID,omitempty"`
	IsElectronic *bool             `json:"IsElectronic,omitempty"`
	Notes        string            `json:"Notes,omitempty" validate:"max=500"`
	Items        []SaleItemRequest `json:"Items" validate:"required,min=1,dive"`
}

// GuiaDespachoResponse respuesta de POST /api/sales/guia-despacho.
type GuiaDespachoResponse struct {
	SaleID         int64      `json:"SaleID"`
	DocumentNumber string     `json:"DocumentNumber"`
	Totals         SaleTotals `json:"totals"`
}

// ApplyPaymentsRequest body para POST /api/sales/:id/payments.
type ApplyPaymentsRequest struct {
	Payments []PaymentRequest `json:"Payments" validate:"required,min=1,dive"`
}

// PaymentStatusResponse estado de pago tras aplicar pagos.
type PaymentStatusResponse struct {
	SaleID        int64           `json:"SaleID"`
	FinalAmount   decimal.Decimal `json:"FinalAmount"`
	AmountPaid    decimal.Decimal `json:"AmountPaid"`
	PaymentStatus string          `json:"PaymentStatus"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	PageRequest
	DocumentType string
	CustomerID   *int64
	From, To     *time.Time
}

// SaleSummary fila del listado de ventas.
type SaleSummary struct {
	ID             int64           `json:"ID"`
	DocumentType   string          `json:"DocumentType"`
	DocumentNumber string          `json:"DocumentNumber"`
	CustomerID     *int64          `json:"CustomerID,omitempty"`
	WarehouseID    int64           `json:"WarehouseID"`
	OriginalSaleID *int64          `json:"OriginalSaleID,omitempty"`
	SaleDate       time.Time       `json:"SaleDate"`
	FinalAmount    decimal.Decimal `json:"FinalAmount"`
	PaymentStatus  string          `json:"PaymentStatus"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleSummary `json:"items"`
	Page  PageResponse  `json:"page"`
}

// SaleItemResponse línea en el detalle de una venta.
type SaleItemResponse struct {
	ID             int64           `json:"ID"`
	ProductID      int64           `json:"ProductID"`
	ProductName    string          `json:"ProductName,omitempty"`
	LotID          *int64          `json:"LotID,omitempty"`
	SerialNumber   string          `json:"SerialNumber,omitempty"`
	Quantity       decimal.Decimal `json:"Quantity"`
	UnitPrice      decimal.Decimal `json:"UnitPrice"`
	DiscountPct    decimal.Decimal `json:"DiscountPct"`
	DiscountAmount decimal.Decimal `json:"DiscountAmount"`
	TaxPct         decimal.Decimal `json:"TaxPct"`
	TaxAmount      decimal.Decimal `json:"TaxAmount"`
	LineSubtotal   decimal.Decimal `json:"LineSubtotal"`
	LineTotal      decimal.Decimal `json:"LineTotal"`
}

// PaymentResponse pago en el detalle de una venta.
type PaymentResponse struct {
	ID            int64           `json:"ID"`
	PaymentMethod string          `json:"PaymentMethod"`
	Amount        decimal.Decimal `json:"Amount"`
	Reference     string          `json:"Reference,omitempty"`
	PaidAt        time.Time       `json:"PaidAt"`
}

// SaleDetailResponse respuesta de GET /api/sales/:id.
type SaleDetailResponse struct {
	ID             int64              `json:"ID"`
	DocumentType   string             `json:"DocumentType"`
	DocumentNumber string             `json:"DocumentNumber"`
	IsElectronic   bool               `json:"IsElectronic"`
	IsTaxExempt    bool               `json:"IsTaxExempt"`
	CustomerID     *int64             `json:"CustomerID,omitempty"`
	CustomerName   string             `json:"CustomerName,omitempty"`
	CustomerTaxID  string             `json:"CustomerTaxID,omitempty"`
	WarehouseID    int64              `json:"WarehouseID"`
	EmployeeID     *int64             `json:"EmployeeID,omitempty"`
	OriginalSaleID *int64             `json:"OriginalSaleID,omitempty"`
	CurrencyID     *int64             `json:"CurrencyID,omitempty"`
	SaleDate       time.Time          `json:"SaleDate"`
	PaymentStatus  string             `json:"PaymentStatus"`
	Notes          string             `json:"Notes,omitempty"`
	Totals         SaleTotals         `json:"totals"`
	Items          []SaleItemResponse `json:"Items"`
	Payments       []PaymentResponse  `json:"Payments"`
}
