package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de un documento de venta.
const (
	PaymentStatusUnpaid        = "Unpaid"
	PaymentStatusPartiallyPaid = "PartiallyPaid"
	PaymentStatusPaid          = "Paid"
)

// Sale es la cabecera de un documento de venta: factura, boleta, cotización,
// guía de despacho o nota de crédito/débito (estas últimas enlazadas vía OriginalSaleID).
type Sale struct {
	ID                  int64
	CompanyID           int64
	EmployeeID          *int64
	CustomerID          *int64
	WarehouseID         int64
	DocumentType        string
	DocumentNumber      string
	IsElectronic        bool
	IsTaxExempt         bool
	OriginalSaleID      *int64
	CurrencyID          *int64
	SaleDate            time.Time
	TotalAmount         decimal.Decimal // suma de brutos (cantidad * precio)
	DiscountAmountTotal decimal.Decimal
	TaxAmountTotal      decimal.Decimal
	FinalAmount         decimal.Decimal
	AmountPaid          decimal.Decimal
	PaymentStatus       string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// SaleItem es una línea de un documento de venta. Inmutable tras su creación.
type SaleItem struct {
	ID             int64
	SaleID         int64
	CompanyID      int64
	ProductID      int64
	LotID          *int64
	SerialNumber   string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxPct         decimal.Decimal
	TaxAmount      decimal.Decimal
	LineSubtotal   decimal.Decimal
	LineTotal      decimal.Decimal
}

// Payment es un pago aplicado a una venta.
type Payment struct {
	ID            int64
	SaleID        int64
	CompanyID     int64
	EmployeeID    *int64
	PaymentMethod string
	Amount        decimal.Decimal
	Reference     string
	PaidAt        time.Time
}
