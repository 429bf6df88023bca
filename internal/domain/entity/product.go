package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo de la empresa.
// Cost es promedio ponderado calculado desde las recepciones; el stock vive en InventoryLevel.
type Product struct {
	ID           int64
	CompanyID    int64
	SKU          string          // código único por empresa
	Name         string
	Description  string
	Price        decimal.Decimal // precio de venta
	Cost         decimal.Decimal // costo promedio ponderado (inicia en 0)
	TaxPct       decimal.Decimal // IVA Chile: 19; 0 para exentos
	TracksLots   bool
	TracksSerial bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
