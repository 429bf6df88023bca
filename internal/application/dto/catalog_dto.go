package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseRequest body para crear/actualizar bodegas.
type WarehouseRequest struct {
	Name      string `json:"Name" validate:"required,min=1,max=200"`
	Address   string `json:"Address,omitempty" validate:"max=300"`
	IsDefault bool   `json:"IsDefault"`
	IsActive  *bool  `json:"IsActive,omitempty"`
}

// WarehouseResponse bodega en respuestas.
type WarehouseResponse struct {
	ID        int64     `json:"ID"`
	Name      string    `json:"Name"`
	Address   string    `json:"Address,omitempty"`
	IsDefault bool      `json:"IsDefault"`
	IsActive  bool      `json:"IsActive"`
	CreatedAt time.Time `json:"CreatedAt"`
}

// ProductRequest body para crear/actualizar productos. TaxPct nil usa el IVA por defecto.
type ProductRequest struct {
	SKU          string           `json:"SKU" validate:"required,min=1,max=60"`
	Name         string           `json:"Name" validate:"required,min=1,max=200"`
	Description  string           `json:"Description,omitempty" validate:"max=1000"`
	Price        decimal.Decimal  `json:"Price"`
	TaxPct       *decimal.Decimal `json:"TaxPct,omitempty"`
	TracksLots   bool             `json:"TracksLots"`
	TracksSerial bool             `json:"TracksSerial"`
	IsActive     *bool            `json:"IsActive,omitempty"`
}

// ProductResponse producto en respuestas.
type ProductResponse struct {
	ID           int64           `json:"ID"`
	SKU          string          `json:"SKU"`
	Name         string          `json:"Name"`
	Description  string          `json:"Description,omitempty"`
	Price        decimal.Decimal `json:"Price"`
	Cost         decimal.Decimal `json:"Cost"`
	TaxPct       decimal.Decimal `json:"TaxPct"`
	TracksLots   bool            `json:"TracksLots"`
	TracksSerial bool            `json:"TracksSerial"`
	IsActive     bool            `json:"IsActive"`
}

// PartyRequest body para crear/actualizar clientes y proveedores.
type PartyRequest struct {
	Name        string `json:"Name" validate:"required,min=1,max=200"`
	TaxID       string `json:"TaxID,omitempty" validate:"max=20"`
	Email       string `json:"Email,omitempty" validate:"omitempty,email"`
	Phone       string `json:"Phone,omitempty" validate:"max=40"`
	IsTaxExempt bool   `json:"IsTaxExempt"`
}

// PartyResponse cliente o proveedor en respuestas.
type PartyResponse struct {
	ID          int64  `json:"ID"`
	Name        string `json:"Name"`
	TaxID       string `json:"TaxID,omitempty"`
	Email       string `json:"Email,omitempty"`
	Phone       string `json:"Phone,omitempty"`
	IsTaxExempt bool   `json:"IsTaxExempt"`
}
