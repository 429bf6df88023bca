package entity

import "time"

// Warehouse representa una bodega o sucursal donde se almacena inventario (multi-bodega).
// Cada empresa puede marcar una bodega por defecto, usada cuando la venta no indica bodega.
type Warehouse struct {
	ID        int64
	CompanyID int64
	Name      string
	Address   string
	IsDefault bool
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
