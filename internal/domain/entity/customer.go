package entity

import "time"

// Customer representa un cliente de la empresa.
type Customer struct {
	ID          int64
	CompanyID   int64
	Name        string
	TaxID       string // RUT
	Email       string
	Phone       string
	IsTaxExempt bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Supplier representa un proveedor de la empresa.
type Supplier struct {
	ID        int64
	CompanyID int64
	Name      string
	TaxID     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
