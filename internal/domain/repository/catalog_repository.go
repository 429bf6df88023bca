package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// Todos los puertos reciben companyID: cada consulta queda acotada al tenant.
// Las búsquedas por ID devuelven (nil, nil) si no hay fila para esa empresa.

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateCost(ctx context.Context, companyID, productID int64, cost decimal.Decimal) error
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Product, error)
}

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	Create(ctx context.Context, warehouse *entity.Warehouse) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Warehouse, error)
	// GetDefault devuelve la bodega activa marcada por defecto de la empresa (nil si no hay).
	GetDefault(ctx context.Context, companyID int64) (*entity.Warehouse, error)
	Update(ctx context.Context, warehouse *entity.Warehouse) error
	// ClearDefault quita la marca de bodega por defecto a todas las bodegas de la empresa salvo exceptID.
	ClearDefault(ctx context.Context, companyID, exceptID int64) error
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Warehouse, error)
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Customer, error)
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
}

// SupplierRepository define el puerto de persistencia para Supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *entity.Supplier) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Supplier, error)
	ListByCompany(ctx context.Context, companyID int64, limit, offset int) ([]*entity.Supplier, error)
}
