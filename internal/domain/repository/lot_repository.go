package repository

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// LotStockFilter filtros de la consulta FEFO de lotes.
type LotStockFilter struct {
	CompanyID    int64
	ProductID    int64
	WarehouseID  *int64
	IncludeEmpty bool // incluye cantidades en cero y lotes sin stock (WarehouseID 0)
}

// LotRepository define el puerto de persistencia para lotes y números de serie.
type LotRepository interface {
	// CreateLot inserta; ErrConflict si el número de lote ya existe para el producto.
	CreateLot(ctx context.Context, lot *entity.ProductLot) error
	GetLot(ctx context.Context, companyID, id int64) (*entity.ProductLot, error)
	GetLotByNumber(ctx context.Context, companyID, productID int64, lotNumber string) (*entity.ProductLot, error)
	// ListLotStock devuelve lotes con su cantidad por bodega en orden FEFO
	// (vencimiento más próximo primero, sin vencimiento al final).
	ListLotStock(ctx context.Context, filter LotStockFilter) ([]entity.LotStock, error)

	// CreateSerial inserta; ErrConflict si la serie ya existe para el producto.
	CreateSerial(ctx context.Context, serial *entity.ProductSerial) error
	GetSerialForUpdate(ctx context.Context, companyID, productID int64, serialNumber string) (*entity.ProductSerial, error)
	UpdateSerial(ctx context.Context, serial *entity.ProductSerial) error
	ListSerials(ctx context.Context, companyID, productID int64, status string) ([]*entity.ProductSerial, error)
}
