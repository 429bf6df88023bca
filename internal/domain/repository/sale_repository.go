package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// SaleFilter filtros del listado de ventas.
type SaleFilter struct {
	CompanyID    int64
	DocumentType string
	CustomerID   *int64
	From, To     *time.Time
	Limit        int
	Offset       int
}

// SaleRepository define el puerto de persistencia para documentos de venta, líneas y pagos.
type SaleRepository interface {
	// Create inserta la cabecera; ErrConflict si el número ya existe para empresa+tipo.
	Create(ctx context.Context, sale *entity.Sale) error
	// NumberExists indica si el número ya fue emitido para empresa+tipo.
	NumberExists(ctx context.Context, companyID int64, docType, number string) (bool, error)
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	CreatePayment(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.Sale, error)
	// GetForUpdate bloquea la cabecera (SELECT ... FOR UPDATE) hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, companyID, id int64) (*entity.Sale, error)
	UpdatePaymentStatus(ctx context.Context, sale *entity.Sale) error
	ListItems(ctx context.Context, companyID, saleID int64) ([]*entity.SaleItem, error)
	ListPayments(ctx context.Context, companyID, saleID int64) ([]*entity.Payment, error)
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, error)
	// CreditedQuantities suma por producto las cantidades de notas de crédito emitidas contra la venta.
	CreditedQuantities(ctx context.Context, companyID, originalSaleID int64) (map[int64]decimal.Decimal, error)
}
