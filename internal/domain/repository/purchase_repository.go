package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, order *entity.PurchaseOrder) error
	NumberExists(ctx context.Context, companyID int64, number string) (bool, error)
	CreateItem(ctx context.Context, item *entity.PurchaseOrderItem) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.PurchaseOrder, error)
	GetForUpdate(ctx context.Context, companyID, id int64) (*entity.PurchaseOrder, error)
	ListItems(ctx context.Context, companyID, orderID int64) ([]*entity.PurchaseOrderItem, error)
	AddReceivedQuantity(ctx context.Context, companyID, itemID int64, qty decimal.Decimal) error
	UpdateStatus(ctx context.Context, companyID, id int64, status string) error
}

// GoodsReceiptRepository define el puerto de persistencia para recepciones.
type GoodsReceiptRepository interface {
	// Create inserta la cabecera; ErrConflict si ReceiptNumber ya existe en la empresa.
	Create(ctx context.Context, receipt *entity.GoodsReceipt) error
	NumberExists(ctx context.Context, companyID int64, number string) (bool, error)
	CreateItem(ctx context.Context, item *entity.GoodsReceiptItem) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.GoodsReceipt, error)
	ListItems(ctx context.Context, companyID, receiptID int64) ([]*entity.GoodsReceiptItem, error)
	CountByDirectPurchase(ctx context.Context, companyID, directPurchaseID int64) (int, error)
}

// DirectPurchaseRepository define el puerto de persistencia para compras directas.
type DirectPurchaseRepository interface {
	// Create inserta la cabecera; ErrConflict si ReceiptNumber se repite para el proveedor.
	Create(ctx context.Context, purchase *entity.DirectPurchase) error
	CreateItem(ctx context.Context, item *entity.DirectPurchaseItem) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.DirectPurchase, error)
	GetForUpdate(ctx context.Context, companyID, id int64) (*entity.DirectPurchase, error)
	ListItems(ctx context.Context, companyID, purchaseID int64) ([]*entity.DirectPurchaseItem, error)
	AddReceivedQuantity(ctx context.Context, companyID, itemID int64, qty decimal.Decimal) error
	UpdateStatus(ctx context.Context, companyID, id int64, status string) error
}
