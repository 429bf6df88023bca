// Package purchasing cubre el lado de compras: órdenes de compra, recepciones de
// mercadería y compras directas. Solo la recepción mueve inventario.
package purchasing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

var hundred = decimal.NewFromInt(100)

// UseCase casos de uso de compras.
type UseCase struct {
	tx       ports.TxRunner
	repos    repository.Repos
	ledger   *inventory.Ledger
	numberer *sequence.Numberer
	log      *logger.Logger
	clock    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos repository.Repos, ledger *inventory.Ledger, numberer *sequence.Numberer, log *logger.Logger) *UseCase {
	return &UseCase{
		tx:       tx,
		repos:    repos,
		ledger:   ledger,
		numberer: numberer,
		log:      log,
		clock:    time.Now,
	}
}

func (uc *UseCase) checkSupplier(ctx context.Context, companyID, supplierID int64) error {
	s, err := uc.repos.Suppliers.GetByID(ctx, companyID, supplierID)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NotFound("proveedor %d", supplierID)
	}
	return nil
}

func (uc *UseCase) checkWarehouse(ctx context.Context, companyID, warehouseID int64) error {
	w, err := uc.repos.Warehouses.GetByID(ctx, companyID, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.NotFound("bodega %d", warehouseID)
	}
	if !w.IsActive {
		return domain.Invalid("la bodega %d está inactiva", warehouseID)
	}
	return nil
}

func (uc *UseCase) getProduct(ctx context.Context, companyID, productID int64) (*entity.Product, error) {
	p, err := uc.repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NotFound("producto %d", productID)
	}
	return p, nil
}

// checkQtyCost valida cantidad positiva y costo no negativo de una línea.
func checkQtyCost(i int, qty, cost decimal.Decimal) error {
	if !qty.GreaterThan(decimal.Zero) {
		return domain.Invalid("Items[%d]: la cantidad debe ser mayor que cero", i)
	}
	if cost.IsNegative() {
		return domain.Invalid("Items[%d]: UnitCost no puede ser negativo", i)
	}
	return nil
}
