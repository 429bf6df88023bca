package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
// El Rollback diferido devuelve la conexión al pool en cualquier camino, incluido un panic.
func (r *TxRunner) Run(ctx context.Context, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// NewRepos construye todos los repositorios sobre q (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Products:        NewProductRepository(q),
		Warehouses:      NewWarehouseRepository(q),
		Customers:       NewCustomerRepository(q),
		Suppliers:       NewSupplierRepository(q),
		Sales:           NewSaleRepository(q),
		PurchaseOrders:  NewPurchaseOrderRepository(q),
		GoodsReceipts:   NewGoodsReceiptRepository(q),
		DirectPurchases: NewDirectPurchaseRepository(q),
		Inventory:       NewInventoryRepository(q),
		Sequences:       NewDocumentSequenceRepository(q),
		Lots:            NewLotRepository(q),
	}
}
