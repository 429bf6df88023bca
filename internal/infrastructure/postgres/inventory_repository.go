package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

// InventoryRepo niveles de inventario y log de transacciones sobre PostgreSQL.
// La clave de nivel usa COALESCE(lot_id, 0) para que el stock sin lote sea una sola fila.
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Acepta pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

const levelColumns = `id, company_id, product_id, warehouse_id, lot_id, stock_quantity, reserved_quantity, updated_at`

func scanLevel(row scanner) (*entity.InventoryLevel, error) {
	var l entity.InventoryLevel
	err := row.Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.WarehouseID, &l.LotID, &l.StockQuantity, &l.ReservedQuantity, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// GetLevelForUpdate bloquea la fila del nivel hasta el fin de la transacción.
func (r *InventoryRepo) GetLevelForUpdate(ctx context.Context, key repository.LevelKey) (*entity.InventoryLevel, error) {
	query := `SELECT ` + levelColumns + `
		FROM inventory_levels
		WHERE company_id = $1 AND product_id = $2 AND warehouse_id = $3
		  AND COALESCE(lot_id, 0) = COALESCE($4::bigint, 0)
		FOR UPDATE`
	l, err := scanLevel(r.q.QueryRow(ctx, query, key.CompanyID, key.ProductID, key.WarehouseID, key.LotID))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory level: %w", err)
	}
	return l, nil
}

// InsertLevel crea el nivel; si otra transacción lo insertó antes, suma sobre el existente.
func (r *InventoryRepo) InsertLevel(ctx context.Context, l *entity.InventoryLevel) error {
	query := `
		INSERT INTO inventory_levels (company_id, product_id, warehouse_id, lot_id, stock_quantity, reserved_quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (company_id, product_id, warehouse_id, (COALESCE(lot_id, 0)))
		DO UPDATE SET stock_quantity = inventory_levels.stock_quantity + EXCLUDED.stock_quantity,
		              updated_at = EXCLUDED.updated_at
		RETURNING id, stock_quantity, reserved_quantity`
	err := r.q.QueryRow(ctx, query,
		l.CompanyID, l.ProductID, l.WarehouseID, l.LotID, l.StockQuantity, l.ReservedQuantity, l.UpdatedAt,
	).Scan(&l.ID, &l.StockQuantity, &l.ReservedQuantity)
	if err != nil {
		return fmt.Errorf("upsert inventory level: %w", err)
	}
	return nil
}

// UpdateLevelStock persiste el stock de un nivel ya bloqueado.
func (r *InventoryRepo) UpdateLevelStock(ctx context.Context, l *entity.InventoryLevel) error {
	query := `UPDATE inventory_levels SET stock_quantity = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, l.CompanyID, l.ID, l.StockQuantity, l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update inventory level: %w", err)
	}
	return mustAffect(tag, "nivel de inventario", l.ID)
}

// InsertTransaction agrega una fila al log inmutable.
func (r *InventoryRepo) InsertTransaction(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (company_id, product_id, warehouse_id, lot_id, serial_number,
			quantity_change, transaction_type, reference_type, reference_id, batch_id, employee_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.CompanyID, t.ProductID, t.WarehouseID, t.LotID, t.SerialNumber,
		t.QuantityChange, t.TransactionType, t.ReferenceType, t.ReferenceID, t.BatchID, t.EmployeeID, t.Notes, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("insert inventory transaction: %w", err)
	}
	return nil
}

// AddLotQuantity suma delta a la cantidad del lote en la bodega.
func (r *InventoryRepo) AddLotQuantity(ctx context.Context, companyID, lotID, warehouseID int64, delta decimal.Decimal) error {
	query := `
		INSERT INTO lot_stock (company_id, lot_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (lot_id, warehouse_id)
		DO UPDATE SET quantity = lot_stock.quantity + EXCLUDED.quantity, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, companyID, lotID, warehouseID, delta); err != nil {
		return fmt.Errorf("upsert lot stock: %w", err)
	}
	return nil
}

// ListLevels lista niveles de la empresa ordenados por producto y bodega.
func (r *InventoryRepo) ListLevels(ctx context.Context, f repository.LevelFilter) ([]*entity.InventoryLevel, error) {
	conds := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	if f.ProductID != nil {
		args = append(args, *f.ProductID)
		conds = append(conds, fmt.Sprintf("product_id = $%d", len(args)))
	}
	if f.WarehouseID != nil {
		args = append(args, *f.WarehouseID)
		conds = append(conds, fmt.Sprintf("warehouse_id = $%d", len(args)))
	}
	if !f.IncludeZero {
		conds = append(conds, "stock_quantity <> 0")
	}
	query := `SELECT ` + levelColumns + ` FROM inventory_levels WHERE ` + strings.Join(conds, " AND ") +
		` ORDER BY product_id, warehouse_id, id`
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryLevel
	for rows.Next() {
		l, err := scanLevel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory level: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// ListTransactions devuelve el log de la empresa, más recientes primero.
func (r *InventoryRepo) ListTransactions(ctx context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	conds := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	add := func(col string, v int64) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if f.ProductID != nil {
		add("product_id", *f.ProductID)
	}
	if f.WarehouseID != nil {
		add("warehouse_id", *f.WarehouseID)
	}
	if f.LotID != nil {
		add("lot_id", *f.LotID)
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, company_id, product_id, warehouse_id, lot_id, serial_number, quantity_change, transaction_type,
			reference_type, reference_id, batch_id, employee_id, notes, created_at
		FROM inventory_transactions WHERE %s ORDER BY id DESC LIMIT $%d OFFSET $%d`,
		strings.Join(conds, " AND "), len(args)-1, len(args))
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		var t entity.InventoryTransaction
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.ProductID, &t.WarehouseID, &t.LotID, &t.SerialNumber,
			&t.QuantityChange, &t.TransactionType, &t.ReferenceType, &t.ReferenceID, &t.BatchID, &t.EmployeeID,
			&t.Notes, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
