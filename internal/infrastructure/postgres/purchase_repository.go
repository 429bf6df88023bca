package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var (
	_ repository.PurchaseOrderRepository  = (*PurchaseOrderRepo)(nil)
	_ repository.GoodsReceiptRepository   = (*GoodsReceiptRepo)(nil)
	_ repository.DirectPurchaseRepository = (*DirectPurchaseRepo)(nil)
)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const purchaseOrderColumns = `id, company_id, supplier_id, employee_id, order_number, order_date, status,
	total_amount, notes, created_at, updated_at`

func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (company_id, supplier_id, employee_id, order_number, order_date, status,
			total_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		o.CompanyID, o.SupplierID, o.EmployeeID, o.OrderNumber, o.OrderDate, o.Status,
		o.TotalAmount, o.Notes, o.CreatedAt, o.UpdatedAt,
	).Scan(&o.ID)
	return wrapWrite("insert purchase order", err)
}

func (r *PurchaseOrderRepo) NumberExists(ctx context.Context, companyID int64, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM purchase_orders WHERE company_id = $1 AND order_number = $2)`,
		companyID, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check purchase order number: %w", err)
	}
	return exists, nil
}

func (r *PurchaseOrderRepo) CreateItem(ctx context.Context, it *entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (purchase_order_id, company_id, product_id, ordered_quantity,
			received_quantity, unit_cost, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.PurchaseOrderID, it.CompanyID, it.ProductID, it.OrderedQuantity, it.ReceivedQuantity, it.UnitCost, it.LineTotal,
	).Scan(&it.ID)
	return wrapWrite("insert purchase order item", err)
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE company_id = $1 AND id = $2`, companyID, id)
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.PurchaseOrder, error) {
	return r.get(ctx, `SELECT `+purchaseOrderColumns+` FROM purchase_orders WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *PurchaseOrderRepo) get(ctx context.Context, query string, companyID, id int64) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(&o.ID, &o.CompanyID, &o.SupplierID, &o.EmployeeID,
		&o.OrderNumber, &o.OrderDate, &o.Status, &o.TotalAmount, &o.Notes, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	return &o, nil
}

func (r *PurchaseOrderRepo) ListItems(ctx context.Context, companyID, orderID int64) ([]*entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, company_id, product_id, ordered_quantity, received_quantity, unit_cost, line_total
		FROM purchase_order_items WHERE company_id = $1 AND purchase_order_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, orderID)
	if err != nil {
		return nil, fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.CompanyID, &it.ProductID, &it.OrderedQuantity,
			&it.ReceivedQuantity, &it.UnitCost, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *PurchaseOrderRepo) AddReceivedQuantity(ctx context.Context, companyID, itemID int64, qty decimal.Decimal) error {
	query := `UPDATE purchase_order_items SET received_quantity = received_quantity + $3 WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, companyID, itemID, qty)
	if err != nil {
		return fmt.Errorf("update purchase order item received: %w", err)
	}
	return mustAffect(tag, "línea de orden de compra", itemID)
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, companyID, id int64, status string) error {
	query := `UPDATE purchase_orders SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, companyID, id, status)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	return mustAffect(tag, "orden de compra", id)
}

// GoodsReceiptRepo recepciones de mercadería sobre PostgreSQL.
type GoodsReceiptRepo struct {
	q Querier
}

// NewGoodsReceiptRepository construye el adaptador.
func NewGoodsReceiptRepository(q Querier) *GoodsReceiptRepo {
	return &GoodsReceiptRepo{q: q}
}

// Create inserta la cabecera. Número de recepción repetido en la empresa → domain.ErrConflict.
func (r *GoodsReceiptRepo) Create(ctx context.Context, gr *entity.GoodsReceipt) error {
	query := `
		INSERT INTO goods_receipts (company_id, supplier_id, warehouse_id, employee_id, receipt_number,
			receipt_date, purchase_order_id, direct_purchase_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		gr.CompanyID, gr.SupplierID, gr.WarehouseID, gr.EmployeeID, gr.ReceiptNumber,
		gr.ReceiptDate, gr.PurchaseOrderID, gr.DirectPurchaseID, gr.Notes, gr.CreatedAt,
	).Scan(&gr.ID)
	return wrapWrite("insert goods receipt", err)
}

func (r *GoodsReceiptRepo) NumberExists(ctx context.Context, companyID int64, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM goods_receipts WHERE company_id = $1 AND receipt_number = $2)`,
		companyID, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check goods receipt number: %w", err)
	}
	return exists, nil
}

func (r *GoodsReceiptRepo) CreateItem(ctx context.Context, it *entity.GoodsReceiptItem) error {
	query := `
		INSERT INTO goods_receipt_items (goods_receipt_id, company_id, product_id, purchase_order_item_id,
			direct_purchase_item_id, lot_id, quantity_received, unit_cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.GoodsReceiptID, it.CompanyID, it.ProductID, it.PurchaseOrderItemID,
		it.DirectPurchaseItemID, it.LotID, it.QuantityReceived, it.UnitCost,
	).Scan(&it.ID)
	return wrapWrite("insert goods receipt item", err)
}

func (r *GoodsReceiptRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.GoodsReceipt, error) {
	query := `
		SELECT id, company_id, supplier_id, warehouse_id, employee_id, receipt_number, receipt_date,
			purchase_order_id, direct_purchase_id, notes, created_at
		FROM goods_receipts WHERE company_id = $1 AND id = $2`
	var gr entity.GoodsReceipt
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(&gr.ID, &gr.CompanyID, &gr.SupplierID, &gr.WarehouseID,
		&gr.EmployeeID, &gr.ReceiptNumber, &gr.ReceiptDate, &gr.PurchaseOrderID, &gr.DirectPurchaseID, &gr.Notes, &gr.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get goods receipt: %w", err)
	}
	return &gr, nil
}

func (r *GoodsReceiptRepo) ListItems(ctx context.Context, companyID, receiptID int64) ([]*entity.GoodsReceiptItem, error) {
	query := `
		SELECT id, goods_receipt_id, company_id, product_id, purchase_order_item_id, direct_purchase_item_id,
			lot_id, quantity_received, unit_cost
		FROM goods_receipt_items WHERE company_id = $1 AND goods_receipt_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, receiptID)
	if err != nil {
		return nil, fmt.Errorf("list goods receipt items: %w", err)
	}
	defer rows.Close()
	var list []*entity.GoodsReceiptItem
	for rows.Next() {
		var it entity.GoodsReceiptItem
		if err := rows.Scan(&it.ID, &it.GoodsReceiptID, &it.CompanyID, &it.ProductID, &it.PurchaseOrderItemID,
			&it.DirectPurchaseItemID, &it.LotID, &it.QuantityReceived, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("scan goods receipt item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *GoodsReceiptRepo) CountByDirectPurchase(ctx context.Context, companyID, directPurchaseID int64) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT count(*) FROM goods_receipts WHERE company_id = $1 AND direct_purchase_id = $2`,
		companyID, directPurchaseID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count goods receipts: %w", err)
	}
	return n, nil
}

// DirectPurchaseRepo compras directas sobre PostgreSQL.
type DirectPurchaseRepo struct {
	q Querier
}

// NewDirectPurchaseRepository construye el adaptador.
func NewDirectPurchaseRepository(q Querier) *DirectPurchaseRepo {
	return &DirectPurchaseRepo{q: q}
}

const directPurchaseColumns = `id, company_id, supplier_id, warehouse_id, employee_id, receipt_number, purchase_date,
	status, total_amount, tax_amount_total, final_amount, notes, created_at, updated_at`

// Create inserta la cabecera. Número repetido para el proveedor → domain.ErrConflict.
func (r *DirectPurchaseRepo) Create(ctx context.Context, p *entity.DirectPurchase) error {
	query := `
		INSERT INTO direct_purchases (company_id, supplier_id, warehouse_id, employee_id, receipt_number,
			purchase_date, status, total_amount, tax_amount_total, final_amount, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.CompanyID, p.SupplierID, p.WarehouseID, p.EmployeeID, p.ReceiptNumber,
		p.PurchaseDate, p.Status, p.TotalAmount, p.TaxAmountTotal, p.FinalAmount, p.Notes, p.CreatedAt, p.UpdatedAt,
	).Scan(&p.ID)
	return wrapWrite("insert direct purchase", err)
}

func (r *DirectPurchaseRepo) CreateItem(ctx context.Context, it *entity.DirectPurchaseItem) error {
	query := `
		INSERT INTO direct_purchase_items (direct_purchase_id, company_id, product_id, quantity,
			received_quantity, unit_cost, tax_pct, tax_amount, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.DirectPurchaseID, it.CompanyID, it.ProductID, it.Quantity,
		it.ReceivedQuantity, it.UnitCost, it.TaxPct, it.TaxAmount, it.LineTotal,
	).Scan(&it.ID)
	return wrapWrite("insert direct purchase item", err)
}

func (r *DirectPurchaseRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.DirectPurchase, error) {
	return r.get(ctx, `SELECT `+directPurchaseColumns+` FROM direct_purchases WHERE company_id = $1 AND id = $2`, companyID, id)
}

func (r *DirectPurchaseRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.DirectPurchase, error) {
	return r.get(ctx, `SELECT `+directPurchaseColumns+` FROM direct_purchases WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *DirectPurchaseRepo) get(ctx context.Context, query string, companyID, id int64) (*entity.DirectPurchase, error) {
	var p entity.DirectPurchase
	err := r.q.QueryRow(ctx, query, companyID, id).Scan(&p.ID, &p.CompanyID, &p.SupplierID, &p.WarehouseID,
		&p.EmployeeID, &p.ReceiptNumber, &p.PurchaseDate, &p.Status, &p.TotalAmount, &p.TaxAmountTotal,
		&p.FinalAmount, &p.Notes, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get direct purchase: %w", err)
	}
	return &p, nil
}

func (r *DirectPurchaseRepo) ListItems(ctx context.Context, companyID, purchaseID int64) ([]*entity.DirectPurchaseItem, error) {
	query := `
		SELECT id, direct_purchase_id, company_id, product_id, quantity, received_quantity, unit_cost,
			tax_pct, tax_amount, line_total
		FROM direct_purchase_items WHERE company_id = $1 AND direct_purchase_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("list direct purchase items: %w", err)
	}
	defer rows.Close()
	var list []*entity.DirectPurchaseItem
	for rows.Next() {
		var it entity.DirectPurchaseItem
		if err := rows.Scan(&it.ID, &it.DirectPurchaseID, &it.CompanyID, &it.ProductID, &it.Quantity,
			&it.ReceivedQuantity, &it.UnitCost, &it.TaxPct, &it.TaxAmount, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan direct purchase item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

func (r *DirectPurchaseRepo) AddReceivedQuantity(ctx context.Context, companyID, itemID int64, qty decimal.Decimal) error {
	query := `UPDATE direct_purchase_items SET received_quantity = received_quantity + $3 WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, companyID, itemID, qty)
	if err != nil {
		return fmt.Errorf("update direct purchase item received: %w", err)
	}
	return mustAffect(tag, "línea de compra directa", itemID)
}

func (r *DirectPurchaseRepo) UpdateStatus(ctx context.Context, companyID, id int64, status string) error {
	query := `UPDATE direct_purchases SET status = $3, updated_at = now() WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, companyID, id, status)
	if err != nil {
		return fmt.Errorf("update direct purchase status: %w", err)
	}
	return mustAffect(tag, "compra directa", id)
}
