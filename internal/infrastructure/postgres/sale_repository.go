package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo documentos de venta, líneas y pagos sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, company_id, employee_id, customer_id, warehouse_id, document_type, document_number,
	is_electronic, is_tax_exempt, original_sale_id, currency_id, sale_date, total_amount,
	discount_amount_total, tax_amount_total, final_amount, amount_paid, payment_status, notes,
	created_at, updated_at`

func scanSale(row scanner) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.CompanyID, &s.EmployeeID, &s.CustomerID, &s.WarehouseID, &s.DocumentType, &s.DocumentNumber,
		&s.IsElectronic, &s.IsTaxExempt, &s.OriginalSaleID, &s.CurrencyID, &s.SaleDate, &s.TotalAmount,
		&s.DiscountAmountTotal, &s.TaxAmountTotal, &s.FinalAmount, &s.AmountPaid, &s.PaymentStatus, &s.Notes,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la cabecera. Número repetido para empresa+tipo → domain.ErrConflict.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (company_id, employee_id, customer_id, warehouse_id, document_type, document_number,
			is_electronic, is_tax_exempt, original_sale_id, currency_id, sale_date, total_amount,
			discount_amount_total, tax_amount_total, final_amount, amount_paid, payment_status, notes,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.CompanyID, s.EmployeeID, s.CustomerID, s.WarehouseID, s.DocumentType, s.DocumentNumber,
		s.IsElectronic, s.IsTaxExempt, s.OriginalSaleID, s.CurrencyID, s.SaleDate, s.TotalAmount,
		s.DiscountAmountTotal, s.TaxAmountTotal, s.FinalAmount, s.AmountPaid, s.PaymentStatus, s.Notes,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	return wrapWrite("insert sale", err)
}

func (r *SaleRepo) NumberExists(ctx context.Context, companyID int64, docType, number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM sales WHERE company_id = $1 AND document_type = $2 AND document_number = $3)`,
		companyID, docType, number).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check sale number: %w", err)
	}
	return exists, nil
}

// CreateItem inserta una línea.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (sale_id, company_id, product_id, lot_id, serial_number, quantity, unit_price,
			discount_pct, discount_amount, tax_pct, tax_amount, line_subtotal, line_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		it.SaleID, it.CompanyID, it.ProductID, it.LotID, it.SerialNumber, it.Quantity, it.UnitPrice,
		it.DiscountPct, it.DiscountAmount, it.TaxPct, it.TaxAmount, it.LineSubtotal, it.LineTotal,
	).Scan(&it.ID)
	return wrapWrite("insert sale item", err)
}

// CreatePayment inserta un pago.
func (r *SaleRepo) CreatePayment(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (sale_id, company_id, employee_id, payment_method, amount, reference, paid_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		p.SaleID, p.CompanyID, p.EmployeeID, p.PaymentMethod, p.Amount, p.Reference, p.PaidAt,
	).Scan(&p.ID)
	return wrapWrite("insert payment", err)
}

// GetByID obtiene la cabecera de una venta de la empresa.
func (r *SaleRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE company_id = $1 AND id = $2`, companyID, id)
}

// GetForUpdate obtiene y bloquea la cabecera hasta el fin de la transacción.
func (r *SaleRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.Sale, error) {
	return r.get(ctx, `SELECT `+saleColumns+` FROM sales WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *SaleRepo) get(ctx context.Context, query string, companyID, id int64) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// UpdatePaymentStatus persiste AmountPaid y PaymentStatus.
func (r *SaleRepo) UpdatePaymentStatus(ctx context.Context, s *entity.Sale) error {
	query := `UPDATE sales SET amount_paid = $3, payment_status = $4, updated_at = $5 WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.AmountPaid, s.PaymentStatus, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update sale payment status: %w", err)
	}
	return mustAffect(tag, "venta", s.ID)
}

// ListItems devuelve las líneas de la venta en orden de inserción.
func (r *SaleRepo) ListItems(ctx context.Context, companyID, saleID int64) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, company_id, product_id, lot_id, serial_number, quantity, unit_price,
			discount_pct, discount_amount, tax_pct, tax_amount, line_subtotal, line_total
		FROM sale_items WHERE company_id = $1 AND sale_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.CompanyID, &it.ProductID, &it.LotID, &it.SerialNumber,
			&it.Quantity, &it.UnitPrice, &it.DiscountPct, &it.DiscountAmount, &it.TaxPct, &it.TaxAmount,
			&it.LineSubtotal, &it.LineTotal); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ListPayments devuelve los pagos de la venta.
func (r *SaleRepo) ListPayments(ctx context.Context, companyID, saleID int64) ([]*entity.Payment, error) {
	query := `
		SELECT id, sale_id, company_id, employee_id, payment_method, amount, reference, paid_at
		FROM payments WHERE company_id = $1 AND sale_id = $2 ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.CompanyID, &p.EmployeeID, &p.PaymentMethod, &p.Amount,
			&p.Reference, &p.PaidAt); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// List lista ventas con filtros opcionales, más recientes primero.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	conds := []string{"company_id = $1"}
	args := []any{f.CompanyID}
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.DocumentType != "" {
		add("document_type = $%d", f.DocumentType)
	}
	if f.CustomerID != nil {
		add("customer_id = $%d", *f.CustomerID)
	}
	if f.From != nil {
		add("sale_date >= $%d", *f.From)
	}
	if f.To != nil {
		add("sale_date <= $%d", *f.To)
	}
	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(`SELECT %s FROM sales WHERE %s ORDER BY sale_date DESC, id DESC LIMIT $%d OFFSET $%d`,
		saleColumns, strings.Join(conds, " AND "), len(args)-1, len(args))

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// CreditedQuantities suma por producto lo ya devuelto con notas de crédito contra la venta.
func (r *SaleRepo) CreditedQuantities(ctx context.Context, companyID, originalSaleID int64) (map[int64]decimal.Decimal, error) {
	query := `
		SELECT si.product_id, COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id AND s.company_id = si.company_id
		WHERE s.company_id = $1 AND s.original_sale_id = $2 AND s.document_type = $3
		GROUP BY si.product_id`
	rows, err := r.q.Query(ctx, query, companyID, originalSaleID, document.TypeNotaCredito)
	if err != nil {
		return nil, fmt.Errorf("credited quantities: %w", err)
	}
	defer rows.Close()
	out := map[int64]decimal.Decimal{}
	for rows.Next() {
		var productID int64
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan credited quantity: %w", err)
		}
		out[productID] = qty
	}
	return out, rows.Err()
}
