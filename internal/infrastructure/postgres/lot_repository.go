package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.LotRepository = (*LotRepo)(nil)

// LotRepo lotes y números de serie sobre PostgreSQL.
type LotRepo struct {
	q Querier
}

// NewLotRepository construye el adaptador.
func NewLotRepository(q Querier) *LotRepo {
	return &LotRepo{q: q}
}

func (r *LotRepo) CreateLot(ctx context.Context, lot *entity.ProductLot) error {
	query := `
		INSERT INTO product_lots (company_id, product_id, lot_number, expiration_date, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query, lot.CompanyID, lot.ProductID, lot.LotNumber, lot.ExpirationDate, lot.CreatedAt).Scan(&lot.ID)
	return wrapWrite("insert product lot", err)
}

func (r *LotRepo) GetLot(ctx context.Context, companyID, id int64) (*entity.ProductLot, error) {
	query := `SELECT id, company_id, product_id, lot_number, expiration_date, created_at
		FROM product_lots WHERE company_id = $1 AND id = $2`
	return r.getLot(ctx, query, companyID, id)
}

func (r *LotRepo) GetLotByNumber(ctx context.Context, companyID, productID int64, lotNumber string) (*entity.ProductLot, error) {
	query := `SELECT id, company_id, product_id, lot_number, expiration_date, created_at
		FROM product_lots WHERE company_id = $1 AND product_id = $2 AND lot_number = $3`
	return r.getLot(ctx, query, companyID, productID, lotNumber)
}

func (r *LotRepo) getLot(ctx context.Context, query string, args ...any) (*entity.ProductLot, error) {
	var l entity.ProductLot
	err := r.q.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CompanyID, &l.ProductID, &l.LotNumber, &l.ExpirationDate, &l.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product lot: %w", err)
	}
	return &l, nil
}

// ListLotStock consulta FEFO: vencimiento más próximo primero, sin vencimiento al final.
func (r *LotRepo) ListLotStock(ctx context.Context, f repository.LotStockFilter) ([]entity.LotStock, error) {
	query := `
		SELECT l.id, l.company_id, l.product_id, l.lot_number, l.expiration_date, l.created_at,
		       COALESCE(ls.warehouse_id, 0), COALESCE(ls.quantity, 0)
		FROM product_lots l
		LEFT JOIN lot_stock ls ON ls.lot_id = l.id AND ls.company_id = l.company_id
		WHERE l.company_id = $1 AND l.product_id = $2
		  AND ($3::bigint IS NULL OR ls.warehouse_id = $3)
		  AND ($4 OR ls.quantity > 0)
		ORDER BY l.expiration_date ASC NULLS LAST, l.id, ls.warehouse_id`
	rows, err := r.q.Query(ctx, query, f.CompanyID, f.ProductID, f.WarehouseID, f.IncludeEmpty)
	if err != nil {
		return nil, fmt.Errorf("list lot stock: %w", err)
	}
	defer rows.Close()
	var list []entity.LotStock
	for rows.Next() {
		var ls entity.LotStock
		if err := rows.Scan(&ls.Lot.ID, &ls.Lot.CompanyID, &ls.Lot.ProductID, &ls.Lot.LotNumber, &ls.Lot.ExpirationDate,
			&ls.Lot.CreatedAt, &ls.WarehouseID, &ls.Quantity); err != nil {
			return nil, fmt.Errorf("scan lot stock: %w", err)
		}
		list = append(list, ls)
	}
	return list, rows.Err()
}

const serialColumns = `id, company_id, product_id, serial_number, warehouse_id, status, sale_id, created_at, updated_at`

func scanSerial(row scanner) (*entity.ProductSerial, error) {
	var s entity.ProductSerial
	err := row.Scan(&s.ID, &s.CompanyID, &s.ProductID, &s.SerialNumber, &s.WarehouseID, &s.Status, &s.SaleID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *LotRepo) CreateSerial(ctx context.Context, s *entity.ProductSerial) error {
	query := `
		INSERT INTO product_serials (company_id, product_id, serial_number, warehouse_id, status, sale_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.CompanyID, s.ProductID, s.SerialNumber, s.WarehouseID, s.Status, s.SaleID, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	return wrapWrite("insert product serial", err)
}

func (r *LotRepo) GetSerialForUpdate(ctx context.Context, companyID, productID int64, serialNumber string) (*entity.ProductSerial, error) {
	query := `SELECT ` + serialColumns + `
		FROM product_serials WHERE company_id = $1 AND product_id = $2 AND serial_number = $3
		FOR UPDATE`
	s, err := scanSerial(r.q.QueryRow(ctx, query, companyID, productID, serialNumber))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product serial: %w", err)
	}
	return s, nil
}

func (r *LotRepo) UpdateSerial(ctx context.Context, s *entity.ProductSerial) error {
	query := `
		UPDATE product_serials SET warehouse_id = $3, status = $4, sale_id = $5, updated_at = $6
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.WarehouseID, s.Status, s.SaleID, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product serial: %w", err)
	}
	return mustAffect(tag, "serie", s.ID)
}

func (r *LotRepo) ListSerials(ctx context.Context, companyID, productID int64, status string) ([]*entity.ProductSerial, error) {
	query := `SELECT ` + serialColumns + `
		FROM product_serials
		WHERE company_id = $1 AND product_id = $2 AND ($3 = '' OR status = $3)
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, companyID, productID, status)
	if err != nil {
		return nil, fmt.Errorf("list product serials: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductSerial
	for rows.Next() {
		s, err := scanSerial(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product serial: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
