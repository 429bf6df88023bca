package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type lotRepo struct{ handle }

var _ repository.LotRepository = lotRepo{}

func (r lotRepo) CreateLot(_ context.Context, lot *entity.ProductLot) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.lots {
		if other.CompanyID == lot.CompanyID && other.ProductID == lot.ProductID && other.LotNumber == lot.LotNumber {
			return domain.Conflict("lote %q ya existe para el producto", lot.LotNumber)
		}
	}
	lot.ID = d.id()
	d.lots[lot.ID] = copyOf(lot)
	return nil
}

func (r lotRepo) GetLot(_ context.Context, companyID, id int64) (*entity.ProductLot, error) {
	defer r.lock()()
	lot, ok := r.data().lots[id]
	if !ok || lot.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(lot), nil
}

func (r lotRepo) GetLotByNumber(_ context.Context, companyID, productID int64, lotNumber string) (*entity.ProductLot, error) {
	defer r.lock()()
	for _, lot := range r.data().lots {
		if lot.CompanyID == companyID && lot.ProductID == productID && lot.LotNumber == lotNumber {
			return copyOf(lot), nil
		}
	}
	return nil, nil
}

func (r lotRepo) ListLotStock(_ context.Context, f repository.LotStockFilter) ([]entity.LotStock, error) {
	defer r.lock()()
	d := r.data()
	lots := values(d.lots, func(l *entity.ProductLot) bool {
		return l.CompanyID == f.CompanyID && l.ProductID == f.ProductID
	})
	var out []entity.LotStock
	for _, lot := range lots {
		found := false
		for k, qty := range d.lotQuantities {
			if k.lotID != lot.ID {
				continue
			}
			found = true
			if f.WarehouseID != nil && k.warehouseID != *f.WarehouseID {
				continue
			}
			if !f.IncludeEmpty && !qty.IsPositive() {
				continue
			}
			out = append(out, entity.LotStock{Lot: *lot, WarehouseID: k.warehouseID, Quantity: qty})
		}
		if !found && f.IncludeEmpty && f.WarehouseID == nil {
			out = append(out, entity.LotStock{Lot: *lot, Quantity: decimal.Zero})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return fefoLess(out[i], out[j]) })
	return out, nil
}

// fefoLess ordena por vencimiento ascendente con los lotes sin vencimiento al final.
func fefoLess(a, b entity.LotStock) bool {
	ea, eb := a.Lot.ExpirationDate, b.Lot.ExpirationDate
	switch {
	case ea != nil && eb == nil:
		return true
	case ea == nil && eb != nil:
		return false
	case ea != nil && !ea.Equal(*eb):
		return ea.Before(*eb)
	}
	if a.Lot.ID != b.Lot.ID {
		return a.Lot.ID < b.Lot.ID
	}
	return a.WarehouseID < b.WarehouseID
}

func (r lotRepo) CreateSerial(_ context.Context, s *entity.ProductSerial) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.serials {
		if other.CompanyID == s.CompanyID && other.ProductID == s.ProductID && other.SerialNumber == s.SerialNumber {
			return domain.Conflict("serie %q ya existe para el producto", s.SerialNumber)
		}
	}
	s.ID = d.id()
	d.serials[s.ID] = copyOf(s)
	return nil
}

func (r lotRepo) GetSerialForUpdate(_ context.Context, companyID, productID int64, serialNumber string) (*entity.ProductSerial, error) {
	defer r.lock()()
	for _, s := range r.data().serials {
		if s.CompanyID == companyID && s.ProductID == productID && s.SerialNumber == serialNumber {
			return copyOf(s), nil
		}
	}
	return nil, nil
}

func (r lotRepo) UpdateSerial(_ context.Context, s *entity.ProductSerial) error {
	defer r.lock()()
	d := r.data()
	cur, ok := d.serials[s.ID]
	if !ok || cur.CompanyID != s.CompanyID {
		return domain.NotFound("serie %d", s.ID)
	}
	d.serials[s.ID] = copyOf(s)
	return nil
}

func (r lotRepo) ListSerials(_ context.Context, companyID, productID int64, status string) ([]*entity.ProductSerial, error) {
	defer r.lock()()
	return values(r.data().serials, func(s *entity.ProductSerial) bool {
		return s.CompanyID == companyID && s.ProductID == productID && (status == "" || s.Status == status)
	}), nil
}
