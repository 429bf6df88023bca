package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type saleRepo struct{ handle }

var _ repository.SaleRepository = saleRepo{}

func (r saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.sales {
		if other.CompanyID == sale.CompanyID && other.DocumentType == sale.DocumentType && other.DocumentNumber == sale.DocumentNumber {
			return domain.Conflict("documento %s %s ya existe", sale.DocumentType, sale.DocumentNumber)
		}
	}
	sale.ID = d.id()
	d.sales[sale.ID] = copyOf(sale)
	return nil
}

func (r saleRepo) NumberExists(_ context.Context, companyID int64, docType, number string) (bool, error) {
	defer r.lock()()
	for _, s := range r.data().sales {
		if s.CompanyID == companyID && s.DocumentType == docType && s.DocumentNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r saleRepo) CreateItem(_ context.Context, item *entity.SaleItem) error {
	defer r.lock()()
	d := r.data()
	if s, ok := d.sales[item.SaleID]; !ok || s.CompanyID != item.CompanyID {
		return domain.NotFound("venta %d", item.SaleID)
	}
	item.ID = d.id()
	d.saleItems[item.ID] = copyOf(item)
	return nil
}

func (r saleRepo) CreatePayment(_ context.Context, p *entity.Payment) error {
	defer r.lock()()
	d := r.data()
	if s, ok := d.sales[p.SaleID]; !ok || s.CompanyID != p.CompanyID {
		return domain.NotFound("venta %d", p.SaleID)
	}
	p.ID = d.id()
	d.payments[p.ID] = copyOf(p)
	return nil
}

func (r saleRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Sale, error) {
	defer r.lock()()
	s, ok := r.data().sales[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(s), nil
}

func (r saleRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.Sale, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r saleRepo) UpdatePaymentStatus(_ context.Context, sale *entity.Sale) error {
	defer r.lock()()
	cur, ok := r.data().sales[sale.ID]
	if !ok || cur.CompanyID != sale.CompanyID {
		return domain.NotFound("venta %d", sale.ID)
	}
	cur.AmountPaid = sale.AmountPaid
	cur.PaymentStatus = sale.PaymentStatus
	cur.UpdatedAt = sale.UpdatedAt
	return nil
}

func (r saleRepo) ListItems(_ context.Context, companyID, saleID int64) ([]*entity.SaleItem, error) {
	defer r.lock()()
	return values(r.data().saleItems, func(i *entity.SaleItem) bool {
		return i.CompanyID == companyID && i.SaleID == saleID
	}), nil
}

func (r saleRepo) ListPayments(_ context.Context, companyID, saleID int64) ([]*entity.Payment, error) {
	defer r.lock()()
	return values(r.data().payments, func(p *entity.Payment) bool {
		return p.CompanyID == companyID && p.SaleID == saleID
	}), nil
}

func (r saleRepo) List(_ context.Context, f repository.SaleFilter) ([]*entity.Sale, error) {
	defer r.lock()()
	list := values(r.data().sales, func(s *entity.Sale) bool {
		switch {
		case s.CompanyID != f.CompanyID:
			return false
		case f.DocumentType != "" && s.DocumentType != f.DocumentType:
			return false
		case f.CustomerID != nil && (s.CustomerID == nil || *s.CustomerID != *f.CustomerID):
			return false
		case f.From != nil && s.SaleDate.Before(*f.From):
			return false
		case f.To != nil && s.SaleDate.After(*f.To):
			return false
		}
		return true
	})
	// Más recientes primero.
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].SaleDate.Equal(list[j].SaleDate) {
			return list[i].SaleDate.After(list[j].SaleDate)
		}
		return list[i].ID > list[j].ID
	})
	return page(list, f.Limit, f.Offset), nil
}

func (r saleRepo) CreditedQuantities(_ context.Context, companyID, originalSaleID int64) (map[int64]decimal.Decimal, error) {
	defer r.lock()()
	d := r.data()
	out := map[int64]decimal.Decimal{}
	for _, item := range d.saleItems {
		s := d.sales[item.SaleID]
		if s == nil || s.CompanyID != companyID || s.DocumentType != document.TypeNotaCredito {
			continue
		}
		if s.OriginalSaleID == nil || *s.OriginalSaleID != originalSaleID {
			continue
		}
		out[item.ProductID] = out[item.ProductID].Add(item.Quantity)
	}
	return out, nil
}
