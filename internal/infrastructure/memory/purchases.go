package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type purchaseOrderRepo struct{ handle }

var _ repository.PurchaseOrderRepository = purchaseOrderRepo{}

func (r purchaseOrderRepo) Create(_ context.Context, o *entity.PurchaseOrder) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.orders {
		if other.CompanyID == o.CompanyID && other.OrderNumber == o.OrderNumber {
			return domain.Conflict("orden de compra %s ya existe", o.OrderNumber)
		}
	}
	o.ID = d.id()
	d.orders[o.ID] = copyOf(o)
	return nil
}

func (r purchaseOrderRepo) NumberExists(_ context.Context, companyID int64, number string) (bool, error) {
	defer r.lock()()
	for _, o := range r.data().orders {
		if o.CompanyID == companyID && o.OrderNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r purchaseOrderRepo) CreateItem(_ context.Context, item *entity.PurchaseOrderItem) error {
	defer r.lock()()
	d := r.data()
	item.ID = d.id()
	d.orderItems[item.ID] = copyOf(item)
	return nil
}

func (r purchaseOrderRepo) GetByID(_ context.Context, companyID, id int64) (*entity.PurchaseOrder, error) {
	defer r.lock()()
	o, ok := r.data().orders[id]
	if !ok || o.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(o), nil
}

func (r purchaseOrderRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r purchaseOrderRepo) ListItems(_ context.Context, companyID, orderID int64) ([]*entity.PurchaseOrderItem, error) {
	defer r.lock()()
	return values(r.data().orderItems, func(i *entity.PurchaseOrderItem) bool {
		return i.CompanyID == companyID && i.PurchaseOrderID == orderID
	}), nil
}

func (r purchaseOrderRepo) AddReceivedQuantity(_ context.Context, companyID, itemID int64, qty decimal.Decimal) error {
	defer r.lock()()
	item, ok := r.data().orderItems[itemID]
	if !ok || item.CompanyID != companyID {
		return domain.NotFound("línea de orden de compra %d", itemID)
	}
	item.ReceivedQuantity = item.ReceivedQuantity.Add(qty)
	return nil
}

func (r purchaseOrderRepo) UpdateStatus(_ context.Context, companyID, id int64, status string) error {
	defer r.lock()()
	o, ok := r.data().orders[id]
	if !ok || o.CompanyID != companyID {
		return domain.NotFound("orden de compra %d", id)
	}
	o.Status = status
	return nil
}

type goodsReceiptRepo struct{ handle }

var _ repository.GoodsReceiptRepository = goodsReceiptRepo{}

func (r goodsReceiptRepo) Create(_ context.Context, gr *entity.GoodsReceipt) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.receipts {
		if other.CompanyID == gr.CompanyID && other.ReceiptNumber == gr.ReceiptNumber {
			return domain.Conflict("recepción %s ya existe", gr.ReceiptNumber)
		}
	}
	gr.ID = d.id()
	d.receipts[gr.ID] = copyOf(gr)
	return nil
}

func (r goodsReceiptRepo) NumberExists(_ context.Context, companyID int64, number string) (bool, error) {
	defer r.lock()()
	for _, gr := range r.data().receipts {
		if gr.CompanyID == companyID && gr.ReceiptNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r goodsReceiptRepo) CreateItem(_ context.Context, item *entity.GoodsReceiptItem) error {
	defer r.lock()()
	d := r.data()
	item.ID = d.id()
	d.receiptItems[item.ID] = copyOf(item)
	return nil
}

func (r goodsReceiptRepo) GetByID(_ context.Context, companyID, id int64) (*entity.GoodsReceipt, error) {
	defer r.lock()()
	gr, ok := r.data().receipts[id]
	if !ok || gr.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(gr), nil
}

func (r goodsReceiptRepo) ListItems(_ context.Context, companyID, receiptID int64) ([]*entity.GoodsReceiptItem, error) {
	defer r.lock()()
	return values(r.data().receiptItems, func(i *entity.GoodsReceiptItem) bool {
		return i.CompanyID == companyID && i.GoodsReceiptID == receiptID
	}), nil
}

func (r goodsReceiptRepo) CountByDirectPurchase(_ context.Context, companyID, directPurchaseID int64) (int, error) {
	defer r.lock()()
	n := 0
	for _, gr := range r.data().receipts {
		if gr.CompanyID == companyID && gr.DirectPurchaseID != nil && *gr.DirectPurchaseID == directPurchaseID {
			n++
		}
	}
	return n, nil
}

type directPurchaseRepo struct{ handle }

var _ repository.DirectPurchaseRepository = directPurchaseRepo{}

func (r directPurchaseRepo) Create(_ context.Context, p *entity.DirectPurchase) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.directs {
		if other.CompanyID == p.CompanyID && other.SupplierID == p.SupplierID && other.ReceiptNumber == p.ReceiptNumber {
			return domain.Conflict("compra %s del proveedor ya existe", p.ReceiptNumber)
		}
	}
	p.ID = d.id()
	d.directs[p.ID] = copyOf(p)
	return nil
}

func (r directPurchaseRepo) CreateItem(_ context.Context, item *entity.DirectPurchaseItem) error {
	defer r.lock()()
	d := r.data()
	item.ID = d.id()
	d.directItems[item.ID] = copyOf(item)
	return nil
}

func (r directPurchaseRepo) GetByID(_ context.Context, companyID, id int64) (*entity.DirectPurchase, error) {
	defer r.lock()()
	p, ok := r.data().directs[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(p), nil
}

func (r directPurchaseRepo) GetForUpdate(ctx context.Context, companyID, id int64) (*entity.DirectPurchase, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r directPurchaseRepo) ListItems(_ context.Context, companyID, purchaseID int64) ([]*entity.DirectPurchaseItem, error) {
	defer r.lock()()
	return values(r.data().directItems, func(i *entity.DirectPurchaseItem) bool {
		return i.CompanyID == companyID && i.DirectPurchaseID == purchaseID
	}), nil
}

func (r directPurchaseRepo) AddReceivedQuantity(_ context.Context, companyID, itemID int64, qty decimal.Decimal) error {
	defer r.lock()()
	item, ok := r.data().directItems[itemID]
	if !ok || item.CompanyID != companyID {
		return domain.NotFound("línea de compra directa %d", itemID)
	}
	item.ReceivedQuantity = item.ReceivedQuantity.Add(qty)
	return nil
}

func (r directPurchaseRepo) UpdateStatus(_ context.Context, companyID, id int64, status string) error {
	defer r.lock()()
	p, ok := r.data().directs[id]
	if !ok || p.CompanyID != companyID {
		return domain.NotFound("compra directa %d", id)
	}
	p.Status = status
	return nil
}
