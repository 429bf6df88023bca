package memory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type productRepo struct{ handle }

var _ repository.ProductRepository = productRepo{}

func (r productRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	d := r.data()
	for _, other := range d.products {
		if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
			return domain.Conflict("SKU %q ya existe", p.SKU)
		}
	}
	p.ID = d.id()
	d.products[p.ID] = copyOf(p)
	return nil
}

func (r productRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Product, error) {
	defer r.lock()()
	p, ok := r.data().products[id]
	if !ok || p.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(p), nil
}

func (r productRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.lock()()
	d := r.data()
	cur, ok := d.products[p.ID]
	if !ok || cur.CompanyID != p.CompanyID {
		return domain.NotFound("producto %d", p.ID)
	}
	for _, other := range d.products {
		if other.ID != p.ID && other.CompanyID == p.CompanyID && other.SKU == p.SKU {
			return domain.Conflict("SKU %q ya existe", p.SKU)
		}
	}
	d.products[p.ID] = copyOf(p)
	return nil
}

func (r productRepo) UpdateCost(_ context.Context, companyID, productID int64, cost decimal.Decimal) error {
	defer r.lock()()
	p, ok := r.data().products[productID]
	if !ok || p.CompanyID != companyID {
		return domain.NotFound("producto %d", productID)
	}
	p.Cost = cost
	p.UpdatedAt = time.Now()
	return nil
}

func (r productRepo) ListByCompany(_ context.Context, companyID int64, limit, offset int) ([]*entity.Product, error) {
	defer r.lock()()
	list := values(r.data().products, func(p *entity.Product) bool { return p.CompanyID == companyID })
	return page(list, limit, offset), nil
}

type warehouseRepo struct{ handle }

var _ repository.WarehouseRepository = warehouseRepo{}

func (r warehouseRepo) Create(_ context.Context, w *entity.Warehouse) error {
	defer r.lock()()
	d := r.data()
	w.ID = d.id()
	d.warehouses[w.ID] = copyOf(w)
	return nil
}

func (r warehouseRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Warehouse, error) {
	defer r.lock()()
	w, ok := r.data().warehouses[id]
	if !ok || w.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(w), nil
}

func (r warehouseRepo) GetDefault(_ context.Context, companyID int64) (*entity.Warehouse, error) {
	defer r.lock()()
	list := values(r.data().warehouses, func(w *entity.Warehouse) bool {
		return w.CompanyID == companyID && w.IsDefault && w.IsActive
	})
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r warehouseRepo) Update(_ context.Context, w *entity.Warehouse) error {
	defer r.lock()()
	d := r.data()
	cur, ok := d.warehouses[w.ID]
	if !ok || cur.CompanyID != w.CompanyID {
		return domain.NotFound("bodega %d", w.ID)
	}
	d.warehouses[w.ID] = copyOf(w)
	return nil
}

func (r warehouseRepo) ClearDefault(_ context.Context, companyID, exceptID int64) error {
	defer r.lock()()
	for _, w := range r.data().warehouses {
		if w.CompanyID == companyID && w.ID != exceptID {
			w.IsDefault = false
		}
	}
	return nil
}

func (r warehouseRepo) ListByCompany(_ context.Context, companyID int64, limit, offset int) ([]*entity.Warehouse, error) {
	defer r.lock()()
	list := values(r.data().warehouses, func(w *entity.Warehouse) bool { return w.CompanyID == companyID })
	return page(list, limit, offset), nil
}

type customerRepo struct{ handle }

var _ repository.CustomerRepository = customerRepo{}

func (r customerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	d := r.data()
	c.ID = d.id()
	d.customers[c.ID] = copyOf(c)
	return nil
}

func (r customerRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Customer, error) {
	defer r.lock()()
	c, ok := r.data().customers[id]
	if !ok || c.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(c), nil
}

func (r customerRepo) ListByCompany(_ context.Context, companyID int64, limit, offset int) ([]*entity.Customer, error) {
	defer r.lock()()
	list := values(r.data().customers, func(c *entity.Customer) bool { return c.CompanyID == companyID })
	return page(list, limit, offset), nil
}

func (r customerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.lock()()
	d := r.data()
	cur, ok := d.customers[c.ID]
	if !ok || cur.CompanyID != c.CompanyID {
		return domain.NotFound("cliente %d", c.ID)
	}
	d.customers[c.ID] = copyOf(c)
	return nil
}

type supplierRepo struct{ handle }

var _ repository.SupplierRepository = supplierRepo{}

func (r supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	defer r.lock()()
	d := r.data()
	s.ID = d.id()
	d.suppliers[s.ID] = copyOf(s)
	return nil
}

func (r supplierRepo) GetByID(_ context.Context, companyID, id int64) (*entity.Supplier, error) {
	defer r.lock()()
	s, ok := r.data().suppliers[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(s), nil
}

func (r supplierRepo) ListByCompany(_ context.Context, companyID int64, limit, offset int) ([]*entity.Supplier, error) {
	defer r.lock()()
	list := values(r.data().suppliers, func(s *entity.Supplier) bool { return s.CompanyID == companyID })
	return page(list, limit, offset), nil
}
