package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

type inventoryRepo struct{ handle }

var _ repository.InventoryRepository = inventoryRepo{}

func (s *state) findLevel(key repository.LevelKey) *entity.InventoryLevel {
	for _, l := range s.levels {
		if l.CompanyID == key.CompanyID && l.ProductID == key.ProductID &&
			l.WarehouseID == key.WarehouseID && sameLot(l.LotID, key.LotID) {
			return l
		}
	}
	return nil
}

func (r inventoryRepo) GetLevelForUpdate(_ context.Context, key repository.LevelKey) (*entity.InventoryLevel, error) {
	defer r.lock()()
	return copyOf(r.data().findLevel(key)), nil
}

func (r inventoryRepo) InsertLevel(_ context.Context, level *entity.InventoryLevel) error {
	defer r.lock()()
	d := r.data()
	key := repository.LevelKey{
		CompanyID:   level.CompanyID,
		ProductID:   level.ProductID,
		WarehouseID: level.WarehouseID,
		LotID:       level.LotID,
	}
	if cur := d.findLevel(key); cur != nil {
		cur.StockQuantity = cur.StockQuantity.Add(level.StockQuantity)
		cur.UpdatedAt = level.UpdatedAt
		*level = *cur
		return nil
	}
	level.ID = d.id()
	d.levels[level.ID] = copyOf(level)
	return nil
}

func (r inventoryRepo) UpdateLevelStock(_ context.Context, level *entity.InventoryLevel) error {
	defer r.lock()()
	cur, ok := r.data().levels[level.ID]
	if !ok || cur.CompanyID != level.CompanyID {
		return domain.NotFound("nivel de inventario %d", level.ID)
	}
	cur.StockQuantity = level.StockQuantity
	cur.UpdatedAt = level.UpdatedAt
	return nil
}

func (r inventoryRepo) InsertTransaction(_ context.Context, tx *entity.InventoryTransaction) error {
	defer r.lock()()
	d := r.data()
	tx.ID = d.id()
	d.transactions = append(d.transactions, copyOf(tx))
	return nil
}

func (r inventoryRepo) AddLotQuantity(_ context.Context, companyID, lotID, warehouseID int64, delta decimal.Decimal) error {
	defer r.lock()()
	d := r.data()
	lot, ok := d.lots[lotID]
	if !ok || lot.CompanyID != companyID {
		return domain.NotFound("lote %d", lotID)
	}
	k := lotWarehouse{lotID: lotID, warehouseID: warehouseID}
	d.lotQuantities[k] = d.lotQuantities[k].Add(delta)
	return nil
}

func (r inventoryRepo) ListLevels(_ context.Context, f repository.LevelFilter) ([]*entity.InventoryLevel, error) {
	defer r.lock()()
	list := values(r.data().levels, func(l *entity.InventoryLevel) bool {
		switch {
		case l.CompanyID != f.CompanyID:
			return false
		case f.ProductID != nil && l.ProductID != *f.ProductID:
			return false
		case f.WarehouseID != nil && l.WarehouseID != *f.WarehouseID:
			return false
		case !f.IncludeZero && l.StockQuantity.IsZero():
			return false
		}
		return true
	})
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].ProductID != list[j].ProductID {
			return list[i].ProductID < list[j].ProductID
		}
		return list[i].WarehouseID < list[j].WarehouseID
	})
	return list, nil
}

func (r inventoryRepo) ListTransactions(_ context.Context, f repository.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	defer r.lock()()
	all := r.data().transactions
	list := make([]*entity.InventoryTransaction, 0, len(all))
	// Más recientes primero.
	for i := len(all) - 1; i >= 0; i-- {
		t := all[i]
		switch {
		case t.CompanyID != f.CompanyID:
			continue
		case f.ProductID != nil && t.ProductID != *f.ProductID:
			continue
		case f.WarehouseID != nil && t.WarehouseID != *f.WarehouseID:
			continue
		case f.LotID != nil && !sameLot(t.LotID, f.LotID):
			continue
		}
		list = append(list, copyOf(t))
	}
	return page(list, f.Limit, f.Offset), nil
}

type sequenceRepo struct{ handle }

var _ repository.DocumentSequenceRepository = sequenceRepo{}

func (r sequenceRepo) GetActiveForUpdate(_ context.Context, companyID int64, documentType string, electronic bool) (*entity.DocumentSequence, error) {
	defer r.lock()()
	for _, s := range r.data().sequences {
		if s.CompanyID == companyID && s.DocumentType == documentType && s.IsElectronic == electronic && s.IsActive {
			return copyOf(s), nil
		}
	}
	return nil, nil
}

func (r sequenceRepo) Advance(_ context.Context, seq *entity.DocumentSequence) error {
	defer r.lock()()
	cur, ok := r.data().sequences[seq.ID]
	if !ok || cur.CompanyID != seq.CompanyID {
		return domain.NotFound("correlativo %d", seq.ID)
	}
	cur.NextNumber = seq.NextNumber
	cur.UpdatedAt = time.Now()
	return nil
}

func (r sequenceRepo) Create(_ context.Context, seq *entity.DocumentSequence) error {
	defer r.lock()()
	d := r.data()
	for _, s := range d.sequences {
		if s.CompanyID == seq.CompanyID && s.DocumentType == seq.DocumentType && s.IsElectronic == seq.IsElectronic {
			return domain.Conflict("correlativo %s (electrónico=%t) ya existe", seq.DocumentType, seq.IsElectronic)
		}
	}
	seq.ID = d.id()
	d.sequences[seq.ID] = copyOf(seq)
	return nil
}

func (r sequenceRepo) GetByID(_ context.Context, companyID, id int64) (*entity.DocumentSequence, error) {
	defer r.lock()()
	s, ok := r.data().sequences[id]
	if !ok || s.CompanyID != companyID {
		return nil, nil
	}
	return copyOf(s), nil
}

func (r sequenceRepo) GetByIDForUpdate(ctx context.Context, companyID, id int64) (*entity.DocumentSequence, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r sequenceRepo) Update(_ context.Context, seq *entity.DocumentSequence) error {
	defer r.lock()()
	d := r.data()
	cur, ok := d.sequences[seq.ID]
	if !ok || cur.CompanyID != seq.CompanyID {
		return domain.NotFound("correlativo %d", seq.ID)
	}
	d.sequences[seq.ID] = copyOf(seq)
	return nil
}

func (r sequenceRepo) ListByCompany(_ context.Context, companyID int64) ([]*entity.DocumentSequence, error) {
	defer r.lock()()
	return values(r.data().sequences, func(s *entity.DocumentSequence) bool { return s.CompanyID == companyID }), nil
}
