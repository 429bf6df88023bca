package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// Movement cambio de stock a aplicar sobre una clave (producto, bodega, lote).
// QuantityChange es positivo en entradas y negativo en salidas.
type Movement struct {
	CompanyID       int64
	ProductID       int64
	WarehouseID     int64
	LotID           *int64
	SerialNumber    string
	QuantityChange  decimal.Decimal
	TransactionType string
	ReferenceType   string
	ReferenceID     *int64
	BatchID         string
	EmployeeID      *int64
	Notes           string
}

func (m Movement) key() repository.LevelKey {
	return repository.LevelKey{
		CompanyID:   m.CompanyID,
		ProductID:   m.ProductID,
		WarehouseID: m.WarehouseID,
		LotID:       m.LotID,
	}
}

// Ledger mantiene los niveles de inventario consistentes con el log de transacciones.
// Cada llamada corre dentro de la transacción del llamador: bloquea la fila del nivel
// (SELECT ... FOR UPDATE), actualiza el stock y agrega la transacción en el mismo alcance.
// No impide stock negativo; esa regla, si existe, es del llamador.
type Ledger struct {
	clock func() time.Time
}

// NewLedger construye el ledger.
func NewLedger() *Ledger {
	return &Ledger{clock: time.Now}
}

// Apply aplica un movimiento y devuelve el nivel resultante.
func (l *Ledger) Apply(ctx context.Context, inv repository.InventoryRepository, m Movement) (*entity.InventoryLevel, error) {
	level, err := inv.GetLevelForUpdate(ctx, m.key())
	if err != nil {
		return nil, fmt.Errorf("bloquear nivel de inventario: %w", err)
	}
	return l.apply(ctx, inv, level, m)
}

// ApplyTarget lleva el stock de la clave a target: calcula delta = target - stock actual
// y aplica ese delta, de modo que el log registra el cambio real. Si el delta es cero no
// escribe nada y devuelve el nivel actual (o uno en cero si la clave no existe).
func (l *Ledger) ApplyTarget(ctx context.Context, inv repository.InventoryRepository, target decimal.Decimal, m Movement) (*entity.InventoryLevel, decimal.Decimal, error) {
	level, err := inv.GetLevelForUpdate(ctx, m.key())
	if err != nil {
		return nil, decimal.Zero, fmt.Errorf("bloquear nivel de inventario: %w", err)
	}
	current := decimal.Zero
	if level != nil {
		current = level.StockQuantity
	}
	delta := target.Sub(current)
	if delta.IsZero() {
		if level == nil {
			level = &entity.InventoryLevel{
				CompanyID:   m.CompanyID,
				ProductID:   m.ProductID,
				WarehouseID: m.WarehouseID,
				LotID:       m.LotID,
			}
		}
		return level, delta, nil
	}
	m.QuantityChange = delta
	level, err = l.apply(ctx, inv, level, m)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return level, delta, nil
}

// ApplyAll aplica varios movimientos ordenados por clave (bodega, producto, lote) para que
// transacciones concurrentes tomen los bloqueos en el mismo orden y no se bloqueen mutuamente.
func (l *Ledger) ApplyAll(ctx context.Context, inv repository.InventoryRepository, moves []Movement) error {
	ordered := make([]Movement, len(moves))
	copy(ordered, moves)
	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if a.WarehouseID != b.WarehouseID {
			return a.WarehouseID < b.WarehouseID
		}
		if a.ProductID != b.ProductID {
			return a.ProductID < b.ProductID
		}
		return lotOrder(a.LotID) < lotOrder(b.LotID)
	})
	for _, m := range ordered {
		if _, err := l.Apply(ctx, inv, m); err != nil {
			return err
		}
	}
	return nil
}

func (l *Ledger) apply(ctx context.Context, inv repository.InventoryRepository, level *entity.InventoryLevel, m Movement) (*entity.InventoryLevel, error) {
	now := l.clock()
	if level == nil {
		level = &entity.InventoryLevel{
			CompanyID:        m.CompanyID,
			ProductID:        m.ProductID,
			WarehouseID:      m.WarehouseID,
			LotID:            m.LotID,
			StockQuantity:    m.QuantityChange,
			ReservedQuantity: decimal.Zero,
			UpdatedAt:        now,
		}
		if err := inv.InsertLevel(ctx, level); err != nil {
			return nil, fmt.Errorf("crear nivel de inventario: %w", err)
		}
	} else {
		level.StockQuantity = level.StockQuantity.Add(m.QuantityChange)
		level.UpdatedAt = now
		if err := inv.UpdateLevelStock(ctx, level); err != nil {
			return nil, fmt.Errorf("actualizar nivel de inventario: %w", err)
		}
	}

	tx := &entity.InventoryTransaction{
		CompanyID:       m.CompanyID,
		ProductID:       m.ProductID,
		WarehouseID:     m.WarehouseID,
		LotID:           m.LotID,
		SerialNumber:    m.SerialNumber,
		QuantityChange:  m.QuantityChange,
		TransactionType: m.TransactionType,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		BatchID:         m.BatchID,
		EmployeeID:      m.EmployeeID,
		Notes:           m.Notes,
		CreatedAt:       now,
	}
	if err := inv.InsertTransaction(ctx, tx); err != nil {
		return nil, fmt.Errorf("registrar transacción de inventario: %w", err)
	}

	if m.LotID != nil {
		if err := inv.AddLotQuantity(ctx, m.CompanyID, *m.LotID, m.WarehouseID, m.QuantityChange); err != nil {
			return nil, fmt.Errorf("actualizar cantidad del lote: %w", err)
		}
	}
	return level, nil
}

func lotOrder(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
}
