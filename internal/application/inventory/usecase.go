package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// UseCase operaciones de inventario fuera de documentos: ajustes manuales, conteos
// (ajuste masivo a cantidades absolutas), transferencias entre bodegas y consultas.
type UseCase struct {
	tx       ports.TxRunner
	repos    repository.Repos
	ledger   *Ledger
	exporter LevelExporter
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos repository.Repos, ledger *Ledger, exporter LevelExporter) *UseCase {
	return &UseCase{tx: tx, repos: repos, ledger: ledger, exporter: exporter}
}

// Adjust aplica una corrección manual (positiva o negativa) y devuelve el nivel resultante.
func (uc *UseCase) Adjust(ctx context.Context, companyID int64, employeeID *int64, in dto.AdjustInventoryRequest) (*dto.InventoryLevelResponse, error) {
	if in.QuantityChange.IsZero() {
		return nil, domain.Invalid("QuantityChange debe ser distinto de cero")
	}
	if err := uc.checkKey(ctx, companyID, in.ProductID, in.WarehouseID, in.LotID); err != nil {
		return nil, err
	}

	var out dto.InventoryLevelResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		level, err := uc.ledger.Apply(ctx, r.Inventory, Movement{
			CompanyID:       companyID,
			ProductID:       in.ProductID,
			WarehouseID:     in.WarehouseID,
			LotID:           in.LotID,
			QuantityChange:  in.QuantityChange,
			TransactionType: entity.TxTypeManualAdjustment,
			ReferenceType:   entity.RefDocAdjustment,
			BatchID:         uuid.NewString(),
			EmployeeID:      employeeID,
			Notes:           in.Reason,
		})
		if err != nil {
			return err
		}
		out = ToLevelResponse(level)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// BulkAdjust lleva cada clave a su cantidad objetivo en una sola transacción.
// Todas las transacciones generadas comparten BatchID.
func (uc *UseCase) BulkAdjust(ctx context.Context, companyID int64, employeeID *int64, in dto.BulkAdjustRequest) (*dto.BulkAdjustResponse, error) {
	for i, it := range in.Items {
		if it.TargetQuantity.IsNegative() {
			return nil, domain.Invalid("Items[%d]: TargetQuantity no puede ser negativo", i)
		}
		if err := uc.checkKey(ctx, companyID, it.ProductID, it.WarehouseID, it.LotID); err != nil {
			return nil, err
		}
	}

	batchID := uuid.NewString()
	out := dto.BulkAdjustResponse{BatchID: batchID, Levels: make([]dto.InventoryLevelResponse, 0, len(in.Items))}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		for _, it := range in.Items {
			level, _, err := uc.ledger.ApplyTarget(ctx, r.Inventory, it.TargetQuantity, Movement{
				CompanyID:       companyID,
				ProductID:       it.ProductID,
				WarehouseID:     it.WarehouseID,
				LotID:           it.LotID,
				TransactionType: entity.TxTypeManualAdjustment,
				ReferenceType:   entity.RefDocAdjustment,
				BatchID:         batchID,
				EmployeeID:      employeeID,
				Notes:           in.Reason,
			})
			if err != nil {
				return err
			}
			out.Levels = append(out.Levels, ToLevelResponse(level))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Transfer mueve stock entre dos bodegas: TransferOut en origen y TransferIn en destino,
// en la misma transacción.
func (uc *UseCase) Transfer(ctx context.Context, companyID int64, employeeID *int64, in dto.TransferRequest) (*dto.TransferResponse, error) {
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.Invalid("Quantity debe ser mayor que cero")
	}
	if in.FromWarehouseID == in.ToWarehouseID {
		return nil, domain.Invalid("las bodegas de origen y destino deben ser distintas")
	}
	if err := uc.checkKey(ctx, companyID, in.ProductID, in.FromWarehouseID, in.LotID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, companyID, in.ToWarehouseID); err != nil {
		return nil, err
	}

	batchID := uuid.NewString()
	base := Movement{
		CompanyID:     companyID,
		ProductID:     in.ProductID,
		LotID:         in.LotID,
		ReferenceType: entity.RefDocTransfer,
		BatchID:       batchID,
		EmployeeID:    employeeID,
		Notes:         in.Notes,
	}
	outMove, inMove := base, base
	outMove.WarehouseID = in.FromWarehouseID
	outMove.QuantityChange = in.Quantity.Neg()
	outMove.TransactionType = entity.TxTypeTransferOut
	inMove.WarehouseID = in.ToWarehouseID
	inMove.QuantityChange = in.Quantity
	inMove.TransactionType = entity.TxTypeTransferIn

	// Bloqueos en orden de bodega ascendente.
	first, second := outMove, inMove
	if inMove.WarehouseID < outMove.WarehouseID {
		first, second = inMove, outMove
	}

	var resp dto.TransferResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		l1, err := uc.ledger.Apply(ctx, r.Inventory, first)
		if err != nil {
			return err
		}
		l2, err := uc.ledger.Apply(ctx, r.Inventory, second)
		if err != nil {
			return err
		}
		if first.WarehouseID == in.FromWarehouseID {
			resp = dto.TransferResponse{BatchID: batchID, From: ToLevelResponse(l1), To: ToLevelResponse(l2)}
		} else {
			resp = dto.TransferResponse{BatchID: batchID, From: ToLevelResponse(l2), To: ToLevelResponse(l1)}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListLevels devuelve los niveles de la empresa. Sin IncludeZero se omiten los niveles en cero.
func (uc *UseCase) ListLevels(ctx context.Context, companyID int64, q dto.LevelQuery) ([]dto.InventoryLevelResponse, error) {
	levels, err := uc.repos.Inventory.ListLevels(ctx, repository.LevelFilter{
		CompanyID:   companyID,
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		IncludeZero: q.IncludeZero,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLevelResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, ToLevelResponse(l))
	}
	return out, nil
}

// ListTransactions devuelve el log de transacciones, más recientes primero.
func (uc *UseCase) ListTransactions(ctx context.Context, companyID int64, q dto.TransactionQuery) ([]dto.InventoryTransactionResponse, error) {
	q.DefaultPage()
	list, err := uc.repos.Inventory.ListTransactions(ctx, repository.TransactionFilter{
		CompanyID:   companyID,
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		LotID:       q.LotID,
		Limit:       q.Limit,
		Offset:      q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryTransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.InventoryTransactionResponse{
			ID:              t.ID,
			ProductID:       t.ProductID,
			WarehouseID:     t.WarehouseID,
			LotID:           t.LotID,
			SerialNumber:    t.SerialNumber,
			QuantityChange:  t.QuantityChange,
			TransactionType: t.TransactionType,
			ReferenceType:   t.ReferenceType,
			ReferenceID:     t.ReferenceID,
			BatchID:         t.BatchID,
			EmployeeID:      t.EmployeeID,
			Notes:           t.Notes,
			CreatedAt:       t.CreatedAt,
		})
	}
	return out, nil
}

// ExportLevels genera la planilla XLSX de niveles con nombres de producto, bodega y lote.
func (uc *UseCase) ExportLevels(ctx context.Context, companyID int64, q dto.LevelQuery) ([]byte, string, error) {
	levels, err := uc.repos.Inventory.ListLevels(ctx, repository.LevelFilter{
		CompanyID:   companyID,
		ProductID:   q.ProductID,
		WarehouseID: q.WarehouseID,
		IncludeZero: q.IncludeZero,
	})
	if err != nil {
		return nil, "", err
	}

	products := map[int64]*entity.Product{}
	warehouses := map[int64]*entity.Warehouse{}
	lots := map[int64]*entity.ProductLot{}
	rows := make([]LevelExportRow, 0, len(levels))
	for _, l := range levels {
		p, ok := products[l.ProductID]
		if !ok {
			if p, err = uc.repos.Products.GetByID(ctx, companyID, l.ProductID); err != nil {
				return nil, "", err
			}
			products[l.ProductID] = p
		}
		w, ok := warehouses[l.WarehouseID]
		if !ok {
			if w, err = uc.repos.Warehouses.GetByID(ctx, companyID, l.WarehouseID); err != nil {
				return nil, "", err
			}
			warehouses[l.WarehouseID] = w
		}
		row := LevelExportRow{
			StockQuantity: l.StockQuantity,
			Reserved:      l.ReservedQuantity,
			UpdatedAt:     l.UpdatedAt,
		}
		if p != nil {
			row.SKU, row.ProductName = p.SKU, p.Name
		}
		if w != nil {
			row.WarehouseName = w.Name
		}
		if l.LotID != nil {
			lot, ok := lots[*l.LotID]
			if !ok {
				if lot, err = uc.repos.Lots.GetLot(ctx, companyID, *l.LotID); err != nil {
					return nil, "", err
				}
				lots[*l.LotID] = lot
			}
			if lot != nil {
				row.LotNumber = lot.LotNumber
			}
		}
		rows = append(rows, row)
	}

	data, err := uc.exporter.ExportLevels(ctx, rows)
	if err != nil {
		return nil, "", fmt.Errorf("exportar niveles: %w", err)
	}
	filename := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("20060102_150405"))
	return data, filename, nil
}

// checkKey valida que producto, bodega y lote (si viene) existan y sean de la empresa.
func (uc *UseCase) checkKey(ctx context.Context, companyID, productID, warehouseID int64, lotID *int64) error {
	p, err := uc.repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("producto %d", productID)
	}
	if err := uc.checkWarehouse(ctx, companyID, warehouseID); err != nil {
		return err
	}
	if lotID != nil {
		lot, err := uc.repos.Lots.GetLot(ctx, companyID, *lotID)
		if err != nil {
			return err
		}
		if lot == nil || lot.ProductID != productID {
			return domain.Invalid("el lote %d no corresponde al producto %d", *lotID, productID)
		}
	}
	return nil
}

func (uc *UseCase) checkWarehouse(ctx context.Context, companyID, warehouseID int64) error {
	w, err := uc.repos.Warehouses.GetByID(ctx, companyID, warehouseID)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.NotFound("bodega %d", warehouseID)
	}
	return nil
}

// ToLevelResponse convierte un nivel de inventario a su DTO.
func ToLevelResponse(l *entity.InventoryLevel) dto.InventoryLevelResponse {
	return dto.InventoryLevelResponse{
		ID:               l.ID,
		ProductID:        l.ProductID,
		WarehouseID:      l.WarehouseID,
		LotID:            l.LotID,
		StockQuantity:    l.StockQuantity,
		ReservedQuantity: l.ReservedQuantity,
		UpdatedAt:        l.UpdatedAt,
	}
}
