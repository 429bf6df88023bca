package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	domaininv "github.com/jhoicas/erp-api/internal/domain/inventory"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// receiptLine línea a recibir, venga de una recepción directa o de una compra directa.
type receiptLine struct {
	ProductID      int64
	Quantity       decimal.Decimal
	UnitCost       decimal.Decimal
	POItemID       *int64
	DPItemID       *int64
	LotID          *int64
	LotNumber      string
	ExpirationDate *time.Time
}

// CreateGoodsReceipt recibe mercadería en una bodega. Cada línea entra a stock
// (PurchaseReceived) y, si referencia una línea de orden de compra, suma a su recibido.
// Con orden de compra enlazada se recalcula su estado. Un ReceiptNumber repetido en la
// empresa retorna domain.ErrConflict.
func (uc *UseCase) CreateGoodsReceipt(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateGoodsReceiptRequest) (*dto.GoodsReceiptResponse, error) {
	if in.ReceiptNumber == "" {
		return nil, domain.Invalid("ReceiptNumber es obligatorio")
	}
	if err := uc.checkSupplier(ctx, companyID, in.SupplierID); err != nil {
		return nil, err
	}
	if err := uc.checkWarehouse(ctx, companyID, in.WarehouseID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("la recepción debe tener al menos una línea")
	}

	// Líneas de la orden de compra, para validar las referencias de cada ítem.
	var poItems map[int64]*entity.PurchaseOrderItem
	if in.PurchaseOrderID != nil {
		order, err := uc.repos.PurchaseOrders.GetByID(ctx, companyID, *in.PurchaseOrderID)
		if err != nil {
			return nil, err
		}
		if order == nil {
			return nil, domain.NotFound("orden de compra %d", *in.PurchaseOrderID)
		}
		if order.SupplierID != in.SupplierID {
			return nil, domain.Invalid("la orden de compra %d es de otro proveedor", order.ID)
		}
		list, err := uc.repos.PurchaseOrders.ListItems(ctx, companyID, order.ID)
		if err != nil {
			return nil, err
		}
		poItems = make(map[int64]*entity.PurchaseOrderItem, len(list))
		for _, it := range list {
			poItems[it.ID] = it
		}
	}

	lines := make([]receiptLine, 0, len(in.Items))
	for i, it := range in.Items {
		if err := checkQtyCost(i, it.QuantityReceived, it.UnitCost); err != nil {
			return nil, err
		}
		if _, err := uc.getProduct(ctx, companyID, it.ProductID); err != nil {
			return nil, err
		}
		if it.PurchaseOrderItemID != nil {
			if poItems == nil {
				return nil, domain.Invalid("Items[%d]: PurchaseOrderItemID requiere PurchaseOrderID", i)
			}
			poItem, ok := poItems[*it.PurchaseOrderItemID]
			if !ok {
				return nil, domain.Invalid("Items[%d]: la línea %d no pertenece a la orden de compra", i, *it.PurchaseOrderItemID)
			}
			if poItem.ProductID != it.ProductID {
				return nil, domain.Invalid("Items[%d]: el producto no coincide con la línea de la orden", i)
			}
		}
		if it.LotID != nil {
			lot, err := uc.repos.Lots.GetLot(ctx, companyID, *it.LotID)
			if err != nil {
				return nil, err
			}
			if lot == nil || lot.ProductID != it.ProductID {
				return nil, domain.Invalid("Items[%d]: el lote %d no corresponde al producto %d", i, *it.LotID, it.ProductID)
			}
		}
		lines = append(lines, receiptLine{
			ProductID:      it.ProductID,
			Quantity:       it.QuantityReceived,
			UnitCost:       it.UnitCost,
			POItemID:       it.PurchaseOrderItemID,
			LotID:          it.LotID,
			LotNumber:      it.LotNumber,
			ExpirationDate: it.ExpirationDate,
		})
	}

	now := uc.clock()
	receiptDate := now
	if in.ReceiptDate != nil {
		receiptDate = *in.ReceiptDate
	}
	receipt := &entity.GoodsReceipt{
		CompanyID:       companyID,
		SupplierID:      in.SupplierID,
		WarehouseID:     in.WarehouseID,
		EmployeeID:      employeeID,
		ReceiptNumber:   in.ReceiptNumber,
		ReceiptDate:     receiptDate,
		PurchaseOrderID: in.PurchaseOrderID,
		Notes:           in.Notes,
		CreatedAt:       now,
	}

	var items []*entity.GoodsReceiptItem
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if in.PurchaseOrderID != nil {
			// Serializa recepciones concurrentes de la misma orden.
			order, err := r.PurchaseOrders.GetForUpdate(ctx, companyID, *in.PurchaseOrderID)
			if err != nil {
				return err
			}
			if order == nil {
				return domain.NotFound("orden de compra %d", *in.PurchaseOrderID)
			}
		}
		var err error
		items, err = uc.receive(ctx, r, employeeID, receipt, lines)
		if err != nil {
			return err
		}
		if in.PurchaseOrderID != nil {
			status, err := recomputeOrderStatus(ctx, r, companyID, *in.PurchaseOrderID)
			if err != nil {
				return err
			}
			uc.log.Debug().Int64("purchase_order_id", *in.PurchaseOrderID).Str("status", status).Msg("estado de orden recalculado")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("company_id", companyID).
		Int64("goods_receipt_id", receipt.ID).
		Str("receipt_number", receipt.ReceiptNumber).
		Int("items", len(items)).
		Msg("recepción registrada")
	return toGoodsReceiptResponse(receipt, items), nil
}

// receive inserta la cabecera y las líneas de una recepción y mueve el inventario.
// Corre dentro de la transacción del llamador; lo reutilizan la recepción directa y la
// recepción de compras directas.
func (uc *UseCase) receive(ctx context.Context, r repository.Repos, employeeID *int64, receipt *entity.GoodsReceipt, lines []receiptLine) ([]*entity.GoodsReceiptItem, error) {
	if err := r.GoodsReceipts.Create(ctx, receipt); err != nil {
		return nil, err
	}
	batchID := uuid.NewString()
	receiptID := receipt.ID
	items := make([]*entity.GoodsReceiptItem, 0, len(lines))
	for _, l := range lines {
		lotID, err := resolveLot(ctx, r, receipt.CompanyID, l, receipt.CreatedAt)
		if err != nil {
			return nil, err
		}
		item := &entity.GoodsReceiptItem{
			GoodsReceiptID:       receipt.ID,
			CompanyID:            receipt.CompanyID,
			ProductID:            l.ProductID,
			PurchaseOrderItemID:  l.POItemID,
			DirectPurchaseItemID: l.DPItemID,
			LotID:                lotID,
			QuantityReceived:     l.Quantity,
			UnitCost:             l.UnitCost,
		}
		if err := r.GoodsReceipts.CreateItem(ctx, item); err != nil {
			return nil, err
		}
		if err := updateAverageCost(ctx, r, receipt.CompanyID, l); err != nil {
			return nil, err
		}
		_, err = uc.ledger.Apply(ctx, r.Inventory, inventory.Movement{
			CompanyID:       receipt.CompanyID,
			ProductID:       l.ProductID,
			WarehouseID:     receipt.WarehouseID,
			LotID:           lotID,
			QuantityChange:  l.Quantity,
			TransactionType: entity.TxTypePurchaseReceived,
			ReferenceType:   entity.RefDocGoodsReceipt,
			ReferenceID:     &receiptID,
			BatchID:         batchID,
			EmployeeID:      employeeID,
			Notes:           "Recepción " + receipt.ReceiptNumber,
		})
		if err != nil {
			return nil, err
		}
		if l.POItemID != nil {
			if err := r.PurchaseOrders.AddReceivedQuantity(ctx, receipt.CompanyID, *l.POItemID, l.Quantity); err != nil {
				return nil, err
			}
		}
		if l.DPItemID != nil {
			if err := r.DirectPurchases.AddReceivedQuantity(ctx, receipt.CompanyID, *l.DPItemID, l.Quantity); err != nil {
				return nil, err
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// resolveLot devuelve el lote de la línea: el indicado, o el de LotNumber (lo crea si no existe).
func resolveLot(ctx context.Context, r repository.Repos, companyID int64, l receiptLine, now time.Time) (*int64, error) {
	if l.LotID != nil || l.LotNumber == "" {
		return l.LotID, nil
	}
	lot, err := r.Lots.GetLotByNumber(ctx, companyID, l.ProductID, l.LotNumber)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		lot = &entity.ProductLot{
			CompanyID:      companyID,
			ProductID:      l.ProductID,
			LotNumber:      l.LotNumber,
			ExpirationDate: l.ExpirationDate,
			CreatedAt:      now,
		}
		if err := r.Lots.CreateLot(ctx, lot); err != nil {
			return nil, err
		}
	}
	id := lot.ID
	return &id, nil
}

// updateAverageCost recalcula el costo promedio ponderado del producto con la entrada.
// Usa el stock total de la empresa antes del movimiento.
func updateAverageCost(ctx context.Context, r repository.Repos, companyID int64, l receiptLine) error {
	product, err := r.Products.GetByID(ctx, companyID, l.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFound("producto %d", l.ProductID)
	}
	productID := l.ProductID
	levels, err := r.Inventory.ListLevels(ctx, repository.LevelFilter{CompanyID: companyID, ProductID: &productID, IncludeZero: true})
	if err != nil {
		return err
	}
	stock := decimal.Zero
	for _, lv := range levels {
		stock = stock.Add(lv.StockQuantity)
	}
	cost := domaininv.CostCalculator(stock, product.Cost, l.Quantity, l.UnitCost)
	if cost.Equal(product.Cost) {
		return nil
	}
	return r.Products.UpdateCost(ctx, companyID, l.ProductID, cost)
}

func toGoodsReceiptResponse(g *entity.GoodsReceipt, items []*entity.GoodsReceiptItem) *dto.GoodsReceiptResponse {
	out := &dto.GoodsReceiptResponse{
		Header: dto.GoodsReceiptHeader{
			ID:               g.ID,
			SupplierID:       g.SupplierID,
			WarehouseID:      g.WarehouseID,
			ReceiptNumber:    g.ReceiptNumber,
			ReceiptDate:      g.ReceiptDate,
			PurchaseOrderID:  g.PurchaseOrderID,
			DirectPurchaseID: g.DirectPurchaseID,
			Notes:            g.Notes,
		},
		Items: make([]dto.GoodsReceiptItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.GoodsReceiptItemResponse{
			ID:                   it.ID,
			ProductID:            it.ProductID,
			QuantityReceived:     it.QuantityReceived,
			UnitCost:             it.UnitCost,
			PurchaseOrderItemID:  it.PurchaseOrderItemID,
			DirectPurchaseItemID: it.DirectPurchaseItemID,
			LotID:                it.LotID,
		})
	}
	return out
}
