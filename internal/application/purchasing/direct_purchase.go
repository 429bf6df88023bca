package purchasing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CreateDirectPurchase registra una compra sin orden previa: cabecera en Pending y
// líneas con recibido en cero. No mueve inventario; eso ocurre al recibirla.
func (uc *UseCase) CreateDirectPurchase(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateDirectPurchaseRequest) (*dto.DirectPurchaseResponse, error) {
	if in.ReceiptNumber == "" {
		return nil, domain.Invalid("ReceiptNumber es obligatorio")
	}
	if err := uc.checkSupplier(ctx, companyID, in.SupplierID); err != nil {
		return nil, err
	}
	if in.WarehouseID != nil {
		if err := uc.checkWarehouse(ctx, companyID, *in.WarehouseID); err != nil {
			return nil, err
		}
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("la compra debe tener al menos una línea")
	}

	now := uc.clock()
	purchaseDate := now
	if in.PurchaseDate != nil {
		purchaseDate = *in.PurchaseDate
	}
	purchase := &entity.DirectPurchase{
		CompanyID:     companyID,
		SupplierID:    in.SupplierID,
		WarehouseID:   in.WarehouseID,
		EmployeeID:    employeeID,
		ReceiptNumber: in.ReceiptNumber,
		PurchaseDate:  purchaseDate,
		Status:        entity.PurchaseStatusPending,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	items := make([]*entity.DirectPurchaseItem, 0, len(in.Items))
	total, tax := decimal.Zero, decimal.Zero
	for i, it := range in.Items {
		if err := checkQtyCost(i, it.Quantity, it.UnitCost); err != nil {
			return nil, err
		}
		product, err := uc.getProduct(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, err
		}
		taxPct := product.TaxPct
		if it.TaxPct != nil {
			if it.TaxPct.IsNegative() {
				return nil, domain.Invalid("Items[%d]: TaxPct no puede ser negativo", i)
			}
			taxPct = *it.TaxPct
		}
		lineTotal := it.Quantity.Mul(it.UnitCost).Round(2)
		lineTax := lineTotal.Mul(taxPct).Div(hundred).Round(2)
		total = total.Add(lineTotal)
		tax = tax.Add(lineTax)
		items = append(items, &entity.DirectPurchaseItem{
			CompanyID:        companyID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			ReceivedQuantity: decimal.Zero,
			UnitCost:         it.UnitCost,
			TaxPct:           taxPct,
			TaxAmount:        lineTax,
			LineTotal:        lineTotal,
		})
	}
	purchase.TotalAmount = total
	purchase.TaxAmountTotal = tax
	purchase.FinalAmount = total.Add(tax)

	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.DirectPurchases.Create(ctx, purchase); err != nil {
			return err
		}
		for _, item := range items {
			item.DirectPurchaseID = purchase.ID
			if err := r.DirectPurchases.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDirectPurchaseResponse(purchase, items), nil
}

// GetDirectPurchase devuelve la compra directa con sus líneas.
func (uc *UseCase) GetDirectPurchase(ctx context.Context, companyID, id int64) (*dto.DirectPurchaseResponse, error) {
	purchase, err := uc.repos.DirectPurchases.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.NotFound("compra directa %d", id)
	}
	items, err := uc.repos.DirectPurchases.ListItems(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toDirectPurchaseResponse(purchase, items), nil
}

// ReceiveDirectPurchase recibe (total o parcialmente) una compra directa reutilizando la
// recepción de mercadería: genera un GoodsReceipt enlazado, mueve inventario, suma lo
// recibido por línea y recalcula el estado (Pending, PartiallyReceived, Received).
func (uc *UseCase) ReceiveDirectPurchase(ctx context.Context, companyID int64, employeeID *int64, purchaseID int64, in dto.ReceiveDirectPurchaseRequest) (*dto.GoodsReceiptResponse, error) {
	purchase, err := uc.repos.DirectPurchases.GetByID(ctx, companyID, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.NotFound("compra directa %d", purchaseID)
	}
	warehouseID := in.WarehouseID
	if warehouseID == nil {
		warehouseID = purchase.WarehouseID
	}
	if warehouseID == nil {
		return nil, domain.Invalid("la compra no tiene bodega; indique WarehouseID")
	}
	if err := uc.checkWarehouse(ctx, companyID, *warehouseID); err != nil {
		return nil, err
	}
	for i, it := range in.Items {
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.Invalid("Items[%d]: la cantidad debe ser mayor que cero", i)
		}
	}

	now := uc.clock()
	purchaseRef := purchase.ID
	receipt := &entity.GoodsReceipt{
		CompanyID:        companyID,
		SupplierID:       purchase.SupplierID,
		WarehouseID:      *warehouseID,
		EmployeeID:       employeeID,
		ReceiptNumber:    in.ReceiptNumber,
		ReceiptDate:      now,
		DirectPurchaseID: &purchaseRef,
		Notes:            purchase.Notes,
		CreatedAt:        now,
	}

	var items []*entity.GoodsReceiptItem
	err = uc.tx.Run(ctx, func(r repository.Repos) error {
		locked, err := r.DirectPurchases.GetForUpdate(ctx, companyID, purchaseID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.NotFound("compra directa %d", purchaseID)
		}
		if locked.Status == entity.PurchaseStatusReceived {
			return domain.Invalid("la compra directa %d ya fue recibida", purchaseID)
		}
		dpItems, err := r.DirectPurchases.ListItems(ctx, companyID, purchaseID)
		if err != nil {
			return err
		}
		lines, err := pendingLines(dpItems, in.Items)
		if err != nil {
			return err
		}
		if receipt.ReceiptNumber == "" {
			receipt.ReceiptNumber, err = defaultReceiptNumber(ctx, r, companyID, locked)
			if err != nil {
				return err
			}
		}

		items, err = uc.receive(ctx, r, employeeID, receipt, lines)
		if err != nil {
			return err
		}

		dpItems, err = r.DirectPurchases.ListItems(ctx, companyID, purchaseID)
		if err != nil {
			return err
		}
		ordered, received := decimal.Zero, decimal.Zero
		for _, it := range dpItems {
			ordered = ordered.Add(it.Quantity)
			received = received.Add(it.ReceivedQuantity)
		}
		status := document.ReceiptStatus(ordered, received, entity.PurchaseStatusPending)
		return r.DirectPurchases.UpdateStatus(ctx, companyID, purchaseID, status)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int64("company_id", companyID).
		Int64("direct_purchase_id", purchaseID).
		Int64("goods_receipt_id", receipt.ID).
		Msg("compra directa recibida")
	return toGoodsReceiptResponse(receipt, items), nil
}

// pendingLines arma las líneas a recibir. Sin selección explícita se recibe todo lo pendiente.
func pendingLines(dpItems []*entity.DirectPurchaseItem, selected []dto.ReceiveDirectPurchaseItem) ([]receiptLine, error) {
	byID := make(map[int64]*entity.DirectPurchaseItem, len(dpItems))
	for _, it := range dpItems {
		byID[it.ID] = it
	}
	var lines []receiptLine
	if len(selected) == 0 {
		for _, it := range dpItems {
			pending := it.Quantity.Sub(it.ReceivedQuantity)
			if !pending.GreaterThan(decimal.Zero) {
				continue
			}
			id := it.ID
			lines = append(lines, receiptLine{ProductID: it.ProductID, Quantity: pending, UnitCost: it.UnitCost, DPItemID: &id})
		}
	} else {
		requested := map[int64]decimal.Decimal{}
		for i, sel := range selected {
			it, ok := byID[sel.DirectPurchaseItemID]
			if !ok {
				return nil, domain.Invalid("Items[%d]: la línea %d no pertenece a la compra", i, sel.DirectPurchaseItemID)
			}
			requested[it.ID] = requested[it.ID].Add(sel.Quantity)
			pending := it.Quantity.Sub(it.ReceivedQuantity)
			if requested[it.ID].GreaterThan(pending) {
				return nil, domain.Invalid("Items[%d]: se pide recibir más de lo pendiente (%s)", i, pending.String())
			}
			id := it.ID
			lines = append(lines, receiptLine{
				ProductID:      it.ProductID,
				Quantity:       sel.Quantity,
				UnitCost:       it.UnitCost,
				DPItemID:       &id,
				LotNumber:      sel.LotNumber,
				ExpirationDate: sel.ExpirationDate,
			})
		}
	}
	if len(lines) == 0 {
		return nil, domain.Invalid("no hay cantidades pendientes de recibir")
	}
	return lines, nil
}

func toDirectPurchaseResponse(p *entity.DirectPurchase, items []*entity.DirectPurchaseItem) *dto.DirectPurchaseResponse {
	out := &dto.DirectPurchaseResponse{
		Header: dto.DirectPurchaseHeader{
			ID:             p.ID,
			SupplierID:     p.SupplierID,
			WarehouseID:    p.WarehouseID,
			ReceiptNumber:  p.ReceiptNumber,
			PurchaseDate:   p.PurchaseDate,
			Status:         p.Status,
			TotalAmount:    p.TotalAmount,
			TaxAmountTotal: p.TaxAmountTotal,
			FinalAmount:    p.FinalAmount,
			Notes:          p.Notes,
		},
		Items: make([]dto.DirectPurchaseItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.DirectPurchaseItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			Quantity:         it.Quantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
			TaxPct:           it.TaxPct,
			TaxAmount:        it.TaxAmount,
			LineTotal:        it.LineTotal,
		})
	}
	return out
}

// maxReceiptSuffix acota la búsqueda de un sufijo libre.
const maxReceiptSuffix = 1000

// defaultReceiptNumber usa el número de la compra; las recepciones parciales siguientes
// llevan sufijo -2, -3... Si el candidato ya existe en la empresa (otro proveedor con la
// misma factura o una recepción manual) se avanza al siguiente sufijo libre.
func defaultReceiptNumber(ctx context.Context, r repository.Repos, companyID int64, purchase *entity.DirectPurchase) (string, error) {
	prior, err := r.GoodsReceipts.CountByDirectPurchase(ctx, companyID, purchase.ID)
	if err != nil {
		return "", err
	}
	for n := prior + 1; n <= prior+maxReceiptSuffix; n++ {
		candidate := purchase.ReceiptNumber
		if n > 1 {
			candidate = fmt.Sprintf("%s-%d", purchase.ReceiptNumber, n)
		}
		taken, err := r.GoodsReceipts.NumberExists(ctx, companyID, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", domain.Conflict("sin número de recepción libre para la compra %s", purchase.ReceiptNumber)
}
