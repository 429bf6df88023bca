package purchasing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CreatePurchaseOrder registra una orden de compra en estado Submitted con sus líneas
// (recibido en cero). El número sale del correlativo ORDEN_COMPRA o es sintético.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, companyID int64, employeeID *int64, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if err := uc.checkSupplier(ctx, companyID, in.SupplierID); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, domain.Invalid("la orden debe tener al menos una línea")
	}
	total := decimal.Zero
	for i, it := range in.Items {
		if err := checkQtyCost(i, it.Quantity, it.UnitCost); err != nil {
			return nil, err
		}
		if _, err := uc.getProduct(ctx, companyID, it.ProductID); err != nil {
			return nil, err
		}
		total = total.Add(it.Quantity.Mul(it.UnitCost).Round(2))
	}

	now := uc.clock()
	orderDate := now
	if in.OrderDate != nil {
		orderDate = *in.OrderDate
	}
	order := &entity.PurchaseOrder{
		CompanyID:   companyID,
		SupplierID:  in.SupplierID,
		EmployeeID:  employeeID,
		OrderDate:   orderDate,
		Status:      entity.PurchaseStatusSubmitted,
		TotalAmount: total,
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	items := make([]*entity.PurchaseOrderItem, 0, len(in.Items))
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		number, err := uc.numberer.Next(ctx, r.Sequences, companyID, document.TypeOrdenCompra, false,
			func(ctx context.Context, number string) (bool, error) {
				return r.PurchaseOrders.NumberExists(ctx, companyID, number)
			})
		if err != nil {
			return err
		}
		order.OrderNumber = number
		if err := r.PurchaseOrders.Create(ctx, order); err != nil {
			return err
		}
		for _, it := range in.Items {
			item := &entity.PurchaseOrderItem{
				PurchaseOrderID:  order.ID,
				CompanyID:        companyID,
				ProductID:        it.ProductID,
				OrderedQuantity:  it.Quantity,
				ReceivedQuantity: decimal.Zero,
				UnitCost:         it.UnitCost,
				LineTotal:        it.Quantity.Mul(it.UnitCost).Round(2),
			}
			if err := r.PurchaseOrders.CreateItem(ctx, item); err != nil {
				return err
			}
			items = append(items, item)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}

// GetPurchaseOrder devuelve la orden con sus líneas y lo recibido por línea.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, companyID, id int64) (*dto.PurchaseOrderResponse, error) {
	order, err := uc.repos.PurchaseOrders.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFound("orden de compra %d", id)
	}
	items, err := uc.repos.PurchaseOrders.ListItems(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseOrderResponse(order, items), nil
}

// recomputeOrderStatus compara lo pedido y lo recibido en todas las líneas de la orden.
func recomputeOrderStatus(ctx context.Context, r repository.Repos, companyID, orderID int64) (string, error) {
	items, err := r.PurchaseOrders.ListItems(ctx, companyID, orderID)
	if err != nil {
		return "", err
	}
	ordered, received := decimal.Zero, decimal.Zero
	for _, it := range items {
		ordered = ordered.Add(it.OrderedQuantity)
		received = received.Add(it.ReceivedQuantity)
	}
	status := document.ReceiptStatus(ordered, received, entity.PurchaseStatusSubmitted)
	if err := r.PurchaseOrders.UpdateStatus(ctx, companyID, orderID, status); err != nil {
		return "", err
	}
	return status, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, items []*entity.PurchaseOrderItem) *dto.PurchaseOrderResponse {
	out := &dto.PurchaseOrderResponse{
		Header: dto.PurchaseOrderHeader{
			ID:          o.ID,
			SupplierID:  o.SupplierID,
			OrderNumber: o.OrderNumber,
			OrderDate:   o.OrderDate,
			Status:      o.Status,
			TotalAmount: o.TotalAmount,
			Notes:       o.Notes,
		},
		Items: make([]dto.PurchaseOrderItemResponse, 0, len(items)),
	}
	for _, it := range items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductID:        it.ProductID,
			OrderedQuantity:  it.OrderedQuantity,
			ReceivedQuantity: it.ReceivedQuantity,
			UnitCost:         it.UnitCost,
			LineTotal:        it.LineTotal,
		})
	}
	return out
}
