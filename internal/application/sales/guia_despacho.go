package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CreateGuiaDespacho emite una guía de despacho: se valoriza igual que una venta, no
// lleva pagos y siempre saca mercadería (tipo SaleShipment). Siempre consume correlativo;
// sin correlativo activo retorna domain.ErrSequenceNotConfigured.
func (e *Engine) CreateGuiaDespacho(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateGuiaDespachoRequest) (*dto.GuiaDespachoResponse, error) {
	cfg, err := e.config.GetConfig(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	warehouse, err := e.resolveWarehouse(ctx, companyID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	customerExempt, err := e.resolveCustomer(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	lines, totals, err := e.priceItems(ctx, companyID, in.Items, customerExempt, nil)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	guia := &entity.Sale{
		CompanyID:           companyID,
		EmployeeID:          employeeID,
		CustomerID:          in.CustomerID,
		WarehouseID:         warehouse.ID,
		DocumentType:        document.TypeGuiaDespacho,
		IsElectronic:        electronicFlag(in.IsElectronic, cfg),
		IsTaxExempt:         customerExempt,
		CurrencyID:          in.CurrencyID,
		SaleDate:            now,
		TotalAmount:         totals.Gross,
		DiscountAmountTotal: totals.Discount,
		TaxAmountTotal:      totals.Tax,
		FinalAmount:         totals.Final,
		AmountPaid:          decimal.Zero,
		PaymentStatus:       entity.PaymentStatusUnpaid,
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = e.tx.Run(ctx, func(r repository.Repos) error {
		number, err := e.numberer.Next(ctx, r.Sequences, companyID, guia.DocumentType, guia.IsElectronic, numberTaken(r, companyID, guia.DocumentType))
		if err != nil {
			return err
		}
		guia.DocumentNumber = number
		if err := r.Sales.Create(ctx, guia); err != nil {
			return err
		}
		if err := insertItems(ctx, r, guia, lines); err != nil {
			return err
		}
		moves := movements(guia, lines, -1, entity.TxTypeSaleShipment, uuid.NewString(), employeeID)
		if err := e.ledger.ApplyAll(ctx, r.Inventory, moves); err != nil {
			return err
		}
		return markSerials(ctx, r, guia, lines, entity.SerialStatusSold)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int64("company_id", companyID).
		Int64("sale_id", guia.ID).
		Str("document_number", guia.DocumentNumber).
		Msg("guía de despacho registrada")

	return &dto.GuiaDespachoResponse{
		SaleID:         guia.ID,
		DocumentNumber: guia.DocumentNumber,
		Totals:         toTotals(guia),
	}, nil
}
