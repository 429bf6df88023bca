package sales

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// CreateSale registra una venta (FACTURA, BOLETA o COTIZACION) de forma atómica:
// numeración, cabecera, líneas, salida de inventario (tipo Sale) y pagos.
// Si el tipo no tiene correlativo configurado se usa un número sintético.
func (e *Engine) CreateSale(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateSaleRequest) (*dto.CreateSaleResponse, error) {
	cfg, err := e.config.GetConfig(ctx, companyID, employeeID)
	if err != nil {
		return nil, err
	}
	warehouse, err := e.resolveWarehouse(ctx, companyID, in.WarehouseID)
	if err != nil {
		return nil, err
	}
	docType, err := document.ResolveSaleType(in.DocumentType, cfg.DefaultDocumentType)
	if err != nil {
		return nil, err
	}
	customerExempt, err := e.resolveCustomer(ctx, companyID, in.CustomerID)
	if err != nil {
		return nil, err
	}
	headerExempt := in.IsTaxExempt || customerExempt
	lines, totals, err := e.priceItems(ctx, companyID, in.Items, headerExempt, nil)
	if err != nil {
		return nil, err
	}
	paid, err := sumPayments(in.Payments)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	saleDate := now
	if in.SaleDate != nil {
		saleDate = *in.SaleDate
	}
	sale := &entity.Sale{
		CompanyID:           companyID,
		EmployeeID:          employeeID,
		CustomerID:          in.CustomerID,
		WarehouseID:         warehouse.ID,
		DocumentType:        docType,
		IsElectronic:        electronicFlag(in.IsElectronic, cfg),
		IsTaxExempt:         headerExempt,
		CurrencyID:          in.CurrencyID,
		SaleDate:            saleDate,
		TotalAmount:         totals.Gross,
		DiscountAmountTotal: totals.Discount,
		TaxAmountTotal:      totals.Tax,
		FinalAmount:         totals.Final,
		AmountPaid:          paid,
		PaymentStatus:       document.PaymentStatus(paid, totals.Final),
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = e.tx.Run(ctx, func(r repository.Repos) error {
		number, err := e.numberer.Next(ctx, r.Sequences, companyID, docType, sale.IsElectronic, numberTaken(r, companyID, docType))
		if err != nil {
			return err
		}
		sale.DocumentNumber = number
		if err := r.Sales.Create(ctx, sale); err != nil {
			return err
		}
		if err := insertItems(ctx, r, sale, lines); err != nil {
			return err
		}
		moves := movements(sale, lines, -1, entity.TxTypeSale, uuid.NewString(), employeeID)
		if err := e.ledger.ApplyAll(ctx, r.Inventory, moves); err != nil {
			return err
		}
		if err := markSerials(ctx, r, sale, lines, entity.SerialStatusSold); err != nil {
			return err
		}
		return insertPayments(ctx, r, sale, employeeID, in.Payments, now)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int64("company_id", companyID).
		Int64("sale_id", sale.ID).
		Str("document_type", sale.DocumentType).
		Str("document_number", sale.DocumentNumber).
		Str("final_amount", sale.FinalAmount.String()).
		Msg("venta registrada")

	return &dto.CreateSaleResponse{
		SaleID:         sale.ID,
		DocumentType:   sale.DocumentType,
		DocumentNumber: sale.DocumentNumber,
		PaymentStatus:  sale.PaymentStatus,
		Totals:         toTotals(sale),
	}, nil
}

// sumPayments valida los pagos (monto positivo) y devuelve su suma.
func sumPayments(payments []dto.PaymentRequest) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, p := range payments {
		if p.PaymentMethod == "" {
			return decimal.Zero, domain.Invalid("Payments[%d]: PaymentMethod es obligatorio", i)
		}
		if !p.Amount.GreaterThan(decimal.Zero) {
			return decimal.Zero, domain.Invalid("Payments[%d]: Amount debe ser mayor que cero", i)
		}
		total = total.Add(p.Amount)
	}
	return total, nil
}
