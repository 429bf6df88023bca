package sales

import (
	"context"
	"time"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ApplyPayments registra pagos sobre una venta existente y recalcula su estado de pago.
// La cabecera se bloquea para que pagos concurrentes no pisen AmountPaid.
func (e *Engine) ApplyPayments(ctx context.Context, companyID int64, employeeID *int64, saleID int64, in dto.ApplyPaymentsRequest) (*dto.PaymentStatusResponse, error) {
	if len(in.Payments) == 0 {
		return nil, domain.Invalid("debe indicar al menos un pago")
	}
	paid, err := sumPayments(in.Payments)
	if err != nil {
		return nil, err
	}

	var out dto.PaymentStatusResponse
	err = e.tx.Run(ctx, func(r repository.Repos) error {
		sale, err := r.Sales.GetForUpdate(ctx, companyID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.NotFound("venta %d", saleID)
		}
		if !acceptsPayments(sale.DocumentType) {
			return domain.Invalid("el documento %s no admite pagos", sale.DocumentType)
		}
		now := e.clock()
		if err := insertPayments(ctx, r, sale, employeeID, in.Payments, now); err != nil {
			return err
		}
		sale.AmountPaid = sale.AmountPaid.Add(paid)
		sale.PaymentStatus = document.PaymentStatus(sale.AmountPaid, sale.FinalAmount)
		sale.UpdatedAt = now
		if err := r.Sales.UpdatePaymentStatus(ctx, sale); err != nil {
			return err
		}
		out = dto.PaymentStatusResponse{
			SaleID:        sale.ID,
			FinalAmount:   sale.FinalAmount,
			AmountPaid:    sale.AmountPaid,
			PaymentStatus: sale.PaymentStatus,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func insertPayments(ctx context.Context, r repository.Repos, sale *entity.Sale, employeeID *int64, payments []dto.PaymentRequest, now time.Time) error {
	for _, p := range payments {
		payment := &entity.Payment{
			SaleID:        sale.ID,
			CompanyID:     sale.CompanyID,
			EmployeeID:    employeeID,
			PaymentMethod: p.PaymentMethod,
			Amount:        p.Amount,
			Reference:     p.Reference,
			PaidAt:        now,
		}
		if err := r.Sales.CreatePayment(ctx, payment); err != nil {
			return err
		}
	}
	return nil
}

func acceptsPayments(docType string) bool {
	switch docType {
	case document.TypeFactura, document.TypeBoleta, document.TypeCotizacion, document.TypeNotaDebito:
		return true
	}
	return false
}
