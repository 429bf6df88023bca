package sales

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// GetSale devuelve el documento con sus líneas y pagos.
func (e *Engine) GetSale(ctx context.Context, companyID, saleID int64) (*dto.SaleDetailResponse, error) {
	sale, err := e.repos.Sales.GetByID(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("venta %d", saleID)
	}
	items, err := e.repos.Sales.ListItems(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}
	payments, err := e.repos.Sales.ListPayments(ctx, companyID, saleID)
	if err != nil {
		return nil, err
	}

	out := &dto.SaleDetailResponse{
		ID:             sale.ID,
		DocumentType:   sale.DocumentType,
		DocumentNumber: sale.DocumentNumber,
		IsElectronic:   sale.IsElectronic,
		IsTaxExempt:    sale.IsTaxExempt,
		CustomerID:     sale.CustomerID,
		WarehouseID:    sale.WarehouseID,
		EmployeeID:     sale.EmployeeID,
		OriginalSaleID: sale.OriginalSaleID,
		CurrencyID:     sale.CurrencyID,
		SaleDate:       sale.SaleDate,
		PaymentStatus:  sale.PaymentStatus,
		Notes:          sale.Notes,
		Totals:         toTotals(sale),
		Items:          make([]dto.SaleItemResponse, 0, len(items)),
		Payments:       make([]dto.PaymentResponse, 0, len(payments)),
	}
	if sale.CustomerID != nil {
		c, err := e.repos.Customers.GetByID(ctx, companyID, *sale.CustomerID)
		if err != nil {
			return nil, err
		}
		if c != nil {
			out.CustomerName, out.CustomerTaxID = c.Name, c.TaxID
		}
	}
	names := map[int64]string{}
	for _, it := range items {
		name, ok := names[it.ProductID]
		if !ok {
			p, err := e.repos.Products.GetByID(ctx, companyID, it.ProductID)
			if err != nil {
				return nil, err
			}
			if p != nil {
				name = p.Name
			}
			names[it.ProductID] = name
		}
		out.Items = append(out.Items, dto.SaleItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    name,
			LotID:          it.LotID,
			SerialNumber:   it.SerialNumber,
			Quantity:       it.Quantity,
			UnitPrice:      it.UnitPrice,
			DiscountPct:    it.DiscountPct,
			DiscountAmount: it.DiscountAmount,
			TaxPct:         it.TaxPct,
			TaxAmount:      it.TaxAmount,
			LineSubtotal:   it.LineSubtotal,
			LineTotal:      it.LineTotal,
		})
	}
	for _, p := range payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:            p.ID,
			PaymentMethod: p.PaymentMethod,
			Amount:        p.Amount,
			Reference:     p.Reference,
			PaidAt:        p.PaidAt,
		})
	}
	return out, nil
}

// ListSales lista documentos de venta con filtros opcionales de tipo, cliente y fechas.
func (e *Engine) ListSales(ctx context.Context, companyID int64, q dto.SaleListRequest) (*dto.SaleListResponse, error) {
	q.DefaultPage()
	docType := ""
	if q.DocumentType != "" {
		docType = document.Normalize(q.DocumentType)
	}
	list, err := e.repos.Sales.List(ctx, repository.SaleFilter{
		CompanyID:    companyID,
		DocumentType: docType,
		CustomerID:   q.CustomerID,
		From:         q.From,
		To:           q.To,
		Limit:        q.Limit,
		Offset:       q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleSummary, 0, len(list)),
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}
	for _, s := range list {
		out.Items = append(out.Items, dto.SaleSummary{
			ID:             s.ID,
			DocumentType:   s.DocumentType,
			DocumentNumber: s.DocumentNumber,
			CustomerID:     s.CustomerID,
			WarehouseID:    s.WarehouseID,
			OriginalSaleID: s.OriginalSaleID,
			SaleDate:       s.SaleDate,
			FinalAmount:    s.FinalAmount,
			PaymentStatus:  s.PaymentStatus,
		})
	}
	return out, nil
}

// SalePDF genera el PDF del documento y el nombre de archivo sugerido.
func (e *Engine) SalePDF(ctx context.Context, companyID, saleID int64) ([]byte, string, error) {
	detail, err := e.GetSale(ctx, companyID, saleID)
	if err != nil {
		return nil, "", err
	}
	data, err := e.pdf.GenerateSalePDF(ctx, detail)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.pdf", strings.ToLower(detail.DocumentType), detail.DocumentNumber)
	return data, filename, nil
}
