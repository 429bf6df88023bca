// Package sales es el motor transaccional de documentos de venta: ventas, notas de
// crédito y débito, guías de despacho y aplicación de pagos. Cada operación corre en
// una única transacción que abarca cabecera, líneas, numeración e inventario.
package sales

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Engine motor de documentos de venta.
type Engine struct {
	tx       ports.TxRunner
	repos    repository.Repos
	ledger   *inventory.Ledger
	numberer *sequence.Numberer
	config   ports.ConfigProvider
	pdf      PDFGenerator
	log      *logger.Logger
	clock    func() time.Time
}

// NewEngine construye el motor inyectando sus colaboradores.
func NewEngine(
	tx ports.TxRunner,
	repos repository.Repos,
	ledger *inventory.Ledger,
	numberer *sequence.Numberer,
	config ports.ConfigProvider,
	pdf PDFGenerator,
	log *logger.Logger,
) *Engine {
	return &Engine{
		tx:       tx,
		repos:    repos,
		ledger:   ledger,
		numberer: numberer,
		config:   config,
		pdf:      pdf,
		log:      log,
		clock:    time.Now,
	}
}

// lineDefaults precio e IVA a usar cuando la línea no los trae.
type lineDefaults struct {
	UnitPrice decimal.Decimal
	TaxPct    decimal.Decimal
}

// pricedLine línea validada y valorizada, lista para persistir.
type pricedLine struct {
	req       dto.SaleItemRequest
	unitPrice decimal.Decimal
	taxPct    decimal.Decimal
	amounts   document.LineAmounts
}

// priceItems valida y valoriza las líneas. Todo lo que se valida aquí ocurre antes de
// abrir la transacción: un error no deja escrituras.
func (e *Engine) priceItems(ctx context.Context, companyID int64, items []dto.SaleItemRequest, headerExempt bool, defaults map[int64]lineDefaults) ([]pricedLine, document.Totals, error) {
	var totals document.Totals
	if len(items) == 0 {
		return nil, totals, domain.Invalid("el documento debe tener al menos una línea")
	}
	lines := make([]pricedLine, 0, len(items))
	for i, it := range items {
		if it.ProductID <= 0 {
			return nil, totals, domain.Invalid("Items[%d]: ProductID es obligatorio", i)
		}
		if !it.Quantity.GreaterThan(decimal.Zero) {
			return nil, totals, domain.Invalid("Items[%d]: Quantity debe ser mayor que cero", i)
		}
		if it.DiscountPct.IsNegative() || it.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
			return nil, totals, domain.Invalid("Items[%d]: DiscountPct debe estar entre 0 y 100", i)
		}
		if it.DiscountAmount != nil && it.DiscountAmount.IsNegative() {
			return nil, totals, domain.Invalid("Items[%d]: DiscountAmount no puede ser negativo", i)
		}
		if it.SerialNumber != "" && !it.Quantity.Equal(decimal.NewFromInt(1)) {
			return nil, totals, domain.Invalid("Items[%d]: una línea con número de serie debe tener Quantity 1", i)
		}

		product, err := e.repos.Products.GetByID(ctx, companyID, it.ProductID)
		if err != nil {
			return nil, totals, err
		}
		if product == nil {
			return nil, totals, domain.NotFound("producto %d", it.ProductID)
		}
		if it.LotID != nil {
			lot, err := e.repos.Lots.GetLot(ctx, companyID, *it.LotID)
			if err != nil {
				return nil, totals, err
			}
			if lot == nil || lot.ProductID != it.ProductID {
				return nil, totals, domain.Invalid("Items[%d]: el lote %d no corresponde al producto %d", i, *it.LotID, it.ProductID)
			}
		}

		unitPrice, taxPct := product.Price, product.TaxPct
		if d, ok := defaults[it.ProductID]; ok {
			unitPrice, taxPct = d.UnitPrice, d.TaxPct
		}
		if it.UnitPrice != nil {
			unitPrice = *it.UnitPrice
		}
		if it.TaxPct != nil {
			taxPct = *it.TaxPct
		}
		if unitPrice.IsNegative() {
			return nil, totals, domain.Invalid("Items[%d]: UnitPrice no puede ser negativo", i)
		}
		if taxPct.IsNegative() {
			return nil, totals, domain.Invalid("Items[%d]: TaxPct no puede ser negativo", i)
		}

		amounts := document.ComputeLine(document.LineInput{
			Quantity:       it.Quantity,
			UnitPrice:      unitPrice,
			DiscountPct:    it.DiscountPct,
			DiscountAmount: it.DiscountAmount,
			TaxPct:         taxPct,
			TaxExempt:      it.TaxExempt,
		}, headerExempt)
		if amounts.Discount.GreaterThan(amounts.Gross) {
			return nil, totals, domain.Invalid("Items[%d]: el descuento supera el bruto de la línea", i)
		}
		totals.Add(amounts)
		lines = append(lines, pricedLine{req: it, unitPrice: unitPrice, taxPct: taxPct, amounts: amounts})
	}
	return lines, totals, nil
}

// resolveWarehouse usa la bodega indicada o, si no viene, la bodega por defecto activa.
func (e *Engine) resolveWarehouse(ctx context.Context, companyID int64, warehouseID *int64) (*entity.Warehouse, error) {
	if warehouseID != nil {
		w, err := e.repos.Warehouses.GetByID(ctx, companyID, *warehouseID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, domain.NotFound("bodega %d", *warehouseID)
		}
		if !w.IsActive {
			return nil, domain.Invalid("la bodega %d está inactiva", *warehouseID)
		}
		return w, nil
	}
	w, err := e.repos.Warehouses.GetDefault(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.Invalid("no se indicó bodega y la empresa no tiene bodega por defecto activa")
	}
	return w, nil
}

// resolveCustomer valida el cliente (si viene) y devuelve si está exento de IVA.
func (e *Engine) resolveCustomer(ctx context.Context, companyID int64, customerID *int64) (bool, error) {
	if customerID == nil {
		return false, nil
	}
	c, err := e.repos.Customers.GetByID(ctx, companyID, *customerID)
	if err != nil {
		return false, err
	}
	if c == nil {
		return false, domain.NotFound("cliente %d", *customerID)
	}
	return c.IsTaxExempt, nil
}

// insertItems persiste las líneas del documento.
func insertItems(ctx context.Context, r repository.Repos, sale *entity.Sale, lines []pricedLine) error {
	for _, l := range lines {
		item := &entity.SaleItem{
			SaleID:         sale.ID,
			CompanyID:      sale.CompanyID,
			ProductID:      l.req.ProductID,
			LotID:          l.req.LotID,
			SerialNumber:   l.req.SerialNumber,
			Quantity:       l.req.Quantity,
			UnitPrice:      l.unitPrice,
			DiscountPct:    l.req.DiscountPct,
			DiscountAmount: l.amounts.Discount,
			TaxPct:         l.taxPct,
			TaxAmount:      l.amounts.Tax,
			LineSubtotal:   l.amounts.Subtotal,
			LineTotal:      l.amounts.Total,
		}
		if err := r.Sales.CreateItem(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

// movements arma un movimiento por línea; sign es -1 para salidas y +1 para entradas.
func movements(sale *entity.Sale, lines []pricedLine, sign int64, txType, batchID string, employeeID *int64) []inventory.Movement {
	factor := decimal.NewFromInt(sign)
	saleID := sale.ID
	out := make([]inventory.Movement, 0, len(lines))
	for _, l := range lines {
		out = append(out, inventory.Movement{
			CompanyID:       sale.CompanyID,
			ProductID:       l.req.ProductID,
			WarehouseID:     sale.WarehouseID,
			LotID:           l.req.LotID,
			SerialNumber:    l.req.SerialNumber,
			QuantityChange:  l.req.Quantity.Mul(factor),
			TransactionType: txType,
			ReferenceType:   entity.RefDocSale,
			ReferenceID:     &saleID,
			BatchID:         batchID,
			EmployeeID:      employeeID,
			Notes:           sale.DocumentType + " " + sale.DocumentNumber,
		})
	}
	return out
}

// markSerials cambia el estado de las series de las líneas. Al salir (Sold) la serie
// debe estar en stock; al volver (InStock) debe estar vendida.
func markSerials(ctx context.Context, r repository.Repos, sale *entity.Sale, lines []pricedLine, status string) error {
	for _, l := range lines {
		if l.req.SerialNumber == "" {
			continue
		}
		s, err := r.Lots.GetSerialForUpdate(ctx, sale.CompanyID, l.req.ProductID, l.req.SerialNumber)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.Invalid("la serie %q no está registrada para el producto %d", l.req.SerialNumber, l.req.ProductID)
		}
		wid := sale.WarehouseID
		switch status {
		case entity.SerialStatusSold:
			if s.Status == entity.SerialStatusSold {
				return domain.Invalid("la serie %q ya fue vendida", s.SerialNumber)
			}
			saleID := sale.ID
			s.SaleID = &saleID
		case entity.SerialStatusInStock:
			if s.Status != entity.SerialStatusSold {
				return domain.Invalid("la serie %q no figura como vendida", s.SerialNumber)
			}
			s.SaleID = nil
		}
		s.Status = status
		s.WarehouseID = &wid
		s.UpdatedAt = sale.UpdatedAt
		if err := r.Lots.UpdateSerial(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

// electronicFlag usa el valor pedido o el de la configuración de la empresa.
// numberTaken consulta los números ya emitidos del tipo dentro de la transacción.
func numberTaken(r repository.Repos, companyID int64, docType string) sequence.NumberTaken {
	return func(ctx context.Context, number string) (bool, error) {
		return r.Sales.NumberExists(ctx, companyID, docType, number)
	}
}

func electronicFlag(requested *bool, cfg ports.CompanyConfig) bool {
	if requested != nil {
		return *requested
	}
	return cfg.ElectronicByDefault
}

func toTotals(s *entity.Sale) dto.SaleTotals {
	return dto.SaleTotals{
		TotalAmount:         s.TotalAmount,
		DiscountAmountTotal: s.DiscountAmountTotal,
		TaxAmountTotal:      s.TaxAmountTotal,
		FinalAmount:         s.FinalAmount,
		AmountPaid:          s.AmountPaid,
	}
}
