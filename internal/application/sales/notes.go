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

// noteKind diferencia nota de crédito (devolución) y nota de débito (cargo adicional).
type noteKind struct {
	docType string
	txType  string
	sign    int64
	serial  string // estado al que pasan las series de las líneas
}

var (
	creditNote = noteKind{docType: document.TypeNotaCredito, txType: entity.TxTypeCreditNote, sign: 1, serial: entity.SerialStatusInStock}
	debitNote  = noteKind{docType: document.TypeNotaDebito, txType: entity.TxTypeDebitNote, sign: -1, serial: entity.SerialStatusSold}
)

// CreateCreditNote emite una nota de crédito contra una FACTURA o BOLETA de la empresa.
// Por producto, lo devuelto no puede superar lo vendido menos lo ya acreditado.
// La mercadería vuelve a stock (movimiento positivo, tipo CreditNote).
func (e *Engine) CreateCreditNote(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateNoteRequest) (*dto.CreditNoteResponse, error) {
	note, err := e.createNote(ctx, companyID, employeeID, in, creditNote)
	if err != nil {
		return nil, err
	}
	return &dto.CreditNoteResponse{
		CreditNoteID:   note.ID,
		DocumentNumber: note.DocumentNumber,
		FinalAmount:    note.FinalAmount,
	}, nil
}

// CreateDebitNote emite una nota de débito contra una FACTURA o BOLETA de la empresa.
// No tiene tope de cantidad; la mercadería adicional sale de stock (tipo DebitNote).
func (e *Engine) CreateDebitNote(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateNoteRequest) (*dto.DebitNoteResponse, error) {
	note, err := e.createNote(ctx, companyID, employeeID, in, debitNote)
	if err != nil {
		return nil, err
	}
	return &dto.DebitNoteResponse{
		DebitNoteID:    note.ID,
		DocumentNumber: note.DocumentNumber,
		FinalAmount:    note.FinalAmount,
	}, nil
}

func (e *Engine) createNote(ctx context.Context, companyID int64, employeeID *int64, in dto.CreateNoteRequest, kind noteKind) (*entity.Sale, error) {
	if in.OriginalSaleID <= 0 {
		return nil, domain.Invalid("OriginalSaleID es obligatorio")
	}
	original, err := e.repos.Sales.GetByID(ctx, companyID, in.OriginalSaleID)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, domain.Invalid("la venta original %d no existe", in.OriginalSaleID)
	}
	if !document.IsCreditable(original.DocumentType) {
		return nil, domain.Invalid("solo se emiten notas sobre FACTURA o BOLETA; la venta %d es %s", original.ID, original.DocumentType)
	}
	originalItems, err := e.repos.Sales.ListItems(ctx, companyID, original.ID)
	if err != nil {
		return nil, err
	}

	warehouseID := in.WarehouseID
	if warehouseID == nil {
		warehouseID = &original.WarehouseID
	}
	warehouse, err := e.resolveWarehouse(ctx, companyID, warehouseID)
	if err != nil {
		return nil, err
	}

	// Por defecto la nota usa el precio e IVA con que se vendió cada producto.
	defaults := map[int64]lineDefaults{}
	sold := map[int64]decimal.Decimal{}
	for _, it := range originalItems {
		if _, ok := defaults[it.ProductID]; !ok {
			defaults[it.ProductID] = lineDefaults{UnitPrice: it.UnitPrice, TaxPct: it.TaxPct}
		}
		sold[it.ProductID] = sold[it.ProductID].Add(it.Quantity)
	}
	lines, totals, err := e.priceItems(ctx, companyID, in.Items, original.IsTaxExempt, defaults)
	if err != nil {
		return nil, err
	}
	electronic := original.IsElectronic
	if in.IsElectronic != nil {
		electronic = *in.IsElectronic
	}

	now := e.clock()
	originalID := original.ID
	note := &entity.Sale{
		CompanyID:           companyID,
		EmployeeID:          employeeID,
		CustomerID:          original.CustomerID,
		WarehouseID:         warehouse.ID,
		DocumentType:        kind.docType,
		IsElectronic:        electronic,
		IsTaxExempt:         original.IsTaxExempt,
		OriginalSaleID:      &originalID,
		CurrencyID:          original.CurrencyID,
		SaleDate:            now,
		TotalAmount:         totals.Gross,
		DiscountAmountTotal: totals.Discount,
		TaxAmountTotal:      totals.Tax,
		FinalAmount:         totals.Final,
		AmountPaid:          decimal.Zero,
		PaymentStatus:       document.PaymentStatus(decimal.Zero, totals.Final),
		Notes:               in.Notes,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	err = e.tx.Run(ctx, func(r repository.Repos) error {
		// El bloqueo de la venta original serializa las notas concurrentes sobre ella,
		// así el tope de devolución se evalúa sobre datos confirmados.
		locked, err := r.Sales.GetForUpdate(ctx, companyID, originalID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.Invalid("la venta original %d no existe", originalID)
		}
		if kind.docType == document.TypeNotaCredito {
			if err := checkReturnCap(ctx, r, companyID, originalID, sold, lines); err != nil {
				return err
			}
		}

		number, err := e.numberer.Next(ctx, r.Sequences, companyID, kind.docType, note.IsElectronic, numberTaken(r, companyID, kind.docType))
		if err != nil {
			return err
		}
		note.DocumentNumber = number
		if err := r.Sales.Create(ctx, note); err != nil {
			return err
		}
		if err := insertItems(ctx, r, note, lines); err != nil {
			return err
		}
		moves := movements(note, lines, kind.sign, kind.txType, uuid.NewString(), employeeID)
		if err := e.ledger.ApplyAll(ctx, r.Inventory, moves); err != nil {
			return err
		}
		return markSerials(ctx, r, note, lines, kind.serial)
	})
	if err != nil {
		return nil, err
	}

	e.log.Info().
		Int64("company_id", companyID).
		Int64("note_id", note.ID).
		Int64("original_sale_id", originalID).
		Str("document_type", note.DocumentType).
		Str("document_number", note.DocumentNumber).
		Msg("nota registrada")
	return note, nil
}

// checkReturnCap valida por producto: pedido <= vendido - acreditado previamente.
func checkReturnCap(ctx context.Context, r repository.Repos, companyID, originalID int64, sold map[int64]decimal.Decimal, lines []pricedLine) error {
	credited, err := r.Sales.CreditedQuantities(ctx, companyID, originalID)
	if err != nil {
		return err
	}
	requested := map[int64]decimal.Decimal{}
	order := make([]int64, 0, len(lines))
	for _, l := range lines {
		if _, ok := requested[l.req.ProductID]; !ok {
			order = append(order, l.req.ProductID)
		}
		requested[l.req.ProductID] = requested[l.req.ProductID].Add(l.req.Quantity)
	}
	for _, productID := range order {
		remaining := sold[productID].Sub(credited[productID])
		if requested[productID].GreaterThan(remaining) {
			return domain.Invalid("producto %d: se pide devolver %s y quedan %s devolvibles",
				productID, requested[productID].String(), remaining.String())
		}
	}
	return nil
}
