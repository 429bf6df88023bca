package document

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// LineInput datos de una línea necesarios para valorizarla.
// DiscountAmount, si viene, reemplaza al descuento porcentual.
type LineInput struct {
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountPct    decimal.Decimal
	DiscountAmount *decimal.Decimal
	TaxPct         decimal.Decimal
	TaxExempt      bool
}

// LineAmounts resultado de valorizar una línea.
type LineAmounts struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
}

// ComputeLine aplica, con montos redondeados a 2 decimales como se almacenan:
// bruto = cant * precio; descuento = override o bruto * pct / 100;
// subtotal = bruto - descuento; impuesto = subtotal * iva / 100 (0 si la línea o la
// cabecera están exentas); total = subtotal + impuesto.
func ComputeLine(in LineInput, headerExempt bool) LineAmounts {
	gross := in.Quantity.Mul(in.UnitPrice).Round(2)
	discount := gross.Mul(in.DiscountPct).Div(hundred)
	if in.DiscountAmount != nil {
		discount = *in.DiscountAmount
	}
	discount = discount.Round(2)
	subtotal := gross.Sub(discount).Round(2)
	tax := decimal.Zero
	if !in.TaxExempt && !headerExempt {
		tax = subtotal.Mul(in.TaxPct).Div(hundred).Round(2)
	}
	return LineAmounts{
		Gross:    gross,
		Discount: discount,
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}

// Totals acumulado de cabecera.
type Totals struct {
	Gross    decimal.Decimal
	Discount decimal.Decimal
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Final    decimal.Decimal
}

// Add suma una línea al acumulado.
func (t *Totals) Add(l LineAmounts) {
	t.Gross = t.Gross.Add(l.Gross)
	t.Discount = t.Discount.Add(l.Discount)
	t.Subtotal = t.Subtotal.Add(l.Subtotal)
	t.Tax = t.Tax.Add(l.Tax)
	t.Final = t.Final.Add(l.Total)
}

// PaymentStatus Unpaid si no hay pagos, Paid si lo pagado cubre el total, si no PartiallyPaid.
func PaymentStatus(paid, final decimal.Decimal) string {
	switch {
	case !paid.GreaterThan(decimal.Zero):
		return entity.PaymentStatusUnpaid
	case paid.GreaterThanOrEqual(final):
		return entity.PaymentStatusPaid
	default:
		return entity.PaymentStatusPartiallyPaid
	}
}

// ReceiptStatus estado de una orden de compra o compra directa a partir de lo pedido y lo recibido.
// emptyStatus es el estado cuando aún no se recibe nada (Submitted para OC, Pending para compra directa).
func ReceiptStatus(ordered, received decimal.Decimal, emptyStatus string) string {
	switch {
	case !received.GreaterThan(decimal.Zero):
		return emptyStatus
	case received.GreaterThanOrEqual(ordered):
		return entity.PurchaseStatusReceived
	default:
		return entity.PurchaseStatusPartiallyReceived
	}
}
