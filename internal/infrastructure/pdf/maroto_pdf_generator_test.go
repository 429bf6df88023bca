package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-$1.500", money(decimal.NewFromInt(-1500)))
	assert.Equal(t, "$200", money(decimal.NewFromInt(200)))
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "BOLETA ELECTRÓNICA", documentTitle(&dto.SaleDetailResponse{DocumentType: "BOLETA", IsElectronic: true}))
	assert.Equal(t, "COTIZACIÓN", documentTitle(&dto.SaleDetailResponse{DocumentType: "COTIZACION", IsElectronic: true}))
	assert.Equal(t, "NOTA DE CRÉDITO", documentTitle(&dto.SaleDetailResponse{DocumentType: "NOTA_CREDITO"}))
}

func TestGenerateSalePDF(t *testing.T) {
	g := NewMarotoPDFGenerator("Comercial Prueba SpA")
	sale := &dto.SaleDetailResponse{
		ID:             1,
		DocumentType:   "FACTURA",
		DocumentNumber: "F-1001",
		IsElectronic:   true,
		CustomerName:   "Cliente Uno",
		CustomerTaxID:  "76.123.456-7",
		SaleDate:       time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		PaymentStatus:  "Paid",
		Totals: dto.SaleTotals{
			TotalAmount:         decimal.NewFromInt(200),
			DiscountAmountTotal: decimal.Zero,
			TaxAmountTotal:      decimal.NewFromInt(38),
			FinalAmount:         decimal.NewFromInt(238),
			AmountPaid:          decimal.NewFromInt(238),
		},
		Items: []dto.SaleItemResponse{{
			ProductID:   7,
			ProductName: "Tornillo",
			Quantity:    decimal.NewFromInt(2),
			UnitPrice:   decimal.NewFromInt(100),
			TaxPct:      decimal.NewFromInt(19),
			LineTotal:   decimal.NewFromInt(238),
		}},
	}
	out, err := g.GenerateSalePDF(context.Background(), sale)
	require.NoError(t, err)
	require.True(t, len(out) > 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}
