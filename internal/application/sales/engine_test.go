package sales_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/sales"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/erp-api/internal/infrastructure/settings"
	"github.com/jhoicas/erp-api/pkg/config"
	"github.com/jhoicas/erp-api/pkg/logger"
)

const companyID = int64(1)

type fakePDF struct{}

func (fakePDF) GenerateSalePDF(_ context.Context, sale *dto.SaleDetailResponse) ([]byte, error) {
	return []byte("%PDF-" + sale.DocumentNumber), nil
}

type fixture struct {
	store     *memory.Store
	repos     repository.Repos
	engine    *sales.Engine
	warehouse *entity.Warehouse
	product   *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	f := &fixture{store: store, repos: repos}
	f.engine = f.newEngine(sequence.NewNumberer(logger.Nop()))
	f.warehouse = f.addWarehouse(t, companyID, "Central", true)
	f.product = f.addProduct(t, companyID, "SKU-7", decimal.NewFromInt(100), decimal.Zero)
	return f
}

func (f *fixture) newEngine(numberer *sequence.Numberer) *sales.Engine {
	return sales.NewEngine(
		f.store, f.repos, inventory.NewLedger(), numberer,
		settings.NewStaticConfigProvider(config.ERPConfig{DefaultDocumentType: "BOLETA", DefaultTaxPct: 19, ElectronicByDefault: true}),
		fakePDF{}, logger.Nop(),
	)
}

func (f *fixture) addWarehouse(t *testing.T, company int64, name string, isDefault bool) *entity.Warehouse {
	t.Helper()
	w := &entity.Warehouse{CompanyID: company, Name: name, IsDefault: isDefault, IsActive: true}
	require.NoError(t, f.repos.Warehouses.Create(context.Background(), w))
	return w
}

func (f *fixture) addProduct(t *testing.T, company int64, sku string, price, tax decimal.Decimal) *entity.Product {
	t.Helper()
	p := &entity.Product{CompanyID: company, SKU: sku, Name: sku, Price: price, TaxPct: tax, IsActive: true}
	require.NoError(t, f.repos.Products.Create(context.Background(), p))
	return p
}

func (f *fixture) addSequence(t *testing.T, docType, prefix string, next int64) *entity.DocumentSequence {
	t.Helper()
	s := &entity.DocumentSequence{CompanyID: companyID, DocumentType: docType, IsElectronic: true, Prefix: prefix, NextNumber: next, IsActive: true}
	require.NoError(t, f.repos.Sequences.Create(context.Background(), s))
	return s
}

func (f *fixture) stock(t *testing.T, productID, warehouseID int64) decimal.Decimal {
	t.Helper()
	levels, err := f.repos.Inventory.ListLevels(context.Background(), repository.LevelFilter{
		CompanyID: companyID, ProductID: &productID, WarehouseID: &warehouseID, IncludeZero: true,
	})
	require.NoError(t, err)
	total := decimal.Zero
	for _, l := range levels {
		total = total.Add(l.StockQuantity)
	}
	return total
}

func (f *fixture) salesCount(t *testing.T, company int64) int {
	t.Helper()
	list, err := f.repos.Sales.List(context.Background(), repository.SaleFilter{CompanyID: company})
	require.NoError(t, err)
	return len(list)
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func decPtr(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func line(productID, qty int64) dto.SaleItemRequest {
	return dto.SaleItemRequest{ProductID: productID, Quantity: dec(qty)}
}

func TestCreateSale_SimpleSale(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	out, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: f.product.ID, Quantity: dec(2), UnitPrice: decPtr(100), TaxPct: decPtr(0)}},
	})
	require.NoError(t, err)

	assert.True(t, out.Totals.TotalAmount.Equal(dec(200)), "TotalAmount = %s", out.Totals.TotalAmount)
	assert.True(t, out.Totals.TaxAmountTotal.IsZero())
	assert.True(t, out.Totals.FinalAmount.Equal(dec(200)))
	assert.Equal(t, "BOLETA", out.DocumentType)
	assert.True(t, strings.HasPrefix(out.DocumentNumber, "BOLETA-"), "número sintético: %s", out.DocumentNumber)
	assert.Equal(t, entity.PaymentStatusUnpaid, out.PaymentStatus)
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).Equal(dec(-2)), "stock negativo permitido")

	txs, err := f.repos.Inventory.ListTransactions(ctx, repository.TransactionFilter{CompanyID: companyID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TxTypeSale, txs[0].TransactionType)
	assert.True(t, txs[0].QuantityChange.Equal(dec(-2)))
	require.NotNil(t, txs[0].ReferenceID)
	assert.Equal(t, out.SaleID, *txs[0].ReferenceID)
}

func TestCreateSale_PricingAndPayments(t *testing.T) {
	f := newFixture(t)
	taxed := f.addProduct(t, companyID, "SKU-IVA", dec(1000), dec(19))

	out, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{
		DocumentType: "factura",
		Items:        []dto.SaleItemRequest{{ProductID: taxed.ID, Quantity: dec(2), DiscountPct: dec(10)}},
		Payments:     []dto.PaymentRequest{{PaymentMethod: "EFECTIVO", Amount: dec(1000)}},
	})
	require.NoError(t, err)

	// bruto 2000, descuento 200, neto 1800, IVA 342, total 2142
	assert.Equal(t, "FACTURA", out.DocumentType)
	assert.True(t, out.Totals.TotalAmount.Equal(dec(2000)))
	assert.True(t, out.Totals.DiscountAmountTotal.Equal(dec(200)))
	assert.True(t, out.Totals.TaxAmountTotal.Equal(dec(342)), "IVA = %s", out.Totals.TaxAmountTotal)
	assert.True(t, out.Totals.FinalAmount.Equal(dec(2142)))
	assert.True(t, out.Totals.AmountPaid.Equal(dec(1000)))
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, out.PaymentStatus)
}

func TestCreateSale_TicketAliasIsCotizacion(t *testing.T) {
	f := newFixture(t)
	out, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{
		DocumentType: "ticket",
		Items:        []dto.SaleItemRequest{line(f.product.ID, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "COTIZACION", out.DocumentType)
}

func TestCreateSale_ValidationErrors(t *testing.T) {
	f := newFixture(t)
	missing := int64(9999)
	cases := []struct {
		name string
		in   dto.CreateSaleRequest
		want error
	}{
		{"sin líneas", dto.CreateSaleRequest{}, domain.ErrInvalidInput},
		{"tipo desconocido", dto.CreateSaleRequest{DocumentType: "RECIBO", Items: []dto.SaleItemRequest{line(f.product.ID, 1)}}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 0)}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(missing, 1)}}, domain.ErrNotFound},
		{"bodega inexistente", dto.CreateSaleRequest{WarehouseID: &missing, Items: []dto.SaleItemRequest{line(f.product.ID, 1)}}, domain.ErrNotFound},
		{"pago sin monto", dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}, Payments: []dto.PaymentRequest{{PaymentMethod: "EFECTIVO"}}}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.engine.CreateSale(context.Background(), companyID, nil, tc.in)
			require.ErrorIs(t, err, tc.want)
		})
	}
	assert.Equal(t, 0, f.salesCount(t, companyID))
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).IsZero())
}

func TestCreateSale_UsesSequence(t *testing.T) {
	f := newFixture(t)
	f.addSequence(t, "BOLETA", "B-", 10)

	first, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.NoError(t, err)
	second, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.NoError(t, err)

	assert.Equal(t, "B-10", first.DocumentNumber)
	assert.Equal(t, "B-11", second.DocumentNumber)
}

func TestCreateSale_UnsequencedBackToBackGetDistinctNumbers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fixed := time.UnixMilli(1_790_000_000_000)
	clock := func() time.Time { return fixed }
	engine := f.newEngine(sequence.NewNumberer(logger.Nop()).WithClock(clock))

	numbers := map[string]bool{}
	for i := 0; i < 50; i++ {
		out, err := engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{
			DocumentType: "BOLETA",
			Items:        []dto.SaleItemRequest{line(f.product.ID, 1)},
		})
		require.NoError(t, err, "venta %d", i)
		assert.True(t, strings.HasPrefix(out.DocumentNumber, "BOLETA-"))
		numbers[out.DocumentNumber] = true
	}
	assert.Len(t, numbers, 50)

	// Un numerador nuevo (otro proceso, mismo reloj) salta los números ya emitidos.
	restarted := f.newEngine(sequence.NewNumberer(logger.Nop()).WithClock(clock))
	out, err := restarted.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{
		DocumentType: "BOLETA",
		Items:        []dto.SaleItemRequest{line(f.product.ID, 1)},
	})
	require.NoError(t, err)
	assert.Equal(t, "BOLETA-1790000000050", out.DocumentNumber)
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).Equal(dec(-51)))
}

func TestCreateSale_FractionalQuantityTotalsMatchStoredPrecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	price := decimal.RequireFromString("1.5")
	zero := decimal.Zero

	out, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{
		DocumentType: "BOLETA",
		Items: []dto.SaleItemRequest{{
			ProductID: f.product.ID, Quantity: decimal.RequireFromString("0.333"), UnitPrice: &price, TaxPct: &zero,
		}},
	})
	require.NoError(t, err)
	half := decimal.RequireFromString("0.50")
	assert.True(t, out.Totals.TotalAmount.Equal(half), "total %s", out.Totals.TotalAmount)
	assert.True(t, out.Totals.FinalAmount.Equal(half), "final %s", out.Totals.FinalAmount)

	got, err := f.engine.GetSale(ctx, companyID, out.SaleID)
	require.NoError(t, err)
	assert.True(t, got.Totals.FinalAmount.Equal(out.Totals.FinalAmount))
}

func TestCreateSale_FailureInsideTransactionRollsBackEverything(t *testing.T) {
	f := newFixture(t)
	seq := f.addSequence(t, "BOLETA", "B-", 1)

	// La serie no está registrada: falla después de numerar y mover stock.
	_, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			line(f.product.ID, 3),
			{ProductID: f.product.ID, Quantity: dec(1), SerialNumber: "NO-EXISTE"},
		},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, f.salesCount(t, companyID))
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).IsZero())
	txs, err := f.repos.Inventory.ListTransactions(context.Background(), repository.TransactionFilter{CompanyID: companyID})
	require.NoError(t, err)
	assert.Empty(t, txs)
	got, err := f.repos.Sequences.GetByID(context.Background(), companyID, seq.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.NextNumber, "el correlativo no avanza si la venta falla")
}

func TestCreateSale_SerialMarkedSold(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	serial := &entity.ProductSerial{CompanyID: companyID, ProductID: f.product.ID, SerialNumber: "SN-1", Status: entity.SerialStatusInStock}
	require.NoError(t, f.repos.Lots.CreateSerial(ctx, serial))

	item := dto.SaleItemRequest{ProductID: f.product.ID, Quantity: dec(1), SerialNumber: "SN-1"}
	out, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{DocumentType: "BOLETA", Items: []dto.SaleItemRequest{item}})
	require.NoError(t, err)

	s, err := f.repos.Lots.GetSerialForUpdate(ctx, companyID, f.product.ID, "SN-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusSold, s.Status)

	_, err = f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{item}})
	require.ErrorIs(t, err, domain.ErrInvalidInput, "una serie vendida no se vende dos veces")

	_, err = f.engine.CreateCreditNote(ctx, companyID, nil, dto.CreateNoteRequest{OriginalSaleID: out.SaleID, Items: []dto.SaleItemRequest{item}})
	require.NoError(t, err)
	s, err = f.repos.Lots.GetSerialForUpdate(ctx, companyID, f.product.ID, "SN-1")
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusInStock, s.Status)
}

func TestCreditNote_ReturnCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sale, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 2)}})
	require.NoError(t, err)

	cn, err := f.engine.CreateCreditNote(ctx, companyID, nil, dto.CreateNoteRequest{
		OriginalSaleID: sale.SaleID,
		Items:          []dto.SaleItemRequest{line(f.product.ID, 2)},
	})
	require.NoError(t, err)
	assert.True(t, cn.FinalAmount.Equal(dec(200)), "usa el precio de la venta original")
	assert.True(t, strings.HasPrefix(cn.DocumentNumber, "NOTA_CREDITO-"))
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).IsZero(), "la devolución repone el stock")

	before := f.salesCount(t, companyID)
	_, err = f.engine.CreateCreditNote(ctx, companyID, nil, dto.CreateNoteRequest{
		OriginalSaleID: sale.SaleID,
		Items:          []dto.SaleItemRequest{line(f.product.ID, 1)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, before, f.salesCount(t, companyID), "no se crea documento")
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).IsZero())
}

func TestCreditNote_ProductNotInOriginalRejected(t *testing.T) {
	f := newFixture(t)
	other := f.addProduct(t, companyID, "SKU-OTRO", dec(50), decimal.Zero)
	sale, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 2)}})
	require.NoError(t, err)

	_, err = f.engine.CreateCreditNote(context.Background(), companyID, nil, dto.CreateNoteRequest{
		OriginalSaleID: sale.SaleID,
		Items:          []dto.SaleItemRequest{line(other.ID, 1)},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNotes_OriginalMustBeFacturaOrBoleta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	quote, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{DocumentType: "COTIZACION", Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.NoError(t, err)

	req := dto.CreateNoteRequest{OriginalSaleID: quote.SaleID, Items: []dto.SaleItemRequest{line(f.product.ID, 1)}}
	_, err = f.engine.CreateCreditNote(ctx, companyID, nil, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.engine.CreateDebitNote(ctx, companyID, nil, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	req.OriginalSaleID = 424242
	_, err = f.engine.CreateCreditNote(ctx, companyID, nil, req)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDebitNote_NoCapAndStockLeaves(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sale, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{DocumentType: "FACTURA", Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.NoError(t, err)

	dn, err := f.engine.CreateDebitNote(ctx, companyID, nil, dto.CreateNoteRequest{
		OriginalSaleID: sale.SaleID,
		Items:          []dto.SaleItemRequest{{ProductID: f.product.ID, Quantity: dec(5), UnitPrice: decPtr(20)}},
	})
	require.NoError(t, err)
	assert.True(t, dn.FinalAmount.Equal(dec(100)))
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).Equal(dec(-6)))
}

func TestGuiaDespacho_RequiresSequence(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	req := dto.CreateGuiaDespachoRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 4)}}

	_, err := f.engine.CreateGuiaDespacho(ctx, companyID, nil, req)
	require.ErrorIs(t, err, domain.ErrSequenceNotConfigured)
	assert.Equal(t, 0, f.salesCount(t, companyID))
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).IsZero())

	f.addSequence(t, "GUIA_DESPACHO", "GD-", 100)
	out, err := f.engine.CreateGuiaDespacho(ctx, companyID, nil, req)
	require.NoError(t, err)
	assert.Equal(t, "GD-100", out.DocumentNumber)
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).Equal(dec(-4)))

	txs, err := f.repos.Inventory.ListTransactions(ctx, repository.TransactionFilter{CompanyID: companyID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TxTypeSaleShipment, txs[0].TransactionType)
}

func TestApplyPayments(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sale, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 3)}})
	require.NoError(t, err)

	st, err := f.engine.ApplyPayments(ctx, companyID, nil, sale.SaleID, dto.ApplyPaymentsRequest{
		Payments: []dto.PaymentRequest{{PaymentMethod: "DEBITO", Amount: dec(100)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartiallyPaid, st.PaymentStatus)

	st, err = f.engine.ApplyPayments(ctx, companyID, nil, sale.SaleID, dto.ApplyPaymentsRequest{
		Payments: []dto.PaymentRequest{{PaymentMethod: "EFECTIVO", Amount: dec(200)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, st.PaymentStatus)
	assert.True(t, st.AmountPaid.Equal(dec(300)))

	detail, err := f.engine.GetSale(ctx, companyID, sale.SaleID)
	require.NoError(t, err)
	assert.Len(t, detail.Payments, 2)

	_, err = f.engine.ApplyPayments(ctx, companyID, nil, 777, dto.ApplyPaymentsRequest{
		Payments: []dto.PaymentRequest{{PaymentMethod: "EFECTIVO", Amount: dec(1)}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSales_TenantIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const otherCompany = int64(2)
	f.addWarehouse(t, otherCompany, "Otra", true)

	sale, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.NoError(t, err)

	_, err = f.engine.GetSale(ctx, otherCompany, sale.SaleID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	// El producto de la empresa 1 no existe para la empresa 2.
	_, err = f.engine.CreateSale(ctx, otherCompany, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.engine.CreateCreditNote(ctx, otherCompany, nil, dto.CreateNoteRequest{OriginalSaleID: sale.SaleID, Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 0, f.salesCount(t, otherCompany))
}

func TestCreateSale_ConcurrentSequenceIsGapFreeAndUnique(t *testing.T) {
	f := newFixture(t)
	seq := f.addSequence(t, "BOLETA", "", 1)
	const n = 25

	var wg sync.WaitGroup
	numbers := make(chan string, n)
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out, err := f.engine.CreateSale(context.Background(), companyID, nil, dto.CreateSaleRequest{Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
			if err != nil {
				errs <- err
				return
			}
			numbers <- out.DocumentNumber
		}()
	}
	wg.Wait()
	close(numbers)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seen := map[string]bool{}
	for num := range numbers {
		assert.False(t, seen[num], "número repetido %s", num)
		seen[num] = true
	}
	assert.Len(t, seen, n)
	got, err := f.repos.Sequences.GetByID(context.Background(), companyID, seq.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(n+1), got.NextNumber)
	assert.True(t, f.stock(t, f.product.ID, f.warehouse.ID).Equal(dec(-n)), "conservación: stock = -vendido")
}

func TestListSalesAndPDF(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.addSequence(t, "BOLETA", "B-", 1)
	for _, dt := range []string{"BOLETA", "FACTURA", "BOLETA"} {
		_, err := f.engine.CreateSale(ctx, companyID, nil, dto.CreateSaleRequest{DocumentType: dt, Items: []dto.SaleItemRequest{line(f.product.ID, 1)}})
		require.NoError(t, err)
	}

	list, err := f.engine.ListSales(ctx, companyID, dto.SaleListRequest{DocumentType: "boleta"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)

	from := time.Now().Add(time.Hour)
	list, err = f.engine.ListSales(ctx, companyID, dto.SaleListRequest{From: &from})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	pdf, filename, err := f.engine.SalePDF(ctx, companyID, list0(t, f).ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF"))
	assert.True(t, strings.HasSuffix(filename, ".pdf"))
}

func list0(t *testing.T, f *fixture) dto.SaleSummary {
	t.Helper()
	list, err := f.engine.ListSales(context.Background(), companyID, dto.SaleListRequest{})
	require.NoError(t, err)
	require.NotEmpty(t, list.Items)
	return list.Items[0]
}
