package purchasing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/application/purchasing"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/erp-api/pkg/logger"
)

const companyID = int64(3)

type fixture struct {
	repos     repository.Repos
	uc        *purchasing.UseCase
	supplier  *entity.Supplier
	warehouse *entity.Warehouse
	product   *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	f := &fixture{
		repos: repos,
		uc:    purchasing.NewUseCase(store, repos, inventory.NewLedger(), sequence.NewNumberer(logger.Nop()), logger.Nop()),
	}
	f.supplier = &entity.Supplier{CompanyID: companyID, Name: "Distribuidora Sur", TaxID: "76.123.456-7"}
	require.NoError(t, repos.Suppliers.Create(ctx, f.supplier))
	f.warehouse = &entity.Warehouse{CompanyID: companyID, Name: "Central", IsDefault: true, IsActive: true}
	require.NoError(t, repos.Warehouses.Create(ctx, f.warehouse))
	f.product = &entity.Product{CompanyID: companyID, SKU: "HAR-1", Name: "Harina", Price: dec(1500), TaxPct: dec(19), IsActive: true}
	require.NoError(t, repos.Products.Create(ctx, f.product))
	return f
}

func (f *fixture) stock(t *testing.T) decimal.Decimal {
	t.Helper()
	productID := f.product.ID
	levels, err := f.repos.Inventory.ListLevels(context.Background(), repository.LevelFilter{
		CompanyID: companyID, ProductID: &productID, IncludeZero: true,
	})
	require.NoError(t, err)
	total := decimal.Zero
	for _, l := range levels {
		total = total.Add(l.StockQuantity)
	}
	return total
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (f *fixture) createOrder(t *testing.T, qty int64) *dto.PurchaseOrderResponse {
	t.Helper()
	order, err := f.uc.CreatePurchaseOrder(context.Background(), companyID, nil, dto.CreatePurchaseOrderRequest{
		SupplierID: f.supplier.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ProductID: f.product.ID, Quantity: dec(qty), UnitCost: dec(800)}},
	})
	require.NoError(t, err)
	return order
}

func TestCreatePurchaseOrder(t *testing.T) {
	f := newFixture(t)
	order := f.createOrder(t, 10)

	assert.Equal(t, entity.PurchaseStatusSubmitted, order.Header.Status)
	assert.NotEmpty(t, order.Header.OrderNumber)
	assert.True(t, order.Header.TotalAmount.Equal(dec(8000)))
	require.Len(t, order.Items, 1)
	assert.True(t, order.Items[0].ReceivedQuantity.IsZero())
	assert.True(t, f.stock(t).IsZero(), "una orden de compra no mueve inventario")
}

func TestCreatePurchaseOrder_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreatePurchaseOrder(ctx, companyID, nil, dto.CreatePurchaseOrderRequest{SupplierID: 999,
		Items: []dto.PurchaseOrderItemRequest{{ProductID: f.product.ID, Quantity: dec(1), UnitCost: dec(1)}}})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = f.uc.CreatePurchaseOrder(ctx, companyID, nil, dto.CreatePurchaseOrderRequest{SupplierID: f.supplier.ID,
		Items: []dto.PurchaseOrderItemRequest{{ProductID: f.product.ID, Quantity: dec(0), UnitCost: dec(1)}}})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = f.uc.CreatePurchaseOrder(ctx, companyID, nil, dto.CreatePurchaseOrderRequest{SupplierID: f.supplier.ID})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestGoodsReceipt_CompletaLaOrden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10)
	orderID := order.Header.ID
	itemID := order.Items[0].ID

	gr, err := f.uc.CreateGoodsReceipt(ctx, companyID, nil, dto.CreateGoodsReceiptRequest{
		SupplierID:      f.supplier.ID,
		WarehouseID:     f.warehouse.ID,
		ReceiptNumber:   "GR-1",
		PurchaseOrderID: &orderID,
		Items: []dto.GoodsReceiptItemRequest{{
			ProductID: f.product.ID, QuantityReceived: dec(10), UnitCost: dec(800), PurchaseOrderItemID: &itemID,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, "GR-1", gr.Header.ReceiptNumber)
	require.Len(t, gr.Items, 1)
	assert.True(t, f.stock(t).Equal(dec(10)))

	got, err := f.uc.GetPurchaseOrder(ctx, companyID, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, got.Header.Status)
	assert.True(t, got.Items[0].ReceivedQuantity.Equal(dec(10)))

	product, err := f.repos.Products.GetByID(ctx, companyID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(dec(800)), "sin stock previo el costo pasa a ser el de la entrada")

	txs, err := f.repos.Inventory.ListTransactions(ctx, repository.TransactionFilter{CompanyID: companyID})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, entity.TxTypePurchaseReceived, txs[0].TransactionType)
	assert.Equal(t, entity.RefDocGoodsReceipt, txs[0].ReferenceType)
}

func TestGoodsReceipt_ParcialYCostoPromedio(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10)
	orderID := order.Header.ID
	itemID := order.Items[0].ID

	receive := func(number string, qty, cost int64) error {
		_, err := f.uc.CreateGoodsReceipt(ctx, companyID, nil, dto.CreateGoodsReceiptRequest{
			SupplierID: f.supplier.ID, WarehouseID: f.warehouse.ID, ReceiptNumber: number, PurchaseOrderID: &orderID,
			Items: []dto.GoodsReceiptItemRequest{{
				ProductID: f.product.ID, QuantityReceived: dec(qty), UnitCost: dec(cost), PurchaseOrderItemID: &itemID,
			}},
		})
		return err
	}

	require.NoError(t, receive("GR-A", 4, 100))
	got, err := f.uc.GetPurchaseOrder(ctx, companyID, orderID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPartiallyReceived, got.Header.Status)

	// 4 u a 100 + 4 u a 200 => 150
	require.NoError(t, receive("GR-B", 4, 200))
	product, err := f.repos.Products.GetByID(ctx, companyID, f.product.ID)
	require.NoError(t, err)
	assert.True(t, product.Cost.Equal(dec(150)), "costo = %s", product.Cost)
	assert.True(t, f.stock(t).Equal(dec(8)))
}

func TestGoodsReceipt_NumeroDuplicadoEsConflicto(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	in := dto.CreateGoodsReceiptRequest{
		SupplierID: f.supplier.ID, WarehouseID: f.warehouse.ID, ReceiptNumber: "GR-DUP",
		Items: []dto.GoodsReceiptItemRequest{{ProductID: f.product.ID, QuantityReceived: dec(5), UnitCost: dec(10)}},
	}
	_, err := f.uc.CreateGoodsReceipt(ctx, companyID, nil, in)
	require.NoError(t, err)

	_, err = f.uc.CreateGoodsReceipt(ctx, companyID, nil, in)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.True(t, f.stock(t).Equal(dec(5)), "la recepción rechazada no mueve stock")
}

func TestGoodsReceipt_LineaDeOtraOrdenRechazada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	order := f.createOrder(t, 10)
	orderID := order.Header.ID
	foreign := int64(987654)

	_, err := f.uc.CreateGoodsReceipt(ctx, companyID, nil, dto.CreateGoodsReceiptRequest{
		SupplierID: f.supplier.ID, WarehouseID: f.warehouse.ID, ReceiptNumber: "GR-X", PurchaseOrderID: &orderID,
		Items: []dto.GoodsReceiptItemRequest{{
			ProductID: f.product.ID, QuantityReceived: dec(1), UnitCost: dec(1), PurchaseOrderItemID: &foreign,
		}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, f.stock(t).IsZero())
}

func TestGoodsReceipt_LoteCreadoPorNumero(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	gr, err := f.uc.CreateGoodsReceipt(ctx, companyID, nil, dto.CreateGoodsReceiptRequest{
		SupplierID: f.supplier.ID, WarehouseID: f.warehouse.ID, ReceiptNumber: "GR-L",
		Items: []dto.GoodsReceiptItemRequest{{ProductID: f.product.ID, QuantityReceived: dec(6), UnitCost: dec(10), LotNumber: "L-2026"}},
	})
	require.NoError(t, err)
	require.NotNil(t, gr.Items[0].LotID)

	lot, err := f.repos.Lots.GetLotByNumber(ctx, companyID, f.product.ID, "L-2026")
	require.NoError(t, err)
	require.NotNil(t, lot)
	assert.Equal(t, lot.ID, *gr.Items[0].LotID)
}

func TestDirectPurchase_CrearYRecibir(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	warehouseID := f.warehouse.ID

	dp, err := f.uc.CreateDirectPurchase(ctx, companyID, nil, dto.CreateDirectPurchaseRequest{
		SupplierID: f.supplier.ID, WarehouseID: &warehouseID, ReceiptNumber: "FAC-77",
		Items: []dto.DirectPurchaseItemRequest{{ProductID: f.product.ID, Quantity: dec(10), UnitCost: dec(100)}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, dp.Header.Status)
	assert.True(t, dp.Header.TotalAmount.Equal(dec(1000)))
	assert.True(t, dp.Header.TaxAmountTotal.Equal(dec(190)), "IVA del producto")
	assert.True(t, dp.Header.FinalAmount.Equal(dec(1190)))
	assert.True(t, f.stock(t).IsZero(), "crear la compra no mueve stock")

	dpItemID := dp.Items[0].ID
	first, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, dp.Header.ID, dto.ReceiveDirectPurchaseRequest{
		Items: []dto.ReceiveDirectPurchaseItem{{DirectPurchaseItemID: dpItemID, Quantity: dec(4)}},
	})
	require.NoError(t, err)
	assert.Equal(t, "FAC-77", first.Header.ReceiptNumber)
	require.NotNil(t, first.Header.DirectPurchaseID)

	got, err := f.uc.GetDirectPurchase(ctx, companyID, dp.Header.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPartiallyReceived, got.Header.Status)

	// Sin líneas se recibe todo lo pendiente.
	second, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, dp.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	require.NoError(t, err)
	assert.Equal(t, "FAC-77-2", second.Header.ReceiptNumber)
	require.Len(t, second.Items, 1)
	assert.True(t, second.Items[0].QuantityReceived.Equal(dec(6)))

	got, err = f.uc.GetDirectPurchase(ctx, companyID, dp.Header.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, got.Header.Status)
	assert.True(t, f.stock(t).Equal(dec(10)))

	_, err = f.uc.ReceiveDirectPurchase(ctx, companyID, nil, dp.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput), "una compra recibida no se recibe de nuevo")
}

func TestDirectPurchase_NumeroDeRecepcionLibrePorEmpresa(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	warehouseID := f.warehouse.ID
	other := &entity.Supplier{CompanyID: companyID, Name: "Importadora Norte"}
	require.NoError(t, f.repos.Suppliers.Create(ctx, other))

	create := func(supplierID int64, number string, qty int64) *dto.DirectPurchaseResponse {
		dp, err := f.uc.CreateDirectPurchase(ctx, companyID, nil, dto.CreateDirectPurchaseRequest{
			SupplierID: supplierID, WarehouseID: &warehouseID, ReceiptNumber: number,
			Items: []dto.DirectPurchaseItemRequest{{ProductID: f.product.ID, Quantity: dec(qty), UnitCost: dec(10)}},
		})
		require.NoError(t, err)
		return dp
	}

	// Dos proveedores con la misma factura F-100.
	a := create(f.supplier.ID, "F-100", 1)
	b := create(other.ID, "F-100", 1)
	grA, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, a.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	require.NoError(t, err)
	grB, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, b.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	require.NoError(t, err)
	assert.Equal(t, "F-100", grA.Header.ReceiptNumber)
	assert.Equal(t, "F-100-2", grB.Header.ReceiptNumber)

	// Una recepción manual ya ocupa F-200-2: la segunda parcial salta a F-200-3.
	_, err = f.uc.CreateGoodsReceipt(ctx, companyID, nil, dto.CreateGoodsReceiptRequest{
		SupplierID: f.supplier.ID, WarehouseID: f.warehouse.ID, ReceiptNumber: "F-200-2",
		Items: []dto.GoodsReceiptItemRequest{{ProductID: f.product.ID, QuantityReceived: dec(1), UnitCost: dec(10)}},
	})
	require.NoError(t, err)
	c := create(f.supplier.ID, "F-200", 4)
	first, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, c.Header.ID, dto.ReceiveDirectPurchaseRequest{
		Items: []dto.ReceiveDirectPurchaseItem{{DirectPurchaseItemID: c.Items[0].ID, Quantity: dec(1)}},
	})
	require.NoError(t, err)
	second, err := f.uc.ReceiveDirectPurchase(ctx, companyID, nil, c.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	require.NoError(t, err)
	assert.Equal(t, "F-200", first.Header.ReceiptNumber)
	assert.Equal(t, "F-200-3", second.Header.ReceiptNumber)
	assert.True(t, f.stock(t).Equal(dec(7)))
}

func TestDirectPurchase_RecibirMasDeLoPendiente(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dp, err := f.uc.CreateDirectPurchase(ctx, companyID, nil, dto.CreateDirectPurchaseRequest{
		SupplierID: f.supplier.ID, ReceiptNumber: "FAC-9",
		Items: []dto.DirectPurchaseItemRequest{{ProductID: f.product.ID, Quantity: dec(2), UnitCost: dec(50)}},
	})
	require.NoError(t, err)

	// Sin bodega en la compra ni en la recepción.
	_, err = f.uc.ReceiveDirectPurchase(ctx, companyID, nil, dp.Header.ID, dto.ReceiveDirectPurchaseRequest{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	warehouseID := f.warehouse.ID
	_, err = f.uc.ReceiveDirectPurchase(ctx, companyID, nil, dp.Header.ID, dto.ReceiveDirectPurchaseRequest{
		WarehouseID: &warehouseID,
		Items:       []dto.ReceiveDirectPurchaseItem{{DirectPurchaseItemID: dp.Items[0].ID, Quantity: dec(3)}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.True(t, f.stock(t).IsZero())

	_, err = f.uc.ReceiveDirectPurchase(ctx, companyID, nil, 424242, dto.ReceiveDirectPurchaseRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
