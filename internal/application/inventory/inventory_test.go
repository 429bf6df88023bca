package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/inventory"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
)

const companyID = int64(5)

type fakeExporter struct {
	rows []inventory.LevelExportRow
}

func (e *fakeExporter) ExportLevels(_ context.Context, rows []inventory.LevelExportRow) ([]byte, error) {
	e.rows = rows
	return []byte("xlsx"), nil
}

type fixture struct {
	repos    repository.Repos
	uc       *inventory.UseCase
	lots     *inventory.LotUseCase
	exporter *fakeExporter
	central  *entity.Warehouse
	sala     *entity.Warehouse
	product  *entity.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	repos := store.Repos()
	f := &fixture{repos: repos, exporter: &fakeExporter{}}
	f.uc = inventory.NewUseCase(store, repos, inventory.NewLedger(), f.exporter)
	f.lots = inventory.NewLotUseCase(repos)

	f.central = &entity.Warehouse{CompanyID: companyID, Name: "Central", IsDefault: true, IsActive: true}
	require.NoError(t, repos.Warehouses.Create(ctx, f.central))
	f.sala = &entity.Warehouse{CompanyID: companyID, Name: "Sala de ventas", IsActive: true}
	require.NoError(t, repos.Warehouses.Create(ctx, f.sala))
	f.product = &entity.Product{CompanyID: companyID, SKU: "LEC-1", Name: "Leche", Price: dec(990), IsActive: true}
	require.NoError(t, repos.Products.Create(ctx, f.product))
	return f
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func (f *fixture) adjust(t *testing.T, warehouseID int64, lotID *int64, qty int64) *dto.InventoryLevelResponse {
	t.Helper()
	out, err := f.uc.Adjust(context.Background(), companyID, nil, dto.AdjustInventoryRequest{
		ProductID: f.product.ID, WarehouseID: warehouseID, LotID: lotID, QuantityChange: dec(qty), Reason: "conteo",
	})
	require.NoError(t, err)
	return out
}

func TestAdjust_AcumulaYRegistraTransaccion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.adjust(t, f.central.ID, nil, 10)
	level := f.adjust(t, f.central.ID, nil, -3)
	assert.True(t, level.StockQuantity.Equal(dec(7)), "stock = %s", level.StockQuantity)

	txs, err := f.uc.ListTransactions(ctx, companyID, dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, entity.TxTypeManualAdjustment, txs[0].TransactionType)
	assert.True(t, txs[0].QuantityChange.Equal(dec(-3)), "más recientes primero")
	assert.Equal(t, "conteo", txs[0].Notes)
	assert.NotEqual(t, txs[0].BatchID, txs[1].BatchID)
}

func TestAdjust_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	otherProduct := &entity.Product{CompanyID: companyID, SKU: "OTRO", Name: "Otro", IsActive: true}
	require.NoError(t, f.repos.Products.Create(ctx, otherProduct))
	foreignLot := &entity.ProductLot{CompanyID: companyID, ProductID: otherProduct.ID, LotNumber: "X"}
	require.NoError(t, f.repos.Lots.CreateLot(ctx, foreignLot))

	cases := []struct {
		name string
		in   dto.AdjustInventoryRequest
		want error
	}{
		{"cantidad cero", dto.AdjustInventoryRequest{ProductID: f.product.ID, WarehouseID: f.central.ID}, domain.ErrInvalidInput},
		{"producto inexistente", dto.AdjustInventoryRequest{ProductID: 999, WarehouseID: f.central.ID, QuantityChange: dec(1)}, domain.ErrNotFound},
		{"bodega inexistente", dto.AdjustInventoryRequest{ProductID: f.product.ID, WarehouseID: 999, QuantityChange: dec(1)}, domain.ErrNotFound},
		{"lote de otro producto", dto.AdjustInventoryRequest{ProductID: f.product.ID, WarehouseID: f.central.ID, LotID: &foreignLot.ID, QuantityChange: dec(1)}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Adjust(ctx, companyID, nil, tc.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "error = %v", err)
		})
	}

	txs, err := f.uc.ListTransactions(ctx, companyID, dto.TransactionQuery{})
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestBulkAdjust_LlevaAObjetivo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.adjust(t, f.central.ID, nil, 10)

	out, err := f.uc.BulkAdjust(ctx, companyID, nil, dto.BulkAdjustRequest{
		Reason: "inventario anual",
		Items: []dto.BulkAdjustItem{
			{ProductID: f.product.ID, WarehouseID: f.central.ID, TargetQuantity: dec(4)},
			{ProductID: f.product.ID, WarehouseID: f.sala.ID, TargetQuantity: dec(6)},
		},
	})
	require.NoError(t, err)
	require.Len(t, out.Levels, 2)
	assert.True(t, out.Levels[0].StockQuantity.Equal(dec(4)))
	assert.True(t, out.Levels[1].StockQuantity.Equal(dec(6)))

	txs, err := f.uc.ListTransactions(ctx, companyID, dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	// El log registra el delta real, no la cantidad objetivo.
	assert.True(t, txs[0].QuantityChange.Equal(dec(6)))
	assert.True(t, txs[1].QuantityChange.Equal(dec(-6)))
	assert.Equal(t, out.BatchID, txs[0].BatchID)
	assert.Equal(t, out.BatchID, txs[1].BatchID)
}

func TestBulkAdjust_SinCambioNoEscribe(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.adjust(t, f.central.ID, nil, 5)

	_, err := f.uc.BulkAdjust(ctx, companyID, nil, dto.BulkAdjustRequest{
		Items: []dto.BulkAdjustItem{{ProductID: f.product.ID, WarehouseID: f.central.ID, TargetQuantity: dec(5)}},
	})
	require.NoError(t, err)

	txs, err := f.uc.ListTransactions(ctx, companyID, dto.TransactionQuery{})
	require.NoError(t, err)
	assert.Len(t, txs, 1)
}

func TestBulkAdjust_ObjetivoNegativoRechazado(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.BulkAdjust(context.Background(), companyID, nil, dto.BulkAdjustRequest{
		Items: []dto.BulkAdjustItem{{ProductID: f.product.ID, WarehouseID: f.central.ID, TargetQuantity: dec(-1)}},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTransfer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.adjust(t, f.central.ID, nil, 10)

	out, err := f.uc.Transfer(ctx, companyID, nil, dto.TransferRequest{
		ProductID: f.product.ID, FromWarehouseID: f.central.ID, ToWarehouseID: f.sala.ID, Quantity: dec(4),
	})
	require.NoError(t, err)
	assert.Equal(t, f.central.ID, out.From.WarehouseID)
	assert.True(t, out.From.StockQuantity.Equal(dec(6)))
	assert.Equal(t, f.sala.ID, out.To.WarehouseID)
	assert.True(t, out.To.StockQuantity.Equal(dec(4)))

	txs, err := f.uc.ListTransactions(ctx, companyID, dto.TransactionQuery{})
	require.NoError(t, err)
	require.Len(t, txs, 3)
	types := []string{txs[0].TransactionType, txs[1].TransactionType}
	assert.ElementsMatch(t, []string{entity.TxTypeTransferOut, entity.TxTypeTransferIn}, types)
	assert.Equal(t, txs[0].BatchID, txs[1].BatchID)

	_, err = f.uc.Transfer(ctx, companyID, nil, dto.TransferRequest{
		ProductID: f.product.ID, FromWarehouseID: f.central.ID, ToWarehouseID: f.central.ID, Quantity: dec(1),
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestListLevels_OmiteCeros(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.adjust(t, f.central.ID, nil, 3)
	f.adjust(t, f.sala.ID, nil, 2)
	f.adjust(t, f.sala.ID, nil, -2)

	levels, err := f.uc.ListLevels(ctx, companyID, dto.LevelQuery{})
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, f.central.ID, levels[0].WarehouseID)

	levels, err = f.uc.ListLevels(ctx, companyID, dto.LevelQuery{IncludeZero: true})
	require.NoError(t, err)
	assert.Len(t, levels, 2)

	other, err := f.uc.ListLevels(ctx, companyID+1, dto.LevelQuery{IncludeZero: true})
	require.NoError(t, err)
	assert.Empty(t, other, "niveles aislados por empresa")
}

func TestExportLevels(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	lot, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "L-01"})
	require.NoError(t, err)
	f.adjust(t, f.central.ID, &lot.ID, 8)

	data, filename, err := f.uc.ExportLevels(ctx, companyID, dto.LevelQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Contains(t, filename, ".xlsx")
	require.Len(t, f.exporter.rows, 1)
	row := f.exporter.rows[0]
	assert.Equal(t, "LEC-1", row.SKU)
	assert.Equal(t, "Central", row.WarehouseName)
	assert.Equal(t, "L-01", row.LotNumber)
	assert.True(t, row.StockQuantity.Equal(dec(8)))
}

func TestListLots_OrdenFEFO(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	soon := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	later := time.Date(2027, 3, 1, 0, 0, 0, 0, time.UTC)

	noExp, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "SIN-VENC"})
	require.NoError(t, err)
	lateLot, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "MARZO", ExpirationDate: &later})
	require.NoError(t, err)
	soonLot, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "NOVIEMBRE", ExpirationDate: &soon})
	require.NoError(t, err)
	empty, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "VACIO"})
	require.NoError(t, err)

	f.adjust(t, f.central.ID, &noExp.ID, 1)
	f.adjust(t, f.central.ID, &lateLot.ID, 2)
	f.adjust(t, f.central.ID, &soonLot.ID, 3)

	list, err := f.lots.ListLots(ctx, companyID, dto.LotQuery{ProductID: f.product.ID})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "NOVIEMBRE", list[0].LotNumber)
	assert.Equal(t, "MARZO", list[1].LotNumber)
	assert.Equal(t, "SIN-VENC", list[2].LotNumber)
	require.NotNil(t, list[0].Quantity)
	assert.True(t, list[0].Quantity.Equal(dec(3)))

	withEmpty, err := f.lots.ListLots(ctx, companyID, dto.LotQuery{ProductID: f.product.ID, IncludeEmpty: true})
	require.NoError(t, err)
	require.Len(t, withEmpty, 4)
	last := withEmpty[3]
	assert.Equal(t, empty.ID, last.ID)
	assert.Nil(t, last.WarehouseID, "lote sin stock en ninguna bodega")

	_, err = f.lots.ListLots(ctx, companyID, dto.LotQuery{})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateLot_NumeroDuplicado(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "L-9"})
	require.NoError(t, err)
	_, err = f.lots.CreateLot(ctx, companyID, dto.CreateLotRequest{ProductID: f.product.ID, LotNumber: "L-9"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestSerials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	warehouseID := f.central.ID

	s, err := f.lots.CreateSerial(ctx, companyID, dto.CreateSerialRequest{ProductID: f.product.ID, SerialNumber: "SN-1", WarehouseID: &warehouseID})
	require.NoError(t, err)
	assert.Equal(t, entity.SerialStatusInStock, s.Status)

	_, err = f.lots.CreateSerial(ctx, companyID, dto.CreateSerialRequest{ProductID: f.product.ID, SerialNumber: "SN-1"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	missing := int64(999)
	_, err = f.lots.CreateSerial(ctx, companyID, dto.CreateSerialRequest{ProductID: f.product.ID, SerialNumber: "SN-2", WarehouseID: &missing})
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	list, err := f.lots.ListSerials(ctx, companyID, f.product.ID, entity.SerialStatusInStock)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "SN-1", list[0].SerialNumber)

	list, err = f.lots.ListSerials(ctx, companyID, f.product.ID, entity.SerialStatusSold)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestLedger_ApplyAllOrdenaPorClave(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ledger := inventory.NewLedger()

	err := ledger.ApplyAll(ctx, f.repos.Inventory, []inventory.Movement{
		{CompanyID: companyID, ProductID: f.product.ID, WarehouseID: f.sala.ID, QuantityChange: dec(-1), TransactionType: entity.TxTypeSale},
		{CompanyID: companyID, ProductID: f.product.ID, WarehouseID: f.central.ID, QuantityChange: dec(-2), TransactionType: entity.TxTypeSale},
	})
	require.NoError(t, err)

	txs, err := f.repos.Inventory.ListTransactions(ctx, repository.TransactionFilter{CompanyID: companyID})
	require.NoError(t, err)
	require.Len(t, txs, 2)
	// Más recientes primero: la bodega de mayor ID se aplicó al final.
	assert.Equal(t, f.sala.ID, txs[0].WarehouseID)
	assert.Equal(t, f.central.ID, txs[1].WarehouseID)
}
