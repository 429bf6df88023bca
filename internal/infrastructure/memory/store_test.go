package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
)

func TestStore_RunRevierteAlFallar(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	ctx := context.Background()
	w := &entity.Warehouse{CompanyID: 1, Name: "Central", IsActive: true}
	require.NoError(t, repos.Warehouses.Create(ctx, w))

	boom := errors.New("falla a mitad de camino")
	err := store.Run(ctx, func(r repository.Repos) error {
		p := &entity.Product{CompanyID: 1, SKU: "A", Name: "A"}
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		if err := r.Inventory.InsertLevel(ctx, &entity.InventoryLevel{
			CompanyID: 1, ProductID: p.ID, WarehouseID: w.ID, StockQuantity: decimal.NewFromInt(3),
		}); err != nil {
			return err
		}
		w.Name = "Renombrada"
		if err := r.Warehouses.Update(ctx, w); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	products, err := repos.Products.ListByCompany(ctx, 1, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, products)
	levels, err := repos.Inventory.ListLevels(ctx, repository.LevelFilter{CompanyID: 1, IncludeZero: true})
	require.NoError(t, err)
	assert.Empty(t, levels)
	got, err := repos.Warehouses.GetByID(ctx, 1, w.ID)
	require.NoError(t, err)
	assert.Equal(t, "Central", got.Name)
}

func TestStore_RunConfirma(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()

	err := store.Run(ctx, func(r repository.Repos) error {
		return r.Suppliers.Create(ctx, &entity.Supplier{CompanyID: 2, Name: "Proveedor"})
	})
	require.NoError(t, err)

	list, err := store.Repos().Suppliers.ListByCompany(ctx, 2, 0, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestStore_ContextoCancelado(t *testing.T) {
	store := memory.NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := store.Run(ctx, func(repository.Repos) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestStore_AislamientoPorEmpresa(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	p := &entity.Product{CompanyID: 1, SKU: "SKU-1", Name: "Uno"}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.GetByID(ctx, 2, p.ID)
	require.NoError(t, err)
	assert.Nil(t, got, "otra empresa no ve el producto")

	// El mismo SKU es válido en otra empresa, pero no en la misma.
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{CompanyID: 2, SKU: "SKU-1", Name: "Uno"}))
	err = repos.Products.Create(ctx, &entity.Product{CompanyID: 1, SKU: "SKU-1", Name: "Dup"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestStore_DevuelveCopias(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	p := &entity.Product{CompanyID: 1, SKU: "C", Name: "Original"}
	require.NoError(t, repos.Products.Create(ctx, p))

	got, err := repos.Products.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)
	got.Name = "Mutado"

	again, err := repos.Products.GetByID(ctx, 1, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Name)
}

func TestInventory_NivelesPorLote(t *testing.T) {
	repos := memory.NewStore().Repos()
	ctx := context.Background()
	lotA, lotB := int64(10), int64(11)

	for _, lot := range []*int64{nil, &lotA, &lotB} {
		require.NoError(t, repos.Inventory.InsertLevel(ctx, &entity.InventoryLevel{
			CompanyID: 1, ProductID: 5, WarehouseID: 2, LotID: lot, StockQuantity: decimal.NewFromInt(1),
		}))
	}
	// Insertar sobre una clave existente suma al nivel (upsert).
	dup := &entity.InventoryLevel{CompanyID: 1, ProductID: 5, WarehouseID: 2, LotID: &lotA, StockQuantity: decimal.NewFromInt(4)}
	require.NoError(t, repos.Inventory.InsertLevel(ctx, dup))
	assert.True(t, dup.StockQuantity.Equal(decimal.NewFromInt(5)))

	levels, err := repos.Inventory.ListLevels(ctx, repository.LevelFilter{CompanyID: 1, IncludeZero: true})
	require.NoError(t, err)
	assert.Len(t, levels, 3)

	level, err := repos.Inventory.GetLevelForUpdate(ctx, repository.LevelKey{CompanyID: 1, ProductID: 5, WarehouseID: 2, LotID: &lotB})
	require.NoError(t, err)
	require.NotNil(t, level)
	require.NotNil(t, level.LotID)
	assert.Equal(t, lotB, *level.LotID)

	level, err = repos.Inventory.GetLevelForUpdate(ctx, repository.LevelKey{CompanyID: 1, ProductID: 5, WarehouseID: 2})
	require.NoError(t, err)
	require.NotNil(t, level)
	assert.Nil(t, level.LotID)
}
