package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/usecase"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/erp-api/internal/infrastructure/settings"
	"github.com/jhoicas/erp-api/pkg/config"
)

const companyID = int64(4)

func TestProductUseCase_IVAPorDefecto(t *testing.T) {
	repos := memory.NewStore().Repos()
	uc := usecase.NewProductUseCase(repos.Products, settings.NewStaticConfigProvider(config.ERPConfig{DefaultTaxPct: 19}))
	ctx := context.Background()

	p, err := uc.Create(ctx, companyID, dto.ProductRequest{SKU: "A-1", Name: "Arroz", Price: decimal.NewFromInt(1200)})
	require.NoError(t, err)
	assert.True(t, p.TaxPct.Equal(decimal.NewFromInt(19)))
	assert.True(t, p.Cost.IsZero())
	assert.True(t, p.IsActive)

	exempt := decimal.Zero
	q, err := uc.Create(ctx, companyID, dto.ProductRequest{SKU: "A-2", Name: "Libro", Price: decimal.NewFromInt(5000), TaxPct: &exempt})
	require.NoError(t, err)
	assert.True(t, q.TaxPct.IsZero())

	_, err = uc.Create(ctx, companyID, dto.ProductRequest{SKU: "A-1", Name: "Otro"})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	_, err = uc.Create(ctx, companyID, dto.ProductRequest{SKU: "A-3", Name: "Negativo", Price: decimal.NewFromInt(-1)})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.List(ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestProductUseCase_UpdateNoTocaCosto(t *testing.T) {
	repos := memory.NewStore().Repos()
	uc := usecase.NewProductUseCase(repos.Products, settings.NewStaticConfigProvider(config.ERPConfig{DefaultTaxPct: 19}))
	ctx := context.Background()

	p, err := uc.Create(ctx, companyID, dto.ProductRequest{SKU: "B-1", Name: "Azúcar", Price: decimal.NewFromInt(900)})
	require.NoError(t, err)
	require.NoError(t, repos.Products.UpdateCost(ctx, companyID, p.ID, decimal.NewFromInt(600)))

	inactive := false
	out, err := uc.Update(ctx, companyID, p.ID, dto.ProductRequest{SKU: "B-1", Name: "Azúcar flor", Price: decimal.NewFromInt(950), IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "Azúcar flor", out.Name)
	assert.True(t, out.Cost.Equal(decimal.NewFromInt(600)))
	assert.True(t, out.TaxPct.Equal(decimal.NewFromInt(19)), "sin TaxPct se conserva el vigente")
	assert.False(t, out.IsActive)

	_, err = uc.GetByID(ctx, companyID+1, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWarehouseUseCase_UnaSolaPorDefecto(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	uc := usecase.NewWarehouseUseCase(store, repos.Warehouses)
	ctx := context.Background()

	first, err := uc.Create(ctx, companyID, dto.WarehouseRequest{Name: "Central", IsDefault: true})
	require.NoError(t, err)
	second, err := uc.Create(ctx, companyID, dto.WarehouseRequest{Name: "Norte", IsDefault: true})
	require.NoError(t, err)

	def, err := repos.Warehouses.GetDefault(ctx, companyID)
	require.NoError(t, err)
	require.NotNil(t, def)
	assert.Equal(t, second.ID, def.ID)

	got, err := uc.GetByID(ctx, companyID, first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDefault)

	_, err = uc.Update(ctx, companyID, first.ID, dto.WarehouseRequest{Name: "Central", IsDefault: true})
	require.NoError(t, err)
	def, err = repos.Warehouses.GetDefault(ctx, companyID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, def.ID)

	_, err = uc.Update(ctx, companyID, 999, dto.WarehouseRequest{Name: "X"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPartyUseCases(t *testing.T) {
	repos := memory.NewStore().Repos()
	customers := usecase.NewCustomerUseCase(repos.Customers)
	suppliers := usecase.NewSupplierUseCase(repos.Suppliers)
	ctx := context.Background()

	c, err := customers.Create(ctx, companyID, dto.PartyRequest{Name: "Juana Pérez", TaxID: "12.345.678-5", IsTaxExempt: true})
	require.NoError(t, err)
	assert.True(t, c.IsTaxExempt)

	updated, err := customers.Update(ctx, companyID, c.ID, dto.PartyRequest{Name: "Juana Pérez Soto", Email: "juana@example.cl"})
	require.NoError(t, err)
	assert.Equal(t, "Juana Pérez Soto", updated.Name)
	assert.False(t, updated.IsTaxExempt)

	_, err = customers.GetByID(ctx, companyID+1, c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	s, err := suppliers.Create(ctx, companyID, dto.PartyRequest{Name: "Molino del Sur"})
	require.NoError(t, err)
	got, err := suppliers.GetByID(ctx, companyID, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Molino del Sur", got.Name)

	list, err := suppliers.List(ctx, companyID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
