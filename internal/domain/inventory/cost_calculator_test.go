package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/erp-api/internal/domain/inventory"
)

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	// 10 u a 100 + 10 u a 200 => 150
	got := inventory.CostCalculator(decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(10), decimal.NewFromInt(200))
	assert.True(t, decimal.NewFromInt(150).Equal(got), got.String())
}

func TestCostCalculator_StockNegativoTomaCostoEntrada(t *testing.T) {
	got := inventory.CostCalculator(decimal.NewFromInt(-3), decimal.NewFromInt(100), decimal.NewFromInt(5), decimal.NewFromInt(80))
	assert.True(t, decimal.NewFromInt(80).Equal(got), got.String())
}
