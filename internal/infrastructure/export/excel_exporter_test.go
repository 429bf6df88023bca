package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-api/internal/application/inventory"
)

func TestExportLevels(t *testing.T) {
	rows := []inventory.LevelExportRow{
		{SKU: "SKU-1", ProductName: "Tornillo", WarehouseName: "Central", StockQuantity: decimal.NewFromInt(-2), UpdatedAt: time.Now()},
		{SKU: "SKU-2", ProductName: "Tuerca", WarehouseName: "Central", LotNumber: "L-01", StockQuantity: decimal.RequireFromString("10.5"), UpdatedAt: time.Now()},
	}
	out, err := NewExcelExporter().ExportLevels(context.Background(), rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(levelsSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, levelHeaders, got[0])
	assert.Equal(t, "SKU-1", got[1][0])
	assert.Equal(t, "-2", got[1][4])
	assert.Equal(t, "L-01", got[2][3])
	assert.Equal(t, "10.5", got[2][4])
}
