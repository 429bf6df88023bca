package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// LevelExportRow fila de la planilla de niveles de inventario.
type LevelExportRow struct {
	SKU           string
	ProductName   string
	WarehouseName string
	LotNumber     string
	StockQuantity decimal.Decimal
	Reserved      decimal.Decimal
	UpdatedAt     time.Time
}

// LevelExporter genera el archivo de exportación (XLSX) de niveles.
type LevelExporter interface {
	ExportLevels(ctx context.Context, rows []LevelExportRow) ([]byte, error)
}
