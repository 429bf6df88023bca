// Package export genera planillas XLSX con excelize.
package export

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/erp-api/internal/application/inventory"
)

const levelsSheet = "Inventario"

var levelHeaders = []string{"SKU", "Producto", "Bodega", "Lote", "Stock", "Reservado", "Actualizado"}

// ExcelExporter implementa inventory.LevelExporter.
type ExcelExporter struct{}

var _ inventory.LevelExporter = (*ExcelExporter)(nil)

// NewExcelExporter construye el exportador.
func NewExcelExporter() *ExcelExporter { return &ExcelExporter{} }

// ExportLevels escribe una fila por nivel bajo una cabecera fija y devuelve el archivo.
func (e *ExcelExporter) ExportLevels(_ context.Context, rows []inventory.LevelExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", levelsSheet); err != nil {
		return nil, fmt.Errorf("export: renombrar hoja: %w", err)
	}

	for i, h := range levelHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(levelsSheet, cell, h); err != nil {
			return nil, fmt.Errorf("export: cabecera: %w", err)
		}
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("export: estilo: %w", err)
	}
	if err := f.SetRowStyle(levelsSheet, 1, 1, bold); err != nil {
		return nil, fmt.Errorf("export: estilo cabecera: %w", err)
	}

	for i, r := range rows {
		stock, _ := r.StockQuantity.Float64()
		reserved, _ := r.Reserved.Float64()
		values := []any{
			r.SKU,
			r.ProductName,
			r.WarehouseName,
			r.LotNumber,
			stock,
			reserved,
			r.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(levelsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("export: fila %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("export: escribir xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
