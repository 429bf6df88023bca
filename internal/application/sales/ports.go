package sales

import (
	"context"

	"github.com/jhoicas/erp-api/internal/application/dto"
)

// PDFGenerator genera la representación impresa de un documento de venta.
type PDFGenerator interface {
	GenerateSalePDF(ctx context.Context, sale *dto.SaleDetailResponse) ([]byte, error)
}
