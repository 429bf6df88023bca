package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// LotUseCase registro de lotes y números de serie.
type LotUseCase struct {
	repos repository.Repos
}

// NewLotUseCase construye el caso de uso.
func NewLotUseCase(repos repository.Repos) *LotUseCase {
	return &LotUseCase{repos: repos}
}

// CreateLot registra un lote. El número de lote es único por empresa y producto.
func (uc *LotUseCase) CreateLot(ctx context.Context, companyID int64, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if err := uc.checkProduct(ctx, companyID, in.ProductID); err != nil {
		return nil, err
	}
	lot := &entity.ProductLot{
		CompanyID:      companyID,
		ProductID:      in.ProductID,
		LotNumber:      in.LotNumber,
		ExpirationDate: in.ExpirationDate,
		CreatedAt:      time.Now(),
	}
	if err := uc.repos.Lots.CreateLot(ctx, lot); err != nil {
		return nil, err
	}
	return &dto.LotResponse{
		ID:             lot.ID,
		ProductID:      lot.ProductID,
		LotNumber:      lot.LotNumber,
		ExpirationDate: lot.ExpirationDate,
	}, nil
}

// ListLots devuelve los lotes del producto con su cantidad por bodega en orden FEFO:
// vencimiento más próximo primero y lotes sin vencimiento al final.
func (uc *LotUseCase) ListLots(ctx context.Context, companyID int64, q dto.LotQuery) ([]dto.LotResponse, error) {
	if q.ProductID <= 0 {
		return nil, domain.Invalid("productId es obligatorio")
	}
	list, err := uc.repos.Lots.ListLotStock(ctx, repository.LotStockFilter{
		CompanyID:    companyID,
		ProductID:    q.ProductID,
		WarehouseID:  q.WarehouseID,
		IncludeEmpty: q.IncludeEmpty,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(list))
	for _, ls := range list {
		qty := ls.Quantity
		resp := dto.LotResponse{
			ID:             ls.Lot.ID,
			ProductID:      ls.Lot.ProductID,
			LotNumber:      ls.Lot.LotNumber,
			ExpirationDate: ls.Lot.ExpirationDate,
			Quantity:       &qty,
		}
		// WarehouseID 0: lote registrado sin stock en ninguna bodega (solo con IncludeEmpty).
		if ls.WarehouseID != 0 {
			wid := ls.WarehouseID
			resp.WarehouseID = &wid
		}
		out = append(out, resp)
	}
	return out, nil
}

// CreateSerial registra un número de serie en estado InStock.
func (uc *LotUseCase) CreateSerial(ctx context.Context, companyID int64, in dto.CreateSerialRequest) (*dto.SerialResponse, error) {
	if err := uc.checkProduct(ctx, companyID, in.ProductID); err != nil {
		return nil, err
	}
	if in.WarehouseID != nil {
		w, err := uc.repos.Warehouses.GetByID(ctx, companyID, *in.WarehouseID)
		if err != nil {
			return nil, err
		}
		if w == nil {
			return nil, domain.NotFound("bodega %d", *in.WarehouseID)
		}
	}
	now := time.Now()
	s := &entity.ProductSerial{
		CompanyID:    companyID,
		ProductID:    in.ProductID,
		SerialNumber: in.SerialNumber,
		WarehouseID:  in.WarehouseID,
		Status:       entity.SerialStatusInStock,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.Lots.CreateSerial(ctx, s); err != nil {
		return nil, err
	}
	out := toSerialResponse(s)
	return &out, nil
}

// ListSerials lista las series de un producto, opcionalmente filtradas por estado.
func (uc *LotUseCase) ListSerials(ctx context.Context, companyID, productID int64, status string) ([]dto.SerialResponse, error) {
	if productID <= 0 {
		return nil, domain.Invalid("productId es obligatorio")
	}
	list, err := uc.repos.Lots.ListSerials(ctx, companyID, productID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SerialResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSerialResponse(s))
	}
	return out, nil
}

func (uc *LotUseCase) checkProduct(ctx context.Context, companyID, productID int64) error {
	p, err := uc.repos.Products.GetByID(ctx, companyID, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.NotFound("producto %d", productID)
	}
	return nil
}

func toSerialResponse(s *entity.ProductSerial) dto.SerialResponse {
	return dto.SerialResponse{
		ID:           s.ID,
		ProductID:    s.ProductID,
		SerialNumber: s.SerialNumber,
		WarehouseID:  s.WarehouseID,
		Status:       s.Status,
		SaleID:       s.SaleID,
	}
}
