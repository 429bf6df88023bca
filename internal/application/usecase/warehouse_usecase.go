package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// WarehouseUseCase casos de uso CRUD para bodegas. Solo una bodega por empresa queda
// marcada por defecto; es la que usan las ventas que no indican bodega.
type WarehouseUseCase struct {
	tx   ports.TxRunner
	repo repository.WarehouseRepository
}

// NewWarehouseUseCase construye el caso de uso.
func NewWarehouseUseCase(tx ports.TxRunner, repo repository.WarehouseRepository) *WarehouseUseCase {
	return &WarehouseUseCase{tx: tx, repo: repo}
}

// Create crea una nueva bodega.
func (uc *WarehouseUseCase) Create(ctx context.Context, companyID int64, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	now := time.Now()
	warehouse := &entity.Warehouse{
		CompanyID: companyID,
		Name:      in.Name,
		Address:   in.Address,
		IsDefault: in.IsDefault,
		IsActive:  in.IsActive == nil || *in.IsActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		if err := r.Warehouses.Create(ctx, warehouse); err != nil {
			return err
		}
		if warehouse.IsDefault {
			return r.Warehouses.ClearDefault(ctx, companyID, warehouse.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toWarehouseResponse(warehouse), nil
}

// GetByID obtiene una bodega de la empresa.
func (uc *WarehouseUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.WarehouseResponse, error) {
	warehouse, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if warehouse == nil {
		return nil, domain.NotFound("bodega %d", id)
	}
	return toWarehouseResponse(warehouse), nil
}

// Update reemplaza los datos de una bodega.
func (uc *WarehouseUseCase) Update(ctx context.Context, companyID, id int64, in dto.WarehouseRequest) (*dto.WarehouseResponse, error) {
	var out *dto.WarehouseResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		warehouse, err := r.Warehouses.GetByID(ctx, companyID, id)
		if err != nil {
			return err
		}
		if warehouse == nil {
			return domain.NotFound("bodega %d", id)
		}
		warehouse.Name = in.Name
		warehouse.Address = in.Address
		warehouse.IsDefault = in.IsDefault
		if in.IsActive != nil {
			warehouse.IsActive = *in.IsActive
		}
		warehouse.UpdatedAt = time.Now()
		if err := r.Warehouses.Update(ctx, warehouse); err != nil {
			return err
		}
		if warehouse.IsDefault {
			if err := r.Warehouses.ClearDefault(ctx, companyID, warehouse.ID); err != nil {
				return err
			}
		}
		out = toWarehouseResponse(warehouse)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List lista bodegas por empresa con paginación.
func (uc *WarehouseUseCase) List(ctx context.Context, companyID int64, page dto.PageRequest) ([]dto.WarehouseResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseResponse, 0, len(list))
	for _, w := range list {
		items = append(items, *toWarehouseResponse(w))
	}
	return items, nil
}

func toWarehouseResponse(w *entity.Warehouse) *dto.WarehouseResponse {
	return &dto.WarehouseResponse{
		ID:        w.ID,
		Name:      w.Name,
		Address:   w.Address,
		IsDefault: w.IsDefault,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
	}
}
