package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cost y stock se manejan vía recepciones y movimientos.
type ProductUseCase struct {
	repo   repository.ProductRepository
	config ports.ConfigProvider
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, config ports.ConfigProvider) *ProductUseCase {
	return &ProductUseCase{repo: repo, config: config}
}

// Create crea un nuevo producto. Cost inicia en 0; sin TaxPct se usa el IVA configurado.
// Un SKU repetido en la empresa retorna domain.ErrConflict.
func (uc *ProductUseCase) Create(ctx context.Context, companyID int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validatePrices(in); err != nil {
		return nil, err
	}
	taxPct, err := uc.taxPct(ctx, companyID, in.TaxPct)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	product := &entity.Product{
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Price:        in.Price,
		Cost:         decimal.Zero,
		TaxPct:       taxPct,
		TracksLots:   in.TracksLots,
		TracksSerial: in.TracksSerial,
		IsActive:     in.IsActive == nil || *in.IsActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id int64) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %d", id)
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar Cost (se maneja vía recepciones).
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := validatePrices(in); err != nil {
		return nil, err
	}
	product, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("producto %d", id)
	}
	product.SKU = in.SKU
	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	if in.TaxPct != nil {
		product.TaxPct = *in.TaxPct
	}
	product.TracksLots = in.TracksLots
	product.TracksSerial = in.TracksSerial
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos por empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID int64, page dto.PageRequest) ([]dto.ProductResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

func (uc *ProductUseCase) taxPct(ctx context.Context, companyID int64, requested *decimal.Decimal) (decimal.Decimal, error) {
	if requested != nil {
		return *requested, nil
	}
	cfg, err := uc.config.GetConfig(ctx, companyID, nil)
	if err != nil {
		return decimal.Zero, err
	}
	return cfg.DefaultTaxPct, nil
}

func validatePrices(in dto.ProductRequest) error {
	if in.Price.IsNegative() {
		return domain.Invalid("Price no puede ser negativo")
	}
	if in.TaxPct != nil && (in.TaxPct.IsNegative() || in.TaxPct.GreaterThan(decimal.NewFromInt(100))) {
		return domain.Invalid("TaxPct debe estar entre 0 y 100")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		SKU:          p.SKU,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Cost:         p.Cost,
		TaxPct:       p.TaxPct,
		TracksLots:   p.TracksLots,
		TracksSerial: p.TracksSerial,
		IsActive:     p.IsActive,
	}
}
