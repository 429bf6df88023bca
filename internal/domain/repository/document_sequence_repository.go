package repository

import (
	"context"

	"github.com/jhoicas/erp-api/internal/domain/entity"
)

// DocumentSequenceRepository define el puerto de persistencia para correlativos.
type DocumentSequenceRepository interface {
	// GetActiveForUpdate bloquea el correlativo activo de (empresa, tipo, electrónico); nil si no hay.
	GetActiveForUpdate(ctx context.Context, companyID int64, documentType string, electronic bool) (*entity.DocumentSequence, error)
	// Advance persiste NextNumber y marca updated_at.
	Advance(ctx context.Context, seq *entity.DocumentSequence) error
	// Create inserta; ErrConflict si ya existe (empresa, tipo, electrónico).
	Create(ctx context.Context, seq *entity.DocumentSequence) error
	GetByID(ctx context.Context, companyID, id int64) (*entity.DocumentSequence, error)
	GetByIDForUpdate(ctx context.Context, companyID, id int64) (*entity.DocumentSequence, error)
	Update(ctx context.Context, seq *entity.DocumentSequence) error
	ListByCompany(ctx context.Context, companyID int64) ([]*entity.DocumentSequence, error)
}
