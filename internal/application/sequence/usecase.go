package sequence

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/ports"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

// UseCase administración de correlativos (listar, crear, editar).
type UseCase struct {
	tx    ports.TxRunner
	repos repository.Repos
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, repos repository.Repos) *UseCase {
	return &UseCase{tx: tx, repos: repos}
}

// List devuelve los correlativos de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID int64) ([]dto.SequenceResponse, error) {
	list, err := uc.repos.Sequences.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SequenceResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toResponse(s))
	}
	return out, nil
}

// Create registra un correlativo. Solo puede existir uno por (empresa, tipo, electrónico).
func (uc *UseCase) Create(ctx context.Context, companyID int64, in dto.CreateSequenceRequest) (*dto.SequenceResponse, error) {
	docType := document.Normalize(in.DocumentType)
	if !document.PolicyFor(docType).Sequenced {
		return nil, domain.Invalid("el tipo %q no admite correlativo", in.DocumentType)
	}
	next := in.NextNumber
	if next <= 0 {
		next = 1
	}
	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	now := time.Now()
	seq := &entity.DocumentSequence{
		CompanyID:    companyID,
		DocumentType: docType,
		IsElectronic: in.IsElectronic,
		Prefix:       in.Prefix,
		Suffix:       in.Suffix,
		NextNumber:   next,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repos.Sequences.Create(ctx, seq); err != nil {
		return nil, err
	}
	out := toResponse(seq)
	return &out, nil
}

// Update modifica prefijo, sufijo, estado o el próximo número. El próximo número solo
// puede avanzar: retroceder reemitiría números ya usados.
func (uc *UseCase) Update(ctx context.Context, companyID, id int64, in dto.UpdateSequenceRequest) (*dto.SequenceResponse, error) {
	var out dto.SequenceResponse
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		seq, err := r.Sequences.GetByIDForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if seq == nil {
			return domain.NotFound("correlativo %d", id)
		}
		if in.NextNumber != nil {
			if *in.NextNumber < seq.NextNumber {
				return domain.Invalid("NextNumber no puede retroceder (actual %d, pedido %d)", seq.NextNumber, *in.NextNumber)
			}
			seq.NextNumber = *in.NextNumber
		}
		if in.Prefix != nil {
			seq.Prefix = *in.Prefix
		}
		if in.Suffix != nil {
			seq.Suffix = *in.Suffix
		}
		if in.IsActive != nil {
			seq.IsActive = *in.IsActive
		}
		seq.UpdatedAt = time.Now()
		if err := r.Sequences.Update(ctx, seq); err != nil {
			return fmt.Errorf("actualizar correlativo: %w", err)
		}
		out = toResponse(seq)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func toResponse(s *entity.DocumentSequence) dto.SequenceResponse {
	return dto.SequenceResponse{
		ID:           s.ID,
		DocumentType: s.DocumentType,
		IsElectronic: s.IsElectronic,
		Prefix:       s.Prefix,
		Suffix:       s.Suffix,
		NextNumber:   s.NextNumber,
		IsActive:     s.IsActive,
		UpdatedAt:    s.UpdatedAt,
	}
}
