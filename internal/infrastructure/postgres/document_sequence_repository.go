package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
)

var _ repository.DocumentSequenceRepository = (*DocumentSequenceRepo)(nil)

// DocumentSequenceRepo correlativos de numeración sobre PostgreSQL.
type DocumentSequenceRepo struct {
	q Querier
}

// NewDocumentSequenceRepository construye el repositorio.
func NewDocumentSequenceRepository(q Querier) *DocumentSequenceRepo {
	return &DocumentSequenceRepo{q: q}
}

const sequenceColumns = `id, company_id, document_type, is_electronic, prefix, suffix, next_number, is_active, created_at, updated_at`

func scanSequence(row scanner) (*entity.DocumentSequence, error) {
	var s entity.DocumentSequence
	err := row.Scan(&s.ID, &s.CompanyID, &s.DocumentType, &s.IsElectronic, &s.Prefix, &s.Suffix,
		&s.NextNumber, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetActiveForUpdate es la consulta crítica de la numeración: bloquea la fila para que
// dos transacciones concurrentes nunca lean el mismo NextNumber. nil, nil si no hay correlativo activo.
func (r *DocumentSequenceRepo) GetActiveForUpdate(ctx context.Context, companyID int64, documentType string, electronic bool) (*entity.DocumentSequence, error) {
	query := `SELECT ` + sequenceColumns + `
		FROM document_sequences
		WHERE company_id = $1 AND document_type = $2 AND is_electronic = $3 AND is_active
		FOR UPDATE`
	s, err := scanSequence(r.q.QueryRow(ctx, query, companyID, documentType, electronic))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active document_sequence: %w", err)
	}
	return s, nil
}

func (r *DocumentSequenceRepo) Advance(ctx context.Context, s *entity.DocumentSequence) error {
	query := `UPDATE document_sequences SET next_number = $3, updated_at = now() WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.NextNumber)
	if err != nil {
		return fmt.Errorf("advance document_sequence: %w", err)
	}
	return mustAffect(tag, "correlativo", s.ID)
}

func (r *DocumentSequenceRepo) Create(ctx context.Context, s *entity.DocumentSequence) error {
	query := `
		INSERT INTO document_sequences (company_id, document_type, is_electronic, prefix, suffix, next_number,
			is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		s.CompanyID, s.DocumentType, s.IsElectronic, s.Prefix, s.Suffix, s.NextNumber, s.IsActive, s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID)
	return wrapWrite("insert document_sequence", err)
}

func (r *DocumentSequenceRepo) GetByID(ctx context.Context, companyID, id int64) (*entity.DocumentSequence, error) {
	return r.get(ctx, `SELECT `+sequenceColumns+` FROM document_sequences WHERE company_id = $1 AND id = $2`, companyID, id)
}

func (r *DocumentSequenceRepo) GetByIDForUpdate(ctx context.Context, companyID, id int64) (*entity.DocumentSequence, error) {
	return r.get(ctx, `SELECT `+sequenceColumns+` FROM document_sequences WHERE company_id = $1 AND id = $2 FOR UPDATE`, companyID, id)
}

func (r *DocumentSequenceRepo) get(ctx context.Context, query string, companyID, id int64) (*entity.DocumentSequence, error) {
	s, err := scanSequence(r.q.QueryRow(ctx, query, companyID, id))
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document_sequence by id: %w", err)
	}
	return s, nil
}

func (r *DocumentSequenceRepo) Update(ctx context.Context, s *entity.DocumentSequence) error {
	query := `
		UPDATE document_sequences
		SET prefix = $3, suffix = $4, next_number = $5, is_active = $6, updated_at = $7
		WHERE company_id = $1 AND id = $2`
	tag, err := r.q.Exec(ctx, query, s.CompanyID, s.ID, s.Prefix, s.Suffix, s.NextNumber, s.IsActive, s.UpdatedAt)
	if err != nil {
		return wrapWrite("update document_sequence", err)
	}
	return mustAffect(tag, "correlativo", s.ID)
}

func (r *DocumentSequenceRepo) ListByCompany(ctx context.Context, companyID int64) ([]*entity.DocumentSequence, error) {
	query := `SELECT ` + sequenceColumns + ` FROM document_sequences WHERE company_id = $1 ORDER BY document_type, is_electronic`
	rows, err := r.q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list document_sequences: %w", err)
	}
	defer rows.Close()
	var list []*entity.DocumentSequence
	for rows.Next() {
		s, err := scanSequence(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document_sequence: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}
