package postgres

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/erp-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// wrapWrite traduce 23505 a domain.ErrConflict y envuelve el resto con el contexto op.
func wrapWrite(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", domain.ErrConflict, op)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// noRows indica si el error es pgx.ErrNoRows (las búsquedas devuelven nil, nil).
func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// mustAffect devuelve NotFound cuando un UPDATE no tocó filas de la empresa.
func mustAffect(tag pgconn.CommandTag, what string, id int64) error {
	if tag.RowsAffected() == 0 {
		return domain.NotFound("%s %d", what, id)
	}
	return nil
}
