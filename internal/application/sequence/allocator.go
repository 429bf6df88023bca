// Package sequence asigna números de documento desde los correlativos de cada empresa.
package sequence

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/pkg/logger"
)

// Allocate toma el siguiente número del correlativo activo de (empresa, tipo, electrónico).
// Debe ejecutarse dentro de la transacción del llamador: la fila queda bloqueada hasta el
// Commit, así dos documentos nunca reciben el mismo número y no quedan huecos.
func Allocate(ctx context.Context, seqs repository.DocumentSequenceRepository, companyID int64, docType string, electronic bool, now time.Time) (string, error) {
	seq, err := seqs.GetActiveForUpdate(ctx, companyID, docType, electronic)
	if err != nil {
		return "", fmt.Errorf("bloquear correlativo: %w", err)
	}
	if seq == nil {
		return "", fmt.Errorf("%w: %s (electrónico=%t)", domain.ErrSequenceNotConfigured, docType, electronic)
	}
	number := seq.Prefix + strconv.FormatInt(seq.NextNumber, 10) + seq.Suffix
	seq.NextNumber++
	seq.UpdatedAt = now
	if err := seqs.Advance(ctx, seq); err != nil {
		return "", fmt.Errorf("avanzar correlativo: %w", err)
	}
	return number, nil
}

// NumberTaken indica si un número ya fue emitido dentro del ámbito del documento.
type NumberTaken func(ctx context.Context, number string) (bool, error)

// maxSyntheticAttempts acota la búsqueda de un número sintético libre.
const maxSyntheticAttempts = 1000

// Numberer aplica la política de numeración de cada tipo de documento.
type Numberer struct {
	log   *logger.Logger
	clock func() time.Time

	mu       sync.Mutex
	lastMill int64
}

// NewNumberer construye el numerador.
func NewNumberer(log *logger.Logger) *Numberer {
	return &Numberer{log: log, clock: time.Now}
}

// WithClock reemplaza el reloj usado para los números sintéticos.
func (n *Numberer) WithClock(clock func() time.Time) *Numberer {
	n.clock = clock
	return n
}

// Next devuelve el número del documento. Con correlativo configurado lo consume; sin él,
// si la política del tipo lo permite, usa un número sintético {TIPO}-{epochMillis} y lo
// registra como advertencia. Si no lo permite retorna domain.ErrSequenceNotConfigured.
// taken (opcional) se consulta dentro de la transacción para no repetir un sintético.
func (n *Numberer) Next(ctx context.Context, seqs repository.DocumentSequenceRepository, companyID int64, docType string, electronic bool, taken NumberTaken) (string, error) {
	now := n.clock()
	policy := document.PolicyFor(docType)
	if !policy.Sequenced {
		return n.synthetic(ctx, docType, now, taken)
	}
	number, err := Allocate(ctx, seqs, companyID, docType, electronic, now)
	if err == nil {
		return number, nil
	}
	if !errors.Is(err, domain.ErrSequenceNotConfigured) || !policy.AllowUnsequenced {
		return "", err
	}
	number, err = n.synthetic(ctx, docType, now, taken)
	if err != nil {
		return "", err
	}
	n.log.Warn().
		Int64("company_id", companyID).
		Str("document_type", docType).
		Bool("electronic", electronic).
		Str("document_number", number).
		Msg("sin correlativo activo; se usa número sintético")
	return number, nil
}

// synthetic genera {TIPO}-{epochMillis} con milisegundos estrictamente crecientes en el
// proceso, avanzando mientras el número ya exista en el almacén.
func (n *Numberer) synthetic(ctx context.Context, docType string, now time.Time, taken NumberTaken) (string, error) {
	millis := n.reserveMillis(now.UnixMilli())
	for attempt := 0; attempt < maxSyntheticAttempts; attempt++ {
		number := document.SyntheticNumber(docType, time.UnixMilli(millis))
		if taken == nil {
			return number, nil
		}
		used, err := taken(ctx, number)
		if err != nil {
			return "", fmt.Errorf("verificar número sintético: %w", err)
		}
		if !used {
			return number, nil
		}
		millis = n.reserveMillis(millis + 1)
	}
	return "", fmt.Errorf("sin número sintético libre para %s", docType)
}

func (n *Numberer) reserveMillis(candidate int64) int64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	if candidate <= n.lastMill {
		candidate = n.lastMill + 1
	}
	n.lastMill = candidate
	return candidate
}
