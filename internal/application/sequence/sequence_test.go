package sequence_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/erp-api/internal/application/dto"
	"github.com/jhoicas/erp-api/internal/application/sequence"
	"github.com/jhoicas/erp-api/internal/domain"
	"github.com/jhoicas/erp-api/internal/domain/document"
	"github.com/jhoicas/erp-api/internal/domain/entity"
	"github.com/jhoicas/erp-api/internal/domain/repository"
	"github.com/jhoicas/erp-api/internal/infrastructure/memory"
	"github.com/jhoicas/erp-api/pkg/logger"
)

const companyID = int64(9)

func newStore(t *testing.T) (*memory.Store, repository.Repos) {
	t.Helper()
	store := memory.NewStore()
	return store, store.Repos()
}

func addSequence(t *testing.T, repos repository.Repos, docType string, electronic bool, prefix, suffix string, next int64, active bool) *entity.DocumentSequence {
	t.Helper()
	s := &entity.DocumentSequence{
		CompanyID: companyID, DocumentType: docType, IsElectronic: electronic,
		Prefix: prefix, Suffix: suffix, NextNumber: next, IsActive: active,
	}
	require.NoError(t, repos.Sequences.Create(context.Background(), s))
	return s
}

func TestAllocate_FormateaYAvanza(t *testing.T) {
	_, repos := newStore(t)
	ctx := context.Background()
	seq := addSequence(t, repos, document.TypeFactura, true, "F-", "/A", 120, true)

	first, err := sequence.Allocate(ctx, repos.Sequences, companyID, document.TypeFactura, true, time.Now())
	require.NoError(t, err)
	second, err := sequence.Allocate(ctx, repos.Sequences, companyID, document.TypeFactura, true, time.Now())
	require.NoError(t, err)

	assert.Equal(t, "F-120/A", first)
	assert.Equal(t, "F-121/A", second)

	got, err := repos.Sequences.GetByID(ctx, companyID, seq.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(122), got.NextNumber)
}

func TestAllocate_SinCorrelativo(t *testing.T) {
	_, repos := newStore(t)
	ctx := context.Background()
	// Inactivo, o del otro modo (no electrónico), no cuenta.
	addSequence(t, repos, document.TypeBoleta, true, "", "", 1, false)
	addSequence(t, repos, document.TypeFactura, false, "", "", 1, true)

	_, err := sequence.Allocate(ctx, repos.Sequences, companyID, document.TypeBoleta, true, time.Now())
	assert.True(t, errors.Is(err, domain.ErrSequenceNotConfigured))

	_, err = sequence.Allocate(ctx, repos.Sequences, companyID, document.TypeFactura, true, time.Now())
	assert.True(t, errors.Is(err, domain.ErrSequenceNotConfigured))

	_, err = sequence.Allocate(ctx, repos.Sequences, companyID+1, document.TypeFactura, false, time.Now())
	assert.True(t, errors.Is(err, domain.ErrSequenceNotConfigured), "los correlativos son por empresa")
}

func TestNumberer_Politicas(t *testing.T) {
	_, repos := newStore(t)
	ctx := context.Background()
	n := sequence.NewNumberer(logger.Nop())

	number, err := n.Next(ctx, repos.Sequences, companyID, document.TypeBoleta, true, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(number, "BOLETA-"), "número sintético: %s", number)

	_, err = n.Next(ctx, repos.Sequences, companyID, document.TypeGuiaDespacho, true, nil)
	assert.True(t, errors.Is(err, domain.ErrSequenceNotConfigured), "la guía exige correlativo")

	addSequence(t, repos, document.TypeGuiaDespacho, true, "GD-", "", 7, true)
	number, err = n.Next(ctx, repos.Sequences, companyID, document.TypeGuiaDespacho, true, nil)
	require.NoError(t, err)
	assert.Equal(t, "GD-7", number)
}

func TestNumberer_SinteticosMismoMilisegundo(t *testing.T) {
	_, repos := newStore(t)
	ctx := context.Background()
	fixed := time.UnixMilli(1_700_000_000_000)
	n := sequence.NewNumberer(logger.Nop()).WithClock(func() time.Time { return fixed })

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		number, err := n.Next(ctx, repos.Sequences, companyID, document.TypeBoleta, true, nil)
		require.NoError(t, err)
		assert.False(t, seen[number], "número repetido: %s", number)
		seen[number] = true
	}
	assert.True(t, seen["BOLETA-1700000000000"])
	assert.True(t, seen["BOLETA-1700000000019"])
}

func TestNumberer_SinteticoSaltaNumerosEmitidos(t *testing.T) {
	_, repos := newStore(t)
	ctx := context.Background()
	fixed := time.UnixMilli(1_700_000_000_000)
	// Números ya emitidos por otro proceso con el mismo reloj.
	issued := map[string]bool{"BOLETA-1700000000000": true, "BOLETA-1700000000001": true}
	taken := func(_ context.Context, number string) (bool, error) { return issued[number], nil }

	n := sequence.NewNumberer(logger.Nop()).WithClock(func() time.Time { return fixed })
	number, err := n.Next(ctx, repos.Sequences, companyID, document.TypeBoleta, true, taken)
	require.NoError(t, err)
	assert.Equal(t, "BOLETA-1700000000002", number)

	boom := errors.New("sin conexión")
	_, err = n.Next(ctx, repos.Sequences, companyID, document.TypeBoleta, true,
		func(context.Context, string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}

func TestUseCase_Create(t *testing.T) {
	store, repos := newStore(t)
	uc := sequence.NewUseCase(store, repos)
	ctx := context.Background()

	out, err := uc.Create(ctx, companyID, dto.CreateSequenceRequest{DocumentType: "boleta ", IsElectronic: true, Prefix: "B-"})
	require.NoError(t, err)
	assert.Equal(t, document.TypeBoleta, out.DocumentType)
	assert.Equal(t, int64(1), out.NextNumber)
	assert.True(t, out.IsActive)

	_, err = uc.Create(ctx, companyID, dto.CreateSequenceRequest{DocumentType: "BOLETA", IsElectronic: true})
	assert.True(t, errors.Is(err, domain.ErrConflict))

	// El mismo tipo en modo no electrónico es otro correlativo.
	_, err = uc.Create(ctx, companyID, dto.CreateSequenceRequest{DocumentType: "BOLETA", IsElectronic: false, NextNumber: 500})
	require.NoError(t, err)

	_, err = uc.Create(ctx, companyID, dto.CreateSequenceRequest{DocumentType: "REMITO"})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.List(ctx, companyID)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	other, err := uc.List(ctx, companyID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestUseCase_UpdateSoloAvanza(t *testing.T) {
	store, repos := newStore(t)
	uc := sequence.NewUseCase(store, repos)
	ctx := context.Background()
	seq := addSequence(t, repos, document.TypeFactura, true, "F-", "", 50, true)

	back := int64(10)
	_, err := uc.Update(ctx, companyID, seq.ID, dto.UpdateSequenceRequest{NextNumber: &back})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	forward := int64(80)
	prefix := "FE-"
	inactive := false
	out, err := uc.Update(ctx, companyID, seq.ID, dto.UpdateSequenceRequest{NextNumber: &forward, Prefix: &prefix, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, int64(80), out.NextNumber)
	assert.Equal(t, "FE-", out.Prefix)
	assert.False(t, out.IsActive)

	_, err = sequence.Allocate(ctx, repos.Sequences, companyID, document.TypeFactura, true, time.Now())
	assert.True(t, errors.Is(err, domain.ErrSequenceNotConfigured), "un correlativo inactivo no asigna números")

	_, err = uc.Update(ctx, companyID+1, seq.ID, dto.UpdateSequenceRequest{Prefix: &prefix})
	assert.True(t, errors.Is(err, domain.ErrNotFound), "no se edita el correlativo de otra empresa")
}
