package fletes_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/fletes"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/testutil"
)

type fixture struct {
	fletes    *testutil.FleteRepo
	servicios *testutil.ServicioRepo
	uc        *fletes.FleteUseCase
	servUC    *fletes.ServicioUseCase
	now       time.Time
}

func newFixture() *fixture {
	fx := &fixture{
		fletes:    testutil.NewFleteRepo(),
		servicios: testutil.NewServicioRepo(),
		now:       time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
	}
	gen := sequence.NewGenerator(testutil.NewSequenceRepo())
	fx.uc = fletes.NewFleteUseCase(fx.fletes, fx.servicios, gen).WithClock(func() time.Time { return fx.now })
	fx.servUC = fletes.NewServicioUseCase(fx.servicios, fx.fletes, fx.uc)
	return fx
}

func (fx *fixture) servicio(estado entity.EstadoServicio) *entity.Servicio {
	s := &entity.Servicio{
		ID:             uuid.NewString(),
		CodigoServicio: "SRV-001",
		Estado:         estado,
		PuedeEditar:    true,
		PuedeEliminar:  true,
	}
	fx.servicios.Put(s)
	return s
}

func TestCreate(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)

	out, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)
	assert.Equal(t, "FLT-0000000001", out.CodigoFlete)
	assert.Equal(t, "PENDIENTE", out.EstadoFlete)
	assert.True(t, out.MontoFlete.IsZero())
	assert.False(t, out.PerteneceAFactura)
	assert.Nil(t, out.FacturaID)
}

func TestCreate_ServicioNotFound(t *testing.T) {
	fx := newFixture()
	_, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: uuid.NewString()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: "no-es-uuid"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetMonto(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)
	f, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)

	out, err := fx.uc.SetMonto(context.Background(), f.ID, decimal.NewFromInt(350))
	require.NoError(t, err)
	assert.Equal(t, "VALORIZADO", out.EstadoFlete)
	assert.True(t, out.MontoFlete.Equal(decimal.NewFromInt(350)))

	// volver a cero no regresa a PENDIENTE
	out, err = fx.uc.SetMonto(context.Background(), f.ID, decimal.Zero)
	require.NoError(t, err)
	assert.Equal(t, "VALORIZADO", out.EstadoFlete)

	_, err = fx.uc.SetMonto(context.Background(), f.ID, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSetMonto_BoundIsFrozen(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)
	f, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)
	ok, err := fx.fletes.Bind(context.Background(), f.ID, uuid.NewString(), "FAC-0000000001")
	require.NoError(t, err)
	require.True(t, ok)

	_, err = fx.uc.SetMonto(context.Background(), f.ID, decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrIllegalState)
}

func TestDelete_CancelsServicio(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)
	f, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)

	require.NoError(t, fx.uc.Delete(context.Background(), f.ID))

	_, err = fx.uc.Get(context.Background(), f.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := fx.servicios.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoServicioCancelado, got.Estado)
	assert.False(t, got.PuedeEditar)
	assert.False(t, got.PuedeEliminar)
}

func TestDelete_BoundRejected(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)
	f, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)
	_, err = fx.fletes.Bind(context.Background(), f.ID, uuid.NewString(), "FAC-0000000002")
	require.NoError(t, err)

	err = fx.uc.Delete(context.Background(), f.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalState)

	got, err := fx.servicios.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoServicioCompletado, got.Estado)
}

func TestDelete_DanglingServicio(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCompletado)
	f, err := fx.uc.Create(context.Background(), dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)
	fx.servicios.Remove(s.ID)

	assert.NoError(t, fx.uc.Delete(context.Background(), f.ID))
}

func TestList_Filters(t *testing.T) {
	fx := newFixture()
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		s := fx.servicio(entity.EstadoServicioCompletado)
		f, err := fx.uc.Create(ctx, dto.CreateFleteRequest{ServicioID: s.ID})
		require.NoError(t, err)
		_, err = fx.uc.SetMonto(ctx, f.ID, decimal.NewFromInt(int64(100*(i+1))))
		require.NoError(t, err)
	}
	s := fx.servicio(entity.EstadoServicioCompletado)
	_, err := fx.uc.Create(ctx, dto.CreateFleteRequest{ServicioID: s.ID})
	require.NoError(t, err)

	out, err := fx.uc.List(ctx, dto.FleteListRequest{EstadoFlete: "VALORIZADO", MontoMin: "150"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)

	out, err = fx.uc.List(ctx, dto.FleteListRequest{}, dto.PageRequest{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.Page.Total)
	assert.Len(t, out.Items, 2)

	_, err = fx.uc.List(ctx, dto.FleteListRequest{PerteneceAFactura: "quizas"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCompletarServicio(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioEnCurso)

	out, err := fx.servUC.Completar(context.Background(), s.ID)
	require.NoError(t, err)
	assert.True(t, out.FleteCreado)
	require.NotNil(t, out.Flete)
	assert.Equal(t, "PENDIENTE", out.Flete.EstadoFlete)

	got, err := fx.servicios.GetByID(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.EstadoServicioCompletado, got.Estado)

	// idempotente: no crea un segundo flete
	out, err = fx.servUC.Completar(context.Background(), s.ID)
	require.NoError(t, err)
	assert.False(t, out.FleteCreado)
}

func TestCompletarServicio_Cancelado(t *testing.T) {
	fx := newFixture()
	s := fx.servicio(entity.EstadoServicioCancelado)
	_, err := fx.servUC.Completar(context.Background(), s.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalState)
}
