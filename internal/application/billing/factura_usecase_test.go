package billing_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/testutil"
)

func TestCreate_Borrador(t *testing.T) {
	fx := newFixture(t)
	a := fx.flete("Alicorp SAA", "ABC-123", 600)
	b := fx.flete("Alicorp SAA", "DEF-456", 400)

	out := fx.draft(a, b)
	assert.Equal(t, "FAC-0000000001", out.CodigoFactura)
	assert.Equal(t, "Borrador", out.Estado)
	assert.True(t, out.EsBorrador)
	assert.Nil(t, out.NumeroFactura)
	assert.Equal(t, "PEN", out.Moneda)
	assert.True(t, out.MontoTotal.Equal(dec("1000")), "monto_total cero toma la suma de los fletes")
	require.Len(t, out.Fletes, 2)
	assert.Equal(t, a.ID, out.Fletes[0].FleteID)

	// el borrador no vincula fletes
	assert.False(t, fx.fleteActual(a.ID).PerteneceAFactura)
}

func TestCreate_Validation(t *testing.T) {
	fx := newFixture(t)
	a := fx.flete("Alicorp SAA", "ABC-123", 600)
	ctx := context.Background()

	cases := map[string]dto.CreateFacturaRequest{
		"sin fletes":     {},
		"id mal formado": {Fletes: []string{"123"}},
		"id repetido":    {Fletes: []string{a.ID, a.ID}},
		"no existe":      {Fletes: []string{uuid.NewString()}},
		"monto negativo": {Fletes: []string{a.ID}, MontoTotal: dec("-1")},
		"moneda":         {Fletes: []string{a.ID}, Moneda: "SOLES"},
	}
	for name, in := range cases {
		_, err := fx.facturaUC.Create(ctx, in)
		assert.ErrorIs(t, err, domain.ErrValidation, name)
	}

	out, err := fx.facturaUC.Create(ctx, dto.CreateFacturaRequest{Fletes: []string{a.ID}, MontoTotal: dec("750.5"), Moneda: "usd"})
	require.NoError(t, err)
	assert.Equal(t, "USD", out.Moneda)
	assert.True(t, out.MontoTotal.Equal(dec("750.50")))
}

func TestScenario_DraftIssuePay(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.flete("Alicorp SAA", "ABC-123", 600)
	b := fx.flete("Gloria SA", "DEF-456", 400)

	draft := fx.draft(a, b)
	issued := fx.issue(draft.ID, "F001-123")
	assert.Equal(t, "Emitida", issued.Estado)
	assert.False(t, issued.EsBorrador)
	require.NotNil(t, issued.NumeroFactura)
	assert.Equal(t, "F001-123", *issued.NumeroFactura)
	assert.Equal(t, "2026-03-10", *issued.FechaEmision)
	assert.Equal(t, "2026-04-09", *issued.FechaVencimiento)

	for _, f := range []*entity.Flete{a, b} {
		cur := fx.fleteActual(f.ID)
		assert.True(t, cur.PerteneceAFactura)
		assert.Equal(t, draft.ID, *cur.FacturaID)
		assert.Equal(t, draft.CodigoFactura, *cur.CodigoFactura)
	}

	g := fx.gestionDe(draft.CodigoFactura)
	assert.Equal(t, "GES-0000000001", g.CodigoGestion)
	assert.True(t, g.MontoDetraccion.Equal(dec("40.00")))
	assert.True(t, g.MontoNeto.Equal(dec("960.00")))
	assert.Equal(t, entity.EstadoDetraccionPendiente, g.EstadoDetraccion)
	assert.Equal(t, entity.EstadoPagoPendiente, g.EstadoPagoNeto)
	assert.Equal(t, entity.PrioridadMedia, g.Prioridad)
	require.NotNil(t, g.FechaProbablePago)
	assert.Equal(t, "2026-04-09", g.FechaProbablePago.Format("2006-01-02"))

	out, err := fx.gestionUC.PostPartialPayment(ctx, g.ID, dto.PagoParcialRequest{MontoPago: "960.00", NroOperacion: "OP-1"})
	require.NoError(t, err)
	assert.Equal(t, "Pagado", out.EstadoPagoNeto)
	assert.True(t, out.SaldoPendiente.IsZero())
	require.Len(t, out.Pagos, 1)
	assert.Equal(t, "OP-1", out.Pagos[0].NroOperacion)

	f := fx.facturaActual(draft.ID)
	assert.Equal(t, entity.EstadoFacturaPagada, f.Estado)
	require.NotNil(t, f.FechaPago)
}

func TestScenario_LowValueInvoice(t *testing.T) {
	fx := newFixture(t)
	draft := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 200))
	fx.issue(draft.ID, "F001-200")

	g := fx.gestionDe(draft.CodigoFactura)
	assert.Equal(t, entity.EstadoDetraccionNoAplica, g.EstadoDetraccion)
	assert.True(t, g.MontoDetraccion.IsZero())
	assert.True(t, g.TasaDetraccion.IsZero())
	assert.True(t, g.MontoNeto.Equal(dec("200.00")))
}

func TestScenario_DoubleBillingRejected(t *testing.T) {
	fx := newFixture(t)
	x := fx.flete("Alicorp SAA", "ABC-123", 500)
	a := fx.draft(x)
	fx.issue(a.ID, "F001-001")

	_, err := fx.facturaUC.Create(context.Background(), dto.CreateFacturaRequest{Fletes: []string{x.ID}})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := fx.facturaUC.List(context.Background(), dto.FacturaListRequest{}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Page.Total, "no se escribió ninguna factura nueva")
}

func TestIssue_CompetingDraftsBindOnce(t *testing.T) {
	fx := newFixture(t)
	x := fx.flete("Alicorp SAA", "ABC-123", 500)
	a := fx.draft(x)
	b := fx.draft(x)

	fx.issue(a.ID, "F001-001")
	_, err := fx.facturaUC.Issue(context.Background(), b.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-002"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	cur := fx.fleteActual(x.ID)
	assert.Equal(t, a.ID, *cur.FacturaID)
	assert.Equal(t, entity.EstadoFacturaBorrador, fx.facturaActual(b.ID).Estado)
}

func TestIssue_Rules(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 500))
	b := fx.draft(fx.flete("Gloria SA", "DEF-456", 500))
	fx.issue(a.ID, "F001-001")

	_, err := fx.facturaUC.Issue(ctx, a.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-009"})
	assert.ErrorIs(t, err, domain.ErrIllegalState, "solo desde Borrador")

	_, err = fx.facturaUC.Issue(ctx, b.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-001"})
	assert.ErrorIs(t, err, domain.ErrValidation, "número repetido")

	_, err = fx.facturaUC.Issue(ctx, b.ID, dto.EmitirFacturaRequest{NumeroFactura: "  "})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = fx.facturaUC.Issue(ctx, b.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-002", FechaEmision: "2026-03-10", FechaVencimiento: "2026-03-01"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = fx.facturaUC.Issue(ctx, uuid.NewString(), dto.EmitirFacturaRequest{NumeroFactura: "F001-003"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	out, err := fx.facturaUC.Issue(ctx, b.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-002", FechaEmision: "2026-02-01", FechaVencimiento: "2026-02-15"})
	require.NoError(t, err)
	assert.Equal(t, "2026-02-01", *out.FechaEmision)
	assert.Equal(t, "2026-02-15", *out.FechaVencimiento)
}

func TestIssue_SnapshotIsFrozen(t *testing.T) {
	fx := newFixture(t)
	a := fx.flete("Alicorp SAA", "ABC-123", 500)
	draft := fx.draft(a)
	fx.issue(draft.ID, "F001-010")

	g := fx.gestionDe(draft.CodigoFactura)
	require.Len(t, g.Snapshot.Fletes, 1)
	sv := g.Snapshot.Fletes[0].Servicio
	assert.Equal(t, "Alicorp SAA", sv.Cliente)
	assert.Equal(t, "ABC-123", sv.Placa)
	assert.Equal(t, "Juan Pérez", sv.Conductor)
	assert.Equal(t, "Carlos Díaz", sv.Auxiliar)
	assert.Equal(t, "RR-001", sv.GIARR)

	// editar y luego borrar el servicio no altera el snapshot
	s, err := fx.servicios.GetByID(context.Background(), a.ServicioID)
	require.NoError(t, err)
	s.Cliente.RazonSocial = "Otro Cliente"
	fx.servicios.Put(s)
	fx.servicios.Remove(s.ID)

	again := fx.gestionDe(draft.CodigoFactura)
	assert.Equal(t, g.Snapshot, again.Snapshot)
}

func TestIssue_SnapshotSkipsDanglingServicio(t *testing.T) {
	fx := newFixture(t)
	a := fx.flete("Alicorp SAA", "ABC-123", 300)
	b := fx.flete("Gloria SA", "DEF-456", 300)
	draft := fx.draft(a, b)
	fx.servicios.Remove(b.ServicioID)

	fx.issue(draft.ID, "F001-011")
	g := fx.gestionDe(draft.CodigoFactura)
	require.Len(t, g.Snapshot.Fletes, 1)
	assert.Equal(t, a.ID, g.Snapshot.Fletes[0].FleteID)
	// el monto facturado no cambia
	assert.True(t, g.MontoTotal.Equal(dec("600")))
}

func TestIssue_CompensatesWithoutTransaction(t *testing.T) {
	fx := newFixture(t)
	a := fx.flete("Alicorp SAA", "ABC-123", 500)
	draft := fx.draft(a)

	fx.facturas.UpdateErr = errors.New("write concern timeout")
	_, err := fx.facturaUC.Issue(context.Background(), draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-020"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)

	assert.False(t, fx.fleteActual(a.ID).PerteneceAFactura, "los fletes vinculados en el intento se liberan")
	_, err = fx.gestionUC.GetByCodigoFactura(context.Background(), draft.CodigoFactura)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	fx.facturas.UpdateErr = nil
	out := fx.issue(draft.ID, "F001-020")
	assert.Equal(t, "Emitida", out.Estado)
}

func TestIssue_ReusesGestionFromIncompleteAttempt(t *testing.T) {
	fx := newFixture(t)
	fx.tx.Tx = true // sin compensación: simula una emisión que dejó la gestión creada
	a := fx.flete("Alicorp SAA", "ABC-123", 500)
	draft := fx.draft(a)

	fx.facturas.UpdateErr = errors.New("primary stepped down")
	_, err := fx.facturaUC.Issue(context.Background(), draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-030"})
	require.Error(t, err)
	first := fx.gestionDe(draft.CodigoFactura)

	fx.facturas.UpdateErr = nil
	fx.issue(draft.ID, "F001-030")
	assert.Equal(t, first.ID, fx.gestionDe(draft.CodigoFactura).ID)
}

// gestionesConPausa ejecuta enMedio justo después de leer la gestión por código de factura,
// en el punto donde una emisión ya leyó todo y todavía no escribió.
type gestionesConPausa struct {
	*testutil.GestionRepo
	enMedio func()
}

func (r *gestionesConPausa) GetByCodigoFactura(ctx context.Context, codigo string) (*entity.Gestion, error) {
	g, err := r.GestionRepo.GetByCodigoFactura(ctx, codigo)
	if fn := r.enMedio; fn != nil {
		r.enMedio = nil
		fn()
	}
	return g, err
}

func TestIssue_ConcurrentIssueOfSameDraft(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.flete("Alicorp SAA", "ABC-111", 500)
	b := fx.flete("Alicorp SAA", "ABC-222", 500)
	draft := fx.draft(a, b)

	gestiones := &gestionesConPausa{GestionRepo: fx.gestiones}
	uc := billing.NewFacturaUseCase(fx.facturas, fx.fletes, gestiones, fx.tx,
		sequence.NewGenerator(testutil.NewSequenceRepo()), billing.NewSnapshotBuilder(fx.fletes, fx.servicios),
		fx.gestionUC, fx.exporter, billing.DefaultConfig()).
		WithClock(func() time.Time { return fx.now })

	var rivalErr error
	gestiones.enMedio = func() {
		_, rivalErr = uc.Issue(ctx, draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-2"})
	}
	out, err := uc.Issue(ctx, draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-1"})
	require.NoError(t, err)
	require.Error(t, rivalErr)
	assert.ErrorIs(t, rivalErr, domain.ErrIllegalState)
	assert.Contains(t, rivalErr.Error(), "emisión en curso")

	require.NotNil(t, out.NumeroFactura)
	assert.Equal(t, "F001-1", *out.NumeroFactura)
	for _, id := range []string{a.ID, b.ID} {
		cur := fx.fleteActual(id)
		assert.True(t, cur.PerteneceAFactura, cur.CodigoFlete)
		assert.Equal(t, draft.ID, *cur.FacturaID)
	}
	assert.False(t, fx.facturas.EnEmision(draft.ID))

	// los fletes siguen tomados: otra factura no puede incluirlos
	_, err = fx.facturaUC.Create(ctx, dto.CreateFacturaRequest{Fletes: []string{a.ID, b.ID}})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestIssue_ClaimReleasedAfterFailure(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	draft := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 500))

	_, err := fx.facturaUC.Issue(ctx, draft.ID, dto.EmitirFacturaRequest{NumeroFactura: " "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, fx.facturas.EnEmision(draft.ID))

	// una marca abandonada bloquea hasta que vence
	ok, err := fx.facturas.ClaimEmision(ctx, draft.ID, fx.now, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)
	_, err = fx.facturaUC.Issue(ctx, draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-040"})
	assert.ErrorIs(t, err, domain.ErrIllegalState)

	fx.now = fx.now.Add(10 * time.Minute)
	out := fx.issue(draft.ID, "F001-040")
	assert.Equal(t, "Emitida", out.Estado)
}

func TestIssue_CompensationKeepsPreviousBindings(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.flete("Alicorp SAA", "ABC-123", 500)
	b := fx.flete("Alicorp SAA", "DEF-456", 500)
	draft := fx.draft(a, b)

	// un intento anterior alcanzó a vincular a
	ok, err := fx.fletes.Bind(ctx, a.ID, draft.ID, draft.CodigoFactura)
	require.NoError(t, err)
	require.True(t, ok)

	fx.facturas.UpdateErr = errors.New("write concern timeout")
	_, err = fx.facturaUC.Issue(ctx, draft.ID, dto.EmitirFacturaRequest{NumeroFactura: "F001-050"})
	require.Error(t, err)

	assert.True(t, fx.fleteActual(a.ID).PerteneceAFactura, "no lo vinculó este intento")
	assert.False(t, fx.fleteActual(b.ID).PerteneceAFactura)
}

func TestScenario_DeleteReleasesItems(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	c1, c2, c3 := fx.flete("A", "P1", 100), fx.flete("A", "P2", 100), fx.flete("A", "P3", 100)
	c := fx.draft(c1, c2, c3)
	require.NoError(t, fx.facturaUC.Delete(ctx, c.ID))
	for _, f := range []*entity.Flete{c1, c2, c3} {
		cur := fx.fleteActual(f.ID)
		assert.False(t, cur.PerteneceAFactura)
		assert.Equal(t, entity.EstadoFleteValorizado, cur.EstadoFlete)
	}

	d1, d2 := fx.flete("B", "P4", 300), fx.flete("B", "P5", 300)
	d := fx.draft(d1, d2)
	fx.issue(d.ID, "F001-040")
	require.NoError(t, fx.facturaUC.Delete(ctx, d.ID))
	for _, f := range []*entity.Flete{d1, d2} {
		cur := fx.fleteActual(f.ID)
		assert.False(t, cur.PerteneceAFactura)
		assert.Nil(t, cur.FacturaID)
		assert.Nil(t, cur.CodigoFactura)
	}
	_, err := fx.facturaUC.Get(ctx, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = fx.gestionUC.GetByCodigoFactura(ctx, d.CodigoFactura)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete_WithPaymentsRejected(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.flete("Alicorp SAA", "ABC-123", 500)
	draft := fx.draft(a)
	fx.issue(draft.ID, "F001-050")
	g := fx.gestionDe(draft.CodigoFactura)
	_, err := fx.gestionUC.PostPartialPayment(ctx, g.ID, dto.PagoParcialRequest{MontoPago: "100"})
	require.NoError(t, err)

	err = fx.facturaUC.Delete(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalState)
	assert.True(t, fx.fleteActual(a.ID).PerteneceAFactura)
}

func TestMarkPaid(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	draft := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 1000))

	_, err := fx.facturaUC.MarkPaid(ctx, draft.ID, dto.MarcarPagadaRequest{})
	assert.ErrorIs(t, err, domain.ErrIllegalState, "un borrador no puede pagarse")

	fx.issue(draft.ID, "F001-060")
	out, err := fx.facturaUC.MarkPaid(ctx, draft.ID, dto.MarcarPagadaRequest{FechaPago: "2026-03-15"})
	require.NoError(t, err)
	assert.Equal(t, "Pagada", out.Estado)
	assert.Equal(t, "2026-03-15", *out.FechaPago)

	g := fx.gestionDe(draft.CodigoFactura)
	assert.Equal(t, entity.EstadoPagoPagado, g.EstadoPagoNeto)
	assert.True(t, g.MontoPagadoAcumulado.Equal(g.MontoNeto))

	_, err = fx.facturaUC.MarkPaid(ctx, draft.ID, dto.MarcarPagadaRequest{})
	assert.ErrorIs(t, err, domain.ErrIllegalState, "Pagada es terminal")
}

func TestList_Filters(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	a := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 500))
	b := fx.draft(fx.flete("Gloria SA", "DEF-456", 1500))
	fx.draft(fx.flete("Gloria SA", "GHI-789", 50))
	fx.issue(a.ID, "F001-070")
	fx.issue(b.ID, "F001-071")

	out, err := fx.facturaUC.List(ctx, dto.FacturaListRequest{Cliente: "gloria"}, dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.Page.Total)
	assert.Equal(t, b.ID, out.Items[0].ID)

	out, err = fx.facturaUC.List(ctx, dto.FacturaListRequest{Cliente: "nadie"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, out.Page.Total)

	out, err = fx.facturaUC.List(ctx, dto.FacturaListRequest{Periodo: "hoy"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Page.Total)

	out, err = fx.facturaUC.List(ctx, dto.FacturaListRequest{EsBorrador: "true"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Page.Total)

	out, err = fx.facturaUC.List(ctx, dto.FacturaListRequest{MontoMin: "400", MontoMax: "600"}, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.Page.Total)

	_, err = fx.facturaUC.List(ctx, dto.FacturaListRequest{Periodo: "hoy", FechaEmisionDesde: "2026-01-01"}, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)

	got, err := fx.facturaUC.GetByNumero(ctx, "F001-071")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
}

func TestExport(t *testing.T) {
	fx := newFixture(t)
	a := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 500))
	fx.issue(a.ID, "F001-080")

	data, name, err := fx.facturaUC.Export(context.Background(), dto.FacturaListRequest{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	assert.Equal(t, "facturas_20260310_140000.xlsx", name)
	assert.Equal(t, "Facturas", fx.exporter.sheet)
	require.Len(t, fx.exporter.rows, 1)
	assert.Equal(t, "F001-080", fx.exporter.rows[0][1])
}

func TestPDF(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()
	draft := fx.draft(fx.flete("Alicorp SAA", "ABC-123", 500))

	_, _, err := fx.pdfUC.DownloadFacturaPDF(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrIllegalState)

	fx.issue(draft.ID, "F001/090")
	data, name, err := fx.pdfUC.DownloadFacturaPDF(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	assert.Equal(t, "factura_F001-090.pdf", name)
	require.NotNil(t, fx.pdf.snapshot)
	assert.Equal(t, "F001/090", fx.pdf.snapshot.NumeroFactura)
	assert.NotNil(t, fx.pdf.gestion)
}
