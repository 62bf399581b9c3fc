package billing_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/testutil"
)

type stubExporter struct {
	sheet   string
	headers []string
	rows    [][]any
}

func (s *stubExporter) Export(sheet string, headers []string, rows [][]any) ([]byte, error) {
	s.sheet, s.headers, s.rows = sheet, headers, rows
	return []byte("xlsx"), nil
}

type stubPDF struct {
	snapshot *entity.FacturaSnapshot
	gestion  *entity.Gestion
}

func (s *stubPDF) GenerateFacturaPDF(_ context.Context, _ *entity.Factura, snap *entity.FacturaSnapshot, g *entity.Gestion) ([]byte, error) {
	s.snapshot, s.gestion = snap, g
	return []byte("%PDF"), nil
}

type fixture struct {
	t         *testing.T
	now       time.Time
	fletes    *testutil.FleteRepo
	facturas  *testutil.FacturaRepo
	gestiones *testutil.GestionRepo
	servicios *testutil.ServicioRepo
	tx        *testutil.TxRunner
	exporter  *stubExporter
	pdf       *stubPDF
	facturaUC *billing.FacturaUseCase
	gestionUC *billing.GestionUseCase
	pdfUC     *billing.PDFUseCase
}

func newFixture(t *testing.T) *fixture {
	fx := &fixture{
		t:         t,
		now:       time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
		fletes:    testutil.NewFleteRepo(),
		facturas:  testutil.NewFacturaRepo(),
		gestiones: testutil.NewGestionRepo(),
		servicios: testutil.NewServicioRepo(),
		tx:        &testutil.TxRunner{},
		exporter:  &stubExporter{},
		pdf:       &stubPDF{},
	}
	clock := func() time.Time { return fx.now }
	codes := sequence.NewGenerator(testutil.NewSequenceRepo())
	snaps := billing.NewSnapshotBuilder(fx.fletes, fx.servicios)
	fx.gestionUC = billing.NewGestionUseCase(fx.gestiones, fx.facturas, fx.fletes, fx.tx, codes, snaps, fx.exporter, detraccion.PoliticaPorDefecto()).
		WithClock(clock)
	fx.facturaUC = billing.NewFacturaUseCase(fx.facturas, fx.fletes, fx.gestiones, fx.tx, codes, snaps, fx.gestionUC, fx.exporter, billing.DefaultConfig()).
		WithClock(clock)
	fx.pdfUC = billing.NewPDFUseCase(fx.facturas, fx.gestiones, snaps, fx.pdf)
	return fx
}

// flete crea un servicio del cliente dado y su flete valorizado por monto.
func (fx *fixture) flete(cliente, placa string, monto int64) *entity.Flete {
	fx.t.Helper()
	fecha := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := &entity.Servicio{
		ID:             uuid.NewString(),
		CodigoServicio: "SRV-" + placa,
		Cliente:        entity.ClienteRef{RazonSocial: cliente, RUC: "20100000001"},
		Cuenta:         entity.CuentaRef{Nombre: "Principal"},
		Proveedor:      entity.ProveedorRef{RazonSocial: "Transportes Andinos SAC"},
		Flota:          entity.FlotaRef{Placa: placa},
		Conductor:      []entity.PersonaRef{{Nombre: "Juan Pérez"}, {Nombre: "Luis Rojas"}},
		Auxiliar:       []entity.PersonaRef{{Nombre: "Carlos Díaz"}},
		M3:             decimal.NewFromInt(30),
		TN:             decimal.NewFromInt(12),
		TipoServicio:   "Distribución",
		Modalidad:      "Dedicado",
		Zona:           "Lima Norte",
		FechaServicio:  &fecha,
		GIARR:          "RR-001",
		GIART:          "RT-001",
		Origen:         "Callao",
		Destino:        "Huacho",
		Estado:         entity.EstadoServicioCompletado,
	}
	fx.servicios.Put(s)
	f := &entity.Flete{
		ID:            uuid.NewString(),
		CodigoFlete:   "FLT-" + placa,
		ServicioID:    s.ID,
		EstadoFlete:   entity.EstadoFleteValorizado,
		MontoFlete:    decimal.NewFromInt(monto),
		FechaCreacion: fx.now,
	}
	require.NoError(fx.t, fx.fletes.Create(context.Background(), f))
	return f
}

func (fx *fixture) draft(fletes ...*entity.Flete) *dto.FacturaResponse {
	fx.t.Helper()
	ids := make([]string, 0, len(fletes))
	for _, f := range fletes {
		ids = append(ids, f.ID)
	}
	out, err := fx.facturaUC.Create(context.Background(), dto.CreateFacturaRequest{Fletes: ids})
	require.NoError(fx.t, err)
	return out
}

func (fx *fixture) issue(facturaID, numero string) *dto.FacturaResponse {
	fx.t.Helper()
	out, err := fx.facturaUC.Issue(context.Background(), facturaID, dto.EmitirFacturaRequest{NumeroFactura: numero})
	require.NoError(fx.t, err)
	return out
}

func (fx *fixture) gestionDe(codigoFactura string) *entity.Gestion {
	fx.t.Helper()
	g, err := fx.gestiones.GetByCodigoFactura(context.Background(), codigoFactura)
	require.NoError(fx.t, err)
	require.NotNil(fx.t, g)
	return g
}

func (fx *fixture) fleteActual(id string) *entity.Flete {
	fx.t.Helper()
	f, err := fx.fletes.GetByID(context.Background(), id)
	require.NoError(fx.t, err)
	require.NotNil(fx.t, f)
	return f
}

func (fx *fixture) facturaActual(id string) *entity.Factura {
	fx.t.Helper()
	f, err := fx.facturas.GetByID(context.Background(), id)
	require.NoError(fx.t, err)
	require.NotNil(fx.t, f)
	return f
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr[T any](v T) *T { return &v }
