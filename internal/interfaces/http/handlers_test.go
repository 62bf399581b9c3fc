package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/docs"
	appanalytics "github.com/jhoicas/fletes-api/internal/application/analytics"
	"github.com/jhoicas/fletes-api/internal/application/billing"
	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/fletes"
	"github.com/jhoicas/fletes-api/internal/application/sequence"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
	apphttp "github.com/jhoicas/fletes-api/internal/interfaces/http"
	"github.com/jhoicas/fletes-api/internal/testutil"
)

type fakeExporter struct{}

func (fakeExporter) Export(string, []string, [][]any) ([]byte, error) { return []byte("xlsx"), nil }

type fakePDF struct{}

func (fakePDF) GenerateFacturaPDF(context.Context, *entity.Factura, *entity.FacturaSnapshot, *entity.Gestion) ([]byte, error) {
	return []byte("%PDF-1.4"), nil
}

type apiFixture struct {
	t         *testing.T
	app       *fiber.App
	fletes    *testutil.FleteRepo
	facturas  *testutil.FacturaRepo
	gestiones *testutil.GestionRepo
	servicios *testutil.ServicioRepo
	analytics *testutil.AnalyticsRepo
}

func newAPI(t *testing.T) *apiFixture {
	fx := &apiFixture{
		t:         t,
		fletes:    testutil.NewFleteRepo(),
		facturas:  testutil.NewFacturaRepo(),
		gestiones: testutil.NewGestionRepo(),
		servicios: testutil.NewServicioRepo(),
		analytics: &testutil.AnalyticsRepo{},
	}
	codes := sequence.NewGenerator(testutil.NewSequenceRepo())
	tx := &testutil.TxRunner{}
	snaps := billing.NewSnapshotBuilder(fx.fletes, fx.servicios)
	fleteUC := fletes.NewFleteUseCase(fx.fletes, fx.servicios, codes)
	gestionUC := billing.NewGestionUseCase(fx.gestiones, fx.facturas, fx.fletes, tx, codes, snaps, fakeExporter{}, detraccion.PoliticaPorDefecto())
	facturaUC := billing.NewFacturaUseCase(fx.facturas, fx.fletes, fx.gestiones, tx, codes, snaps, gestionUC, fakeExporter{}, billing.DefaultConfig())

	fx.app = fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(fx.app, apphttp.RouterDeps{
		FleteUC:     fleteUC,
		ServicioUC:  fletes.NewServicioUseCase(fx.servicios, fx.fletes, fleteUC),
		FacturaUC:   facturaUC,
		GestionUC:   gestionUC,
		FacturaPDF:  billing.NewPDFUseCase(fx.facturas, fx.gestiones, snaps, fakePDF{}),
		DashboardUC: appanalytics.NewDashboardUseCase(fx.analytics),
		JWTSecret:   testJWTSecret,
		JWTIssuer:   testIssuer,
	})
	return fx
}

func (fx *apiFixture) do(method, path, role string, body any) (*http.Response, []byte) {
	fx.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(fx.t, err)
		r = strings.NewReader(string(raw))
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", tokenForRole(fx.t, role))
	resp, err := fx.app.Test(req, -1)
	require.NoError(fx.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(fx.t, err)
	return resp, out
}

// fleteValorizado siembra un servicio completado con su flete valorizado.
func (fx *apiFixture) fleteValorizado(placa string, monto int64) *entity.Flete {
	fx.t.Helper()
	s := &entity.Servicio{
		ID:             uuid.NewString(),
		CodigoServicio: "SRV-" + placa,
		Cliente:        entity.ClienteRef{RazonSocial: "Alicorp SAA"},
		Flota:          entity.FlotaRef{Placa: placa},
		Estado:         entity.EstadoServicioCompletado,
	}
	fx.servicios.Put(s)
	f := &entity.Flete{
		ID:            uuid.NewString(),
		CodigoFlete:   "FLT-" + placa,
		ServicioID:    s.ID,
		EstadoFlete:   entity.EstadoFleteValorizado,
		MontoFlete:    decimal.NewFromInt(monto),
		FechaCreacion: time.Now().UTC(),
	}
	require.NoError(fx.t, fx.fletes.Create(context.Background(), f))
	return f
}

// emitida crea y emite una factura con un flete; devuelve la factura y su gestión.
func (fx *apiFixture) emitida(numero string, monto int64) (dto.FacturaResponse, *entity.Gestion) {
	fx.t.Helper()
	f := fx.fleteValorizado("P-"+numero, monto)

	resp, body := fx.do(http.MethodPost, "/api/facturas/", "facturacion", dto.CreateFacturaRequest{Fletes: []string{f.ID}})
	require.Equal(fx.t, http.StatusCreated, resp.StatusCode, string(body))
	var factura dto.FacturaResponse
	require.NoError(fx.t, json.Unmarshal(body, &factura))

	resp, body = fx.do(http.MethodPost, "/api/facturas/"+factura.ID+"/emitir?numero_factura="+numero, "facturacion", nil)
	require.Equal(fx.t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(fx.t, json.Unmarshal(body, &factura))

	g, err := fx.gestiones.GetByCodigoFactura(context.Background(), factura.CodigoFactura)
	require.NoError(fx.t, err)
	require.NotNil(fx.t, g)
	return factura, g
}

func decodeError(t *testing.T, body []byte) dto.ErrorResponse {
	t.Helper()
	var e dto.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &e))
	return e
}

// ── Fletes ────────────────────────────────────────────────────────────────────

func TestFletes_CreateValidation(t *testing.T) {
	fx := newAPI(t)

	resp, body := fx.do(http.MethodPost, "/api/fletes/", "operaciones", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Fields, "servicio_id: required")
}

func TestFletes_CreateAndValorizar(t *testing.T) {
	fx := newAPI(t)
	s := &entity.Servicio{ID: uuid.NewString(), CodigoServicio: "SRV-9", Estado: entity.EstadoServicioCompletado}
	fx.servicios.Put(s)

	resp, body := fx.do(http.MethodPost, "/api/fletes/", "operaciones", dto.CreateFleteRequest{ServicioID: s.ID})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var f dto.FleteResponse
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, "PENDIENTE", f.EstadoFlete)

	resp, body = fx.do(http.MethodPatch, "/api/fletes/"+f.ID+"/monto", "operaciones",
		map[string]any{"monto_flete": "850.50"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	require.NoError(t, json.Unmarshal(body, &f))
	assert.Equal(t, "VALORIZADO", f.EstadoFlete)
	assert.True(t, decimal.RequireFromString("850.50").Equal(f.MontoFlete))

	resp, body = fx.do(http.MethodGet, "/api/fletes/?estado_flete=VALORIZADO", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page dto.FleteListResponse
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Len(t, page.Items, 1)
	assert.Equal(t, 20, page.Page.Limit)
}

func TestFletes_ListEstadoInvalido(t *testing.T) {
	fx := newAPI(t)

	resp, body := fx.do(http.MethodGet, "/api/fletes/?estado_flete=OTRO", "consulta", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields, "estado_flete: oneof=PENDIENTE VALORIZADO CANCELADO")
}

func TestFletes_GetNoExiste(t *testing.T) {
	fx := newAPI(t)

	resp, body := fx.do(http.MethodGet, "/api/fletes/"+uuid.NewString(), "consulta", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, body).Code)
}

func TestFletes_DeleteRequiereRol(t *testing.T) {
	fx := newAPI(t)
	f := fx.fleteValorizado("ABC-123", 100)

	resp, _ := fx.do(http.MethodDelete, "/api/fletes/"+f.ID, "operaciones", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := fx.do(http.MethodDelete, "/api/fletes/"+f.ID, "admin", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var del dto.DeleteResponse
	require.NoError(t, json.Unmarshal(body, &del))
	assert.True(t, del.Deleted)
}

func TestFletes_DeleteVinculadoEsIllegalState(t *testing.T) {
	fx := newAPI(t)
	factura, _ := fx.emitida("F001-1", 500)

	resp, body := fx.do(http.MethodDelete, "/api/fletes/"+factura.Fletes[0].FleteID, "admin", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "ILLEGAL_STATE", decodeError(t, body).Code)
}

func TestServicios_Completar(t *testing.T) {
	fx := newAPI(t)
	s := &entity.Servicio{ID: uuid.NewString(), CodigoServicio: "SRV-1", Estado: entity.EstadoServicioProgramado}
	fx.servicios.Put(s)

	resp, body := fx.do(http.MethodPost, "/api/servicios/"+s.ID+"/completar", "operaciones", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var out dto.CompletarServicioResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.FleteCreado)

	// segunda llamada: el flete ya existe
	resp, _ = fx.do(http.MethodPost, "/api/servicios/"+s.ID+"/completar", "operaciones", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ── Facturas ──────────────────────────────────────────────────────────────────

func TestFacturas_EmitirSinNumero(t *testing.T) {
	fx := newAPI(t)
	f := fx.fleteValorizado("XYZ-1", 300)

	resp, body := fx.do(http.MethodPost, "/api/facturas/", "facturacion", dto.CreateFacturaRequest{Fletes: []string{f.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var factura dto.FacturaResponse
	require.NoError(t, json.Unmarshal(body, &factura))
	assert.Equal(t, "Borrador", factura.Estado)

	resp, body = fx.do(http.MethodPost, "/api/facturas/"+factura.ID+"/emitir", "facturacion", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields, "numero_factura: required")
}

func TestFacturas_CreateSinFletes(t *testing.T) {
	fx := newAPI(t)

	resp, body := fx.do(http.MethodPost, "/api/facturas/", "facturacion", map[string]any{"fletes": []string{}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestFacturas_EmitirYConsultarPorNumero(t *testing.T) {
	fx := newAPI(t)
	factura, g := fx.emitida("F001-100", 1000)
	assert.Equal(t, "Emitida", factura.Estado)
	assert.Equal(t, entity.EstadoPagoPendiente, g.EstadoPagoNeto)

	resp, body := fx.do(http.MethodGet, "/api/facturas/numero/F001-100", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var got dto.FacturaResponse
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, factura.ID, got.ID)

	// el número legal no se reutiliza
	otro := fx.fleteValorizado("DUP-1", 200)
	resp, body = fx.do(http.MethodPost, "/api/facturas/", "facturacion", dto.CreateFacturaRequest{Fletes: []string{otro.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var borrador dto.FacturaResponse
	require.NoError(t, json.Unmarshal(body, &borrador))
	resp, _ = fx.do(http.MethodPost, "/api/facturas/"+borrador.ID+"/emitir?numero_factura=F001-100", "facturacion", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFacturas_PDFyExcel(t *testing.T) {
	fx := newAPI(t)
	factura, _ := fx.emitida("F001-7", 450)

	resp, body := fx.do(http.MethodGet, "/api/facturas/"+factura.ID+"/pdf", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	assert.Equal(t, "%PDF-1.4", string(body))

	resp, body = fx.do(http.MethodGet, "/api/facturas/export/excel?estado=Emitida", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")
}

func TestFacturas_DeleteRequiereRol(t *testing.T) {
	fx := newAPI(t)
	f := fx.fleteValorizado("DEL-1", 100)
	resp, body := fx.do(http.MethodPost, "/api/facturas/", "facturacion", dto.CreateFacturaRequest{Fletes: []string{f.ID}})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var factura dto.FacturaResponse
	require.NoError(t, json.Unmarshal(body, &factura))

	resp, _ = fx.do(http.MethodDelete, "/api/facturas/"+factura.ID, "consulta", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = fx.do(http.MethodDelete, "/api/facturas/"+factura.ID, "facturacion", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	libre, err := fx.fletes.GetByID(context.Background(), f.ID)
	require.NoError(t, err)
	assert.False(t, libre.PerteneceAFactura)
}

// ── Gestión ───────────────────────────────────────────────────────────────────

func TestGestion_PagoParcialYSobrepago(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-20", 1000)

	resp, body := fx.do(http.MethodPost, "/api/facturacion-gestion/"+g.ID+"/pago-parcial?monto_pago=300&nro_operacion=OP-1", "facturacion", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.GestionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "Pagado Parcial", out.EstadoPagoNeto)
	assert.Len(t, out.Pagos, 1)

	resp, body = fx.do(http.MethodPost, "/api/facturacion-gestion/"+g.ID+"/pago-parcial?monto_pago=999999", "facturacion", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Contains(t, e.Message, "saldo pendiente")
}

func TestGestion_PagoParcialSinMonto(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-21", 1000)

	resp, body := fx.do(http.MethodPost, "/api/facturacion-gestion/"+g.ID+"/pago-parcial", "facturacion", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decodeError(t, body).Fields, "monto_pago: required")
}

func TestGestion_AnularRequiereRol(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-30", 800)
	anulado := string(entity.EstadoPagoAnulado)

	resp, _ := fx.do(http.MethodPut, "/api/facturacion-gestion/"+g.ID, "operaciones",
		dto.UpdateGestionRequest{EstadoPagoNeto: &anulado})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body := fx.do(http.MethodPut, "/api/facturacion-gestion/"+g.ID, "admin",
		dto.UpdateGestionRequest{EstadoPagoNeto: &anulado})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.GestionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, anulado, out.EstadoPagoNeto)
}

func TestGestion_EstadoInvalido(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-31", 800)
	raro := "Cobrado"

	resp, body := fx.do(http.MethodPut, "/api/facturacion-gestion/"+g.ID, "facturacion",
		dto.UpdateGestionRequest{EstadoPagoNeto: &raro})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestGestion_ListYGet(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-40", 600)
	fx.emitida("F001-41", 700)

	resp, body := fx.do(http.MethodGet, "/api/facturacion-gestion/?numero_factura=F001-40", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var page dto.GestionListResponse
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, g.ID, page.Items[0].ID)

	resp, body = fx.do(http.MethodGet, "/api/facturacion-gestion/"+g.ID, "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.GestionResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "F001-40", out.NumeroFactura)
}

func TestGestion_MarcarVencidas(t *testing.T) {
	fx := newAPI(t)
	_, g := fx.emitida("F001-50", 600)
	pasado := time.Now().UTC().AddDate(0, 0, -3)
	g.FechaProbablePago = &pasado
	require.NoError(t, fx.gestiones.Update(context.Background(), g))

	resp, body := fx.do(http.MethodPost, "/api/facturacion-gestion/marcar-vencidas", "facturacion", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.MarcarVencidasResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, 1, out.Actualizadas)
}

// ── Reportes ──────────────────────────────────────────────────────────────────

func TestDashboard_Estadisticas(t *testing.T) {
	fx := newAPI(t)
	fx.analytics.PorEstado = []repository.EstadoPagoResult{
		{Estado: "Pendiente", Cantidad: 2, MontoTotal: decimal.NewFromInt(1000), MontoNeto: decimal.NewFromInt(960)},
	}

	resp, body := fx.do(http.MethodGet, "/api/facturacion-gestion/dashboard/estadisticas", "consulta", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.DashboardEstadisticasDTO
	require.NoError(t, json.Unmarshal(body, &out))
	assert.EqualValues(t, 2, out.TotalFacturas)
}

func TestDashboard_ResumenDimensionInvalida(t *testing.T) {
	fx := newAPI(t)

	resp, body := fx.do(http.MethodGet, "/api/facturacion-gestion/resumen/ruta", "consulta", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decodeError(t, body).Code)
}

func TestDashboard_ErrorUpstreamNoFiltraCausa(t *testing.T) {
	fx := newAPI(t)
	fx.analytics.Err = assert.AnError

	resp, body := fx.do(http.MethodGet, "/api/facturacion-gestion/tendencia?meses=6", "consulta", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "INTERNAL", e.Code)
	assert.NotContains(t, e.Message, assert.AnError.Error())
}

func TestErrorHandler_ModificacionConcurrenteEs409(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	app.Put("/gestion", func(*fiber.Ctx) error {
		return domain.Conflict("la gestión %s fue modificada por otra operación; reintente", "GES-000001")
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodPut, "/gestion", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	e := decodeError(t, body)
	assert.Equal(t, "CONFLICT", e.Code)
	assert.Contains(t, e.Message, "GES-000001")
}

var paramRuta = regexp.MustCompile(`:(\w+)`)

// Cada ruta registrada debe figurar en la documentación generada con su método.
func TestSwagger_DocumentaTodasLasRutas(t *testing.T) {
	fx := newAPI(t)

	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))

	rutas := 0
	for _, r := range fx.app.GetRoutes(true) {
		switch r.Method {
		case http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		default:
			continue
		}
		path := paramRuta.ReplaceAllString(strings.TrimRight(r.Path, "/"), "{$1}")
		ops, ok := doc.Paths[path]
		if assert.True(t, ok, "ruta sin documentar: %s", path) {
			assert.Contains(t, ops, strings.ToLower(r.Method), "método sin documentar: %s %s", r.Method, path)
		}
		rutas++
	}
	assert.Equal(t, 25, rutas)
}
