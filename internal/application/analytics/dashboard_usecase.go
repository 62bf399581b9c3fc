// Package analytics contiene los casos de uso de reportes de cobranza: dashboard,
// resúmenes por dimensión y tendencia mensual de facturación.
package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/application/dto"
	"github.com/jhoicas/fletes-api/internal/application/filters"
	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

const (
	diasPorVencer   = 7 // ventana del contador "por vencer"
	resumenTopDef   = 20
	resumenTopMax   = 200
	tendenciaDef    = 12
	tendenciaMaxMes = 36
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera los reportes de la cartera de cobranza.
//
// Fuente de datos: AnalyticsRepository (consultas read-only sobre facturacion_gestion).
// Los registros anulados no cuentan en ningún total.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetEstadisticas construye el DashboardEstadisticasDTO.
//
// Tres llamadas en paralelo:
//  1. ResumenPorEstadoPago   → totales y desglose por estado
//  2. ResumenDetraccion      → detracción pendiente vs pagada
//  3. ContarVencimientos     → vencidas y por vencer (7 días)
func (uc *DashboardUseCase) GetEstadisticas(ctx context.Context) (*dto.DashboardEstadisticasDTO, error) {
	now := uc.now()
	today := filters.StartOfDay(now)
	hasta := filters.EndOfDay(today.AddDate(0, 0, diasPorVencer))

	// ── Goroutines para paralelizar las 3 consultas DB ────────────────────────
	type estadosResult struct {
		rows []repository.EstadoPagoResult
		err  error
	}
	type detraccionResult struct {
		rows []repository.DetraccionResult
		err  error
	}
	type vencResult struct {
		vencidas, porVencer int64
		err                 error
	}

	estadosCh := make(chan estadosResult, 1)
	detrCh := make(chan detraccionResult, 1)
	vencCh := make(chan vencResult, 1)

	go func() {
		rows, err := uc.analyticsRepo.ResumenPorEstadoPago(ctx)
		estadosCh <- estadosResult{rows, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.ResumenDetraccion(ctx)
		detrCh <- detraccionResult{rows, err}
	}()
	go func() {
		v, p, err := uc.analyticsRepo.ContarVencimientos(ctx, today, hasta)
		vencCh <- vencResult{v, p, err}
	}()

	estados := <-estadosCh
	detr := <-detrCh
	venc := <-vencCh

	if estados.err != nil {
		return nil, domain.Upstream("dashboard: resumen por estado", estados.err)
	}
	if detr.err != nil {
		return nil, domain.Upstream("dashboard: detracción", detr.err)
	}
	if venc.err != nil {
		return nil, domain.Upstream("dashboard: vencimientos", venc.err)
	}

	// ── Totales ────────────────────────────────────────────────────────────────
	out := &dto.DashboardEstadisticasDTO{
		MontoFacturado:      decimal.Zero,
		MontoNeto:           decimal.Zero,
		MontoCobrado:        decimal.Zero,
		SaldoPendiente:      decimal.Zero,
		PorcentajeCobrado:   decimal.Zero,
		DetraccionPendiente: decimal.Zero,
		DetraccionPagada:    decimal.Zero,
		Vencidas:            venc.vencidas,
		PorVencer:           venc.porVencer,
		PorEstado:           make([]dto.EstadoPagoResumenDTO, 0, len(estados.rows)),
		FechaCorte:          now.Format(time.RFC3339),
	}
	for _, r := range estados.rows {
		if r.Estado == entity.EstadoPagoAnulado {
			continue
		}
		saldo := r.MontoNeto.Sub(r.MontoPagado)
		if saldo.IsNegative() {
			saldo = decimal.Zero
		}
		out.TotalFacturas += r.Cantidad
		out.MontoFacturado = out.MontoFacturado.Add(r.MontoTotal)
		out.MontoNeto = out.MontoNeto.Add(r.MontoNeto)
		out.MontoCobrado = out.MontoCobrado.Add(r.MontoPagado)
		out.SaldoPendiente = out.SaldoPendiente.Add(saldo)
		out.PorEstado = append(out.PorEstado, dto.EstadoPagoResumenDTO{
			Estado:         string(r.Estado),
			Cantidad:       r.Cantidad,
			MontoNeto:      r.MontoNeto.Round(2),
			MontoPagado:    r.MontoPagado.Round(2),
			SaldoPendiente: saldo.Round(2),
		})
	}
	if out.MontoNeto.IsPositive() {
		out.PorcentajeCobrado = out.MontoCobrado.Mul(hundred).Div(out.MontoNeto).Round(2)
	}
	for _, r := range detr.rows {
		switch r.Estado {
		case entity.EstadoDetraccionPendiente:
			out.DetraccionPendiente = out.DetraccionPendiente.Add(r.Monto)
		case entity.EstadoDetraccionPagado:
			out.DetraccionPagada = out.DetraccionPagada.Add(r.Monto)
		}
	}
	out.MontoFacturado = out.MontoFacturado.Round(2)
	out.MontoNeto = out.MontoNeto.Round(2)
	out.MontoCobrado = out.MontoCobrado.Round(2)
	out.SaldoPendiente = out.SaldoPendiente.Round(2)
	out.DetraccionPendiente = out.DetraccionPendiente.Round(2)
	out.DetraccionPagada = out.DetraccionPagada.Round(2)
	return out, nil
}

// GetResumen agrupa la cartera por cliente, proveedor, placa o conductor según el snapshot.
func (uc *DashboardUseCase) GetResumen(ctx context.Context, dimension string, in dto.ResumenRequest) (*dto.ResumenDimensionDTO, error) {
	dim := repository.Dimension(strings.ToLower(dimension))
	if !dim.Valid() {
		return nil, domain.Validation("dimensión inválida %q (cliente, proveedor, placa, conductor)", dimension)
	}
	emision, err := filters.ParseDateRange("fecha_desde", in.FechaDesde, "fecha_hasta", in.FechaHasta)
	if err != nil {
		return nil, err
	}
	top := in.Top
	if top <= 0 {
		top = resumenTopDef
	}
	if top > resumenTopMax {
		top = resumenTopMax
	}

	rows, err := uc.analyticsRepo.ResumenPorDimension(ctx, dim, emision, top)
	if err != nil {
		return nil, domain.Upstream("resumen: "+string(dim), err)
	}

	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.MontoFletes)
	}
	items := make([]dto.ResumenItemDTO, 0, len(rows))
	for _, r := range rows {
		saldo := r.MontoNeto.Sub(r.MontoPagado)
		if saldo.IsNegative() {
			saldo = decimal.Zero
		}
		part := decimal.Zero
		if total.IsPositive() {
			part = r.MontoFletes.Mul(hundred).Div(total).Round(2)
		}
		clave := r.Clave
		if clave == "" {
			clave = "(sin dato)"
		}
		items = append(items, dto.ResumenItemDTO{
			Clave:          clave,
			Facturas:       r.Facturas,
			Fletes:         r.Fletes,
			MontoFletes:    r.MontoFletes.Round(2),
			MontoNeto:      r.MontoNeto.Round(2),
			MontoPagado:    r.MontoPagado.Round(2),
			SaldoPendiente: saldo.Round(2),
			Participacion:  part,
		})
	}
	return &dto.ResumenDimensionDTO{Dimension: string(dim), Total: total.Round(2), Items: items}, nil
}

// GetTendencia facturación emitida por mes en los últimos N meses (incluido el actual).
// Los meses sin facturas aparecen con ceros.
func (uc *DashboardUseCase) GetTendencia(ctx context.Context, in dto.TendenciaRequest) (*dto.TendenciaDTO, error) {
	meses := in.Meses
	if meses <= 0 {
		meses = tendenciaDef
	}
	if meses > tendenciaMaxMes {
		meses = tendenciaMaxMes
	}
	now := uc.now()
	desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(meses - 1), 0)

	rows, err := uc.analyticsRepo.TendenciaMensual(ctx, desde)
	if err != nil {
		return nil, domain.Upstream("tendencia mensual", err)
	}
	byPeriodo := make(map[string]repository.TendenciaResult, len(rows))
	for _, r := range rows {
		byPeriodo[r.Periodo] = r
	}

	out := &dto.TendenciaDTO{Desde: desde.Format(filters.DateLayout), Meses: make([]dto.TendenciaMesDTO, 0, meses)}
	for i := 0; i < meses; i++ {
		m := desde.AddDate(0, i, 0)
		periodo := m.Format("2006-01")
		r := byPeriodo[periodo]
		out.Meses = append(out.Meses, dto.TendenciaMesDTO{
			Periodo:         periodo,
			Etiqueta:        monthLabel(m),
			Facturas:        r.Facturas,
			MontoTotal:      r.MontoTotal.Round(2),
			MontoDetraccion: r.MontoDetraccion.Round(2),
			MontoPagado:     r.MontoPagado.Round(2),
		})
	}
	return out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
