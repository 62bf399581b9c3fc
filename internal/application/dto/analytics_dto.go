package dto

import "github.com/shopspring/decimal"

// ── Query parameters ──────────────────────────────────────────────────────────

// ResumenRequest parámetros para GET /api/facturacion-gestion/resumen/:dimension.
type ResumenRequest struct {
	FechaDesde string `query:"fecha_desde"` // YYYY-MM-DD sobre fecha de emisión; opcional
	FechaHasta string `query:"fecha_hasta"`
	Top        int    `query:"top"` // máx grupos (default 20, max 200)
}

// TendenciaRequest parámetros para GET /api/facturacion-gestion/tendencia.
type TendenciaRequest struct {
	Meses int `query:"meses"` // default 12, max 36
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// EstadoPagoResumenDTO totales por estado de cobro.
type EstadoPagoResumenDTO struct {
	Estado         string          `json:"estado"`
	Cantidad       int64           `json:"cantidad"`
	MontoNeto      decimal.Decimal `json:"monto_neto"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
}

// DashboardEstadisticasDTO respuesta de GET /api/facturacion-gestion/dashboard/estadisticas.
type DashboardEstadisticasDTO struct {
	TotalFacturas       int64                  `json:"total_facturas"`
	MontoFacturado      decimal.Decimal        `json:"monto_facturado"` // suma de monto_total
	MontoNeto           decimal.Decimal        `json:"monto_neto"`
	MontoCobrado        decimal.Decimal        `json:"monto_cobrado"`
	SaldoPendiente      decimal.Decimal        `json:"saldo_pendiente"`
	PorcentajeCobrado   decimal.Decimal        `json:"porcentaje_cobrado"`
	DetraccionPendiente decimal.Decimal        `json:"detraccion_pendiente"`
	DetraccionPagada    decimal.Decimal        `json:"detraccion_pagada"`
	Vencidas            int64                  `json:"vencidas"`
	PorVencer           int64                  `json:"por_vencer"` // próximos 7 días
	PorEstado           []EstadoPagoResumenDTO `json:"por_estado"`
	FechaCorte          string                 `json:"fecha_corte"`
}

// ── Resúmenes por dimensión ───────────────────────────────────────────────────

// ResumenItemDTO totales de un grupo (cliente, proveedor, placa o conductor).
type ResumenItemDTO struct {
	Clave          string          `json:"clave"`
	Facturas       int64           `json:"facturas"`
	Fletes         int64           `json:"fletes"`
	MontoFletes    decimal.Decimal `json:"monto_fletes"`
	MontoNeto      decimal.Decimal `json:"monto_neto"`
	MontoPagado    decimal.Decimal `json:"monto_pagado"`
	SaldoPendiente decimal.Decimal `json:"saldo_pendiente"`
	Participacion  decimal.Decimal `json:"participacion_pct"` // % de monto_fletes sobre el total
}

// ResumenDimensionDTO respuesta de GET /api/facturacion-gestion/resumen/:dimension.
type ResumenDimensionDTO struct {
	Dimension string           `json:"dimension"`
	Total     decimal.Decimal  `json:"total_monto_fletes"`
	Items     []ResumenItemDTO `json:"items"`
}

// ── Tendencia ─────────────────────────────────────────────────────────────────

// TendenciaMesDTO facturación de un mes.
type TendenciaMesDTO struct {
	Periodo         string          `json:"periodo"` // YYYY-MM
	Etiqueta        string          `json:"etiqueta"` // ej: "Marzo 2026"
	Facturas        int64           `json:"facturas"`
	MontoTotal      decimal.Decimal `json:"monto_total"`
	MontoDetraccion decimal.Decimal `json:"monto_detraccion"`
	MontoPagado     decimal.Decimal `json:"monto_pagado"`
}

// TendenciaDTO respuesta de GET /api/facturacion-gestion/tendencia.
type TendenciaDTO struct {
	Desde string            `json:"desde"`
	Meses []TendenciaMesDTO `json:"meses"`
}
