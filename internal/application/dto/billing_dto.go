package dto

import "github.com/shopspring/decimal"

// CreateFacturaRequest body para POST /api/facturas.
// Si monto_total va en cero se usa la suma de los montos de los fletes.
type CreateFacturaRequest struct {
	Fletes      []string        `json:"fletes" validate:"required,min=1,dive,required"`
	MontoTotal  decimal.Decimal `json:"monto_total"`
	Moneda      string          `json:"moneda,omitempty" validate:"omitempty,len=3,alpha"`
	Descripcion string          `json:"descripcion,omitempty" validate:"max=1000"`
}

// EmitirFacturaRequest query de POST /api/facturas/:id/emitir.
type EmitirFacturaRequest struct {
	NumeroFactura    string `query:"numero_factura" validate:"required,max=40"`
	FechaEmision     string `query:"fecha_emision"`     // YYYY-MM-DD; por defecto hoy
	FechaVencimiento string `query:"fecha_vencimiento"` // YYYY-MM-DD; por defecto emisión + 30 días
}

// MarcarPagadaRequest query de PATCH /api/facturas/:id/marcar-pagada.
type MarcarPagadaRequest struct {
	FechaPago string `query:"fecha_pago"` // YYYY-MM-DD; por defecto hoy
}

// FacturaListRequest filtros de GET /api/facturas.
type FacturaListRequest struct {
	NumeroFactura         string `query:"numero_factura"`
	Estado                string `query:"estado" validate:"omitempty,oneof=Borrador Emitida Pagada Vencida Anulada Parcial"`
	Moneda                string `query:"moneda" validate:"omitempty,len=3"`
	EsBorrador            string `query:"es_borrador" validate:"omitempty,oneof=true false"`
	FechaEmisionDesde     string `query:"fecha_emision_desde"`
	FechaEmisionHasta     string `query:"fecha_emision_hasta"`
	FechaVencimientoDesde string `query:"fecha_vencimiento_desde"`
	FechaVencimientoHasta string `query:"fecha_vencimiento_hasta"`
	FechaPagoDesde        string `query:"fecha_pago_desde"`
	FechaPagoHasta        string `query:"fecha_pago_hasta"`
	Periodo               string `query:"periodo" validate:"omitempty,oneof=hoy semana mes año"`
	MontoMin              string `query:"monto_min"`
	MontoMax              string `query:"monto_max"`
	FleteID               string `query:"flete_id"`
	Cliente               string `query:"cliente"`
}

// FleteRefResponse flete referenciado por una factura.
type FleteRefResponse struct {
	FleteID     string `json:"flete_id"`
	CodigoFlete string `json:"codigo_flete"`
}

// FacturaResponse factura en respuestas.
type FacturaResponse struct {
	ID                 string             `json:"id"`
	CodigoFactura      string             `json:"codigo_factura"`
	NumeroFactura      *string            `json:"numero_factura"`
	Fletes             []FleteRefResponse `json:"fletes"`
	FechaEmision       *string            `json:"fecha_emision"`
	FechaVencimiento   *string            `json:"fecha_vencimiento"`
	FechaPago          *string            `json:"fecha_pago"`
	Estado             string             `json:"estado"`
	EsBorrador         bool               `json:"es_borrador"`
	MontoTotal         decimal.Decimal    `json:"monto_total"`
	Moneda             string             `json:"moneda"`
	Descripcion        string             `json:"descripcion,omitempty"`
	FechaCreacion      string             `json:"fecha_creacion"`
	FechaActualizacion string             `json:"fecha_actualizacion"`
}

// FacturaListResponse página de facturas.
type FacturaListResponse struct {
	Items []FacturaResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
