package dto

import "github.com/shopspring/decimal"

// CreateFleteRequest body para POST /api/fletes.
type CreateFleteRequest struct {
	ServicioID    string `json:"servicio_id" validate:"required,uuid"`
	Observaciones string `json:"observaciones,omitempty" validate:"max=500"`
}

// UpdateMontoFleteRequest body para PATCH /api/fletes/:id/monto.
type UpdateMontoFleteRequest struct {
	MontoFlete decimal.Decimal `json:"monto_flete"`
}

// FleteListRequest filtros de GET /api/fletes. Montos y fechas llegan como texto y se validan en el use case.
type FleteListRequest struct {
	CodigoFlete       string `query:"codigo_flete"`
	ServicioID        string `query:"servicio_id"`
	EstadoFlete       string `query:"estado_flete" validate:"omitempty,oneof=PENDIENTE VALORIZADO CANCELADO"`
	PerteneceAFactura string `query:"pertenece_a_factura" validate:"omitempty,oneof=true false"`
	CodigoFactura     string `query:"codigo_factura"`
	MontoMin          string `query:"monto_min"`
	MontoMax          string `query:"monto_max"`
	FechaDesde        string `query:"fecha_desde"` // YYYY-MM-DD, sobre fecha_creacion
	FechaHasta        string `query:"fecha_hasta"`
}

// FleteResponse flete en respuestas.
type FleteResponse struct {
	ID                 string          `json:"id"`
	CodigoFlete        string          `json:"codigo_flete"`
	ServicioID         string          `json:"servicio_id"`
	EstadoFlete        string          `json:"estado_flete"`
	MontoFlete         decimal.Decimal `json:"monto_flete"`
	PerteneceAFactura  bool            `json:"pertenece_a_factura"`
	FacturaID          *string         `json:"factura_id"`
	CodigoFactura      *string         `json:"codigo_factura"`
	Observaciones      string          `json:"observaciones,omitempty"`
	FechaCreacion      string          `json:"fecha_creacion"`
	FechaActualizacion string          `json:"fecha_actualizacion"`
}

// FleteListResponse página de fletes.
type FleteListResponse struct {
	Items []FleteResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// CompletarServicioResponse resultado de POST /api/servicios/:id/completar.
type CompletarServicioResponse struct {
	ServicioID  string         `json:"servicio_id"`
	Estado      string         `json:"estado"`
	FleteCreado bool           `json:"flete_creado"`
	Flete       *FleteResponse `json:"flete,omitempty"`
}
