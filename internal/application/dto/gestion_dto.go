package dto

import "github.com/shopspring/decimal"

// CreateGestionRequest body para POST /api/facturacion-gestion.
// Crea el registro de cobranza de una factura ya emitida que aún no lo tiene.
type CreateGestionRequest struct {
	FacturaID         string `json:"factura_id" validate:"required,uuid"`
	Prioridad         string `json:"prioridad,omitempty" validate:"omitempty,oneof=Baja Media Alta Urgente"`
	FechaProbablePago string `json:"fecha_probable_pago,omitempty"`
	Responsable       string `json:"responsable,omitempty" validate:"max=200"`
	Observaciones     string `json:"observaciones,omitempty" validate:"max=1000"`
}

// UpdateGestionRequest body para PUT /api/facturacion-gestion/:id. Solo se aplican los campos presentes.
type UpdateGestionRequest struct {
	EstadoDetraccion        *string          `json:"estado_detraccion,omitempty" validate:"omitempty,oneof='No Aplica' Pendiente Pagado"`
	TasaDetraccion          *decimal.Decimal `json:"tasa_detraccion,omitempty"`
	FechaPagoDetraccion     *string          `json:"fecha_pago_detraccion,omitempty"`
	NroConstanciaDetraccion *string          `json:"nro_constancia_detraccion,omitempty" validate:"omitempty,max=60"`
	EstadoPagoNeto          *string          `json:"estado_pago_neto,omitempty" validate:"omitempty,oneof=Pendiente Programado 'Pagado Parcial' Pagado Vencido 'En Disputa' Anulado"`
	MontoPagadoAcumulado    *decimal.Decimal `json:"monto_pagado_acumulado,omitempty"`
	FechaProbablePago       *string          `json:"fecha_probable_pago,omitempty"`
	NroOperacion            *string          `json:"nro_operacion,omitempty" validate:"omitempty,max=60"`
	Prioridad               *string          `json:"prioridad,omitempty" validate:"omitempty,oneof=Baja Media Alta Urgente"`
	Responsable             *string          `json:"responsable,omitempty" validate:"omitempty,max=200"`
	Observaciones           *string          `json:"observaciones,omitempty" validate:"omitempty,max=1000"`
}

// PagoParcialRequest query de POST /api/facturacion-gestion/:id/pago-parcial.
type PagoParcialRequest struct {
	MontoPago    string `query:"monto_pago" validate:"required"`
	NroOperacion string `query:"nro_operacion" validate:"omitempty,max=60"`
}

// GestionListRequest filtros de GET /api/facturacion-gestion.
type GestionListRequest struct {
	EstadoPagoNeto   string `query:"estado_pago_neto"`
	EstadoDetraccion string `query:"estado_detraccion"`
	Prioridad        string `query:"prioridad"`
	NumeroFactura    string `query:"numero_factura"`
	CodigoFactura    string `query:"codigo_factura"`
	Cliente          string `query:"cliente"`
	FechaPagoDesde   string `query:"fecha_probable_pago_desde"`
	FechaPagoHasta   string `query:"fecha_probable_pago_hasta"`
}

// ServicioSnapshotResponse datos del servicio congelados al emitir.
type ServicioSnapshotResponse struct {
	ServicioID     string          `json:"servicio_id"`
	CodigoServicio string          `json:"codigo_servicio"`
	Cliente        string          `json:"cliente"`
	Cuenta         string          `json:"cuenta"`
	Proveedor      string          `json:"proveedor"`
	Placa          string          `json:"placa"`
	Conductor      string          `json:"conductor"`
	Auxiliar       string          `json:"auxiliar"`
	M3             decimal.Decimal `json:"m3"`
	TN             decimal.Decimal `json:"tn"`
	TipoServicio   string          `json:"tipo_servicio"`
	Modalidad      string          `json:"modalidad"`
	Zona           string          `json:"zona"`
	FechaServicio  *string         `json:"fecha_servicio"`
	FechaSalida    *string         `json:"fecha_salida"`
	GIARR          string          `json:"gia_rr"`
	GIART          string          `json:"gia_rt"`
	Origen         string          `json:"origen"`
	Destino        string          `json:"destino"`
}

// FleteSnapshotResponse flete tal como fue facturado.
type FleteSnapshotResponse struct {
	FleteID     string                   `json:"flete_id"`
	CodigoFlete string                   `json:"codigo_flete"`
	MontoFlete  decimal.Decimal          `json:"monto_flete"`
	Servicio    ServicioSnapshotResponse `json:"servicio"`
}

// FacturaSnapshotResponse snapshot histórico de la factura.
type FacturaSnapshotResponse struct {
	NumeroFactura    string                  `json:"numero_factura"`
	FechaEmision     string                  `json:"fecha_emision"`
	FechaVencimiento string                  `json:"fecha_vencimiento"`
	MontoTotal       decimal.Decimal         `json:"monto_total"`
	Moneda           string                  `json:"moneda"`
	Fletes           []FleteSnapshotResponse `json:"fletes"`
}

// PagoResponse abono registrado.
type PagoResponse struct {
	Monto        decimal.Decimal `json:"monto"`
	Fecha        string          `json:"fecha"`
	NroOperacion string          `json:"nro_operacion,omitempty"`
}

// GestionResponse registro de cobranza. SaldoPendiente se calcula al leer.
type GestionResponse struct {
	ID                      string                  `json:"id"`
	CodigoGestion           string                  `json:"codigo_gestion"`
	CodigoFactura           string                  `json:"codigo_factura"`
	FacturaID               string                  `json:"factura_id"`
	NumeroFactura           string                  `json:"numero_factura"`
	DatosCompletos          FacturaSnapshotResponse `json:"datos_completos"`
	MontoTotal              decimal.Decimal         `json:"monto_total"`
	EstadoDetraccion        string                  `json:"estado_detraccion"`
	TasaDetraccion          decimal.Decimal         `json:"tasa_detraccion"`
	MontoDetraccion         decimal.Decimal         `json:"monto_detraccion"`
	FechaPagoDetraccion     *string                 `json:"fecha_pago_detraccion"`
	NroConstanciaDetraccion *string                 `json:"nro_constancia_detraccion"`
	EstadoPagoNeto          string                  `json:"estado_pago_neto"`
	MontoNeto               decimal.Decimal         `json:"monto_neto"`
	MontoPagadoAcumulado    decimal.Decimal         `json:"monto_pagado_acumulado"`
	SaldoPendiente          decimal.Decimal         `json:"saldo_pendiente"`
	DiasVencido             int                     `json:"dias_vencido"`
	FechaProbablePago       *string                 `json:"fecha_probable_pago"`
	FechaUltimoPago         *string                 `json:"fecha_ultimo_pago"`
	NroOperacion            *string                 `json:"nro_operacion"`
	Pagos                   []PagoResponse          `json:"pagos"`
	Prioridad               string                  `json:"prioridad"`
	Responsable             string                  `json:"responsable,omitempty"`
	Observaciones           string                  `json:"observaciones,omitempty"`
	FechaCreacion           string                  `json:"fecha_creacion"`
	UltimaActualizacion     string                  `json:"ultima_actualizacion"`
}

// GestionListResponse página de registros de cobranza.
type GestionListResponse struct {
	Items []GestionResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// MarcarVencidasResponse resultado del barrido de vencidos.
type MarcarVencidasResponse struct {
	Actualizadas int               `json:"actualizadas"`
	Items        []GestionResponse `json:"items"`
}
