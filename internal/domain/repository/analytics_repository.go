package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// Dimension eje de agrupación de los resúmenes de cobranza (sobre el snapshot).
type Dimension string

const (
	DimensionCliente   Dimension = "cliente"
	DimensionProveedor Dimension = "proveedor"
	DimensionPlaca     Dimension = "placa"
	DimensionConductor Dimension = "conductor"
)

// Valid indica si la dimensión es soportada.
func (d Dimension) Valid() bool {
	switch d {
	case DimensionCliente, DimensionProveedor, DimensionPlaca, DimensionConductor:
		return true
	}
	return false
}

// EstadoPagoResult totales por estado de cobro. Lo produce la DB; el use case lo convierte en DTO.
type EstadoPagoResult struct {
	Estado          entity.EstadoPagoNeto `bson:"_id"`
	Cantidad        int64                 `bson:"cantidad"`
	MontoTotal      decimal.Decimal       `bson:"monto_total"`
	MontoNeto       decimal.Decimal       `bson:"monto_neto"`
	MontoPagado     decimal.Decimal       `bson:"monto_pagado"`
	MontoDetraccion decimal.Decimal       `bson:"monto_detraccion"`
}

// DetraccionResult totales de detracción por estado.
type DetraccionResult struct {
	Estado   entity.EstadoDetraccion `bson:"_id"`
	Cantidad int64                   `bson:"cantidad"`
	Monto    decimal.Decimal         `bson:"monto"`
}

// DimensionResult totales agrupados por cliente/proveedor/placa/conductor.
// Una factura con fletes de varios valores de la dimensión reparte su neto y lo pagado
// entre ellos en proporción al monto de cada flete.
type DimensionResult struct {
	Clave       string          `bson:"_id"`
	Facturas    int64           `bson:"facturas"`
	Fletes      int64           `bson:"fletes"`
	MontoFletes decimal.Decimal `bson:"monto_fletes"`
	MontoNeto   decimal.Decimal `bson:"monto_neto"`
	MontoPagado decimal.Decimal `bson:"monto_pagado"`
}

// TendenciaResult facturación emitida por mes (YYYY-MM).
type TendenciaResult struct {
	Periodo         string          `bson:"_id"`
	Facturas        int64           `bson:"facturas"`
	MontoTotal      decimal.Decimal `bson:"monto_total"`
	MontoDetraccion decimal.Decimal `bson:"monto_detraccion"`
	MontoPagado     decimal.Decimal `bson:"monto_pagado"`
}

// AnalyticsRepository consultas de solo lectura sobre la colección de gestión.
// Los registros anulados se excluyen de todos los totales.
type AnalyticsRepository interface {
	// ResumenPorEstadoPago agrupa por estado_pago_neto.
	ResumenPorEstadoPago(ctx context.Context) ([]EstadoPagoResult, error)

	// ResumenDetraccion agrupa los montos de detracción por estado (Pendiente/Pagado).
	ResumenDetraccion(ctx context.Context) ([]DetraccionResult, error)

	// ContarVencimientos cuenta registros con saldo cuya fecha probable de pago ya pasó
	// (vencidas) o cae entre now y hasta (por vencer).
	ContarVencimientos(ctx context.Context, now, hasta time.Time) (vencidas, porVencer int64, err error)

	// ResumenPorDimension agrupa por la dimensión del snapshot, opcionalmente filtrando por fecha de emisión.
	ResumenPorDimension(ctx context.Context, dim Dimension, emision DateRange, limit int) ([]DimensionResult, error)

	// TendenciaMensual facturación por mes de emisión desde la fecha dada.
	TendenciaMensual(ctx context.Context, desde time.Time) ([]TendenciaResult, error)
}
