package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoFlete estado de valorización de un flete.
type EstadoFlete string

const (
	EstadoFletePendiente  EstadoFlete = "PENDIENTE"  // creado, sin monto
	EstadoFleteValorizado EstadoFlete = "VALORIZADO" // con monto > 0, facturable
	EstadoFleteCancelado  EstadoFlete = "CANCELADO"
)

// Valid indica si el estado pertenece al catálogo.
func (e EstadoFlete) Valid() bool {
	switch e {
	case EstadoFletePendiente, EstadoFleteValorizado, EstadoFleteCancelado:
		return true
	}
	return false
}

// Flete representa una unidad de trabajo facturable ligada a un servicio.
// PerteneceAFactura es true si y solo si FacturaID apunta a la factura que lo consumió.
type Flete struct {
	ID                 string          `bson:"_id"`
	CodigoFlete        string          `bson:"codigo_flete"`
	ServicioID         string          `bson:"servicio_id"`
	EstadoFlete        EstadoFlete     `bson:"estado_flete"`
	MontoFlete         decimal.Decimal `bson:"monto_flete"`
	PerteneceAFactura  bool            `bson:"pertenece_a_factura"`
	FacturaID          *string         `bson:"factura_id"`
	CodigoFactura      *string         `bson:"codigo_factura"`
	Observaciones      string          `bson:"observaciones,omitempty"`
	FechaCreacion      time.Time       `bson:"fecha_creacion"`
	FechaActualizacion time.Time       `bson:"fecha_actualizacion"`
}

// SetMonto asigna el monto del flete. Un monto positivo lo pasa a VALORIZADO;
// nunca vuelve a PENDIENTE de forma automática.
func (f *Flete) SetMonto(monto decimal.Decimal) bool {
	if monto.IsNegative() {
		return false
	}
	f.MontoFlete = monto
	if monto.IsPositive() {
		f.EstadoFlete = EstadoFleteValorizado
	}
	return true
}

// Liberar desvincula el flete de su factura.
func (f *Flete) Liberar() {
	f.PerteneceAFactura = false
	f.FacturaID = nil
	f.CodigoFactura = nil
}
