package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoFactura ciclo de vida de la factura.
type EstadoFactura string

const (
	EstadoFacturaBorrador EstadoFactura = "Borrador"
	EstadoFacturaEmitida  EstadoFactura = "Emitida"
	EstadoFacturaPagada   EstadoFactura = "Pagada"
	EstadoFacturaVencida  EstadoFactura = "Vencida"
	EstadoFacturaAnulada  EstadoFactura = "Anulada"
	EstadoFacturaParcial  EstadoFactura = "Parcial"
)

var facturaTransitions = map[EstadoFactura]map[EstadoFactura]bool{
	EstadoFacturaBorrador: {EstadoFacturaEmitida: true, EstadoFacturaAnulada: true},
	EstadoFacturaEmitida: {
		EstadoFacturaPagada: true, EstadoFacturaVencida: true,
		EstadoFacturaParcial: true, EstadoFacturaAnulada: true,
	},
	EstadoFacturaParcial: {EstadoFacturaPagada: true, EstadoFacturaVencida: true, EstadoFacturaAnulada: true},
	EstadoFacturaVencida: {EstadoFacturaPagada: true, EstadoFacturaParcial: true, EstadoFacturaAnulada: true},
	EstadoFacturaPagada:  {},
	EstadoFacturaAnulada: {},
}

// Valid indica si el estado pertenece al catálogo.
func (e EstadoFactura) Valid() bool {
	_, ok := facturaTransitions[e]
	return ok
}

// CanTransitionTo consulta la tabla de transiciones.
func (e EstadoFactura) CanTransitionTo(next EstadoFactura) bool {
	return facturaTransitions[e][next]
}

// Terminal indica que no se permiten más transiciones.
func (e EstadoFactura) Terminal() bool {
	return len(facturaTransitions[e]) == 0
}

// FleteRef referencia ordenada a un flete incluido en la factura.
type FleteRef struct {
	FleteID     string `bson:"flete_id"`
	CodigoFlete string `bson:"codigo_flete"`
}

// Factura documento de cobro que agrupa uno o más fletes.
// CodigoFactura es el código interno; NumeroFactura el número legal asignado al emitir.
type Factura struct {
	ID                 string          `bson:"_id"`
	CodigoFactura      string          `bson:"codigo_factura"`
	NumeroFactura      *string         `bson:"numero_factura,omitempty"`
	Fletes             []FleteRef      `bson:"fletes"`
	FechaEmision       *time.Time      `bson:"fecha_emision"`
	FechaVencimiento   *time.Time      `bson:"fecha_vencimiento"`
	FechaPago          *time.Time      `bson:"fecha_pago"`
	Estado             EstadoFactura   `bson:"estado"`
	EsBorrador         bool            `bson:"es_borrador"`
	MontoTotal         decimal.Decimal `bson:"monto_total"`
	Moneda             string          `bson:"moneda"`
	Descripcion        string          `bson:"descripcion,omitempty"`
	FechaCreacion      time.Time       `bson:"fecha_creacion"`
	FechaActualizacion time.Time       `bson:"fecha_actualizacion"`
}

// FleteIDs devuelve los IDs de fletes en el orden de la factura.
func (f *Factura) FleteIDs() []string {
	ids := make([]string, 0, len(f.Fletes))
	for _, r := range f.Fletes {
		ids = append(ids, r.FleteID)
	}
	return ids
}

// Numero devuelve el número legal o "" si aún es borrador.
func (f *Factura) Numero() string {
	if f.NumeroFactura == nil {
		return ""
	}
	return *f.NumeroFactura
}
