package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstadoDetraccion estado de la detracción (retención SPOT).
type EstadoDetraccion string

const (
	EstadoDetraccionNoAplica  EstadoDetraccion = "No Aplica"
	EstadoDetraccionPendiente EstadoDetraccion = "Pendiente"
	EstadoDetraccionPagado    EstadoDetraccion = "Pagado"
)

// Valid indica si el estado pertenece al catálogo.
func (e EstadoDetraccion) Valid() bool {
	switch e {
	case EstadoDetraccionNoAplica, EstadoDetraccionPendiente, EstadoDetraccionPagado:
		return true
	}
	return false
}

// EstadoPagoNeto estado de cobro del monto neto.
type EstadoPagoNeto string

const (
	EstadoPagoPendiente     EstadoPagoNeto = "Pendiente"
	EstadoPagoProgramado    EstadoPagoNeto = "Programado"
	EstadoPagoPagadoParcial EstadoPagoNeto = "Pagado Parcial"
	EstadoPagoPagado        EstadoPagoNeto = "Pagado"
	EstadoPagoVencido       EstadoPagoNeto = "Vencido"
	EstadoPagoEnDisputa     EstadoPagoNeto = "En Disputa"
	EstadoPagoAnulado       EstadoPagoNeto = "Anulado"
)

var estadosPagoNeto = []EstadoPagoNeto{
	EstadoPagoPendiente, EstadoPagoProgramado, EstadoPagoPagadoParcial,
	EstadoPagoPagado, EstadoPagoVencido, EstadoPagoEnDisputa, EstadoPagoAnulado,
}

// pagoTransitions: Anulado es terminal; el resto puede moverse a cualquier estado.
var pagoTransitions = func() map[EstadoPagoNeto]map[EstadoPagoNeto]bool {
	t := make(map[EstadoPagoNeto]map[EstadoPagoNeto]bool, len(estadosPagoNeto))
	for _, from := range estadosPagoNeto {
		t[from] = map[EstadoPagoNeto]bool{}
		if from == EstadoPagoAnulado {
			continue
		}
		for _, to := range estadosPagoNeto {
			t[from][to] = true
		}
	}
	return t
}()

// Valid indica si el estado pertenece al catálogo.
func (e EstadoPagoNeto) Valid() bool {
	_, ok := pagoTransitions[e]
	return ok
}

// CanTransitionTo consulta la tabla de transiciones.
func (e EstadoPagoNeto) CanTransitionTo(next EstadoPagoNeto) bool {
	return pagoTransitions[e][next]
}

// Vencible indica si un registro en este estado puede pasar a Vencido en el barrido.
func (e EstadoPagoNeto) Vencible() bool {
	return e == EstadoPagoPendiente || e == EstadoPagoProgramado || e == EstadoPagoPagadoParcial
}

// EstadosVencibles estados no terminales que el barrido de vencidos considera.
func EstadosVencibles() []EstadoPagoNeto {
	return []EstadoPagoNeto{EstadoPagoPendiente, EstadoPagoProgramado, EstadoPagoPagadoParcial}
}

// Prioridad de cobranza.
type Prioridad string

const (
	PrioridadBaja    Prioridad = "Baja"
	PrioridadMedia   Prioridad = "Media"
	PrioridadAlta    Prioridad = "Alta"
	PrioridadUrgente Prioridad = "Urgente"
)

// Valid indica si la prioridad pertenece al catálogo.
func (p Prioridad) Valid() bool {
	switch p {
	case PrioridadBaja, PrioridadMedia, PrioridadAlta, PrioridadUrgente:
		return true
	}
	return false
}

// Pago abono registrado sobre el monto neto.
type Pago struct {
	Monto        decimal.Decimal `bson:"monto"`
	Fecha        time.Time       `bson:"fecha"`
	NroOperacion string          `bson:"nro_operacion,omitempty"`
}

// Gestion registro de cobranza, uno a uno con una factura emitida.
type Gestion struct {
	ID                      string           `bson:"_id"`
	CodigoGestion           string           `bson:"codigo_gestion"`
	CodigoFactura           string           `bson:"codigo_factura"`
	FacturaID               string           `bson:"factura_id"`
	NumeroFactura           string           `bson:"numero_factura"`
	Snapshot                FacturaSnapshot  `bson:"datos_completos"`
	MontoTotal              decimal.Decimal  `bson:"monto_total"`
	EstadoDetraccion        EstadoDetraccion `bson:"estado_detraccion"`
	TasaDetraccion          decimal.Decimal  `bson:"tasa_detraccion"`
	MontoDetraccion         decimal.Decimal  `bson:"monto_detraccion"`
	FechaPagoDetraccion     *time.Time       `bson:"fecha_pago_detraccion"`
	NroConstanciaDetraccion *string          `bson:"nro_constancia_detraccion"`
	EstadoPagoNeto          EstadoPagoNeto   `bson:"estado_pago_neto"`
	MontoNeto               decimal.Decimal  `bson:"monto_neto"`
	MontoPagadoAcumulado    decimal.Decimal  `bson:"monto_pagado_acumulado"`
	FechaProbablePago       *time.Time       `bson:"fecha_probable_pago"`
	FechaUltimoPago         *time.Time       `bson:"fecha_ultimo_pago"`
	NroOperacion            *string          `bson:"nro_operacion"`
	Pagos                   []Pago           `bson:"pagos"`
	Prioridad               Prioridad        `bson:"prioridad"`
	Responsable             string           `bson:"responsable,omitempty"`
	Observaciones           string           `bson:"observaciones,omitempty"`
	FechaCreacion           time.Time        `bson:"fecha_creacion"`
	UltimaActualizacion     time.Time        `bson:"ultima_actualizacion"`
	// Version control de concurrencia optimista; cada escritura la incrementa.
	Version int64 `bson:"version"`
}

// SaldoPendiente monto neto menos lo cobrado; se calcula siempre al leer.
func (g *Gestion) SaldoPendiente() decimal.Decimal {
	saldo := g.MontoNeto.Sub(g.MontoPagadoAcumulado)
	if saldo.IsNegative() {
		return decimal.Zero
	}
	return saldo
}

// DiasVencido días transcurridos desde la fecha probable de pago (0 si no vence o ya está cobrada).
func (g *Gestion) DiasVencido(now time.Time) int {
	if g.FechaProbablePago == nil || !g.SaldoPendiente().IsPositive() {
		return 0
	}
	d := int(now.Sub(*g.FechaProbablePago).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

// EstadoPagoDesdeMontos deriva el estado de cobro a partir de lo pagado frente al neto.
func EstadoPagoDesdeMontos(pagado, neto decimal.Decimal) EstadoPagoNeto {
	switch {
	case !pagado.IsPositive():
		return EstadoPagoPendiente
	case pagado.GreaterThanOrEqual(neto):
		return EstadoPagoPagado
	default:
		return EstadoPagoPagadoParcial
	}
}
