// Package detraccion calcula la retención SPOT (detracción) aplicada a las facturas de transporte.
package detraccion

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Politica parámetros de la detracción. Umbral y Tasa se leen de configuración.
type Politica struct {
	Umbral decimal.Decimal // monto total mínimo desde el cual aplica (inclusive)
	Tasa   decimal.Decimal // porcentaje, ej. 4.0
}

// PoliticaPorDefecto umbral 400 y tasa 4%.
func PoliticaPorDefecto() Politica {
	return Politica{Umbral: decimal.NewFromInt(400), Tasa: decimal.NewFromInt(4)}
}

// Resultado montos derivados de un total facturado.
type Resultado struct {
	Estado entity.EstadoDetraccion
	Tasa   decimal.Decimal
	Monto  decimal.Decimal
	Neto   decimal.Decimal
}

// Aplica indica si la detracción corresponde para el total dado.
func (p Politica) Aplica(total decimal.Decimal) bool {
	return total.GreaterThanOrEqual(p.Umbral) && p.Tasa.IsPositive()
}

// Calcular deriva tasa, monto y neto para un total.
// Por debajo del umbral la tasa y el monto son cero y el estado es "No Aplica".
func (p Politica) Calcular(total decimal.Decimal) Resultado {
	if !p.Aplica(total) {
		return Resultado{
			Estado: entity.EstadoDetraccionNoAplica,
			Tasa:   decimal.Zero,
			Monto:  decimal.Zero,
			Neto:   total.Round(2),
		}
	}
	return p.ConTasa(total, p.Tasa)
}

// ConTasa recalcula con una tasa explícita (edición manual de la gestión).
func (p Politica) ConTasa(total, tasa decimal.Decimal) Resultado {
	if !tasa.IsPositive() {
		return Resultado{Estado: entity.EstadoDetraccionNoAplica, Tasa: decimal.Zero, Monto: decimal.Zero, Neto: total.Round(2)}
	}
	monto := total.Mul(tasa).Div(hundred).Round(2)
	return Resultado{
		Estado: entity.EstadoDetraccionPendiente,
		Tasa:   tasa,
		Monto:  monto,
		Neto:   total.Sub(monto).Round(2),
	}
}
