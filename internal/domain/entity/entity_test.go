package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

func TestFlete_SetMonto_Valoriza(t *testing.T) {
	f := &entity.Flete{EstadoFlete: entity.EstadoFletePendiente}

	assert.True(t, f.SetMonto(decimal.NewFromInt(150)))
	assert.Equal(t, entity.EstadoFleteValorizado, f.EstadoFlete)

	// Volver a cero no regresa a PENDIENTE.
	assert.True(t, f.SetMonto(decimal.Zero))
	assert.Equal(t, entity.EstadoFleteValorizado, f.EstadoFlete)
}

func TestFlete_SetMonto_NegativoRechazado(t *testing.T) {
	f := &entity.Flete{EstadoFlete: entity.EstadoFletePendiente, MontoFlete: decimal.NewFromInt(10)}

	assert.False(t, f.SetMonto(decimal.NewFromInt(-1)))
	assert.True(t, f.MontoFlete.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, entity.EstadoFletePendiente, f.EstadoFlete)
}

func TestEstadoFactura_Transiciones(t *testing.T) {
	cases := []struct {
		from, to entity.EstadoFactura
		ok       bool
	}{
		{entity.EstadoFacturaBorrador, entity.EstadoFacturaEmitida, true},
		{entity.EstadoFacturaBorrador, entity.EstadoFacturaPagada, false},
		{entity.EstadoFacturaEmitida, entity.EstadoFacturaPagada, true},
		{entity.EstadoFacturaEmitida, entity.EstadoFacturaAnulada, true},
		{entity.EstadoFacturaVencida, entity.EstadoFacturaParcial, true},
		{entity.EstadoFacturaPagada, entity.EstadoFacturaAnulada, false},
		{entity.EstadoFacturaAnulada, entity.EstadoFacturaEmitida, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
	assert.True(t, entity.EstadoFacturaAnulada.Terminal())
	assert.False(t, entity.EstadoFactura("Otro").Valid())
}

func TestEstadoPagoNeto_AnuladoTerminal(t *testing.T) {
	assert.False(t, entity.EstadoPagoAnulado.CanTransitionTo(entity.EstadoPagoPendiente))
	assert.True(t, entity.EstadoPagoVencido.CanTransitionTo(entity.EstadoPagoPagado))
	assert.True(t, entity.EstadoPagoPagado.CanTransitionTo(entity.EstadoPagoAnulado))
	assert.True(t, entity.EstadoPagoPendiente.Vencible())
	assert.False(t, entity.EstadoPagoEnDisputa.Vencible())
}

func TestEstadoPagoDesdeMontos(t *testing.T) {
	neto := decimal.NewFromInt(960)
	assert.Equal(t, entity.EstadoPagoPendiente, entity.EstadoPagoDesdeMontos(decimal.Zero, neto))
	assert.Equal(t, entity.EstadoPagoPagadoParcial, entity.EstadoPagoDesdeMontos(decimal.NewFromInt(100), neto))
	assert.Equal(t, entity.EstadoPagoPagado, entity.EstadoPagoDesdeMontos(neto, neto))
}

func TestGestion_SaldoYDiasVencido(t *testing.T) {
	venc := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	g := &entity.Gestion{
		MontoNeto:            decimal.NewFromInt(960),
		MontoPagadoAcumulado: decimal.NewFromInt(160),
		FechaProbablePago:    &venc,
	}
	assert.Equal(t, "800", g.SaldoPendiente().String())
	assert.Equal(t, 10, g.DiasVencido(venc.AddDate(0, 0, 10)))
	assert.Equal(t, 0, g.DiasVencido(venc.AddDate(0, 0, -3)))

	g.MontoPagadoAcumulado = decimal.NewFromInt(960)
	assert.True(t, g.SaldoPendiente().IsZero())
	assert.Equal(t, 0, g.DiasVencido(venc.AddDate(0, 0, 10)))
}

func TestFacturaSnapshot_ClientesDistintos(t *testing.T) {
	s := entity.FacturaSnapshot{Fletes: []entity.FleteSnapshot{
		{Servicio: entity.ServicioSnapshot{Cliente: "ACME"}},
		{Servicio: entity.ServicioSnapshot{Cliente: ""}},
		{Servicio: entity.ServicioSnapshot{Cliente: "ACME"}},
		{Servicio: entity.ServicioSnapshot{Cliente: "Beta SAC"}},
	}}
	assert.Equal(t, []string{"ACME", "Beta SAC"}, s.Clientes())
}
