package detraccion_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/fletes-api/internal/domain/detraccion"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcular_SobreUmbral(t *testing.T) {
	r := detraccion.PoliticaPorDefecto().Calcular(dec("1000.00"))

	assert.Equal(t, entity.EstadoDetraccionPendiente, r.Estado)
	assert.True(t, r.Tasa.Equal(dec("4")))
	assert.True(t, r.Monto.Equal(dec("40.00")), "monto: %s", r.Monto)
	assert.True(t, r.Neto.Equal(dec("960.00")), "neto: %s", r.Neto)
}

func TestCalcular_BajoUmbral_NoAplica(t *testing.T) {
	r := detraccion.PoliticaPorDefecto().Calcular(dec("200.00"))

	assert.Equal(t, entity.EstadoDetraccionNoAplica, r.Estado)
	assert.True(t, r.Monto.IsZero())
	assert.True(t, r.Tasa.IsZero())
	assert.True(t, r.Neto.Equal(dec("200.00")))
}

func TestCalcular_UmbralExactoAplica(t *testing.T) {
	r := detraccion.PoliticaPorDefecto().Calcular(dec("400"))

	assert.Equal(t, entity.EstadoDetraccionPendiente, r.Estado)
	assert.True(t, r.Monto.Equal(dec("16")))
	assert.True(t, r.Neto.Equal(dec("384")))
}

func TestCalcular_RedondeoDosDecimales(t *testing.T) {
	r := detraccion.PoliticaPorDefecto().Calcular(dec("1234.57"))

	// 1234.57 * 0.04 = 49.3828
	assert.Equal(t, "49.38", r.Monto.StringFixed(2))
	assert.Equal(t, "1185.19", r.Neto.StringFixed(2))
}

func TestCalcular_PoliticaConfigurada(t *testing.T) {
	p := detraccion.Politica{Umbral: dec("700"), Tasa: dec("12")}

	assert.False(t, p.Aplica(dec("699.99")))
	r := p.Calcular(dec("1000"))
	assert.Equal(t, "120.00", r.Monto.StringFixed(2))
	assert.Equal(t, "880.00", r.Neto.StringFixed(2))
}

func TestConTasa_CeroNoAplica(t *testing.T) {
	r := detraccion.PoliticaPorDefecto().ConTasa(dec("1000"), decimal.Zero)

	assert.Equal(t, entity.EstadoDetraccionNoAplica, r.Estado)
	assert.True(t, r.Neto.Equal(dec("1000")))
}
