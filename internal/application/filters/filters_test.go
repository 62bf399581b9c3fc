package filters_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/fletes-api/internal/application/filters"
	"github.com/jhoicas/fletes-api/internal/domain"
)

func TestParseDateRange(t *testing.T) {
	r, err := filters.ParseDateRange("desde", "2026-03-01", "hasta", "2026-03-31")
	require.NoError(t, err)
	require.NotNil(t, r.From)
	require.NotNil(t, r.To)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *r.From)
	assert.Equal(t, 31, r.To.Day())
	assert.Equal(t, 23, r.To.Hour())

	_, err = filters.ParseDateRange("desde", "2026-04-01", "hasta", "2026-03-01")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = filters.ParseDateRange("desde", "01/03/2026", "hasta", "")
	assert.ErrorIs(t, err, domain.ErrValidation)

	r, err = filters.ParseDateRange("desde", "", "hasta", "")
	require.NoError(t, err)
	assert.True(t, r.Empty())
}

func TestParseAmountRange(t *testing.T) {
	r, err := filters.ParseAmountRange("monto_min", "100.50", "monto_max", "")
	require.NoError(t, err)
	require.NotNil(t, r.Min)
	assert.Equal(t, "100.5", r.Min.String())
	assert.Nil(t, r.Max)

	_, err = filters.ParseAmountRange("monto_min", "500", "monto_max", "100")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = filters.ParseAmountRange("monto_min", "abc", "monto_max", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseBool(t *testing.T) {
	v, err := filters.ParseBool("x", "true")
	require.NoError(t, err)
	assert.True(t, *v)

	v, err = filters.ParseBool("x", "")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = filters.ParseBool("x", "si")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPeriodoRange(t *testing.T) {
	now := time.Date(2026, 5, 20, 15, 30, 0, 0, time.UTC)

	cases := map[string]time.Time{
		"hoy":    time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC),
		"semana": time.Date(2026, 5, 14, 0, 0, 0, 0, time.UTC),
		"mes":    time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		"año":    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	for periodo, want := range cases {
		r, err := filters.PeriodoRange(periodo, now)
		require.NoError(t, err, periodo)
		assert.Equal(t, want, *r.From, periodo)
		assert.Equal(t, filters.EndOfDay(now), *r.To, periodo)
	}

	_, err := filters.PeriodoRange("trimestre", now)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
