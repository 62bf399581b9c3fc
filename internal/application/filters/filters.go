// Package filters convierte los parámetros de query (texto) en criterios tipados de repositorio.
package filters

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// DateLayout formato de fechas en query y respuestas.
const DateLayout = "2006-01-02"

// Periodos relativos aceptados en el listado de facturas.
const (
	PeriodoHoy    = "hoy"
	PeriodoSemana = "semana" // últimos 7 días incluyendo hoy
	PeriodoMes    = "mes"    // mes calendario en curso
	PeriodoAnio   = "año"    // año calendario en curso
)

// ParseDate interpreta YYYY-MM-DD en UTC. Vacío devuelve nil.
func ParseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return nil, domain.Validation("%s: fecha inválida %q (formato YYYY-MM-DD)", field, s)
	}
	return &t, nil
}

// ParseDateRange arma un rango inclusivo; el extremo superior cubre el día completo.
func ParseDateRange(fromField, from, toField, to string) (repository.DateRange, error) {
	var r repository.DateRange
	f, err := ParseDate(fromField, from)
	if err != nil {
		return r, err
	}
	t, err := ParseDate(toField, to)
	if err != nil {
		return r, err
	}
	if t != nil {
		end := EndOfDay(*t)
		t = &end
	}
	if f != nil && t != nil && f.After(*t) {
		return r, domain.Validation("%s no puede ser posterior a %s", fromField, toField)
	}
	r.From, r.To = f, t
	return r, nil
}

// ParseAmount interpreta un monto decimal.
func ParseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, domain.Validation("%s: monto inválido %q", field, s)
	}
	return d, nil
}

// ParseAmountRange arma un rango de montos; ambos extremos son opcionales.
func ParseAmountRange(minField, min, maxField, max string) (repository.AmountRange, error) {
	var r repository.AmountRange
	if strings.TrimSpace(min) != "" {
		d, err := ParseAmount(minField, min)
		if err != nil {
			return r, err
		}
		r.Min = &d
	}
	if strings.TrimSpace(max) != "" {
		d, err := ParseAmount(maxField, max)
		if err != nil {
			return r, err
		}
		r.Max = &d
	}
	if r.Min != nil && r.Max != nil && r.Min.GreaterThan(*r.Max) {
		return r, domain.Validation("%s no puede ser mayor que %s", minField, maxField)
	}
	return r, nil
}

// ParseBool acepta "true"/"false". Vacío devuelve nil.
func ParseBool(field, s string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil, nil
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, domain.Validation("%s: se esperaba true o false", field)
}

// PeriodoRange traduce un periodo relativo a un rango de fechas respecto de now.
func PeriodoRange(periodo string, now time.Time) (repository.DateRange, error) {
	today := StartOfDay(now)
	end := EndOfDay(now)
	var from time.Time
	switch periodo {
	case PeriodoHoy:
		from = today
	case PeriodoSemana:
		from = today.AddDate(0, 0, -6)
	case PeriodoMes:
		from = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	case PeriodoAnio:
		from = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
	default:
		return repository.DateRange{}, domain.Validation("periodo inválido %q (hoy, semana, mes, año)", periodo)
	}
	return repository.DateRange{From: &from, To: &end}, nil
}

// StartOfDay medianoche del día de t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay último instante del día de t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// FormatDate YYYY-MM-DD o nil.
func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}

// FormatTimestamp marca de tiempo RFC 3339.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}
