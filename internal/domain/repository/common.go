package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// Page paginación simple (limit/offset) común a todos los listados.
type Page struct {
	Limit  int
	Offset int
}

// DateRange rango de fechas inclusivo; cualquiera de los extremos puede ser nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// Empty indica que no hay ningún extremo definido.
func (r DateRange) Empty() bool { return r.From == nil && r.To == nil }

// AmountRange rango de montos inclusivo.
type AmountRange struct {
	Min *decimal.Decimal
	Max *decimal.Decimal
}

// Empty indica que no hay ningún extremo definido.
func (r AmountRange) Empty() bool { return r.Min == nil && r.Max == nil }
