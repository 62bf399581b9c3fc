package repository

import (
	"context"
	"time"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// FacturaFilter criterios de búsqueda de facturas.
type FacturaFilter struct {
	NumeroFactura    string
	Estado           entity.EstadoFactura
	Moneda           string
	EsBorrador       *bool
	FechaEmision     DateRange
	FechaVencimiento DateRange
	FechaPago        DateRange
	Monto            AmountRange
	FleteID          string
	// CodigosFactura restringe el resultado a estos códigos (resuelto desde el snapshot
	// de gestión al filtrar por cliente). Un slice no nil y vacío no devuelve resultados.
	CodigosFactura []string
}

// FacturaRepository puerto de persistencia para facturas (colección "facturacion").
type FacturaRepository interface {
	Create(ctx context.Context, factura *entity.Factura) error
	GetByID(ctx context.Context, id string) (*entity.Factura, error)
	GetByNumero(ctx context.Context, numero string) (*entity.Factura, error)
	Update(ctx context.Context, factura *entity.Factura) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f FacturaFilter, p Page) ([]*entity.Factura, int64, error)

	// ClaimEmision marca la factura como "en emisión" solo si sigue en Borrador y no tiene
	// otra emisión en curso (o la anterior es más vieja que ttl). Devuelve false si no la toma.
	ClaimEmision(ctx context.Context, id string, at time.Time, ttl time.Duration) (bool, error)
	// ReleaseEmision quita la marca tomada en at. Update también la elimina al reemplazar el documento.
	ReleaseEmision(ctx context.Context, id string, at time.Time) error
}
