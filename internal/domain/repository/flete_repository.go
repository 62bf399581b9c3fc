package repository

import (
	"context"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// FleteFilter criterios de búsqueda de fletes.
type FleteFilter struct {
	CodigoFlete       string
	ServicioID        string
	EstadoFlete       entity.EstadoFlete
	PerteneceAFactura *bool
	CodigoFactura     string
	Monto             AmountRange
	FechaCreacion     DateRange
}

// FleteRepository puerto de persistencia para fletes (colección "fletes").
type FleteRepository interface {
	Create(ctx context.Context, flete *entity.Flete) error
	GetByID(ctx context.Context, id string) (*entity.Flete, error)
	GetByIDs(ctx context.Context, ids []string) ([]*entity.Flete, error)
	ExistsForServicio(ctx context.Context, servicioID string) (bool, error)
	UpdateMonto(ctx context.Context, flete *entity.Flete) error
	Delete(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, f FleteFilter, p Page) ([]*entity.Flete, int64, error)

	// Bind vincula el flete a la factura con una actualización condicional atómica:
	// solo procede si el flete está libre o ya pertenece a esa misma factura.
	// Devuelve false si el flete pertenece a otra factura (o no existe).
	Bind(ctx context.Context, fleteID, facturaID, codigoFactura string) (bool, error)
	// Release desvincula solo los fletes indicados que todavía apuntan a la factura.
	Release(ctx context.Context, facturaID string, fleteIDs []string) (int64, error)
	// ReleaseByFactura desvincula todos los fletes que apuntan a la factura.
	ReleaseByFactura(ctx context.Context, facturaID string) (int64, error)
	// ReleaseByCodigoFactura desvincula por código interno y revierte el estado a VALORIZADO.
	ReleaseByCodigoFactura(ctx context.Context, codigoFactura string) (int64, error)
}
