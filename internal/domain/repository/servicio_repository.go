package repository

import (
	"context"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
)

// ServicioRepository puerto de lectura/actualización de servicios ("servicio_principal").
// El CRUD completo de servicios vive fuera de este módulo.
type ServicioRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Servicio, error)
	// UpdateEstado cambia el estado y los permisos de edición/eliminación.
	UpdateEstado(ctx context.Context, id string, estado entity.EstadoServicio, puedeEditar, puedeEliminar bool) error
}
