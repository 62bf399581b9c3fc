package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var _ repository.ServicioRepository = (*ServicioRepo)(nil)

// ServicioRepo lectura y cambio de estado sobre "servicio_principal".
type ServicioRepo struct {
	col *mongo.Collection
	now func() time.Time
}

func NewServicioRepository(db *mongo.Database) *ServicioRepo {
	return &ServicioRepo{col: db.Collection(CollServicios), now: func() time.Time { return time.Now().UTC() }}
}

func (r *ServicioRepo) GetByID(ctx context.Context, id string) (*entity.Servicio, error) {
	s, err := findOne[entity.Servicio](ctx, r.col, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("obtener servicio: %w", err)
	}
	return s, nil
}

func (r *ServicioRepo) UpdateEstado(ctx context.Context, id string, estado entity.EstadoServicio, puedeEditar, puedeEliminar bool) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{
		"estado":              estado,
		"puede_editar":        puedeEditar,
		"puede_eliminar":      puedeEliminar,
		"fecha_actualizacion": r.now(),
	}})
	if err != nil {
		return fmt.Errorf("actualizar estado de servicio: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
