package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/fletes-api/internal/domain"
	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var _ repository.FleteRepository = (*FleteRepo)(nil)

// FleteRepo implementación de FleteRepository sobre la colección "fletes".
type FleteRepo struct {
	col *mongo.Collection
	now func() time.Time
}

// NewFleteRepository construye el adaptador.
func NewFleteRepository(db *mongo.Database) *FleteRepo {
	return &FleteRepo{col: db.Collection(CollFletes), now: func() time.Time { return time.Now().UTC() }}
}

// Create inserta el flete. codigo_flete duplicado → domain.ErrDuplicate.
func (r *FleteRepo) Create(ctx context.Context, f *entity.Flete) error {
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Duplicate("el código de flete %s ya existe", f.CodigoFlete)
		}
		return fmt.Errorf("insertar flete: %w", err)
	}
	return nil
}

func (r *FleteRepo) GetByID(ctx context.Context, id string) (*entity.Flete, error) {
	f, err := findOne[entity.Flete](ctx, r.col, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("obtener flete: %w", err)
	}
	return f, nil
}

// GetByIDs devuelve los fletes existentes en el orden de ids; los inexistentes se omiten.
func (r *FleteRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.Flete, error) {
	if len(ids) == 0 {
		return []*entity.Flete{}, nil
	}
	found, err := findAll[entity.Flete](ctx, r.col, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("obtener fletes: %w", err)
	}
	byID := make(map[string]*entity.Flete, len(found))
	for _, f := range found {
		byID[f.ID] = f
	}
	out := make([]*entity.Flete, 0, len(found))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *FleteRepo) ExistsForServicio(ctx context.Context, servicioID string) (bool, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"servicio_id": servicioID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("buscar flete del servicio: %w", err)
	}
	return n > 0, nil
}

// UpdateMonto persiste monto, estado y observaciones.
func (r *FleteRepo) UpdateMonto(ctx context.Context, f *entity.Flete) error {
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": f.ID}, bson.M{"$set": bson.M{
		"monto_flete":         f.MontoFlete,
		"estado_flete":        f.EstadoFlete,
		"observaciones":       f.Observaciones,
		"fecha_actualizacion": f.FechaActualizacion,
	}})
	if err != nil {
		return fmt.Errorf("actualizar monto de flete: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FleteRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.col, id)
}

func (r *FleteRepo) List(ctx context.Context, f repository.FleteFilter, p repository.Page) ([]*entity.Flete, int64, error) {
	return findPaged[entity.Flete](ctx, r.col, fleteQuery(f), p)
}

// bindQuery el flete debe estar libre o ya pertenecer a la misma factura.
func bindQuery(fleteID, facturaID string) bson.M {
	return bson.M{
		"_id": fleteID,
		"$or": bson.A{
			bson.M{"pertenece_a_factura": false},
			bson.M{"factura_id": facturaID},
		},
	}
}

// Bind actualización condicional atómica; dos emisiones concurrentes no pueden tomar el mismo flete.
func (r *FleteRepo) Bind(ctx context.Context, fleteID, facturaID, codigoFactura string) (bool, error) {
	res, err := r.col.UpdateOne(ctx, bindQuery(fleteID, facturaID), bson.M{"$set": bson.M{
		"pertenece_a_factura": true,
		"factura_id":          facturaID,
		"codigo_factura":      codigoFactura,
		"fecha_actualizacion": r.now(),
	}})
	if err != nil {
		return false, fmt.Errorf("vincular flete %s: %w", fleteID, err)
	}
	return res.MatchedCount == 1, nil
}

func releaseSet(now time.Time) bson.M {
	return bson.M{
		"pertenece_a_factura": false,
		"factura_id":          nil,
		"codigo_factura":      nil,
		"fecha_actualizacion": now,
	}
}

// Release compensa una emisión fallida: solo toca los fletes que ese intento vinculó.
func (r *FleteRepo) Release(ctx context.Context, facturaID string, fleteIDs []string) (int64, error) {
	if len(fleteIDs) == 0 {
		return 0, nil
	}
	res, err := r.col.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": fleteIDs}, "factura_id": facturaID},
		bson.M{"$set": releaseSet(r.now())},
	)
	if err != nil {
		return 0, fmt.Errorf("liberar fletes de factura %s: %w", facturaID, err)
	}
	return res.MatchedCount, nil
}

func (r *FleteRepo) ReleaseByFactura(ctx context.Context, facturaID string) (int64, error) {
	res, err := r.col.UpdateMany(ctx, bson.M{"factura_id": facturaID}, bson.M{"$set": releaseSet(r.now())})
	if err != nil {
		return 0, fmt.Errorf("liberar fletes de factura %s: %w", facturaID, err)
	}
	return res.MatchedCount, nil
}

// ReleaseByCodigoFactura además revierte el estado a VALORIZADO (anulación).
func (r *FleteRepo) ReleaseByCodigoFactura(ctx context.Context, codigoFactura string) (int64, error) {
	set := releaseSet(r.now())
	set["estado_flete"] = entity.EstadoFleteValorizado
	res, err := r.col.UpdateMany(ctx, bson.M{"codigo_factura": codigoFactura}, bson.M{"$set": set})
	if err != nil {
		return 0, fmt.Errorf("liberar fletes de %s: %w", codigoFactura, err)
	}
	return res.MatchedCount, nil
}
