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

var _ repository.FacturaRepository = (*FacturaRepo)(nil)

// FacturaRepo implementación de FacturaRepository sobre "facturacion".
type FacturaRepo struct {
	col *mongo.Collection
}

// NewFacturaRepository construye el adaptador.
func NewFacturaRepository(db *mongo.Database) *FacturaRepo {
	return &FacturaRepo{col: db.Collection(CollFacturas)}
}

func (r *FacturaRepo) Create(ctx context.Context, f *entity.Factura) error {
	if _, err := r.col.InsertOne(ctx, f); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Duplicate("el código de factura %s ya existe", f.CodigoFactura)
		}
		return fmt.Errorf("insertar factura: %w", err)
	}
	return nil
}

func (r *FacturaRepo) GetByID(ctx context.Context, id string) (*entity.Factura, error) {
	f, err := findOne[entity.Factura](ctx, r.col, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("obtener factura: %w", err)
	}
	return f, nil
}

func (r *FacturaRepo) GetByNumero(ctx context.Context, numero string) (*entity.Factura, error) {
	f, err := findOne[entity.Factura](ctx, r.col, bson.M{"numero_factura": numero})
	if err != nil {
		return nil, fmt.Errorf("obtener factura por número: %w", err)
	}
	return f, nil
}

// Update reemplaza el documento. Un número legal ya usado → domain.ErrDuplicate (índice parcial único).
func (r *FacturaRepo) Update(ctx context.Context, f *entity.Factura) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": f.ID}, f)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Duplicate("el número de factura %s ya existe", f.Numero())
		}
		return fmt.Errorf("actualizar factura: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// campoEmision marca de emisión en curso; no forma parte de la entidad, así que el
// ReplaceOne final de la emisión la borra.
const campoEmision = "emision_en_curso"

// emisionQuery borrador sin marca, o con una marca más vieja que ttl.
func emisionQuery(id string, at time.Time, ttl time.Duration) bson.M {
	return bson.M{
		"_id":    id,
		"estado": entity.EstadoFacturaBorrador,
		"$or": bson.A{
			bson.M{campoEmision: nil},
			bson.M{campoEmision: bson.M{"$lt": at.Add(-ttl)}},
		},
	}
}

// ClaimEmision toma la factura para emitirla con una actualización condicional: dos emisiones
// concurrentes del mismo borrador no pueden pasar ambas.
func (r *FacturaRepo) ClaimEmision(ctx context.Context, id string, at time.Time, ttl time.Duration) (bool, error) {
	res, err := r.col.UpdateOne(ctx, emisionQuery(id, at, ttl), bson.M{"$set": bson.M{campoEmision: at}})
	if err != nil {
		return false, fmt.Errorf("tomar emisión de factura %s: %w", id, err)
	}
	return res.MatchedCount == 1, nil
}

func (r *FacturaRepo) ReleaseEmision(ctx context.Context, id string, at time.Time) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, campoEmision: at},
		bson.M{"$unset": bson.M{campoEmision: ""}},
	)
	if err != nil {
		return fmt.Errorf("liberar emisión de factura %s: %w", id, err)
	}
	return nil
}

func (r *FacturaRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.col, id)
}

func (r *FacturaRepo) List(ctx context.Context, f repository.FacturaFilter, p repository.Page) ([]*entity.Factura, int64, error) {
	return findPaged[entity.Factura](ctx, r.col, facturaQuery(f), p)
}
