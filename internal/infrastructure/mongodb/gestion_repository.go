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

var _ repository.GestionRepository = (*GestionRepo)(nil)

// GestionRepo implementación de GestionRepository sobre "facturacion_gestion".
type GestionRepo struct {
	col *mongo.Collection
}

// NewGestionRepository construye el adaptador.
func NewGestionRepository(db *mongo.Database) *GestionRepo {
	return &GestionRepo{col: db.Collection(CollGestion)}
}

// Create inserta el registro; el índice único sobre codigo_factura garantiza una gestión por factura.
func (r *GestionRepo) Create(ctx context.Context, g *entity.Gestion) error {
	if _, err := r.col.InsertOne(ctx, g); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.Duplicate("ya existe gestión para la factura %s", g.CodigoFactura)
		}
		return fmt.Errorf("insertar gestión: %w", err)
	}
	return nil
}

func (r *GestionRepo) GetByID(ctx context.Context, id string) (*entity.Gestion, error) {
	g, err := findOne[entity.Gestion](ctx, r.col, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("obtener gestión: %w", err)
	}
	return g, nil
}

func (r *GestionRepo) GetByCodigoFactura(ctx context.Context, codigoFactura string) (*entity.Gestion, error) {
	g, err := findOne[entity.Gestion](ctx, r.col, bson.M{"codigo_factura": codigoFactura})
	if err != nil {
		return nil, fmt.Errorf("obtener gestión por factura: %w", err)
	}
	return g, nil
}

// versionQuery acepta documentos anteriores al campo version como versión 0.
func versionQuery(v int64) any {
	if v == 0 {
		return bson.M{"$in": bson.A{int64(0), nil}}
	}
	return v
}

// Update reemplaza el documento condicionado a la versión leída.
func (r *GestionRepo) Update(ctx context.Context, g *entity.Gestion) error {
	prev := g.Version
	g.Version++
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": g.ID, "version": versionQuery(prev)}, g)
	if err != nil {
		g.Version = prev
		return fmt.Errorf("actualizar gestión: %w", err)
	}
	if res.MatchedCount == 1 {
		return nil
	}
	g.Version = prev
	n, err := r.col.CountDocuments(ctx, bson.M{"_id": g.ID})
	if err != nil {
		return fmt.Errorf("actualizar gestión: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.Conflict("la gestión %s fue modificada por otra operación; reintente", g.CodigoGestion)
}

func (r *GestionRepo) Delete(ctx context.Context, id string) (bool, error) {
	return deleteByID(ctx, r.col, id)
}

func (r *GestionRepo) List(ctx context.Context, f repository.GestionFilter, p repository.Page) ([]*entity.Gestion, int64, error) {
	return findPaged[entity.Gestion](ctx, r.col, gestionQuery(f), p)
}

func (r *GestionRepo) CodigosFacturaPorCliente(ctx context.Context, cliente string) ([]string, error) {
	vals, err := r.col.Distinct(ctx, "codigo_factura", bson.M{campoCliente: contains(cliente)})
	if err != nil {
		return nil, fmt.Errorf("códigos por cliente: %w", err)
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func vencibleQuery(before time.Time) bson.M {
	return bson.M{
		"estado_pago_neto":    bson.M{"$in": estadosVencibles()},
		"fecha_probable_pago": bson.M{"$lt": before},
	}
}

func (r *GestionRepo) FindVencibles(ctx context.Context, before time.Time) ([]*entity.Gestion, error) {
	out, err := findAll[entity.Gestion](ctx, r.col, vencibleQuery(before),
		options.Find().SetSort(bson.D{{Key: "fecha_probable_pago", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("buscar vencibles: %w", err)
	}
	return out, nil
}

// MarkVencido condicional sobre el estado: un pago registrado entre la búsqueda y la marca gana.
func (r *GestionRepo) MarkVencido(ctx context.Context, id string, now time.Time) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id, "estado_pago_neto": bson.M{"$in": estadosVencibles()}},
		bson.M{
			"$set": bson.M{"estado_pago_neto": entity.EstadoPagoVencido, "ultima_actualizacion": now},
			"$inc": bson.M{"version": 1},
		},
	)
	if err != nil {
		return false, fmt.Errorf("marcar vencido: %w", err)
	}
	return res.MatchedCount == 1, nil
}
