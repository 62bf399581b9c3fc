package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/fletes-api/internal/domain/entity"
	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo agregaciones de solo lectura sobre "facturacion_gestion".
type AnalyticsRepo struct {
	col *mongo.Collection
}

func NewAnalyticsRepository(db *mongo.Database) *AnalyticsRepo {
	return &AnalyticsRepo{col: db.Collection(CollGestion)}
}

var noAnulado = bson.E{Key: "estado_pago_neto", Value: bson.M{"$ne": entity.EstadoPagoAnulado}}

func estadoPagoPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{noAnulado}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$estado_pago_neto"},
			{Key: "cantidad", Value: bson.M{"$sum": 1}},
			{Key: "monto_total", Value: bson.M{"$sum": "$monto_total"}},
			{Key: "monto_neto", Value: bson.M{"$sum": "$monto_neto"}},
			{Key: "monto_pagado", Value: bson.M{"$sum": "$monto_pagado_acumulado"}},
			{Key: "monto_detraccion", Value: bson.M{"$sum": "$monto_detraccion"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func detraccionPipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			noAnulado,
			{Key: "estado_detraccion", Value: bson.M{"$in": bson.A{entity.EstadoDetraccionPendiente, entity.EstadoDetraccionPagado}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$estado_detraccion"},
			{Key: "cantidad", Value: bson.M{"$sum": 1}},
			{Key: "monto", Value: bson.M{"$sum": "$monto_detraccion"}},
		}}},
	}
}

// conSaldo registros no cobrados ni anulados con saldo positivo.
func conSaldo() bson.D {
	return bson.D{
		{Key: "estado_pago_neto", Value: bson.M{"$nin": bson.A{entity.EstadoPagoPagado, entity.EstadoPagoAnulado}}},
		{Key: "$expr", Value: bson.M{"$gt": bson.A{"$monto_neto", "$monto_pagado_acumulado"}}},
	}
}

func vencidasQuery(now time.Time) bson.D {
	return append(conSaldo(), bson.E{Key: "fecha_probable_pago", Value: bson.M{"$lt": now}})
}

func porVencerQuery(now, hasta time.Time) bson.D {
	return append(conSaldo(), bson.E{Key: "fecha_probable_pago", Value: bson.M{"$gte": now, "$lte": hasta}})
}

var campoDimension = map[repository.Dimension]string{
	repository.DimensionCliente:   "cliente",
	repository.DimensionProveedor: "proveedor",
	repository.DimensionPlaca:     "placa",
	repository.DimensionConductor: "conductor",
}

// parteFlete fracción de la factura que corresponde al flete desenrollado: proporcional a su
// monto, o partes iguales si todos los fletes valen cero.
var parteFlete = bson.M{"$cond": bson.A{
	bson.M{"$gt": bson.A{"$_monto_fletes", 0}},
	bson.M{"$divide": bson.A{"$datos_completos.fletes.monto_flete", "$_monto_fletes"}},
	bson.M{"$divide": bson.A{1, "$_cantidad_fletes"}},
}}

// dimensionPipeline desenrolla los fletes del snapshot y reparte el neto y lo pagado de cada
// factura entre sus claves según parteFlete; la suma por clave nunca excede el total de la factura.
func dimensionPipeline(dim repository.Dimension, emision repository.DateRange, limit int) mongo.Pipeline {
	match := bson.D{noAnulado}
	if !emision.Empty() {
		match = append(match, bson.E{Key: "datos_completos.fecha_emision", Value: dateRange(emision)})
	}
	clave := "$datos_completos.fletes.servicio." + campoDimension[dim]
	p := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.M{
			"_monto_fletes":    bson.M{"$sum": "$datos_completos.fletes.monto_flete"},
			"_cantidad_fletes": bson.M{"$size": "$datos_completos.fletes"},
		}}},
		{{Key: "$unwind", Value: "$datos_completos.fletes"}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.D{{Key: "factura", Value: "$codigo_factura"}, {Key: "clave", Value: clave}}},
			{Key: "fletes", Value: bson.M{"$sum": 1}},
			{Key: "monto_fletes", Value: bson.M{"$sum": "$datos_completos.fletes.monto_flete"}},
			{Key: "monto_neto", Value: bson.M{"$sum": bson.M{"$multiply": bson.A{"$monto_neto", parteFlete}}}},
			{Key: "monto_pagado", Value: bson.M{"$sum": bson.M{"$multiply": bson.A{"$monto_pagado_acumulado", parteFlete}}}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$_id.clave"},
			{Key: "facturas", Value: bson.M{"$sum": 1}},
			{Key: "fletes", Value: bson.M{"$sum": "$fletes"}},
			{Key: "monto_fletes", Value: bson.M{"$sum": "$monto_fletes"}},
			{Key: "monto_neto", Value: bson.M{"$sum": "$monto_neto"}},
			{Key: "monto_pagado", Value: bson.M{"$sum": "$monto_pagado"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "monto_fletes", Value: -1}, {Key: "_id", Value: 1}}}},
	}
	if limit > 0 {
		p = append(p, bson.D{{Key: "$limit", Value: limit}})
	}
	return p
}

func tendenciaPipeline(desde time.Time) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{
			noAnulado,
			{Key: "datos_completos.fecha_emision", Value: bson.M{"$gte": desde}},
		}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$datos_completos.fecha_emision"}}},
			{Key: "facturas", Value: bson.M{"$sum": 1}},
			{Key: "monto_total", Value: bson.M{"$sum": "$monto_total"}},
			{Key: "monto_detraccion", Value: bson.M{"$sum": "$monto_detraccion"}},
			{Key: "monto_pagado", Value: bson.M{"$sum": "$monto_pagado_acumulado"}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}
}

func (r *AnalyticsRepo) ResumenPorEstadoPago(ctx context.Context) ([]repository.EstadoPagoResult, error) {
	out, err := aggregate[repository.EstadoPagoResult](ctx, r.col, estadoPagoPipeline())
	if err != nil {
		return nil, fmt.Errorf("resumen por estado: %w", err)
	}
	return out, nil
}

func (r *AnalyticsRepo) ResumenDetraccion(ctx context.Context) ([]repository.DetraccionResult, error) {
	out, err := aggregate[repository.DetraccionResult](ctx, r.col, detraccionPipeline())
	if err != nil {
		return nil, fmt.Errorf("resumen detracción: %w", err)
	}
	return out, nil
}

func (r *AnalyticsRepo) ContarVencimientos(ctx context.Context, now, hasta time.Time) (int64, int64, error) {
	vencidas, err := r.col.CountDocuments(ctx, vencidasQuery(now))
	if err != nil {
		return 0, 0, fmt.Errorf("contar vencidas: %w", err)
	}
	porVencer, err := r.col.CountDocuments(ctx, porVencerQuery(now, hasta))
	if err != nil {
		return 0, 0, fmt.Errorf("contar por vencer: %w", err)
	}
	return vencidas, porVencer, nil
}

func (r *AnalyticsRepo) ResumenPorDimension(ctx context.Context, dim repository.Dimension, emision repository.DateRange, limit int) ([]repository.DimensionResult, error) {
	if !dim.Valid() {
		return nil, fmt.Errorf("dimensión no soportada: %s", dim)
	}
	out, err := aggregate[repository.DimensionResult](ctx, r.col, dimensionPipeline(dim, emision, limit))
	if err != nil {
		return nil, fmt.Errorf("resumen por %s: %w", dim, err)
	}
	return out, nil
}

func (r *AnalyticsRepo) TendenciaMensual(ctx context.Context, desde time.Time) ([]repository.TendenciaResult, error) {
	out, err := aggregate[repository.TendenciaResult](ctx, r.col, tendenciaPipeline(desde))
	if err != nil {
		return nil, fmt.Errorf("tendencia mensual: %w", err)
	}
	return out, nil
}
