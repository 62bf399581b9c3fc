package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// indexSpecs índices por colección. Los únicos sostienen las invariantes de códigos,
// número legal y una gestión por factura.
func indexSpecs() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		CollFletes: {
			{Keys: bson.D{{Key: "codigo_flete", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_codigo_flete")},
			{Keys: bson.D{{Key: "servicio_id", Value: 1}}, Options: options.Index().SetName("ix_servicio")},
			{Keys: bson.D{{Key: "factura_id", Value: 1}}, Options: options.Index().SetName("ix_factura")},
			{Keys: bson.D{{Key: "codigo_factura", Value: 1}}, Options: options.Index().SetName("ix_codigo_factura")},
		},
		CollFacturas: {
			{Keys: bson.D{{Key: "codigo_factura", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_codigo_factura")},
			// Los borradores no tienen número: el único solo aplica a documentos con número string.
			{
				Keys: bson.D{{Key: "numero_factura", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("ux_numero_factura").
					SetPartialFilterExpression(bson.M{"numero_factura": bson.M{"$type": "string"}}),
			},
			{Keys: bson.D{{Key: "estado", Value: 1}, {Key: "fecha_emision", Value: -1}}, Options: options.Index().SetName("ix_estado_emision")},
			{Keys: bson.D{{Key: "fletes.flete_id", Value: 1}}, Options: options.Index().SetName("ix_fletes")},
		},
		CollGestion: {
			{Keys: bson.D{{Key: "codigo_factura", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_gestion_factura")},
			{Keys: bson.D{{Key: "codigo_gestion", Value: 1}}, Options: options.Index().SetUnique(true).SetName("ux_codigo_gestion")},
			{Keys: bson.D{{Key: "estado_pago_neto", Value: 1}, {Key: "fecha_probable_pago", Value: 1}}, Options: options.Index().SetName("ix_estado_fecha_probable")},
			{Keys: bson.D{{Key: "datos_completos.fletes.servicio.cliente", Value: 1}}, Options: options.Index().SetName("ix_snapshot_cliente")},
		},
	}
}

// EnsureIndexes crea los índices si no existen. CreateMany es idempotente para especificaciones iguales.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexSpecs() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("crear índices de %s: %w", coll, err)
		}
	}
	return nil
}
