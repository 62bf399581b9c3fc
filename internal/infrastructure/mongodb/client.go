// Package mongodb implementa los puertos de persistencia sobre MongoDB.
package mongodb

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jhoicas/fletes-api/pkg/config"
)

// Nombres de colección.
const (
	CollFletes    = "fletes"
	CollFacturas  = "facturacion"
	CollGestion   = "facturacion_gestion"
	CollServicios = "servicio_principal"
	CollCounters  = "counters"
)

// Connect abre el cliente con el codec de decimal registrado y verifica la conexión con un ping.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetRegistry(NewRegistry()).
		SetTimeout(cfg.Timeout).
		SetMaxPoolSize(50).
		SetMinPoolSize(2)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("conectar mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	log.Info().Str("database", cfg.Database).Bool("transactions", cfg.Transactions).Msg("conectado a MongoDB")
	return client, nil
}
