package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción multi-documento.
// Con enabled=false (servidor standalone) ejecuta fn directamente y los casos de uso compensan.
type TxRunner struct {
	client  *mongo.Client
	enabled bool
}

// NewTxRunner construye el runner. enabled requiere replica set o sharded cluster.
func NewTxRunner(client *mongo.Client, enabled bool) *TxRunner {
	return &TxRunner{client: client, enabled: enabled}
}

// Transactional indica si Run ofrece atomicidad real.
func (r *TxRunner) Transactional() bool { return r.enabled }

// Run abre una sesión y ejecuta fn con un SessionContext; los repositorios que usan
// ese ctx participan de la transacción. Si ctx ya trae una sesión, fn corre en ella.
func (r *TxRunner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	if !r.enabled || mongo.SessionFromContext(ctx) != nil {
		return fn(ctx)
	}
	sess, err := r.client.StartSession()
	if err != nil {
		return fmt.Errorf("iniciar sesión: %w", err)
	}
	defer sess.EndSession(ctx)

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())
	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	}, txOpts)
	return err
}
