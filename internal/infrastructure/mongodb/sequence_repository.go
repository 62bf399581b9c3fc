package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo contadores atómicos en "counters" ({_id: secuencia, seq: n}).
type SequenceRepo struct {
	db *mongo.Database
}

func NewSequenceRepository(db *mongo.Database) *SequenceRepo {
	return &SequenceRepo{db: db}
}

// Next $inc con upsert y documento posterior; el primer valor de una secuencia nueva es 1.
func (r *SequenceRepo) Next(ctx context.Context, sequence string) (int64, error) {
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.db.Collection(CollCounters).FindOneAndUpdate(ctx,
		bson.M{"_id": sequence},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("incrementar secuencia %s: %w", sequence, err)
	}
	return doc.Seq, nil
}

func (r *SequenceRepo) CodeExists(ctx context.Context, collection, field, code string) (bool, error) {
	n, err := r.db.Collection(collection).CountDocuments(ctx, bson.M{field: code}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("verificar código %s: %w", code, err)
	}
	return n > 0, nil
}
