package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jhoicas/fletes-api/internal/domain/repository"
)

// findOne devuelve nil, nil si no hay documento.
func findOne[T any](ctx context.Context, c *mongo.Collection, filter any) (*T, error) {
	var out T
	err := c.FindOne(ctx, filter).Decode(&out)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func findAll[T any](ctx context.Context, c *mongo.Collection, filter any, opts ...*options.FindOptions) ([]*T, error) {
	cur, err := c.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	out := []*T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// findPaged listado paginado más el total del filtro.
func findPaged[T any](ctx context.Context, c *mongo.Collection, filter bson.M, p repository.Page) ([]*T, int64, error) {
	total, err := c.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("contar %s: %w", c.Name(), err)
	}
	out, err := findAll[T](ctx, c, filter, findPage(p))
	if err != nil {
		return nil, 0, fmt.Errorf("listar %s: %w", c.Name(), err)
	}
	return out, total, nil
}

func aggregate[T any](ctx context.Context, c *mongo.Collection, pipeline mongo.Pipeline) ([]T, error) {
	cur, err := c.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func deleteByID(ctx context.Context, c *mongo.Collection, id string) (bool, error) {
	res, err := c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("eliminar en %s: %w", c.Name(), err)
	}
	return res.DeletedCount > 0, nil
}
