package contentRepo

import (
	"context"
	"fmt"
	"time"

	"resonance/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// docs holds the collection plumbing shared by the content repositories.
type docs[T any] struct {
	coll *mongo.Collection
	kind string
}

func (d docs[T]) ensureIndexes(ctx context.Context, extra ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := append([]mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}, extra...)
	if _, err := d.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create %s indexes: %w", d.kind, err)
	}
	return nil
}

func (d docs[T]) insert(ctx context.Context, doc *T) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if _, err := d.coll.InsertOne(ctx, doc); err != nil {
		err = database.Translate(err)
		if err == database.ErrDuplicate {
			return err
		}
		return fmt.Errorf("failed to create %s: %w", d.kind, err)
	}
	return nil
}

func (d docs[T]) replace(ctx context.Context, id string, doc *T) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := d.coll.ReplaceOne(ctx, bson.M{"id": id}, doc)
	if err != nil {
		err = database.Translate(err)
		if err == database.ErrDuplicate {
			return err
		}
		return fmt.Errorf("failed to update %s %s: %w", d.kind, id, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (d docs[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var doc T
	if err := d.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, database.Translate(err)
	}
	return &doc, nil
}

// find returns matches newest first, never nil.
func (d docs[T]) find(ctx context.Context, filter bson.M, sort bson.D) ([]T, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if sort == nil {
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}
	cursor, err := d.coll.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %ss: %w", d.kind, err)
	}
	defer cursor.Close(ctx)

	out := []T{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("error decoding %ss: %w", d.kind, err)
	}
	return out, nil
}

func (d docs[T]) delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := d.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", d.kind, id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (d docs[T]) count(ctx context.Context) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := d.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count %ss: %w", d.kind, err)
	}
	return n, nil
}
