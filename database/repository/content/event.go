package contentRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoEventRepo struct {
	docs docs[models.Event]
}

func (r *mongoEventRepo) EnsureIndexes(ctx context.Context) error {
	return r.docs.ensureIndexes(ctx, mongo.IndexModel{Keys: bson.D{{Key: "startsAt", Value: 1}}})
}

func (r *mongoEventRepo) Create(ctx context.Context, e *models.Event) error {
	return r.docs.insert(ctx, e)
}

func (r *mongoEventRepo) Replace(ctx context.Context, e *models.Event) error {
	return r.docs.replace(ctx, e.ID, e)
}

func (r *mongoEventRepo) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return r.docs.findOne(ctx, bson.M{"id": id})
}

// List orders events by start time, soonest first.
func (r *mongoEventRepo) List(ctx context.Context) ([]models.Event, error) {
	return r.docs.find(ctx, bson.M{}, bson.D{{Key: "startsAt", Value: 1}})
}

func (r *mongoEventRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *mongoEventRepo) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
