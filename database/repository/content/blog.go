package contentRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoBlogRepo struct {
	docs docs[models.Blog]
}

func (r *mongoBlogRepo) EnsureIndexes(ctx context.Context) error {
	return r.docs.ensureIndexes(ctx,
		mongo.IndexModel{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
		mongo.IndexModel{Keys: bson.D{{Key: "published", Value: 1}, {Key: "createdAt", Value: -1}}},
	)
}

func (r *mongoBlogRepo) Create(ctx context.Context, b *models.Blog) error {
	return r.docs.insert(ctx, b)
}

func (r *mongoBlogRepo) Replace(ctx context.Context, b *models.Blog) error {
	return r.docs.replace(ctx, b.ID, b)
}

func (r *mongoBlogRepo) GetByID(ctx context.Context, idOrSlug string) (*models.Blog, error) {
	return r.docs.findOne(ctx, bson.M{"$or": bson.A{bson.M{"id": idOrSlug}, bson.M{"slug": idOrSlug}}})
}

func (r *mongoBlogRepo) List(ctx context.Context, publishedOnly bool) ([]models.Blog, error) {
	filter := bson.M{}
	if publishedOnly {
		filter["published"] = true
	}
	return r.docs.find(ctx, filter, nil)
}

func (r *mongoBlogRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *mongoBlogRepo) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
