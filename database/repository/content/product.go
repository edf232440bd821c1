package contentRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoProductRepo struct {
	docs docs[models.Product]
}

func (r *mongoProductRepo) EnsureIndexes(ctx context.Context) error {
	return r.docs.ensureIndexes(ctx, mongo.IndexModel{Keys: bson.D{{Key: "isActive", Value: 1}, {Key: "category", Value: 1}}})
}

func (r *mongoProductRepo) Create(ctx context.Context, p *models.Product) error {
	return r.docs.insert(ctx, p)
}

func (r *mongoProductRepo) Replace(ctx context.Context, p *models.Product) error {
	return r.docs.replace(ctx, p.ID, p)
}

func (r *mongoProductRepo) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return r.docs.findOne(ctx, bson.M{"id": id})
}

func (r *mongoProductRepo) GetMany(ctx context.Context, ids []string) (map[string]models.Product, error) {
	out := make(map[string]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := r.docs.find(ctx, bson.M{"id": bson.M{"$in": ids}}, nil)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func (r *mongoProductRepo) List(ctx context.Context, activeOnly bool) ([]models.Product, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	return r.docs.find(ctx, filter, nil)
}

func (r *mongoProductRepo) Delete(ctx context.Context, id string) error {
	return r.docs.delete(ctx, id)
}

func (r *mongoProductRepo) Count(ctx context.Context) (int64, error) {
	return r.docs.count(ctx)
}
