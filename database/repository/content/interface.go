package contentRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type ProductRepository interface {
	Create(ctx context.Context, p *models.Product) error
	Replace(ctx context.Context, p *models.Product) error
	GetByID(ctx context.Context, id string) (*models.Product, error)
	// GetMany returns the products with the given ids, keyed by id.
	GetMany(ctx context.Context, ids []string) (map[string]models.Product, error)
	List(ctx context.Context, activeOnly bool) ([]models.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type BlogRepository interface {
	Create(ctx context.Context, b *models.Blog) error
	Replace(ctx context.Context, b *models.Blog) error
	// GetByID also resolves a slug.
	GetByID(ctx context.Context, idOrSlug string) (*models.Blog, error)
	List(ctx context.Context, publishedOnly bool) ([]models.Blog, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	Replace(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	List(ctx context.Context) ([]models.Event, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

func NewMongoProductRepo(db *mongo.Database) ProductRepository {
	return &mongoProductRepo{docs: docs[models.Product]{coll: db.Collection("products"), kind: "product"}}
}

func NewMongoBlogRepo(db *mongo.Database) BlogRepository {
	return &mongoBlogRepo{docs: docs[models.Blog]{coll: db.Collection("blogs"), kind: "blog"}}
}

func NewMongoEventRepo(db *mongo.Database) EventRepository {
	return &mongoEventRepo{docs: docs[models.Event]{coll: db.Collection("events"), kind: "event"}}
}
