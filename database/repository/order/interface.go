package orderRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type OrderRepository interface {
	// Insert fails with database.ErrDuplicate when an order for the same payment reference exists.
	Insert(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetByPaymentRef(ctx context.Context, ref string) (*models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListAll(ctx context.Context) ([]models.Order, error)
	// UpdateStatus sets next only while the order is still in from.
	UpdateStatus(ctx context.Context, id string, from, next models.OrderStatus) (*models.Order, error)
	EnsureIndexes(ctx context.Context) error
}

type mongoOrderRepo struct {
	coll *mongo.Collection
}

func NewMongoOrderRepo(db *mongo.Database) OrderRepository {
	return &mongoOrderRepo{coll: db.Collection("orders")}
}
