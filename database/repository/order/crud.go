package orderRepo

import (
	"context"
	"fmt"
	"time"

	"resonance/database"
	"resonance/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoOrderRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "paymentRef", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create order indexes: %w", err)
	}
	return nil
}

func (r *mongoOrderRepo) Insert(ctx context.Context, o *models.Order) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, o); err != nil {
		err = database.Translate(err)
		if err == database.ErrDuplicate {
			return err
		}
		return fmt.Errorf("failed to insert order: %w", err)
	}
	return nil
}

func (r *mongoOrderRepo) findOne(ctx context.Context, filter bson.M) (*models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var o models.Order
	if err := r.coll.FindOne(ctx, filter).Decode(&o); err != nil {
		return nil, database.Translate(err)
	}
	return &o, nil
}

func (r *mongoOrderRepo) GetByID(ctx context.Context, id string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoOrderRepo) GetByPaymentRef(ctx context.Context, ref string) (*models.Order, error) {
	return r.findOne(ctx, bson.M{"paymentRef": ref})
}

func (r *mongoOrderRepo) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("error decoding orders: %w", err)
	}
	return orders, nil
}

func (r *mongoOrderRepo) ListByUser(ctx context.Context, userID string) ([]models.Order, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

func (r *mongoOrderRepo) ListAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoOrderRepo) UpdateStatus(ctx context.Context, id string, from, next models.OrderStatus) (*models.Order, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": next, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o models.Order
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&o)
	if err == mongo.ErrNoDocuments {
		// The order moved on (or vanished) since it was read.
		return nil, database.ErrConflict
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}
	return &o, nil
}
