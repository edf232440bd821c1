package statsRepo

import (
	"context"
	"fmt"
	"time"

	"resonance/database"
	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StatsRepository runs the dashboard aggregations across collections.
type StatsRepository interface {
	// EnquiryCounts groups enquiries by a field ("status" or "sessionType").
	EnquiryCounts(ctx context.Context, field string) (map[string]int64, error)
	// SlotCounts returns booked and open slot totals.
	SlotCounts(ctx context.Context) (booked, open int64, err error)
	// OrderTotals returns the number of orders and the summed amount of revenue statuses.
	OrderTotals(ctx context.Context, revenue []models.OrderStatus) (orders, amount int64, err error)
	// RevenueByMonth sums revenue-status orders created since the given time, per month, oldest first.
	RevenueByMonth(ctx context.Context, revenue []models.OrderStatus, since time.Time) ([]models.MonthlyRevenue, error)
}

type mongoStatsRepo struct {
	enquiries *mongo.Collection
	slots     *mongo.Collection
	orders    *mongo.Collection
}

func NewMongoStatsRepo(db *mongo.Database) StatsRepository {
	return &mongoStatsRepo{
		enquiries: db.Collection("enquiries"),
		slots:     db.Collection("slots"),
		orders:    db.Collection("orders"),
	}
}

type bucket struct {
	Key   interface{} `bson:"_id"`
	Count int64       `bson:"count"`
	Total int64       `bson:"total"`
}

func aggregate(ctx context.Context, coll *mongo.Collection, pipeline mongo.Pipeline, out interface{}) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return fmt.Errorf("aggregation error on %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, out); err != nil {
		return fmt.Errorf("error decoding aggregation result: %w", err)
	}
	return nil
}

func (r *mongoStatsRepo) EnquiryCounts(ctx context.Context, field string) (map[string]int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$" + field,
			"count": bson.M{"$sum": 1},
		}}},
	}
	var results []bucket
	if err := aggregate(ctx, r.enquiries, pipeline, &results); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(results))
	for _, b := range results {
		key, _ := b.Key.(string)
		counts[key] += b.Count
	}
	return counts, nil
}

func (r *mongoStatsRepo) SlotCounts(ctx context.Context) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$isBooked",
			"count": bson.M{"$sum": 1},
		}}},
	}
	var results []bucket
	if err := aggregate(ctx, r.slots, pipeline, &results); err != nil {
		return 0, 0, err
	}

	var booked, open int64
	for _, b := range results {
		if isBooked, _ := b.Key.(bool); isBooked {
			booked += b.Count
		} else {
			open += b.Count
		}
	}
	return booked, open, nil
}

func (r *mongoStatsRepo) OrderTotals(ctx context.Context, revenue []models.OrderStatus) (int64, int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": 1},
			"total": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$in": bson.A{"$status", revenue}}, "$amount", 0},
			}},
		}}},
	}
	var results []bucket
	if err := aggregate(ctx, r.orders, pipeline, &results); err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, nil
	}
	return results[0].Count, results[0].Total, nil
}

func (r *mongoStatsRepo) RevenueByMonth(ctx context.Context, revenue []models.OrderStatus, since time.Time) ([]models.MonthlyRevenue, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"status":    bson.M{"$in": revenue},
			"createdAt": bson.M{"$gte": since},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":    bson.M{"$dateToString": bson.M{"format": "%Y-%m", "date": "$createdAt"}},
			"amount": bson.M{"$sum": "$amount"},
			"orders": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}
	months := []models.MonthlyRevenue{}
	if err := aggregate(ctx, r.orders, pipeline, &months); err != nil {
		return nil, err
	}
	return months, nil
}
