// File: database/repository/slot/queries.go
package slotRepo

import (
	"context"
	"fmt"
	"time"

	"resonance/database"
	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) List(ctx context.Context, q SlotQuery) ([]models.Slot, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if q.SessionType != "" {
		filter["sessionType"] = q.SessionType
	}
	if !q.IncludeBooked {
		filter["isBooked"] = false
	}
	dateRange := bson.M{}
	if q.FromDate != "" {
		dateRange["$gte"] = q.FromDate
	}
	if q.ToDate != "" {
		dateRange["$lte"] = q.ToDate
	}
	if len(dateRange) > 0 {
		filter["date"] = dateRange
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch slots: %w", err)
	}
	defer cursor.Close(ctx)

	slots := []models.Slot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("error decoding slots: %w", err)
	}
	return slots, nil
}

// Claim is a single conditional update; two concurrent claims for the same
// slot cannot both match isBooked=false.
func (r *mongoSlotRepo) Claim(ctx context.Context, sessionType models.SessionType, date, t string) (*models.Slot, error) {
	if sessionType == "" || date == "" || t == "" {
		return nil, errEmptyClaim
	}
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{
		"sessionType": sessionType,
		"date":        date,
		"time":        t,
		"isBooked":    false,
	}
	update := bson.M{"$set": bson.M{"isBooked": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var slot models.Slot
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&slot); err != nil {
		if err = database.Translate(err); err == database.ErrNotFound {
			return nil, database.ErrConflict
		}
		return nil, fmt.Errorf("failed to claim slot: %w", err)
	}
	return &slot, nil
}
