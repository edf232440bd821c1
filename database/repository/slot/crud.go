// File: database/repository/slot/crud.go
package slotRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resonance/database"
	"resonance/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoSlotRepo) Create(ctx context.Context, slot *models.Slot) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	now := time.Now()
	slot.CreatedAt = now
	slot.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, slot); err != nil {
		return fmt.Errorf("failed to create slot: %w", database.Translate(err))
	}
	return nil
}

// CreateMany inserts slots unordered and returns the ids that were stored.
// Slots rejected by the unique index are skipped; any other write error is
// returned together with the ids that did make it in.
func (r *mongoSlotRepo) CreateMany(ctx context.Context, slots []models.Slot) ([]string, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	docs := make([]interface{}, len(slots))
	ids := make([]string, len(slots))
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		slots[i].CreatedAt = now
		slots[i].UpdatedAt = now
		docs[i] = slots[i]
		ids[i] = slots[i].ID
	}

	_, err := r.coll.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err == nil {
		return ids, nil
	}

	var bwe mongo.BulkWriteException
	if !errors.As(err, &bwe) || len(bwe.WriteErrors) == 0 {
		return nil, fmt.Errorf("failed to create slots: %w", database.Translate(err))
	}
	failed := make(map[int]bool, len(bwe.WriteErrors))
	var other error
	for _, we := range bwe.WriteErrors {
		failed[we.Index] = true
		if !isDuplicateCode(we.Code) && other == nil {
			other = fmt.Errorf("failed to create slot %d: %s", we.Index, we.Message)
		}
	}
	inserted := make([]string, 0, len(ids)-len(failed))
	for i, id := range ids {
		if !failed[i] {
			inserted = append(inserted, id)
		}
	}
	if other == nil && bwe.WriteConcernError != nil {
		other = fmt.Errorf("failed to create slots: %s", bwe.WriteConcernError.Message)
	}
	return inserted, other
}

func isDuplicateCode(code int) bool {
	return code == 11000 || code == 11001 || code == 12582
}

func (r *mongoSlotRepo) GetByID(ctx context.Context, id string) (*models.Slot, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var slot models.Slot
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&slot); err != nil {
		return nil, database.Translate(err)
	}
	return &slot, nil
}

func (r *mongoSlotRepo) AttachEnquiry(ctx context.Context, slotID, enquiryID string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID},
		bson.M{"$set": bson.M{"enquiryId": enquiryID, "updatedAt": time.Now()}},
	)
	if err != nil {
		return fmt.Errorf("failed to attach enquiry to slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoSlotRepo) Release(ctx context.Context, slotID string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx,
		bson.M{"id": slotID},
		bson.M{
			"$set":   bson.M{"isBooked": false, "updatedAt": time.Now()},
			"$unset": bson.M{"enquiryId": ""},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoSlotRepo) DeleteUnbooked(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id, "isBooked": false})
	if err != nil {
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	if res.DeletedCount > 0 {
		return nil
	}

	// Nothing deleted: tell a booked slot apart from a missing one.
	n, err := r.coll.CountDocuments(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to inspect slot: %w", err)
	}
	if n == 0 {
		return database.ErrNotFound
	}
	return database.ErrConflict
}

var errEmptyClaim = errors.New("claim requires session type, date and time")
