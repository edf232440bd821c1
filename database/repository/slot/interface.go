// File: database/repository/slot/interface.go
package slotRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// SlotQuery selects slots of one session type. Dates are inclusive
// YYYY-MM-DD bounds; empty bounds are open.
type SlotQuery struct {
	SessionType   models.SessionType
	IncludeBooked bool
	FromDate      string
	ToDate        string
}

type SlotRepository interface {
	Create(ctx context.Context, slot *models.Slot) error
	// CreateMany returns the ids actually inserted. Duplicates are skipped.
	CreateMany(ctx context.Context, slots []models.Slot) ([]string, error)
	GetByID(ctx context.Context, id string) (*models.Slot, error)
	List(ctx context.Context, q SlotQuery) ([]models.Slot, error)
	// Claim flips isBooked for the (sessionType, date, time) slot only if it
	// is still open. It returns database.ErrConflict when nothing matched.
	Claim(ctx context.Context, sessionType models.SessionType, date, time string) (*models.Slot, error)
	AttachEnquiry(ctx context.Context, slotID, enquiryID string) error
	Release(ctx context.Context, slotID string) error
	// DeleteUnbooked removes an open slot. Booked slots yield database.ErrConflict.
	DeleteUnbooked(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoSlotRepo struct {
	coll *mongo.Collection
}

// NewMongoSlotRepo constructs a new MongoDB SlotRepository.
func NewMongoSlotRepo(db *mongo.Database) SlotRepository {
	return &mongoSlotRepo{
		coll: db.Collection("slots"),
	}
}
