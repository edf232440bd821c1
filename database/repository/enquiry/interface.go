package enquiryRepo

import (
	"context"

	"resonance/models"

	"go.mongodb.org/mongo-driver/mongo"
)

type EnquiryRepository interface {
	Create(ctx context.Context, e *models.Enquiry) error
	Replace(ctx context.Context, e *models.Enquiry) error
	GetByID(ctx context.Context, id string) (*models.Enquiry, error)
	// FindPending returns the open enquiry of email for a session type, or database.ErrNotFound.
	FindPending(ctx context.Context, email string, sessionType models.SessionType) (*models.Enquiry, error)
	List(ctx context.Context, filter models.EnquiryFilter) ([]models.Enquiry, error)
	UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (*models.Enquiry, error)
	Delete(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}

type mongoEnquiryRepo struct {
	coll *mongo.Collection
}

func NewMongoEnquiryRepo(db *mongo.Database) EnquiryRepository {
	return &mongoEnquiryRepo{coll: db.Collection("enquiries")}
}
