package enquiryRepo

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

func (r *mongoEnquiryRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}, {Key: "sessionType", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create enquiry indexes: %w", err)
	}
	return nil
}

func (r *mongoEnquiryRepo) Create(ctx context.Context, e *models.Enquiry) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	now := time.Now()
	e.CreatedAt = now
	e.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, e); err != nil {
		return fmt.Errorf("failed to create enquiry: %w", database.Translate(err))
	}
	return nil
}

func (r *mongoEnquiryRepo) Replace(ctx context.Context, e *models.Enquiry) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	e.UpdatedAt = time.Now()
	res, err := r.coll.ReplaceOne(ctx, bson.M{"id": e.ID}, e)
	if err != nil {
		return fmt.Errorf("failed to update enquiry %s: %w", e.ID, err)
	}
	if res.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *mongoEnquiryRepo) GetByID(ctx context.Context, id string) (*models.Enquiry, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var e models.Enquiry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&e); err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

func (r *mongoEnquiryRepo) FindPending(ctx context.Context, email string, sessionType models.SessionType) (*models.Enquiry, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{"email": email, "sessionType": sessionType, "status": models.EnquiryPending}
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var e models.Enquiry
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&e); err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

func (r *mongoEnquiryRepo) List(ctx context.Context, f models.EnquiryFilter) ([]models.Enquiry, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.SessionType != "" {
		filter["sessionType"] = f.SessionType
	}

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch enquiries: %w", err)
	}
	defer cursor.Close(ctx)

	enquiries := []models.Enquiry{}
	if err := cursor.All(ctx, &enquiries); err != nil {
		return nil, fmt.Errorf("error decoding enquiries: %w", err)
	}
	return enquiries, nil
}

// UpdateStatus overwrites the status; transitions are not restricted.
func (r *mongoEnquiryRepo) UpdateStatus(ctx context.Context, id string, status models.EnquiryStatus) (*models.Enquiry, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var e models.Enquiry
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, update, opts).Decode(&e); err != nil {
		return nil, database.Translate(err)
	}
	return &e, nil
}

func (r *mongoEnquiryRepo) Delete(ctx context.Context, id string) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete enquiry %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}
