package userRepo

import (
	"context"
	"fmt"

	"resonance/database"
	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
)

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user); err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, case-insensitively.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	var user models.User
	if err := r.coll.FindOne(ctx, bson.M{"email": normalizeEmail(email)}).Decode(&user); err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}

func (r *MongoUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("failed to count %s users: %w", role, err)
	}
	return n, nil
}
