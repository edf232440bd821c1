package userRepo

import (
	"context"
	"fmt"
	"time"

	"resonance/database"
	"resonance/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	now := time.Now()
	user.Email = normalizeEmail(user.Email)
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		err = database.Translate(err)
		if err == database.ErrDuplicate {
			return err
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Update modifies an existing user document.
func (r *MongoUserRepo) Update(ctx context.Context, user *models.User) error {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	user.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": user.ID}, bson.M{"$set": user})
	if err != nil {
		return fmt.Errorf("failed to update user with id %s: %w", user.ID, err)
	}
	if result.MatchedCount == 0 {
		return database.ErrNotFound
	}
	return nil
}

// MarkEmailVerified flips emailVerified and returns the updated user.
func (r *MongoUserRepo) MarkEmailVerified(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := database.WithTimeout(ctx)
	defer cancel()

	update := bson.M{"$set": bson.M{"emailVerified": true, "updatedAt": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var user models.User
	if err := r.coll.FindOneAndUpdate(ctx, bson.M{"email": normalizeEmail(email)}, update, opts).Decode(&user); err != nil {
		return nil, database.Translate(err)
	}
	return &user, nil
}
