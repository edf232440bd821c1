package userRepo

import (
	"context"

	"resonance/models"
)

// UserRepository defines methods for customer and administrator accounts.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by email; missing users yield database.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create inserts a new user; a taken email yields database.ErrDuplicate.
	Create(ctx context.Context, user *models.User) error
	// Update overwrites an existing user record.
	Update(ctx context.Context, user *models.User) error
	// MarkEmailVerified flags the account behind email as verified.
	MarkEmailVerified(ctx context.Context, email string) (*models.User, error)
	// CountByRole counts accounts of a role.
	CountByRole(ctx context.Context, role string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}
