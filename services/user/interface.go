package user

import (
	"context"
	"time"

	userRepo "resonance/database/repository/user"
	"resonance/models"
	"resonance/services/notification"
	"resonance/utils"
)

// OTPStore issues and checks one-time codes.
type OTPStore interface {
	Issue(ctx context.Context, purpose, subject string) (string, error)
	Verify(ctx context.Context, purpose, subject, provided string) error
}

// TokenRevoker remembers tokens that were logged out.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
}

type UserService interface {
	// Registration
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	VerifyEmail(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error)
	ResendVerification(ctx context.Context, email string) error

	// Authentication
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	SendLoginOTP(ctx context.Context, email string) error
	VerifyLoginOTP(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context, token string, expiresAt time.Time) error

	// Profile
	GetProfile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error)
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo       userRepo.UserRepository
	Tokens     *utils.TokenManager
	OTP        OTPStore
	Revoker    TokenRevoker
	Dispatcher notification.Dispatcher
	Now        func() time.Time
}

func (s *DefaultUserService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
