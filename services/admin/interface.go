package admin

import (
	"context"

	userRepo "resonance/database/repository/user"
	"resonance/models"
	"resonance/utils"
)

type AdminService interface {
	Register(ctx context.Context, req models.AdminRegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Profile(ctx context.Context, adminID string) (*models.User, error)
}

// DefaultAdminService manages administrator accounts. RegistrationKey gates
// sign-up; an empty key disables it.
type DefaultAdminService struct {
	Repo            userRepo.UserRepository
	Tokens          *utils.TokenManager
	RegistrationKey string
}
