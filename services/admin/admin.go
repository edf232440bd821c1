package admin

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"

	"resonance/database"
	"resonance/models"
	"resonance/services/user"
	"resonance/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (s *DefaultAdminService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := s.Tokens.GenerateToken(u.ID, utils.RoleAdmin, true)
	if err != nil {
		utils.GetLogger().Error("Failed to sign admin token", zap.String("adminID", u.ID), zap.Error(err))
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *u}, nil
}

// Register creates an administrator when the registration key matches.
func (s *DefaultAdminService) Register(ctx context.Context, req models.AdminRegisterRequest) (*models.AuthResponse, error) {
	logger := utils.GetLogger()
	if s.RegistrationKey == "" {
		return nil, utils.Forbidden("admin registration is disabled")
	}
	if subtle.ConstantTimeCompare([]byte(req.RegistrationKey), []byte(s.RegistrationKey)) != 1 {
		logger.Warn("Admin registration with wrong key", zap.String("email", user.NormalizeEmail(req.Email)))
		return nil, utils.Forbidden("invalid registration key")
	}

	email := user.NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, utils.BadRequest("full name is required")
	}
	if err := user.ValidateEmail(email); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := user.VerifyPasswordComplexity(req.Password); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	hash, err := user.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u := &models.User{
		ID:            uuid.New().String(),
		FullName:      name,
		Email:         email,
		PasswordHash:  hash,
		Role:          utils.RoleAdmin,
		IsAdmin:       true,
		EmailVerified: true,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.Conflict("an account with this email already exists")
		}
		logger.Error("Admin register: failed to create user", zap.Error(err))
		return nil, err
	}
	logger.Info("Administrator registered", zap.String("adminID", u.ID))
	return s.issue(u)
}

// Login authenticates administrators only; customer accounts are refused
// with the same message as a wrong password.
func (s *DefaultAdminService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, user.NormalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.Unauthorized("invalid email or password")
	}
	if err != nil {
		utils.GetLogger().Error("Admin login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if !u.IsAdmin || u.Role != utils.RoleAdmin || !user.CheckPassword(u.PasswordHash, req.Password) {
		return nil, utils.Unauthorized("invalid email or password")
	}
	utils.GetLogger().Info("Administrator logged in", zap.String("adminID", u.ID))
	return s.issue(u)
}

func (s *DefaultAdminService) Profile(ctx context.Context, adminID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, adminID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && !u.IsAdmin) {
		return nil, utils.NotFound("administrator not found")
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
