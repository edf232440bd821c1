package user

import (
	"context"
	"errors"
	"time"

	"resonance/database"
	"resonance/models"
	"resonance/utils"

	"go.uber.org/zap"
)

var errBadCredentials = utils.Unauthorized("invalid email or password")

// issue signs a token for u.
func (s *DefaultUserService) issue(u *models.User) (*models.AuthResponse, error) {
	token, err := s.Tokens.GenerateToken(u.ID, u.Role, u.IsAdmin)
	if err != nil {
		utils.GetLogger().Error("Failed to sign token", zap.String("userID", u.ID), zap.Error(err))
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: *u}, nil
}

// Login checks the password of a verified customer.
func (s *DefaultUserService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, NormalizeEmail(req.Email))
	if errors.Is(err, database.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		utils.GetLogger().Error("Login: failed to fetch user", zap.Error(err))
		return nil, err
	}
	if !CheckPassword(u.PasswordHash, req.Password) {
		return nil, errBadCredentials
	}
	if !u.EmailVerified {
		return nil, utils.Forbidden("please verify your email before logging in")
	}
	utils.GetLogger().Info("User logged in", zap.String("userID", u.ID))
	return s.issue(u)
}

// SendLoginOTP mails a login code to a verified account. Unknown and
// unverified addresses are accepted silently.
func (s *DefaultUserService) SendLoginOTP(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if !u.EmailVerified {
		return nil
	}
	return s.sendCode(ctx, utils.OTPPurposeLogin, email)
}

func (s *DefaultUserService) VerifyLoginOTP(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if err := s.checkCode(ctx, utils.OTPPurposeLogin, email, req.OTP); err != nil {
		return nil, err
	}
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	return s.issue(u)
}

// Logout revokes token until it would have expired anyway.
func (s *DefaultUserService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	if token == "" {
		return nil
	}
	return s.Revoker.Revoke(ctx, token, expiresAt.Sub(s.now()))
}
