package user

import (
	"context"
	"errors"
	"strings"

	"resonance/config"
	"resonance/database"
	"resonance/models"
	"resonance/services/notification"
	"resonance/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Register creates an unverified customer and sends a verification code.
func (s *DefaultUserService) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	logger := utils.GetLogger()

	email := NormalizeEmail(req.Email)
	name := strings.TrimSpace(req.FullName)
	if name == "" {
		return nil, utils.BadRequest("full name is required")
	}
	if err := ValidateEmail(email); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := VerifyPasswordComplexity(req.Password); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		logger.Error("Register: failed to hash password", zap.Error(err))
		return nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		FullName:     name,
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: hash,
		Role:         utils.RoleCustomer,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.Conflict("an account with this email already exists")
		}
		logger.Error("Register: failed to create user", zap.Error(err))
		return nil, err
	}
	logger.Info("User registered", zap.String("userID", u.ID))

	if err := s.sendCode(ctx, utils.OTPPurposeVerifyEmail, email); err != nil {
		// The account exists; the customer can ask for another code.
		logger.Warn("Register: failed to send verification code", zap.String("userID", u.ID), zap.Error(err))
	}
	return u, nil
}

// VerifyEmail consumes the verification code and logs the customer in.
func (s *DefaultUserService) VerifyEmail(ctx context.Context, req models.OTPVerifyRequest) (*models.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if err := s.checkCode(ctx, utils.OTPPurposeVerifyEmail, email, req.OTP); err != nil {
		return nil, err
	}
	u, err := s.Repo.MarkEmailVerified(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("account not found")
	}
	if err != nil {
		utils.GetLogger().Error("VerifyEmail: failed to update user", zap.Error(err))
		return nil, err
	}
	utils.GetLogger().Info("Email verified", zap.String("userID", u.ID))
	return s.issue(u)
}

// ResendVerification sends a fresh code to an unverified account. Unknown
// addresses are accepted silently.
func (s *DefaultUserService) ResendVerification(ctx context.Context, email string) error {
	email = NormalizeEmail(email)
	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, database.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if u.EmailVerified {
		return utils.BadRequest("email is already verified")
	}
	return s.sendCode(ctx, utils.OTPPurposeVerifyEmail, email)
}

// sendCode issues a code for purpose and hands it to the dispatcher.
func (s *DefaultUserService) sendCode(ctx context.Context, purpose, email string) error {
	code, err := s.OTP.Issue(ctx, purpose, email)
	if err != nil {
		return err
	}
	if !config.IsProduction() {
		utils.GetLogger().Debug("OTP issued", zap.String("purpose", purpose), zap.String("email", email), zap.String("otp", code))
	}
	if s.Dispatcher == nil {
		return nil
	}
	msg := notification.VerificationMessage(email, code)
	if purpose == utils.OTPPurposeLogin {
		msg = notification.LoginOTPMessage(email, code)
	}
	return s.Dispatcher.Dispatch(ctx, msg)
}

// checkCode maps OTP store failures onto client errors.
func (s *DefaultUserService) checkCode(ctx context.Context, purpose, email, code string) error {
	err := s.OTP.Verify(ctx, purpose, email, strings.TrimSpace(code))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, utils.ErrOTPNotFound):
		return utils.BadRequest("code expired or not requested")
	case errors.Is(err, utils.ErrOTPMismatch):
		return utils.BadRequest("incorrect code")
	case errors.Is(err, utils.ErrOTPTooManyAttempts):
		return utils.BadRequest("%s", err.Error())
	default:
		utils.GetLogger().Error("Failed to verify OTP", zap.String("purpose", purpose), zap.Error(err))
		return err
	}
}
