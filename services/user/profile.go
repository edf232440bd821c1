package user

import (
	"context"
	"errors"
	"strings"

	"resonance/database"
	"resonance/models"
	"resonance/services/booking"
	"resonance/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetProfile(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, utils.NotFound("account not found")
	}
	return u, err
}

// UpdateProfile patches the editable fields. Email and role never change here.
func (s *DefaultUserService) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.User, error) {
	u, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" {
			return nil, utils.BadRequest("full name must not be empty")
		}
		u.FullName = name
	}
	if req.Phone != nil {
		u.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Address != nil {
		u.Address = strings.TrimSpace(*req.Address)
	}
	if req.DateOfBirth != nil {
		dob := strings.TrimSpace(*req.DateOfBirth)
		if dob != "" {
			if _, err := booking.ParseDate(dob); err != nil {
				return nil, utils.BadRequest("dateOfBirth must be YYYY-MM-DD")
			}
		}
		u.DateOfBirth = dob
	}

	if err := s.Repo.Update(ctx, u); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to save user", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	return u, nil
}
