package booking

import (
	"context"
	"errors"
	"strings"

	"resonance/database"
	"resonance/metrics"
	"resonance/models"
	"resonance/services/notification"
	"resonance/utils"

	"go.uber.org/zap"
)

func validateContact(req models.EnquiryRequest) error {
	switch {
	case strings.TrimSpace(req.FullName) == "":
		return utils.BadRequest("full name is required")
	case strings.TrimSpace(req.Phone) == "":
		return utils.BadRequest("phone is required")
	case !strings.Contains(req.Email, "@"):
		return utils.BadRequest("a valid email is required")
	}
	return nil
}

// Submit validates the form, claims the requested slot, then records the
// enquiry. A pending enquiry from the same email for the same session type
// is updated instead of duplicated.
func (s *DefaultBookingService) Submit(ctx context.Context, req models.EnquiryRequest, userID string) (*models.Enquiry, error) {
	logger := utils.GetLogger()

	st, err := parseSessionType(req.SessionType)
	if err != nil {
		return nil, err
	}
	if err := validateContact(req); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Date) == "" || strings.TrimSpace(req.Time) == "" {
		return nil, utils.BadRequest("date and time are required")
	}
	day, err := ParseDate(req.Date)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	hhmm, err := ParseTime24(req.Time)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if day.Before(s.Clock.Today()) {
		return nil, utils.BadRequest("cannot book a date in the past")
	}
	date := day.Format(DateLayout)

	details, err := models.DecodeSessionDetails(st, req.Details, req.Comment)
	if err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	if err := details.Validate(); err != nil {
		return nil, utils.BadRequest("%s", err.Error())
	}
	comment, err := details.Comment()
	if err != nil {
		return nil, err
	}

	slot, err := s.Slots.Claim(ctx, st, date, hhmm)
	if err != nil {
		if errors.Is(err, database.ErrConflict) {
			metrics.IncSlotClaim(false)
			return nil, utils.Conflict("slot no longer available")
		}
		logger.Error("Failed to claim slot", zap.String("date", date), zap.String("time", hhmm), zap.Error(err))
		return nil, err
	}
	metrics.IncSlotClaim(true)

	enquiry, previousSlot, err := s.saveEnquiry(ctx, req, st, comment, slot, userID)
	if err != nil {
		logger.Error("Failed to save enquiry, releasing slot", zap.String("slotID", slot.ID), zap.Error(err))
		if relErr := s.Slots.Release(ctx, slot.ID); relErr != nil {
			logger.Error("Failed to release slot", zap.String("slotID", slot.ID), zap.Error(relErr))
		}
		return nil, err
	}

	if err := s.Slots.AttachEnquiry(ctx, slot.ID, enquiry.ID); err != nil {
		logger.Warn("Failed to attach enquiry to slot", zap.String("slotID", slot.ID), zap.String("enquiryID", enquiry.ID), zap.Error(err))
	}
	if previousSlot != "" && previousSlot != slot.ID {
		if err := s.Slots.Release(ctx, previousSlot); err != nil && !errors.Is(err, database.ErrNotFound) {
			logger.Warn("Failed to release superseded slot", zap.String("slotID", previousSlot), zap.Error(err))
		}
	}

	metrics.IncEnquiry(string(st))
	if s.Dispatcher != nil && s.AdminEmail != "" {
		if err := s.Dispatcher.Dispatch(ctx, notification.NewEnquiryMessage(s.AdminEmail, *enquiry)); err != nil {
			logger.Warn("Failed to dispatch enquiry notification", zap.String("enquiryID", enquiry.ID), zap.Error(err))
		}
	}
	return enquiry, nil
}

// saveEnquiry creates the enquiry or refreshes the open one. It returns the
// slot the refreshed enquiry held before.
func (s *DefaultBookingService) saveEnquiry(ctx context.Context, req models.EnquiryRequest, st models.SessionType, comment string, slot *models.Slot, userID string) (*models.Enquiry, string, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.Enquiries.FindPending(ctx, email, st)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return nil, "", err
	}

	e := existing
	previousSlot := ""
	if e == nil {
		e = &models.Enquiry{SessionType: st, Status: models.EnquiryPending, Email: email}
	} else {
		previousSlot = e.SlotID
	}
	e.FullName = strings.TrimSpace(req.FullName)
	e.Phone = strings.TrimSpace(req.Phone)
	e.Address = strings.TrimSpace(req.Address)
	e.DateOfBirth = strings.TrimSpace(req.DateOfBirth)
	e.Services = strings.TrimSpace(req.Services)
	e.Comment = comment
	e.SlotID = slot.ID
	e.Date = slot.Date
	e.Time = slot.Time
	if userID != "" {
		e.UserID = userID
	}

	if existing == nil {
		err = s.Enquiries.Create(ctx, e)
	} else {
		err = s.Enquiries.Replace(ctx, e)
	}
	if err != nil {
		return nil, "", err
	}
	return e, previousSlot, nil
}
