package enquiry

import (
	"context"
	"errors"

	"resonance/database"
	"resonance/database/repository"
	"resonance/models"
	"resonance/utils"

	"go.uber.org/zap"
)

// EnquiryService is the administrator's view of booking requests.
type EnquiryService interface {
	List(ctx context.Context, status, sessionType string) ([]models.Enquiry, error)
	Get(ctx context.Context, id string) (*EnquiryView, error)
	UpdateStatus(ctx context.Context, id, status string) (*models.Enquiry, error)
	Delete(ctx context.Context, id string) error
}

// EnquiryView adds the decoded discovery answers for display.
type EnquiryView struct {
	models.Enquiry
	Answers *models.DiscoveryDetails `json:"answers,omitempty"`
}

type DefaultEnquiryService struct {
	Repo repository.EnquiryRepository
}

func NewEnquiryService(repo repository.EnquiryRepository) *DefaultEnquiryService {
	return &DefaultEnquiryService{Repo: repo}
}

// List returns enquiries newest first. Empty filters match everything.
func (s *DefaultEnquiryService) List(ctx context.Context, status, sessionType string) ([]models.Enquiry, error) {
	var f models.EnquiryFilter
	if status != "" {
		st, err := models.ParseEnquiryStatus(status)
		if err != nil {
			return nil, utils.BadRequest("%s", err.Error())
		}
		f.Status = st
	}
	if sessionType != "" {
		st, err := models.ParseSessionType(sessionType)
		if err != nil {
			return nil, utils.BadRequest("%s", err.Error())
		}
		f.SessionType = st
	}

	enquiries, err := s.Repo.List(ctx, f)
	if err != nil {
		utils.GetLogger().Error("Failed to list enquiries", zap.Error(err))
		return nil, err
	}
	return enquiries, nil
}

func (s *DefaultEnquiryService) Get(ctx context.Context, id string) (*EnquiryView, error) {
	e, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapErr(err, id, "fetch")
	}
	view := &EnquiryView{Enquiry: *e}
	if answers, ok := e.DiscoveryAnswers(); ok {
		view.Answers = &answers
	}
	return view, nil
}

// UpdateStatus sets any known status regardless of the current one.
func (s *DefaultEnquiryService) UpdateStatus(ctx context.Context, id, status string) (*models.Enquiry, error) {
	st, err := models.ParseEnquiryStatus(status)
	if err != nil {
		return nil, utils.BadRequest("status must be one of pending, contacted or completed")
	}
	e, err := s.Repo.UpdateStatus(ctx, id, st)
	if err != nil {
		return nil, s.mapErr(err, id, "update")
	}
	utils.GetLogger().Info("Enquiry status updated", zap.String("enquiryID", id), zap.String("status", string(st)))
	return e, nil
}

// Delete removes the enquiry. A slot it booked stays booked.
func (s *DefaultEnquiryService) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return s.mapErr(err, id, "delete")
	}
	return nil
}

func (s *DefaultEnquiryService) mapErr(err error, id, op string) error {
	if errors.Is(err, database.ErrNotFound) {
		return utils.NotFound("enquiry %s not found", id)
	}
	utils.GetLogger().Error("Enquiry "+op+" failed", zap.String("enquiryID", id), zap.Error(err))
	return err
}
