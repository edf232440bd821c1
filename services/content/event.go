package content

import (
	"context"
	"strings"

	"resonance/models"
	"resonance/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func normalizeEvent(e *models.Event) {
	e.Image = utils.NormalizeMedia(e.Image)
	e.Video = strings.TrimSpace(e.Video)
}

func (s *DefaultContentService) ListEvents(ctx context.Context) ([]models.Event, error) {
	events, err := s.Events.List(ctx)
	if err != nil {
		utils.GetLogger().Error("Failed to list events", zap.Error(err))
		return nil, err
	}
	for i := range events {
		normalizeEvent(&events[i])
	}
	return events, nil
}

func (s *DefaultContentService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	normalizeEvent(e)
	return e, nil
}

func (s *DefaultContentService) applyEvent(ctx context.Context, e *models.Event, in models.EventInput) error {
	if in.Title != nil {
		e.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		e.Description = strings.TrimSpace(*in.Description)
	}
	if in.Location != nil {
		e.Location = strings.TrimSpace(*in.Location)
	}
	if in.StartsAt != nil {
		e.StartsAt = in.StartsAt.UTC()
	}
	if in.EndsAt != nil {
		e.EndsAt = in.EndsAt.UTC()
	}
	if in.Price != nil {
		e.Price = *in.Price
	}
	if in.Capacity != nil {
		e.Capacity = *in.Capacity
	}
	if in.Image != nil {
		img, err := s.media().Store(ctx, *in.Image)
		if err != nil {
			utils.GetLogger().Error("Failed to store event image", zap.String("eventID", e.ID), zap.Error(err))
			return err
		}
		e.Image = img
	}
	if in.Video != nil {
		// Videos are linked, never uploaded inline.
		e.Video = strings.TrimSpace(*in.Video)
	}

	switch {
	case e.Title == "":
		return utils.BadRequest("event title is required")
	case e.StartsAt.IsZero():
		return utils.BadRequest("startsAt is required")
	case !e.EndsAt.IsZero() && e.EndsAt.Before(e.StartsAt):
		return utils.BadRequest("endsAt must not be before startsAt")
	case e.Price < 0:
		return utils.BadRequest("price must not be negative")
	case e.Capacity < 0:
		return utils.BadRequest("capacity must not be negative")
	}
	return nil
}

func (s *DefaultContentService) CreateEvent(ctx context.Context, in models.EventInput) (*models.Event, error) {
	now := s.now()
	e := &models.Event{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now}
	if err := s.applyEvent(ctx, e, in); err != nil {
		return nil, err
	}
	if err := s.Events.Create(ctx, e); err != nil {
		utils.GetLogger().Error("Failed to create event", zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (s *DefaultContentService) UpdateEvent(ctx context.Context, id string, in models.EventInput) (*models.Event, error) {
	e, err := s.Events.GetByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "event", id)
	}
	if err := s.applyEvent(ctx, e, in); err != nil {
		return nil, err
	}
	e.UpdatedAt = s.now()
	if err := s.Events.Replace(ctx, e); err != nil {
		return nil, notFound(err, "event", id)
	}
	normalizeEvent(e)
	return e, nil
}

func (s *DefaultContentService) DeleteEvent(ctx context.Context, id string) error {
	if err := s.Events.Delete(ctx, id); err != nil {
		return notFound(err, "event", id)
	}
	return nil
}
