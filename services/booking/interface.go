package booking

import (
	"context"
	"time"

	"resonance/database/repository"
	"resonance/models"
	"resonance/services/notification"
)

// SlotService manages the bookable slots and the month views built from them.
type SlotService interface {
	ListSlots(ctx context.Context, sessionType string, showAll bool) ([]models.Slot, error)
	CalendarFor(ctx context.Context, sessionType string, year, month int) (*CalendarView, error)
	CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.Slot, error)
	CreateSlots(ctx context.Context, req models.CreateSlotsRequest) ([]models.Slot, error)
	DeleteSlot(ctx context.Context, id string) error
}

// BookingService turns a customer's booking form into a claimed slot and an enquiry.
type BookingService interface {
	Submit(ctx context.Context, req models.EnquiryRequest, userID string) (*models.Enquiry, error)
}

// CalendarView is a month grid plus the open times per day.
type CalendarView struct {
	SessionType models.SessionType `json:"sessionType"`
	Calendar    Calendar           `json:"calendar"`
	Days        []models.DaySlots  `json:"days"`
}

// Clock yields the studio's current date.
type Clock struct {
	Location *time.Location
	Now      func() time.Time
}

func (c Clock) Today() time.Time {
	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	loc := c.Location
	if loc == nil {
		loc = time.UTC
	}
	t := now().In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DefaultSlotService is the production implementation.
type DefaultSlotService struct {
	Repo  repository.SlotRepository
	Clock Clock
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Slots      repository.SlotRepository
	Enquiries  repository.EnquiryRepository
	Dispatcher notification.Dispatcher
	AdminEmail string
	Clock      Clock
}
