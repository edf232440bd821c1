package booking

import (
	"context"
	"errors"
	"time"

	"resonance/database"
	"resonance/database/repository"
	"resonance/models"
	"resonance/utils"

	"go.uber.org/zap"
)

func parseSessionType(s string) (models.SessionType, error) {
	st, err := models.ParseSessionType(s)
	if err != nil {
		return "", utils.BadRequest("sessionType must be one of discovery, private or corporate")
	}
	return st, nil
}

// ListSlots returns upcoming open slots, or every slot when showAll is set.
// An empty session type lists all types.
func (s *DefaultSlotService) ListSlots(ctx context.Context, sessionType string, showAll bool) ([]models.Slot, error) {
	q := repository.SlotQuery{IncludeBooked: showAll}
	if sessionType != "" {
		st, err := parseSessionType(sessionType)
		if err != nil {
			return nil, err
		}
		q.SessionType = st
	}
	if !showAll {
		q.FromDate = s.Clock.Today().Format(DateLayout)
	}

	slots, err := s.Repo.List(ctx, q)
	if err != nil {
		utils.GetLogger().Error("Failed to list slots", zap.String("sessionType", sessionType), zap.Error(err))
		return nil, err
	}
	return slots, nil
}

func (s *DefaultSlotService) CalendarFor(ctx context.Context, sessionType string, year, month int) (*CalendarView, error) {
	st, err := parseSessionType(sessionType)
	if err != nil {
		return nil, err
	}
	if month < 1 || month > 12 || year < 2000 || year > 9999 {
		return nil, utils.BadRequest("invalid month %d/%d", month, year)
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	slots, err := s.Repo.List(ctx, repository.SlotQuery{
		SessionType: st,
		FromDate:    first.Format(DateLayout),
		ToDate:      first.AddDate(0, 1, -1).Format(DateLayout),
	})
	if err != nil {
		utils.GetLogger().Error("Failed to load slots for calendar", zap.String("sessionType", sessionType), zap.Error(err))
		return nil, err
	}

	avail := GroupByDate(slots)
	cal := avail.Apply(BuildCalendar(year, time.Month(month), s.Clock.Today()))

	// Past days keep no times.
	today := s.Clock.Today().Format(DateLayout)
	for date := range avail {
		if date < today {
			delete(avail, date)
		}
	}
	return &CalendarView{SessionType: st, Calendar: cal, Days: avail.Days()}, nil
}

func (s *DefaultSlotService) newSlot(st models.SessionType, date, t string) (models.Slot, error) {
	d, err := ParseDate(date)
	if err != nil {
		return models.Slot{}, utils.BadRequest("%s", err.Error())
	}
	hhmm, err := ParseTime24(t)
	if err != nil {
		return models.Slot{}, utils.BadRequest("%s", err.Error())
	}
	if d.Before(s.Clock.Today()) {
		return models.Slot{}, utils.BadRequest("cannot create slots in the past (%s)", date)
	}
	return models.Slot{
		SessionType: st,
		Month:       MonthLabel(d),
		Date:        d.Format(DateLayout),
		Time:        hhmm,
	}, nil
}

func (s *DefaultSlotService) CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.Slot, error) {
	st, err := parseSessionType(req.SessionType)
	if err != nil {
		return nil, err
	}
	slot, err := s.newSlot(st, req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.Create(ctx, &slot); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, utils.Conflict("a %s slot already exists on %s at %s", st, slot.Date, slot.Time)
		}
		utils.GetLogger().Error("Failed to create slot", zap.Error(err))
		return nil, err
	}
	return &slot, nil
}

// CreateSlots creates one slot per date and time, skipping ones that already exist.
func (s *DefaultSlotService) CreateSlots(ctx context.Context, req models.CreateSlotsRequest) ([]models.Slot, error) {
	st, err := parseSessionType(req.SessionType)
	if err != nil {
		return nil, err
	}
	if len(req.Dates) == 0 || len(req.Times) == 0 {
		return nil, utils.BadRequest("at least one date and one time are required")
	}

	wanted := make([]models.Slot, 0, len(req.Dates)*len(req.Times))
	seen := map[string]bool{}
	minDate, maxDate := "", ""
	for _, date := range req.Dates {
		for _, t := range req.Times {
			slot, err := s.newSlot(st, date, t)
			if err != nil {
				return nil, err
			}
			key := slot.Date + " " + slot.Time
			if seen[key] {
				continue
			}
			seen[key] = true
			wanted = append(wanted, slot)
			if minDate == "" || slot.Date < minDate {
				minDate = slot.Date
			}
			if slot.Date > maxDate {
				maxDate = slot.Date
			}
		}
	}

	existing, err := s.Repo.List(ctx, repository.SlotQuery{
		SessionType: st, IncludeBooked: true, FromDate: minDate, ToDate: maxDate,
	})
	if err != nil {
		return nil, err
	}
	taken := map[string]bool{}
	for _, e := range existing {
		taken[e.Date+" "+e.Time] = true
	}

	fresh := make([]models.Slot, 0, len(wanted))
	for _, slot := range wanted {
		if !taken[slot.Date+" "+slot.Time] {
			fresh = append(fresh, slot)
		}
	}
	if len(fresh) == 0 {
		return fresh, nil
	}

	ids, err := s.Repo.CreateMany(ctx, fresh)
	created := keepInserted(fresh, ids)
	if err != nil {
		utils.GetLogger().Error("Failed to create slots",
			zap.Int("requested", len(fresh)), zap.Int("created", len(created)), zap.Error(err))
		return nil, err
	}
	if skipped := len(fresh) - len(created); skipped > 0 {
		utils.GetLogger().Info("Skipped slots created concurrently", zap.Int("skipped", skipped))
	}
	return created, nil
}

// keepInserted filters slots down to the ids the store accepted.
func keepInserted(slots []models.Slot, ids []string) []models.Slot {
	ok := make(map[string]bool, len(ids))
	for _, id := range ids {
		ok[id] = true
	}
	out := make([]models.Slot, 0, len(ids))
	for _, slot := range slots {
		if ok[slot.ID] {
			out = append(out, slot)
		}
	}
	return out
}

// DeleteSlot removes a slot that has not been booked.
func (s *DefaultSlotService) DeleteSlot(ctx context.Context, id string) error {
	err := s.Repo.DeleteUnbooked(ctx, id)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return utils.NotFound("slot %s not found", id)
	case errors.Is(err, database.ErrConflict):
		return utils.Conflict("slot %s is booked and cannot be deleted", id)
	default:
		utils.GetLogger().Error("Failed to delete slot", zap.String("slotID", id), zap.Error(err))
		return err
	}
}
