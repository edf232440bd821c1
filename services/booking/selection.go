package booking

import (
	"errors"

	"resonance/models"
)

var (
	ErrDateNotSelectable = errors.New("date is not available for booking")
	ErrTimeNotAvailable  = errors.New("time is not available on the selected date")
	ErrNoDateSelected    = errors.New("select a date first")
)

// Selection tracks a date then time pick against a calendar with availability applied.
type Selection struct {
	avail      Availability
	selectable map[string]bool
	date       string
	time       string
}

func NewSelection(cal Calendar, avail Availability) *Selection {
	s := &Selection{avail: avail, selectable: map[string]bool{}}
	for _, week := range cal.Weeks {
		for _, d := range week {
			if d.Selectable {
				s.selectable[d.Date] = true
			}
		}
	}
	return s
}

// SelectDate picks a date and always clears the time.
func (s *Selection) SelectDate(date string) error {
	if !s.selectable[date] {
		return ErrDateNotSelectable
	}
	s.date = date
	s.time = ""
	return nil
}

func (s *Selection) SelectTime(t string) error {
	if s.date == "" {
		return ErrNoDateSelected
	}
	if !s.avail.Has(s.date, t) {
		return ErrTimeNotAvailable
	}
	s.time = t
	return nil
}

// Times are the open slots of the selected date.
func (s *Selection) Times() []models.Slot {
	if s.date == "" {
		return nil
	}
	return s.avail[s.date]
}

func (s *Selection) Date() string { return s.date }
func (s *Selection) Time() string { return s.time }

// Ready reports whether both a date and a time are chosen.
func (s *Selection) Ready() bool {
	return s.date != "" && s.time != ""
}
