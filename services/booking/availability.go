package booking

import (
	"sort"

	"resonance/models"
)

// Availability maps a date to its open slots, times ascending.
type Availability map[string][]models.Slot

// GroupByDate keeps the unbooked slots and groups them by date.
func GroupByDate(slots []models.Slot) Availability {
	a := Availability{}
	for _, s := range slots {
		if s.IsBooked {
			continue
		}
		a[s.Date] = append(a[s.Date], s)
	}
	for date := range a {
		times := a[date]
		sort.Slice(times, func(i, j int) bool { return times[i].Time < times[j].Time })
	}
	return a
}

// Has reports whether an open slot exists at date and t.
func (a Availability) Has(date, t string) bool {
	for _, s := range a[date] {
		if s.Time == t {
			return true
		}
	}
	return false
}

// Days lists the dates with open slots in ascending order.
func (a Availability) Days() []models.DaySlots {
	out := make([]models.DaySlots, 0, len(a))
	for date, times := range a {
		out = append(out, models.DaySlots{Date: date, Times: times})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Apply marks a day selectable iff it belongs to the month, is not in the
// past, and has at least one open slot.
func (a Availability) Apply(cal Calendar) Calendar {
	out := cal
	out.Weeks = make([][7]Day, len(cal.Weeks))
	for w, week := range cal.Weeks {
		for i, d := range week {
			d.OpenSlots = 0
			d.Selectable = false
			if d.CurrentMonth {
				d.OpenSlots = len(a[d.Date])
				d.Selectable = !d.Past && d.OpenSlots > 0
			}
			week[i] = d
		}
		out.Weeks[w] = week
	}
	return out
}
