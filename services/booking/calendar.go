package booking

import "time"

// Day is one cell of the month grid.
type Day struct {
	Date         string `json:"date"`
	Day          int    `json:"day"`
	CurrentMonth bool   `json:"currentMonth"`
	Past         bool   `json:"past"`
	Selectable   bool   `json:"selectable"`
	OpenSlots    int    `json:"openSlots"`
}

// Calendar is a Monday-first month grid padded with the neighbouring months.
type Calendar struct {
	Year  int      `json:"year"`
	Month int      `json:"month"`
	Label string   `json:"label"`
	Weeks [][7]Day `json:"weeks"`
}

// BuildCalendar lays out the given month. Days before today are marked past;
// nothing is selectable until availability is applied.
func BuildCalendar(year int, month time.Month, today time.Time) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	offset := (int(first.Weekday()) + 6) % 7
	todayKey := today.Format(DateLayout)

	cells := offset + daysInMonth
	if rem := cells % 7; rem != 0 {
		cells += 7 - rem
	}

	cal := Calendar{
		Year:  first.Year(),
		Month: int(first.Month()),
		Label: MonthLabel(first),
		Weeks: make([][7]Day, 0, cells/7),
	}

	cursor := first.AddDate(0, 0, -offset)
	for w := 0; w < cells/7; w++ {
		var week [7]Day
		for i := range week {
			key := cursor.Format(DateLayout)
			week[i] = Day{
				Date:         key,
				Day:          cursor.Day(),
				CurrentMonth: cursor.Month() == first.Month(),
				Past:         key < todayKey,
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
		cal.Weeks = append(cal.Weeks, week)
	}
	return cal
}
