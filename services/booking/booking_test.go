package booking

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"resonance/models"
	"resonance/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedClock = Clock{Now: func() time.Time { return time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC) }}

func requireStatus(t *testing.T, err error, status int) {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected an AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
}

func newBooking(slots *memSlots, enquiries *memEnquiries) (*DefaultBookingService, *recordingDispatcher) {
	d := &recordingDispatcher{}
	return &DefaultBookingService{
		Slots:      slots,
		Enquiries:  enquiries,
		Dispatcher: d,
		AdminEmail: "studio@example.com",
		Clock:      fixedClock,
	}, d
}

func form(date, t string) models.EnquiryRequest {
	return models.EnquiryRequest{
		SessionType: "discovery",
		FullName:    "Asha Rao",
		Email:       "Asha@Example.com",
		Phone:       "+91 98765 43210",
		Date:        date,
		Time:        t,
	}
}

func TestSubmitDiscoveryEndToEnd(t *testing.T) {
	slots := newMemSlots(models.Slot{ID: "s1", SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00"})
	enquiries := newMemEnquiries()
	svc, sent := newBooking(slots, enquiries)
	slotSvc := &DefaultSlotService{Repo: slots, Clock: fixedClock}

	view, err := slotSvc.CalendarFor(context.Background(), "discovery", 2026, 4)
	require.NoError(t, err)
	avail := Availability{}
	for _, d := range view.Days {
		avail[d.Date] = d.Times
	}
	sel := NewSelection(view.Calendar, avail)
	require.NoError(t, sel.SelectDate("2026-04-07"))
	require.NoError(t, sel.SelectTime("09:00"))
	require.True(t, sel.Ready())

	e, err := svc.Submit(context.Background(), form(sel.Date(), sel.Time()), "")
	require.NoError(t, err)

	assert.Equal(t, models.EnquiryPending, e.Status)
	assert.Equal(t, "asha@example.com", e.Email)
	assert.Contains(t, e.Comment, `"hasCrystalBowls":"Not specified"`)

	slot, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.True(t, slot.IsBooked)
	assert.Equal(t, e.ID, slot.EnquiryID)

	require.Len(t, sent.sent, 1)
	assert.Equal(t, "studio@example.com", sent.sent[0].To)

	// The booked time disappears from the calendar.
	view, err = slotSvc.CalendarFor(context.Background(), "discovery", 2026, 4)
	require.NoError(t, err)
	assert.Empty(t, view.Days)
}

func TestSubmitRequiresDateAndTime(t *testing.T) {
	svc, _ := newBooking(newMemSlots(), newMemEnquiries())

	_, err := svc.Submit(context.Background(), form("", "09:00"), "")
	requireStatus(t, err, http.StatusBadRequest)
	_, err = svc.Submit(context.Background(), form("2026-04-07", ""), "")
	requireStatus(t, err, http.StatusBadRequest)
}

func TestSubmitRejectsInvalidInput(t *testing.T) {
	slots := newMemSlots(models.Slot{ID: "s1", SessionType: models.SessionCorporate, Date: "2026-04-07", Time: "09:00"})
	svc, _ := newBooking(slots, newMemEnquiries())

	past := form("2026-03-20", "09:00")
	_, err := svc.Submit(context.Background(), past, "")
	requireStatus(t, err, http.StatusBadRequest)

	noOrg := form("2026-04-07", "09:00")
	noOrg.SessionType = "corporate"
	_, err = svc.Submit(context.Background(), noOrg, "")
	requireStatus(t, err, http.StatusBadRequest)

	badType := form("2026-04-07", "09:00")
	badType.SessionType = "group"
	_, err = svc.Submit(context.Background(), badType, "")
	requireStatus(t, err, http.StatusBadRequest)

	// Nothing was claimed by the rejected forms.
	slot, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)
}

func TestSubmitConflictWhenSlotTaken(t *testing.T) {
	slots := newMemSlots(models.Slot{ID: "s1", SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00", IsBooked: true})
	enquiries := newMemEnquiries()
	svc, _ := newBooking(slots, enquiries)

	_, err := svc.Submit(context.Background(), form("2026-04-07", "09:00"), "")
	requireStatus(t, err, http.StatusConflict)
	assert.Empty(t, enquiries.items)
}

func TestConcurrentSubmitsClaimOnce(t *testing.T) {
	slots := newMemSlots(models.Slot{ID: "s1", SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00"})
	svc, _ := newBooking(slots, newMemEnquiries())

	const n = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	ok, conflicts := 0, 0
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := form("2026-04-07", "09:00")
			req.Email = "guest" + string(rune('a'+i)) + "@example.com"
			_, err := svc.Submit(context.Background(), req, "")
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if appErr, isApp := utils.AsAppError(err); isApp && appErr.Status == http.StatusConflict {
				conflicts++
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflicts)
}

func TestSubmitReleasesSlotWhenEnquiryFails(t *testing.T) {
	slots := newMemSlots(models.Slot{ID: "s1", SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00"})
	enquiries := newMemEnquiries()
	enquiries.createErr = errBoom
	svc, sent := newBooking(slots, enquiries)

	_, err := svc.Submit(context.Background(), form("2026-04-07", "09:00"), "")
	assert.ErrorIs(t, err, errBoom)

	slot, err := slots.GetByID(context.Background(), "s1")
	require.NoError(t, err)
	assert.False(t, slot.IsBooked)
	assert.Empty(t, sent.sent)
}

func TestResubmitUpdatesPendingEnquiry(t *testing.T) {
	slots := newMemSlots(
		models.Slot{ID: "s1", SessionType: models.SessionDiscovery, Date: "2026-04-07", Time: "09:00"},
		models.Slot{ID: "s2", SessionType: models.SessionDiscovery, Date: "2026-04-09", Time: "15:00"},
	)
	enquiries := newMemEnquiries()
	svc, _ := newBooking(slots, enquiries)

	first, err := svc.Submit(context.Background(), form("2026-04-07", "09:00"), "")
	require.NoError(t, err)

	again := form("2026-04-09", "15:00")
	again.Phone = "+91 90000 00000"
	second, err := svc.Submit(context.Background(), again, "user-1")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, enquiries.items, 1)
	assert.Equal(t, "2026-04-09", second.Date)
	assert.Equal(t, "user-1", second.UserID)

	s1, _ := slots.GetByID(context.Background(), "s1")
	s2, _ := slots.GetByID(context.Background(), "s2")
	assert.False(t, s1.IsBooked, "superseded slot is released")
	assert.True(t, s2.IsBooked)
}
