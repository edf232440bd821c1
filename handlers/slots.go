package handlers

import (
	"strconv"
	"time"

	"resonance/middleware"
	"resonance/models"
	"resonance/services/booking"
	"resonance/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SlotHandler struct {
	Slots booking.SlotService
	Clock booking.Clock
}

func isAdmin(c *gin.Context) bool {
	claims := middleware.Claims(c)
	return claims != nil && claims.IsAdmin && claims.Role == utils.RoleAdmin
}

// ListSlots handles GET /api/slots?sessionType=&showAll=. Booked and past
// slots are only shown to administrators; days only ever hold open slots.
func (h *SlotHandler) ListSlots(c *gin.Context) {
	showAll, _ := strconv.ParseBool(c.Query("showAll"))
	slots, err := h.Slots.ListSlots(c.Request.Context(), c.Query("sessionType"), showAll && isAdmin(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, SlotListing{Slots: slots, Days: booking.GroupByDate(slots).Days()})
}

// SlotListing carries the flat slot list and its open slots grouped by date.
type SlotListing struct {
	Slots []models.Slot     `json:"slots"`
	Days  []models.DaySlots `json:"days"`
}

// Calendar handles GET /api/slots/calendar?sessionType=&month=YYYY-MM.
// The month defaults to the current one.
func (h *SlotHandler) Calendar(c *gin.Context) {
	today := h.Clock.Today()
	year, month := today.Year(), int(today.Month())
	if m := c.Query("month"); m != "" {
		t, err := time.Parse("2006-01", m)
		if err != nil {
			utils.RespondError(c, utils.BadRequest("month must be YYYY-MM"))
			return
		}
		year, month = t.Year(), int(t.Month())
	}
	view, err := h.Slots.CalendarFor(c.Request.Context(), c.Query("sessionType"), year, month)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, view)
}

// CreateSlot handles POST /api/slots.
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	var req models.CreateSlotRequest
	if !bindJSON(c, &req) {
		return
	}
	slot, err := h.Slots.CreateSlot(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Slot created", zap.String("slotID", slot.ID), zap.String("date", slot.Date), zap.String("time", slot.Time))
	utils.Created(c, slot, "Slot created")
}

// CreateSlots handles POST /api/slots/bulk.
func (h *SlotHandler) CreateSlots(c *gin.Context) {
	var req models.CreateSlotsRequest
	if !bindJSON(c, &req) {
		return
	}
	slots, err := h.Slots.CreateSlots(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, slots, strconv.Itoa(len(slots))+" slots created")
}

// DeleteSlot handles DELETE /api/slots/:id.
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	if err := h.Slots.DeleteSlot(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "Slot deleted")
}
