package handlers

import (
	"resonance/middleware"
	"resonance/models"
	"resonance/services/booking"
	"resonance/services/enquiry"
	"resonance/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type EnquiryHandler struct {
	Booking   booking.BookingService
	Enquiries enquiry.EnquiryService
}

// Submit handles POST /api/enquiries. Signed-in customers get the enquiry
// linked to their account.
func (h *EnquiryHandler) Submit(c *gin.Context) {
	var req models.EnquiryRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Booking.Submit(c.Request.Context(), req, middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Enquiry submitted", zap.String("enquiryID", e.ID), zap.String("sessionType", string(e.SessionType)))
	utils.Created(c, e, "Your booking request has been received")
}

// List handles GET /api/enquiries?status=&sessionType=.
func (h *EnquiryHandler) List(c *gin.Context) {
	list, err := h.Enquiries.List(c.Request.Context(), c.Query("status"), c.Query("sessionType"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, list)
}

// Get handles GET /api/enquiries/:id.
func (h *EnquiryHandler) Get(c *gin.Context) {
	view, err := h.Enquiries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, view)
}

// UpdateStatus handles PATCH /api/enquiries/:id.
func (h *EnquiryHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateEnquiryStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	e, err := h.Enquiries.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, e)
}

// Delete handles DELETE /api/enquiries/:id.
func (h *EnquiryHandler) Delete(c *gin.Context) {
	if err := h.Enquiries.Delete(c.Request.Context(), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "Enquiry deleted")
}
