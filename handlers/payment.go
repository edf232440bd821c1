package handlers

import (
	"resonance/middleware"
	"resonance/models"
	"resonance/services/checkout"
	"resonance/services/user"
	"resonance/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	Checkout checkout.CheckoutService
	Users    user.UserService
}

// CreateCheckout handles POST /api/payment/create-checkout.
func (h *PaymentHandler) CreateCheckout(c *gin.Context) {
	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	userID := middleware.UserID(c)
	profile, err := h.Users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	resp, err := h.Checkout.CreateCheckout(c.Request.Context(), checkout.Customer{ID: userID, Email: profile.Email}, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, resp)
}

// VerifyCheckout handles POST /api/payment/verify-checkout.
func (h *PaymentHandler) VerifyCheckout(c *gin.Context) {
	var req models.VerifyCheckoutRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Checkout.VerifyCheckout(c.Request.Context(), middleware.UserID(c), req.SessionID)
	if err != nil {
		getLogger(c).Warn("Checkout verification failed", zap.String("sessionID", req.SessionID), zap.Error(err))
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, resp)
}

// ListOrders handles GET /api/orders.
func (h *PaymentHandler) ListOrders(c *gin.Context) {
	orders, err := h.Checkout.ListOrders(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, orders)
}

// GetOrder handles GET /api/orders/:id.
func (h *PaymentHandler) GetOrder(c *gin.Context) {
	o, err := h.Checkout.GetOrder(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, o)
}

// ListAllOrders handles GET /api/admin/orders.
func (h *PaymentHandler) ListAllOrders(c *gin.Context) {
	orders, err := h.Checkout.ListAllOrders(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, orders)
}

// UpdateOrderStatus handles PATCH /api/admin/orders/:id.
func (h *PaymentHandler) UpdateOrderStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if !bindJSON(c, &req) {
		return
	}
	o, err := h.Checkout.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	getLogger(c).Info("Order status updated", zap.String("orderID", o.ID), zap.String("status", string(o.Status)))
	utils.OK(c, o)
}
