package handlers

import (
	"errors"

	"resonance/middleware"
	"resonance/models"
	"resonance/services/cart"
	"resonance/services/checkout"
	"resonance/utils"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	Carts   *cart.Service
	Pricing checkout.Pricing
}

func (h *CartHandler) view(st *cart.Store) models.CartView {
	return models.CartView{
		Items:         st.Items(),
		TotalQuantity: st.TotalQuantity(),
		Charges:       checkout.ComputeCharges(st.Subtotal(), h.Pricing),
	}
}

// open loads the caller's cart. The route is authenticated, so an unowned
// store means the token was rejected after the middleware ran.
func (h *CartHandler) open(c *gin.Context) (*cart.Store, bool) {
	st, err := h.Carts.Open(c.Request.Context(), c.GetString(middleware.CtxToken))
	if err != nil {
		utils.RespondError(c, err)
		return nil, false
	}
	if st.Owner() == "" {
		utils.RespondError(c, utils.Unauthorized("authentication required"))
		return nil, false
	}
	return st, true
}

// respond answers with the updated cart, mapping a dropped change to 401.
func (h *CartHandler) respond(c *gin.Context, st *cart.Store, err error) {
	if errors.Is(err, cart.ErrNoSession) {
		utils.RespondError(c, utils.Unauthorized("authentication required"))
		return
	}
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, h.view(st))
}

// Get handles GET /api/cart.
func (h *CartHandler) Get(c *gin.Context) {
	if st, ok := h.open(c); ok {
		utils.OK(c, h.view(st))
	}
}

// AddItem handles POST /api/cart/items.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddCartItemRequest
	if !bindJSON(c, &req) {
		return
	}
	st, ok := h.open(c)
	if !ok {
		return
	}
	h.respond(c, st, h.Carts.AddProduct(c.Request.Context(), st, req.ProductID, req.Quantity))
}

// Increment handles POST /api/cart/items/:id/increment.
func (h *CartHandler) Increment(c *gin.Context) {
	if st, ok := h.open(c); ok {
		h.respond(c, st, st.Increment(c.Request.Context(), c.Param("id")))
	}
}

// Decrement handles POST /api/cart/items/:id/decrement.
func (h *CartHandler) Decrement(c *gin.Context) {
	if st, ok := h.open(c); ok {
		h.respond(c, st, st.Decrement(c.Request.Context(), c.Param("id")))
	}
}

// Remove handles DELETE /api/cart/items/:id.
func (h *CartHandler) Remove(c *gin.Context) {
	if st, ok := h.open(c); ok {
		h.respond(c, st, st.Remove(c.Request.Context(), c.Param("id")))
	}
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	if st, ok := h.open(c); ok {
		h.respond(c, st, st.Clear(c.Request.Context()))
	}
}
