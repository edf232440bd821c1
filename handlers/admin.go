package handlers

import (
	"time"

	"resonance/middleware"
	"resonance/models"
	"resonance/services/admin"
	"resonance/services/stats"
	"resonance/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	Admins   admin.AdminService
	TokenTTL time.Duration
}

// Register handles POST /api/admin/register.
func (h *AdminHandler) Register(c *gin.Context) {
	var req models.AdminRegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	auth, err := h.Admins.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setTokenCookie(c, auth.Token, h.TokenTTL)
	utils.Created(c, auth, "Administrator registered")
}

// Login handles POST /api/admin/login.
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	auth, err := h.Admins.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	setTokenCookie(c, auth.Token, h.TokenTTL)
	utils.OK(c, auth)
}

// Profile handles GET /api/admin/profile.
func (h *AdminHandler) Profile(c *gin.Context) {
	u, err := h.Admins.Profile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, u)
}

type StatsHandler struct {
	Stats stats.StatsService
}

// Dashboard handles GET /api/admin/stats.
func (h *StatsHandler) Dashboard(c *gin.Context) {
	s, err := h.Stats.Dashboard(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, s)
}
