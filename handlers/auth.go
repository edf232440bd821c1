package handlers

import (
	"net/http"
	"time"

	"resonance/config"
	"resonance/middleware"
	"resonance/models"
	"resonance/services/cart"
	"resonance/services/user"
	"resonance/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Users    user.UserService
	Carts    *cart.Service
	TokenTTL time.Duration
}

// setTokenCookie mirrors the bearer token into the httpOnly cookie.
func setTokenCookie(c *gin.Context, token string, ttl time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, token, int(ttl.Seconds()), "/", "", config.IsProduction(), true)
}

func clearTokenCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", config.IsProduction(), true)
}

func (h *AuthHandler) loggedIn(c *gin.Context, auth *models.AuthResponse) {
	setTokenCookie(c, auth.Token, h.TokenTTL)
	utils.OK(c, auth)
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Created(c, u, "Account created. Check your email for a verification code.")
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	auth, err := h.Users.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.loggedIn(c, auth)
}

// VerifyEmail handles POST /api/auth/verify-email.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req models.OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	auth, err := h.Users.VerifyEmail(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.loggedIn(c, auth)
}

// ResendVerification handles POST /api/auth/resend-verification.
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req models.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Users.ResendVerification(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "If the account exists, a new code has been sent")
}

// SendOTP handles POST /api/auth/otp/send.
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req models.EmailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Users.SendLoginOTP(c.Request.Context(), req.Email); err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.Message(c, "If the account exists, a sign-in code has been sent")
}

// VerifyOTP handles POST /api/auth/otp/verify.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.OTPVerifyRequest
	if !bindJSON(c, &req) {
		return
	}
	auth, err := h.Users.VerifyLoginOTP(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	h.loggedIn(c, auth)
}

// Logout handles POST /api/auth/logout. The token is revoked and the
// saved cart is dropped.
func (h *AuthHandler) Logout(c *gin.Context) {
	ctx := c.Request.Context()
	token := c.GetString(middleware.CtxToken)

	if h.Carts != nil {
		if st, err := h.Carts.Open(ctx, token); err == nil {
			if err := st.Logout(ctx); err != nil {
				getLogger(c).Warn("Failed to clear cart on logout", zap.Error(err))
			}
		}
	}

	var expiresAt time.Time
	if claims := middleware.Claims(c); claims != nil {
		expiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	if err := h.Users.Logout(ctx, token, expiresAt); err != nil {
		utils.RespondError(c, err)
		return
	}
	clearTokenCookie(c)
	utils.Message(c, "Logged out")
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	u, err := h.Users.GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, u)
}

// UpdateProfile handles PATCH /api/auth/profile.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req models.ProfileUpdate
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Users.UpdateProfile(c.Request.Context(), middleware.UserID(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.OK(c, u)
}
