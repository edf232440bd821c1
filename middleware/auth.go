package middleware

import (
	"context"
	"errors"
	"strings"

	"resonance/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Gin context keys set by the auth middleware.
const (
	CtxUserID = "userId"
	CtxRole   = "role"
	CtxClaims = "claims"
	CtxToken  = "token"
)

// TokenCookie is the httpOnly cookie carrying the session token.
const TokenCookie = "token"

// TokenParser verifies a signed token.
type TokenParser interface {
	ParseToken(token string) (*utils.Claims, error)
}

// RevocationChecker reports tokens that were logged out.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// ExtractToken reads the bearer header first and falls back to the token cookie.
func ExtractToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		if t := strings.TrimSpace(strings.TrimPrefix(h, "Bearer ")); t != "" {
			return t
		}
	}
	if t, err := c.Cookie(TokenCookie); err == nil {
		return strings.TrimSpace(t)
	}
	return ""
}

// authenticate verifies the request token. Claims are nil when no token was sent.
func authenticate(c *gin.Context, tokens TokenParser, revoked RevocationChecker) (*utils.Claims, string, error) {
	raw := ExtractToken(c)
	if raw == "" {
		return nil, "", nil
	}
	claims, err := tokens.ParseToken(raw)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			return nil, "", utils.Unauthorized("session expired, please log in again")
		}
		return nil, "", utils.Unauthorized("invalid token")
	}
	if revoked != nil {
		isRevoked, err := revoked.IsRevoked(c.Request.Context(), raw)
		if err != nil {
			utils.GetLogger().Error("Failed to check token revocation", zap.Error(err))
			return nil, "", err
		}
		if isRevoked {
			return nil, "", utils.Unauthorized("session has ended, please log in again")
		}
	}
	return claims, raw, nil
}

func setIdentity(c *gin.Context, claims *utils.Claims, raw string) {
	c.Set(CtxUserID, claims.UserID)
	c.Set(CtxRole, claims.Role)
	c.Set(CtxClaims, claims)
	c.Set(CtxToken, raw)
}

// RequireAuth rejects requests without a valid, unrevoked token.
func RequireAuth(tokens TokenParser, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, raw, err := authenticate(c, tokens, revoked)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		if claims == nil {
			utils.RespondError(c, utils.Unauthorized("authentication required"))
			return
		}
		setIdentity(c, claims, raw)
		c.Next()
	}
}

// OptionalAuth attaches the identity when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalAuth(tokens TokenParser, revoked RevocationChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, raw, err := authenticate(c, tokens, revoked)
		if err == nil && claims != nil {
			setIdentity(c, claims, raw)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth. The role comes from the verified token only.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, _ := c.Get(CtxClaims)
		claims, ok := v.(*utils.Claims)
		if !ok {
			utils.RespondError(c, utils.Unauthorized("authentication required"))
			return
		}
		if claims.Role != utils.RoleAdmin || !claims.IsAdmin {
			utils.RespondError(c, utils.Forbidden("administrator access required"))
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id, or "" for anonymous requests.
func UserID(c *gin.Context) string {
	return c.GetString(CtxUserID)
}

// Claims returns the verified token claims, or nil.
func Claims(c *gin.Context) *utils.Claims {
	v, _ := c.Get(CtxClaims)
	claims, _ := v.(*utils.Claims)
	return claims
}
