package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"resonance/config"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

// Roles carried in the token payload.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
	// ErrMissingSecret is returned when production starts without JWT_SECRET.
	ErrMissingSecret = errors.New("JWT_SECRET must be set in production")
)

// Claims is the JWT payload: { userId, role, isAdmin? }.
type Claims struct {
	UserID  string `json:"userId"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin,omitempty"`
	jwt.StandardClaims
}

// TokenManager signs and validates HS256 tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// devSecret signs tokens in development when JWT_SECRET is unset.
const devSecret = "resonance-dev-secret"

// NewTokenManager refuses an empty secret in production. Elsewhere it falls
// back to a fixed development secret.
func NewTokenManager(secret string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		if config.IsProduction() {
			return nil, ErrMissingSecret
		}
		GetLogger().Warn("JWT_SECRET is not set, signing tokens with the development secret")
		secret = devSecret
	}
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &TokenManager{secret: []byte(secret), ttl: ttl}, nil
}

// TTL is the lifetime of newly issued tokens.
func (m *TokenManager) TTL() time.Duration { return m.ttl }

// GenerateToken issues a signed token for the given subject.
func (m *TokenManager) GenerateToken(userID, role string, isAdmin bool) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:  userID,
		Role:    role,
		IsAdmin: isAdmin,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.New().String(),
			Subject:   userID,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(m.ttl).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken validates signature and expiry and returns the claims.
func (m *TokenManager) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// HashToken computes a SHA-256 hash of the token string.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
