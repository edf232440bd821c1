package utils

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// OTP purposes; each keeps its own namespace so a login code cannot verify an email.
const (
	OTPPurposeVerifyEmail = "verify-email"
	OTPPurposeLogin       = "login"
)

const maxOTPAttempts = 5

var (
	ErrOTPNotFound        = errors.New("OTP not found or expired")
	ErrOTPMismatch        = errors.New("OTP does not match")
	ErrOTPTooManyAttempts = errors.New("too many attempts, request a new code")
)

// OTPStore keeps one-time codes in Redis with a TTL.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
	length int
}

func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = OTPTTL
	}
	return &OTPStore{client: client, ttl: ttl, length: OTPLength}
}

func otpKey(purpose, subject string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, subject)
}

func otpAttemptsKey(purpose, subject string) string {
	return fmt.Sprintf("otp-attempts:%s:%s", purpose, subject)
}

// generateNumericOTP returns a uniformly random decimal code of the given length.
func generateNumericOTP(length int) (string, error) {
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}
	return fmt.Sprintf("%0*d", length, n), nil
}

const (
	otpMissing  = -1
	otpConsumed = 1
)

// consumeOTPScript deletes the code and its attempt counter only when the
// provided value matches, so a code is accepted at most once.
var consumeOTPScript = redis.NewScript(`
local stored = redis.call("GET", KEYS[1])
if not stored then
	return -1
end
if stored ~= ARGV[1] then
	return 0
end
redis.call("DEL", KEYS[1], KEYS[2])
return 1
`)

// Issue creates a new code for subject, replacing any previous one.
func (s *OTPStore) Issue(ctx context.Context, purpose, subject string) (string, error) {
	otp, err := generateNumericOTP(s.length)
	if err != nil {
		return "", err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, otpKey(purpose, subject), otp, s.ttl)
	pipe.Del(ctx, otpAttemptsKey(purpose, subject))
	if _, err := pipe.Exec(ctx); err != nil {
		GetLogger().Error("Failed to cache OTP", zap.String("purpose", purpose), zap.Error(err))
		return "", fmt.Errorf("failed to store OTP: %w", err)
	}
	return otp, nil
}

// Verify compares the provided code with the stored one and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, purpose, subject, provided string) error {
	key := otpKey(purpose, subject)
	res, err := consumeOTPScript.Run(ctx, s.client, []string{key, otpAttemptsKey(purpose, subject)}, provided).Int()
	if err != nil {
		return fmt.Errorf("failed to verify OTP: %w", err)
	}

	switch res {
	case otpConsumed:
		return nil
	case otpMissing:
		return ErrOTPNotFound
	default:
		attemptsKey := otpAttemptsKey(purpose, subject)
		attempts, err := s.client.Incr(ctx, attemptsKey).Result()
		if err != nil {
			return fmt.Errorf("failed to record OTP attempt: %w", err)
		}
		_ = s.client.Expire(ctx, attemptsKey, s.ttl).Err()
		if attempts >= maxOTPAttempts {
			_ = s.client.Del(ctx, key, attemptsKey).Err()
			return ErrOTPTooManyAttempts
		}
		return ErrOTPMismatch
	}
}
