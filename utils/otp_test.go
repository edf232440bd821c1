package utils

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	SetLogger(zap.NewNop())
	s, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(s.Close)

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	t.Cleanup(func() { client.Close() })
	return s, client
}

func TestOTPStore(t *testing.T) {
	s, client := newTestRedis(t)
	store := NewOTPStore(client, time.Minute)
	ctx := context.Background()

	t.Run("IssueAndVerify", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeLogin, "a@example.com")
		require.NoError(t, err)
		assert.Len(t, code, OTPLength)

		require.NoError(t, store.Verify(ctx, OTPPurposeLogin, "a@example.com", code))
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "a@example.com", code), ErrOTPNotFound)
	})

	t.Run("PurposesAreIsolated", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeVerifyEmail, "b@example.com")
		require.NoError(t, err)
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "b@example.com", code), ErrOTPNotFound)
	})

	t.Run("Mismatch", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeLogin, "c@example.com")
		require.NoError(t, err)
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "c@example.com", wrong), ErrOTPMismatch)
		require.NoError(t, store.Verify(ctx, OTPPurposeLogin, "c@example.com", code))
	})

	t.Run("TooManyAttemptsBurnsCode", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeLogin, "d@example.com")
		require.NoError(t, err)
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}
		for i := 0; i < maxOTPAttempts-1; i++ {
			assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "d@example.com", wrong), ErrOTPMismatch)
		}
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "d@example.com", wrong), ErrOTPTooManyAttempts)
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "d@example.com", code), ErrOTPNotFound)
	})

	t.Run("ConcurrentCorrectSubmissionsConsumeOnce", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeLogin, "f@example.com")
		require.NoError(t, err)

		const n = 8
		var wg sync.WaitGroup
		var accepted int32
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if store.Verify(ctx, OTPPurposeLogin, "f@example.com", code) == nil {
					atomic.AddInt32(&accepted, 1)
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, int32(1), accepted)
	})

	t.Run("Expires", func(t *testing.T) {
		code, err := store.Issue(ctx, OTPPurposeLogin, "e@example.com")
		require.NoError(t, err)
		s.FastForward(2 * time.Minute)
		assert.ErrorIs(t, store.Verify(ctx, OTPPurposeLogin, "e@example.com", code), ErrOTPNotFound)
	})
}

func TestRevocationStore(t *testing.T) {
	s, client := newTestRedis(t)
	store := NewRevocationStore(client)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok", time.Hour))
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, revoked)

	s.FastForward(2 * time.Hour)
	revoked, err = store.IsRevoked(ctx, "tok")
	require.NoError(t, err)
	assert.False(t, revoked)
}
