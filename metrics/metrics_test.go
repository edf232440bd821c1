package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRegisterIsIdempotent(t *testing.T) {
	assert.NotPanics(t, func() {
		Register()
		Register()
	})
}

func TestSlotClaimOutcomes(t *testing.T) {
	before := testutil.ToFloat64(slotClaims.WithLabelValues("conflict"))
	IncSlotClaim(false)
	IncSlotClaim(true)
	assert.Equal(t, before+1, testutil.ToFloat64(slotClaims.WithLabelValues("conflict")))
}

func TestObserveHTTP(t *testing.T) {
	ObserveHTTP("/api/slots", "GET", 200, 15*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(httpRequests.WithLabelValues("/api/slots", "GET", "200")))
}
