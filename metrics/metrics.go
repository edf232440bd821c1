package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resonance"

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		},
		[]string{"route", "method", "status"},
	)

	httpLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	slotClaims = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "slot_claims_total",
			Help:      "Slot claim attempts by outcome.",
		},
		[]string{"outcome"},
	)

	enquiries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enquiries_total",
			Help:      "Enquiries created or updated, by session type.",
		},
		[]string{"session_type"},
	)

	checkoutSessions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_sessions_total",
			Help:      "Payment sessions opened with the provider.",
		},
	)

	ordersRecorded = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_recorded_total",
			Help:      "Orders persisted after verified payment.",
		},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpLatency, slotClaims, enquiries, checkoutSessions, ordersRecorded)
	})
}

// ObserveHTTP records one finished request.
func ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	httpLatency.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func IncSlotClaim(ok bool) {
	outcome := "conflict"
	if ok {
		outcome = "ok"
	}
	slotClaims.WithLabelValues(outcome).Inc()
}

func IncEnquiry(sessionType string) {
	enquiries.WithLabelValues(sessionType).Inc()
}

func IncCheckoutSession() {
	checkoutSessions.Inc()
}

func IncOrderRecorded() {
	ordersRecorded.Inc()
}
