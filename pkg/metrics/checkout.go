package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes of checkout attempts.
type CheckoutMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
	bookings prometheus.Counter
}

// NewCheckoutMetrics registers the checkout metrics on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_duration_seconds",
		Help:    "Duration of checkout attempts in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout attempts partitioned by outcome code.",
	}, []string{"outcome"})
	bookings := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "bookings_created_total",
		Help: "Bookings created by committed checkouts.",
	})
	reg.MustRegister(duration, outcomes, bookings)
	return &CheckoutMetrics{
		duration: duration,
		outcomes: outcomes,
		bookings: bookings,
	}
}

// ObserveAttempt records one checkout attempt with its outcome label and
// duration.
func (c *CheckoutMetrics) ObserveAttempt(outcome string, duration time.Duration) {
	if c == nil {
		return
	}
	label := normalizeLabel(outcome)
	if c.outcomes != nil {
		c.outcomes.WithLabelValues(label).Inc()
	}
	if c.duration != nil {
		c.duration.WithLabelValues(label).Observe(duration.Seconds())
	}
}

// AddBookings counts bookings created by a committed checkout.
func (c *CheckoutMetrics) AddBookings(n int) {
	if c == nil || c.bookings == nil || n <= 0 {
		return
	}
	c.bookings.Add(float64(n))
}

func normalizeLabel(outcome string) string {
	if outcome == "" {
		return "unknown"
	}
	return outcome
}
