package monitoring

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	renders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_renders_total",
			Help: "Ticket renders by format, template and result",
		},
		[]string{"format", "template", "result"},
	)

	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ticket_render_duration_seconds",
			Help:    "End-to-end render time including asset acquisition",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
		},
		[]string{"format"},
	)

	qrFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_qr_fallbacks_total",
			Help: "Renders that fell back to the QR placeholder",
		},
		[]string{"reason"},
	)

	cacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_artifact_cache_total",
			Help: "Artifact cache lookups by result",
		},
		[]string{"result"},
	)
)

// ObserveRender records one finished render.
func ObserveRender(format, template string, err error, d time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	renders.WithLabelValues(format, template, result).Inc()
	renderDuration.WithLabelValues(format).Observe(d.Seconds())
}

// QRFallback counts a render that drew the placeholder instead of a QR.
func QRFallback(err error) {
	qrFallbacks.WithLabelValues(FallbackReason(err)).Inc()
}

// FallbackReason buckets a QR acquisition error for metrics and logs.
func FallbackReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	}
	return "error"
}

// CacheLookup records a cache "hit", "miss" or "error".
func CacheLookup(result string) {
	cacheLookups.WithLabelValues(result).Inc()
}
