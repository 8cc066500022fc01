package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeDelivered = "delivered"
	OutcomeFailed    = "failed"
)

var (
	// NotificationsTotal counts outbound emails by kind (otp, approval) and outcome.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "svp_notifications_total",
		Help: "Total number of applicant notifications by kind and outcome",
	}, []string{"kind", "outcome"})

	// RateLimitRejections counts requests refused by the public lookup limiter.
	RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "svp_rate_limit_rejections_total",
		Help: "Total number of requests rejected by the rate limiter",
	}, []string{"scope"})

	// RateLimitErrors counts limiter backend failures that were let through.
	RateLimitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "svp_rate_limit_errors_total",
		Help: "Total number of rate limiter backend errors",
	})

	// ServerErrors counts 5xx responses by cause (panic, handler, status).
	ServerErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "svp_http_server_errors_total",
		Help: "Total number of requests that ended in a server error",
	}, []string{"cause"})

	AdminFeedConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "svp_admin_feed_connections",
		Help: "Number of connected admin live feed clients",
	})

	AdminFeedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "svp_admin_feed_events_total",
		Help: "Total applicant events broadcast to the admin live feed",
	}, []string{"event_type"})

	AdminFeedDrops = promauto.NewCounter(prometheus.CounterOpts{
		Name: "svp_admin_feed_drops_total",
		Help: "Total admin feed messages dropped because a client was too slow",
	})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
