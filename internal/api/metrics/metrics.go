// Package metrics defines the custom Prometheus metrics of the casting API.
// All metrics register with the default registry through promauto, so they
// are served by the echoprometheus handler on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kalakar/casting-api/internal/core/domain"
)

const namespace = "kalakar"

// ── Account metrics ──────────────────────────────────────────────────────────

// SignupsTotal counts completed signups.
// Label:
//   - role: "actor" or "director"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created, by role.",
	},
	[]string{"role"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// RateLimitedTotal counts requests rejected by the auth rate limiter.
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected by the rate limiter, by route.",
	},
	[]string{"route"},
)

// ── Marketplace metrics ──────────────────────────────────────────────────────

var AuditionsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auditions_posted_total",
		Help:      "Total number of auditions posted.",
	},
)

var ApplicationsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "applications_submitted_total",
		Help:      "Total number of applications submitted.",
	},
)

// ApplicationDecisionsTotal counts review decisions.
// Label:
//   - decision: "selected" or "rejected"
var ApplicationDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "application_decisions_total",
		Help:      "Total number of application decisions, by outcome.",
	},
	[]string{"decision"},
)

var PromotionsPostedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "promotions_posted_total",
		Help:      "Total number of promotions posted.",
	},
)

// ── Notification metrics ─────────────────────────────────────────────────────

// NotificationsQueueDepth tracks pending notifications per dispatcher worker.
var NotificationsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notifications_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// NotificationsPublishedTotal counts delivered notifications, by kind.
var NotificationsPublishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_published_total",
		Help:      "Total number of notifications published, by kind.",
	},
	[]string{"kind"},
)

// NotificationErrorsTotal counts notifications that were dropped.
// Label:
//   - reason: "publish_failed" or "queue_full"
var NotificationErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_errors_total",
		Help:      "Total number of notifications that could not be delivered.",
	},
	[]string{"reason"},
)

// NotificationPublishDuration measures a single publish call.
var NotificationPublishDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_publish_duration_seconds",
		Help:      "Duration of a single notification publish.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"kind"},
)

// NotificationRecorder reports dispatcher measurements to the notification
// metrics above.
type NotificationRecorder struct{}

func (NotificationRecorder) QueueDepth(worker, depth int) {
	NotificationsQueueDepth.WithLabelValues(strconv.Itoa(worker)).Set(float64(depth))
}

func (NotificationRecorder) Published(kind domain.NotificationKind, took time.Duration) {
	NotificationPublishDuration.WithLabelValues(string(kind)).Observe(took.Seconds())
	NotificationsPublishedTotal.WithLabelValues(string(kind)).Inc()
}

func (NotificationRecorder) Failed(_ domain.NotificationKind, reason string) {
	NotificationErrorsTotal.WithLabelValues(reason).Inc()
}
