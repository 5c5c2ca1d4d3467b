package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/kalakar/casting-api/internal/core/domain"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	var m dto.Metric
	if err := g.Write(&m); err != nil {
		t.Fatalf("write metric: %v", err)
	}
	return m.GetGauge().GetValue()
}

func TestNotificationRecorder(t *testing.T) {
	var r NotificationRecorder
	kind := domain.NotifyPromotionPosted

	published := NotificationsPublishedTotal.WithLabelValues(string(kind))
	dropped := NotificationErrorsTotal.WithLabelValues("queue_full")
	beforePublished := counterValue(t, published)
	beforeDropped := counterValue(t, dropped)

	r.Published(kind, 20*time.Millisecond)
	r.Failed(kind, "queue_full")
	r.QueueDepth(3, 7)

	if got := counterValue(t, published) - beforePublished; got != 1 {
		t.Fatalf("expected one publish counted, got %v", got)
	}
	if got := counterValue(t, dropped) - beforeDropped; got != 1 {
		t.Fatalf("expected one drop counted, got %v", got)
	}
	if got := gaugeValue(t, NotificationsQueueDepth.WithLabelValues("3")); got != 7 {
		t.Fatalf("expected depth 7 for worker 3, got %v", got)
	}
}
