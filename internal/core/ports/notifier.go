package ports

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
)

// NotificationQueue accepts notifications for asynchronous delivery. Enqueue
// must not block the request for long.
type NotificationQueue interface {
	Enqueue(n domain.Notification)
}

// NotificationPublisher delivers a single notification to its transport.
type NotificationPublisher interface {
	Publish(ctx context.Context, n domain.Notification) error
}
