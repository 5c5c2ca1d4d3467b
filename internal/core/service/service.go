// Package service implements the marketplace use cases on top of the ports.
package service

import (
	"context"

	"github.com/kalakar/casting-api/internal/core/domain"
	"github.com/kalakar/casting-api/internal/core/ports"
	"github.com/kalakar/casting-api/internal/core/validation"
)

// validate is shared by every service; the validator is safe for concurrent use.
var validate = validation.New()

type discardQueue struct{}

func (discardQueue) Enqueue(domain.Notification) {}

func queueOrDiscard(q ports.NotificationQueue) ports.NotificationQueue {
	if q == nil {
		return discardQueue{}
	}
	return q
}

// detach keeps values but drops cancellation, for cleanup that must run
// after the request context is done.
func detach(ctx context.Context) context.Context {
	return context.WithoutCancel(ctx)
}
