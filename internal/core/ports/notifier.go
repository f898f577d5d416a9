package ports

import (
	"context"

	"marketplace/internal/core/domain/model/event"
)

// Notifier hands lifecycle events to the delivery sink. Publish must not block on
// delivery and has no error result: a lost event never undoes the state change it reports.
type Notifier interface {
	Publish(ctx context.Context, e event.Event)
}
