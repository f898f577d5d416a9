package eventbus

import (
	"context"
	"log/slog"

	"marketplace/internal/core/domain/model/event"
)

// LogNotifier writes each event to the structured log. It is the sink when no
// Kafka brokers are configured.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) LogNotifier {
	return LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n LogNotifier) Publish(ctx context.Context, e event.Event) {
	envelope, err := NewEnvelope(e)
	if err != nil {
		n.logger.ErrorContext(ctx, "Event dropped: encoding failed", "type", e.Type, "error", err)
		return
	}

	n.logger.InfoContext(ctx, "Event published",
		"eventId", envelope.EventID,
		"type", envelope.EventType,
		"key", envelope.Key,
		"occurredAt", envelope.OccurredAt,
		"payload", envelope.Payload,
	)
}
