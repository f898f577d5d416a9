// Package eventbus delivers lifecycle events to their sink.
//
// Every event leaves the process wrapped in an Envelope. Delivery is at most
// once: a notifier that cannot keep up drops the event and logs it rather
// than block the request that produced it.
package eventbus

import (
	"encoding/json"
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/event"
)

const Producer = "marketplace-coordinator"

type Envelope struct {
	EventID      string          `json:"eventId"`
	EventType    event.Type      `json:"eventType"`
	EventVersion int             `json:"eventVersion"`
	Key          string          `json:"key"`
	OccurredAt   time.Time       `json:"occurredAt"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

func NewEnvelope(e event.Event) (Envelope, error) {
	payload, err := json.Marshal(e.Payload)
	if err != nil {
		return Envelope{}, fmt.Errorf("encode %s payload: %w", e.Type, err)
	}

	return Envelope{
		EventID:      e.ID.String(),
		EventType:    e.Type,
		EventVersion: event.Version,
		Key:          e.Key.String(),
		OccurredAt:   e.OccurredAt.UTC(),
		Producer:     Producer,
		Payload:      payload,
	}, nil
}
