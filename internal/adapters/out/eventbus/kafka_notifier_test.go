package eventbus_test

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/eventbus"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)

type MockWriter struct{ mock.Mock }

func (m *MockWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	args := m.Called(ctx, msgs)
	return args.Error(0)
}

func (m *MockWriter) Close() error {
	return m.Called().Error(0)
}

func delivered(orderID, buyerID kernel.UUID) event.Event {
	return event.Event{
		ID:         kernel.NewUUID(),
		Type:       event.OrderDelivered,
		Key:        orderID,
		OccurredAt: now,
		Payload: event.OrderDeliveredPayload{
			OrderID: orderID.String(),
			BuyerID: buyerID.String(),
		},
	}
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaNotifier_WritesEnvelopeAndClosesOnShutdown(t *testing.T) {
	writer := &MockWriter{}
	notifier := eventbus.NewKafkaNotifier(writer, 4, slog.New(slog.DiscardHandler))
	orderID, buyerID := kernel.NewUUID(), kernel.NewUUID()
	e := delivered(orderID, buyerID)

	var written kafka.Message
	mock.InOrder(
		writer.On("WriteMessages", mock.Anything, mock.AnythingOfType("[]kafka.Message")).
			Run(func(args mock.Arguments) { written = args.Get(1).([]kafka.Message)[0] }).
			Return(nil).Once(),
		writer.On("Close").Return(nil).Once(),
	)

	notifier.Publish(t.Context(), e)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	notifier.Start(ctx)
	notifier.Wait()

	writer.AssertExpectations(t)
	assert.Equal(t, orderID.String(), string(written.Key))
	assert.Equal(t, string(event.OrderDelivered), header(written, "event-type"))
	assert.Equal(t, e.ID.String(), header(written, "event-id"))
	assert.Equal(t, "1", header(written, "event-version"))

	var envelope eventbus.Envelope
	require.NoError(t, json.Unmarshal(written.Value, &envelope))
	assert.Equal(t, event.OrderDelivered, envelope.EventType)
	assert.Equal(t, eventbus.Producer, envelope.Producer)
	assert.True(t, now.Equal(envelope.OccurredAt))

	var payload event.OrderDeliveredPayload
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, orderID.String(), payload.OrderID)
	assert.Empty(t, payload.AgentID)
}

func TestKafkaNotifier_DropsWhenQueueIsFull(t *testing.T) {
	writer := &MockWriter{}
	notifier := eventbus.NewKafkaNotifier(writer, 1, slog.New(slog.DiscardHandler))

	notifier.Publish(t.Context(), delivered(kernel.NewUUID(), kernel.NewUUID()))
	notifier.Publish(t.Context(), delivered(kernel.NewUUID(), kernel.NewUUID()))

	assert.Equal(t, int64(1), notifier.Dropped())
	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
}

func TestKafkaNotifier_DeliveryFailureDoesNotStopTheLoop(t *testing.T) {
	writer := &MockWriter{}
	notifier := eventbus.NewKafkaNotifier(writer, 4, slog.New(slog.DiscardHandler))

	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(errors.New("broker down")).Once()
	writer.On("WriteMessages", mock.Anything, mock.Anything).Return(nil).Once()
	writer.On("Close").Return(nil).Once()

	notifier.Publish(t.Context(), delivered(kernel.NewUUID(), kernel.NewUUID()))
	notifier.Publish(t.Context(), delivered(kernel.NewUUID(), kernel.NewUUID()))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	notifier.Start(ctx)
	notifier.Wait()

	writer.AssertNumberOfCalls(t, "WriteMessages", 2)
	writer.AssertExpectations(t)
}

func TestKafkaNotifier_UnencodablePayloadIsDropped(t *testing.T) {
	writer := &MockWriter{}
	notifier := eventbus.NewKafkaNotifier(writer, 4, slog.New(slog.DiscardHandler))
	writer.On("Close").Return(nil).Once()

	e := delivered(kernel.NewUUID(), kernel.NewUUID())
	e.Payload = make(chan int)
	notifier.Publish(t.Context(), e)

	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	notifier.Start(ctx)
	notifier.Wait()

	writer.AssertNotCalled(t, "WriteMessages", mock.Anything, mock.Anything)
	assert.Equal(t, int64(0), notifier.Dropped())
}
