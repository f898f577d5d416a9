package eventbus

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"marketplace/internal/core/domain/model/event"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultBuffer = 1024

	writeTimeout = 5 * time.Second
)

// MessageWriter is the part of *kafka.Writer the notifier uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// NewKafkaWriter keys messages by hash so events about one aggregate land on
// one partition and keep their order.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// KafkaNotifier queues events in memory and writes them from one goroutine.
//
// Publish never blocks: when the queue is full the event is dropped. Start
// runs the writer loop until its context ends, then flushes what is queued
// and closes the writer.
type KafkaNotifier struct {
	writer  MessageWriter
	inbox   chan kafka.Message
	done    chan struct{}
	once    sync.Once
	dropped atomic.Int64
	logger  *slog.Logger
}

func NewKafkaNotifier(writer MessageWriter, buffer int, logger *slog.Logger) *KafkaNotifier {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &KafkaNotifier{
		writer: writer,
		inbox:  make(chan kafka.Message, buffer),
		done:   make(chan struct{}),
		logger: logger.With("component", "kafka_notifier"),
	}
}

func (n *KafkaNotifier) Publish(ctx context.Context, e event.Event) {
	msg, err := toMessage(e)
	if err != nil {
		n.logger.ErrorContext(ctx, "Event dropped: encoding failed", "type", e.Type, "error", err)
		return
	}

	select {
	case n.inbox <- msg:
	default:
		n.dropped.Add(1)
		n.logger.WarnContext(ctx, "Event dropped: queue full", "type", e.Type, "key", e.Key.String())
	}
}

// Start launches the writer loop. Calling it more than once has no effect.
func (n *KafkaNotifier) Start(ctx context.Context) {
	n.once.Do(func() {
		go n.run(ctx)
	})
}

// Wait blocks until the loop started by Start has flushed and closed the writer.
func (n *KafkaNotifier) Wait() {
	<-n.done
}

// Dropped is the number of events discarded because the queue was full.
func (n *KafkaNotifier) Dropped() int64 {
	return n.dropped.Load()
}

func (n *KafkaNotifier) run(ctx context.Context) {
	defer close(n.done)

	for {
		select {
		case <-ctx.Done():
			n.flush()
			if err := n.writer.Close(); err != nil {
				n.logger.Error("Kafka writer close failed", "error", err)
			}
			return
		case msg := <-n.inbox:
			n.write(msg)
		}
	}
}

func (n *KafkaNotifier) flush() {
	for {
		select {
		case msg := <-n.inbox:
			n.write(msg)
		default:
			return
		}
	}
}

func (n *KafkaNotifier) write(msg kafka.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, msg); err != nil {
		n.logger.ErrorContext(ctx, "Event delivery failed", "key", string(msg.Key), "error", err)
	}
}

func toMessage(e event.Event) (kafka.Message, error) {
	envelope, err := NewEnvelope(e)
	if err != nil {
		return kafka.Message{}, err
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(envelope.Key),
		Value: value,
		Time:  envelope.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-id", Value: []byte(envelope.EventID)},
			{Key: "event-type", Value: []byte(envelope.EventType)},
			{Key: "event-version", Value: []byte(strconv.Itoa(envelope.EventVersion))},
		},
	}, nil
}
