package event

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/wrecklessracks/racks/internal/logger"
)

// MessageWriter is the subset of *kafka.Writer the sink uses
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaSink forwards bus events to a Kafka topic through a small worker pool.
// Messages are keyed by account so a consumer sees one account's events in order.
type KafkaSink struct {
	writer MessageWriter
	topic  string
	jobs   chan kafka.Message
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewKafkaWriter builds the production writer for brokers
func NewKafkaWriter(brokers []string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  KafkaMaxWriteAttempts,
		WriteTimeout: KafkaWriteTimeout,
		ReadTimeout:  KafkaWriteTimeout,
	}
}

// NewKafkaSink starts workers writing to topic through writer
func NewKafkaSink(writer MessageWriter, topic string, workers int) *KafkaSink {
	if workers <= 0 {
		workers = KafkaDefaultWorkers
	}
	s := &KafkaSink{
		writer: writer,
		topic:  topic,
		jobs:   make(chan kafka.Message, KafkaQueueBufferSize),
	}
	for i := 0; i < workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
	return s
}

// Register subscribes the sink to every event type on bus
func (s *KafkaSink) Register(bus Bus) {
	SubscribeAll(bus, s.Handle, AllTypes...)
}

// Handle encodes the event and queues it for delivery. A full queue drops the event; Kafka is
// an export path, not the source of truth.
func (s *KafkaSink) Handle(ctx context.Context, e Event) error {
	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: s.topic,
		Key:   []byte(e.AccountID()),
		Value: value,
		Time:  time.Now(),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(e.Type)},
			{Key: "schema_version", Value: []byte(e.Version)},
		},
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}

	select {
	case s.jobs <- msg:
	default:
		logger.FromContext(ctx).Warn(LogMsgKafkaQueueFull, "event_type", e.Type)
	}
	return nil
}

func (s *KafkaSink) worker() {
	defer s.wg.Done()
	for msg := range s.jobs {
		s.send(msg)
	}
}

func (s *KafkaSink) send(msg kafka.Message) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic recovered in kafka sink",
				"panic", fmt.Sprintf("%v", r),
				"stack_trace", string(debug.Stack()))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), KafkaWriteTimeout)
	defer cancel()

	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error(LogMsgKafkaWriteFailed,
			"topic", msg.Topic,
			"key", string(msg.Key),
			"error", err)
	}
}

// Close flushes queued messages and closes the writer
func (s *KafkaSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	close(s.jobs)
	s.mu.Unlock()

	s.wg.Wait()
	return s.writer.Close()
}
