package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rouvinerh/is4302-project/internal/domain"
	"github.com/rouvinerh/is4302-project/pkg/kafka"
	"github.com/rouvinerh/is4302-project/pkg/retry"
)

// RecordPublisher publishes marketplace records for external observers.
// Records are published in commit order.
type RecordPublisher interface {
	// Publish emits a single marketplace record.
	Publish(ctx context.Context, record *domain.Record) error

	// Close closes the publisher.
	Close() error
}

// KafkaRecordPublisher implements RecordPublisher using Kafka.
type KafkaRecordPublisher struct {
	producer *kafka.Producer
	topic    string
	retryCfg *retry.Config
}

// RecordPublisherConfig contains configuration for the record publisher
type RecordPublisherConfig struct {
	Brokers       []string
	Topic         string
	ClientID      string
	MaxRetries    int
	RetryInterval time.Duration
}

// NewKafkaRecordPublisher creates a new Kafka record publisher
func NewKafkaRecordPublisher(ctx context.Context, cfg *RecordPublisherConfig) (*KafkaRecordPublisher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("record publisher config is required")
	}
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}

	topic := cfg.Topic
	if topic == "" {
		topic = "marketplace-records"
	}

	producer, err := kafka.NewProducer(ctx, &kafka.ProducerConfig{
		Brokers:       cfg.Brokers,
		ClientID:      cfg.ClientID,
		MaxRetries:    cfg.MaxRetries,
		RetryInterval: cfg.RetryInterval,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	return &KafkaRecordPublisher{
		producer: producer,
		topic:    topic,
		retryCfg: &retry.Config{
			MaxRetries:      2,
			InitialInterval: 100 * time.Millisecond,
			MaxInterval:     time.Second,
			Multiplier:      2.0,
			JitterFactor:    0.1,
		},
	}, nil
}

// Publish emits a single marketplace record
func (p *KafkaRecordPublisher) Publish(ctx context.Context, record *domain.Record) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	headers := map[string]string{
		"record_type":  string(record.Type),
		"record_id":    record.ID,
		"content_type": "application/json",
	}

	msg := &kafka.Message{
		Topic:     p.topic,
		Key:       []byte(record.Key()),
		Value:     value,
		Headers:   headers,
		Timestamp: record.Timestamp,
	}

	result := retry.Do(ctx, p.retryCfg, func(ctx context.Context) error {
		return p.producer.Produce(ctx, msg)
	})
	if result.Err != nil {
		return fmt.Errorf("failed to publish %s record after %d attempts: %w", record.Type, result.Attempts, result.LastError)
	}

	return nil
}

// Close closes the publisher
func (p *KafkaRecordPublisher) Close() error {
	if p.producer != nil {
		p.producer.Close()
	}
	return nil
}

// NoOpRecordPublisher is a no-op implementation of RecordPublisher, used
// when no broker is reachable.
type NoOpRecordPublisher struct{}

// NewNoOpRecordPublisher creates a new no-op record publisher
func NewNoOpRecordPublisher() *NoOpRecordPublisher {
	return &NoOpRecordPublisher{}
}

// Publish is a no-op
func (p *NoOpRecordPublisher) Publish(ctx context.Context, record *domain.Record) error {
	return nil
}

// Close is a no-op
func (p *NoOpRecordPublisher) Close() error {
	return nil
}

// MemoryRecordPublisher collects records in memory, in publish order. It is
// used by tests to assert on emitted records.
type MemoryRecordPublisher struct {
	records []*domain.Record
	mu      sync.Mutex
}

// NewMemoryRecordPublisher creates a new memory record publisher
func NewMemoryRecordPublisher() *MemoryRecordPublisher {
	return &MemoryRecordPublisher{}
}

// Publish appends the record to the in-memory log
func (p *MemoryRecordPublisher) Publish(ctx context.Context, record *domain.Record) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	r := *record
	p.records = append(p.records, &r)

	return nil
}

// Close is a no-op
func (p *MemoryRecordPublisher) Close() error {
	return nil
}

// Records returns the records published so far, in order.
func (p *MemoryRecordPublisher) Records() []*domain.Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]*domain.Record, len(p.records))
	copy(out, p.records)
	return out
}

// newRecord builds a record envelope with a fresh id and timestamp.
func newRecord(recordType domain.RecordType) *domain.Record {
	return &domain.Record{
		ID:        uuid.New().String(),
		Type:      recordType,
		Timestamp: time.Now().UTC(),
	}
}
