package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/you/blogsvc/domain"
	"go.uber.org/zap"
)

// messageWriter is the part of *kafka.Writer the audit logger needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaAuditLogger publishes audit events as JSON, keyed by user so one
// account's events stay ordered within a partition.
type KafkaAuditLogger struct {
	writer messageWriter
	logger *zap.Logger
}

// NewKafkaAuditLogger creates an asynchronous producer for topic
func NewKafkaAuditLogger(brokers []string, topic string, logger *zap.Logger) *KafkaAuditLogger {
	logger = logger.Named("audit")
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error("audit batch not delivered", zap.Int("messages", len(messages)), zap.Error(err))
			}
		},
	}
	return &KafkaAuditLogger{writer: writer, logger: logger}
}

// LogEvent implements domain.AuditLogger
func (k *KafkaAuditLogger) LogEvent(ctx context.Context, event *domain.AuditEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode audit event: %w", err)
	}

	key := event.UserID
	if key == "" {
		key = event.Username
	}
	msg := kafka.Message{
		Key:   []byte(key),
		Value: value,
		Time:  event.Timestamp,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := k.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}

// Close flushes pending events
func (k *KafkaAuditLogger) Close() error {
	return k.writer.Close()
}

// LogAuditLogger implements domain.AuditLogger with structured log lines
type LogAuditLogger struct {
	logger *zap.Logger
}

// NewLogAuditLogger creates a new LogAuditLogger
func NewLogAuditLogger(logger *zap.Logger) *LogAuditLogger {
	return &LogAuditLogger{logger: logger.Named("audit")}
}

// LogEvent implements domain.AuditLogger
func (l *LogAuditLogger) LogEvent(_ context.Context, event *domain.AuditEvent) error {
	fields := []zap.Field{
		zap.String("event_type", string(event.EventType)),
		zap.Bool("success", event.Success),
		zap.Time("timestamp", event.Timestamp),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.Username != "" {
		fields = append(fields, zap.String("username", event.Username))
	}
	if event.ErrorMsg != "" {
		fields = append(fields, zap.String("error", event.ErrorMsg))
	}
	if len(event.Metadata) > 0 {
		fields = append(fields, zap.Any("metadata", event.Metadata))
	}
	l.logger.Info("audit", fields...)
	return nil
}

var (
	_ domain.AuditLogger = (*KafkaAuditLogger)(nil)
	_ domain.AuditLogger = (*LogAuditLogger)(nil)
)
