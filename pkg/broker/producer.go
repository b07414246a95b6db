package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/compliance/internal/entity"
	"github.com/samandr77/microservices/compliance/pkg/logger"
)

// Writer is the part of *kafka.Writer the producer needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	l                 *slog.Logger
	w                 Writer
	eventsTopic       string
	notificationTopic string
}

func NewProducer(l *slog.Logger, brokers []string, eventsTopic, notificationTopic string) *Producer {
	l = l.WithGroup("kafka").With("events_topic", eventsTopic, "notification_topic", notificationTopic)

	return NewProducerWithWriter(l, &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		Async:                  true,
		Logger:                 kafka.LoggerFunc(func(format string, v ...any) { l.Debug(fmt.Sprintf(format, v...)) }),
		ErrorLogger:            kafka.LoggerFunc(func(format string, v ...any) { l.Error(fmt.Sprintf(format, v...)) }),
		AllowAutoTopicCreation: true,
	}, eventsTopic, notificationTopic)
}

func NewProducerWithWriter(l *slog.Logger, w Writer, eventsTopic, notificationTopic string) *Producer {
	return &Producer{
		l:                 l,
		w:                 w,
		eventsTopic:       eventsTopic,
		notificationTopic: notificationTopic,
	}
}

func (p *Producer) PublishEvent(ctx context.Context, event entity.Event) {
	p.write(ctx, p.eventsTopic, event.EntityID, event)
}

// NotificationEvent is the payload the notification service consumes.
type NotificationEvent struct {
	Type        string   `json:"type"`
	Subject     string   `json:"subject"`
	Message     string   `json:"message"`
	Recipients  []string `json:"recipients"`
	ContentType string   `json:"contentType,omitempty"`
}

func (p *Producer) SendNotification(ctx context.Context, msg entity.Message) error {
	p.write(ctx, p.notificationTopic, msg.Type, NotificationEvent{
		Type:        msg.Type,
		Subject:     msg.Subject,
		Message:     msg.Message,
		Recipients:  msg.Recipients,
		ContentType: msg.ContentType,
	})

	return nil
}

func (p *Producer) write(ctx context.Context, topic, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		p.l.ErrorContext(ctx, "marshal kafka message", "error", err, "topic", topic)
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: b,
		Topic: topic,
	}

	if reqID := logger.RequestIDFromCtx(ctx); reqID != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: headerRequestID, Value: []byte(reqID)})
	}

	err = p.w.WriteMessages(ctx, msg)
	if err != nil {
		p.l.ErrorContext(ctx, "write kafka message", "error", err, "topic", topic)
	}
}

func (p *Producer) Close() {
	err := p.w.Close()
	if err != nil {
		p.l.Error("close kafka writer", "error", err)
	}
}
