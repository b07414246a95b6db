package broker

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gofrs/uuid/v5"
	"github.com/segmentio/kafka-go"

	"github.com/samandr77/microservices/compliance/pkg/logger"
)

const headerRequestID = "request_id"

type HandlerFunc func(ctx context.Context, msg kafka.Message) error

// Reader is the part of *kafka.Reader the consumer needs.
type Reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer dispatches messages to per-topic handlers and commits each
// message once its handler returned, whatever the outcome.
type Consumer struct {
	l        *slog.Logger
	r        Reader
	wg       sync.WaitGroup
	handlers map[string]HandlerFunc
}

func NewConsumer(brokers []string, groupID string, topics ...string) *Consumer {
	l := slog.Default().WithGroup("kafka").With("group_id", groupID)

	return NewConsumerWithReader(l, kafka.NewReader(kafka.ReaderConfig{
		Brokers:     brokers,
		GroupID:     groupID,
		GroupTopics: topics,
		Logger:      kafka.LoggerFunc(func(format string, v ...any) { l.Debug(fmt.Sprintf(format, v...)) }),
		ErrorLogger: kafka.LoggerFunc(func(format string, v ...any) { l.Error(fmt.Sprintf(format, v...)) }),
	}))
}

func NewConsumerWithReader(l *slog.Logger, r Reader) *Consumer {
	return &Consumer{
		l:        l,
		r:        r,
		handlers: make(map[string]HandlerFunc),
	}
}

func (c *Consumer) Handle(topic string, handler HandlerFunc) *Consumer {
	c.handlers[topic] = handler
	return c
}

func (c *Consumer) Consume(ctx context.Context) *Consumer {
	c.wg.Add(1)

	go func() {
		defer c.wg.Done()

		for {
			m, err := c.r.FetchMessage(ctx)
			if err != nil {
				if errors.Is(err, io.EOF) || ctx.Err() != nil {
					c.l.Info("consumer stopped")
					return
				}

				c.l.Error("fetch kafka message", "error", err)

				continue
			}

			c.dispatch(ctx, m)

			err = c.r.CommitMessages(ctx, m)
			if err != nil && ctx.Err() == nil {
				c.l.Error("commit kafka message", "error", err, "topic", m.Topic, "offset", m.Offset)
			}
		}
	}()

	return c
}

func (c *Consumer) dispatch(ctx context.Context, m kafka.Message) {
	handler, ok := c.handlers[m.Topic]
	if !ok {
		c.l.Warn("kafka handler not found", "topic", m.Topic)
		return
	}

	ctx = logger.SetRequestID(ctx, requestID(m))

	err := handler(ctx, m)
	if err != nil {
		c.l.ErrorContext(ctx, "handle kafka message", "error", err, "topic", m.Topic, "offset", m.Offset)
	}
}

func requestID(m kafka.Message) string {
	for _, h := range m.Headers {
		if h.Key == headerRequestID && len(h.Value) > 0 {
			return string(h.Value)
		}
	}

	return uuid.Must(uuid.NewV4()).String()
}

// Close stops the reader and waits for the consume loop to exit.
func (c *Consumer) Close() {
	err := c.r.Close()
	if err != nil {
		c.l.Error("close kafka reader", "error", err)
	}

	c.wg.Wait()
}
