package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/YelzhanWeb/waste-tracker/internal/adapter/logger"
	"github.com/YelzhanWeb/waste-tracker/internal/interfaces"
)

const reconnectDelay = 5 * time.Second

type consumer struct {
	conn     Connection
	exchange string
	logger   logger.Logger
	delay    time.Duration
}

func NewConsumer(conn Connection, exchange string, lgr logger.Logger) interfaces.EventConsumer {
	return &consumer{conn: conn, exchange: exchange, logger: lgr, delay: reconnectDelay}
}

// ConsumeWasteEvents blocks until ctx is done, re-subscribing after channel
// failures.
func (c *consumer) ConsumeWasteEvents(ctx context.Context, handler interfaces.NotificationHandler) error {
	for {
		err := c.consumeOnce(ctx, handler)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err == nil {
			return nil
		}

		c.logger.Error("consumer_disconnected", "Waste event consumer disconnected, reconnecting", "",
			map[string]interface{}{"delay": c.delay.String()}, err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.delay):
		}
	}
}

func (c *consumer) consumeOnce(ctx context.Context, handler interfaces.NotificationHandler) error {
	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	closeChan := ch.NotifyClose()

	if err := ch.ExchangeDeclare(c.exchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	// Temporary exclusive queue: each subscriber sees every event.
	q, err := ch.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, "", c.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}

	msgs, err := ch.Consume(q.Name, "", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err := <-closeChan:
			if err != nil {
				return fmt.Errorf("channel closed: %w", err)
			}
			return fmt.Errorf("channel closed gracefully")

		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("messages channel closed")
			}
			if err := handler(ctx, msg.Body); err != nil {
				c.logger.Warn("event_handler_failed", "Failed to handle waste event", msg.MessageId, map[string]interface{}{
					"error": err.Error(),
				})
			}
		}
	}
}
