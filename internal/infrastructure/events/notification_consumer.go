package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/rabbitmq/amqp091-go"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/contracts"
	"github.com/davrian/toolmart/internal/infrastructure/messaging"
)

// NotificationSink receives notifications consumed off the queue, typically
// the websocket hub so other instances' events reach locally connected clients.
type NotificationSink interface {
	Push(event domain.NotificationEvent)
}

type notificationConsumer struct {
	rabbitmq *messaging.RabbitMQ
	sink     NotificationSink
}

func NewNotificationConsumer(rabbitmq *messaging.RabbitMQ, sink NotificationSink) *notificationConsumer {
	return &notificationConsumer{
		rabbitmq: rabbitmq,
		sink:     sink,
	}
}

func (c *notificationConsumer) Listen() error {
	return c.rabbitmq.ConsumeMessages(messaging.NotificationsQueue, func(ctx context.Context, msg amqp091.Delivery) error {
		var message contracts.AmqpMessage
		if err := json.Unmarshal(msg.Body, &message); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		var payload messaging.NotificationEventData
		if err := json.Unmarshal(message.Data, &payload); err != nil {
			log.Printf("Failed to unmarshal message: %v", err)
			return err
		}

		if c.sink != nil {
			c.sink.Push(payload.Notification)
		}

		return nil
	})
}
