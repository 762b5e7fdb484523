package events

import (
	"context"
	"encoding/json"

	"github.com/davrian/toolmart/internal/domain"
	"github.com/davrian/toolmart/internal/infrastructure/contracts"
	"github.com/davrian/toolmart/internal/infrastructure/messaging"
)

type NotificationPublisher struct {
	rabbitmq *messaging.RabbitMQ
}

func NewNotificationPublisher(rabbitmq *messaging.RabbitMQ) *NotificationPublisher {
	return &NotificationPublisher{
		rabbitmq: rabbitmq,
	}
}

func (p *NotificationPublisher) PublishNotification(ctx context.Context, event *domain.NotificationEvent) error {
	payload := messaging.NotificationEventData{
		Notification: *event,
	}

	eventJSON, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return p.rabbitmq.PublishMessage(ctx, contracts.EventNotificationCreated, contracts.AmqpMessage{
		RecipientID: event.RecipientID,
		Data:        eventJSON,
	})
}
