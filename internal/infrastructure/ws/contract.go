package ws

import (
	"time"

	"github.com/davrian/toolmart/internal/domain"
)

type WSMessage struct {
	Type        string `json:"type"`
	RecipientID string `json:"recipientId"`
	Data        any    `json:"data"`
}

// Payload structs
type NotificationPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Link      string `json:"link,omitempty"`
	Timestamp string `json:"timestamp"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry,omitempty"`
}

func NewNotificationReceived(event domain.NotificationEvent) *WSMessage {
	return &WSMessage{
		Type:        NotificationReceived,
		RecipientID: event.RecipientID,
		Data: NotificationPayload{
			ID:        event.ID,
			Title:     event.Title,
			Message:   event.Message,
			Link:      event.Link,
			Timestamp: event.CreatedAt.Format(time.RFC3339),
		},
	}
}

func NewAuthError(message string) *WSMessage {
	return &WSMessage{
		Type: AuthenticationError,
		Data: ErrorPayload{
			Code:    "AUTH_FAILED",
			Message: message,
			Retry:   true,
		},
	}
}
