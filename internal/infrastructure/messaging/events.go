package messaging

import "github.com/davrian/toolmart/internal/domain"

const (
	NotificationsQueue = "notifications"
	DeadLetterQueue    = "dead_letter_queue"
)

type NotificationEventData struct {
	Notification domain.NotificationEvent `json:"notification"`
}
