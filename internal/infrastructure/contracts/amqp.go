package contracts

// AmqpMessage is the message structure for AMQP.
type AmqpMessage struct {
	RecipientID string `json:"recipientId"`
	Data        []byte `json:"data"`
}

// Routing keys - using consistent event/command patterns
const (
	EventNotificationCreated = "notification.created"
)
