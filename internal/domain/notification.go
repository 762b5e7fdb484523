package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RecipientStaff is the group alias used when an event addresses the
// moderation staff as a whole rather than one account.
const RecipientStaff = "staff"

// NotificationEvent is a derived, non-authoritative signal. Losing one never
// compromises the entity or audit state it was derived from.
type NotificationEvent struct {
	ID                 string    `bson:"_id" json:"id"`
	RecipientID        string    `bson:"recipient_id" json:"recipientId"`
	Title              string    `bson:"title" json:"title"`
	Message            string    `bson:"message" json:"message"`
	Link               string    `bson:"link,omitempty" json:"link,omitempty"`
	SourceAuditEntryID string    `bson:"source_audit_entry_id,omitempty" json:"sourceAuditEntryId,omitempty"`
	CreatedAt          time.Time `bson:"created_at" json:"createdAt"`
	Read               bool      `bson:"read" json:"read"`
}

func NewNotificationEvent(recipientID, title, message, link, sourceAuditEntryID string) *NotificationEvent {
	return &NotificationEvent{
		ID:                 uuid.NewString(),
		RecipientID:        recipientID,
		Title:              title,
		Message:            message,
		Link:               link,
		SourceAuditEntryID: sourceAuditEntryID,
		CreatedAt:          time.Now().UTC(),
	}
}

type NotificationRepository interface {
	Insert(ctx context.Context, event *NotificationEvent) error
	GetByRecipient(ctx context.Context, recipientID string, limit int) ([]NotificationEvent, error)
	MarkRead(ctx context.Context, id string) error
	EnsureIndexes(ctx context.Context) error
}
