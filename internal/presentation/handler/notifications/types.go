package notifications

import "time"

// notificationResponse represents one stored notification event
type notificationResponse struct {
	ID                 string    `json:"id"`
	RecipientID        string    `json:"recipientId"`
	Title              string    `json:"title" example:"Your blog was published"`
	Message            string    `json:"message"`
	Link               string    `json:"link,omitempty" example:"/blogs/42"`
	SourceAuditEntryID string    `json:"sourceAuditEntryId,omitempty"` // Ledger entry the event was derived from
	CreatedAt          time.Time `json:"createdAt"`
	Read               bool      `json:"read"`
}

// listResponse represents a recipient's notifications, newest first
type listResponse struct {
	Notifications []notificationResponse `json:"notifications"`
}
