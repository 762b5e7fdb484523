package moderation

import "time"

// moderateRequest carries the optional parameters of a moderation action
type moderateRequest struct {
	Reason  string `json:"reason,omitempty" example:"spam"`  // Required for reject
	NewRole string `json:"newRole,omitempty" example:"writer"` // Required for change_role
}

// actorResponse identifies who performed an action
type actorResponse struct {
	ID   string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"` // Actor identifier
	Name string `json:"name" example:"jane"`                               // Display name at action time
	Role string `json:"role" example:"manager"`                            // Role at action time
}

// historyEntryResponse represents one recorded lifecycle step
type historyEntryResponse struct {
	Status    string        `json:"status" example:"published"`
	ChangedBy actorResponse `json:"changedBy"`
	ChangedAt time.Time     `json:"changedAt"`
	Reason    string        `json:"reason,omitempty"`
}

// itemResponse represents the moderated entity after the action
type itemResponse struct {
	ID              string                 `json:"id"`
	Kind            string                 `json:"kind" example:"blog"`
	Status          string                 `json:"status" example:"pending_approval"`
	OwnerID         string                 `json:"ownerId"`
	Title           string                 `json:"title"`
	Category        string                 `json:"category,omitempty"`
	Rating          int                    `json:"rating,omitempty"`
	RatingActive    bool                   `json:"ratingActive,omitempty"`
	Role            string                 `json:"role,omitempty"`
	Blocked         bool                   `json:"blocked,omitempty"`
	PublishedCount  int                    `json:"publishedCount,omitempty"`
	TrashedByWriter bool                   `json:"trashedByWriter,omitempty"`
	RejectionReason string                 `json:"rejectionReason,omitempty"`
	PublishedAt     *time.Time             `json:"publishedAt,omitempty"`
	StatusHistory   []historyEntryResponse `json:"statusHistory"`
}

// moderateResponse represents the outcome of a moderation action
type moderateResponse struct {
	Item             *itemResponse `json:"item,omitempty"`             // Updated entity, absent on delete
	Deleted          bool          `json:"deleted,omitempty"`          // Whether the entity was removed
	AuditEntryID     string        `json:"auditEntryId"`               // Ledger entry recording this action
	CoercedToPending bool          `json:"coercedToPending,omitempty"` // Writer publish landed in review instead
	Notified         int           `json:"notified"`                   // Number of notification events sent
}
