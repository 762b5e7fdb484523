package audit

import "time"

// actorResponse identifies who performed a recorded action
type actorResponse struct {
	ID   string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"` // Actor identifier
	Name string `json:"name" example:"jane"`                               // Display name at action time
	Role string `json:"role" example:"manager"`                            // Role at action time
}

// fieldChangeResponse represents one recorded field mutation
type fieldChangeResponse struct {
	Field    string `json:"field" example:"role"`
	OldValue string `json:"oldValue" example:"user"`
	NewValue string `json:"newValue" example:"writer"`
}

// entryResponse represents one audit ledger entry
type entryResponse struct {
	ID          string                `json:"id"`
	Timestamp   time.Time             `json:"timestamp"`
	EntityKind  string                `json:"entityKind" example:"tool"`
	EntityID    string                `json:"entityId"`
	Action      string                `json:"action" example:"delete"`
	PerformedBy actorResponse         `json:"performedBy"`
	Changes     []fieldChangeResponse `json:"changes,omitempty"`
	Reason      string                `json:"reason,omitempty"`
	Description string                `json:"description" example:"Deleted tool \"Acme\""` // Human-readable summary
}

// trailResponse represents an ordered list of audit entries
type trailResponse struct {
	Entries []entryResponse `json:"entries"`
}
