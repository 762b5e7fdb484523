package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// FieldChange records one field mutation inside an audit entry.
type FieldChange struct {
	Field    string `bson:"field" json:"field"`
	OldValue string `bson:"old_value" json:"oldValue"`
	NewValue string `bson:"new_value" json:"newValue"`
}

// AuditSnapshot carries enough denormalized data to render a human-readable
// description after the entity or its related records are gone. History is
// only captured on hard deletes, where the entity will no longer exist to
// query.
type AuditSnapshot struct {
	Title      string               `bson:"title,omitempty" json:"title,omitempty"`
	Category   string               `bson:"category,omitempty" json:"category,omitempty"`
	Rating     int                  `bson:"rating,omitempty" json:"rating,omitempty"`
	OwnerID    string               `bson:"owner_id,omitempty" json:"ownerId,omitempty"`
	LastStatus Status               `bson:"last_status,omitempty" json:"lastStatus,omitempty"`
	History    []StatusHistoryEntry `bson:"history,omitempty" json:"history,omitempty"`
}

// AuditLogEntry is the immutable record of one mutating action. Entries are
// created once by the transition engine and never edited or deleted here;
// retention is an external policy.
type AuditLogEntry struct {
	ID          string        `bson:"_id" json:"id"`
	Timestamp   time.Time     `bson:"timestamp" json:"timestamp"`
	EntityKind  ContentKind   `bson:"entity_kind" json:"entityKind"`
	EntityID    string        `bson:"entity_id" json:"entityId"`
	Action      Action        `bson:"action" json:"action"`
	PerformedBy ActorRef      `bson:"performed_by" json:"performedBy"`
	Changes     []FieldChange `bson:"changes,omitempty" json:"changes,omitempty"`
	Reason      string        `bson:"reason,omitempty" json:"reason,omitempty"`
	Snapshot    AuditSnapshot `bson:"snapshot" json:"snapshot"`
}

func NewAuditLogEntry(kind ContentKind, entityID string, action Action, actor Actor, reason string, changes []FieldChange, snapshot AuditSnapshot) *AuditLogEntry {
	return &AuditLogEntry{
		ID:          uuid.NewString(),
		Timestamp:   time.Now().UTC(),
		EntityKind:  kind,
		EntityID:    entityID,
		Action:      action,
		PerformedBy: actor.Ref(),
		Changes:     changes,
		Reason:      reason,
		Snapshot:    snapshot,
	}
}

type AuditRepository interface {
	Append(ctx context.Context, entry *AuditLogEntry) (string, error)
	GetByEntity(ctx context.Context, kind ContentKind, entityID string, limit int) ([]AuditLogEntry, error)
	GetByActor(ctx context.Context, actorID string, since time.Time) ([]AuditLogEntry, error)
	EnsureIndexes(ctx context.Context) error
}
