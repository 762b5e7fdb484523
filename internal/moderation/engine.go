package moderation

import (
	"fmt"
	"time"

	"github.com/davrian/toolmart/internal/domain"
)

// Request is one transition request against a single content item.
type Request struct {
	Actor  domain.Actor
	Action domain.Action
	Reason string
	// NewRole is only read by change_role on user accounts.
	NewRole domain.Role
	// Now lets tests pin the clock; the zero value means time.Now().UTC().
	Now time.Time
}

func (r Request) at() time.Time {
	if r.Now.IsZero() {
		return time.Now().UTC()
	}
	return r.Now
}

type IntentKind string

const (
	IntentSubmission IntentKind = "submission_awaiting_approval"
	IntentOutcome    IntentKind = "review_outcome"
	IntentRestored   IntentKind = "trash_restored"
)

// NotificationIntent names who should hear about the transition; the
// dispatcher turns intents into concrete events and applies the
// self-notification suppression rule.
type NotificationIntent struct {
	Kind        IntentKind
	RecipientID string
}

// Result is the pure output of a transition computation. Nothing has been
// persisted when it is returned; that is the facade's job.
type Result struct {
	// Updated is the mutated copy of the item. Nil when Deleted is set.
	Updated *domain.ContentItem
	// Deleted marks a hard delete: the document leaves the store entirely and
	// only the audit entry remains to describe it.
	Deleted bool

	HistoryEntry *domain.StatusHistoryEntry
	Audit        *domain.AuditLogEntry
	Intents      []NotificationIntent

	// PublishedDelta is the owner's published-count adjustment, computed
	// inside the transition so the counter moves with the entity write.
	PublishedDelta int

	// Precondition pins the pre-transition state for the conditional update.
	Precondition domain.TransitionPrecondition

	// CoercedToPending is set when a writer's publish request was downgraded
	// to a submission instead of being rejected.
	CoercedToPending bool
}

// Engine computes transitions for one content kind.
type Engine interface {
	Apply(item *domain.ContentItem, req Request) (*Result, error)
}

var engines = map[domain.ContentKind]Engine{
	domain.KindBlog:        &lifecycleEngine{kind: domain.KindBlog, coerceWriterPublish: true},
	domain.KindTool:        &lifecycleEngine{kind: domain.KindTool},
	domain.KindReview:      &reviewEngine{},
	domain.KindUserAccount: &accountEngine{},
}

func EngineFor(kind domain.ContentKind) (Engine, error) {
	eng, ok := engines[kind]
	if !ok {
		return nil, fmt.Errorf("no transition engine for kind %q", kind)
	}
	return eng, nil
}

func precondition(item *domain.ContentItem) domain.TransitionPrecondition {
	return domain.TransitionPrecondition{
		Status:          item.Status,
		TrashedByWriter: item.TrashedByWriter,
	}
}

func appendHistory(item *domain.ContentItem, actor domain.Actor, at time.Time, reason string) *domain.StatusHistoryEntry {
	entry := domain.StatusHistoryEntry{
		Status:    item.Status,
		ChangedBy: actor.Ref(),
		ChangedAt: at,
		Reason:    reason,
	}
	item.StatusHistory = append(item.StatusHistory, entry)
	item.UpdatedAt = at
	return &item.StatusHistory[len(item.StatusHistory)-1]
}

func statusChange(old, new domain.Status) domain.FieldChange {
	return domain.FieldChange{Field: "status", OldValue: string(old), NewValue: string(new)}
}

func flagChange(field string, old, new bool) domain.FieldChange {
	return domain.FieldChange{Field: field, OldValue: fmt.Sprintf("%t", old), NewValue: fmt.Sprintf("%t", new)}
}

func snapshotOf(item *domain.ContentItem) domain.AuditSnapshot {
	return domain.AuditSnapshot{
		Title:      item.Title,
		Category:   item.Category,
		Rating:     item.Rating,
		OwnerID:    item.OwnerID,
		LastStatus: item.Status,
	}
}

// deletionSnapshot additionally captures the full history, since the entity
// will no longer exist to query.
func deletionSnapshot(item *domain.ContentItem) domain.AuditSnapshot {
	snap := snapshotOf(item)
	snap.History = make([]domain.StatusHistoryEntry, len(item.StatusHistory))
	copy(snap.History, item.StatusHistory)
	return snap
}

func deleteResult(item *domain.ContentItem, req Request, countPublished bool) *Result {
	delta := 0
	if countPublished && item.Status == domain.StatusPublished && !item.TrashedByWriter {
		delta = -1
	}
	return &Result{
		Deleted: true,
		Audit: domain.NewAuditLogEntry(
			item.Kind, item.ID, domain.ActionDelete, req.Actor, req.Reason,
			[]domain.FieldChange{statusChange(item.Status, "")},
			deletionSnapshot(item),
		),
		PublishedDelta: delta,
		Precondition:   precondition(item),
	}
}
