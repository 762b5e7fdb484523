package moderation

import (
	"context"
	"fmt"
	"time"

	"github.com/davrian/toolmart/internal/domain"
)

// Ledger is the audit write/read surface used by the facade and the audit
// handlers. Appends are durable; reads can reconstruct a human-readable line
// even after the entity behind an entry is gone.
type Ledger struct {
	audit   domain.AuditRepository
	content domain.ContentRepository
}

func NewLedger(audit domain.AuditRepository, content domain.ContentRepository) *Ledger {
	return &Ledger{audit: audit, content: content}
}

func (l *Ledger) Append(ctx context.Context, entry *domain.AuditLogEntry) (string, error) {
	return l.audit.Append(ctx, entry)
}

func (l *Ledger) EntityTrail(ctx context.Context, kind domain.ContentKind, entityID string, limit int) ([]domain.AuditLogEntry, error) {
	return l.audit.GetByEntity(ctx, kind, entityID, limit)
}

func (l *Ledger) ActorTrail(ctx context.Context, actorID string, since time.Time) ([]domain.AuditLogEntry, error) {
	return l.audit.GetByActor(ctx, actorID, since)
}

var describeVerbs = map[domain.Action]string{
	domain.ActionSubmit:    "Submitted",
	domain.ActionWithdraw:  "Withdrew",
	domain.ActionPublish:   "Published",
	domain.ActionReject:    "Rejected",
	domain.ActionUnpublish: "Unpublished",
	domain.ActionTrash:     "Trashed",
	domain.ActionRestore:   "Restored",
	domain.ActionRepost:    "Reposted",
	domain.ActionDelete:    "Deleted",
	domain.ActionBlock:     "Blocked",
	domain.ActionUnblock:   "Unblocked",
}

func kindNoun(kind domain.ContentKind) string {
	switch kind {
	case domain.KindBlog:
		return "blog"
	case domain.KindReview:
		return "review"
	case domain.KindTool:
		return "tool"
	case domain.KindUserAccount:
		return "account"
	}
	return string(kind)
}

// Describe renders one audit entry as human text. It prefers the snapshot
// captured at write time; only when that is absent does it attempt a live
// lookup, and a missing entity degrades to "Unknown" rather than an error.
func (l *Ledger) Describe(ctx context.Context, entry domain.AuditLogEntry) string {
	title := entry.Snapshot.Title
	if title == "" {
		title = l.lookupTitle(ctx, entry.EntityKind, entry.EntityID)
	}

	noun := kindNoun(entry.EntityKind)

	var text string
	if entry.Action == domain.ActionChangeRole {
		text = fmt.Sprintf("Changed role of %s %q", noun, title)
	} else if verb, ok := describeVerbs[entry.Action]; ok {
		text = fmt.Sprintf("%s %s %q", verb, noun, title)
	} else {
		text = fmt.Sprintf("%s on %s %q", entry.Action, noun, title)
	}

	if entry.Reason != "" {
		text = fmt.Sprintf("%s: %s", text, entry.Reason)
	}
	return text
}

func (l *Ledger) lookupTitle(ctx context.Context, kind domain.ContentKind, entityID string) string {
	if l.content == nil {
		return "Unknown"
	}
	item, err := l.content.GetByID(ctx, kind, entityID)
	if err != nil || item == nil {
		// The entity may have been erased since the entry was written; that
		// is exactly what snapshots exist for.
		return "Unknown"
	}
	return item.Title
}
