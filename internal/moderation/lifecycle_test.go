package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/davrian/toolmart/internal/domain"
)

var testClock = time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

func newBlog(status domain.Status) *domain.ContentItem {
	return &domain.ContentItem{
		ID:      "blog-1",
		Kind:    domain.KindBlog,
		Status:  status,
		OwnerID: "writer-1",
		Title:   "Go Generics in Anger",
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: status, ChangedBy: domain.ActorRef{ID: "writer-1"}, ChangedAt: testClock.Add(-time.Hour)},
		},
		CreatedAt: testClock.Add(-time.Hour),
		UpdatedAt: testClock.Add(-time.Hour),
	}
}

func mustEngine(t *testing.T, kind domain.ContentKind) Engine {
	t.Helper()
	eng, err := EngineFor(kind)
	if err != nil {
		t.Fatalf("no engine for %s: %v", kind, err)
	}
	return eng
}

func TestWriterPublishCoercesToPending(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusDraft)

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionPublish,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !res.CoercedToPending {
		t.Fatal("expected the publish to be coerced to a submission")
	}
	if res.Updated.Status != domain.StatusPendingApproval {
		t.Fatalf("expected status %s, got %s", domain.StatusPendingApproval, res.Updated.Status)
	}
	if res.PublishedDelta != 0 {
		t.Fatalf("a coerced publish must not touch the published count, got delta %d", res.PublishedDelta)
	}
	if len(res.Intents) != 1 || res.Intents[0].Kind != IntentSubmission || res.Intents[0].RecipientID != domain.RecipientStaff {
		t.Fatalf("expected a single staff submission intent, got %+v", res.Intents)
	}
	// The audit entry records the status the item actually reached, not the
	// one the writer asked for.
	if len(res.Audit.Changes) != 1 || res.Audit.Changes[0].NewValue != string(domain.StatusPendingApproval) {
		t.Fatalf("expected the audit entry to record the coerced status, got %+v", res.Audit.Changes)
	}
	if res.Audit.Snapshot.LastStatus != domain.StatusPendingApproval {
		t.Fatalf("expected the snapshot at %s, got %s", domain.StatusPendingApproval, res.Audit.Snapshot.LastStatus)
	}
	// The source item must be untouched.
	if item.Status != domain.StatusDraft {
		t.Fatalf("input item was mutated to %s", item.Status)
	}
}

func TestManagerPublishGoesLive(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusPendingApproval)

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionPublish,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.CoercedToPending {
		t.Fatal("staff publish must not be coerced")
	}
	if res.Updated.Status != domain.StatusPublished {
		t.Fatalf("expected status %s, got %s", domain.StatusPublished, res.Updated.Status)
	}
	if res.PublishedDelta != 1 {
		t.Fatalf("expected published delta +1, got %d", res.PublishedDelta)
	}
	if res.Updated.PublishedAt == nil || !res.Updated.PublishedAt.Equal(testClock) {
		t.Fatalf("expected publishedAt pinned to the request clock, got %v", res.Updated.PublishedAt)
	}
	if len(res.Intents) != 1 || res.Intents[0].Kind != IntentOutcome || res.Intents[0].RecipientID != "writer-1" {
		t.Fatalf("expected an outcome intent for the owner, got %+v", res.Intents)
	}
}

func TestToolPublishIsNotCoercedForWriter(t *testing.T) {
	eng := mustEngine(t, domain.KindTool)
	item := newBlog(domain.StatusPendingApproval)
	item.Kind = domain.KindTool

	// The gate blocks writer publish on tools, but the engine must not coerce
	// even if asked directly.
	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionPublish,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.CoercedToPending {
		t.Fatal("tools must never coerce publish requests")
	}
	if res.Updated.Status != domain.StatusPublished {
		t.Fatalf("expected status %s, got %s", domain.StatusPublished, res.Updated.Status)
	}
}

func TestNoOpTransitionIsRejected(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusPublished)

	_, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionPublish,
		Now:    testClock,
	})

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected a validation error for a duplicate publish, got %v", err)
	}
}

func TestRejectRequiresReason(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusPendingApproval)

	_, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionReject,
		Now:    testClock,
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected a validation error without a reason, got %v", err)
	}

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionReject,
		Reason: "duplicate content",
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusRejected {
		t.Fatalf("expected status %s, got %s", domain.StatusRejected, res.Updated.Status)
	}
	if res.Updated.RejectionReason != "duplicate content" {
		t.Fatalf("expected the rejection reason to be stored, got %q", res.Updated.RejectionReason)
	}
	if res.HistoryEntry == nil || res.HistoryEntry.Reason != "duplicate content" {
		t.Fatalf("expected the reason on the history entry, got %+v", res.HistoryEntry)
	}
	if res.Audit.Reason != "duplicate content" {
		t.Fatalf("expected the reason on the audit entry, got %q", res.Audit.Reason)
	}
}

func TestResubmitClearsRejectionReason(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusRejected)
	item.RejectionReason = "duplicate content"

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionSubmit,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusPendingApproval {
		t.Fatalf("expected status %s, got %s", domain.StatusPendingApproval, res.Updated.Status)
	}

	// Publishing afterwards clears the stale reason.
	res2, err := eng.Apply(res.Updated, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionPublish,
		Now:    testClock.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res2.Updated.RejectionReason != "" {
		t.Fatalf("expected rejection reason cleared on publish, got %q", res2.Updated.RejectionReason)
	}
}

func TestTrashPublishedBlogRoundTrip(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusPublished)

	trashRes, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionTrash,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !trashRes.Updated.TrashedByWriter {
		t.Fatal("expected the trash flag to be set")
	}
	if trashRes.Updated.Status != domain.StatusUnpublished {
		t.Fatalf("a trashed live blog must be unpublished, got %s", trashRes.Updated.Status)
	}
	if trashRes.PublishedDelta != -1 {
		t.Fatalf("expected published delta -1 on trash, got %d", trashRes.PublishedDelta)
	}

	restoreRes, err := eng.Apply(trashRes.Updated, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionRestore,
		Now:    testClock.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restoreRes.Updated.TrashedByWriter {
		t.Fatal("expected the trash flag to be cleared")
	}
	if restoreRes.Updated.Status != domain.StatusPublished {
		t.Fatalf("restore must re-publish a previously live blog, got %s", restoreRes.Updated.Status)
	}
	if restoreRes.PublishedDelta != 1 {
		t.Fatalf("expected published delta +1 on restore, got %d", restoreRes.PublishedDelta)
	}
	// Net effect of the round trip on the counter is zero.
	if trashRes.PublishedDelta+restoreRes.PublishedDelta != 0 {
		t.Fatalf("trash/restore must cancel out, got %d", trashRes.PublishedDelta+restoreRes.PublishedDelta)
	}
	// Restore by the owner alerts the staff.
	if len(restoreRes.Intents) != 1 || restoreRes.Intents[0].Kind != IntentRestored || restoreRes.Intents[0].RecipientID != domain.RecipientStaff {
		t.Fatalf("expected a staff restored intent, got %+v", restoreRes.Intents)
	}
}

func TestRestoreOfNeverPublishedDraftKeepsStatus(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusDraft)
	item.TrashedByWriter = true

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionRestore,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusDraft {
		t.Fatalf("restoring a trashed draft must keep it a draft, got %s", res.Updated.Status)
	}
	if res.PublishedDelta != 0 {
		t.Fatalf("expected no counter movement, got %d", res.PublishedDelta)
	}
	// Staff restore produces no intent.
	if len(res.Intents) != 0 {
		t.Fatalf("staff restore must not notify, got %+v", res.Intents)
	}
}

func TestRestoreDoesNotRepublishRejected(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusRejected)
	item.TrashedByWriter = true
	item.StatusHistory = append(item.StatusHistory, domain.StatusHistoryEntry{
		Status: domain.StatusPublished, ChangedAt: testClock.Add(-30 * time.Minute),
	})

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionRestore,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Only an unpublished status is auto-reversed, a rejection stands.
	if res.Updated.Status != domain.StatusRejected {
		t.Fatalf("expected the rejection to stand, got %s", res.Updated.Status)
	}
}

func TestTrashedItemBlocksStatusTransitions(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusDraft)
	item.TrashedByWriter = true

	_, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionSubmit,
		Now:    testClock,
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected a validation error on a trashed item, got %v", err)
	}
}

func TestRepostRequiresTrashedState(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)

	_, err := eng.Apply(newBlog(domain.StatusPublished), Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionRepost,
		Now:    testClock,
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected a validation error reposting a live blog, got %v", err)
	}

	item := newBlog(domain.StatusUnpublished)
	item.TrashedByWriter = true
	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionRepost,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusPublished || res.Updated.TrashedByWriter {
		t.Fatalf("repost must force-publish and clear the flag, got %s trashed=%t", res.Updated.Status, res.Updated.TrashedByWriter)
	}
	if res.PublishedDelta != 1 {
		t.Fatalf("expected published delta +1, got %d", res.PublishedDelta)
	}
}

func TestDeleteCapturesSnapshotWithHistory(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusPublished)

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "adm-1", Role: domain.RoleAdmin},
		Action: domain.ActionDelete,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Deleted {
		t.Fatal("expected a deletion result")
	}
	if res.Updated != nil {
		t.Fatal("a deletion result must not carry an updated item")
	}
	if res.PublishedDelta != -1 {
		t.Fatalf("deleting a live blog must decrement the counter, got %d", res.PublishedDelta)
	}
	snap := res.Audit.Snapshot
	if snap.Title != "Go Generics in Anger" {
		t.Fatalf("expected the title in the snapshot, got %q", snap.Title)
	}
	if len(snap.History) != len(item.StatusHistory) {
		t.Fatalf("expected the full history in the deletion snapshot, got %d entries", len(snap.History))
	}
}

func TestHistoryGrowsByExactlyOneEntry(t *testing.T) {
	eng := mustEngine(t, domain.KindBlog)
	item := newBlog(domain.StatusDraft)
	before := len(item.StatusHistory)

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "writer-1", Role: domain.RoleWriter},
		Action: domain.ActionSubmit,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(res.Updated.StatusHistory); got != before+1 {
		t.Fatalf("expected history to grow by one, went from %d to %d", before, got)
	}
	last := res.Updated.StatusHistory[len(res.Updated.StatusHistory)-1]
	if last.Status != domain.StatusPendingApproval {
		t.Fatalf("expected the new entry to record the new status, got %s", last.Status)
	}
	if last.ChangedBy.ID != "writer-1" {
		t.Fatalf("expected the acting writer on the entry, got %q", last.ChangedBy.ID)
	}
}
