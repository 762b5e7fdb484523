package moderation

import (
	"errors"
	"testing"
	"time"

	"github.com/davrian/toolmart/internal/domain"
)

func newReview(status domain.Status) *domain.ContentItem {
	return &domain.ContentItem{
		ID:           "rev-1",
		Kind:         domain.KindReview,
		Status:       status,
		OwnerID:      "user-1",
		Title:        "Saved me a weekend",
		Rating:       5,
		RatingActive: status == domain.StatusPublished,
		StatusHistory: []domain.StatusHistoryEntry{
			{Status: status, ChangedBy: domain.ActorRef{ID: "user-1"}, ChangedAt: testClock.Add(-time.Hour)},
		},
	}
}

func TestReviewPublishActivatesRating(t *testing.T) {
	eng := mustEngine(t, domain.KindReview)
	item := newReview(domain.StatusPendingApproval)

	res, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionPublish,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusPublished {
		t.Fatalf("expected status %s, got %s", domain.StatusPublished, res.Updated.Status)
	}
	if !res.Updated.RatingActive {
		t.Fatal("a published review's rating must count")
	}
	if res.PublishedDelta != 0 {
		t.Fatalf("reviews never move the owner's published count, got %d", res.PublishedDelta)
	}
	if len(res.Intents) != 1 || res.Intents[0].Kind != IntentOutcome || res.Intents[0].RecipientID != "user-1" {
		t.Fatalf("expected an outcome intent for the review author, got %+v", res.Intents)
	}
}

func TestReviewRejectNeedsReasonAndDeactivatesRating(t *testing.T) {
	eng := mustEngine(t, domain.KindReview)

	_, err := eng.Apply(newReview(domain.StatusPendingApproval), Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionReject,
		Now:    testClock,
	})
	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected a validation error without a reason, got %v", err)
	}

	res, err := eng.Apply(newReview(domain.StatusPendingApproval), Request{
		Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
		Action: domain.ActionReject,
		Reason: "profanity",
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Updated.Status != domain.StatusRejected {
		t.Fatalf("expected status %s, got %s", domain.StatusRejected, res.Updated.Status)
	}
	if res.Updated.RatingActive {
		t.Fatal("a rejected review's rating must not count")
	}
}

func TestReviewHasNoDraftActions(t *testing.T) {
	eng := mustEngine(t, domain.KindReview)

	for _, action := range []domain.Action{domain.ActionSubmit, domain.ActionWithdraw, domain.ActionUnpublish, domain.ActionRepost} {
		_, err := eng.Apply(newReview(domain.StatusPendingApproval), Request{
			Actor:  domain.Actor{ID: "mgr-1", Role: domain.RoleManager},
			Action: action,
			Now:    testClock,
		})
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatalf("expected %q to be invalid for reviews, got %v", action, err)
		}
	}
}

func TestReviewTrashRestoreTogglesRating(t *testing.T) {
	eng := mustEngine(t, domain.KindReview)
	item := newReview(domain.StatusPublished)

	trashRes, err := eng.Apply(item, Request{
		Actor:  domain.Actor{ID: "user-1", Role: domain.RoleUser},
		Action: domain.ActionTrash,
		Now:    testClock,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trashRes.Updated.RatingActive {
		t.Fatal("a trashed review's rating must not count")
	}
	// Reviews keep their status when trashed; only the flag and rating move.
	if trashRes.Updated.Status != domain.StatusPublished {
		t.Fatalf("expected status unchanged, got %s", trashRes.Updated.Status)
	}

	restoreRes, err := eng.Apply(trashRes.Updated, Request{
		Actor:  domain.Actor{ID: "user-1", Role: domain.RoleUser},
		Action: domain.ActionRestore,
		Now:    testClock.Add(time.Minute),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !restoreRes.Updated.RatingActive {
		t.Fatal("restoring a published review must reactivate its rating")
	}
	if len(restoreRes.Intents) != 1 || restoreRes.Intents[0].RecipientID != domain.RecipientStaff {
		t.Fatalf("owner restore must alert the staff, got %+v", restoreRes.Intents)
	}
}

func TestReviewDeleteNeverMovesCounter(t *testing.T) {
	eng := mustEngine(t, domain.KindReview)
	res, err := eng.Apply(newReview(domain.StatusPublished), Request{
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
	if res.PublishedDelta != 0 {
		t.Fatalf("review deletion must not touch the published count, got %d", res.PublishedDelta)
	}
}
