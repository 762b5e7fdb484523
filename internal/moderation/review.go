package moderation

import "github.com/davrian/toolmart/internal/domain"

// reviewEngine: pending_approval → {published | rejected}, plus the trash
// flag. Reviews have no draft state and no publish coercion; ratingActive
// mirrors "published and not trashed" so rating aggregates stay honest.
type reviewEngine struct{}

func (e *reviewEngine) Apply(item *domain.ContentItem, req Request) (*Result, error) {
	switch req.Action {
	case domain.ActionDelete:
		return deleteResult(item, req, false), nil
	case domain.ActionPublish, domain.ActionReject:
		return e.moderate(item, req)
	case domain.ActionTrash:
		return e.trash(item, req)
	case domain.ActionRestore:
		return e.restore(item, req)
	}
	return nil, validationErrorf("action %q does not apply to reviews", req.Action)
}

func (e *reviewEngine) moderate(item *domain.ContentItem, req Request) (*Result, error) {
	if item.TrashedByWriter {
		return nil, validationErrorf("review is trashed and must be restored first")
	}

	target := domain.StatusPublished
	if req.Action == domain.ActionReject {
		if req.Reason == "" {
			return nil, validationErrorf("a reason is required to reject a review")
		}
		target = domain.StatusRejected
	}
	if target == item.Status {
		return nil, validationErrorf("review is already %s", target)
	}
	if item.Status != domain.StatusPendingApproval {
		return nil, validationErrorf("cannot %s a %s review", req.Action, item.Status)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.Status = target
	up.RatingActive = target == domain.StatusPublished
	if target == domain.StatusPublished {
		up.PublishedAt = &at
		up.RejectionReason = ""
	} else {
		up.RejectionReason = req.Reason
	}

	res := &Result{Precondition: precondition(item), Updated: up}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		domain.KindReview, up.ID, req.Action, req.Actor, req.Reason,
		[]domain.FieldChange{
			statusChange(prior, target),
			flagChange("rating_active", item.RatingActive, up.RatingActive),
		},
		snapshotOf(up),
	)
	res.Intents = append(res.Intents, NotificationIntent{Kind: IntentOutcome, RecipientID: up.OwnerID})
	return res, nil
}

func (e *reviewEngine) trash(item *domain.ContentItem, req Request) (*Result, error) {
	if item.TrashedByWriter {
		return nil, validationErrorf("review is already trashed")
	}

	at := req.at()
	up := item.Clone()
	up.TrashedByWriter = true
	up.RatingActive = false

	res := &Result{Precondition: precondition(item), Updated: up}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		domain.KindReview, up.ID, domain.ActionTrash, req.Actor, req.Reason,
		[]domain.FieldChange{
			flagChange("trashed_by_writer", false, true),
			flagChange("rating_active", item.RatingActive, false),
		},
		snapshotOf(up),
	)
	return res, nil
}

func (e *reviewEngine) restore(item *domain.ContentItem, req Request) (*Result, error) {
	if !item.TrashedByWriter {
		return nil, validationErrorf("review is not trashed")
	}

	at := req.at()
	up := item.Clone()
	up.TrashedByWriter = false
	up.RatingActive = up.Status == domain.StatusPublished

	res := &Result{Precondition: precondition(item), Updated: up}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		domain.KindReview, up.ID, domain.ActionRestore, req.Actor, req.Reason,
		[]domain.FieldChange{
			flagChange("trashed_by_writer", true, false),
			flagChange("rating_active", item.RatingActive, up.RatingActive),
		},
		snapshotOf(up),
	)
	if req.Actor.ID == up.OwnerID {
		res.Intents = append(res.Intents, NotificationIntent{Kind: IntentRestored, RecipientID: domain.RecipientStaff})
	}
	return res, nil
}
