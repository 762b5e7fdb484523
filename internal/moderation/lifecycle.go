package moderation

import "github.com/davrian/toolmart/internal/domain"

// lifecycleEngine drives the draft/pending/published machine shared by blogs
// and tools. Blogs additionally coerce a writer's publish request into a
// submission; tools do not.
type lifecycleEngine struct {
	kind                domain.ContentKind
	coerceWriterPublish bool
}

func (e *lifecycleEngine) Apply(item *domain.ContentItem, req Request) (*Result, error) {
	switch req.Action {
	case domain.ActionDelete:
		return deleteResult(item, req, true), nil
	case domain.ActionTrash:
		return e.trash(item, req)
	case domain.ActionRestore:
		return e.restore(item, req)
	case domain.ActionRepost:
		return e.repost(item, req)
	case domain.ActionSubmit, domain.ActionWithdraw, domain.ActionPublish,
		domain.ActionReject, domain.ActionUnpublish:
		return e.statusTransition(item, req)
	}
	return nil, validationErrorf("action %q does not apply to %s", req.Action, e.kind)
}

func (e *lifecycleEngine) statusTransition(item *domain.ContentItem, req Request) (*Result, error) {
	if item.TrashedByWriter {
		return nil, validationErrorf("%s is trashed and must be restored first", e.kind)
	}

	res := &Result{Precondition: precondition(item)}
	action := req.Action

	var target domain.Status
	switch action {
	case domain.ActionSubmit:
		if item.Status != domain.StatusDraft && item.Status != domain.StatusRejected {
			return nil, validationErrorf("cannot submit a %s %s", item.Status, e.kind)
		}
		target = domain.StatusPendingApproval

	case domain.ActionWithdraw:
		if item.Status != domain.StatusPendingApproval {
			return nil, validationErrorf("cannot withdraw a %s %s", item.Status, e.kind)
		}
		target = domain.StatusDraft

	case domain.ActionPublish:
		if e.coerceWriterPublish && req.Actor.Role == domain.RoleWriter {
			// Writers cannot publish directly; the request becomes a
			// submission. This is a policy translation, not a rejection.
			target = domain.StatusPendingApproval
			res.CoercedToPending = true
		} else {
			target = domain.StatusPublished
		}

	case domain.ActionReject:
		if req.Reason == "" {
			return nil, validationErrorf("a reason is required to reject a %s", e.kind)
		}
		if item.Status != domain.StatusPendingApproval {
			return nil, validationErrorf("cannot reject a %s %s", item.Status, e.kind)
		}
		target = domain.StatusRejected

	case domain.ActionUnpublish:
		if item.Status != domain.StatusPublished {
			return nil, validationErrorf("cannot unpublish a %s %s", item.Status, e.kind)
		}
		target = domain.StatusUnpublished
	}

	// Requesting the status the item already has is a duplicate submission,
	// not a success.
	if target == item.Status {
		return nil, validationErrorf("%s is already %s", e.kind, target)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.Status = target

	switch {
	case target == domain.StatusPublished:
		up.PublishedAt = &at
		up.RejectionReason = ""
		res.PublishedDelta = 1
	case prior == domain.StatusPublished:
		res.PublishedDelta = -1
	}
	if target == domain.StatusRejected {
		up.RejectionReason = req.Reason
	}

	res.Updated = up
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		e.kind, up.ID, action, req.Actor, req.Reason,
		[]domain.FieldChange{statusChange(prior, target)},
		snapshotOf(up),
	)

	if target == domain.StatusPendingApproval {
		res.Intents = append(res.Intents, NotificationIntent{Kind: IntentSubmission, RecipientID: domain.RecipientStaff})
	}
	if prior == domain.StatusPendingApproval &&
		(target == domain.StatusPublished || target == domain.StatusRejected) {
		res.Intents = append(res.Intents, NotificationIntent{Kind: IntentOutcome, RecipientID: up.OwnerID})
	}

	return res, nil
}

func (e *lifecycleEngine) trash(item *domain.ContentItem, req Request) (*Result, error) {
	if item.TrashedByWriter {
		return nil, validationErrorf("%s is already trashed", e.kind)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.TrashedByWriter = true

	res := &Result{Precondition: precondition(item)}
	changes := []domain.FieldChange{flagChange("trashed_by_writer", false, true)}

	// A live item cannot stay visible while trashed; the unpublish is undone
	// on restore.
	if up.Status == domain.StatusPublished {
		up.Status = domain.StatusUnpublished
		res.PublishedDelta = -1
		changes = append(changes, statusChange(prior, up.Status))
	}

	res.Updated = up
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		e.kind, up.ID, domain.ActionTrash, req.Actor, req.Reason,
		changes, snapshotOf(up),
	)
	return res, nil
}

func (e *lifecycleEngine) restore(item *domain.ContentItem, req Request) (*Result, error) {
	if !item.TrashedByWriter {
		return nil, validationErrorf("%s is not trashed", e.kind)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.TrashedByWriter = false

	res := &Result{Precondition: precondition(item)}
	changes := []domain.FieldChange{flagChange("trashed_by_writer", true, false)}

	// Only an unpublish caused by trashing is auto-reversed. A rejected item
	// stays rejected; republishing it needs a fresh staff decision.
	if up.Status == domain.StatusUnpublished && up.WasEverPublished() {
		up.Status = domain.StatusPublished
		up.PublishedAt = &at
		res.PublishedDelta = 1
		changes = append(changes, statusChange(prior, up.Status))
	}

	res.Updated = up
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		e.kind, up.ID, domain.ActionRestore, req.Actor, req.Reason,
		changes, snapshotOf(up),
	)

	if req.Actor.ID == up.OwnerID {
		res.Intents = append(res.Intents, NotificationIntent{Kind: IntentRestored, RecipientID: domain.RecipientStaff})
	}
	return res, nil
}

func (e *lifecycleEngine) repost(item *domain.ContentItem, req Request) (*Result, error) {
	if !item.TrashedByWriter {
		return nil, validationErrorf("only trashed %ss can be reposted", e.kind)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.TrashedByWriter = false
	up.Status = domain.StatusPublished
	up.PublishedAt = &at
	up.RejectionReason = ""

	res := &Result{
		Precondition:   precondition(item),
		PublishedDelta: 1,
		Updated:        up,
	}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		e.kind, up.ID, domain.ActionRepost, req.Actor, req.Reason,
		[]domain.FieldChange{
			flagChange("trashed_by_writer", true, false),
			statusChange(prior, domain.StatusPublished),
		},
		snapshotOf(up),
	)
	return res, nil
}
