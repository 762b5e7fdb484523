package moderation

import "github.com/davrian/toolmart/internal/domain"

// accountEngine: active ⇄ blocked plus role changes. The self-action and
// hierarchy guards live in the gate; by the time Apply runs the actor is
// allowed to touch this account.
type accountEngine struct{}

func (e *accountEngine) Apply(item *domain.ContentItem, req Request) (*Result, error) {
	switch req.Action {
	case domain.ActionDelete:
		return deleteResult(item, req, false), nil
	case domain.ActionBlock:
		return e.setBlocked(item, req, true)
	case domain.ActionUnblock:
		return e.setBlocked(item, req, false)
	case domain.ActionChangeRole:
		return e.changeRole(item, req)
	}
	return nil, validationErrorf("action %q does not apply to user accounts", req.Action)
}

func (e *accountEngine) setBlocked(item *domain.ContentItem, req Request, blocked bool) (*Result, error) {
	target := domain.StatusActive
	if blocked {
		target = domain.StatusBlocked
	}
	if target == item.Status {
		return nil, validationErrorf("account is already %s", target)
	}

	at := req.at()
	up := item.Clone()
	prior := up.Status
	up.Status = target
	up.Blocked = blocked

	res := &Result{Precondition: precondition(item), Updated: up}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		domain.KindUserAccount, up.ID, req.Action, req.Actor, req.Reason,
		[]domain.FieldChange{
			statusChange(prior, target),
			flagChange("blocked", item.Blocked, blocked),
		},
		snapshotOf(up),
	)
	return res, nil
}

func (e *accountEngine) changeRole(item *domain.ContentItem, req Request) (*Result, error) {
	if req.NewRole == "" {
		return nil, validationErrorf("a new role is required")
	}
	if _, err := domain.ParseRole(string(req.NewRole)); err != nil {
		return nil, validationErrorf("invalid role %q", req.NewRole)
	}
	if req.NewRole == item.Role {
		return nil, validationErrorf("account already has role %s", item.Role)
	}

	at := req.at()
	up := item.Clone()
	oldRole := up.Role
	up.Role = req.NewRole

	res := &Result{Precondition: precondition(item), Updated: up}
	res.HistoryEntry = appendHistory(up, req.Actor, at, req.Reason)
	res.Audit = domain.NewAuditLogEntry(
		domain.KindUserAccount, up.ID, domain.ActionChangeRole, req.Actor, req.Reason,
		[]domain.FieldChange{
			{Field: "role", OldValue: string(oldRole), NewValue: string(req.NewRole)},
		},
		snapshotOf(up),
	)
	return res, nil
}
