package moderation

import "github.com/davrian/toolmart/internal/domain"

// GateRequest carries everything the permission gate looks at. TargetID and
// TargetRole are only meaningful for user accounts, where the self-action and
// hierarchy guards apply.
type GateRequest struct {
	Actor         domain.Actor
	Kind          domain.ContentKind
	CurrentStatus domain.Status
	Action        domain.Action
	IsOwner       bool
	TargetID      string
	TargetRole    domain.Role
}

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// writerOwnedBlogActions is what a writer may do to their own blog. Publish is
// in the set on purpose: the transition engine downgrades it to a submission
// rather than rejecting it.
var writerOwnedBlogActions = map[domain.Action]bool{
	domain.ActionSubmit:   true,
	domain.ActionWithdraw: true,
	domain.ActionPublish:  true,
	domain.ActionTrash:    true,
	domain.ActionRestore:  true,
}

// Tools get no publish coercion: a writer-owner may only shepherd the item
// through submission and trash.
var writerOwnedToolActions = map[domain.Action]bool{
	domain.ActionSubmit:   true,
	domain.ActionWithdraw: true,
	domain.ActionTrash:    true,
	domain.ActionRestore:  true,
}

// Authorize decides whether the actor may perform the action. It is a pure
// function over a fixed per-kind table; denials carry a machine-checkable
// reason code and are never expressed as errors.
func Authorize(req GateRequest) Decision {
	if req.Kind == domain.KindUserAccount {
		return authorizeAccount(req)
	}

	switch req.Kind {
	case domain.KindBlog:
		return authorizeOwnable(req, writerOwnedBlogActions)
	case domain.KindTool:
		return authorizeOwnable(req, writerOwnedToolActions)
	case domain.KindReview:
		return authorizeReview(req)
	}

	return deny(DenyInsufficientRole)
}

func authorizeAccount(req GateRequest) Decision {
	// Checked before the role table: nobody moderates their own account, the
	// admin included.
	if req.TargetID != "" && req.TargetID == req.Actor.ID {
		return deny(DenySelfAction)
	}

	switch req.Actor.Role {
	case domain.RoleAdmin:
		return allow()
	case domain.RoleManager:
		if req.TargetRole == domain.RoleManager || req.TargetRole == domain.RoleAdmin {
			return deny(DenyHierarchy)
		}
		return allow()
	default:
		return deny(DenyInsufficientRole)
	}
}

func authorizeOwnable(req GateRequest, writerOwned map[domain.Action]bool) Decision {
	switch req.Actor.Role {
	case domain.RoleAdmin, domain.RoleManager:
		return allow()
	case domain.RoleWriter:
		if !req.IsOwner {
			return deny(DenyNotOwner)
		}
		if writerOwned[req.Action] {
			return allow()
		}
		return deny(DenyInsufficientRole)
	default:
		return deny(DenyInsufficientRole)
	}
}

func authorizeReview(req GateRequest) Decision {
	if req.Actor.Role.IsStaff() {
		return allow()
	}

	// Reviewers of any role may trash and restore their own review; everything
	// else on a review is staff work.
	if req.Action == domain.ActionTrash || req.Action == domain.ActionRestore {
		if req.IsOwner {
			return allow()
		}
		return deny(DenyNotOwner)
	}

	return deny(DenyInsufficientRole)
}
