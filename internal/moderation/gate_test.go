package moderation

import (
	"fmt"
	"testing"

	"github.com/davrian/toolmart/internal/domain"
)

var gateRoles = []domain.Role{domain.RoleUser, domain.RoleWriter, domain.RoleManager, domain.RoleAdmin}

// lifecycleActions is every action the gate answers for on owned content.
var lifecycleActions = []domain.Action{
	domain.ActionSubmit,
	domain.ActionWithdraw,
	domain.ActionPublish,
	domain.ActionReject,
	domain.ActionUnpublish,
	domain.ActionRepost,
	domain.ActionTrash,
	domain.ActionRestore,
	domain.ActionDelete,
}

var accountActions = []domain.Action{
	domain.ActionBlock,
	domain.ActionUnblock,
	domain.ActionChangeRole,
	domain.ActionDelete,
}

func checkDecision(t *testing.T, got Decision, wantAllowed bool, wantReason DenyReason) {
	t.Helper()
	if got.Allowed != wantAllowed {
		t.Fatalf("expected allowed=%t, got %t (reason %q)", wantAllowed, got.Allowed, got.Reason)
	}
	if !wantAllowed && got.Reason != wantReason {
		t.Fatalf("expected reason %q, got %q", wantReason, got.Reason)
	}
}

// TestAuthorizeOwnableTable enumerates every (role, action, ownership)
// combination for blogs and tools against the permission table. Publish is in
// the writer-owner set for blogs only; the transition engine downgrades it to
// a submission there, while tools deny it outright.
func TestAuthorizeOwnableTable(t *testing.T) {
	writerOwnAllowed := map[domain.ContentKind]map[domain.Action]bool{
		domain.KindBlog: {
			domain.ActionSubmit:   true,
			domain.ActionWithdraw: true,
			domain.ActionPublish:  true,
			domain.ActionTrash:    true,
			domain.ActionRestore:  true,
		},
		domain.KindTool: {
			domain.ActionSubmit:   true,
			domain.ActionWithdraw: true,
			domain.ActionTrash:    true,
			domain.ActionRestore:  true,
		},
	}

	for _, kind := range []domain.ContentKind{domain.KindBlog, domain.KindTool} {
		for _, role := range gateRoles {
			for _, action := range lifecycleActions {
				for _, isOwner := range []bool{false, true} {
					name := fmt.Sprintf("%s/%s/%s/owner=%t", kind, role, action, isOwner)
					t.Run(name, func(t *testing.T) {
						var wantAllowed bool
						var wantReason DenyReason
						switch role {
						case domain.RoleManager, domain.RoleAdmin:
							wantAllowed = true
						case domain.RoleWriter:
							switch {
							case !isOwner:
								wantReason = DenyNotOwner
							case writerOwnAllowed[kind][action]:
								wantAllowed = true
							default:
								wantReason = DenyInsufficientRole
							}
						default:
							wantReason = DenyInsufficientRole
						}

						got := Authorize(GateRequest{
							Actor:   domain.Actor{ID: "actor-1", Role: role},
							Kind:    kind,
							Action:  action,
							IsOwner: isOwner,
						})
						checkDecision(t, got, wantAllowed, wantReason)
					})
				}
			}
		}
	}
}

// TestAuthorizeReviewTable enumerates the review column of the permission
// table: staff do anything, the owner may trash and restore, everything else
// is denied.
func TestAuthorizeReviewTable(t *testing.T) {
	for _, role := range gateRoles {
		for _, action := range lifecycleActions {
			for _, isOwner := range []bool{false, true} {
				name := fmt.Sprintf("%s/%s/owner=%t", role, action, isOwner)
				t.Run(name, func(t *testing.T) {
					var wantAllowed bool
					var wantReason DenyReason
					switch {
					case role.IsStaff():
						wantAllowed = true
					case action == domain.ActionTrash || action == domain.ActionRestore:
						if isOwner {
							wantAllowed = true
						} else {
							wantReason = DenyNotOwner
						}
					default:
						wantReason = DenyInsufficientRole
					}

					got := Authorize(GateRequest{
						Actor:   domain.Actor{ID: "actor-1", Role: role},
						Kind:    domain.KindReview,
						Action:  action,
						IsOwner: isOwner,
					})
					checkDecision(t, got, wantAllowed, wantReason)
				})
			}
		}
	}
}

// TestAuthorizeAccountTable enumerates (actor role, target role, self) for
// every account action. The self guard is checked first, so it wins even for
// roles that could never moderate anyone.
func TestAuthorizeAccountTable(t *testing.T) {
	for _, action := range accountActions {
		for _, actorRole := range gateRoles {
			for _, targetRole := range gateRoles {
				for _, self := range []bool{false, true} {
					name := fmt.Sprintf("%s/%s on %s/self=%t", action, actorRole, targetRole, self)
					t.Run(name, func(t *testing.T) {
						var wantAllowed bool
						var wantReason DenyReason
						switch {
						case self:
							wantReason = DenySelfAction
						case actorRole == domain.RoleAdmin:
							wantAllowed = true
						case actorRole == domain.RoleManager:
							if targetRole == domain.RoleManager || targetRole == domain.RoleAdmin {
								wantReason = DenyHierarchy
							} else {
								wantAllowed = true
							}
						default:
							wantReason = DenyInsufficientRole
						}

						targetID := "target-1"
						if self {
							targetID = "actor-1"
						}
						got := Authorize(GateRequest{
							Actor:      domain.Actor{ID: "actor-1", Role: actorRole},
							Kind:       domain.KindUserAccount,
							Action:     action,
							TargetID:   targetID,
							TargetRole: targetRole,
						})
						checkDecision(t, got, wantAllowed, wantReason)
					})
				}
			}
		}
	}
}
