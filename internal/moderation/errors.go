package moderation

import (
	"fmt"

	"github.com/davrian/toolmart/internal/domain"
)

// DenyReason is the machine-checkable code carried by authorization denials.
type DenyReason string

const (
	DenyInsufficientRole DenyReason = "insufficient_role"
	DenyNotOwner         DenyReason = "not_owner"
	DenySelfAction       DenyReason = "self_action_forbidden"
	DenyHierarchy        DenyReason = "hierarchy_violation"
)

// AuthorizationError reports that the permission gate refused the action.
// Handlers map it 1:1 to a user-facing rejection.
type AuthorizationError struct {
	Reason DenyReason
	Kind   domain.ContentKind
	Action domain.Action
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("not authorized to %s %s: %s", e.Action, e.Kind, e.Reason)
}

// ValidationError reports an invalid transition request: a no-op transition,
// an action the current status does not admit, or a missing required reason.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a failed store write. When it is returned, nothing
// after the persist step was attempted.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
