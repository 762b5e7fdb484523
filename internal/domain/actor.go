package domain

import "fmt"

type Role string

const (
	RoleUser    Role = "user"
	RoleWriter  Role = "writer"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// IsStaff reports whether the role carries the staff capability alias used by
// review and tool moderation.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleAdmin
}

func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleUser, RoleWriter, RoleManager, RoleAdmin:
		return Role(raw), nil
	}
	return "", fmt.Errorf("unknown role %q", raw)
}

// Actor is the identity performing a moderation action. It is supplied by the
// external authenticator; this service never verifies credentials itself.
type Actor struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Role        Role   `json:"role"`
}

// ActorRef is the denormalized actor reference stored on history and audit
// entries. Name and role are captured at write time so the record stays
// readable after the account itself is deleted.
type ActorRef struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Role Role   `bson:"role" json:"role"`
}

func (a Actor) Ref() ActorRef {
	return ActorRef{ID: a.ID, Name: a.DisplayName, Role: a.Role}
}
