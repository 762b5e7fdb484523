package utils

import (
	"errors"
	"net/http"

	"github.com/davrian/toolmart/internal/domain"
)

const (
	ActorIDHeader   = "X-Actor-Id"
	ActorNameHeader = "X-Actor-Name"
	ActorRoleHeader = "X-Actor-Role"
)

// ActorFromHeaders builds the acting identity from the gateway-injected
// headers. Identity verification happens upstream; here the headers are
// trusted but must be complete and well-formed.
func ActorFromHeaders(r *http.Request) (domain.Actor, error) {
	id := r.Header.Get(ActorIDHeader)
	if id == "" {
		return domain.Actor{}, errors.New("missing " + ActorIDHeader + " header")
	}

	role, err := domain.ParseRole(r.Header.Get(ActorRoleHeader))
	if err != nil {
		return domain.Actor{}, err
	}

	return domain.Actor{
		ID:          id,
		DisplayName: r.Header.Get(ActorNameHeader),
		Role:        role,
	}, nil
}
