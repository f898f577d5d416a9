// Package identity models the authenticated caller: one identity record tagged with
// the role it acts in. Code that needs role-specific behaviour switches on Role.
package identity

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

	ErrUnauthenticated = errs.NewRuleViolationError(errs.KindUnauthorized, "authentication required")
	ErrRoleNotAllowed  = errs.NewRuleViolationError(errs.KindForbidden, "role is not allowed to perform this action")
)

// Actor is the caller resolved by the identity provider.
type Actor struct {
	id    kernel.UUID
	role  Role
	guard guard.ConstructorGuard
}

func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (a Actor) Validate() error {
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

// Require fails with ErrRoleNotAllowed unless the actor holds one of roles.
func (a Actor) Require(roles ...Role) error {
	if err := a.Validate(); err != nil {
		return ErrUnauthenticated
	}
	for _, r := range roles {
		if a.role == r {
			return nil
		}
	}
	return ErrRoleNotAllowed
}
