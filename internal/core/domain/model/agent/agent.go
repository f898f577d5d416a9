// Package agent models a delivery agent (lorry) and its exclusive-claim flag.
package agent

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

var (
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent or RestoreAgent")
	ErrAgentUnavailable      = errs.NewRuleViolationError(errs.KindUnavailable, "agent is not available")
	ErrLocationNotSet        = errs.NewRuleViolationError(errs.KindInvalid, "agent location is not set")
)

// Agent is free to claim an order while isAvailable holds. Claiming clears the
// flag and delivery confirmation (or a manual reset) sets it again.
type Agent struct {
	id          kernel.UUID
	location    *kernel.Location
	isAvailable bool
	version     int64
	guard       guard.ConstructorGuard
}

// NewAgent registers an available agent, optionally at a known location.
func NewAgent(id kernel.UUID, location *kernel.Location) (*Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	a := &Agent{id: id, isAvailable: true, guard: guard.NewConstructorGuard()}
	if location != nil {
		if err := a.UpdateLocation(*location); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// RestoreAgent rebuilds a stored agent, keeping its availability flag and version.
func RestoreAgent(id kernel.UUID, location *kernel.Location, isAvailable bool, version int64) (*Agent, error) {
	a, err := NewAgent(id, location)
	if err != nil {
		return nil, err
	}
	a.isAvailable = isAvailable
	a.version = version
	return a, nil
}

func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

// Location returns the last reported position, or nil.
func (a *Agent) Location() *kernel.Location {
	return a.location
}

func (a *Agent) IsAvailable() bool {
	return a.isAvailable
}

func (a *Agent) Version() int64 {
	return a.version
}

// AdvanceVersion is called by repositories after a successful conditional write.
func (a *Agent) AdvanceVersion() {
	a.version++
}

// RequireLocation returns the current location or ErrLocationNotSet.
func (a *Agent) RequireLocation() (kernel.Location, error) {
	if a.location == nil {
		return kernel.Location{}, ErrLocationNotSet
	}
	return *a.location, nil
}

// Occupy binds the agent to an order.
func (a *Agent) Occupy() error {
	if !a.isAvailable {
		return ErrAgentUnavailable
	}
	a.isAvailable = false
	return nil
}

// Release frees the agent unconditionally.
func (a *Agent) Release() {
	a.isAvailable = true
}

func (a *Agent) UpdateLocation(location kernel.Location) error {
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = &location
	return nil
}
