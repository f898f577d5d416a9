package services

import (
	"fmt"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

const (
	DefaultSearchRadiusMeters = 50_000.0
	MaxSearchRadiusMeters     = 500_000.0
)

// AgentMatcher pairs agents with orders.
type AgentMatcher struct {
	defaultRadius float64
	maxRadius     float64
}

// NewAgentMatcher falls back to DefaultSearchRadiusMeters for a non-positive default radius.
func NewAgentMatcher(defaultRadius, maxRadius float64) AgentMatcher {
	if defaultRadius <= 0 {
		defaultRadius = DefaultSearchRadiusMeters
	}
	if maxRadius < defaultRadius {
		maxRadius = defaultRadius
	}
	return AgentMatcher{defaultRadius: defaultRadius, maxRadius: maxRadius}
}

// SearchRadius resolves a requested radius in metres; zero selects the default.
func (m AgentMatcher) SearchRadius(requested float64) (float64, error) {
	switch {
	case requested == 0:
		return m.defaultRadius, nil
	case requested < 0 || requested > m.maxRadius:
		return 0, errs.NewValueIsOutOfRangeError("radius", requested, 0, m.maxRadius)
	default:
		return requested, nil
	}
}

// Claim binds a to o. Both aggregates are left unchanged on failure.
//
// It returns the order's current pickup code (nil only if the order carries none).
func (m AgentMatcher) Claim(a *agent.Agent, o *order.Order) (*order.PickupCode, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}

	if err := a.Occupy(); err != nil {
		return nil, err
	}
	if err := o.AssignAgent(a.ID()); err != nil {
		a.Release()
		return nil, fmt.Errorf("claim order %s: %w", o.ID(), err)
	}

	return o.PickupCode(), nil
}
