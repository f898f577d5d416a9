package identity

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Role tags which marketplace participant an actor is.
type Role int

const (
	Unknown Role = iota
	Buyer
	Seller
	Agent
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		Unknown: "unknown",
		Buyer:   "buyer",
		Seller:  "seller",
		Agent:   "agent",
	}
}

func (r Role) String() string {
	if s, ok := getRoleStrings()[r]; ok {
		return s
	}
	return "unknown"
}

func (r Role) Validate() error {
	if r == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	if _, ok := getRoleStrings()[r]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// ParseRole accepts the textual role carried in access tokens. "lorry" is an alias for Agent.
func ParseRole(s string) (Role, error) {
	switch s {
	case "buyer":
		return Buyer, nil
	case "seller":
		return Seller, nil
	case "agent", "lorry":
		return Agent, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
	}
}
