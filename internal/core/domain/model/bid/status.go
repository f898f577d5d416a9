package bid

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status is the state of a bid. Pending is the only non-terminal state.
type Status int

const (
	Unknown Status = iota
	Pending
	Accepted
	Rejected
	Expired
)

var ErrBidIsNotPending = errs.NewRuleViolationError(errs.KindConflict, "bid is no longer pending")

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "unknown",
		Pending:  "pending",
		Accepted: "accepted",
		Rejected: "rejected",
		Expired:  "expired",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid bid status", s))
	}
	return nil
}

func (s Status) IsTerminal() bool {
	return s == Accepted || s == Rejected || s == Expired
}

func (s Status) transition(to Status) (Status, error) {
	if s != Pending {
		return 0, fmt.Errorf("%w: %s -> %s", ErrBidIsNotPending, s, to)
	}
	return to, nil
}
