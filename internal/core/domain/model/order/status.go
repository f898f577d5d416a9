package order

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Status represents the current state of an order in its lifecycle.
type Status int

const (
	// Unknown is the zero value and is never persisted.
	Unknown Status = iota

	// Pending orders await payment.
	Pending

	// Paid orders can be claimed by an agent and picked up.
	Paid

	// Shipped orders left the seller after a verified pickup code.
	Shipped

	// Delivered is terminal.
	Delivered

	// Cancelled is terminal.
	Cancelled
)

// ErrInvalidTransition wraps every refused status change.
var ErrInvalidTransition = errs.NewRuleViolationError(errs.KindNotReady, "order status does not allow this transition")

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Paid:      "paid",
		Shipped:   "shipped",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ParseStatus maps the lowercase name back to a Status.
func ParseStatus(name string) (Status, error) {
	for s, str := range getStatusStrings() {
		if s != Unknown && str == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", name))
}

func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// IsTerminal reports whether no further mutation is permitted.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Rank orders statuses along the happy path; Cancelled ranks above every non-terminal state.
func (s Status) Rank() int {
	switch s {
	case Pending:
		return 1
	case Paid:
		return 2
	case Shipped:
		return 3
	case Delivered, Cancelled:
		return 4
	default:
		return 0
	}
}

func (s Status) Pay() (Status, error) {
	return s.advance(Pending, Paid)
}

func (s Status) Ship() (Status, error) {
	return s.advance(Paid, Shipped)
}

func (s Status) Deliver() (Status, error) {
	return s.advance(Shipped, Delivered)
}

// Cancel is allowed until the goods leave the seller.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Paid {
		return 0, fmt.Errorf("%w: %s is not a valid status to cancel", ErrInvalidTransition, s)
	}
	return Cancelled, nil
}

func (s Status) advance(from, to Status) (Status, error) {
	if s != from {
		return 0, fmt.Errorf("%w: %s is not a valid status to move to %s", ErrInvalidTransition, s, to)
	}
	return to, nil
}
