package order

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"
)

// PickupCodeLength is the number of digits in a pickup code.
const PickupCodeLength = 6

var ErrPickupCodeIsNotConstructed = errors.New("PickupCode must be created via NewPickupCode")

// PickupCode is valid in [issued, ExpiresAt).
type PickupCode struct {
	value     string
	expiresAt time.Time
	guard     guard.ConstructorGuard
}

// NewPickupCode wraps a six digit code that the seller presents at pickup.
//
// Parameters:
//   - value: exactly PickupCodeLength ASCII digits, leading zeros kept
//   - expiresAt: first instant at which the code no longer matches
//
// Returns ValueIsInvalid for a malformed value and ValueIsRequired for a zero
// expiry. Codes are generated by services.PickupCodeManager; this constructor
// is also used when restoring an order from storage.
func NewPickupCode(value string, expiresAt time.Time) (PickupCode, error) {
	if len(value) != PickupCodeLength {
		return PickupCode{}, errs.NewValueIsInvalidErrorWithCause(
			"pickupCode", fmt.Errorf("expected %d digits, got %d characters", PickupCodeLength, len(value)))
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return PickupCode{}, errs.NewValueIsInvalidErrorWithCause("pickupCode", fmt.Errorf("%q is not numeric", value))
		}
	}
	if expiresAt.IsZero() {
		return PickupCode{}, errs.NewValueIsRequiredError("pickupCodeExpiresAt")
	}

	return PickupCode{value: value, expiresAt: expiresAt, guard: guard.NewConstructorGuard()}, nil
}

func (c PickupCode) Validate() error {
	return c.guard.Validate(ErrPickupCodeIsNotConstructed)
}

func (c PickupCode) Value() string {
	return c.value
}

func (c PickupCode) ExpiresAt() time.Time {
	return c.expiresAt
}

// IsExpiredAt is true from the expiry instant onwards.
func (c PickupCode) IsExpiredAt(now time.Time) bool {
	return !now.Before(c.expiresAt)
}

// Matches compares in constant time.
func (c PickupCode) Matches(candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(c.value), []byte(candidate)) == 1
}
