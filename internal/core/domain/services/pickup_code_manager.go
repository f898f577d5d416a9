package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"
)

// DefaultPickupCodeTTL is how long a freshly issued code stays valid.
const DefaultPickupCodeTTL = 10 * time.Minute

var (
	ErrPickupCodeExpired = errs.NewRuleViolationError(errs.KindExpired, "pickup code expired; a new code has been issued")
	ErrInvalidPickupCode = errs.NewRuleViolationError(errs.KindInvalidCode, "invalid pickup code")
)

// PickupVerdict is the outcome of checking a candidate code.
type PickupVerdict int

const (
	PickupCodeValid PickupVerdict = iota + 1
	PickupCodeInvalid
	PickupCodeExpired
)

// CodeGenerator returns a fresh numeric code of order.PickupCodeLength digits.
type CodeGenerator func() (string, error)

// PickupCodeManager guarantees code freshness and single use. It does not know
// how a code reaches the seller or agent.
type PickupCodeManager struct {
	ttl      time.Duration
	generate CodeGenerator
}

// NewPickupCodeManager uses RandomDigits when generate is nil.
func NewPickupCodeManager(ttl time.Duration, generate CodeGenerator) *PickupCodeManager {
	if ttl <= 0 {
		ttl = DefaultPickupCodeTTL
	}
	if generate == nil {
		generate = RandomDigits
	}
	return &PickupCodeManager{ttl: ttl, generate: generate}
}

func (m *PickupCodeManager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a code valid from now until now+TTL.
func (m *PickupCodeManager) Issue(now time.Time) (order.PickupCode, error) {
	value, err := m.generate()
	if err != nil {
		return order.PickupCode{}, fmt.Errorf("generate pickup code: %w", err)
	}
	return order.NewPickupCode(value, now.Add(m.ttl))
}

// Validate checks candidate against the order's code at now.
//
// An expired (or missing) code is replaced on the order before PickupCodeExpired
// is returned, and the candidate is never compared. A mismatch leaves the order
// untouched. On PickupCodeValid the caller consumes the code through
// order.CompletePickup within the same write.
func (m *PickupCodeManager) Validate(o *order.Order, candidate string, now time.Time) (PickupVerdict, error) {
	current := o.PickupCode()
	if current == nil || current.IsExpiredAt(now) {
		fresh, err := m.Issue(now)
		if err != nil {
			return 0, err
		}
		if err = o.AttachPickupCode(fresh); err != nil {
			return 0, err
		}
		return PickupCodeExpired, nil
	}

	if !current.Matches(candidate) {
		return PickupCodeInvalid, nil
	}
	return PickupCodeValid, nil
}

// RandomDigits draws a uniformly distributed code from crypto/rand.
func RandomDigits() (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(order.PickupCodeLength), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", order.PickupCodeLength, n), nil
}
