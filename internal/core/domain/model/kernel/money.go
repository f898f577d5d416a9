package kernel

import (
	"fmt"
	"math"

	"marketplace/internal/pkg/errs"
)

// Money is an amount in minor units (cents).
type Money int64

// MaxMoney bounds every amount the marketplace accepts: one billion in major
// units. Sums and commissions of amounts within the bound stay far from int64
// overflow.
const MaxMoney Money = 1_000_000_000 * 100

// MoneyFromMajor converts a decimal amount such as 120.5 into minor units,
// rounding half away from zero.
//
// Parameters:
//   - amount: value in major units; its magnitude must not exceed MaxMoney
//
// Returns:
//   - Money: the amount in minor units
//   - error: ValueIsInvalid for NaN or infinity, ValueIsOutOfRange beyond MaxMoney
func MoneyFromMajor(amount float64) (Money, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%v is not a finite number", amount))
	}
	limit := MaxMoney.Major()
	if math.Abs(amount) > limit {
		return 0, errs.NewValueIsOutOfRangeError("amount", amount, -limit, limit)
	}
	return Money(math.Round(amount * 100)), nil
}

// Validate checks that m lies within ±MaxMoney.
func (m Money) Validate() error {
	if m > MaxMoney || m < -MaxMoney {
		return errs.NewValueIsOutOfRangeError("amount", m.String(), -MaxMoney.Major(), MaxMoney.Major())
	}
	return nil
}

// Major returns the amount in major units for presentation.
func (m Money) Major() float64 {
	return float64(m) / 100
}

func (m Money) Add(other Money) Money {
	return m + other
}

// MulRate applies a fractional rate, rounding half away from zero.
func (m Money) MulRate(rate float64) Money {
	return Money(math.Round(float64(m) * rate))
}

func (m Money) IsPositive() bool {
	return m > 0
}

func (m Money) String() string {
	return fmt.Sprintf("%.2f", m.Major())
}
