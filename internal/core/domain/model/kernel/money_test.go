package kernel_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
)

func TestMoneyFromMajor(t *testing.T) {
	m, err := kernel.MoneyFromMajor(120.25)
	require.NoError(t, err)
	assert.Equal(t, kernel.Money(12025), m)

	_, err = kernel.MoneyFromMajor(math.NaN())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = kernel.MoneyFromMajor(9e16)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	m, err = kernel.MoneyFromMajor(-1_000_000_000)
	require.NoError(t, err)
	assert.Equal(t, -kernel.MaxMoney, m)
}

func TestMoney_Validate(t *testing.T) {
	require.NoError(t, kernel.MaxMoney.Validate())
	require.ErrorIs(t, (kernel.MaxMoney + 1).Validate(), errs.ErrValueIsOutOfRange)
	require.ErrorIs(t, kernel.Money(math.MinInt64).Validate(), errs.ErrValueIsOutOfRange)
}

func TestMoney_Commission(t *testing.T) {
	bid, _ := kernel.MoneyFromMajor(120)

	commission := bid.MulRate(0.05)
	total := bid.Add(commission)

	assert.Equal(t, kernel.Money(600), commission)
	assert.Equal(t, kernel.Money(12600), total)
	assert.Equal(t, "126.00", total.String())
	assert.InDelta(t, 126.0, total.Major(), 1e-9)
}

func TestMoney_CommissionNeverExceedsBid(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bid := kernel.Money(rapid.Int64Range(1, 1_000_000_000).Draw(t, "bid"))
		rate := rapid.Float64Range(0, 1).Draw(t, "rate")

		commission := bid.MulRate(rate)
		if commission < 0 || commission > bid {
			t.Fatalf("commission %d outside [0, %d] for rate %f", commission, bid, rate)
		}
	})
}
