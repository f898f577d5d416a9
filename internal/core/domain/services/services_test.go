package services_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"

	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)

func fixedCodes(codes ...string) services.CodeGenerator {
	i := 0
	return func() (string, error) {
		if i >= len(codes) {
			return "", errors.New("no more codes")
		}
		c := codes[i]
		i++
		return c, nil
	}
}

func newProduct(t *testing.T, ask kernel.Money) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "basmati", 10, ask, now)
	require.NoError(t, err)
	return p
}

func newBid(t *testing.T, p *product.Product, price kernel.Money) *bid.Bid {
	t.Helper()
	b, err := bid.NewBid(kernel.NewUUID(), kernel.NewUUID(), p.ID(), price, now)
	require.NoError(t, err)
	return b
}

func newPaidOrder(t *testing.T, codes *services.PickupCodeManager) *order.Order {
	t.Helper()
	p := newProduct(t, 10000)
	b := newBid(t, p, 12000)
	o, err := services.NewBidEngine(services.DefaultCommissionRate, codes).Accept(p, b, kernel.NewUUID(), now)
	require.NoError(t, err)
	require.NoError(t, o.RecordPayment(o.BuyerID(), order.PaymentCash))
	return o
}

func newAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), nil)
	require.NoError(t, err)
	return a
}
