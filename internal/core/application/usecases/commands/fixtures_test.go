package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

// restoreOrder builds a pending order carrying code 654321 that expires ten
// minutes after now. edit adjusts the snapshot before it is restored.
func restoreOrder(t *testing.T, edit func(s *order.Snapshot)) *order.Order {
	t.Helper()

	code, err := order.NewPickupCode("654321", now.Add(10*time.Minute))
	require.NoError(t, err)

	s := order.Snapshot{
		ID: kernel.NewUUID(),
		Link: order.Linkage{
			BuyerID:   kernel.NewUUID(),
			SellerID:  kernel.NewUUID(),
			ProductID: kernel.NewUUID(),
			BidID:     kernel.NewUUID(),
		},
		ProductType: "basmati",
		Quantity:    10,
		Price:       12000,
		Commission:  600,
		Total:       12600,
		Status:      order.Pending,
		PickupCode:  &code,
		CreatedAt:   now.Add(-time.Hour),
		Version:     1,
	}
	if edit != nil {
		edit(&s)
	}

	o, err := order.RestoreOrder(s)
	require.NoError(t, err)
	return o
}

func paid(s *order.Snapshot) {
	s.Status = order.Paid
	s.PaymentMethod = order.PaymentCard
}

func shipped(agentID kernel.UUID) func(s *order.Snapshot) {
	return func(s *order.Snapshot) {
		paid(s)
		s.Status = order.Shipped
		s.IsPicked = true
		s.PickupCode = nil
		s.AgentID = &agentID
	}
}

func restoreAgent(t *testing.T, isAvailable bool) *agent.Agent {
	t.Helper()

	location, err := kernel.NewLocation(77.59, 12.97)
	require.NoError(t, err)

	a, err := agent.RestoreAgent(kernel.NewUUID(), &location, isAvailable, 3)
	require.NoError(t, err)
	return a
}
