package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetOrderSummaryQueryIsNotConstructed = errors.New(
	"GetOrderSummaryQuery must be created via NewGetOrderSummaryQuery constructor",
)

// GetOrderSummaryQuery fetches one order on behalf of its buyer.
type GetOrderSummaryQuery struct {
	orderID kernel.UUID
	buyerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderSummaryQuery(orderID, buyerID kernel.UUID) (GetOrderSummaryQuery, error) {
	if err := errors.Join(orderID.Validate(), buyerID.Validate()); err != nil {
		return GetOrderSummaryQuery{}, err
	}

	return GetOrderSummaryQuery{
		orderID: orderID,
		buyerID: buyerID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderSummaryQueryIsNotConstructed)
}

func (q GetOrderSummaryQuery) OrderID() kernel.UUID {
	return q.orderID
}

func (q GetOrderSummaryQuery) BuyerID() kernel.UUID {
	return q.buyerID
}
