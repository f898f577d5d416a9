package queries

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrGetSellerDashboardQueryIsNotConstructed = errors.New(
	"GetSellerDashboardQuery must be created via NewGetSellerDashboardQuery constructor",
)

// GetSellerDashboardQuery summarises a seller's open stock and order pipeline.
type GetSellerDashboardQuery struct {
	sellerID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSellerDashboardQuery(sellerID kernel.UUID) (GetSellerDashboardQuery, error) {
	if err := sellerID.Validate(); err != nil {
		return GetSellerDashboardQuery{}, err
	}

	return GetSellerDashboardQuery{sellerID: sellerID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetSellerDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetSellerDashboardQueryIsNotConstructed)
}

func (q GetSellerDashboardQuery) SellerID() kernel.UUID {
	return q.sellerID
}

// StockLine aggregates the seller's available lots of one product type.
type StockLine struct {
	ProductType string
	Lots        int64
	Quantity    float64
}

// StatusCount is the number of the seller's orders in one status.
type StatusCount struct {
	Status string
	Count  int64
}

type SellerDashboard struct {
	Stock          []StockLine
	OrdersByStatus []StatusCount
}
