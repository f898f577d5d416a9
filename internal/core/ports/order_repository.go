package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A second order for the same bid is a version conflict.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if the stored version still equals aggregate.Version(),
	// then advances the aggregate's version. A stale version yields errs.ErrVersionIsInvalid.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllClaimableBySellers returns paid, unclaimed, unpicked orders of the given sellers.
	GetAllClaimableBySellers(ctx context.Context, sellerIDs []kernel.UUID) ([]*order.Order, error)
}
