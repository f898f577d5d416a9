// Package ports defines the contracts between the marketplace core and its adapters:
// versioned repositories grouped under a unit of work, the location store used for
// geographic range queries and the notifier that receives lifecycle events.
//
// Every Update in this package is a conditional write. It succeeds only when the
// stored version equals the version the aggregate was read at, which gives each
// entity linearizable read-modify-write without holding locks across requests.
package ports

import (
	"context"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"
)

// ProductRepository defines the persistence contract for product aggregates.
type ProductRepository interface {
	Add(ctx context.Context, aggregate *product.Product) error

	// Update is conditional on aggregate.Version(); see the package documentation.
	Update(ctx context.Context, aggregate *product.Product) error

	Get(ctx context.Context, id kernel.UUID) (*product.Product, error)
}
