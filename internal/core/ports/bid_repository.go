package ports

import (
	"context"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
type BidRepository interface {
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update is conditional on aggregate.Version().
	Update(ctx context.Context, aggregate *bid.Bid) error

	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetAllPending returns up to limit pending bids, oldest first.
	GetAllPending(ctx context.Context, limit int) ([]*bid.Bid, error)
}
