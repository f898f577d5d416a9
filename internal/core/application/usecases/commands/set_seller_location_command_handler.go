package commands

import (
	"context"

	"marketplace/internal/core/ports"
)

// SetSellerLocationCommandHandler writes straight to the location store; seller
// pickup points are not part of any transactional aggregate.
type SetSellerLocationCommandHandler struct {
	locations ports.LocationStore
}

func NewSetSellerLocationCommandHandler(locations ports.LocationStore) SetSellerLocationCommandHandler {
	return SetSellerLocationCommandHandler{
		locations: locations,
	}
}

func (h SetSellerLocationCommandHandler) Handle(ctx context.Context, command SetSellerLocationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	return h.locations.SetSellerLocation(ctx, command.SellerID(), command.Location())
}
