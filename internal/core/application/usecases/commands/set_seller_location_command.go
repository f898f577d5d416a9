package commands

import (
	"errors"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/guard"
)

var ErrSetSellerLocationCommandIsNotConstructed = errors.New(
	"SetSellerLocationCommand must be created via NewSetSellerLocationCommand constructor",
)

// SetSellerLocationCommand registers where agents collect a seller's goods.
type SetSellerLocationCommand struct {
	sellerID kernel.UUID
	location kernel.Location

	guard guard.ConstructorGuard
}

func NewSetSellerLocationCommand(sellerID kernel.UUID, coordinates []float64) (SetSellerLocationCommand, error) {
	location, err := kernel.NewLocationFromPair(coordinates)
	if err = errors.Join(sellerID.Validate(), err); err != nil {
		return SetSellerLocationCommand{}, err
	}

	return SetSellerLocationCommand{
		sellerID: sellerID,
		location: location,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetSellerLocationCommand) Validate() error {
	return c.guard.Validate(ErrSetSellerLocationCommandIsNotConstructed)
}

func (c SetSellerLocationCommand) SellerID() kernel.UUID {
	return c.sellerID
}

func (c SetSellerLocationCommand) Location() kernel.Location {
	return c.location
}
