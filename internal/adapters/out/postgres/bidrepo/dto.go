package bidrepo

import (
	"fmt"
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/google/uuid"
)

type BidDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	BuyerID   uuid.UUID `gorm:"type:uuid"`
	ProductID uuid.UUID `gorm:"type:uuid;index"`
	Price     int64
	Status    string
	CreatedAt time.Time
	Version   int64
}

func (BidDTO) TableName() string {
	return "bids"
}

var statusByName = map[string]bid.Status{
	bid.Pending.String():  bid.Pending,
	bid.Accepted.String(): bid.Accepted,
	bid.Rejected.String(): bid.Rejected,
	bid.Expired.String():  bid.Expired,
}

func fromDomain(b *bid.Bid) BidDTO {
	return BidDTO{
		ID:        b.ID().Bytes(),
		BuyerID:   b.BuyerID().Bytes(),
		ProductID: b.ProductID().Bytes(),
		Price:     int64(b.Price()),
		Status:    b.Status().String(),
		CreatedAt: b.CreatedAt(),
		Version:   b.Version(),
	}
}

func toDomain(dto BidDTO) (*bid.Bid, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	buyerID, err := kernel.UUIDFromBytes(dto.BuyerID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	status, ok := statusByName[dto.Status]
	if !ok {
		return nil, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("unknown bid status %q", dto.Status))
	}

	return bid.RestoreBid(id, buyerID, productID, kernel.Money(dto.Price), status, dto.CreatedAt.UTC(), dto.Version)
}
