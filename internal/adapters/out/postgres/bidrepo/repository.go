package bidrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/versioned"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

const entity = "bid"

type GormBidRepository struct {
	db *gorm.DB
}

func NewGormBidRepository(db *gorm.DB) *GormBidRepository {
	return &GormBidRepository{db: db}
}

func (r *GormBidRepository) Add(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return versioned.Create(ctx, r.db, &dto, entity)
}

func (r *GormBidRepository) Update(ctx context.Context, aggregate *bid.Bid) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := versioned.Update(ctx, r.db, &BidDTO{}, &dto, dto.ID, aggregate.Version(), entity); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormBidRepository) Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BidDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, versioned.NotFound(err, entity, id.String())
	}

	return toDomain(dto)
}

func (r *GormBidRepository) GetAllPending(ctx context.Context, limit int) ([]*bid.Bid, error) {
	var dtos []BidDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", bid.Pending.String()).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	bids := make([]*bid.Bid, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}

	return bids, nil
}
