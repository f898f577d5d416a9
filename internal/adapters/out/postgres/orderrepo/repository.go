package orderrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/versioned"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const entity = "order"

type GormOrderRepository struct {
	db *gorm.DB
}

func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Add inserts a new order. A second order for the same bid violates
// uq_orders_bid_id and is reported as a version conflict.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return versioned.Create(ctx, r.db, &dto, entity)
}

func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := versioned.Update(ctx, r.db, &OrderDTO{}, &dto, dto.ID, aggregate.Version(), entity); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, versioned.NotFound(err, entity, id.String())
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) GetAllClaimableBySellers(
	ctx context.Context,
	sellerIDs []kernel.UUID,
) ([]*order.Order, error) {
	if len(sellerIDs) == 0 {
		return []*order.Order{}, nil
	}

	ids := make([]uuid.UUID, 0, len(sellerIDs))
	for _, id := range sellerIDs {
		ids = append(ids, id.Bytes())
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("seller_id IN ?", ids).
		Where("status = ? AND agent_id IS NULL AND NOT is_picked", order.Paid.String()).
		Order("created_at, id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
