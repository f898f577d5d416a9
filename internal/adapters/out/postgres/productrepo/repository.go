package productrepo

import (
	"context"

	"marketplace/internal/adapters/out/postgres/versioned"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"gorm.io/gorm"
)

const entity = "product"

type GormProductRepository struct {
	db *gorm.DB
}

func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Add(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return versioned.Create(ctx, r.db, &dto, entity)
}

func (r *GormProductRepository) Update(ctx context.Context, aggregate *product.Product) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	dto.Version++
	if err := versioned.Update(ctx, r.db, &ProductDTO{}, &dto, dto.ID, aggregate.Version(), entity); err != nil {
		return err
	}

	aggregate.AdvanceVersion()
	return nil
}

func (r *GormProductRepository) Get(ctx context.Context, id kernel.UUID) (*product.Product, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProductDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, versioned.NotFound(err, entity, id.String())
	}

	return toDomain(dto)
}
