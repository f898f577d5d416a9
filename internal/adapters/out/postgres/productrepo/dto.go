package productrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	"github.com/google/uuid"
)

type ProductDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SellerID    uuid.UUID `gorm:"type:uuid;index"`
	ProductType string
	Quantity    float64
	AskPrice    int64
	IsAvailable bool
	CreatedAt   time.Time
	Version     int64
}

func (ProductDTO) TableName() string {
	return "products"
}

func fromDomain(p *product.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID().Bytes(),
		SellerID:    p.SellerID().Bytes(),
		ProductType: p.ProductType(),
		Quantity:    p.Quantity(),
		AskPrice:    int64(p.AskPrice()),
		IsAvailable: p.IsAvailable(),
		CreatedAt:   p.CreatedAt(),
		Version:     p.Version(),
	}
}

func toDomain(dto ProductDTO) (*product.Product, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	sellerID, err := kernel.UUIDFromBytes(dto.SellerID[:])
	if err != nil {
		return nil, err
	}

	return product.RestoreProduct(
		id,
		sellerID,
		dto.ProductType,
		dto.Quantity,
		kernel.Money(dto.AskPrice),
		dto.IsAvailable,
		dto.CreatedAt.UTC(),
		dto.Version,
	)
}
