package orderrepo

import (
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BuyerID             uuid.UUID  `gorm:"type:uuid;index"`
	SellerID            uuid.UUID  `gorm:"type:uuid;index"`
	ProductID           uuid.UUID  `gorm:"type:uuid"`
	BidID               uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	ProductType         string
	Quantity            float64
	Price               int64
	Commission          int64
	TotalAmount         int64
	PaymentMethod       string
	Status              string
	AgentID             *uuid.UUID `gorm:"type:uuid"`
	PickupCode          *string
	PickupCodeExpiresAt *time.Time
	IsPicked            bool
	IsDelivered         bool
	CreatedAt           time.Time
	Version             int64
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()

	dto := OrderDTO{
		ID:            s.ID.Bytes(),
		BuyerID:       s.Link.BuyerID.Bytes(),
		SellerID:      s.Link.SellerID.Bytes(),
		ProductID:     s.Link.ProductID.Bytes(),
		BidID:         s.Link.BidID.Bytes(),
		ProductType:   s.ProductType,
		Quantity:      s.Quantity,
		Price:         int64(s.Price),
		Commission:    int64(s.Commission),
		TotalAmount:   int64(s.Total),
		PaymentMethod: string(s.PaymentMethod),
		Status:        s.Status.String(),
		IsPicked:      s.IsPicked,
		IsDelivered:   s.IsDelivered,
		CreatedAt:     s.CreatedAt,
		Version:       s.Version,
	}

	if s.AgentID != nil {
		raw := s.AgentID.Bytes()
		dto.AgentID = &raw
	}

	if s.PickupCode != nil {
		value := s.PickupCode.Value()
		expiresAt := s.PickupCode.ExpiresAt()
		dto.PickupCode = &value
		dto.PickupCodeExpiresAt = &expiresAt
	}

	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	ids := make([]kernel.UUID, 0, 5)
	for _, raw := range []uuid.UUID{dto.ID, dto.BuyerID, dto.SellerID, dto.ProductID, dto.BidID} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	s := order.Snapshot{
		ID: ids[0],
		Link: order.Linkage{
			BuyerID:   ids[1],
			SellerID:  ids[2],
			ProductID: ids[3],
			BidID:     ids[4],
		},
		ProductType:   dto.ProductType,
		Quantity:      dto.Quantity,
		Price:         kernel.Money(dto.Price),
		Commission:    kernel.Money(dto.Commission),
		Total:         kernel.Money(dto.TotalAmount),
		PaymentMethod: order.PaymentMethod(dto.PaymentMethod),
		Status:        status,
		IsPicked:      dto.IsPicked,
		IsDelivered:   dto.IsDelivered,
		CreatedAt:     dto.CreatedAt.UTC(),
		Version:       dto.Version,
	}

	if dto.AgentID != nil {
		agentID, agentErr := kernel.UUIDFromBytes(dto.AgentID[:])
		if agentErr != nil {
			return nil, agentErr
		}
		s.AgentID = &agentID
	}

	if dto.PickupCode != nil && dto.PickupCodeExpiresAt != nil {
		code, codeErr := order.NewPickupCode(*dto.PickupCode, dto.PickupCodeExpiresAt.UTC())
		if codeErr != nil {
			return nil, codeErr
		}
		s.PickupCode = &code
	}

	return order.RestoreOrder(s)
}
