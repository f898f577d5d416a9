// Package event defines the lifecycle notifications the coordinator publishes.
// Publishing is fire-and-forget: an event describes a state change that has
// already been committed and is never a reason to undo it.
package event

import (
	"time"

	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
)

// Type names an event on the wire.
type Type string

const (
	BidFiled           Type = "bid.filed"
	BidAutoAccepted    Type = "bid.autoAccepted"
	BidRejected        Type = "bid.rejected"
	BidExpired         Type = "bid.expired"
	OrderClaimed       Type = "order.claimed"
	OrderDelivered     Type = "order.delivered"
	PickupCodeReissued Type = "pickup.codeReissued"
)

// Version of the payload schemas below.
const Version = 1

// Event is a typed payload plus routing metadata. Key groups events that must
// stay ordered relative to each other, such as everything about one product.
type Event struct {
	ID         kernel.UUID
	Type       Type
	Key        kernel.UUID
	OccurredAt time.Time
	Payload    any
}

type BidFiledPayload struct {
	BidID       string    `json:"bidId"`
	ProductID   string    `json:"productId"`
	ProductType string    `json:"productType"`
	BidPrice    float64   `json:"bidPrice"`
	AskingPrice float64   `json:"askingPrice"`
	BuyerID     string    `json:"buyerId"`
	SellerID    string    `json:"sellerId"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BidAutoAcceptedPayload struct {
	ProductID   string  `json:"productId"`
	ProductType string  `json:"productType"`
	BidID       string  `json:"bidId"`
	OrderID     string  `json:"orderId"`
	Amount      float64 `json:"amount"`
	BuyerID     string  `json:"buyerId"`
	SellerID    string  `json:"sellerId"`
}

type BidClosedPayload struct {
	BidID     string `json:"bidId"`
	ProductID string `json:"productId"`
	BuyerID   string `json:"buyerId"`
	Status    string `json:"status"`
}

type OrderClaimedPayload struct {
	OrderID  string `json:"orderId"`
	AgentID  string `json:"agentId"`
	SellerID string `json:"sellerId"`
	BuyerID  string `json:"buyerId"`
}

type OrderDeliveredPayload struct {
	OrderID string `json:"orderId"`
	BuyerID string `json:"buyerId"`
	AgentID string `json:"agentId,omitempty"`
}

type PickupCodeReissuedPayload struct {
	OrderID   string    `json:"orderId"`
	SellerID  string    `json:"sellerId"`
	AgentID   string    `json:"agentId,omitempty"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}

func NewBidFiled(b *bid.Bid, p *product.Product, now time.Time) Event {
	return newEvent(BidFiled, p.ID(), now, BidFiledPayload{
		BidID:       b.ID().String(),
		ProductID:   p.ID().String(),
		ProductType: p.ProductType(),
		BidPrice:    b.Price().Major(),
		AskingPrice: p.AskPrice().Major(),
		BuyerID:     b.BuyerID().String(),
		SellerID:    p.SellerID().String(),
		CreatedAt:   b.CreatedAt(),
	})
}

func NewBidAutoAccepted(o *order.Order, now time.Time) Event {
	return newEvent(BidAutoAccepted, o.ProductID(), now, BidAutoAcceptedPayload{
		ProductID:   o.ProductID().String(),
		ProductType: o.ProductType(),
		BidID:       o.BidID().String(),
		OrderID:     o.ID().String(),
		Amount:      o.Total().Major(),
		BuyerID:     o.BuyerID().String(),
		SellerID:    o.SellerID().String(),
	})
}

// NewBidClosed reports a bid that left pending without an order.
func NewBidClosed(b *bid.Bid, now time.Time) Event {
	t := BidRejected
	if b.Status() == bid.Expired {
		t = BidExpired
	}
	return newEvent(t, b.ProductID(), now, BidClosedPayload{
		BidID:     b.ID().String(),
		ProductID: b.ProductID().String(),
		BuyerID:   b.BuyerID().String(),
		Status:    b.Status().String(),
	})
}

func NewOrderClaimed(o *order.Order, agentID kernel.UUID, now time.Time) Event {
	return newEvent(OrderClaimed, o.ID(), now, OrderClaimedPayload{
		OrderID:  o.ID().String(),
		AgentID:  agentID.String(),
		SellerID: o.SellerID().String(),
		BuyerID:  o.BuyerID().String(),
	})
}

func NewOrderDelivered(o *order.Order, now time.Time) Event {
	return newEvent(OrderDelivered, o.ID(), now, OrderDeliveredPayload{
		OrderID: o.ID().String(),
		BuyerID: o.BuyerID().String(),
		AgentID: optionalID(o.AgentID()),
	})
}

func NewPickupCodeReissued(o *order.Order, code order.PickupCode, now time.Time) Event {
	return newEvent(PickupCodeReissued, o.ID(), now, PickupCodeReissuedPayload{
		OrderID:   o.ID().String(),
		SellerID:  o.SellerID().String(),
		AgentID:   optionalID(o.AgentID()),
		Code:      code.Value(),
		ExpiresAt: code.ExpiresAt(),
	})
}

func newEvent(t Type, key kernel.UUID, now time.Time, payload any) Event {
	return Event{ID: kernel.NewUUID(), Type: t, Key: key, OccurredAt: now, Payload: payload}
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
