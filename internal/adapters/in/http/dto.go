package http

import (
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/product"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Wire types mirror the schemas in api/openapi.yaml. Money travels in major
// units with two decimals.

type Error struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

type PlaceBidRequest struct {
	ProductID openapi_types.UUID `json:"productId"`
	BidPrice  float64            `json:"bidPrice"`
}

type Bid struct {
	ID        openapi_types.UUID `json:"id"`
	ProductID openapi_types.UUID `json:"productId"`
	BuyerID   openapi_types.UUID `json:"buyerId"`
	BidPrice  float64            `json:"bidPrice"`
	Status    string             `json:"status"`
	CreatedAt time.Time          `json:"createdAt"`
}

type OrderBrief struct {
	ID          openapi_types.UUID `json:"id"`
	Status      string             `json:"status"`
	TotalAmount float64            `json:"totalAmount"`
}

type PlaceBidResponse struct {
	Bid   Bid         `json:"bid"`
	Order *OrderBrief `json:"order,omitempty"`
}

type PaymentRequest struct {
	OrderID       openapi_types.UUID `json:"orderId"`
	PaymentMethod string             `json:"paymentMethod"`
}

type PaymentResponse struct {
	OrderID       openapi_types.UUID `json:"orderId"`
	Status        string             `json:"status"`
	Amount        float64            `json:"amount"`
	PaymentMethod string             `json:"paymentMethod"`
}

type OrderRef struct {
	OrderID openapi_types.UUID `json:"orderId"`
}

type OrderStatus struct {
	OrderID openapi_types.UUID `json:"orderId"`
	Status  string             `json:"status"`
}

type OrderSummary struct {
	OrderID       openapi_types.UUID  `json:"orderId"`
	ProductID     openapi_types.UUID  `json:"productId"`
	SellerID      openapi_types.UUID  `json:"sellerId"`
	ProductType   string              `json:"productType"`
	Quantity      float64             `json:"quantity"`
	Price         float64             `json:"price"`
	Commission    float64             `json:"commission"`
	TotalAmount   float64             `json:"totalAmount"`
	PaymentMethod string              `json:"paymentMethod,omitempty"`
	Status        string              `json:"status"`
	AgentID       *openapi_types.UUID `json:"agentId,omitempty"`
	IsPicked      bool                `json:"isPicked"`
	IsDelivered   bool                `json:"isDelivered"`
	CreatedAt     time.Time           `json:"createdAt"`
}

type VerifyPickupRequest struct {
	OrderID openapi_types.UUID `json:"orderId"`
	OTP     string             `json:"otp"`
}

type RegisterProductRequest struct {
	ProductType string  `json:"productType"`
	Quantity    float64 `json:"quantity"`
	AskPrice    float64 `json:"askPrice"`
}

type Product struct {
	ID          openapi_types.UUID `json:"id"`
	SellerID    openapi_types.UUID `json:"sellerId"`
	ProductType string             `json:"productType"`
	Quantity    float64            `json:"quantity"`
	AskPrice    float64            `json:"askPrice"`
	IsAvailable bool               `json:"isAvailable"`
	CreatedAt   time.Time          `json:"createdAt"`
}

type LocationRequest struct {
	Coordinates []float64 `json:"coordinates"`
}

type Point struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"`
}

type LocationResponse struct {
	Location Point `json:"location"`
}

type StockLine struct {
	ProductType string  `json:"productType"`
	Lots        int64   `json:"lots"`
	Quantity    float64 `json:"quantity"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type SellerDashboard struct {
	Stock          []StockLine   `json:"stock"`
	OrdersByStatus []StatusCount `json:"ordersByStatus"`
}

// FindNearbyOrdersParams are the query parameters of GET /agent/nearby-orders.
type FindNearbyOrdersParams struct {
	Radius *float64 `form:"radius,omitempty" json:"radius,omitempty"`
}

type NearbyOrder struct {
	OrderID        openapi_types.UUID `json:"orderId"`
	SellerID       openapi_types.UUID `json:"sellerId"`
	ProductType    string             `json:"productType"`
	Quantity       float64            `json:"quantity"`
	PickupLocation [2]float64         `json:"pickupLocation"`
	Distance       float64            `json:"distance"`
}

// FindNearbySellersParams are the query parameters of GET /buyer/nearby-sellers.
type FindNearbySellersParams struct {
	Lng    float64  `form:"lng" json:"lng"`
	Lat    float64  `form:"lat" json:"lat"`
	Radius *float64 `form:"radius,omitempty" json:"radius,omitempty"`
}

type NearbySeller struct {
	SellerID openapi_types.UUID `json:"sellerId"`
	Location [2]float64         `json:"location"`
	Distance float64            `json:"distance"`
}

type AcceptOrderResponse struct {
	OrderID    openapi_types.UUID `json:"orderId"`
	PickupCode string             `json:"pickupCode"`
}

type AgentAvailability struct {
	AgentID     openapi_types.UUID `json:"agentId"`
	IsAvailable bool               `json:"isAvailable"`
}

func toBid(b *bid.Bid) Bid {
	return Bid{
		ID:        b.ID().Bytes(),
		ProductID: b.ProductID().Bytes(),
		BuyerID:   b.BuyerID().Bytes(),
		BidPrice:  b.Price().Major(),
		Status:    b.Status().String(),
		CreatedAt: b.CreatedAt(),
	}
}

func toProduct(p *product.Product) Product {
	return Product{
		ID:          p.ID().Bytes(),
		SellerID:    p.SellerID().Bytes(),
		ProductType: p.ProductType(),
		Quantity:    p.Quantity(),
		AskPrice:    p.AskPrice().Major(),
		IsAvailable: p.IsAvailable(),
		CreatedAt:   p.CreatedAt(),
	}
}

func toOrderSummary(s queries.OrderSummary) OrderSummary {
	out := OrderSummary{
		OrderID:       s.OrderID.Bytes(),
		ProductID:     s.ProductID.Bytes(),
		SellerID:      s.SellerID.Bytes(),
		ProductType:   s.ProductType,
		Quantity:      s.Quantity,
		Price:         s.Price.Major(),
		Commission:    s.Commission.Major(),
		TotalAmount:   s.Total.Major(),
		PaymentMethod: s.PaymentMethod,
		Status:        s.Status,
		IsPicked:      s.IsPicked,
		IsDelivered:   s.IsDelivered,
		CreatedAt:     s.CreatedAt,
	}
	if s.AgentID != nil {
		id := openapi_types.UUID(s.AgentID.Bytes())
		out.AgentID = &id
	}
	return out
}

func toPoint(l kernel.Location) Point {
	return Point{Type: "Point", Coordinates: l.Pair()}
}
