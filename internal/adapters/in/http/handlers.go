package http

import (
	"context"
	"iter"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
)

// Use case ports the HTTP layer drives. The command and query handlers satisfy
// them directly; tests substitute mocks.
type (
	PlaceBidHandler interface {
		Handle(ctx context.Context, command commands.PlaceBidCommand) (commands.PlaceBidResult, error)
	}

	RecordPaymentHandler interface {
		Handle(ctx context.Context, command commands.RecordPaymentCommand) (*order.Order, error)
	}

	ConfirmDeliveryHandler interface {
		Handle(ctx context.Context, command commands.ConfirmDeliveryCommand) (*order.Order, error)
	}

	VerifyPickupHandler interface {
		Handle(ctx context.Context, command commands.VerifyPickupCommand) (*order.Order, error)
	}

	RegisterProductHandler interface {
		Handle(ctx context.Context, command commands.RegisterProductCommand) (*product.Product, error)
	}

	SetSellerLocationHandler interface {
		Handle(ctx context.Context, command commands.SetSellerLocationCommand) error
	}

	ClaimOrderHandler interface {
		Handle(ctx context.Context, command commands.ClaimOrderCommand) (commands.ClaimOrderResult, error)
	}

	UpdateAgentLocationHandler interface {
		Handle(ctx context.Context, command commands.UpdateAgentLocationCommand) (*agent.Agent, error)
	}

	MarkAgentAvailableHandler interface {
		Handle(ctx context.Context, command commands.MarkAgentAvailableCommand) (*agent.Agent, error)
	}

	GetBuyerOrdersHandler interface {
		Handle(ctx context.Context, query queries.GetBuyerOrdersQuery) ([]queries.OrderSummary, error)
	}

	GetOrderSummaryHandler interface {
		Handle(ctx context.Context, query queries.GetOrderSummaryQuery) (queries.OrderSummary, error)
	}

	GetSellerDashboardHandler interface {
		Handle(ctx context.Context, query queries.GetSellerDashboardQuery) (queries.SellerDashboard, error)
	}

	FindNearbySellersHandler interface {
		Handle(ctx context.Context, query queries.FindNearbySellersQuery) ([]queries.NearbySeller, error)
	}

	FindNearbyOrdersHandler interface {
		Handle(ctx context.Context, query queries.FindNearbyOrdersQuery) (iter.Seq2[queries.NearbyOrder, error], error)
	}
)

// Handlers groups every use case the server exposes.
type Handlers struct {
	PlaceBid        PlaceBidHandler
	RecordPayment   RecordPaymentHandler
	ConfirmDelivery ConfirmDeliveryHandler
	BuyerOrders     GetBuyerOrdersHandler
	OrderSummary    GetOrderSummaryHandler
	NearbySellers   FindNearbySellersHandler

	VerifyPickup      VerifyPickupHandler
	RegisterProduct   RegisterProductHandler
	SetSellerLocation SetSellerLocationHandler
	SellerDashboard   GetSellerDashboardHandler

	ClaimOrder          ClaimOrderHandler
	UpdateAgentLocation UpdateAgentLocationHandler
	MarkAgentAvailable  MarkAgentAvailableHandler
	NearbyOrders        FindNearbyOrdersHandler
}
