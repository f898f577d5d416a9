package http_test

import (
	"context"
	"iter"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockPlaceBidHandler struct{ mock.Mock }

func (m *MockPlaceBidHandler) Handle(ctx context.Context, cmd commands.PlaceBidCommand) (commands.PlaceBidResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.PlaceBidResult), args.Error(1)
}

type MockConfirmDeliveryHandler struct{ mock.Mock }

func (m *MockConfirmDeliveryHandler) Handle(ctx context.Context, cmd commands.ConfirmDeliveryCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockVerifyPickupHandler struct{ mock.Mock }

func (m *MockVerifyPickupHandler) Handle(ctx context.Context, cmd commands.VerifyPickupCommand) (*order.Order, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockClaimOrderHandler struct{ mock.Mock }

func (m *MockClaimOrderHandler) Handle(ctx context.Context, cmd commands.ClaimOrderCommand) (commands.ClaimOrderResult, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ClaimOrderResult), args.Error(1)
}

type MockGetOrderSummaryHandler struct{ mock.Mock }

func (m *MockGetOrderSummaryHandler) Handle(ctx context.Context, q queries.GetOrderSummaryQuery) (queries.OrderSummary, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(queries.OrderSummary), args.Error(1)
}

type MockGetBuyerOrdersHandler struct{ mock.Mock }

func (m *MockGetBuyerOrdersHandler) Handle(ctx context.Context, q queries.GetBuyerOrdersQuery) ([]queries.OrderSummary, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.OrderSummary), args.Error(1)
}

type MockFindNearbySellersHandler struct{ mock.Mock }

func (m *MockFindNearbySellersHandler) Handle(ctx context.Context, q queries.FindNearbySellersQuery) ([]queries.NearbySeller, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.NearbySeller), args.Error(1)
}

type MockFindNearbyOrdersHandler struct{ mock.Mock }

func (m *MockFindNearbyOrdersHandler) Handle(
	ctx context.Context,
	q queries.FindNearbyOrdersQuery,
) (iter.Seq2[queries.NearbyOrder, error], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(iter.Seq2[queries.NearbyOrder, error]), args.Error(1)
}
