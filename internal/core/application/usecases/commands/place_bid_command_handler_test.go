package commands_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/product"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newListedProduct(t *testing.T, ask kernel.Money) *product.Product {
	t.Helper()
	p, err := product.NewProduct(kernel.NewUUID(), kernel.NewUUID(), "basmati", 10, ask, now.Add(-time.Hour))
	require.NoError(t, err)
	return p
}

func newBidEngine() services.BidEngine {
	codes := services.NewPickupCodeManager(10*time.Minute, func() (string, error) { return "123456", nil })
	return services.NewBidEngine(0.05, codes)
}

func TestPlaceBidCommandHandler_Handle_BelowAskFilesBid(t *testing.T) {
	ctx := t.Context()
	p := newListedProduct(t, 10000)
	cmd, err := commands.NewPlaceBidCommand(p.ID(), kernel.NewUUID(), 9000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Add", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Publish", ctx, eventOfType(event.BidFiled)).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), notifier, clock)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result.Bid)
	assert.Nil(t, result.Order)
	assert.Equal(t, bid.Pending, result.Bid.Status())
	assert.True(t, p.IsAvailable())

	factory.AssertExpectations(t)
	uow.AssertExpectations(t)
	productRepo.AssertExpectations(t)
	bidRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_AtAskAutoAccepts(t *testing.T) {
	ctx := t.Context()
	p := newListedProduct(t, 10000)
	buyerID := kernel.NewUUID()
	cmd, err := commands.NewPlaceBidCommand(p.ID(), buyerID, 12000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	bidRepo := new(MockBidRepository)
	orderRepo := new(MockOrderRepository)
	fileUoW := new(MockUoW)
	acceptUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		fileUoW.On("Begin", ctx).Return(nil).Once(),
		fileUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		fileUoW.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Add", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		fileUoW.On("Commit", ctx).Return(nil).Once(),
		fileUoW.On("Rollback", ctx).Return(nil).Once(),

		acceptUoW.On("Begin", ctx).Return(nil).Once(),
		acceptUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Update", ctx, p).Return(nil).Once(),
		acceptUoW.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		acceptUoW.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", ctx, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		acceptUoW.On("Commit", ctx).Return(nil).Once(),
		acceptUoW.On("Rollback", ctx).Return(nil).Once(),

		notifier.On("Publish", ctx, eventOfType(event.BidAutoAccepted)).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(fileUoW).Once()
	factory.On("Create").Return(acceptUoW).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), notifier, clock)

	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.NotNil(t, result.Order)
	assert.Equal(t, bid.Accepted, result.Bid.Status())
	assert.Equal(t, order.Pending, result.Order.Status())
	assert.Equal(t, kernel.Money(600), result.Order.Commission())
	assert.Equal(t, "126.00", result.Order.Total().String())
	assert.True(t, result.Order.BuyerID().IsEqual(buyerID))
	assert.True(t, result.Order.SellerID().IsEqual(p.SellerID()))
	assert.False(t, p.IsAvailable())

	factory.AssertExpectations(t)
	fileUoW.AssertExpectations(t)
	acceptUoW.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_LosesRace(t *testing.T) {
	ctx := t.Context()
	p := newListedProduct(t, 10000)
	cmd, err := commands.NewPlaceBidCommand(p.ID(), kernel.NewUUID(), 10000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	bidRepo := new(MockBidRepository)
	fileUoW := new(MockUoW)
	acceptUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		fileUoW.On("Begin", ctx).Return(nil).Once(),
		fileUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		fileUoW.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Add", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		fileUoW.On("Commit", ctx).Return(nil).Once(),
		fileUoW.On("Rollback", ctx).Return(nil).Once(),

		acceptUoW.On("Begin", ctx).Return(nil).Once(),
		acceptUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Update", ctx, p).Return(errs.NewVersionIsInvalidError("product")).Once(),
		acceptUoW.On("Rollback", ctx).Return(nil).Once(),

		notifier.On("Publish", ctx, eventOfType(event.BidFiled)).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(fileUoW).Once()
	factory.On("Create").Return(acceptUoW).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), notifier, clock)

	result, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrProductSoldConcurrently)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.True(t, errs.IsRetryable(err))
	assert.Nil(t, result.Order)

	acceptUoW.AssertNotCalled(t, "Commit", ctx)
	bidRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	notifier.AssertExpectations(t)
}

func TestPlaceBidCommandHandler_Handle_ProductUnavailable(t *testing.T) {
	ctx := t.Context()
	p := newListedProduct(t, 10000)
	require.NoError(t, p.MarkSold())
	cmd, err := commands.NewPlaceBidCommand(p.ID(), kernel.NewUUID(), 15000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), notifier, clock)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, product.ErrProductUnavailable)
	assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))
	uow.AssertNotCalled(t, "BidRepository")
	uow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestPlaceBidCommandHandler_Handle_ProductNotFound(t *testing.T) {
	ctx := t.Context()
	productID := kernel.NewUUID()
	cmd, err := commands.NewPlaceBidCommand(productID, kernel.NewUUID(), 15000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ProductRepository").Return(productRepo).Once()
	productRepo.On("Get", ctx, productID).Return(nil, errs.NewObjectNotFoundError("product", productID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), new(MockNotifier), clock)

	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}

func TestPlaceBidCommandHandler_Handle_BeginFails(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewPlaceBidCommand(kernel.NewUUID(), kernel.NewUUID(), 15000)
	require.NoError(t, err)

	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(errors.New("connection refused")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), new(MockNotifier), clock)

	_, err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Equal(t, errs.KindInternal, errs.KindOf(err))
	uow.AssertNotCalled(t, "Rollback", ctx)
}

func TestPlaceBidCommandHandler_Handle_InvalidCommand(t *testing.T) {
	handler := commands.NewPlaceBidCommandHandler(new(MockUoWFactory), newBidEngine(), new(MockNotifier), clock)

	_, err := handler.Handle(t.Context(), commands.PlaceBidCommand{})

	require.ErrorIs(t, err, commands.ErrPlaceBidCommandIsNotConstructed)
}

func TestPlaceBidCommandHandler_Handle_BidClosedDuringAcceptance(t *testing.T) {
	ctx := t.Context()
	p := newListedProduct(t, 10000)
	cmd, err := commands.NewPlaceBidCommand(p.ID(), kernel.NewUUID(), 10000)
	require.NoError(t, err)

	productRepo := new(MockProductRepository)
	bidRepo := new(MockBidRepository)
	fileUoW := new(MockUoW)
	acceptUoW := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		fileUoW.On("Begin", ctx).Return(nil).Once(),
		fileUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Get", ctx, p.ID()).Return(p, nil).Once(),
		fileUoW.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Add", ctx, mock.AnythingOfType("*bid.Bid")).Return(nil).Once(),
		fileUoW.On("Commit", ctx).Return(nil).Once(),
		fileUoW.On("Rollback", ctx).Return(nil).Once(),

		acceptUoW.On("Begin", ctx).Return(nil).Once(),
		acceptUoW.On("ProductRepository").Return(productRepo).Once(),
		productRepo.On("Update", ctx, p).Return(nil).Once(),
		acceptUoW.On("BidRepository").Return(bidRepo).Once(),
		bidRepo.On("Update", ctx, mock.AnythingOfType("*bid.Bid")).Return(errs.NewVersionIsInvalidError("bid")).Once(),
		acceptUoW.On("Rollback", ctx).Return(nil).Once(),

		notifier.On("Publish", ctx, eventOfType(event.BidFiled)).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(fileUoW).Once()
	factory.On("Create").Return(acceptUoW).Once()

	handler := commands.NewPlaceBidCommandHandler(factory, newBidEngine(), notifier, clock)

	result, err := handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrBidClosedConcurrently)
	assert.NotErrorIs(t, err, commands.ErrProductSoldConcurrently)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.Nil(t, result.Order)
	acceptUoW.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertExpectations(t)
}
