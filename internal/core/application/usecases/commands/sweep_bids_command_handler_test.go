package commands_test

import (
	"testing"
	"time"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/bid"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func restoreBid(t *testing.T, productID kernel.UUID, createdAt time.Time) *bid.Bid {
	t.Helper()
	b, err := bid.RestoreBid(kernel.NewUUID(), kernel.NewUUID(), productID, 9000, bid.Pending, createdAt, 1)
	require.NoError(t, err)
	return b
}

func TestNewSweepBidsCommand(t *testing.T) {
	cmd, err := commands.NewSweepBidsCommand(time.Hour, 0)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultSweepBatchSize, cmd.BatchSize())

	_, err = commands.NewSweepBidsCommand(0, 10)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestSweepBidsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ttl := 24 * time.Hour

	open := newListedProduct(t, 10000)
	sold := newListedProduct(t, 10000)
	require.NoError(t, sold.MarkSold())

	stale := restoreBid(t, open.ID(), now.Add(-ttl))
	fresh := restoreBid(t, open.ID(), now.Add(-time.Minute))
	outbid := restoreBid(t, sold.ID(), now.Add(-time.Minute))

	cmd, err := commands.NewSweepBidsCommand(ttl, 100)
	require.NoError(t, err)

	bidRepo := new(MockBidRepository)
	productRepo := new(MockProductRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("BidRepository").Return(bidRepo).Once(),
		uow.On("ProductRepository").Return(productRepo).Once(),
		bidRepo.On("GetAllPending", ctx, 100).Return([]*bid.Bid{stale, fresh, outbid}, nil).Once(),
		bidRepo.On("Update", ctx, stale).Return(nil).Once(),
		productRepo.On("Get", ctx, open.ID()).Return(open, nil).Once(),
		productRepo.On("Get", ctx, sold.ID()).Return(sold, nil).Once(),
		bidRepo.On("Update", ctx, outbid).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)
	notifier.On("Publish", ctx, eventOfType(event.BidExpired)).Once()
	notifier.On("Publish", ctx, eventOfType(event.BidRejected)).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewSweepBidsCommandHandler(factory, notifier, clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.SweepBidsResult{Expired: 1, Rejected: 1}, result)
	assert.Equal(t, bid.Expired, stale.Status())
	assert.Equal(t, bid.Pending, fresh.Status())
	assert.Equal(t, bid.Rejected, outbid.Status())
	bidRepo.AssertNotCalled(t, "Update", ctx, fresh)
	productRepo.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestSweepBidsCommandHandler_Handle_ConflictRollsBack(t *testing.T) {
	ctx := t.Context()
	ttl := time.Hour
	p := newListedProduct(t, 10000)
	stale := restoreBid(t, p.ID(), now.Add(-2*ttl))

	cmd, err := commands.NewSweepBidsCommand(ttl, 10)
	require.NoError(t, err)

	bidRepo := new(MockBidRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("BidRepository").Return(bidRepo).Once()
	uow.On("ProductRepository").Return(new(MockProductRepository)).Once()
	bidRepo.On("GetAllPending", ctx, 10).Return([]*bid.Bid{stale}, nil).Once()
	bidRepo.On("Update", ctx, stale).Return(errs.NewVersionIsInvalidError("bid")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewSweepBidsCommandHandler(factory, notifier, clock).Handle(ctx, cmd)

	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	uow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}
