package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/agent"
	"marketplace/internal/core/domain/model/event"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/services"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newMatcher() services.AgentMatcher {
	return services.NewAgentMatcher(services.DefaultSearchRadiusMeters, services.MaxSearchRadiusMeters)
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	a := restoreAgent(t, true)
	o := restoreOrder(t, paid)
	cmd, err := commands.NewClaimOrderCommand(a.ID(), o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("AgentRepository").Return(agentRepo).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		agentRepo.On("Update", ctx, a).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		notifier.On("Publish", ctx, eventOfType(event.OrderClaimed)).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewClaimOrderCommandHandler(factory, newMatcher(), notifier, clock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, o.ID(), result.OrderID)
	require.NotNil(t, result.PickupCode)
	assert.Equal(t, "654321", result.PickupCode.Value())
	assert.False(t, a.IsAvailable())
	assert.True(t, o.AgentID().IsEqual(a.ID()))
	uow.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_AlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	a := restoreAgent(t, true)
	first := kernel.NewUUID()
	o := restoreOrder(t, func(s *order.Snapshot) {
		paid(s)
		s.AgentID = &first
	})
	cmd, err := commands.NewClaimOrderCommand(a.ID(), o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewClaimOrderCommandHandler(factory, newMatcher(), new(MockNotifier), clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrOrderNotClaimable)
	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	assert.True(t, a.IsAvailable())
	agentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_ConcurrentWriteLoses(t *testing.T) {
	ctx := t.Context()
	a := restoreAgent(t, true)
	o := restoreOrder(t, paid)
	cmd, err := commands.NewClaimOrderCommand(a.ID(), o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	notifier := new(MockNotifier)

	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	orderRepo.On("Update", ctx, o).Return(errs.NewVersionIsInvalidError("order")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewClaimOrderCommandHandler(factory, newMatcher(), notifier, clock).Handle(ctx, cmd)

	assert.Equal(t, errs.KindConflict, errs.KindOf(err))
	uow.AssertNotCalled(t, "Commit", ctx)
	notifier.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_UnknownAgentIsUnavailable(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(agentID, kernel.NewUUID())
	require.NoError(t, err)

	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("OrderRepository").Return(new(MockOrderRepository)).Once()
	agentRepo.On("Get", ctx, agentID).Return(nil, errs.NewObjectNotFoundError("agent", agentID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewClaimOrderCommandHandler(factory, newMatcher(), new(MockNotifier), clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, agent.ErrAgentUnavailable)
	assert.Equal(t, errs.KindUnavailable, errs.KindOf(err))
}

func TestClaimOrderCommandHandler_Handle_BusyAgent(t *testing.T) {
	ctx := t.Context()
	a := restoreAgent(t, false)
	o := restoreOrder(t, paid)
	cmd, err := commands.NewClaimOrderCommand(a.ID(), o.ID())
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once()
	orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewClaimOrderCommandHandler(factory, newMatcher(), new(MockNotifier), clock).Handle(ctx, cmd)

	require.ErrorIs(t, err, agent.ErrAgentUnavailable)
	assert.Nil(t, o.AgentID())
}

func TestClaimOrderCommandHandler_Handle_OrderMissing(t *testing.T) {
	ctx := t.Context()
	a := restoreAgent(t, true)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(a.ID(), orderID)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	agentRepo := new(MockAgentRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("AgentRepository").Return(agentRepo).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once()
	orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewClaimOrderCommandHandler(factory, newMatcher(), new(MockNotifier), clock).Handle(ctx, cmd)

	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
	assert.True(t, a.IsAvailable())
}
