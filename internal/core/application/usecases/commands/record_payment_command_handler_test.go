package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewRecordPaymentCommand(t *testing.T) {
	cmd, err := commands.NewRecordPaymentCommand(kernel.NewUUID(), kernel.NewUUID(), "UPI")
	require.NoError(t, err)
	assert.Equal(t, order.PaymentUPI, cmd.PaymentMethod())

	_, err = commands.NewRecordPaymentCommand(kernel.NewUUID(), kernel.NewUUID(), "cheque")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, errs.KindInvalid, errs.KindOf(err))
}

func TestRecordPaymentCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	o := restoreOrder(t, nil)
	cmd, err := commands.NewRecordPaymentCommand(o.ID(), o.BuyerID(), "card")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		orderRepo.On("Update", ctx, o).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	result, err := commands.NewRecordPaymentCommandHandler(factory).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, order.Paid, result.Status())
	assert.Equal(t, order.PaymentCard, result.PaymentMethod())
	uow.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
}

func TestRecordPaymentCommandHandler_Handle_NotApplicable(t *testing.T) {
	tests := []struct {
		name    string
		order   func(t *testing.T) *order.Order
		buyerID func(o *order.Order) kernel.UUID
	}{
		{
			name:    "someone else's order",
			order:   func(t *testing.T) *order.Order { return restoreOrder(t, nil) },
			buyerID: func(*order.Order) kernel.UUID { return kernel.NewUUID() },
		},
		{
			name:    "already paid",
			order:   func(t *testing.T) *order.Order { return restoreOrder(t, paid) },
			buyerID: func(o *order.Order) kernel.UUID { return o.BuyerID() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := t.Context()
			o := tt.order(t)
			cmd, err := commands.NewRecordPaymentCommand(o.ID(), tt.buyerID(o), "cash")
			require.NoError(t, err)

			orderRepo := new(MockOrderRepository)
			uow := new(MockUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(orderRepo).Once()
			orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			_, err = commands.NewRecordPaymentCommandHandler(factory).Handle(ctx, cmd)

			require.ErrorIs(t, err, order.ErrPaymentNotApplicable)
			assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
			orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", ctx)
		})
	}
}

func TestRecordPaymentCommandHandler_Handle_MissingOrder(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewRecordPaymentCommand(orderID, kernel.NewUUID(), "cash")
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(orderRepo).Once()
	orderRepo.On("Get", ctx, orderID).Return(nil, errs.NewObjectNotFoundError("order", orderID)).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	_, err = commands.NewRecordPaymentCommandHandler(factory).Handle(ctx, cmd)

	assert.Equal(t, errs.KindNotFound, errs.KindOf(err))
}
