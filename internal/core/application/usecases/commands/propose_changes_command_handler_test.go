package commands_test

import (
	"context"
	"testing"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func valueOf(v order.Value) *order.Value {
	return &v
}

func TestProposeChangesCommandHandler_Handle_QuantityIncrease(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Draft)

	h := newHarness()
	h.expectTx(ctx, true)
	h.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	h.amendments.On("GetAllPendingByOrder", ctx, o.ID()).Return([]*amendment.Amendment{}, nil).Once()
	h.amendments.On("CountByNumberPrefix", ctx, "AMD-PO-2024-0001-").Return(int64(0), nil).Once()
	h.amendments.On("Add", ctx, mock.AnythingOfType("*amendment.Amendment")).Return(nil).Once()

	cmd, err := commands.NewProposeChangesCommand(o.ID(), p.buyer, commands.ProposedFields{
		Quantity: valueOf(order.NumberValue(decimal.NewFromInt(1100))),
	}, amendment.ReasonUnknown, amendment.PriorityUnknown, "", nil)
	require.NoError(t, err)
	assert.Equal(t, amendment.TypeQuantityChange, cmd.Type())

	a, err := commands.NewProposeChangesCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, "AMD-PO-2024-0001-001", a.Number().String())
	assert.Equal(t, amendment.StatusPending, a.Status())
	assert.Equal(t, amendment.ReasonBuyerRequest, a.Reason())
	assert.True(t, a.RequiresApprovalFrom().IsEqual(p.seller))
	require.NotNil(t, a.Impact())
	assert.Equal(t, amendment.ImpactModerate, a.Impact().Level())
	assert.True(t, a.FinancialImpact().Equal(decimal.NewFromInt(1000)))
	assert.True(t, o.Quantity().Equal(decimal.NewFromInt(1000)))
	h.assertExpectations(t)
}

func TestProposeChangesCommandHandler_Handle_ConfirmedOrderRejected(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Confirmed)

	h := newHarness()
	h.expectTx(ctx, false)
	h.orders.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()

	cmd, err := commands.NewProposeChangesCommand(o.ID(), p.buyer, commands.ProposedFields{
		DeliveryLocation: valueOf(order.TextValue("Hamburg")),
	}, amendment.ReasonUnknown, amendment.PriorityUnknown, "", nil)
	require.NoError(t, err)

	_, err = commands.NewProposeChangesCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrStatusConflict)
	h.assertExpectations(t)
}

func TestNewProposeChangesCommand_TypeFromFields(t *testing.T) {
	orderID, proposer := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewProposeChangesCommand(orderID, proposer, commands.ProposedFields{
		Quantity:         valueOf(order.NumberValue(decimal.NewFromInt(10))),
		DeliveryLocation: valueOf(order.TextValue("Hamburg")),
		UnitPrice:        valueOf(order.NumberValue(decimal.NewFromInt(9))),
	}, amendment.ReasonUnknown, amendment.PriorityLow, "", nil)

	require.NoError(t, err)
	assert.Equal(t, amendment.TypePriceChange, cmd.Type())
	assert.Len(t, cmd.Changes(), 3)

	_, err = commands.NewProposeChangesCommand(orderID, proposer, commands.ProposedFields{},
		amendment.ReasonUnknown, amendment.PriorityUnknown, "", nil)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
