package commands_test

import (
	"context"
	"testing"
	"time"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireAmendmentsCommandHandler_Handle(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	lapsed := now.Add(-time.Minute)
	first := pending(t, o, p.seller, &lapsed)
	second := pending(t, o, p.buyer, &lapsed)

	h := newHarness()
	h.expectTx(ctx, true)
	h.amendments.On("GetAllPendingExpiredAt", ctx, now, 50).
		Return([]*amendment.Amendment{first, second}, nil).Once()
	h.amendments.On("Update", ctx, mock.AnythingOfType("*amendment.Amendment")).Return(nil).Twice()

	cmd, err := commands.NewExpireAmendmentsCommand(50)
	require.NoError(t, err)

	n, err := commands.NewExpireAmendmentsCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, amendment.StatusExpired, first.Status())
	assert.Equal(t, amendment.StatusExpired, second.Status())
	assert.Equal(t, []string{amendment.EventExpired}, eventNames(first))
	h.assertExpectations(t)
}

func TestExpireAmendmentsCommandHandler_Handle_NotYetDue(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	later := now.Add(time.Hour)
	a := pending(t, o, p.seller, &later)

	h := newHarness()
	h.expectTx(ctx, false)
	h.amendments.On("GetAllPendingExpiredAt", ctx, now, 10).Return([]*amendment.Amendment{a}, nil).Once()

	cmd, err := commands.NewExpireAmendmentsCommand(10)
	require.NoError(t, err)

	_, err = commands.NewExpireAmendmentsCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrBusinessRuleViolated)
	h.uow.AssertNotCalled(t, "Commit", mock.Anything)
	h.assertExpectations(t)
}

func TestNewExpireAmendmentsCommand_Validation(t *testing.T) {
	_, err := commands.NewExpireAmendmentsCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
