package commands_test

import (
	"context"
	"testing"
	"time"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/optional"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateAmendmentCommandHandler_Handle_Revises(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	a := pending(t, o, p.seller, nil)

	h := newHarness()
	h.expectTx(ctx, true)
	h.amendments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	h.amendments.On("Update", ctx, a).Return(nil).Once()

	cmd, err := commands.NewUpdateAmendmentCommand(a.ID(), p.seller, commands.AmendmentPatch{
		Priority:            optional.Of(amendment.PriorityUrgent),
		Notes:               optional.Of("  updated quote attached "),
		SupportingDocuments: optional.Of([]string{"quote-v2.pdf", ""}),
		ExpiresInHours:      optional.Of(48),
	})
	require.NoError(t, err)

	got, err := commands.NewUpdateAmendmentCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, amendment.PriorityUrgent, got.Priority())
	assert.Equal(t, "updated quote attached", got.Notes())
	assert.Equal(t, []string{"quote-v2.pdf"}, got.SupportingDocuments())
	require.NotNil(t, got.ExpiresAt())
	assert.Equal(t, now.Add(48*time.Hour), *got.ExpiresAt())
	assert.Equal(t, now, got.UpdatedAt())
	assert.Equal(t, []string{amendment.EventRevised}, eventNames(got))
	h.assertExpectations(t)
}

func TestUpdateAmendmentCommandHandler_Handle_NullExpirationClears(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	at := now.Add(time.Hour)
	a := pending(t, o, p.seller, &at)

	h := newHarness()
	h.expectTx(ctx, true)
	h.amendments.On("Get", ctx, a.ID()).Return(a, nil).Once()
	h.amendments.On("Update", ctx, a).Return(nil).Once()

	cmd, err := commands.NewUpdateAmendmentCommand(a.ID(), p.seller, commands.AmendmentPatch{
		ExpiresInHours: optional.Null[int](),
	})
	require.NoError(t, err)

	got, err := commands.NewUpdateAmendmentCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Nil(t, got.ExpiresAt())
	assert.Equal(t, amendment.PriorityMedium, got.Priority())
	h.assertExpectations(t)
}

func TestUpdateAmendmentCommandHandler_Handle_OnlyProposer(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	a := pending(t, o, p.seller, nil)

	h := newHarness()
	h.expectTx(ctx, false)
	h.amendments.On("Get", ctx, a.ID()).Return(a, nil).Once()

	cmd, err := commands.NewUpdateAmendmentCommand(a.ID(), p.buyer, commands.AmendmentPatch{
		Notes: optional.Of("hijack"),
	})
	require.NoError(t, err)

	_, err = commands.NewUpdateAmendmentCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrPermissionDenied)
	assert.Empty(t, a.Notes())
	h.assertExpectations(t)
}

func TestUpdateAmendmentCommandHandler_Handle_Expired(t *testing.T) {
	ctx := context.Background()
	p := newParties()
	o := p.order(t, order.Pending)
	lapsed := now.Add(-time.Second)
	a := pending(t, o, p.seller, &lapsed)

	h := newHarness()
	h.expectTx(ctx, false)
	h.amendments.On("Get", ctx, a.ID()).Return(a, nil).Once()

	cmd, err := commands.NewUpdateAmendmentCommand(a.ID(), p.seller, commands.AmendmentPatch{
		Priority: optional.Of(amendment.PriorityHigh),
	})
	require.NoError(t, err)

	_, err = commands.NewUpdateAmendmentCommandHandler(h.factory, h.deps).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrExpired)
	h.assertExpectations(t)
}

func TestNewUpdateAmendmentCommand_Validation(t *testing.T) {
	id, company := kernel.NewUUID(), kernel.NewUUID()

	_, err := commands.NewUpdateAmendmentCommand(id, company, commands.AmendmentPatch{ExpiresInHours: optional.Of(0)})
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewUpdateAmendmentCommand(id, company, commands.AmendmentPatch{
		Priority: optional.Null[amendment.Priority](),
	})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	cmd, err := commands.NewUpdateAmendmentCommand(id, company, commands.AmendmentPatch{})
	require.NoError(t, err)
	assert.False(t, cmd.Patch().Notes.IsSet())
}
