package amendment_test

import (
	"testing"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"
	"amendments/internal/pkg/optional"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropose(t *testing.T) {
	t.Run("should open a pending amendment", func(t *testing.T) {
		p := validProposal(t)

		a, err := amendment.Propose(p, proposedAt)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, amendment.StatusPending, a.Status())
		assert.Equal(t, "AMD-PO-2024-0001-001", a.Number().String())
		assert.Equal(t, proposedAt, a.ProposedAt())
		assert.Equal(t, proposedAt, a.CreatedAt())
		assert.Equal(t, "supplier cost increase", a.Notes())
		assert.Nil(t, a.ExpiresAt())
		assert.False(t, a.RequiresERPSync())
		assert.Nil(t, a.ERPSyncStatus())
		assert.Zero(t, a.Version())
		assert.True(t, a.IsParty(p.ProposedBy))
		assert.True(t, a.IsParty(p.RequiresApprovalFrom))
		assert.False(t, a.IsParty(kernel.NewUUID()))

		events := a.PullDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, amendment.EventProposed, events[0].EventName())
		assert.True(t, events[0].AggregateID().IsEqual(a.ID()))
		assert.Empty(t, a.PullDomainEvents())
	})

	t.Run("should require at least one change", func(t *testing.T) {
		p := validProposal(t)
		p.Changes = nil

		_, err := amendment.Propose(p, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should reject duplicate fields", func(t *testing.T) {
		p := validProposal(t)
		p.Changes = append(p.Changes, priceChange(t))

		_, err := amendment.Propose(p, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "changed more than once")
	})

	t.Run("should reject fields the type cannot carry", func(t *testing.T) {
		p := validProposal(t)
		p.Type = amendment.TypeReceivedQuantityAdjustment

		_, err := amendment.Propose(p, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "received_quantity_adjustment amendments cannot change unitPrice")
	})

	t.Run("should reject self approval", func(t *testing.T) {
		p := validProposal(t)
		p.RequiresApprovalFrom = p.ProposedBy

		_, err := amendment.Propose(p, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "approver must differ from proposer")
	})

	t.Run("should reject an expiration in the past", func(t *testing.T) {
		p := validProposal(t)
		expiringIn(-time.Minute)(&p)

		_, err := amendment.Propose(p, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should join classification errors", func(t *testing.T) {
		p := validProposal(t)
		p.Type = amendment.TypeUnknown
		p.Reason = amendment.ReasonUnknown
		p.Number = amendment.Number{}

		_, err := amendment.Propose(p, proposedAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "amendment type")
		assert.Contains(t, err.Error(), "amendment reason")
		assert.Contains(t, err.Error(), "amendment number")
	})
}

func TestAmendment_Expiration(t *testing.T) {
	a := proposeValid(t, expiringIn(24*time.Hour))
	deadline := proposedAt.Add(24 * time.Hour)

	assert.False(t, a.IsExpired(deadline))
	assert.True(t, a.CanBeApproved(deadline))
	assert.Equal(t, amendment.StatusPending, a.EffectiveStatus(deadline))

	later := deadline.Add(time.Nanosecond)
	assert.True(t, a.IsExpired(later))
	assert.False(t, a.CanBeApproved(later))
	assert.Equal(t, amendment.StatusExpired, a.EffectiveStatus(later))
	assert.Equal(t, amendment.StatusPending, a.Status())

	never := proposeValid(t)
	assert.False(t, never.IsExpired(proposedAt.Add(100*365*24*time.Hour)))
}

func TestAmendment_Descriptions(t *testing.T) {
	a := proposeValid(t)

	assert.Equal(t, "unitPrice: 10 → 12", a.PrimaryChangeDescription())
	assert.True(t, a.FinancialImpact().IsZero())

	impact := decimal.NewFromInt(2000)
	assessment, err := amendment.NewImpactAssessment(amendment.ImpactFacts{
		Level:           amendment.ImpactModerate,
		FinancialImpact: &impact,
	})
	require.NoError(t, err)

	assessed := proposeValid(t, func(p *amendment.Proposal) { p.Impact = assessment })
	assert.True(t, assessed.FinancialImpact().Equal(impact))
}

func TestAmendment_Approve(t *testing.T) {
	t.Run("should approve then apply", func(t *testing.T) {
		a := proposeValid(t)
		at := proposedAt.Add(time.Hour)

		o, err := order.RestoreOrder(a.OrderID(), "PO-2024-0001", a.ProposedBy(), a.RequiresApprovalFrom(), order.Terms{
			Quantity:  decimal.NewFromInt(1000),
			UnitPrice: decimal.RequireFromString("10.00"),
		}, nil, order.Pending)
		require.NoError(t, err)

		require.NoError(t, a.Approve(" looks fine ", at))
		assert.Equal(t, amendment.StatusApproved, a.Status())
		assert.Equal(t, "looks fine", a.ApprovalNotes())
		assert.True(t, a.CanBeApplied(at))

		require.NoError(t, a.ApplyTo(o, at))
		require.NoError(t, a.MarkApplied(at))

		assert.True(t, o.UnitPrice().Equal(decimal.NewFromInt(12)))
		assert.Equal(t, amendment.StatusApplied, a.Status())
		require.NotNil(t, a.AppliedAt())
		assert.Equal(t, at, *a.AppliedAt())
		assert.True(t, a.Status().IsTerminal())

		names := eventNames(a)
		assert.Equal(t, []string{amendment.EventProposed, amendment.EventApproved, amendment.EventApplied}, names)
	})

	t.Run("should fail once expired", func(t *testing.T) {
		a := proposeValid(t, expiringIn(24*time.Hour))

		err := a.Approve("", proposedAt.Add(25*time.Hour))

		require.ErrorIs(t, err, errs.ErrExpired)
		var expired *errs.ExpiredError
		require.ErrorAs(t, err, &expired)
		assert.Equal(t, "AMD-PO-2024-0001-001", expired.Reference)
		assert.Equal(t, amendment.StatusPending, a.Status())
	})

	t.Run("should not leave terminal states", func(t *testing.T) {
		a := proposeValid(t)
		require.NoError(t, a.Reject("no", proposedAt))

		err := a.Approve("", proposedAt)

		require.ErrorIs(t, err, errs.ErrStatusConflict)
		assert.Contains(t, err.Error(), "no further transitions are allowed")
	})
}

func TestAmendment_ApplyTo_Guards(t *testing.T) {
	a := proposeValid(t)
	o, err := order.NewOrder(kernel.NewUUID(), "PO-X", a.ProposedBy(), a.RequiresApprovalFrom(), order.Terms{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	require.ErrorIs(t, a.ApplyTo(o, proposedAt), errs.ErrValueIsInvalid)

	same, err := order.RestoreOrder(a.OrderID(), "PO-2024-0001", a.ProposedBy(), a.RequiresApprovalFrom(), order.Terms{
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.NewFromInt(1),
	}, nil, order.Draft)
	require.NoError(t, err)

	err = a.ApplyTo(same, proposedAt)
	require.ErrorIs(t, err, errs.ErrStatusConflict)
	assert.Contains(t, err.Error(), "allowed statuses are approved")
}

func TestAmendment_Reject(t *testing.T) {
	a := proposeValid(t)

	require.NoError(t, a.Reject("too expensive", proposedAt.Add(time.Minute)))

	assert.Equal(t, amendment.StatusRejected, a.Status())
	require.NotNil(t, a.ApprovedAt())
	assert.Equal(t, "too expensive", a.ApprovalNotes())
	require.ErrorIs(t, a.MarkApplied(proposedAt), errs.ErrStatusConflict)
}

func TestAmendment_Cancel(t *testing.T) {
	a := proposeValid(t)
	require.NoError(t, a.Cancel(proposedAt))
	assert.Equal(t, amendment.StatusCancelled, a.Status())
	require.ErrorIs(t, a.Cancel(proposedAt), errs.ErrStatusConflict)

	expiring := proposeValid(t, expiringIn(time.Hour))
	require.ErrorIs(t, expiring.Cancel(proposedAt.Add(2*time.Hour)), errs.ErrExpired)
}

func TestAmendment_Expire(t *testing.T) {
	a := proposeValid(t, expiringIn(time.Hour))

	require.ErrorIs(t, a.Expire(proposedAt), errs.ErrBusinessRuleViolated)
	require.NoError(t, a.Expire(proposedAt.Add(2*time.Hour)))
	assert.Equal(t, amendment.StatusExpired, a.Status())
	assert.Contains(t, eventNames(a), amendment.EventExpired)
}

func TestAmendment_Revise(t *testing.T) {
	t.Run("should apply only provided fields", func(t *testing.T) {
		a := proposeValid(t, expiringIn(24*time.Hour))
		at := proposedAt.Add(time.Hour)

		err := a.Revise(amendment.Revision{
			Priority:  optional.Of(amendment.PriorityUrgent),
			ExpiresAt: optional.Null[time.Time](),
		}, at)

		require.NoError(t, err)
		assert.Equal(t, amendment.PriorityUrgent, a.Priority())
		assert.Nil(t, a.ExpiresAt())
		assert.Equal(t, "supplier cost increase", a.Notes())
		assert.Equal(t, []string{"doc-1"}, a.SupportingDocuments())
		assert.Equal(t, at, a.UpdatedAt())
		assert.Contains(t, eventNames(a), amendment.EventRevised)
	})

	t.Run("should clear notes and documents", func(t *testing.T) {
		a := proposeValid(t)

		require.NoError(t, a.Revise(amendment.Revision{
			Notes:               optional.Null[string](),
			SupportingDocuments: optional.Of([]string{}),
		}, proposedAt))

		assert.Empty(t, a.Notes())
		assert.Empty(t, a.SupportingDocuments())
	})

	t.Run("empty revision is a no-op", func(t *testing.T) {
		a := proposeValid(t)
		_ = a.PullDomainEvents()

		require.NoError(t, a.Revise(amendment.Revision{}, proposedAt.Add(time.Hour)))
		assert.Equal(t, proposedAt, a.UpdatedAt())
		assert.Empty(t, a.PullDomainEvents())
	})

	t.Run("should reject null priority", func(t *testing.T) {
		a := proposeValid(t)

		err := a.Revise(amendment.Revision{Priority: optional.Null[amendment.Priority]()}, proposedAt)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should fail when expired or decided", func(t *testing.T) {
		expiring := proposeValid(t, expiringIn(time.Hour))
		err := expiring.Revise(amendment.Revision{Notes: optional.Of("x")}, proposedAt.Add(2*time.Hour))
		require.ErrorIs(t, err, errs.ErrExpired)

		rejected := proposeValid(t)
		require.NoError(t, rejected.Reject("", proposedAt))
		err = rejected.Revise(amendment.Revision{Notes: optional.Of("x")}, proposedAt)
		require.ErrorIs(t, err, errs.ErrStatusConflict)
	})
}

func TestRestore(t *testing.T) {
	p := validProposal(t)
	approvedAt := proposedAt.Add(time.Hour)

	a, err := amendment.Restore(amendment.State{
		Proposal:      p,
		Status:        amendment.StatusApproved,
		ProposedAt:    proposedAt,
		ApprovedAt:    &approvedAt,
		ApprovalNotes: "ok",
		CreatedAt:     proposedAt,
		UpdatedAt:     approvedAt,
		Version:       3,
	})

	require.NoError(t, err)
	assert.Equal(t, amendment.StatusApproved, a.Status())
	assert.Equal(t, 3, a.Version())
	assert.Empty(t, a.PullDomainEvents())

	a.IncrementVersion()
	assert.Equal(t, 4, a.Version())

	_, err = amendment.Restore(amendment.State{Proposal: p})
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAmendment_Validate_NotConstructed(t *testing.T) {
	var a *amendment.Amendment

	require.ErrorIs(t, a.Validate(), amendment.ErrAmendmentIsNotConstructed)
}

func eventNames(a *amendment.Amendment) []string {
	var names []string
	for _, e := range a.PullDomainEvents() {
		names = append(names, e.EventName())
	}
	return names
}
