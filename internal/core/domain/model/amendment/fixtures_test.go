package amendment_test

import (
	"testing"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var proposedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func priceChange(t *testing.T) amendment.Change {
	t.Helper()
	c, err := amendment.NewChange(
		order.FieldUnitPrice,
		order.NumberValue(decimal.RequireFromString("10.00")),
		order.NumberValue(decimal.RequireFromString("12.00")),
		"raw material surcharge",
	)
	require.NoError(t, err)
	return c
}

func validProposal(t *testing.T) amendment.Proposal {
	t.Helper()
	number, err := amendment.NewNumber("PO-2024-0001", 1)
	require.NoError(t, err)

	return amendment.Proposal{
		ID:                   kernel.NewUUID(),
		OrderID:              kernel.NewUUID(),
		Number:               number,
		Type:                 amendment.TypePriceChange,
		Reason:               amendment.ReasonPriceAdjustment,
		Priority:             amendment.PriorityMedium,
		Changes:              []amendment.Change{priceChange(t)},
		ProposedBy:           kernel.NewUUID(),
		RequiresApprovalFrom: kernel.NewUUID(),
		Notes:                "  supplier cost increase ",
		SupportingDocuments:  []string{"doc-1"},
	}
}

func proposeValid(t *testing.T, mutate ...func(*amendment.Proposal)) *amendment.Amendment {
	t.Helper()
	p := validProposal(t)
	for _, m := range mutate {
		m(&p)
	}
	a, err := amendment.Propose(p, proposedAt)
	require.NoError(t, err)
	return a
}

func expiringIn(d time.Duration) func(*amendment.Proposal) {
	return func(p *amendment.Proposal) {
		at := proposedAt.Add(d)
		p.ExpiresAt = &at
	}
}
