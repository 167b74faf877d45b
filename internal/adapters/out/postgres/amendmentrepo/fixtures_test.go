package amendmentrepo_test

import (
	"testing"
	"time"

	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	buyer  kernel.UUID
	seller kernel.UUID
	order  *order.Order
}

func newFixture(t *testing.T, orderNumber string) fixture {
	t.Helper()
	f := fixture{buyer: kernel.NewUUID(), seller: kernel.NewUUID()}
	o, err := order.RestoreOrder(kernel.NewUUID(), orderNumber, f.buyer, f.seller, order.Terms{
		Quantity:         decimal.NewFromInt(1000),
		UnitPrice:        decimal.RequireFromString("10.00"),
		DeliveryDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DeliveryLocation: "Rotterdam",
	}, nil, order.Pending)
	require.NoError(t, err)
	f.order = o
	return f
}

type params struct {
	sequence   int
	status     amendment.Status
	proposedAt time.Time
	expiresAt  *time.Time
	version    int
}

// amendment restores a price change proposed by the seller.
func (f fixture) amendment(t *testing.T, s params) *amendment.Amendment {
	t.Helper()
	price, err := amendment.ChangeFromOrder(f.order, order.FieldUnitPrice, order.NumberValue(decimal.NewFromInt(12)), "market")
	require.NoError(t, err)
	number, err := amendment.NewNumber(f.order.Number(), s.sequence)
	require.NoError(t, err)

	financial := decimal.NewFromInt(2000)
	impact, err := amendment.NewImpactAssessment(amendment.ImpactFacts{
		Level:           amendment.ImpactSignificant,
		FinancialImpact: &financial,
		AffectsPricing:  true,
		RiskFactors:     []string{"price increase above 10%"},
		AssessedAt:      s.proposedAt,
	})
	require.NoError(t, err)

	a, err := amendment.Restore(amendment.State{
		Proposal: amendment.Proposal{
			ID:                   kernel.NewUUID(),
			OrderID:              f.order.ID(),
			Number:               number,
			Type:                 amendment.TypePriceChange,
			Reason:               amendment.ReasonPriceAdjustment,
			Priority:             amendment.PriorityMedium,
			Changes:              []amendment.Change{price},
			ProposedBy:           f.seller,
			RequiresApprovalFrom: f.buyer,
			Notes:                "raw material costs",
			SupportingDocuments:  []string{"quote.pdf", "index.xlsx"},
			ExpiresAt:            s.expiresAt,
			Impact:               impact,
		},
		Status:     s.status,
		ProposedAt: s.proposedAt,
		CreatedAt:  s.proposedAt,
		UpdatedAt:  s.proposedAt,
		Version:    s.version,
	})
	require.NoError(t, err)
	return a
}

func at(t time.Time) *time.Time {
	return &t
}
