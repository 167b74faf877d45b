package services_test

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

type orderFixture struct {
	buyer  kernel.UUID
	seller kernel.UUID
}

func newParties() orderFixture {
	return orderFixture{buyer: kernel.NewUUID(), seller: kernel.NewUUID()}
}

func (f orderFixture) order(t *testing.T, status order.Status, received *decimal.Decimal) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "PO-2024-0001", f.buyer, f.seller, order.Terms{
		Quantity:         decimal.NewFromInt(1000),
		UnitPrice:        decimal.RequireFromString("10.00"),
		DeliveryDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DeliveryLocation: "Rotterdam",
	}, received, status)
	require.NoError(t, err)
	return o
}

func change(t *testing.T, o *order.Order, field order.Field, v order.Value) amendment.Change {
	t.Helper()
	c, err := amendment.ChangeFromOrder(o, field, v, "")
	require.NoError(t, err)
	return c
}

func num(s string) order.Value {
	return order.NumberValue(decimal.RequireFromString(s))
}

func pendingAmendment(
	t *testing.T,
	o *order.Order,
	proposer kernel.UUID,
	typ amendment.Type,
	c amendment.Change,
	expiresAt *time.Time,
) *amendment.Amendment {
	t.Helper()
	approver, err := o.CounterpartyOf(proposer)
	require.NoError(t, err)
	number, err := amendment.NewNumber(o.Number(), 1)
	require.NoError(t, err)

	a, err := amendment.Propose(amendment.Proposal{
		ID:                   kernel.NewUUID(),
		OrderID:              o.ID(),
		Number:               number,
		Type:                 typ,
		Reason:               amendment.ReasonBuyerRequest,
		Priority:             amendment.PriorityMedium,
		Changes:              []amendment.Change{c},
		ProposedBy:           proposer,
		RequiresApprovalFrom: approver,
		ExpiresAt:            expiresAt,
	}, now.Add(-time.Hour))
	require.NoError(t, err)
	return a
}
