package commands_test

import (
	"context"
	"testing"
	"time"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockAmendmentRepository struct{ mock.Mock }

func (m *MockAmendmentRepository) Add(ctx context.Context, a *amendment.Amendment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAmendmentRepository) Update(ctx context.Context, a *amendment.Amendment) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockAmendmentRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAmendmentRepository) Get(ctx context.Context, id kernel.UUID) (*amendment.Amendment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*amendment.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) GetByNumber(ctx context.Context, n amendment.Number) (*amendment.Amendment, error) {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*amendment.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) GetAllPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*amendment.Amendment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*amendment.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) GetAllPendingExpiredAt(ctx context.Context, at time.Time, limit int) ([]*amendment.Amendment, error) {
	args := m.Called(ctx, at, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*amendment.Amendment), args.Error(1)
}

func (m *MockAmendmentRepository) CountByNumberPrefix(ctx context.Context, prefix string) (int64, error) {
	args := m.Called(ctx, prefix)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAmendmentRepository) List(ctx context.Context, filter ports.AmendmentFilter) (ports.AmendmentPage, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(ports.AmendmentPage), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) AmendmentRepository() ports.AmendmentRepository {
	args := m.Called()
	return args.Get(0).(ports.AmendmentRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// harness wires a unit of work with permissive repository accessors;
// repository method expectations are set per test.
type harness struct {
	orders     *MockOrderRepository
	amendments *MockAmendmentRepository
	uow        *MockUoW
	factory    *MockUoWFactory
	deps       commands.Dependencies
}

func newHarness() *harness {
	h := &harness{
		orders:     new(MockOrderRepository),
		amendments: new(MockAmendmentRepository),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
		deps:       commands.DefaultDependencies(kernel.FixedClock(now)),
	}
	h.factory.On("Create").Return(h.uow).Once()
	h.uow.On("OrderRepository").Return(h.orders).Maybe()
	h.uow.On("AmendmentRepository").Return(h.amendments).Maybe()
	return h
}

func (h *harness) expectTx(ctx context.Context, commit bool) {
	h.uow.On("Begin", ctx).Return(nil).Once()
	if commit {
		h.uow.On("Commit", ctx).Return(nil).Once()
	}
	h.uow.On("Rollback", ctx).Return(nil).Once()
}

func (h *harness) assertExpectations(t *testing.T) {
	t.Helper()
	h.orders.AssertExpectations(t)
	h.amendments.AssertExpectations(t)
	h.uow.AssertExpectations(t)
	h.factory.AssertExpectations(t)
}

type parties struct {
	buyer  kernel.UUID
	seller kernel.UUID
}

func newParties() parties {
	return parties{buyer: kernel.NewUUID(), seller: kernel.NewUUID()}
}

func (p parties) order(t *testing.T, status order.Status) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), "PO-2024-0001", p.buyer, p.seller, order.Terms{
		Quantity:         decimal.NewFromInt(1000),
		UnitPrice:        decimal.RequireFromString("10.00"),
		DeliveryDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DeliveryLocation: "Rotterdam",
	}, nil, status)
	require.NoError(t, err)
	return o
}

// pending builds a stored pending price change proposed by proposer.
func pending(t *testing.T, o *order.Order, proposer kernel.UUID, expiresAt *time.Time) *amendment.Amendment {
	t.Helper()
	approver, err := o.CounterpartyOf(proposer)
	require.NoError(t, err)
	c, err := amendment.ChangeFromOrder(o, order.FieldUnitPrice, order.NumberValue(decimal.NewFromInt(12)), "")
	require.NoError(t, err)
	number, err := amendment.NewNumber(o.Number(), 1)
	require.NoError(t, err)

	a, err := amendment.Restore(amendment.State{
		Proposal: amendment.Proposal{
			ID:                   kernel.NewUUID(),
			OrderID:              o.ID(),
			Number:               number,
			Type:                 amendment.TypePriceChange,
			Reason:               amendment.ReasonPriceAdjustment,
			Priority:             amendment.PriorityMedium,
			Changes:              []amendment.Change{c},
			ProposedBy:           proposer,
			RequiresApprovalFrom: approver,
			ExpiresAt:            expiresAt,
		},
		Status:     amendment.StatusPending,
		ProposedAt: now.Add(-2 * time.Hour),
		CreatedAt:  now.Add(-2 * time.Hour),
		UpdatedAt:  now.Add(-2 * time.Hour),
		Version:    1,
	})
	require.NoError(t, err)
	return a
}

func eventNames(a *amendment.Amendment) []string {
	var names []string
	for _, e := range a.PullDomainEvents() {
		names = append(names, e.EventName())
	}
	return names
}
