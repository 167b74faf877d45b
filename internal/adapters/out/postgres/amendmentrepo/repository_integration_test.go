package amendmentrepo_test

import (
	"context"
	"testing"
	"time"

	"amendments/internal/adapters/out/postgres/amendmentrepo"
	"amendments/internal/adapters/out/postgres/pgtest"
	"amendments/internal/core/domain/model/amendment"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/ports"
	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// AmendmentRepositoryIntegrationTestSuite runs the amendment repository against a real PostgreSQL.
type AmendmentRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *amendmentrepo.GormAmendmentRepository
}

func (suite *AmendmentRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = amendmentrepo.NewGormAmendmentRepository(database.DB, nil)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) add(f fixture, s params) *amendment.Amendment {
	a := f.amendment(suite.T(), s)
	suite.Require().NoError(suite.repository.Add(context.Background(), a))
	return a
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	a := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now, expiresAt: at(now.Add(24 * time.Hour))})

	stored, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)

	suite.Equal("AMD-PO-2024-0001-001", stored.Number().String())
	suite.Equal(amendment.TypePriceChange, stored.Type())
	suite.Equal(amendment.ReasonPriceAdjustment, stored.Reason())
	suite.Equal(amendment.PriorityMedium, stored.Priority())
	suite.Equal(amendment.StatusPending, stored.Status())
	suite.True(f.seller.IsEqual(stored.ProposedBy()))
	suite.True(f.buyer.IsEqual(stored.RequiresApprovalFrom()))
	suite.True(now.Equal(stored.ProposedAt()))
	suite.Require().NotNil(stored.ExpiresAt())
	suite.True(now.Add(24 * time.Hour).Equal(*stored.ExpiresAt()))
	suite.Equal("raw material costs", stored.Notes())
	suite.Equal([]string{"quote.pdf", "index.xlsx"}, stored.SupportingDocuments())
	suite.Equal(0, stored.Version())

	suite.Require().Len(stored.Changes(), 1)
	change := stored.Changes()[0]
	suite.Equal("unitPrice: 10 → 12", change.Description())
	suite.Equal("market", change.Reason())

	suite.Require().NotNil(stored.Impact())
	suite.Equal(amendment.ImpactSignificant, stored.Impact().Level())
	financial, ok := stored.Impact().FinancialImpact()
	suite.True(ok)
	suite.True(decimal.NewFromInt(2000).Equal(financial))
	suite.True(stored.Impact().AffectsPricing())
	suite.Equal([]string{"price increase above 10%"}, stored.Impact().RiskFactors())
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestAddDuplicateNumber() {
	f := newFixture(suite.T(), "PO-2024-0001")
	suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	err := suite.repository.Add(context.Background(), f.amendment(suite.T(), params{
		sequence: 1, status: amendment.StatusPending, proposedAt: now,
	}))
	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	a := suite.add(f, params{sequence: 2, status: amendment.StatusPending, proposedAt: now})

	stored, err := suite.repository.GetByNumber(ctx, a.Number())
	suite.Require().NoError(err)
	suite.True(a.ID().IsEqual(stored.ID()))

	missing, err := amendment.NewNumber("PO-2024-0001", 9)
	suite.Require().NoError(err)
	_, err = suite.repository.GetByNumber(ctx, missing)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestUpdateWithVersionCheck() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	a := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	stale, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.Approve("ok", now.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, a))
	suite.Equal(1, a.Version())

	stored, err := suite.repository.Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Equal(amendment.StatusApproved, stored.Status())
	suite.Equal("ok", stored.ApprovalNotes())
	suite.Require().NotNil(stored.ApprovedAt())
	suite.Equal(1, stored.Version())

	suite.Require().NoError(stale.Cancel(now.Add(time.Hour)))
	err = suite.repository.Update(ctx, stale)
	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestDeleteRemovesChanges() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	a := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	suite.Require().NoError(suite.repository.Delete(ctx, a.ID()))

	_, err := suite.repository.Get(ctx, a.ID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)

	var changes int64
	suite.Require().NoError(suite.database.DB.Model(&amendmentrepo.ChangeDTO{}).Count(&changes).Error)
	suite.Zero(changes)

	suite.ErrorIs(suite.repository.Delete(ctx, a.ID()), errs.ErrObjectNotFound)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestGetAllPendingByOrder() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	other := newFixture(suite.T(), "PO-2024-0002")

	first := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now.Add(-2 * time.Hour)})
	second := suite.add(f, params{sequence: 2, status: amendment.StatusPending, proposedAt: now.Add(-time.Hour), expiresAt: at(now.Add(-time.Minute))})
	suite.add(f, params{sequence: 3, status: amendment.StatusRejected, proposedAt: now})
	suite.add(other, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	pending, err := suite.repository.GetAllPendingByOrder(ctx, f.order.ID())
	suite.Require().NoError(err)
	suite.Require().Len(pending, 2)
	suite.True(first.ID().IsEqual(pending[0].ID()))
	suite.True(second.ID().IsEqual(pending[1].ID()))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestGetAllPendingExpiredAt() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")

	oldest := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now.Add(-72 * time.Hour), expiresAt: at(now.Add(-48 * time.Hour))})
	suite.add(f, params{sequence: 2, status: amendment.StatusPending, proposedAt: now.Add(-48 * time.Hour), expiresAt: at(now.Add(-time.Hour))})
	suite.add(f, params{sequence: 3, status: amendment.StatusPending, proposedAt: now, expiresAt: at(now.Add(time.Hour))})
	suite.add(f, params{sequence: 4, status: amendment.StatusPending, proposedAt: now})
	suite.add(f, params{sequence: 5, status: amendment.StatusRejected, proposedAt: now, expiresAt: at(now.Add(-time.Hour))})

	overdue, err := suite.repository.GetAllPendingExpiredAt(ctx, now, 10)
	suite.Require().NoError(err)
	suite.Len(overdue, 2)

	limited, err := suite.repository.GetAllPendingExpiredAt(ctx, now, 1)
	suite.Require().NoError(err)
	suite.Require().Len(limited, 1)
	suite.True(oldest.ID().IsEqual(limited[0].ID()))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestCountByNumberPrefix() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO_2024")
	lookalike := newFixture(suite.T(), "PO12024")

	suite.add(f, params{sequence: 1, status: amendment.StatusRejected, proposedAt: now})
	suite.add(f, params{sequence: 2, status: amendment.StatusPending, proposedAt: now})
	suite.add(lookalike, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	count, err := suite.repository.CountByNumberPrefix(ctx, amendment.NumberPrefix("PO_2024"))
	suite.Require().NoError(err)
	suite.Equal(int64(2), count)

	count, err = suite.repository.CountByNumberPrefix(ctx, amendment.NumberPrefix("PO-9999"))
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestListScopesToCompany() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	other := newFixture(suite.T(), "PO-2024-0002")

	suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now.Add(-time.Hour)})
	suite.add(f, params{sequence: 2, status: amendment.StatusRejected, proposedAt: now})
	suite.add(other, params{sequence: 1, status: amendment.StatusPending, proposedAt: now})

	page, err := suite.repository.List(ctx, ports.AmendmentFilter{CompanyID: f.buyer, Now: now, Page: 1, Limit: 20})
	suite.Require().NoError(err)
	suite.Equal(int64(2), page.TotalCount)
	suite.Require().Len(page.Items, 2)
	suite.Equal("AMD-PO-2024-0001-002", page.Items[0].Number().String())
	suite.Equal("AMD-PO-2024-0001-001", page.Items[1].Number().String())

	page, err = suite.repository.List(ctx, ports.AmendmentFilter{CompanyID: kernel.NewUUID(), Now: now})
	suite.Require().NoError(err)
	suite.Zero(page.TotalCount)
	suite.Empty(page.Items)
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestListByEffectiveStatus() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")

	open := suite.add(f, params{sequence: 1, status: amendment.StatusPending, proposedAt: now, expiresAt: at(now.Add(time.Hour))})
	lapsed := suite.add(f, params{sequence: 2, status: amendment.StatusPending, proposedAt: now.Add(-2 * time.Hour), expiresAt: at(now.Add(-time.Hour))})
	swept := suite.add(f, params{sequence: 3, status: amendment.StatusExpired, proposedAt: now.Add(-3 * time.Hour)})

	pending, err := suite.repository.List(ctx, ports.AmendmentFilter{
		CompanyID: f.seller,
		Statuses:  []amendment.Status{amendment.StatusPending},
		Now:       now,
	})
	suite.Require().NoError(err)
	suite.Require().Len(pending.Items, 1)
	suite.True(open.ID().IsEqual(pending.Items[0].ID()))

	expired, err := suite.repository.List(ctx, ports.AmendmentFilter{
		CompanyID: f.seller,
		Statuses:  []amendment.Status{amendment.StatusExpired},
		Now:       now,
	})
	suite.Require().NoError(err)
	suite.Require().Len(expired.Items, 2)
	suite.True(lapsed.ID().IsEqual(expired.Items[0].ID()))
	suite.True(swept.ID().IsEqual(expired.Items[1].ID()))
}

func (suite *AmendmentRepositoryIntegrationTestSuite) TestListPagination() {
	ctx := context.Background()
	f := newFixture(suite.T(), "PO-2024-0001")
	for i := 1; i <= 5; i++ {
		suite.add(f, params{sequence: i, status: amendment.StatusRejected, proposedAt: now.Add(time.Duration(i) * time.Minute)})
	}

	page, err := suite.repository.List(ctx, ports.AmendmentFilter{CompanyID: f.buyer, Now: now, Page: 2, Limit: 2})
	suite.Require().NoError(err)
	suite.Equal(int64(5), page.TotalCount)
	suite.Equal(3, page.TotalPages())
	suite.Require().Len(page.Items, 2)
	suite.Equal("AMD-PO-2024-0001-003", page.Items[0].Number().String())
	suite.Equal("AMD-PO-2024-0001-002", page.Items[1].Number().String())

	typed, err := suite.repository.List(ctx, ports.AmendmentFilter{
		CompanyID: f.buyer,
		Types:     []amendment.Type{amendment.TypeQuantityChange},
		Now:       now,
	})
	suite.Require().NoError(err)
	suite.Zero(typed.TotalCount)
}

func TestAmendmentRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(AmendmentRepositoryIntegrationTestSuite))
}
