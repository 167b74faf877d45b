package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"amendments/internal/adapters/out/postgres/orderrepo"
	"amendments/internal/adapters/out/postgres/pgtest"
	"amendments/internal/core/domain/model/kernel"
	"amendments/internal/core/domain/model/order"
	"amendments/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite runs the order repository against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.repository = orderrepo.NewGormOrderRepository(database.DB, nil)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(number string, status order.Status) *order.Order {
	composition, err := order.NewComposition(map[string]decimal.Decimal{
		"cotton":    decimal.NewFromInt(80),
		"polyester": decimal.NewFromInt(20),
	})
	suite.Require().NoError(err)

	o, err := order.RestoreOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), order.Terms{
		Quantity:         decimal.NewFromInt(1000),
		UnitPrice:        decimal.RequireFromString("10.50"),
		DeliveryDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		DeliveryLocation: "Rotterdam",
		Composition:      composition,
	}, nil, status)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGet() {
	ctx := context.Background()
	o := suite.newOrder("PO-2024-0001", order.Confirmed)

	suite.Require().NoError(suite.repository.Add(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())
	suite.True(o.BuyerCompanyID().IsEqual(stored.BuyerCompanyID()))
	suite.True(o.SellerCompanyID().IsEqual(stored.SellerCompanyID()))
	suite.True(o.Quantity().Equal(stored.Quantity()))
	suite.True(o.UnitPrice().Equal(stored.UnitPrice()))
	suite.True(o.DeliveryDate().Equal(stored.DeliveryDate()))
	suite.Equal("Rotterdam", stored.DeliveryLocation())
	suite.True(o.Composition().IsEqual(stored.Composition()))
	suite.Equal(order.Confirmed, stored.Status())

	_, received := stored.ReceivedQuantity()
	suite.False(received)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddDuplicateNumber() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("PO-2024-0001", order.Draft)))

	err := suite.repository.Add(ctx, suite.newOrder("PO-2024-0001", order.Draft))
	suite.ErrorIs(err, errs.ErrConcurrencyConflict)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateAmendableTerms() {
	ctx := context.Background()
	o := suite.newOrder("PO-2024-0002", order.Shipped)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.Apply(order.FieldUnitPrice, order.NumberValue(decimal.NewFromInt(12))))
	suite.Require().NoError(o.Apply(order.FieldDeliveryLocation, order.TextValue("Hamburg")))
	suite.Require().NoError(o.Apply(order.FieldReceivedQuantity, order.NumberValue(decimal.NewFromInt(950))))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	stored, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(12).Equal(stored.UnitPrice()))
	suite.Equal("Hamburg", stored.DeliveryLocation())
	received, ok := stored.ReceivedQuantity()
	suite.True(ok)
	suite.True(decimal.NewFromInt(950).Equal(received))
	suite.Equal(order.Shipped, stored.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateMissingOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder("PO-2024-0003", order.Draft))
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetMissingOrder() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdateInsideTransaction() {
	ctx := context.Background()
	o := suite.newOrder("PO-2024-0004", order.Pending)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	tx := suite.database.DB.Begin()
	suite.Require().NoError(tx.Error)
	defer tx.Rollback()

	stored, err := orderrepo.NewGormOrderRepository(tx, nil).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(o.Number(), stored.Number())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
