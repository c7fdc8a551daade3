package queries_test

import (
	"context"
	"testing"
	"time"

	"dentlab/internal/adapters/out/postgres/orderrepo"
	"dentlab/internal/core/application/usecases/queries"
	"dentlab/internal/core/domain/model/actor"
	"dentlab/internal/core/domain/model/kernel"
	"dentlab/internal/core/domain/model/order"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// QueryHandlersIntegrationTestSuite exercises the read-side handlers against
// real rows written by the order repository.
type QueryHandlersIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *orderrepo.GormOrderRepository

	clinicHandler  queries.GetOrdersForClinicQueryHandler
	activeHandler  queries.GetActiveOrdersQueryHandler
	overdueHandler queries.GetOverdueWorkQueryHandler
}

func (suite *QueryHandlersIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))

	suite.repo = orderrepo.NewGormOrderRepository(db)
	suite.clinicHandler = queries.NewGetOrdersForClinicQueryHandler(db)
	suite.activeHandler = queries.NewGetActiveOrdersQueryHandler(db)
	suite.overdueHandler = queries.NewGetOverdueWorkQueryHandler(db)
}

func (suite *QueryHandlersIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)
}

func (suite *QueryHandlersIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) addOrder(
	number string,
	clinicID kernel.UUID,
	createdAt time.Time,
) *order.Order {
	orderNumber, err := kernel.NewOrderNumber(number)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(),
		orderNumber,
		kernel.NewUUID(),
		clinicID,
		kernel.NewUUID(),
		createdAt,
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), aggregate))
	return aggregate
}

func (suite *QueryHandlersIntegrationTestSuite) advance(aggregate *order.Order, steps ...order.Status) {
	ctx := context.Background()
	roles := map[order.Status]actor.Role{
		order.PendingReview: actor.Doctor,
		order.MaterialsSent: actor.Admin,
		order.InProgress:    actor.Collaborator,
		order.Completed:     actor.Collaborator,
		order.Cancelled:     actor.Collaborator,
	}

	for _, target := range steps {
		previous := aggregate.Status()
		suite.Require().NoError(aggregate.TransitionTo(roles[target], target, time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)))
		suite.Require().NoError(suite.repo.UpdateStatus(ctx, aggregate, previous))
	}
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersForClinic_ScopedAndNewestFirst() {
	clinicID := kernel.NewUUID()
	older := suite.addOrder("DL-20260310-A1B2-JPX-7Q2R", clinicID, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	newer := suite.addOrder("DL-20260314-C3D4-ABX-9K4M", clinicID, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	suite.addOrder("DL-20260312-E5F6-QWX-2H8N", kernel.NewUUID(), time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))

	query, err := queries.NewGetOrdersForClinicQuery(clinicID)
	suite.Require().NoError(err)

	result, err := suite.clinicHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].ID.IsEqual(newer.ID()))
	suite.True(result[1].ID.IsEqual(older.ID()))
	suite.Equal(order.Draft, result[0].Status)
	suite.Equal(newer.Number().String(), result[0].Number.String())
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOrdersForClinic_EmptyClinic() {
	query, err := queries.NewGetOrdersForClinicQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.clinicHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetActiveOrders_ExcludesTerminalStates() {
	clinicID := kernel.NewUUID()
	draft := suite.addOrder("DL-20260310-A1B2-JPX-7Q2R", clinicID, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	inProgress := suite.addOrder("DL-20260311-C3D4-ABX-9K4M", clinicID, time.Date(2026, 3, 11, 10, 0, 0, 0, time.UTC))
	suite.advance(inProgress, order.PendingReview, order.MaterialsSent, order.InProgress)

	finished := suite.addOrder("DL-20260312-E5F6-QWX-2H8N", clinicID, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC))
	suite.advance(finished, order.PendingReview, order.MaterialsSent, order.InProgress, order.Completed)

	cancelled := suite.addOrder("DL-20260313-G7H8-MNX-5T3W", clinicID, time.Date(2026, 3, 13, 10, 0, 0, 0, time.UTC))
	suite.advance(cancelled, order.PendingReview, order.Cancelled)

	result, err := suite.activeHandler.Handle(context.Background(), queries.NewGetActiveOrdersQuery())
	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	// Oldest first: the draft predates the in-progress order.
	suite.True(result[0].ID.IsEqual(draft.ID()))
	suite.True(result[1].ID.IsEqual(inProgress.ID()))
	suite.Equal(order.InProgress, result[1].Status)
}

func (suite *QueryHandlersIntegrationTestSuite) TestGetOverdueWork_FiltersByStartInstant() {
	clinicID := kernel.NewUUID()
	overdue := suite.addOrder("DL-20260310-A1B2-JPX-7Q2R", clinicID, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC))
	suite.advance(overdue, order.PendingReview, order.MaterialsSent)
	previous := overdue.Status()
	suite.Require().NoError(overdue.TransitionTo(actor.Collaborator, order.InProgress, time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)))
	suite.Require().NoError(suite.repo.UpdateStatus(context.Background(), overdue, previous))

	recent := suite.addOrder("DL-20260314-C3D4-ABX-9K4M", clinicID, time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))
	suite.advance(recent, order.PendingReview, order.MaterialsSent)
	previous = recent.Status()
	suite.Require().NoError(recent.TransitionTo(actor.Collaborator, order.InProgress, time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)))
	suite.Require().NoError(suite.repo.UpdateStatus(context.Background(), recent, previous))

	query, err := queries.NewGetOverdueWorkQuery(time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC))
	suite.Require().NoError(err)

	result, err := suite.overdueHandler.Handle(context.Background(), query)
	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ID.IsEqual(overdue.ID()))
	suite.True(result[0].CreatedByID.IsEqual(overdue.CreatedByID()))
	suite.True(result[0].StartedAt.Equal(time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)))
}

func TestQueryHandlersIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueryHandlersIntegrationTestSuite))
}
