package cartrepo_test

import (
	"context"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres/cartrepo"
	"marketplace/internal/adapters/out/postgres/sessionrepo"
	"marketplace/internal/core/domain/model/cart"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/session"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CartRepositoryIntegrationTestSuite exercises cart persistence against a real
// PostgreSQL instance, including the jsonb line document round trip and the
// orphan sweep join against the sessions table.
type CartRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *cartrepo.GormCartRepository
	tracker    *MockAggregateTracker
}

func (suite *CartRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&cartrepo.CartDTO{}, &sessionrepo.SessionDTO{}))
}

func (suite *CartRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE carts, sessions").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = cartrepo.NewGormCartRepository(suite.db, suite.tracker)
}

func (suite *CartRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CartRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsLines() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	testCart, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)

	productID := kernel.NewUUID()
	storeID := kernel.NewUUID()
	catalogID := kernel.NewUUID()
	suite.Require().NoError(testCart.AddLine(productID, storeID, &catalogID, 3, now))
	suite.Require().NoError(testCart.AddLine(kernel.NewUUID(), storeID, nil, 1, now))

	suite.tracker.On("TrackAggregate", testCart.ID(), testCart).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testCart))

	retrieved, err := suite.repository.Get(ctx, testCart.ID())
	suite.Require().NoError(err)

	suite.Equal(testCart.ID(), retrieved.ID())
	suite.True(owner.IsEqual(retrieved.Owner()))
	suite.Nil(retrieved.ExpiresAt())

	lines := retrieved.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal(productID, lines[0].ProductID())
	suite.Equal(storeID, lines[0].StoreID())
	suite.Require().NotNil(lines[0].CatalogID())
	suite.Equal(catalogID, *lines[0].CatalogID())
	suite.Equal(3, lines[0].Quantity())
	suite.Nil(lines[1].CatalogID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetByOwner_GuestCartWithExpiry() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	sessionID := kernel.NewUUID()
	owner, err := kernel.NewGuestOwner(sessionID)
	suite.Require().NoError(err)

	testCart, err := cart.NewCart(kernel.NewUUID(), owner, now, 24*time.Hour)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testCart.ID(), testCart).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testCart))

	retrieved, err := suite.repository.GetByOwner(ctx, owner)
	suite.Require().NoError(err)
	suite.Equal(testCart.ID(), retrieved.ID())
	suite.Require().NotNil(retrieved.ExpiresAt())
	suite.WithinDuration(now.Add(24*time.Hour), *retrieved.ExpiresAt(), time.Second)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestGetByOwner_NoCart_ReturnsNotFoundError() {
	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetByOwner(context.Background(), owner)
	suite.Nil(retrieved)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_PersistsEmptiedLines() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	testCart, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)
	suite.Require().NoError(testCart.AddLine(kernel.NewUUID(), kernel.NewUUID(), nil, 2, now))

	suite.tracker.On("TrackAggregate", testCart.ID(), testCart).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testCart))

	suite.Require().NoError(testCart.Clear(now.Add(time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, testCart))

	retrieved, err := suite.repository.Get(ctx, testCart.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsEmpty())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestUpdate_NonExistentCart_ReturnsNotFoundError() {
	now := time.Now().UTC()

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	testCart, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)

	err = suite.repository.Update(context.Background(), testCart)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestAdd_SecondCartForOwner_ReturnsConflictError() {
	ctx := context.Background()
	now := time.Now().UTC()

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	first, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)
	second, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	err = suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestDelete_IsIdempotent() {
	ctx := context.Background()
	now := time.Now().UTC()

	owner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)

	testCart, err := cart.NewCart(kernel.NewUUID(), owner, now, 0)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testCart.ID(), testCart).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testCart))

	suite.Require().NoError(suite.repository.Delete(ctx, testCart.ID()))
	suite.Require().NoError(suite.repository.Delete(ctx, testCart.ID()))

	_, err = suite.repository.Get(ctx, testCart.ID())
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CartRepositoryIntegrationTestSuite) TestFindOrphanedGuestCarts() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	// Guest cart whose TTL lapsed, session still present.
	expiredSession := suite.addSession(ctx, now)
	expiredCart := suite.addGuestCart(ctx, expiredSession.ID(), now.Add(-48*time.Hour), time.Hour)

	// Guest cart whose session row is gone.
	orphanOwner, err := kernel.NewGuestOwner(kernel.NewUUID())
	suite.Require().NoError(err)
	orphanCart, err := cart.NewCart(kernel.NewUUID(), orphanOwner, now, 24*time.Hour)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, orphanCart))

	// Live guest cart with a live session stays untouched.
	liveSession := suite.addSession(ctx, now)
	suite.addGuestCart(ctx, liveSession.ID(), now, 24*time.Hour)

	// User carts never expire and are never orphaned.
	userOwner, err := kernel.NewUserOwner(kernel.NewUUID())
	suite.Require().NoError(err)
	userCart, err := cart.NewCart(kernel.NewUUID(), userOwner, now.Add(-72*time.Hour), 0)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, userCart))

	orphans, err := suite.repository.FindOrphanedGuestCarts(ctx, now, 10)
	suite.Require().NoError(err)

	ids := make([]kernel.UUID, 0, len(orphans))
	for _, c := range orphans {
		ids = append(ids, c.ID())
	}
	suite.Len(ids, 2)
	suite.Contains(ids, expiredCart.ID())
	suite.Contains(ids, orphanCart.ID())
}

func (suite *CartRepositoryIntegrationTestSuite) TestFindOrphanedGuestCarts_HonorsLimit() {
	ctx := context.Background()
	now := time.Now().UTC()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything)

	for range 3 {
		owner, err := kernel.NewGuestOwner(kernel.NewUUID())
		suite.Require().NoError(err)
		orphan, err := cart.NewCart(kernel.NewUUID(), owner, now, time.Hour)
		suite.Require().NoError(err)
		suite.Require().NoError(suite.repository.Add(ctx, orphan))
	}

	orphans, err := suite.repository.FindOrphanedGuestCarts(ctx, now, 2)
	suite.Require().NoError(err)
	suite.Len(orphans, 2)
}

func (suite *CartRepositoryIntegrationTestSuite) addSession(
	ctx context.Context, now time.Time,
) *session.Session {
	s, err := session.NewSession(kernel.NewUUID(), session.Metadata{
		UserAgent:  "integration-test",
		RemoteAddr: "127.0.0.1",
	}, now, 24*time.Hour)
	suite.Require().NoError(err)

	sessionRepo := sessionrepo.NewGormSessionRepository(suite.db, suite.tracker)
	suite.Require().NoError(sessionRepo.Add(ctx, s))
	return s
}

func (suite *CartRepositoryIntegrationTestSuite) addGuestCart(
	ctx context.Context, sessionID kernel.UUID, createdAt time.Time, ttl time.Duration,
) *cart.Cart {
	owner, err := kernel.NewGuestOwner(sessionID)
	suite.Require().NoError(err)

	c, err := cart.NewCart(kernel.NewUUID(), owner, createdAt, ttl)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, c))
	return c
}

func TestCartRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryIntegrationTestSuite))
}
