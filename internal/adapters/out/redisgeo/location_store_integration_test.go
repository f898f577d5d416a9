package redisgeo_test

import (
	"context"
	"testing"

	"marketplace/internal/adapters/out/redisgeo"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type LocationStoreIntegrationTestSuite struct {
	suite.Suite
	container testcontainers.Container
	rdb       *redis.Client
	store     *redisgeo.LocationStore
}

func TestLocationStoreIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}
	suite.Run(t, new(LocationStoreIntegrationTestSuite))
}

func (s *LocationStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	addr, err := container.Endpoint(ctx, "")
	s.Require().NoError(err)

	s.rdb = redis.NewClient(&redis.Options{Addr: addr})
	s.store = redisgeo.NewLocationStore(s.rdb, "")
}

func (s *LocationStoreIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.rdb.FlushDB(s.T().Context()).Err())
}

func (s *LocationStoreIntegrationTestSuite) TearDownSuite() {
	if s.rdb != nil {
		_ = s.rdb.Close()
	}
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *LocationStoreIntegrationTestSuite) TestSearchReturnsSellersInRangeNearestFirst() {
	ctx := s.T().Context()
	center := s.location(77.5946, 12.9716)

	near := kernel.NewUUID()
	mid := kernel.NewUUID()
	far := kernel.NewUUID()
	s.Require().NoError(s.store.SetSellerLocation(ctx, mid, s.location(77.6200, 12.9716)))
	s.Require().NoError(s.store.SetSellerLocation(ctx, far, s.location(78.4867, 17.3850)))
	s.Require().NoError(s.store.SetSellerLocation(ctx, near, s.location(77.5950, 12.9720)))

	sites, err := s.store.SearchSellers(ctx, center, 10_000)
	s.Require().NoError(err)
	s.Require().Len(sites, 2)

	s.Equal(near, sites[0].SellerID)
	s.Less(sites[0].DistanceMeters, 100.0)
	s.Equal(mid, sites[1].SellerID)
	s.InDelta(2750, sites[1].DistanceMeters, 50)
	s.InDelta(77.6200, sites[1].Location.Lng(), 1e-4)
}

func (s *LocationStoreIntegrationTestSuite) TestSettingAgainMovesTheSeller() {
	ctx := s.T().Context()
	seller := kernel.NewUUID()
	center := s.location(77.5946, 12.9716)

	s.Require().NoError(s.store.SetSellerLocation(ctx, seller, center))
	s.Require().NoError(s.store.SetSellerLocation(ctx, seller, s.location(72.8777, 19.0760)))

	sites, err := s.store.SearchSellers(ctx, center, 50_000)
	s.Require().NoError(err)
	s.Empty(sites)

	count, err := s.rdb.ZCard(ctx, redisgeo.DefaultKey).Result()
	s.Require().NoError(err)
	s.Equal(int64(1), count)
}

func (s *LocationStoreIntegrationTestSuite) TestEmptyIndex() {
	sites, err := s.store.SearchSellers(s.T().Context(), s.location(0, 0), 1000)

	s.Require().NoError(err)
	s.NotNil(sites)
	s.Empty(sites)
}

func (s *LocationStoreIntegrationTestSuite) TestPolarLatitudeIsRejected() {
	err := s.store.SetSellerLocation(s.T().Context(), kernel.NewUUID(), s.location(0, 89))

	s.ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (s *LocationStoreIntegrationTestSuite) TestPing() {
	s.NoError(s.store.Ping(s.T().Context()))
}

func (s *LocationStoreIntegrationTestSuite) location(lng, lat float64) kernel.Location {
	l, err := kernel.NewLocation(lng, lat)
	s.Require().NoError(err)
	return l
}
