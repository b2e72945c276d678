package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/database"
	"dinelt/internal/events"
	"dinelt/internal/handler"
	"dinelt/internal/media"
	"dinelt/internal/repository"
	"dinelt/internal/router"
	"dinelt/internal/service"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB starts a PostgreSQL container, applies the migrations and opens a pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, database.Migrate(connStr, zerolog.Nop()))

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	require.NoError(t, pool.Ping(ctx))

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// NewServer wires the full application against testDB, storing uploads under mediaRoot.
func NewServer(t *testing.T, testDB *TestDB, mediaRoot string) http.Handler {
	t.Helper()

	logger := zerolog.Nop()
	pool := testDB.Pool

	userRepo := repository.NewUserRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	postRepo := repository.NewPostRepository(pool, logger)
	storyRepo := repository.NewStoryRepository(pool, logger)
	restaurantRepo := repository.NewRestaurantRepository(pool, logger)
	foodRepo := repository.NewFoodRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	cartRepo := repository.NewCartRepository(pool, logger)
	reservationRepo := repository.NewReservationRepository(pool, logger)
	accommodationRepo := repository.NewAccommodationRepository(pool, logger)
	bookingRepo := repository.NewBookingRepository(pool, logger)

	publisher := events.NewNopPublisher()
	tokens := auth.NewTokenMaker("integration-secret", time.Hour, 24*time.Hour)
	store := media.NewFileStore(mediaRoot, "/media", logger)

	storyService := service.NewStoryService(storyRepo, logger)
	handlers := router.Handlers{
		Auth:       handler.NewAuthHandler(service.NewAuthService(userRepo, profileRepo, tokens, publisher, logger), logger),
		Profile:    handler.NewProfileHandler(service.NewProfileService(userRepo, profileRepo, postRepo, storyRepo, logger), logger),
		Post:       handler.NewPostHandler(service.NewPostService(postRepo, logger), logger),
		Story:      handler.NewStoryHandler(storyService, logger),
		Restaurant: handler.NewRestaurantHandler(service.NewRestaurantService(restaurantRepo, userRepo, logger), logger),
		Food:       handler.NewFoodHandler(service.NewFoodService(foodRepo, restaurantRepo, logger), logger),
		Order: handler.NewOrderHandler(
			service.NewOrderService(orderRepo, foodRepo, restaurantRepo, publisher, logger), logger),
		Cart: handler.NewCartHandler(
			service.NewCartService(cartRepo, orderRepo, foodRepo, publisher, logger), logger),
		Reservation: handler.NewReservationHandler(
			service.NewReservationService(reservationRepo, restaurantRepo, logger), logger),
		Accommodation: handler.NewAccommodationHandler(
			service.NewAccommodationService(accommodationRepo, restaurantRepo, logger),
			service.NewBookingService(bookingRepo, publisher, logger),
			logger),
		Media: handler.NewMediaHandler(store, 5<<20, logger),
	}

	return router.New(handlers, router.Options{Tokens: tokens, MediaRoot: mediaRoot}, logger)
}
