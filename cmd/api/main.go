package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dinelt/internal/auth"
	"dinelt/internal/config"
	"dinelt/internal/database"
	"dinelt/internal/events"
	"dinelt/internal/handler"
	"dinelt/internal/jobs"
	"dinelt/internal/media"
	"dinelt/internal/ratelimit"
	"dinelt/internal/repository"
	"dinelt/internal/router"
	"dinelt/internal/service"

	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting dinelt API server")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.MigrateOnStart {
		if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Repositories
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

	publisher := newPublisher(cfg.Kafka, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close event publisher")
		}
	}()

	limiter, closeLimiter := newLimiter(ctx, cfg, logger)
	defer closeLimiter()

	store := newMediaStore(ctx, cfg, logger)
	tokens := auth.NewTokenMaker(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)

	// Services
	authService := service.NewAuthService(userRepo, profileRepo, tokens, publisher, logger)
	profileService := service.NewProfileService(userRepo, profileRepo, postRepo, storyRepo, logger)
	postService := service.NewPostService(postRepo, logger)
	storyService := service.NewStoryService(storyRepo, logger)
	restaurantService := service.NewRestaurantService(restaurantRepo, userRepo, logger)
	foodService := service.NewFoodService(foodRepo, restaurantRepo, logger)
	orderService := service.NewOrderService(orderRepo, foodRepo, restaurantRepo, publisher, logger)
	cartService := service.NewCartService(cartRepo, orderRepo, foodRepo, publisher, logger)
	reservationService := service.NewReservationService(reservationRepo, restaurantRepo, logger)
	accommodationService := service.NewAccommodationService(accommodationRepo, restaurantRepo, logger)
	bookingService := service.NewBookingService(bookingRepo, publisher, logger)

	handlers := router.Handlers{
		Auth:          handler.NewAuthHandler(authService, logger),
		Profile:       handler.NewProfileHandler(profileService, logger),
		Post:          handler.NewPostHandler(postService, logger),
		Story:         handler.NewStoryHandler(storyService, logger),
		Restaurant:    handler.NewRestaurantHandler(restaurantService, logger),
		Food:          handler.NewFoodHandler(foodService, logger),
		Order:         handler.NewOrderHandler(orderService, logger),
		Cart:          handler.NewCartHandler(cartService, logger),
		Reservation:   handler.NewReservationHandler(reservationService, logger),
		Accommodation: handler.NewAccommodationHandler(accommodationService, bookingService, logger),
		Media:         handler.NewMediaHandler(store, cfg.Media.MaxUploadBytes, logger),
	}

	mux := router.New(handlers, router.Options{
		Tokens:    tokens,
		Limiter:   limiter,
		MediaRoot: cfg.Media.Root,
	}, logger)

	scheduler := jobs.NewScheduler(logger)
	if err := scheduler.AddStoryPurge(cfg.Jobs.StoryPurgeSchedule, storyService); err != nil {
		return err
	}
	scheduler.Start()

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := scheduler.Stop(shutdownCtx); err != nil {
			logger.Warn().Err(err).Msg("background jobs did not finish")
		}

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}

func newPublisher(cfg config.KafkaConfig, logger zerolog.Logger) events.Publisher {
	if !cfg.Enabled {
		logger.Info().Msg("kafka disabled, domain events are dropped")
		return events.NewNopPublisher()
	}
	return events.NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger)
}

// newLimiter prefers a shared redis limiter and falls back to an in-process one.
// The returned limiter is nil when rate limiting is disabled.
func newLimiter(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (ratelimit.Limiter, func()) {
	noop := func() {}
	if !cfg.RateLimit.Enabled {
		return nil, noop
	}

	rlCfg := ratelimit.Config{Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window}
	if cfg.Redis.Enabled {
		client, err := ratelimit.NewRedisClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err == nil {
			logger.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
			return ratelimit.NewRedisLimiter(client, rlCfg), func() {
				if err := client.Close(); err != nil {
					logger.Error().Err(err).Msg("failed to close redis client")
				}
			}
		}
		logger.Warn().Err(err).Msg("failed to connect to redis, using in-memory rate limiter")
	}
	return ratelimit.NewMemoryLimiter(rlCfg), noop
}

func newMediaStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) media.Store {
	fileStore := media.NewFileStore(cfg.Media.Root, cfg.Media.BaseURL, logger)
	if !cfg.S3.Enabled {
		logger.Info().Msg("using local file system for media (S3 disabled)")
		return fileStore
	}

	s3Store, err := media.NewS3Store(ctx, cfg.S3.Bucket, cfg.S3.Region, cfg.S3.Prefix, cfg.S3.PublicURL, logger)
	if err != nil {
		logger.Warn().
			Err(err).
			Msg("failed to initialise S3 store, falling back to local file system only")
		return fileStore
	}
	return media.NewFallbackStore(s3Store, fileStore, true, logger)
}
