package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"troffee-marketplace-service/internal/adapters/auth"
	"troffee-marketplace-service/internal/adapters/broadcaster"
	"troffee-marketplace-service/internal/adapters/db"
	"troffee-marketplace-service/internal/adapters/httpapi"
	"troffee-marketplace-service/internal/adapters/redis"
	"troffee-marketplace-service/internal/adapters/storage"
	"troffee-marketplace-service/internal/app"
	"troffee-marketplace-service/internal/config"
)

func main() {

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	initLogging(cfg)

	log.Info().Msg("Starting Trofee Marketplace Service...")

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection
	dbConn, err := db.NewConnection(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer dbConn.Close(context.Background())

	log.Info().Msg("Database connection established")

	// Create repositories scoped to the configured org and app
	repoFactory := db.NewRepositoryFactory(dbConn, cfg.Scope)
	productRepo := repoFactory.GetProductRepository()
	reviewRepo := repoFactory.GetReviewRepository()
	bookmarkRepo := repoFactory.GetBookmarkRepository()
	offerRepo := repoFactory.GetOfferRepository()

	log.Info().Msg("Database repositories initialized")

	// Create Redis client
	redisClient := redis.NewClient(cfg)
	if err := redis.PingRedis(redisClient); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	log.Info().Msg("Redis connection established")

	// Create Redis broadcaster
	redisBroadcaster := broadcaster.NewBroadcaster(broadcaster.RedisBroadcasterParams{
		RedisClient: redisClient,
		Logger:      log.Logger,
	})
	log.Info().Msg("Redis broadcaster initialized")

	// Create token verifier and file store
	verifier := auth.NewJWTVerifier(auth.JWTVerifierParams{
		Secret: cfg.Auth.JWTSecret,
		Logger: log.Logger,
	})

	fileStore, err := storage.NewLocalFileStore(storage.LocalFileStoreParams{
		Dir:     cfg.Upload.Dir,
		BaseURL: cfg.Server.BaseURL,
		Logger:  log.Logger,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize file store")
	}

	// Create business services
	productService := app.NewProductService(app.ProductServiceParams{
		ProductRepo: productRepo,
		FetchCap:    cfg.Listing.FetchCap,
		Logger:      log.Logger,
	})
	reviewService := app.NewReviewService(app.ReviewServiceParams{
		ReviewRepo: reviewRepo,
		FetchCap:   cfg.Listing.FetchCap,
		Logger:     log.Logger,
	})
	bookmarkService := app.NewBookmarkService(app.BookmarkServiceParams{
		BookmarkRepo: bookmarkRepo,
		ProductRepo:  productRepo,
		FetchCap:     cfg.Listing.FetchCap,
		Logger:       log.Logger,
	})
	offerService := app.NewOfferService(app.OfferServiceParams{
		OfferRepo:   offerRepo,
		ProductRepo: productRepo,
		Broadcaster: redisBroadcaster,
		FetchCap:    cfg.Listing.FetchCap,
		Logger:      log.Logger,
	})

	log.Info().Msg("Business services initialized")

	server := httpapi.NewServer(httpapi.ServerParams{
		Config:          cfg,
		ProductService:  productService,
		ReviewService:   reviewService,
		BookmarkService: bookmarkService,
		OfferService:    offerService,
		Verifier:        verifier,
		FileStore:       fileStore,
		Broadcaster:     redisBroadcaster,
		Logger:          log.Logger,
	})

	log.Info().Msg("HTTP server initialized")

	// Start HTTP server
	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Failed to start HTTP server")
			cancel()
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case <-ctx.Done():
		log.Info().Msg("Context cancelled")
	}

	// Graceful shutdown
	log.Info().Msg("Starting graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping HTTP server")
	}

	if err := redisBroadcaster.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing broadcaster")
	}

	log.Info().Msg("Graceful shutdown completed")
}

func initLogging(cfg *config.Config) {
	// Set log level
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	// Set log format
	if cfg.Logging.Format == "json" {
		// JSON format (default)
		log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	} else {
		// Console format for development
		output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
		log.Logger = zerolog.New(output).With().Timestamp().Logger()
	}

	// Set global logger
	zerolog.DefaultContextLogger = &log.Logger
}
