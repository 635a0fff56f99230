package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"gamestore-admin/config"
	"gamestore-admin/internal/delivery/http/middleware"
	v1 "gamestore-admin/internal/delivery/http/v1"
	"gamestore-admin/internal/domain"
	"gamestore-admin/internal/infrastructure/cache"
	"gamestore-admin/internal/repository/memory"
	pgrepo "gamestore-admin/internal/repository/postgres"
	"gamestore-admin/internal/usecase"
	"gamestore-admin/migrations"
	"gamestore-admin/pkg/logger"
	"gamestore-admin/pkg/storage"
	"gamestore-admin/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const serviceName = "gamestore-admin"

// entityStore is satisfied by both store drivers.
type entityStore interface {
	Coupons() domain.CouponRepository
	Licenses() domain.LicenseRepository
	Games() domain.GameRepository
	Users() domain.UserRepository
	SystemRequirements() domain.SystemRequirementRepository
	Categories() domain.CategoryRepository
	Products() domain.ProductRepository
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()
	utils.SetSecret(cfg.JWTSecret)
	v1.SetTimeZone(cfg.Location())

	ctx := context.Background()

	// Initialize Store
	var (
		store entityStore
		db    v1.Pinger
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		store = memory.NewStore()
		log.Warn().Msg("Using in-memory store; data is lost on restart")
	default:
		if cfg.RunMigrations {
			if err := pgrepo.RunMigrations(cfg.DBUrl, migrations.FS); err != nil {
				log.Fatal().Err(err).Msg("Failed to run migrations")
			}
		}
		pool, err := pgrepo.NewPgxPool(ctx, cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer pool.Close()
		log.Info().Msg("Successfully connected to PostgreSQL via pgx")
		store, db = pgrepo.New(pool), pool
	}

	// --- Storage Module (R2) ---
	var (
		uploader v1.Uploader
		images   usecase.ImageRemover
	)
	if cfg.UploadsEnabled() {
		r2Storage, err := storage.NewR2Storage(
			ctx,
			cfg.R2AccountID,
			cfg.R2AccessKeyID,
			cfg.R2AccessKeySecret,
			cfg.R2BucketName,
			cfg.R2PublicURL,
			cfg.R2UploadTimeout,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
		}
		uploader, images = r2Storage, r2Storage
	} else {
		log.Warn().Msg("R2 credentials not set; uploads are disabled")
	}

	// Initialize Cache (In-Memory)
	memCache := cache.NewMemoryCache(cfg.CacheEnumsTTL)

	// --- Modules Initialization ---
	now := domain.Clock(time.Now)

	userUC := usecase.NewUserUsecase(store.Users(), now)
	authUC := usecase.NewAuthUsecase(store.Users(), userUC, cfg.AccessTokenExpiry)
	if err := authUC.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to bootstrap admin account")
	}

	handlers := v1.Handlers{
		Auth:               v1.NewAuthHandler(authUC, cfg.AccessTokenExpiry, cfg.IsProduction()),
		Coupons:            v1.NewCouponHandler(usecase.NewCouponUsecase(store.Coupons(), now)),
		Licenses:           v1.NewLicenseHandler(usecase.NewLicenseUsecase(store.Licenses(), store.Games(), now)),
		Users:              v1.NewUserHandler(userUC),
		SystemRequirements: v1.NewSystemRequirementHandler(usecase.NewSystemRequirementUsecase(store.SystemRequirements(), now)),
		Games:              v1.NewGameHandler(usecase.NewGameUsecase(store.Games(), store.SystemRequirements(), now)),
		Categories:         v1.NewCategoryHandler(usecase.NewCategoryUsecase(store.Categories(), now)),
		Products:           v1.NewProductHandler(usecase.NewProductUsecase(store.Products(), store.Categories(), images, now)),
		Uploads:            v1.NewUploadHandler(uploader, cfg.MaxUploadSizeMB),
		Config:             v1.NewConfigHandler(memCache, cfg.CacheEnumsTTL),
		DB:                 db,
	}

	// Set up Router
	mux := http.NewServeMux()
	v1.RegisterRoutes(mux, handlers, middleware.Admin)

	// Rate limiting is shared through Redis when configured, per process otherwise.
	var (
		limiter     middleware.Limiter
		rateLimiter *middleware.RateLimiter
	)
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid REDIS_URL")
		}
		redisClient := redis.NewClient(opts)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		limiter = middleware.NewRedisLimiter(redisClient, int64(cfg.RateLimitBurst), time.Duration(float64(cfg.RateLimitBurst)/cfg.RateLimitRPS*float64(time.Second)))
	} else {
		rateLimiter = middleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, time.Minute, 3*time.Minute)
		limiter = rateLimiter
	}

	// Apply CORS, Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RateLimit(limiter)(handler)
	handler = middleware.RequestLogger(handler)
	handler = gziphandler.GzipHandler(handler)

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()
	logger.ServiceStart(serviceName, cfg.StoreDriver, cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	if rateLimiter != nil {
		rateLimiter.Shutdown()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.ServiceStop(serviceName)
}
