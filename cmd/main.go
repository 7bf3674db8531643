package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/yungbote/storefront-backend/internal/clients/gcs"
	"github.com/yungbote/storefront-backend/internal/clients/redis"
	"github.com/yungbote/storefront-backend/internal/config"
	"github.com/yungbote/storefront-backend/internal/db"
	"github.com/yungbote/storefront-backend/internal/handlers"
	"github.com/yungbote/storefront-backend/internal/logger"
	"github.com/yungbote/storefront-backend/internal/middleware"
	"github.com/yungbote/storefront-backend/internal/observability"
	"github.com/yungbote/storefront-backend/internal/repos"
	"github.com/yungbote/storefront-backend/internal/server"
	"github.com/yungbote/storefront-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"), log)
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Tracing
	ctx := context.Background()
	shutdownOTel := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "storefront-backend",
		Environment: os.Getenv("APP_ENV"),
		Version:     os.Getenv("APP_VERSION"),
	})
	if shutdownOTel != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdownOTel(shutdownCtx)
		}()
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log)
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Warn("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Redis cart store
	var cartStore redis.CartStore
	if cfg.RedisAddr != "" {
		cartStore, err = redis.NewCartStore(log, cfg.RedisAddr, cfg.RedisChannel)
		if err != nil {
			log.Warn("Redis init failed, carts will not survive restarts", "error", err)
			cartStore = nil
		}
	} else {
		log.Warn("REDIS_ADDR not set, carts will not survive restarts")
	}

	// GCS bucket
	var bucketService gcs.BucketService
	if cfg.GCSBucketName != "" {
		bucketService, err = gcs.NewBucketService(log, cfg.GCSBucketName, cfg.CDNDomain)
		if err != nil {
			log.Warn("GCS init failed, image uploads disabled", "error", err)
			bucketService = nil
		}
	} else {
		log.Warn("GCS_BUCKET_NAME not set, image uploads disabled")
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	categoryRepo := repos.NewCategoryRepo(thePG, log)
	productRepo := repos.NewProductRepo(thePG, log)
	ratingRepo := repos.NewRatingRepo(thePG, log)
	orderRepo := repos.NewOrderRepo(thePG, log)
	addressRepo := repos.NewAddressRepo(thePG, log)
	expenseRepo := repos.NewExpenseRepo(thePG, log)
	expenseCategoryRepo := repos.NewExpenseCategoryRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	var avatarService services.AvatarService
	if bucketService != nil {
		avatarService, err = services.NewAvatarService(log, bucketService)
		if err != nil {
			log.Warn("Avatar service init failed, avatars disabled", "error", err)
			avatarService = nil
		}
	}
	authService := services.NewAuthService(
		thePG, log, userRepo, userTokenRepo, avatarService,
		cfg.JWTSecretKey,
		time.Duration(cfg.AccessTokenTTL)*time.Second,
		time.Duration(cfg.RefreshTokenTTL)*time.Second,
	)
	catalogCache := services.NewCatalogCache(log, categoryRepo, productRepo)
	if err := catalogCache.Refresh(ctx); err != nil {
		log.Warn("Initial catalog preload failed, cache fills on demand", "error", err)
	}
	catalogService := services.NewCatalogService(thePG, log, categoryRepo, productRepo, catalogCache)
	var cartPersistence services.CartPersistence
	if cartStore != nil {
		cartPersistence = cartStore
	}
	cartService := services.NewCartService(thePG, log, cartPersistence, catalogService)
	ratingService := services.NewRatingService(thePG, log, ratingRepo, productRepo)
	orderService := services.NewOrderService(thePG, log, orderRepo, addressRepo, productRepo, cartService)
	expenseService := services.NewExpenseService(thePG, log, expenseRepo, expenseCategoryRepo, orderRepo)
	userService := services.NewUserService(thePG, log, userRepo, addressRepo, avatarService)

	// Cross-instance cart reconciliation
	if cartStore != nil {
		if err := cartStore.StartForwarder(ctx, cartService.ApplySnapshot); err != nil {
			log.Warn("Cart snapshot forwarder failed to start", "error", err)
		}
		defer cartStore.Close()
	}

	// Handlers
	log.Info("Setting up Handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	orderHandler := handlers.NewOrderHandler(orderService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	uploadHandler := handlers.NewUploadHandler(bucketService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		AuthMiddleware: authMiddleware,
		AuthHandler:    authHandler,
		UserHandler:    userHandler,
		CatalogHandler: catalogHandler,
		CartHandler:    cartHandler,
		RatingHandler:  ratingHandler,
		OrderHandler:   orderHandler,
		ExpenseHandler: expenseHandler,
		UploadHandler:  uploadHandler,
	})

	log.Info("Starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
