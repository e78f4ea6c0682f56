package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"frame-storefront/app/controller"
	"frame-storefront/app/router"
	"frame-storefront/catalog"
	"frame-storefront/config"
	"frame-storefront/db"
	"frame-storefront/repository"
	"frame-storefront/service"
)

// App is the wired application
type App struct {
	Handler http.Handler
	redis   *redis.Client
}

// Close releases the database and Redis connections
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			log.Printf("⚠️  Close: Error closing Redis client: %v", err)
		}
	}
	if err := db.CloseDB(); err != nil {
		log.Printf("⚠️  Close: Error closing database: %v", err)
	}
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database connection
	if err := db.InitDB(cfg.DatabaseURL); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if cfg.MigrationsEnabled {
		if err := db.RunMigrations(); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// Upload sessions live in Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	log.Printf("✓ Connected to Redis at %s", cfg.RedisAddr)

	// Images go to Google Drive when it is configured, local disk otherwise
	var imageStore service.ImageStore
	staticDir := ""
	if cfg.CredentialsPath != "" && cfg.DriveFolderID != "" {
		driveStore, err := service.NewDriveImageStore(ctx, cfg.CredentialsPath, cfg.DriveFolderID)
		if err != nil {
			return nil, err
		}
		imageStore = driveStore
		log.Printf("✓ Storing images in Google Drive folder %s", cfg.DriveFolderID)
	} else {
		localStore, err := service.NewLocalImageStore(cfg.UploadDir, cfg.PublicBaseURL+router.UploadsPath)
		if err != nil {
			return nil, err
		}
		imageStore = localStore
		staticDir = localStore.Dir()
		log.Printf("✓ Storing images locally in %s", staticDir)
	}

	// Initialize repositories
	catalogRepo := repository.NewCatalogRepository()
	frameTypeRepo := repository.NewFrameTypeRepository()
	subFrameTypeRepo := repository.NewSubFrameTypeRepository()
	frameSizeRepo := repository.NewFrameSizeRepository()
	productRepo := repository.NewProductRepository()
	cartRepo := repository.NewCartRepository()
	wishlistRepo := repository.NewWishlistRepository()
	couponRepo := repository.NewCouponRepository()
	orderRepo := repository.NewOrderRepository()
	userRepo := repository.NewUserRepository()
	userImageRepo := repository.NewUserImageRepository()

	// Initialize services
	resolver := catalog.NewSizeResolver(catalogRepo)
	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	productService := service.NewProductService(productRepo, frameSizeRepo, resolver)
	importService := service.NewProductImportService(productService, frameTypeRepo, subFrameTypeRepo)
	cartService := service.NewCartService(cartRepo, couponRepo, userImageRepo)
	orderService := service.NewOrderService(orderRepo)
	sessionStore := service.NewUploadSessionStore(redisClient, cfg.UploadSessionTTL)
	uploadService := service.NewUploadService(sessionStore, imageStore, userImageRepo)
	frameImageService := service.NewFrameImageService(subFrameTypeRepo, imageStore)
	reportService := service.NewReportService(catalogRepo, cfg.ChromePath)

	// Create controllers
	controllers := &router.Controllers{
		Auth:         controller.NewAuthController(authService),
		FrameType:    controller.NewFrameTypeController(frameTypeRepo),
		SubFrameType: controller.NewSubFrameTypeController(subFrameTypeRepo, frameImageService),
		FrameSize:    controller.NewFrameSizeController(frameSizeRepo),
		Product:      controller.NewProductController(productService, importService),
		Cart:         controller.NewCartController(cartService),
		Wishlist:     controller.NewWishlistController(wishlistRepo),
		Coupon:       controller.NewCouponController(couponRepo),
		Order:        controller.NewOrderController(orderService),
		Upload:       controller.NewUploadController(uploadService),
		Report:       controller.NewReportController(reportService),
	}

	handler := router.SetupRoutes(controllers, router.Options{
		Tokens:    authService,
		StaticDir: staticDir,
	})

	return &App{Handler: handler, redis: redisClient}, nil
}
