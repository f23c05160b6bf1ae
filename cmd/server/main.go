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

	"github.com/gin-gonic/gin"
	catalogapp "github.com/labakery/backend/internal/application/catalog"
	financeapp "github.com/labakery/backend/internal/application/finance"
	identityapp "github.com/labakery/backend/internal/application/identity"
	notificationapp "github.com/labakery/backend/internal/application/notification"
	orderapp "github.com/labakery/backend/internal/application/order"
	reportapp "github.com/labakery/backend/internal/application/report"
	settingsapp "github.com/labakery/backend/internal/application/settings"
	"github.com/labakery/backend/internal/domain/settings"
	"github.com/labakery/backend/internal/domain/shared/valueobject"
	"github.com/labakery/backend/internal/infrastructure/auth"
	"github.com/labakery/backend/internal/infrastructure/cache"
	"github.com/labakery/backend/internal/infrastructure/config"
	"github.com/labakery/backend/internal/infrastructure/event"
	"github.com/labakery/backend/internal/infrastructure/logger"
	"github.com/labakery/backend/internal/infrastructure/notification"
	"github.com/labakery/backend/internal/infrastructure/persistence"
	"github.com/labakery/backend/internal/infrastructure/storage"
	"github.com/labakery/backend/internal/interfaces/http/handler"
	"github.com/labakery/backend/internal/interfaces/http/middleware"
	"github.com/labakery/backend/internal/interfaces/http/router"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "hash-password" {
		os.Exit(hashPassword(os.Args[2:]))
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting bakery backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	ctx := context.Background()
	loc := cfg.App.Location()
	currency, err := valueobject.ParseCurrency(cfg.App.Currency)
	if err != nil {
		log.Fatal("Invalid app.currency", zap.String("currency", cfg.App.Currency), zap.Error(err))
	}
	locale, err := language.Parse(cfg.App.Locale)
	if err != nil {
		log.Warn("Invalid app.locale, formatting amounts with the default locale",
			zap.String("locale", cfg.App.Locale), zap.Error(err))
		locale = language.LatinAmericanSpanish
	}

	// Database
	db, err := persistence.NewDatabase(&cfg.Database, log, cfg.Log.Level)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Redis backs the config cache and the token blacklist when enabled
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() { _ = redisClient.Close() }()
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	// Repositories
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	var settingsRepo settings.StoreConfigRepository = persistence.NewGormStoreConfigRepository(db.DB)
	if redisClient != nil {
		settingsRepo = cache.NewCachedStoreConfigRepository(
			settingsRepo, cache.NewRedisStore(redisClient, cfg.App.Name), cfg.Redis.ConfigTTL, log,
		)
	}

	// Image storage
	imageStorage, err := newImageStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}

	// Application services
	orderService := orderapp.NewOrderService(orderRepo, settingsRepo, log)
	orderService.SetCurrency(currency)
	orderService.SetLocation(loc)
	productService := catalogapp.NewProductService(productRepo, log)
	uploadService := catalogapp.NewUploadService(imageStorage, cfg.HTTP.MaxUploadSize, log)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)
	settingsService := settingsapp.NewSettingsService(settingsRepo, log)
	reportService := reportapp.NewReportService(orderRepo, expenseRepo, productRepo, loc, log)

	// Identity
	var blacklist auth.TokenBlacklist = auth.NewInMemoryTokenBlacklist()
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	}
	if cfg.JWT.Secret == "" {
		log.Warn("jwt.secret is empty, tokens are signed with an insecure key")
	}
	if cfg.Admin.PasswordHash == "" {
		log.Warn("admin.password_hash is empty, admin login is disabled")
	}
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(
		jwtService,
		blacklist,
		identityapp.DefaultAuthServiceConfig(cfg.Admin.Username, cfg.Admin.PasswordHash),
		log,
	)

	// Order notifications
	var sender notificationapp.Sender
	if cfg.Telegram.Enabled {
		telegram, err := notification.NewTelegramClient(cfg.Telegram, notification.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize Telegram client", zap.Error(err))
		}
		sender = telegram
	}
	dispatcher := notificationapp.NewDispatcher(sender, cfg.Telegram.ChatIDs, log)
	orderCreatedHandler := notificationapp.NewOrderCreatedHandler(dispatcher, locale, loc, log)
	orderService.SetNotifier(orderCreatedHandler)

	// Event bus
	eventBus := event.NewAsyncEventBus(log,
		event.WithWorkers(cfg.Event.Workers),
		event.WithQueueSize(cfg.Event.QueueSize),
	)
	eventBus.Subscribe(orderCreatedHandler)
	log.Info("Event handlers registered",
		zap.Strings("order_created_events", orderCreatedHandler.EventTypes()),
	)
	if err := eventBus.Start(ctx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()
	orderService.SetEventPublisher(eventBus)

	// HTTP handlers
	systemHandler := handler.NewSystemHandler(cfg.App.Name)
	systemHandler.AddCheck("database", func(ctx context.Context) error {
		sqlDB, err := db.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	})
	if redisClient != nil {
		systemHandler.AddCheck("redis", func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		})
	}
	handlers := router.Handlers{
		Order:    handler.NewOrderHandler(orderService),
		Product:  handler.NewProductHandler(productService),
		Upload:   handler.NewUploadHandler(uploadService, cfg.HTTP.MaxUploadSize),
		Expense:  handler.NewExpenseHandler(expenseService),
		Settings: handler.NewSettingsHandler(settingsService),
		Report:   handler.NewReportHandler(reportService),
		Auth:     handler.NewAuthHandler(authService),
		System:   systemHandler,
	}

	// Route guards
	adminCfg := middleware.DefaultJWTConfig(jwtService)
	adminCfg.TokenBlacklist = blacklist
	adminCfg.Logger = log
	guards := router.Guards{
		Admin:        middleware.JWTAuthMiddlewareWithConfig(adminCfg),
		OptionalAuth: middleware.OptionalJWTAuthMiddleware(jwtService, blacklist),
		JSONBody:     middleware.BodyLimit(cfg.HTTP.MaxBodySize),
		// Room for multipart framing
		UploadBody: middleware.BodyLimit(cfg.HTTP.MaxUploadSize + 64<<10),
	}
	if cfg.HTTP.RateLimitEnabled {
		checkoutLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer checkoutLimiter.Stop()
		loginLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer loginLimiter.Stop()
		guards.CheckoutLimit = middleware.RateLimit(checkoutLimiter)
		guards.LoginLimit = middleware.RateLimit(loginLimiter)
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	// Amounts go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Failed to set trusted proxies", zap.Error(err))
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders

	// RequestID runs before the logger reads it
	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
	)

	router.Mount(router.NewRouter(engine), handlers, guards)
	engine.GET("/health", systemHandler.Health)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

// newImageStorage returns the S3 storage, or an in-memory one when no
// credentials are configured
func newImageStorage(ctx context.Context, cfg *config.StorageConfig, log *zap.Logger) (catalogapp.ImageStorage, error) {
	if cfg.AccessKey == "" && cfg.SecretKey == "" {
		log.Warn("Object storage credentials missing, product images are kept in memory")
		return storage.NewMemoryImageStorage(cfg.PublicBaseURL), nil
	}

	s3Storage, err := storage.NewS3ImageStorage(cfg, storage.WithLogger(log))
	if err != nil {
		return nil, err
	}
	bucketCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := s3Storage.EnsureBucket(bucketCtx); err != nil {
		return nil, fmt.Errorf("ensure bucket %q: %w", s3Storage.Bucket(), err)
	}
	log.Info("Object storage ready", zap.String("bucket", s3Storage.Bucket()))
	return s3Storage, nil
}

// hashPassword prints the bcrypt hash for admin.password_hash
func hashPassword(args []string) int {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "usage: server hash-password <password>")
		return 2
	}
	hash, err := auth.HashPassword(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		return 1
	}
	fmt.Println(hash)
	return 0
}
