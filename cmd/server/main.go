package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "github.com/Alceujrab/sisloc-sub000/internal/api/http"
	"github.com/Alceujrab/sisloc-sub000/internal/cache"
	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/gateway"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/notifier"
	"github.com/Alceujrab/sisloc-sub000/internal/repository/postgres"
	"github.com/Alceujrab/sisloc-sub000/internal/security"
	"github.com/Alceujrab/sisloc-sub000/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Reservation Engine...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret)

	// Initialize the Payment Gateway
	var paymentGateway gateway.PaymentGateway
	if cfg.Stripe.SecretKey != "" {
		paymentGateway = gateway.NewStripeGateway(cfg.Stripe.SecretKey)
		logger.Info("Stripe payment gateway configured")
	} else {
		logger.Warn("No stripe secret key configured, deposit holds use local references")
	}

	// Initialize the Notifier
	var notify notifier.Notifier
	if cfg.Sendgrid.APIKey != "" {
		notify = notifier.NewSendgridNotifier(cfg.Sendgrid.APIKey, cfg.Sendgrid.FromName, cfg.Sendgrid.FromEmail, cfg.Sendgrid.OpsEmail)
		logger.Info("Sendgrid notifier configured", "ops_email", cfg.Sendgrid.OpsEmail)
	} else {
		notify = notifier.NewLogNotifier()
		logger.Info("Using log notifier")
	}

	// Initialize the Group-Minimum Cache
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	var minimumCache cache.GroupMinimumCache
	if cfg.Cache.Backend == "redis" {
		redisCache, err := cache.NewRedisCache(cache.RedisOptions{
			Addr:     cfg.GetRedisAddress(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, ttl)
		if err != nil {
			logger.Error("Failed to connect to redis", "error", err)
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		minimumCache = redisCache
		logger.Info("Redis cache backend configured", "address", cfg.GetRedisAddress())
	} else {
		minimumCache = cache.NewMemoryCache(ttl)
		logger.Info("In-memory cache backend configured", "ttl", ttl)
	}

	// Initialize Services
	clock := service.SystemClock()
	priceCacheSvc := service.NewPriceCacheService(store.VehicleRepository, minimumCache, clock)
	loyaltySvc := service.NewLoyaltyService(store.LoyaltyRepository, cfg)
	checker := service.NewAvailabilityChecker(store.ReservationRepository, cfg.Reservation.TurnaroundBufferHours)
	coupons := service.NewCouponResolver(store.CouponRepository, clock)
	deposits := service.NewDepositManager(cfg.Deposit)

	reservationSvc := service.NewReservationService(
		store.VehicleRepository,
		store.ReservationRepository,
		store.PriceRuleRepository,
		store.ReviewRepository,
		checker,
		coupons,
		deposits,
		paymentGateway,
		notify,
		priceCacheSvc,
		clock,
		cfg,
	)
	paymentSvc := service.NewPaymentService(
		store.PaymentRepository,
		store.ReservationRepository,
		store.VehicleRepository,
		loyaltySvc,
		checker,
		paymentGateway,
		notify,
		priceCacheSvc,
		cfg,
	)
	refundSvc := service.NewRefundService(
		store.RefundRepository,
		store.PaymentRepository,
		store.ReservationRepository,
		loyaltySvc,
		paymentGateway,
		notify,
		clock,
	)

	// Initialize HTTP API
	handler := httpapi.NewHandler(reservationSvc, paymentSvc, refundSvc, loyaltySvc, priceCacheSvc)
	router := httpapi.NewRouter(handler, tokenManager)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
