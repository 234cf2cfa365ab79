package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"github.com/Alceujrab/sisloc-sub000/internal/cache"
	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/jobs"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/notifier"
	"github.com/Alceujrab/sisloc-sub000/internal/repository/postgres"
	"github.com/Alceujrab/sisloc-sub000/internal/scheduler"
	"github.com/Alceujrab/sisloc-sub000/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'sweep-expired-holds', 'warm-group-minimums', 'all')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Reservation Engine Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
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

	// Initialize Services. The sweep only needs the expiry transition, so
	// the gateway stays nil and notifications go to the log.
	clock := service.SystemClock()
	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	minimumCache := cache.NewMemoryCache(ttl)
	priceCacheSvc := service.NewPriceCacheService(store.VehicleRepository, minimumCache, clock)
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
		nil,
		notifier.NewLogNotifier(),
		priceCacheSvc,
		clock,
		cfg,
	)

	jobServices := &jobs.Services{
		Reservation: reservationSvc,
		PriceCache:  priceCacheSvc,
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(db, store, jobServices, cfg, clock)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "sweep-expired-holds":
		jobRunner.SweepExpiredHolds()
	case "warm-group-minimums":
		jobRunner.WarmGroupMinimums()
	case "all":
		jobRunner.RunAllJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - sweep-expired-holds\n")
		fmt.Printf("  - warm-group-minimums\n")
		fmt.Printf("  - all\n")
		os.Exit(1)
	}
}
