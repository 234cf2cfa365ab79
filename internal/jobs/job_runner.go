package jobs

import (
	"database/sql"

	"github.com/Alceujrab/sisloc-sub000/internal/config"
	"github.com/Alceujrab/sisloc-sub000/internal/logger"
	"github.com/Alceujrab/sisloc-sub000/internal/repository/postgres"
	"github.com/Alceujrab/sisloc-sub000/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	db       *sql.DB
	store    *postgres.Store
	services *Services
	config   *config.Config
	clock    service.Clock
}

// Services holds all service dependencies needed by jobs
type Services struct {
	Reservation service.ReservationService
	PriceCache  service.PriceCacheService
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(db *sql.DB, store *postgres.Store, services *Services, cfg *config.Config, clock service.Clock) *JobRunner {
	return &JobRunner{
		db:       db,
		store:    store,
		services: services,
		config:   cfg,
		clock:    clock,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllJobs() {
	jr.SweepExpiredHolds()
	jr.WarmGroupMinimums()
}
