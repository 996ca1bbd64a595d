// Package scheduler runs the background jobs of the service. The only job
// today is the archival retry sweep, which drains medical records whose
// best-effort archival push failed at write time.
package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/chikitsa-health/chikitsa-api/databases"
	"github.com/chikitsa-health/chikitsa-api/pipeline"
)

const (
	archivalSweepJob   = "archival_sweep"
	archivalSweepBatch = 50
)

// Scheduler handles periodic background jobs
type Scheduler struct {
	cron       *cron.Cron
	RecordDB   databases.MedicalRecordDatabase
	LockDB     databases.SchedulerLockDatabase
	Intake     *pipeline.Intake
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(recordDB databases.MedicalRecordDatabase, lockDB databases.SchedulerLockDatabase, intake *pipeline.Intake) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		RecordDB:   recordDB,
		LockDB:     lockDB,
		Intake:     intake,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Retry pending archival pushes every 10 minutes
	_, err := s.cron.AddFunc("*/10 * * * *", s.ProcessArchivalSweep)
	if err != nil {
		zap.S().Errorw("failed to register archival sweep job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("Archival sweep scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Archival sweep scheduler stopped")
}

// ProcessArchivalSweep retries the archival push for records that still lack
// a content address. Each record is retried independently; a failure leaves
// the record marked for the next sweep.
func (s *Scheduler) ProcessArchivalSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	// Try to acquire distributed lock (10 minute TTL)
	acquired, err := s.LockDB.TryAcquireLock(ctx, archivalSweepJob, s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for archival sweep", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Archival sweep already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, archivalSweepJob, s.instanceID)

	records, err := s.RecordDB.FindNeedingArchival(ctx, archivalSweepBatch)
	if err != nil {
		zap.S().Errorw("failed to find records needing archival", "error", err)
		return
	}
	if len(records) == 0 {
		return
	}

	zap.S().Infow("Running archival sweep", "instance", s.instanceID, "pending", len(records))

	archived := 0
	for _, record := range records {
		if err := s.Intake.ArchiveRecord(ctx, record); err != nil {
			zap.S().Warnw("archival retry failed, leaving record for next sweep",
				"recordID", record.ID.Hex(),
				"error", err,
			)
			continue
		}
		archived++
	}

	zap.S().Infow("Archival sweep complete",
		"archived", archived,
		"failed", len(records)-archived,
	)
}
