package jobs

import (
	"fmt"
	"log/slog"

	"printdelivery/internal/config"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	sessionSweepJob     *SessionSweepJob
	positionEvictionJob *PositionEvictionJob
}

// NewJobManager creates the jobs with the schedules from settings.
func NewJobManager(
	sessions SessionSweeper,
	positions PositionEvicter,
	settings config.Settings,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		sessionSweepJob: NewSessionSweepJob(
			sessions, settings.Jobs.SessionSweep, settings.Sessions.IdleAfter, logger),
		positionEvictionJob: NewPositionEvictionJob(
			positions, settings.Jobs.PositionEviction, settings.Jobs.PositionIdleAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.sessionSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start session sweep job: %w", err)
	}

	if err := jm.positionEvictionJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.sessionSweepJob.Stop()
		return fmt.Errorf("failed to start position eviction job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs, waiting for running ones to finish.
func (jm *JobManager) StopAll() {
	jm.positionEvictionJob.Stop()
	jm.sessionSweepJob.Stop()
}
