package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// SessionSweeper drops location picker sessions idle for longer than idle.
type SessionSweeper interface {
	Sweep(idle time.Duration) int
}

// SessionSweepJob periodically forgets idle customer sessions together with
// their recent picks.
type SessionSweepJob struct {
	sessions SessionSweeper
	schedule string
	idle     time.Duration
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewSessionSweepJob(sessions SessionSweeper, schedule string, idle time.Duration, logger *slog.Logger) *SessionSweepJob {
	return &SessionSweepJob{
		sessions: sessions,
		schedule: schedule,
		idle:     idle,
		cron:     cron.New(),
		logger:   logger.With("component", "session_sweep_job"),
	}
}

// Start registers the sweep under its schedule and starts the scheduler.
func (j *SessionSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Session sweep job started", "schedule", j.schedule, "idle", j.idle)
	return nil
}

// Run performs a single sweep.
func (j *SessionSweepJob) Run() {
	if n := j.sessions.Sweep(j.idle); n > 0 {
		j.logger.InfoContext(context.Background(), "Idle sessions swept", "count", n)
	}
}

func (j *SessionSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Session sweep job stopped")
}
