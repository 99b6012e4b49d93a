package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// PositionEvicter forgets drivers whose devices went quiet.
type PositionEvicter interface {
	EvictIdle(idle time.Duration) int
}

// PositionEvictionJob keeps the device feed from growing with drivers that
// stopped reporting.
type PositionEvictionJob struct {
	positions PositionEvicter
	schedule  string
	idle      time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewPositionEvictionJob(positions PositionEvicter, schedule string, idle time.Duration, logger *slog.Logger) *PositionEvictionJob {
	return &PositionEvictionJob{
		positions: positions,
		schedule:  schedule,
		idle:      idle,
		cron:      cron.New(),
		logger:    logger.With("component", "position_eviction_job"),
	}
}

func (j *PositionEvictionJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.Run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Position eviction job started", "schedule", j.schedule, "idle", j.idle)
	return nil
}

// Run performs a single eviction pass.
func (j *PositionEvictionJob) Run() {
	if n := j.positions.EvictIdle(j.idle); n > 0 {
		j.logger.InfoContext(context.Background(), "Idle driver positions evicted", "count", n)
	}
}

func (j *PositionEvictionJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Position eviction job stopped")
}
