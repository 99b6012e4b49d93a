// Package jobs provides scheduled housekeeping for the in-memory stores.
//
// Jobs are scheduled with github.com/robfig/cron/v3 using the schedules from the
// settings file ("@every 5m" style descriptors or standard five field cron).
//
// # Available Jobs
//
// 1. SessionSweepJob - drops location picker sessions idle longer than sessions.idleAfter
// 2. PositionEvictionJob - forgets drivers whose devices have not reported for jobs.positionIdleAfter
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sessionStore, deviceFeed, settings, logger)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// A failed start stops the jobs that already started.
package jobs
