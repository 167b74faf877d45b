// Package jobs provides scheduled background tasks of the amendment engine.
//
// Jobs are cron-based (github.com/robfig/cron/v3). Schedules have seconds
// precision; descriptors such as "@every 1m" are accepted too.
//
// # Available Jobs
//
// ExpirationJob marks pending amendments past their expiration as expired.
// Expiration is enforced lazily on every read and decision, so the job only
// makes the persisted status catch up. Sweeps never overlap: a run that is
// still in progress causes the next tick to be skipped.
//
// # Usage
//
//	job, err := jobs.NewExpirationJob(expireHandler, jobs.ExpirationConfig{
//		Schedule:  "@every 1m",
//		BatchSize: 100,
//	}, logger)
//	if err != nil {
//		return err
//	}
//
//	manager := jobs.NewJobManager(logger, job)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll()
package jobs
