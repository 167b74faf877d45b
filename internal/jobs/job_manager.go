package jobs

import (
	"fmt"

	"go.uber.org/zap"
)

// Job is a scheduled background task.
type Job interface {
	Name() string
	Start() error
	Stop()
}

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	jobs   []Job
	logger *zap.Logger
}

func NewJobManager(logger *zap.Logger, jobs ...Job) *JobManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobManager{jobs: jobs, logger: logger.With(zap.String("component", "job_manager"))}
}

// StartAll starts the jobs in order. If one fails, the already started jobs
// are stopped again.
func (jm *JobManager) StartAll() error {
	for i, job := range jm.jobs {
		if err := job.Start(); err != nil {
			for j := i - 1; j >= 0; j-- {
				jm.jobs[j].Stop()
			}
			return fmt.Errorf("failed to start %s job: %w", job.Name(), err)
		}
	}
	jm.logger.Info("jobs started", zap.Int("count", len(jm.jobs)))
	return nil
}

// StopAll stops the jobs in reverse order and waits for running executions.
func (jm *JobManager) StopAll() {
	for i := len(jm.jobs) - 1; i >= 0; i-- {
		jm.jobs[i].Stop()
	}
	jm.logger.Info("jobs stopped")
}
