package jobs

import (
	"context"
	"errors"
	"time"

	"amendments/internal/core/application/usecases/commands"
	"amendments/internal/pkg/errs"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const (
	DefaultExpirationSchedule  = "@every 1m"
	DefaultExpirationBatchSize = 100
)

// ExpireAmendmentsHandler runs one expiration batch and reports how many
// amendments it expired.
type ExpireAmendmentsHandler interface {
	Handle(ctx context.Context, command commands.ExpireAmendmentsCommand) (int, error)
}

type ExpirationConfig struct {
	Schedule  string
	BatchSize int
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
}

// ExpirationJob periodically sweeps overdue pending amendments.
type ExpirationJob struct {
	handler  ExpireAmendmentsHandler
	command  commands.ExpireAmendmentsCommand
	schedule string
	timeout  time.Duration
	cron     *cron.Cron
	logger   *zap.Logger
}

func NewExpirationJob(handler ExpireAmendmentsHandler, cfg ExpirationConfig, logger *zap.Logger) (*ExpirationJob, error) {
	if handler == nil {
		return nil, errs.NewValueIsRequiredError("handler")
	}
	if cfg.Schedule == "" {
		cfg.Schedule = DefaultExpirationSchedule
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = DefaultExpirationBatchSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	command, err := commands.NewExpireAmendmentsCommand(cfg.BatchSize)
	if err != nil {
		return nil, err
	}

	logger = logger.With(zap.String("component", "expiration_job"))
	cronLogger := zapCronLogger{logger: logger}

	return &ExpirationJob{
		handler:  handler,
		command:  command,
		schedule: cfg.Schedule,
		timeout:  cfg.Timeout,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}, nil
}

func (j *ExpirationJob) Name() string {
	return "expiration"
}

// Start schedules the sweep.
func (j *ExpirationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.tick); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("expiration schedule", err)
	}

	j.cron.Start()
	j.logger.Info("expiration job started", zap.String("schedule", j.schedule))
	return nil
}

// Stop unschedules the sweep and waits for a running sweep to finish.
func (j *ExpirationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("expiration job stopped")
}

// Run expires overdue amendments batch by batch until a batch comes back
// short, and returns the total. On error the total of the committed batches
// is returned with it.
func (j *ExpirationJob) Run(ctx context.Context) (int, error) {
	total := 0
	for {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		n, err := j.handler.Handle(ctx, j.command)
		total += n
		if err != nil {
			return total, err
		}
		if n < j.command.BatchSize() {
			return total, nil
		}
	}
}

func (j *ExpirationJob) tick() {
	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	started := time.Now()
	total, err := j.Run(ctx)
	if err != nil {
		level := zap.ErrorLevel
		// A lost race against a concurrent decision is retried on the next tick.
		if errors.Is(err, errs.ErrConcurrencyConflict) {
			level = zap.WarnLevel
		}
		j.logger.Log(level, "expiration sweep failed", zap.Int("expired", total), zap.Error(err))
		return
	}
	if total > 0 {
		j.logger.Info("expiration sweep finished",
			zap.Int("expired", total),
			zap.Duration("took", time.Since(started)),
		)
	}
}

// zapCronLogger adapts zap to the cron.Logger interface. Routine scheduler
// chatter goes to debug.
type zapCronLogger struct {
	logger *zap.Logger
}

func (l zapCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l zapCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
