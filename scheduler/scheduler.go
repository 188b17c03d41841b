// Package scheduler runs the recurring-deposit job on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"go-budget-api/logger"
	"time"

	"github.com/robfig/cron/v3"
)

// DepositRunner posts the deposits due at a given time.
type DepositRunner interface {
	RunDueDeposits(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron   *cron.Cron
	runner DepositRunner
	now    func() time.Time
}

// New registers the recurring-deposit job under spec (standard 5-field cron).
func New(spec string, runner DepositRunner) (*Scheduler, error) {
	cronLogger := cron.PrintfLogger(logger.Log)
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner: runner,
		now:    time.Now,
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid scheduler cron spec %q: %w", spec, err)
	}
	return s, nil
}

// RunOnce executes the job immediately.
func (s *Scheduler) RunOnce(ctx context.Context) int {
	log := logger.Log.WithField("job", "recurring_deposits")
	log.Info("Running recurring deposit job")

	posted, err := s.runner.RunDueDeposits(ctx, s.now())
	if err != nil {
		log.WithError(err).Error("Recurring deposit job finished with errors")
	}
	log.WithField("posted", posted).Info("Recurring deposit job complete")
	return posted
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, entry := range s.cron.Entries() {
		logger.Log.WithField("next_run", entry.Next).Info("Scheduler started")
	}
}

// Stop halts scheduling and waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		logger.Log.Warn("Scheduler stop timed out with a job still running")
	}
}
