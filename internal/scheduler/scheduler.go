package scheduler

import (
	"context"
	"errors"

	"github.com/robfig/cron/v3"

	"carewatch/internal/alert"
	"carewatch/internal/notification"
	pkgLog "carewatch/pkg/log"
)

// Config carries the cron expressions for the two background jobs.
type Config struct {
	// DetectionCron fires the daily anomaly-detection batch.
	DetectionCron string
	// RetrySweepCron fires the deferred-retry sweep.
	RetrySweepCron string
}

// Scheduler owns the cron runner for the detection batch and the retry
// sweep. Jobs run in cron's goroutines; overlapping runs of the same job
// are skipped rather than stacked.
type Scheduler struct {
	l       pkgLog.Logger
	cron    *cron.Cron
	alertUC alert.UseCase
	notifUC notification.UseCase
	cfg     Config
}

func New(l pkgLog.Logger, alertUC alert.UseCase, notifUC notification.UseCase, cfg Config) (*Scheduler, error) {
	if alertUC == nil {
		return nil, errors.New("alert usecase is required")
	}
	if notifUC == nil {
		return nil, errors.New("notification usecase is required")
	}

	s := &Scheduler{
		l:       l,
		cron:    cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		alertUC: alertUC,
		notifUC: notifUC,
		cfg:     cfg,
	}

	if _, err := s.cron.AddFunc(cfg.DetectionCron, s.runDetection); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc(cfg.RetrySweepCron, s.runSweep); err != nil {
		return nil, err
	}

	return s, nil
}

// Start launches the cron runner. Non-blocking.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.l.Infof(context.Background(), "internal.scheduler: started, detection=%q sweep=%q",
		s.cfg.DetectionCron, s.cfg.RetrySweepCron)
}

// Stop halts scheduling and waits for running jobs to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) runDetection() {
	ctx := context.Background()
	out, err := s.alertUC.DetectAnomaliesForAllUsers(ctx)
	if err != nil {
		s.l.Errorf(ctx, "internal.scheduler.runDetection: %v", err)
		return
	}
	s.l.Infof(ctx, "internal.scheduler.runDetection: total=%d success=%d failed=%d alerts=%d",
		out.TotalUsers, out.SuccessUsers, out.FailedUsers, out.AlertsTriggered)
}

func (s *Scheduler) runSweep() {
	ctx := context.Background()
	if _, err := s.notifUC.SweepPendingRetries(ctx); err != nil {
		s.l.Errorf(ctx, "internal.scheduler.runSweep: %v", err)
	}
}
