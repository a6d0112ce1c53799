package notification

import (
	"context"
	"time"

	"carewatch/internal/model"
	"carewatch/internal/notification/repository"
	pkgLog "carewatch/pkg/log"
)

// RetryConfig tunes the in-process retry around a single send.
type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	Multiplier   float64
}

// DefaultRetryConfig mirrors the documented posture: 1s, doubling, 3 attempts.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Second,
		Multiplier:   2.0,
	}
}

type retryService struct {
	l     pkgLog.Logger
	inner Service
	repo  repository.Repository
	cfg   RetryConfig
	clock func() time.Time
}

var _ Service = &retryService{}

// NewRetry wraps a channel with bounded exponential backoff. Only errors
// carrying retryable semantics are re-attempted. When attempts are
// exhausted a RetryRecord is persisted so the sweep can try again later;
// repo may be nil to disable that.
func NewRetry(l pkgLog.Logger, inner Service, repo repository.Repository, cfg RetryConfig) Service {
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &retryService{
		l:     l,
		inner: inner,
		repo:  repo,
		cfg:   cfg,
		clock: time.Now,
	}
}

func (s *retryService) ChannelType() model.NotificationChannelType {
	return s.inner.ChannelType()
}

func (s *retryService) Available(ctx context.Context) bool {
	return s.inner.Available(ctx)
}

func (s *retryService) Send(ctx context.Context, input SendInput) (SendOutput, error) {
	return s.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (s *retryService) SendWithType(ctx context.Context, input SendInput, nType model.NotificationType) (SendOutput, error) {
	delay := s.cfg.InitialDelay
	var lastErr error

	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		if attempt > 1 {
			s.l.Infof(ctx, "internal.notification.retry.SendWithType: user %d attempt %d/%d after %s",
				input.UserID, attempt, s.cfg.MaxAttempts, delay)
			if err := sleepCtx(ctx, delay); err != nil {
				return SendOutput{}, err
			}
			delay = time.Duration(float64(delay) * s.cfg.Multiplier)
		}

		out, err := s.inner.SendWithType(ctx, input, nType)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !IsRetryable(err) {
			s.l.Warnf(ctx, "internal.notification.retry.SendWithType: user %d permanent failure: %v", input.UserID, err)
			return SendOutput{}, err
		}
	}

	s.recover(ctx, input)
	return SendOutput{}, lastErr
}

// recover persists a deferred retry once the in-process attempts are spent.
func (s *retryService) recover(ctx context.Context, input SendInput) {
	if s.repo == nil {
		return
	}
	record := model.NewRetryRecord(input.UserID, input.Title, input.Message, s.clock())
	if _, err := s.repo.CreateRetryRecord(ctx, repository.CreateRetryRecordOptions{Record: *record}); err != nil {
		s.l.Errorf(ctx, "internal.notification.retry.recover: user %d: %v", input.UserID, err)
		return
	}
	s.l.Infof(ctx, "internal.notification.retry.recover: user %d deferred retry scheduled for %s",
		input.UserID, record.ScheduledTime.Format(time.RFC3339))
}

// sleepCtx waits for d or until ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
