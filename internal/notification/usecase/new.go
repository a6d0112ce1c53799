package usecase

import (
	"time"

	"carewatch/internal/notification"
	"carewatch/internal/notification/repository"
	pkgLog "carewatch/pkg/log"
)

// Config tunes the deferred-retry sweep.
type Config struct {
	// MaxRetries is the ceiling on deferred attempts per record; records
	// that still fail afterwards are abandoned.
	MaxRetries int
	// BatchLimit caps records picked up per sweep pass. 0 means all due.
	BatchLimit int
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	notifier notification.Service
	cfg      Config
	clock    func() time.Time
}

func New(l pkgLog.Logger, repo repository.Repository, notifier notification.Service, cfg Config) notification.UseCase {
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 3
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		notifier: notifier,
		cfg:      cfg,
		clock:    time.Now,
	}
}
