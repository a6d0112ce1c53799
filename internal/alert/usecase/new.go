package usecase

import (
	"time"

	"carewatch/internal/alert"
	"carewatch/internal/alert/repository"
	"carewatch/internal/analyzer"
	convRepo "carewatch/internal/conversation/repository"
	"carewatch/internal/notification"
	userRepo "carewatch/internal/user/repository"
	pkgLog "carewatch/pkg/log"
)

// Config carries the detection-pipeline tunables.
type Config struct {
	// AnalysisDays is the history window length in days.
	AnalysisDays int
	// BatchWorkers caps concurrent per-user units in the batch run.
	// 1 means sequential.
	BatchWorkers int
	// UserTimeout bounds one user's detection in the batch run.
	UserTimeout time.Duration
	// TitleTemplate formats the guardian notification title; it receives
	// the alert level as its single argument.
	TitleTemplate string
}

type implUseCase struct {
	l        pkgLog.Logger
	repo     repository.Repository
	userRepo userRepo.Repository
	convRepo convRepo.Repository
	registry *analyzer.Registry
	notifier notification.Service
	cfg      Config
	clock    func() time.Time
}

func New(
	l pkgLog.Logger,
	repo repository.Repository,
	uRepo userRepo.Repository,
	cRepo convRepo.Repository,
	registry *analyzer.Registry,
	notifier notification.Service,
	cfg Config,
) alert.UseCase {
	if cfg.BatchWorkers < 1 {
		cfg.BatchWorkers = 1
	}
	return &implUseCase{
		l:        l,
		repo:     repo,
		userRepo: uRepo,
		convRepo: cRepo,
		registry: registry,
		notifier: notifier,
		cfg:      cfg,
		clock:    time.Now,
	}
}
