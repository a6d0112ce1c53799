package postgres

import (
	"time"

	"gorm.io/gorm"

	"carewatch/internal/notification/repository"
	pkgLog "carewatch/pkg/log"
)

type implRepository struct {
	l     pkgLog.Logger
	db    *gorm.DB
	clock func() time.Time
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *gorm.DB) *implRepository {
	return &implRepository{
		l:     l,
		db:    db,
		clock: time.Now,
	}
}
