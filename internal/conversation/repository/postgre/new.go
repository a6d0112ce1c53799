package postgres

import (
	"gorm.io/gorm"

	"carewatch/internal/conversation/repository"
	pkgLog "carewatch/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	db *gorm.DB
}

var _ repository.Repository = &implRepository{}

func New(l pkgLog.Logger, db *gorm.DB) *implRepository {
	return &implRepository{
		l:  l,
		db: db,
	}
}
