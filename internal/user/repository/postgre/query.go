package postgres

import (
	"gorm.io/gorm"

	"carewatch/internal/user/repository"
)

func (r *implRepository) buildListQuery(q *gorm.DB, f repository.Filter) *gorm.DB {
	if len(f.IDs) > 0 {
		q = q.Where("id IN ?", f.IDs)
	}
	if f.DailyCheckEnabled != nil {
		q = q.Where("daily_check_enabled = ?", *f.DailyCheckEnabled)
	}
	return q
}
