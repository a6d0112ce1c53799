package postgres

import (
	"gorm.io/gorm"

	"carewatch/internal/alert/repository"
)

func (r *implRepository) buildHistoryQuery(q *gorm.DB, f repository.HistoryFilter) *gorm.DB {
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.AlertLevel != "" {
		q = q.Where("alert_level = ?", f.AlertLevel)
	}
	if !f.From.IsZero() {
		q = q.Where("alert_date >= ?", f.From)
	}
	if !f.To.IsZero() {
		q = q.Where("alert_date < ?", f.To)
	}
	return q
}
