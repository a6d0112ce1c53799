package model

import "time"

// DailyCheckRecord is one day's check-in outcome for one user. Rows are
// written by the daily-check subsystem; the no-response analyzer only reads
// them. Unique on (user_id, check_date).
type DailyCheckRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_daily_check_user_date" json:"user_id"`
	CheckDate time.Time `gorm:"not null;uniqueIndex:idx_daily_check_user_date" json:"check_date"`
	Message   string    `gorm:"not null" json:"message"`
	Responded bool      `gorm:"not null" json:"responded"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (DailyCheckRecord) TableName() string { return "daily_check_records" }
