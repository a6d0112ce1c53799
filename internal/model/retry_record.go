package model

import "time"

// defaultRetryDelay spaces deferred re-delivery attempts.
const defaultRetryDelay = 5 * time.Minute

// RetryRecord is a deferred re-delivery attempt for a notification whose
// in-process retries were exhausted. A periodic sweep picks up due records.
type RetryRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64     `gorm:"not null;index" json:"user_id"`
	Title         string    `gorm:"not null" json:"title"`
	Message       string    `gorm:"not null" json:"message"`
	ScheduledTime time.Time `gorm:"not null;index" json:"scheduled_time"`
	RetryCount    int       `gorm:"not null;default:0" json:"retry_count"`
	Completed     bool      `gorm:"not null;default:false;index" json:"completed"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (RetryRecord) TableName() string { return "retry_records" }

// NewRetryRecord schedules the first deferred attempt.
func NewRetryRecord(userID int64, title, message string, now time.Time) *RetryRecord {
	return &RetryRecord{
		UserID:        userID,
		Title:         title,
		Message:       message,
		ScheduledTime: now.Add(defaultRetryDelay),
		RetryCount:    0,
		Completed:     false,
	}
}

// IncrementRetry bumps the attempt counter and pushes the schedule forward
// with a progressively longer delay.
func (r *RetryRecord) IncrementRetry(now time.Time) {
	r.RetryCount++
	r.ScheduledTime = now.Add(time.Duration(r.RetryCount) * defaultRetryDelay)
}

// MarkCompleted closes the record, either delivered or abandoned.
func (r *RetryRecord) MarkCompleted() {
	r.Completed = true
}
