package repository

import "time"

// Filter contains filtering options for monitored-user queries.
type Filter struct {
	IDs               []int64
	DailyCheckEnabled *bool
}

// ListOptions contains options for listing monitored users.
type ListOptions struct {
	Filter Filter
}

// CheckRecordOptions bounds the daily-check window for one user.
// Records are returned newest first.
type CheckRecordOptions struct {
	UserID int64
	Since  time.Time
}
