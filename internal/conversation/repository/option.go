package repository

import "time"

// RecentMessagesOptions bounds the conversation window for one user.
// Messages are returned newest first.
type RecentMessagesOptions struct {
	UserID int64
	Since  time.Time
	Limit  int
}
