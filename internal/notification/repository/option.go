package repository

import (
	"time"

	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

// CreateHistoryOptions contains options for appending a delivery outcome.
type CreateHistoryOptions struct {
	History model.NotificationHistory
}

// HistoryFilter contains filtering options for notification-history queries.
type HistoryFilter struct {
	UserID  int64
	Success *bool
	Unread  bool
}

// GetHistoryOptions contains options for paginated history listing.
type GetHistoryOptions struct {
	Filter        HistoryFilter
	PaginateQuery paginator.PaginateQuery
}

// CreateRetryRecordOptions contains options for scheduling a deferred retry.
type CreateRetryRecordOptions struct {
	Record model.RetryRecord
}

// ListDueRetryRecordsOptions selects open records whose scheduled time has
// passed.
type ListDueRetryRecordsOptions struct {
	Now   time.Time
	Limit int
}
