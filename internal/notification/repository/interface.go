package repository

import (
	"context"

	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	// CreateHistory appends one delivery-outcome row. The table is
	// append-only; outcomes are never rewritten.
	CreateHistory(ctx context.Context, opts CreateHistoryOptions) (model.NotificationHistory, error)
	GetHistory(ctx context.Context, opts GetHistoryOptions) ([]model.NotificationHistory, paginator.Paginator, error)
	MarkRead(ctx context.Context, id int64) error

	CreateRetryRecord(ctx context.Context, opts CreateRetryRecordOptions) (model.RetryRecord, error)
	ListDueRetryRecords(ctx context.Context, opts ListDueRetryRecordsOptions) ([]model.RetryRecord, error)
	UpdateRetryRecord(ctx context.Context, record model.RetryRecord) error
}
