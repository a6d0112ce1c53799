package repository

import (
	"context"

	"carewatch/internal/model"
)

//go:generate mockery --name Repository
type Repository interface {
	Detail(ctx context.Context, id int64) (model.MonitoredUser, error)
	List(ctx context.Context, opts ListOptions) ([]model.MonitoredUser, error)
	ListActiveIDs(ctx context.Context) ([]int64, error)
	RecentCheckRecords(ctx context.Context, opts CheckRecordOptions) ([]model.DailyCheckRecord, error)
}
