package postgres

import (
	"context"

	"carewatch/internal/model"
	"carewatch/internal/user/repository"
	postgresPkg "carewatch/pkg/postgre"
)

func (r *implRepository) Detail(ctx context.Context, id int64) (model.MonitoredUser, error) {
	var usr model.MonitoredUser
	err := r.db.WithContext(ctx).
		Preload("Guardian").
		First(&usr, id).Error
	if err != nil {
		if postgresPkg.IsNotFound(err) {
			return model.MonitoredUser{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.user.repository.postgres.Detail.First: %v", err)
		return model.MonitoredUser{}, err
	}

	return usr, nil
}

func (r *implRepository) List(ctx context.Context, opts repository.ListOptions) ([]model.MonitoredUser, error) {
	q := r.db.WithContext(ctx).Model(&model.MonitoredUser{}).Preload("Guardian")
	q = r.buildListQuery(q, opts.Filter)

	var usrs []model.MonitoredUser
	if err := q.Find(&usrs).Error; err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.List.Find: %v", err)
		return nil, err
	}

	return usrs, nil
}

func (r *implRepository) ListActiveIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&model.MonitoredUser{}).
		Where("daily_check_enabled = ?", true).
		Order("id ASC").
		Pluck("id", &ids).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.ListActiveIDs.Pluck: %v", err)
		return nil, err
	}

	return ids, nil
}

func (r *implRepository) RecentCheckRecords(ctx context.Context, opts repository.CheckRecordOptions) ([]model.DailyCheckRecord, error) {
	var recs []model.DailyCheckRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND check_date >= ?", opts.UserID, opts.Since).
		Order("check_date DESC").
		Find(&recs).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.user.repository.postgres.RecentCheckRecords.Find: %v", err)
		return nil, err
	}

	return recs, nil
}
