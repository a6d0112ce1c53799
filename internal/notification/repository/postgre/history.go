package postgres

import (
	"context"

	"carewatch/internal/model"
	"carewatch/internal/notification/repository"
	"carewatch/pkg/paginator"
)

func (r *implRepository) CreateHistory(ctx context.Context, opts repository.CreateHistoryOptions) (model.NotificationHistory, error) {
	history := opts.History
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.CreateHistory.Create: %v", err)
		return model.NotificationHistory{}, err
	}

	return history, nil
}

func (r *implRepository) GetHistory(ctx context.Context, opts repository.GetHistoryOptions) ([]model.NotificationHistory, paginator.Paginator, error) {
	opts.PaginateQuery.Adjust()

	q := r.db.WithContext(ctx).Model(&model.NotificationHistory{})
	if opts.Filter.UserID != 0 {
		q = q.Where("user_id = ?", opts.Filter.UserID)
	}
	if opts.Filter.Success != nil {
		q = q.Where("success = ?", *opts.Filter.Success)
	}
	if opts.Filter.Unread {
		q = q.Where("is_read = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.GetHistory.Count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	var histories []model.NotificationHistory
	err := q.Order("created_at DESC").
		Limit(int(opts.PaginateQuery.Limit)).
		Offset(int(opts.PaginateQuery.Offset())).
		Find(&histories).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.GetHistory.Find: %v", err)
		return nil, paginator.Paginator{}, err
	}

	return histories, paginator.Paginator{
		Total:       total,
		Count:       int64(len(histories)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}, nil
}

func (r *implRepository) MarkRead(ctx context.Context, id int64) error {
	now := r.clock()
	res := r.db.WithContext(ctx).
		Model(&model.NotificationHistory{}).
		Where("id = ? AND is_read = ?", id, false).
		Updates(map[string]any{
			"is_read": true,
			"read_at": now,
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.Updates: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either missing or already read; distinguish for the caller.
		var count int64
		if err := r.db.WithContext(ctx).Model(&model.NotificationHistory{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
	}

	return nil
}
