package postgres

import (
	"context"

	"carewatch/internal/alert/repository"
	"carewatch/internal/model"
	"carewatch/pkg/paginator"
	postgresPkg "carewatch/pkg/postgre"
)

func (r *implRepository) CreateHistory(ctx context.Context, opts repository.CreateHistoryOptions) (model.AlertHistory, error) {
	history := opts.History
	if err := r.db.WithContext(ctx).Create(&history).Error; err != nil {
		if postgresPkg.IsUniqueViolation(err) {
			return model.AlertHistory{}, repository.ErrDuplicateAlert
		}
		r.l.Errorf(ctx, "internal.alert.repository.postgres.CreateHistory.Create: %v", err)
		return model.AlertHistory{}, err
	}

	return history, nil
}

func (r *implRepository) UpdateHistory(ctx context.Context, history model.AlertHistory) error {
	res := r.db.WithContext(ctx).
		Model(&model.AlertHistory{}).
		Where("id = ?", history.ID).
		Updates(map[string]any{
			"notification_sent":    history.NotificationSent,
			"notification_sent_at": history.NotificationSentAt,
			"notification_result":  history.NotificationResult,
			"updated_at":           r.clock(),
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.UpdateHistory.Updates: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *implRepository) GetHistory(ctx context.Context, opts repository.GetHistoryOptions) ([]model.AlertHistory, paginator.Paginator, error) {
	opts.PaginateQuery.Adjust()

	q := r.db.WithContext(ctx).Model(&model.AlertHistory{})
	q = r.buildHistoryQuery(q, opts.Filter)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.GetHistory.Count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	var histories []model.AlertHistory
	err := q.Order("alert_date DESC").
		Limit(int(opts.PaginateQuery.Limit)).
		Offset(int(opts.PaginateQuery.Offset())).
		Find(&histories).Error
	if err != nil {
		r.l.Errorf(ctx, "internal.alert.repository.postgres.GetHistory.Find: %v", err)
		return nil, paginator.Paginator{}, err
	}

	return histories, paginator.Paginator{
		Total:       total,
		Count:       int64(len(histories)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}, nil
}
