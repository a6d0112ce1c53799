package postgres

import (
	"context"

	"carewatch/internal/model"
	"carewatch/internal/notification/repository"
)

func (r *implRepository) CreateRetryRecord(ctx context.Context, opts repository.CreateRetryRecordOptions) (model.RetryRecord, error) {
	record := opts.Record
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.CreateRetryRecord.Create: %v", err)
		return model.RetryRecord{}, err
	}

	return record, nil
}

func (r *implRepository) ListDueRetryRecords(ctx context.Context, opts repository.ListDueRetryRecordsOptions) ([]model.RetryRecord, error) {
	q := r.db.WithContext(ctx).
		Where("completed = ? AND scheduled_time <= ?", false, opts.Now).
		Order("scheduled_time ASC")
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}

	var records []model.RetryRecord
	if err := q.Find(&records).Error; err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.ListDueRetryRecords.Find: %v", err)
		return nil, err
	}

	return records, nil
}

func (r *implRepository) UpdateRetryRecord(ctx context.Context, record model.RetryRecord) error {
	res := r.db.WithContext(ctx).
		Model(&model.RetryRecord{}).
		Where("id = ?", record.ID).
		Updates(map[string]any{
			"scheduled_time": record.ScheduledTime,
			"retry_count":    record.RetryCount,
			"completed":      record.Completed,
			"updated_at":     r.clock(),
		})
	if res.Error != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.UpdateRetryRecord.Updates: %v", res.Error)
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
