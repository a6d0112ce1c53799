package usecase

import (
	"context"

	"carewatch/internal/model"
	"carewatch/internal/notification"
	"carewatch/internal/notification/repository"
)

// SweepPendingRetries drains the due retry records. Each record gets one
// delivery attempt per pass: success or exceeding the ceiling closes the
// record, failure under the ceiling pushes it forward. A record that
// cannot be updated is left for the next pass.
func (uc *implUseCase) SweepPendingRetries(ctx context.Context) (notification.SweepOutput, error) {
	now := uc.clock()
	records, err := uc.repo.ListDueRetryRecords(ctx, repository.ListDueRetryRecordsOptions{
		Now:   now,
		Limit: uc.cfg.BatchLimit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.SweepPendingRetries.ListDueRetryRecords: %v", err)
		return notification.SweepOutput{}, err
	}

	out := notification.SweepOutput{Due: len(records)}
	for _, record := range records {
		switch uc.sweepOne(ctx, record) {
		case sweepDelivered:
			out.Delivered++
		case sweepRescheduled:
			out.Rescheduled++
		case sweepAbandoned:
			out.Abandoned++
		}
	}

	if out.Due > 0 {
		uc.l.Infof(ctx, "internal.notification.usecase.SweepPendingRetries: due=%d delivered=%d rescheduled=%d abandoned=%d",
			out.Due, out.Delivered, out.Rescheduled, out.Abandoned)
	}
	return out, nil
}

type sweepOutcome int

const (
	sweepSkipped sweepOutcome = iota
	sweepDelivered
	sweepRescheduled
	sweepAbandoned
)

func (uc *implUseCase) sweepOne(ctx context.Context, record model.RetryRecord) sweepOutcome {
	input := notification.SendInput{
		UserID:  record.UserID,
		Title:   record.Title,
		Message: record.Message,
		Source: model.Provenance{
			Type:     model.NotificationTypeSystem,
			Source:   model.NotificationSourceSystem,
			EntityID: record.ID,
		},
	}

	_, sendErr := uc.notifier.Send(ctx, input)
	if sendErr == nil {
		record.MarkCompleted()
		if err := uc.repo.UpdateRetryRecord(ctx, record); err != nil {
			uc.l.Errorf(ctx, "internal.notification.usecase.sweepOne: record %d close failed: %v", record.ID, err)
			return sweepSkipped
		}
		return sweepDelivered
	}

	record.IncrementRetry(uc.clock())
	outcome := sweepRescheduled
	if record.RetryCount >= uc.cfg.MaxRetries {
		record.MarkCompleted()
		outcome = sweepAbandoned
		uc.l.Warnf(ctx, "internal.notification.usecase.sweepOne: record %d abandoned after %d retries: %v",
			record.ID, record.RetryCount, sendErr)
	}
	if err := uc.repo.UpdateRetryRecord(ctx, record); err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.sweepOne: record %d update failed: %v", record.ID, err)
		return sweepSkipped
	}
	return outcome
}
