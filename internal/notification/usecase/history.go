package usecase

import (
	"context"

	"carewatch/internal/notification"
	"carewatch/internal/notification/repository"
)

func (uc *implUseCase) GetHistory(ctx context.Context, input notification.GetHistoryInput) (notification.GetHistoryOutput, error) {
	histories, pag, err := uc.repo.GetHistory(ctx, repository.GetHistoryOptions{
		Filter: repository.HistoryFilter{
			UserID:  input.UserID,
			Success: input.Success,
			Unread:  input.Unread,
		},
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.GetHistory.GetHistory: %v", err)
		return notification.GetHistoryOutput{}, err
	}

	return notification.GetHistoryOutput{Histories: histories, Paginator: pag}, nil
}

func (uc *implUseCase) MarkRead(ctx context.Context, id int64) error {
	if err := uc.repo.MarkRead(ctx, id); err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead.MarkRead: %v", err)
		return err
	}
	return nil
}
