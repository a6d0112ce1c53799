package usecase

import (
	"context"
	"encoding/json"
	"errors"

	"carewatch/internal/alert"
	"carewatch/internal/alert/repository"
	"carewatch/internal/model"
)

// TriggerAlert records one alert occurrence and dispatches it. The history
// row goes in first: its unique constraint is the dedup gate, so a
// duplicate is detected before any notification leaves the system.
// Dispatch failure does not fail the trigger; the occurrence is kept with
// the failure recorded on it.
func (uc *implUseCase) TriggerAlert(ctx context.Context, input alert.TriggerAlertInput) (*model.AlertHistory, error) {
	details := marshalDetails(input.Result.Details)
	history := model.NewAlertHistory(
		input.User.ID,
		&input.Rule,
		input.Result.Level,
		input.Result.Message,
		details,
		uc.clock(),
	)

	created, err := uc.repo.CreateHistory(ctx, repository.CreateHistoryOptions{History: *history})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAlert) {
			uc.l.Debugf(ctx, "internal.alert.usecase.TriggerAlert: user %d rule %d already alerted for %s",
				input.User.ID, input.Rule.ID, history.AlertDate.Format("2006-01-02"))
			return nil, nil
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.TriggerAlert.CreateHistory: %v", err)
		return nil, err
	}

	if !input.User.HasGuardian() {
		uc.l.Warnf(ctx, "internal.alert.usecase.TriggerAlert: user %d has no guardian, alert %d recorded without dispatch",
			input.User.ID, created.ID)
		created.MarkNotificationFailed("no guardian assigned")
	} else if result, err := uc.dispatch(ctx, input.User, input.Rule, created); err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.TriggerAlert.dispatch: alert %d: %v", created.ID, err)
		created.MarkNotificationFailed(err.Error())
	} else {
		created.MarkNotificationSent(result, uc.clock())
	}

	if err := uc.repo.UpdateHistory(ctx, created); err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.TriggerAlert.UpdateHistory: alert %d: %v", created.ID, err)
		return nil, err
	}

	return &created, nil
}

func marshalDetails(details any) string {
	if details == nil {
		return ""
	}
	b, err := json.Marshal(details)
	if err != nil {
		return ""
	}
	return string(b)
}
