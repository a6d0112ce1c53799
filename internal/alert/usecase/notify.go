package usecase

import (
	"context"
	"fmt"

	"carewatch/internal/model"
	"carewatch/internal/notification"
)

// dispatch sends the recorded alert to the user's guardian and returns a
// short result string for the history row.
func (uc *implUseCase) dispatch(ctx context.Context, user model.MonitoredUser, rule model.AlertRule, history model.AlertHistory) (string, error) {
	input := notification.SendInput{
		UserID:  *user.GuardianID,
		Title:   fmt.Sprintf(uc.cfg.TitleTemplate, history.AlertLevel),
		Message: fmt.Sprintf("%s: %s", user.Name, history.AlertMessage),
		Source: model.Provenance{
			Type:     model.NotificationTypeForRisk(rule.RiskType),
			Source:   model.NotificationSourceAlertRule,
			EntityID: history.ID,
		},
	}

	out, err := uc.notifier.SendWithType(ctx, input, model.NotificationTypeForRisk(rule.RiskType))
	if err != nil {
		return "", err
	}

	result := fmt.Sprintf("sent via %s", out.Channel)
	if out.ExternalMessageID != "" {
		result = fmt.Sprintf("%s (%s)", result, out.ExternalMessageID)
	}
	return result, nil
}
