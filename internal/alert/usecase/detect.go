package usecase

import (
	"context"
	"errors"

	"carewatch/internal/alert"
	"carewatch/internal/alert/repository"
	"carewatch/internal/analyzer"
	conversationRepo "carewatch/internal/conversation/repository"
	"carewatch/internal/model"
	monitoredRepo "carewatch/internal/user/repository"
)

func (uc *implUseCase) DetectAnomalies(ctx context.Context, input alert.DetectAnomaliesInput) (alert.DetectAnomaliesOutput, error) {
	user, err := uc.userRepo.Detail(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, monitoredRepo.ErrNotFound) {
			return alert.DetectAnomaliesOutput{}, alert.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.DetectAnomalies.Detail: %v", err)
		return alert.DetectAnomaliesOutput{}, err
	}

	rules, err := uc.repo.ListActiveRules(ctx, repository.ListRulesOptions{
		Filter: repository.RuleFilter{UserID: user.ID},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.DetectAnomalies.ListActiveRules: %v", err)
		return alert.DetectAnomaliesOutput{}, err
	}

	ac, err := uc.buildWindow(ctx, user.ID)
	if err != nil {
		return alert.DetectAnomaliesOutput{}, err
	}

	var out alert.DetectAnomaliesOutput
	var triggerErr error
	for _, rule := range rules {
		// Keyword rules run in the message path, not on the schedule.
		if rule.RiskType == model.RiskTypeKeyword {
			continue
		}

		ac.Rule = rule
		result, err := uc.registry.AnalyzeByType(ctx, rule.RiskType, user, ac)
		if err != nil {
			// One broken rule must not block the rest.
			uc.l.Errorf(ctx, "internal.alert.usecase.DetectAnomalies.AnalyzeByType: rule %d: %v", rule.ID, err)
			continue
		}
		if !result.IsAlert {
			continue
		}
		result.RuleID = rule.ID
		out.Results = append(out.Results, result)

		history, err := uc.TriggerAlert(ctx, alert.TriggerAlertInput{
			User:   user,
			Rule:   rule,
			Result: result,
		})
		if err != nil {
			// A persistence fault is a user-level failure, unlike a broken
			// analyzer. Keep evaluating the remaining rules but surface it.
			uc.l.Errorf(ctx, "internal.alert.usecase.DetectAnomalies.TriggerAlert: rule %d: %v", rule.ID, err)
			triggerErr = err
			continue
		}
		if history != nil {
			out.Triggered = append(out.Triggered, *history)
		}
	}

	return out, triggerErr
}

func (uc *implUseCase) DetectKeywordAlert(ctx context.Context, input alert.DetectKeywordInput) (*model.AlertHistory, error) {
	user, err := uc.userRepo.Detail(ctx, input.UserID)
	if err != nil {
		if errors.Is(err, monitoredRepo.ErrNotFound) {
			return nil, alert.ErrUserNotFound
		}
		uc.l.Errorf(ctx, "internal.alert.usecase.DetectKeywordAlert.Detail: %v", err)
		return nil, err
	}

	msg := input.Message
	if msg == nil {
		loaded, err := uc.convRepo.Detail(ctx, input.MessageID)
		if err != nil {
			if errors.Is(err, conversationRepo.ErrNotFound) {
				return nil, alert.ErrMessageNotFound
			}
			uc.l.Errorf(ctx, "internal.alert.usecase.DetectKeywordAlert.MessageDetail: %v", err)
			return nil, err
		}
		msg = &loaded
	}
	if msg.UserID != user.ID {
		return nil, alert.ErrMessageUserMismatch
	}

	rules, err := uc.repo.ListActiveRules(ctx, repository.ListRulesOptions{
		Filter: repository.RuleFilter{UserID: user.ID, RiskType: model.RiskTypeKeyword},
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.DetectKeywordAlert.ListActiveRules: %v", err)
		return nil, err
	}
	// The global emergency list applies even without a per-user rule.
	if len(rules) == 0 {
		rules = []model.AlertRule{{RiskType: model.RiskTypeKeyword}}
	}

	for _, rule := range rules {
		ac := analyzer.AnalysisContext{
			Rule:          rule,
			Now:           uc.clock(),
			TargetMessage: msg,
		}
		result, err := uc.registry.AnalyzeByType(ctx, model.RiskTypeKeyword, user, ac)
		if err != nil {
			uc.l.Errorf(ctx, "internal.alert.usecase.DetectKeywordAlert.AnalyzeByType: rule %d: %v", rule.ID, err)
			continue
		}
		if !result.IsAlert {
			continue
		}
		result.RuleID = rule.ID

		return uc.TriggerAlert(ctx, alert.TriggerAlertInput{
			User:   user,
			Rule:   rule,
			Result: result,
		})
	}

	return nil, nil
}

func (uc *implUseCase) GetHistory(ctx context.Context, input alert.GetHistoryInput) (alert.GetHistoryOutput, error) {
	histories, pag, err := uc.repo.GetHistory(ctx, repository.GetHistoryOptions{
		Filter: repository.HistoryFilter{
			UserID:     input.UserID,
			AlertLevel: input.AlertLevel,
			From:       input.From,
			To:         input.To,
		},
		PaginateQuery: input.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.GetHistory.GetHistory: %v", err)
		return alert.GetHistoryOutput{}, err
	}

	return alert.GetHistoryOutput{Histories: histories, Paginator: pag}, nil
}

// buildWindow loads the bounded history window once per user; every rule
// evaluation reads from the same snapshot.
func (uc *implUseCase) buildWindow(ctx context.Context, userID int64) (analyzer.AnalysisContext, error) {
	now := uc.clock()
	since := now.AddDate(0, 0, -uc.cfg.AnalysisDays)

	messages, err := uc.convRepo.RecentMessages(ctx, conversationRepo.RecentMessagesOptions{
		UserID: userID,
		Since:  since,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildWindow.RecentMessages: %v", err)
		return analyzer.AnalysisContext{}, err
	}

	checks, err := uc.userRepo.RecentCheckRecords(ctx, monitoredRepo.CheckRecordOptions{
		UserID: userID,
		Since:  since,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.alert.usecase.buildWindow.RecentCheckRecords: %v", err)
		return analyzer.AnalysisContext{}, err
	}

	return analyzer.AnalysisContext{
		Now:          now,
		Days:         uc.cfg.AnalysisDays,
		Messages:     messages,
		CheckRecords: checks,
	}, nil
}
