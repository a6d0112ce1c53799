package usecase

import (
	"context"
	"strings"
	"testing"

	"carewatch/internal/alert"
	"carewatch/internal/analyzer"
	"carewatch/internal/model"
)

func TestTriggerAlert(t *testing.T) {
	rule := model.AlertRule{ID: 100, UserID: 1, RiskType: model.RiskTypeEmotionPattern, Active: true}
	result := analyzer.NewAlert(model.AlertLevelHigh, model.RiskTypeEmotionPattern, "bad week",
		analyzer.EmotionTrend{ConsecutiveNegativeDays: 3, NegativeRatio: 1.0})
	result.RuleID = rule.ID

	t.Run("records history and marks sent", func(t *testing.T) {
		repo := &fakeAlertRepo{nextID: 200}
		notifier := &fakeNotifier{}
		uc := newTestUseCase(t, repo, &fakeUserRepo{}, &fakeConvRepo{}, notifier)

		user := model.MonitoredUser{ID: 1, Name: "kim", GuardianID: guardianID(10)}
		history, err := uc.TriggerAlert(context.Background(), alert.TriggerAlertInput{User: user, Rule: rule, Result: result})
		if err != nil {
			t.Fatalf("TriggerAlert() error = %v", err)
		}
		if history == nil {
			t.Fatal("TriggerAlert() = nil, want history")
		}
		if !history.NotificationSent {
			t.Error("TriggerAlert() NotificationSent = false, want true")
		}
		if history.NotificationSentAt == nil {
			t.Error("TriggerAlert() NotificationSentAt = nil, want set")
		}
		if !strings.Contains(history.DetectionDetails, "consecutive_negative_days") {
			t.Errorf("TriggerAlert() DetectionDetails = %q, want serialized trend", history.DetectionDetails)
		}
		if got := notifier.calls[0].UserID; got != 10 {
			t.Errorf("notification recipient = %d, want guardian 10", got)
		}
	})

	t.Run("same-day duplicate is suppressed without dispatch", func(t *testing.T) {
		repo := &fakeAlertRepo{nextID: 200}
		notifier := &fakeNotifier{}
		uc := newTestUseCase(t, repo, &fakeUserRepo{}, &fakeConvRepo{}, notifier)

		user := model.MonitoredUser{ID: 1, Name: "kim", GuardianID: guardianID(10)}
		input := alert.TriggerAlertInput{User: user, Rule: rule, Result: result}

		first, err := uc.TriggerAlert(context.Background(), input)
		if err != nil || first == nil {
			t.Fatalf("first TriggerAlert() = (%v, %v), want recorded", first, err)
		}
		second, err := uc.TriggerAlert(context.Background(), input)
		if err != nil {
			t.Fatalf("second TriggerAlert() error = %v", err)
		}
		if second != nil {
			t.Error("second TriggerAlert() recorded, want suppressed")
		}
		if len(repo.histories) != 1 {
			t.Errorf("histories = %d, want 1", len(repo.histories))
		}
		if notifier.callCount() != 1 {
			t.Errorf("sends = %d, want 1", notifier.callCount())
		}
	})

	t.Run("guardian-less user is recorded without dispatch", func(t *testing.T) {
		repo := &fakeAlertRepo{nextID: 200}
		notifier := &fakeNotifier{}
		uc := newTestUseCase(t, repo, &fakeUserRepo{}, &fakeConvRepo{}, notifier)

		user := model.MonitoredUser{ID: 1, Name: "kim"}
		history, err := uc.TriggerAlert(context.Background(), alert.TriggerAlertInput{User: user, Rule: rule, Result: result})
		if err != nil {
			t.Fatalf("TriggerAlert() error = %v", err)
		}
		if history == nil {
			t.Fatal("TriggerAlert() = nil, want history")
		}
		if history.NotificationSent {
			t.Error("NotificationSent = true, want false")
		}
		if !strings.Contains(history.NotificationResult, "no guardian") {
			t.Errorf("NotificationResult = %q, want no-guardian marker", history.NotificationResult)
		}
		if notifier.callCount() != 0 {
			t.Errorf("sends = %d, want 0", notifier.callCount())
		}
	})

	t.Run("dispatch failure keeps the alert with failure recorded", func(t *testing.T) {
		repo := &fakeAlertRepo{nextID: 200}
		notifier := &fakeNotifier{err: errScripted}
		uc := newTestUseCase(t, repo, &fakeUserRepo{}, &fakeConvRepo{}, notifier)

		user := model.MonitoredUser{ID: 1, Name: "kim", GuardianID: guardianID(10)}
		history, err := uc.TriggerAlert(context.Background(), alert.TriggerAlertInput{User: user, Rule: rule, Result: result})
		if err != nil {
			t.Fatalf("TriggerAlert() error = %v", err)
		}
		if history == nil {
			t.Fatal("TriggerAlert() = nil, want history")
		}
		if history.NotificationSent {
			t.Error("NotificationSent = true, want false")
		}
		if !strings.HasPrefix(history.NotificationResult, "FAILED: ") {
			t.Errorf("NotificationResult = %q, want FAILED prefix", history.NotificationResult)
		}
		if len(repo.histories) != 1 {
			t.Errorf("histories = %d, want 1", len(repo.histories))
		}
	})
}
