package notification

import (
	"context"
	"testing"
	"time"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

func TestHistoryService_OneRowPerCall(t *testing.T) {
	t.Run("retried success still writes a single success row", func(t *testing.T) {
		channel := &scriptedChannel{failures: 2}
		repo := &fakeNotifRepo{}
		svc := NewHistory(pkgLog.NewNoop(),
			NewRetry(pkgLog.NewNoop(), channel, repo, RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0}),
			repo)

		_, err := svc.SendWithType(context.Background(), SendInput{
			UserID: 1, Title: "t", Message: "m",
			Source: model.Provenance{Source: model.NotificationSourceAlertRule, EntityID: 42},
		}, model.NotificationTypeEmotionAlert)
		if err != nil {
			t.Fatalf("SendWithType() error = %v", err)
		}

		if channel.callCount() != 3 {
			t.Errorf("channel calls = %d, want 3", channel.callCount())
		}
		if len(repo.histories) != 1 {
			t.Fatalf("history rows = %d, want exactly 1", len(repo.histories))
		}
		row := repo.histories[0]
		if !row.Success {
			t.Error("row.Success = false, want true")
		}
		if row.ExternalMessageID != "ext-1" {
			t.Errorf("row.ExternalMessageID = %q, want ext-1", row.ExternalMessageID)
		}
		if row.SourceEntityID != 42 {
			t.Errorf("row.SourceEntityID = %d, want 42", row.SourceEntityID)
		}
	})

	t.Run("exhausted delivery writes a single failure row", func(t *testing.T) {
		channel := &scriptedChannel{failures: 10}
		repo := &fakeNotifRepo{}
		svc := NewHistory(pkgLog.NewNoop(),
			NewRetry(pkgLog.NewNoop(), channel, repo, RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, Multiplier: 2.0}),
			repo)

		_, err := svc.SendWithType(context.Background(), SendInput{UserID: 1, Title: "t", Message: "m"}, model.NotificationTypeKeywordAlert)
		if err == nil {
			t.Fatal("SendWithType() error = nil, want failure")
		}

		if len(repo.histories) != 1 {
			t.Fatalf("history rows = %d, want exactly 1", len(repo.histories))
		}
		row := repo.histories[0]
		if row.Success {
			t.Error("row.Success = true, want false")
		}
		if row.ErrorMessage == "" {
			t.Error("row.ErrorMessage empty, want captured error")
		}
		if row.NotificationType != model.NotificationTypeKeywordAlert {
			t.Errorf("row.NotificationType = %v, want KEYWORD_ALERT", row.NotificationType)
		}
	})
}

func TestFallbackService(t *testing.T) {
	t.Run("primary success skips secondary", func(t *testing.T) {
		primary := &scriptedChannel{channelType: model.ChannelWebhook}
		secondary := &scriptedChannel{channelType: model.ChannelMock}
		svc := NewFallback(pkgLog.NewNoop(), primary, secondary)

		out, err := svc.Send(context.Background(), SendInput{UserID: 1})
		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if out.Channel != model.ChannelWebhook {
			t.Errorf("Send() channel = %v, want WEBHOOK", out.Channel)
		}
		if secondary.callCount() != 0 {
			t.Errorf("secondary calls = %d, want 0", secondary.callCount())
		}
	})

	t.Run("primary failure falls back to secondary", func(t *testing.T) {
		primary := &scriptedChannel{channelType: model.ChannelWebhook, failures: 10}
		secondary := &scriptedChannel{channelType: model.ChannelMock}
		svc := NewFallback(pkgLog.NewNoop(), primary, secondary)

		out, err := svc.Send(context.Background(), SendInput{UserID: 1})
		if err != nil {
			t.Fatalf("Send() error = %v", err)
		}
		if out.Channel != model.ChannelMock {
			t.Errorf("Send() channel = %v, want MOCK", out.Channel)
		}
	})

	t.Run("no secondary propagates the primary error", func(t *testing.T) {
		primary := &scriptedChannel{channelType: model.ChannelWebhook, failures: 10}
		svc := NewFallback(pkgLog.NewNoop(), primary, nil)

		if _, err := svc.Send(context.Background(), SendInput{UserID: 1}); err == nil {
			t.Error("Send() error = nil, want primary failure")
		}
	})

	t.Run("unavailable secondary propagates the primary error", func(t *testing.T) {
		primary := &scriptedChannel{channelType: model.ChannelWebhook, failures: 10}
		secondary := &scriptedChannel{channelType: model.ChannelMock, unavailable: true}
		svc := NewFallback(pkgLog.NewNoop(), primary, secondary)

		if _, err := svc.Send(context.Background(), SendInput{UserID: 1}); err == nil {
			t.Error("Send() error = nil, want primary failure")
		}
		if secondary.callCount() != 0 {
			t.Errorf("secondary calls = %d, want 0", secondary.callCount())
		}
	})
}
