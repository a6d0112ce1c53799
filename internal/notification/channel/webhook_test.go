package channel

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"unicode/utf8"

	"carewatch/internal/model"
	"carewatch/internal/notification"
	pkgLog "carewatch/pkg/log"
)

func TestWebhookChannel_Send(t *testing.T) {
	var received webhookPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content-type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(webhookResponse{MessageID: "wh-123"})
	}))
	defer srv.Close()

	svc, err := NewWebhook(pkgLog.NewNoop(), WebhookConfig{URL: srv.URL})
	if err != nil {
		t.Fatalf("NewWebhook() error = %v", err)
	}

	out, err := svc.SendWithType(context.Background(), notification.SendInput{
		UserID:  10,
		Title:   "[CAREWATCH] HIGH level anomaly detected",
		Message: "kim: negative emotion for 3 consecutive days",
		Source:  model.Provenance{Source: model.NotificationSourceAlertRule, EntityID: 7},
	}, model.NotificationTypeEmotionAlert)
	if err != nil {
		t.Fatalf("SendWithType() error = %v", err)
	}

	if out.ExternalMessageID != "wh-123" {
		t.Errorf("ExternalMessageID = %q, want wh-123", out.ExternalMessageID)
	}
	if out.Channel != model.ChannelWebhook {
		t.Errorf("Channel = %v, want WEBHOOK", out.Channel)
	}
	if received.RecipientID != 10 {
		t.Errorf("payload recipient = %d, want 10", received.RecipientID)
	}
	if received.Type != string(model.NotificationTypeEmotionAlert) {
		t.Errorf("payload type = %q, want EMOTION_ALERT", received.Type)
	}
	if received.SourceID != 7 {
		t.Errorf("payload source id = %d, want 7", received.SourceID)
	}
}

func TestWebhookChannel_StatusClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		wantRetryable bool
	}{
		{"server error is retryable", http.StatusInternalServerError, true},
		{"throttling is retryable", http.StatusTooManyRequests, true},
		{"bad request is permanent", http.StatusBadRequest, false},
		{"not found is permanent", http.StatusNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			svc, err := NewWebhook(pkgLog.NewNoop(), WebhookConfig{URL: srv.URL})
			if err != nil {
				t.Fatalf("NewWebhook() error = %v", err)
			}

			_, err = svc.Send(context.Background(), notification.SendInput{UserID: 1, Title: "t", Message: "m"})
			if err == nil {
				t.Fatal("Send() error = nil, want failure")
			}
			if got := notification.IsRetryable(err); got != tt.wantRetryable {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.wantRetryable)
			}
		})
	}
}

func TestWebhookChannel_RequiresURL(t *testing.T) {
	if _, err := NewWebhook(pkgLog.NewNoop(), WebhookConfig{}); err == nil {
		t.Error("NewWebhook() error = nil, want missing-url error")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		s      string
		maxLen int
		want   string
	}{
		{"short passes through", "괜찮아요", 20, "괜찮아요"},
		{"ascii cut", "abcdefghij", 8, "abcde..."},
		// Each hangul syllable is 3 bytes; the cut point lands mid-rune
		// and must back up to the previous boundary.
		{"multibyte boundary", "병원병원", 10, "병원..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.s, tt.maxLen)
			if got != tt.want {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.maxLen, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("truncate(%q, %d) = %q, invalid UTF-8", tt.s, tt.maxLen, got)
			}
			if len(got) > tt.maxLen {
				t.Errorf("truncate(%q, %d) len = %d, want <= %d", tt.s, tt.maxLen, len(got), tt.maxLen)
			}
		})
	}
}

func TestMockChannel(t *testing.T) {
	svc := NewMock(pkgLog.NewNoop())

	if svc.ChannelType() != model.ChannelMock {
		t.Errorf("ChannelType() = %v, want MOCK", svc.ChannelType())
	}
	if !svc.Available(context.Background()) {
		t.Error("Available() = false, want true")
	}

	out, err := svc.Send(context.Background(), notification.SendInput{UserID: 1, Title: "t", Message: "m"})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if out.ExternalMessageID == "" {
		t.Error("ExternalMessageID empty, want generated id")
	}
}
