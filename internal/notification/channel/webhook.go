package channel

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/friendsofgo/errors"

	"carewatch/internal/model"
	"carewatch/internal/notification"
	pkgLog "carewatch/pkg/log"
)

const (
	userAgent      = "carewatch/1.0"
	maxMessageLen  = 2000
	defaultTimeout = 10 * time.Second
)

var errWebhookURLRequired = errors.New("webhook url is required")

// WebhookConfig configures the guardian webhook channel.
type WebhookConfig struct {
	URL     string
	Timeout time.Duration
}

type webhookChannel struct {
	l      pkgLog.Logger
	url    string
	client *http.Client
}

var _ notification.Service = &webhookChannel{}

// webhookPayload is the wire format posted to the guardian endpoint.
type webhookPayload struct {
	RecipientID int64  `json:"recipient_id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Type        string `json:"type"`
	SourceType  string `json:"source_type"`
	SourceID    int64  `json:"source_id"`
	Timestamp   string `json:"timestamp"`
}

// webhookResponse is the optional acknowledgment body.
type webhookResponse struct {
	MessageID string `json:"message_id"`
}

// NewWebhook builds the guardian webhook channel.
func NewWebhook(l pkgLog.Logger, cfg WebhookConfig) (notification.Service, error) {
	if cfg.URL == "" {
		return nil, errWebhookURLRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &webhookChannel{
		l:   l,
		url: cfg.URL,
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}, nil
}

func (c *webhookChannel) ChannelType() model.NotificationChannelType {
	return model.ChannelWebhook
}

func (c *webhookChannel) Available(ctx context.Context) bool {
	return c.url != ""
}

func (c *webhookChannel) Send(ctx context.Context, input notification.SendInput) (notification.SendOutput, error) {
	return c.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (c *webhookChannel) SendWithType(ctx context.Context, input notification.SendInput, nType model.NotificationType) (notification.SendOutput, error) {
	payload := webhookPayload{
		RecipientID: input.UserID,
		Title:       input.Title,
		Message:     truncate(input.Message, maxMessageLen),
		Type:        string(nType),
		SourceType:  string(input.Source.Source),
		SourceID:    input.Source.EntityID,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return notification.SendOutput{}, notification.NewPermanentError(model.ChannelWebhook,
			errors.Wrap(err, "failed to marshal payload"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return notification.SendOutput{}, notification.NewPermanentError(model.ChannelWebhook,
			errors.Wrap(err, "failed to create request"))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		// Network faults and timeouts are worth retrying.
		return notification.SendOutput{}, notification.NewRetryableError(model.ChannelWebhook,
			errors.Wrap(err, "failed to send request"))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return notification.SendOutput{}, notification.NewRetryableError(model.ChannelWebhook,
			errors.Wrap(err, "failed to read response body"))
	}

	if err := classifyStatus(resp.StatusCode, respBody); err != nil {
		c.l.Warnf(ctx, "internal.notification.channel.webhook.SendWithType: status %d: %s", resp.StatusCode, respBody)
		return notification.SendOutput{}, err
	}

	out := notification.SendOutput{Channel: model.ChannelWebhook}
	var ack webhookResponse
	if json.Unmarshal(respBody, &ack) == nil {
		out.ExternalMessageID = ack.MessageID
	}
	return out, nil
}

// classifyStatus maps HTTP outcomes to retry semantics: server-side and
// throttling failures are retryable, other client errors are not.
func classifyStatus(status int, body []byte) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status >= 500 || status == http.StatusTooManyRequests:
		return notification.NewRetryableError(model.ChannelWebhook,
			errors.Errorf("webhook returned status %d: %s", status, body))
	default:
		return notification.NewPermanentError(model.ChannelWebhook,
			errors.Errorf("webhook returned status %d: %s", status, body))
	}
}

// truncate cuts s to at most maxLen bytes without splitting a rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
