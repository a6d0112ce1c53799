package channel

import (
	"context"

	"github.com/google/uuid"

	"carewatch/internal/model"
	"carewatch/internal/notification"
	pkgLog "carewatch/pkg/log"
)

// mockChannel logs deliveries instead of sending them. It serves local
// development and acts as the fallback transport when enabled.
type mockChannel struct {
	l pkgLog.Logger
}

var _ notification.Service = &mockChannel{}

// NewMock builds the logging mock channel.
func NewMock(l pkgLog.Logger) notification.Service {
	return &mockChannel{l: l}
}

func (c *mockChannel) ChannelType() model.NotificationChannelType {
	return model.ChannelMock
}

func (c *mockChannel) Available(ctx context.Context) bool { return true }

func (c *mockChannel) Send(ctx context.Context, input notification.SendInput) (notification.SendOutput, error) {
	return c.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (c *mockChannel) SendWithType(ctx context.Context, input notification.SendInput, nType model.NotificationType) (notification.SendOutput, error) {
	id := uuid.NewString()
	c.l.Infof(ctx, "internal.notification.channel.mock.SendWithType: user=%d type=%s title=%q id=%s",
		input.UserID, nType, input.Title, id)
	return notification.SendOutput{
		ExternalMessageID: id,
		Channel:           model.ChannelMock,
	}, nil
}
