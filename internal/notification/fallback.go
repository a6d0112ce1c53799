package notification

import (
	"context"

	"carewatch/internal/model"
	pkgLog "carewatch/pkg/log"
)

type fallbackService struct {
	l         pkgLog.Logger
	primary   Service
	secondary Service
}

var _ Service = &fallbackService{}

// NewFallback tries the primary channel first and falls back to the
// secondary on any failure. ChannelType reports the primary's transport.
func NewFallback(l pkgLog.Logger, primary, secondary Service) Service {
	return &fallbackService{
		l:         l,
		primary:   primary,
		secondary: secondary,
	}
}

func (s *fallbackService) ChannelType() model.NotificationChannelType {
	return s.primary.ChannelType()
}

func (s *fallbackService) Available(ctx context.Context) bool {
	if s.primary.Available(ctx) {
		return true
	}
	return s.secondary != nil && s.secondary.Available(ctx)
}

func (s *fallbackService) Send(ctx context.Context, input SendInput) (SendOutput, error) {
	return s.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (s *fallbackService) SendWithType(ctx context.Context, input SendInput, nType model.NotificationType) (SendOutput, error) {
	out, err := s.primary.SendWithType(ctx, input, nType)
	if err == nil {
		return out, nil
	}
	if s.secondary == nil {
		return SendOutput{}, err
	}
	if !s.secondary.Available(ctx) {
		s.l.Warnf(ctx, "internal.notification.fallback.SendWithType: user %d secondary %s unavailable",
			input.UserID, s.secondary.ChannelType())
		return SendOutput{}, err
	}

	s.l.Warnf(ctx, "internal.notification.fallback.SendWithType: user %d primary %s failed, using %s: %v",
		input.UserID, s.primary.ChannelType(), s.secondary.ChannelType(), err)
	return s.secondary.SendWithType(ctx, input, nType)
}
