package notification

import (
	"context"

	"carewatch/internal/model"
	"carewatch/internal/notification/repository"
	pkgLog "carewatch/pkg/log"
)

type historyService struct {
	l     pkgLog.Logger
	inner Service
	repo  repository.Repository
}

var _ Service = &historyService{}

// NewHistory wraps a dispatcher with audit recording. It must be the
// outermost layer: exactly one NotificationHistory row is appended per
// call, no matter how many retries or fallbacks ran underneath. A failed
// history write never fails the delivery itself.
func NewHistory(l pkgLog.Logger, inner Service, repo repository.Repository) Service {
	return &historyService{
		l:     l,
		inner: inner,
		repo:  repo,
	}
}

func (s *historyService) ChannelType() model.NotificationChannelType {
	return s.inner.ChannelType()
}

func (s *historyService) Available(ctx context.Context) bool {
	return s.inner.Available(ctx)
}

func (s *historyService) Send(ctx context.Context, input SendInput) (SendOutput, error) {
	return s.SendWithType(ctx, input, model.NotificationTypeSystem)
}

func (s *historyService) SendWithType(ctx context.Context, input SendInput, nType model.NotificationType) (SendOutput, error) {
	out, err := s.inner.SendWithType(ctx, input, nType)

	prov := input.Source
	if prov.Type == "" {
		prov.Type = nType
	}

	var row *model.NotificationHistory
	if err != nil {
		row = model.NewNotificationFailure(input.UserID, input.Title, input.Message,
			s.channelOf(out), err.Error(), prov)
	} else {
		row = model.NewNotificationSuccess(input.UserID, input.Title, input.Message,
			out.Channel, out.ExternalMessageID, prov)
	}

	if _, repoErr := s.repo.CreateHistory(ctx, repository.CreateHistoryOptions{History: *row}); repoErr != nil {
		s.l.Errorf(ctx, "internal.notification.history.SendWithType: user %d audit write failed: %v", input.UserID, repoErr)
	}

	return out, err
}

func (s *historyService) channelOf(out SendOutput) model.NotificationChannelType {
	if out.Channel != "" {
		return out.Channel
	}
	return s.inner.ChannelType()
}
