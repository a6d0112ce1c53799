package notification

import (
	"context"

	"carewatch/internal/model"
)

// Service delivers one notification to one user's guardian. Implementations
// are composable: concrete channels sit at the core and the retry, fallback
// and history layers wrap them, all behind this interface.
//
//go:generate mockery --name Service
type Service interface {
	// Send delivers with the SYSTEM notification type.
	Send(ctx context.Context, input SendInput) (SendOutput, error)
	// SendWithType delivers with an explicit notification type.
	SendWithType(ctx context.Context, input SendInput, nType model.NotificationType) (SendOutput, error)
	// Available reports whether the channel can currently deliver.
	Available(ctx context.Context) bool
	// ChannelType identifies the underlying transport.
	ChannelType() model.NotificationChannelType
}

// UseCase is the notification maintenance surface: the deferred-retry
// sweep and the guardian-facing history queries.
type UseCase interface {
	// SweepPendingRetries re-attempts every due RetryRecord once,
	// rescheduling failures until the retry ceiling, then abandoning.
	SweepPendingRetries(ctx context.Context) (SweepOutput, error)
	// GetHistory lists delivery outcomes for one user, newest first.
	GetHistory(ctx context.Context, input GetHistoryInput) (GetHistoryOutput, error)
	// MarkRead sets the read timestamp on one notification, exactly once.
	MarkRead(ctx context.Context, id int64) error
}
