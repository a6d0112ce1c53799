package notification

import (
	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

// SendInput is one delivery request.
type SendInput struct {
	UserID  int64
	Title   string
	Message string
	// Source links the notification back to what caused it.
	Source model.Provenance
}

// SendOutput is the channel's delivery receipt.
type SendOutput struct {
	// ExternalMessageID is the channel-side identifier of the delivered
	// message, when the transport provides one.
	ExternalMessageID string
	Channel           model.NotificationChannelType
}

// SweepOutput summarizes one pass over the due retry records.
type SweepOutput struct {
	Due         int
	Delivered   int
	Rescheduled int
	Abandoned   int
}

// GetHistoryInput filters and paginates delivery outcomes.
type GetHistoryInput struct {
	UserID        int64
	Success       *bool
	Unread        bool
	PaginateQuery paginator.PaginateQuery
}

// GetHistoryOutput is one page of delivery outcomes.
type GetHistoryOutput struct {
	Histories []model.NotificationHistory
	Paginator paginator.Paginator
}
