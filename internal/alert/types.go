package alert

import (
	"time"

	"carewatch/internal/analyzer"
	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

// DetectAnomaliesInput selects the user to analyze.
type DetectAnomaliesInput struct {
	UserID int64
}

// DetectAnomaliesOutput reports what the window analysis found and which
// alerts were actually recorded (duplicates are found but not recorded).
type DetectAnomaliesOutput struct {
	Results   []analyzer.AlertResult
	Triggered []model.AlertHistory
}

// DetectKeywordInput carries the message under real-time analysis. When
// Message is nil it is loaded by MessageID.
type DetectKeywordInput struct {
	UserID    int64
	MessageID int64
	Message   *model.ConversationMessage
}

// TriggerAlertInput carries one positive verdict to record and dispatch.
type TriggerAlertInput struct {
	User   model.MonitoredUser
	Rule   model.AlertRule
	Result analyzer.AlertResult
}

// BatchOutput summarizes one run over all monitored users.
type BatchOutput struct {
	TotalUsers      int
	SuccessUsers    int
	FailedUsers     int
	AlertsTriggered int
	Elapsed         time.Duration
}

// GetHistoryInput filters and paginates recorded alerts.
type GetHistoryInput struct {
	UserID        int64
	AlertLevel    model.AlertLevel
	From          time.Time
	To            time.Time
	PaginateQuery paginator.PaginateQuery
}

// GetHistoryOutput is one page of recorded alerts.
type GetHistoryOutput struct {
	Histories []model.AlertHistory
	Paginator paginator.Paginator
}
