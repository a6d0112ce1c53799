package analyzer

import (
	"time"

	"carewatch/internal/model"
)

// AlertResult is the transient verdict of one analyzer invocation.
// It is never persisted directly; the trigger converts positive results
// into AlertHistory rows.
type AlertResult struct {
	IsAlert  bool
	Level    model.AlertLevel
	RiskType model.RiskType
	RuleID   int64
	Message  string
	Details  any
}

// NoAlert is the negative verdict.
func NoAlert() AlertResult {
	return AlertResult{IsAlert: false, Level: model.AlertLevelNone}
}

// NewAlert builds a positive verdict.
func NewAlert(level model.AlertLevel, riskType model.RiskType, message string, details any) AlertResult {
	return AlertResult{
		IsAlert:  true,
		Level:    level,
		RiskType: riskType,
		Message:  message,
		Details:  details,
	}
}

// AnalysisContext carries everything an analyzer may read: the rule being
// evaluated, the bounded history window, and the evaluation instant.
// The detection service builds one per rule; analyzers never load data.
type AnalysisContext struct {
	Rule model.AlertRule
	Now  time.Time
	Days int

	// Messages is the recent conversation window, newest first.
	Messages []model.ConversationMessage
	// CheckRecords is the recent daily-check window, newest first.
	CheckRecords []model.DailyCheckRecord
	// TargetMessage is the single message under real-time keyword analysis.
	TargetMessage *model.ConversationMessage
}

// EmotionTrend summarizes the day-aggregated emotion window.
type EmotionTrend struct {
	TotalDays               int     `json:"total_days"`
	NegativeDays            int     `json:"negative_days"`
	ConsecutiveNegativeDays int     `json:"consecutive_negative_days"`
	NegativeRatio           float64 `json:"negative_ratio"`
}

// ResponsePattern summarizes the daily-check window.
type ResponsePattern struct {
	TotalCheckDays            int     `json:"total_check_days"`
	ResponseDays              int     `json:"response_days"`
	NoResponseDays            int     `json:"no_response_days"`
	ConsecutiveNoResponseDays int     `json:"consecutive_no_response_days"`
	ResponseRate              float64 `json:"response_rate"`
}

// KeywordMatch records which keyword fired and in which message.
type KeywordMatch struct {
	Keyword string `json:"keyword"`
	Message string `json:"message"`
	Kind    string `json:"kind"` // "emergency" or "warning"
}
