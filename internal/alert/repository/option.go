package repository

import (
	"time"

	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

// RuleFilter contains filtering options for alert-rule queries.
type RuleFilter struct {
	UserID   int64
	RiskType model.RiskType
}

// ListRulesOptions contains options for listing active rules.
type ListRulesOptions struct {
	Filter RuleFilter
}

// CreateRuleOptions contains options for creating a rule.
type CreateRuleOptions struct {
	Rule model.AlertRule
}

// CreateHistoryOptions contains options for recording an alert occurrence.
type CreateHistoryOptions struct {
	History model.AlertHistory
}

// HistoryFilter contains filtering options for alert-history queries.
type HistoryFilter struct {
	UserID     int64
	AlertLevel model.AlertLevel
	From       time.Time
	To         time.Time
}

// GetHistoryOptions contains options for paginated history listing.
type GetHistoryOptions struct {
	Filter        HistoryFilter
	PaginateQuery paginator.PaginateQuery
}
