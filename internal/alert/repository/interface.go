package repository

import (
	"context"

	"carewatch/internal/model"
	"carewatch/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	ListActiveRules(ctx context.Context, opts ListRulesOptions) ([]model.AlertRule, error)
	DetailRule(ctx context.Context, id int64) (model.AlertRule, error)
	CreateRule(ctx context.Context, opts CreateRuleOptions) (model.AlertRule, error)
	UpdateRuleActive(ctx context.Context, id int64, active bool) error

	// CreateHistory persists a new alert occurrence. A unique-constraint
	// conflict on (user_id, alert_rule_id, alert_date) surfaces as
	// ErrDuplicateAlert.
	CreateHistory(ctx context.Context, opts CreateHistoryOptions) (model.AlertHistory, error)
	UpdateHistory(ctx context.Context, history model.AlertHistory) error
	GetHistory(ctx context.Context, opts GetHistoryOptions) ([]model.AlertHistory, paginator.Paginator, error)
}
