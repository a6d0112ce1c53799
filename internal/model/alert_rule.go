package model

import (
	"strings"
	"time"
)

// AlertRule defines one risk-detection rule for one user. Rules are created
// by the admin flow and are read-only to the detection pipeline.
type AlertRule struct {
	ID       int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID   int64    `gorm:"not null;index:idx_alert_rule_user_active" json:"user_id"`
	RiskType RiskType `gorm:"type:varchar(30);not null" json:"risk_type"`

	RuleName        string `gorm:"not null" json:"rule_name"`
	RuleDescription string `gorm:"type:text" json:"rule_description"`

	// Condition parameters. Which fields apply depends on RiskType.
	ConsecutiveDays int    `json:"consecutive_days"`
	ThresholdCount  int    `json:"threshold_count"`
	Keywords        string `gorm:"type:text" json:"keywords"` // comma separated

	AlertLevel AlertLevel `gorm:"type:varchar(20);not null" json:"alert_level"`
	Active     bool       `gorm:"not null;default:true;index:idx_alert_rule_user_active" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (AlertRule) TableName() string { return "alert_rules" }

// KeywordList splits the stored keyword string into trimmed entries.
func (r *AlertRule) KeywordList() []string {
	if r.Keywords == "" {
		return nil
	}
	parts := strings.Split(r.Keywords, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if kw := strings.TrimSpace(p); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// NewEmotionPatternRule builds a rule that alerts on consecutive negative emotion.
func NewEmotionPatternRule(userID int64, consecutiveDays int, level AlertLevel) *AlertRule {
	return &AlertRule{
		UserID:          userID,
		RiskType:        RiskTypeEmotionPattern,
		RuleName:        "consecutive negative emotion",
		RuleDescription: "alert when negative emotion persists for consecutive days",
		ConsecutiveDays: consecutiveDays,
		ThresholdCount:  1,
		AlertLevel:      level,
		Active:          true,
	}
}

// NewNoResponseRule builds a rule that alerts on missed daily check-ins.
func NewNoResponseRule(userID int64, noResponseDays int, level AlertLevel) *AlertRule {
	return &AlertRule{
		UserID:          userID,
		RiskType:        RiskTypeNoResponse,
		RuleName:        "no response",
		RuleDescription: "alert when daily check-ins go unanswered for consecutive days",
		ConsecutiveDays: noResponseDays,
		ThresholdCount:  1,
		AlertLevel:      level,
		Active:          true,
	}
}

// NewKeywordRule builds a rule that alerts on risky keywords in messages.
func NewKeywordRule(userID int64, keywords string, level AlertLevel) *AlertRule {
	return &AlertRule{
		UserID:          userID,
		RiskType:        RiskTypeKeyword,
		RuleName:        "keyword detection",
		RuleDescription: "alert when a risk keyword appears in a message",
		Keywords:        keywords,
		AlertLevel:      level,
		Active:          true,
	}
}
