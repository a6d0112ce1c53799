package model

import "time"

// AlertHistory is the durable record of one triggered alert. The unique
// (user_id, alert_rule_id, alert_date) constraint is the dedup guarantee:
// a rule fires at most once per user per calendar day, enforced by the
// store, not by application-level locking.
type AlertHistory struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64    `gorm:"not null;uniqueIndex:idx_alert_history_dedup;index:idx_alert_history_user_date" json:"user_id"`
	AlertRuleID int64    `gorm:"not null;uniqueIndex:idx_alert_history_dedup" json:"alert_rule_id"`
	RiskType    RiskType `gorm:"type:varchar(30);not null" json:"risk_type"`

	AlertLevel       AlertLevel `gorm:"type:varchar(20);not null" json:"alert_level"`
	AlertMessage     string     `gorm:"type:text;not null" json:"alert_message"`
	DetectionDetails string     `gorm:"type:text" json:"detection_details"`

	// AlertDate is day-truncated for pattern alerts (dedup per day) and an
	// exact timestamp for keyword alerts (same-day repeats allowed).
	AlertDate time.Time `gorm:"not null;uniqueIndex:idx_alert_history_dedup;index:idx_alert_history_user_date" json:"alert_date"`

	NotificationSent   bool       `gorm:"not null;default:false" json:"notification_sent"`
	NotificationSentAt *time.Time `json:"notification_sent_at,omitempty"`
	NotificationResult string     `gorm:"type:text" json:"notification_result"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (AlertHistory) TableName() string { return "alert_histories" }

// NewAlertHistory builds an unsent history row for a triggered alert.
// Keyword alerts keep the exact timestamp; everything else truncates to the
// day so the unique constraint rejects a second same-day alert.
func NewAlertHistory(userID int64, rule *AlertRule, level AlertLevel, message, details string, now time.Time) *AlertHistory {
	alertDate := now
	if rule.RiskType != RiskTypeKeyword {
		alertDate = now.Truncate(24 * time.Hour)
	}
	return &AlertHistory{
		UserID:           userID,
		AlertRuleID:      rule.ID,
		RiskType:         rule.RiskType,
		AlertLevel:       level,
		AlertMessage:     message,
		DetectionDetails: details,
		AlertDate:        alertDate,
		NotificationSent: false,
	}
}

// MarkNotificationSent records a successful dispatch.
func (h *AlertHistory) MarkNotificationSent(result string, at time.Time) {
	h.NotificationSent = true
	h.NotificationSentAt = &at
	h.NotificationResult = result
}

// MarkNotificationFailed records a failed dispatch.
func (h *AlertHistory) MarkNotificationFailed(errMessage string) {
	h.NotificationSent = false
	h.NotificationResult = "FAILED: " + errMessage
}

// IsEmergency reports whether the alert is at the emergency level.
func (h *AlertHistory) IsEmergency() bool {
	return h.AlertLevel == AlertLevelEmergency
}
