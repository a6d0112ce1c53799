package model

// RiskType is the category of anomaly an analyzer detects.
type RiskType string

const (
	RiskTypeEmotionPattern RiskType = "EMOTION_PATTERN"
	RiskTypeNoResponse     RiskType = "NO_RESPONSE"
	RiskTypeKeyword        RiskType = "KEYWORD"
)

// AlertLevel is the severity assigned to a detected anomaly.
type AlertLevel string

const (
	AlertLevelNone      AlertLevel = "NONE"
	AlertLevelMedium    AlertLevel = "MEDIUM"
	AlertLevelHigh      AlertLevel = "HIGH"
	AlertLevelEmergency AlertLevel = "EMERGENCY"
)

// Severity returns a comparable rank for the level. Higher is more severe.
func (l AlertLevel) Severity() int {
	switch l {
	case AlertLevelEmergency:
		return 3
	case AlertLevelHigh:
		return 2
	case AlertLevelMedium:
		return 1
	default:
		return 0
	}
}

// ParseAlertLevel maps a config string to an AlertLevel, defaulting to HIGH.
func ParseAlertLevel(s string) AlertLevel {
	switch AlertLevel(s) {
	case AlertLevelNone, AlertLevelMedium, AlertLevelHigh, AlertLevelEmergency:
		return AlertLevel(s)
	default:
		return AlertLevelHigh
	}
}

// EmotionType is the emotion label attached to a conversation message.
type EmotionType string

const (
	EmotionPositive EmotionType = "POSITIVE"
	EmotionNeutral  EmotionType = "NEUTRAL"
	EmotionNegative EmotionType = "NEGATIVE"
)

// NotificationType categorizes what a notification is about.
type NotificationType string

const (
	NotificationTypeDailyCheck      NotificationType = "DAILY_CHECK"
	NotificationTypeEmotionAlert    NotificationType = "EMOTION_ALERT"
	NotificationTypeNoResponseAlert NotificationType = "NO_RESPONSE_ALERT"
	NotificationTypeKeywordAlert    NotificationType = "KEYWORD_ALERT"
	NotificationTypeSystem          NotificationType = "SYSTEM"
)

// NotificationTypeForRisk maps a risk type to its notification type.
func NotificationTypeForRisk(rt RiskType) NotificationType {
	switch rt {
	case RiskTypeEmotionPattern:
		return NotificationTypeEmotionAlert
	case RiskTypeNoResponse:
		return NotificationTypeNoResponseAlert
	case RiskTypeKeyword:
		return NotificationTypeKeywordAlert
	default:
		return NotificationTypeSystem
	}
}

// NotificationSourceType names the subsystem that originated a notification.
type NotificationSourceType string

const (
	NotificationSourceDailyCheck NotificationSourceType = "DAILY_CHECK"
	NotificationSourceAlertRule  NotificationSourceType = "ALERT_RULE"
	NotificationSourceSystem     NotificationSourceType = "SYSTEM"
)

// NotificationChannelType identifies the concrete transport used for delivery.
type NotificationChannelType string

const (
	ChannelPush    NotificationChannelType = "PUSH"
	ChannelEmail   NotificationChannelType = "EMAIL"
	ChannelSMS     NotificationChannelType = "SMS"
	ChannelWebhook NotificationChannelType = "WEBHOOK"
	ChannelMock    NotificationChannelType = "MOCK"
)
