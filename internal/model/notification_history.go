package model

import "time"

// Provenance carries the audit linkage for a notification: what kind of
// event produced it and which entity it points back to.
type Provenance struct {
	Type     NotificationType
	Source   NotificationSourceType
	EntityID int64
}

// NotificationHistory is the append-only audit record of one delivery
// attempt outcome. Exactly one row is written per dispatcher call,
// regardless of how many in-process retries ran underneath.
type NotificationHistory struct {
	ID      int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID  int64  `gorm:"not null;index:idx_notification_history_user" json:"user_id"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	ChannelType NotificationChannelType `gorm:"type:varchar(20);not null" json:"channel_type"`

	Success           bool   `gorm:"not null" json:"success"`
	ErrorMessage      string `gorm:"type:text" json:"error_message"`
	ExternalMessageID string `json:"external_message_id"`

	NotificationType NotificationType       `gorm:"type:varchar(30)" json:"notification_type"`
	SourceType       NotificationSourceType `gorm:"type:varchar(30)" json:"source_type"`
	SourceEntityID   int64                  `json:"source_entity_id"`

	IsRead bool       `gorm:"not null;default:false" json:"is_read"`
	ReadAt *time.Time `json:"read_at,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_notification_history_user" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (NotificationHistory) TableName() string { return "notification_histories" }

// NewNotificationSuccess builds a success row, optionally with the external
// message id returned by the transport.
func NewNotificationSuccess(userID int64, title, message string, channel NotificationChannelType, externalMessageID string, prov Provenance) *NotificationHistory {
	return &NotificationHistory{
		UserID:            userID,
		Title:             title,
		Message:           message,
		ChannelType:       channel,
		Success:           true,
		ExternalMessageID: externalMessageID,
		NotificationType:  prov.Type,
		SourceType:        prov.Source,
		SourceEntityID:    prov.EntityID,
	}
}

// NewNotificationFailure builds a failure row carrying the captured error.
func NewNotificationFailure(userID int64, title, message string, channel NotificationChannelType, errMessage string, prov Provenance) *NotificationHistory {
	return &NotificationHistory{
		UserID:           userID,
		Title:            title,
		Message:          message,
		ChannelType:      channel,
		Success:          false,
		ErrorMessage:     errMessage,
		NotificationType: prov.Type,
		SourceType:       prov.Source,
		SourceEntityID:   prov.EntityID,
	}
}

// MarkRead sets the read timestamp once; later calls are no-ops.
func (h *NotificationHistory) MarkRead(at time.Time) {
	if h.IsRead {
		return
	}
	h.IsRead = true
	h.ReadAt = &at
}
