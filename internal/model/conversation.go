package model

import "time"

// ConversationMessage is one labeled user message from the conversation
// subsystem. Read-only to this service; the emotion and keyword analyzers
// consume it as their history window.
type ConversationMessage struct {
	ID        int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64       `gorm:"not null;index:idx_conversation_user_time" json:"user_id"`
	Content   string      `gorm:"type:text;not null" json:"content"`
	Emotion   EmotionType `gorm:"type:varchar(20);not null" json:"emotion"`
	CreatedAt time.Time   `gorm:"index:idx_conversation_user_time" json:"created_at"`
}

// TableName overrides the default GORM table name.
func (ConversationMessage) TableName() string { return "conversation_messages" }
