package model

import "time"

// MonitoredUser is an elderly user enrolled in daily monitoring.
// Account management lives outside this service; the pipeline only reads
// the id list and the guardian linkage.
type MonitoredUser struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	DailyCheckEnabled bool      `gorm:"not null;default:true;index" json:"daily_check_enabled"`
	GuardianID        *int64    `gorm:"index" json:"guardian_id,omitempty"`
	Guardian          *Guardian `gorm:"foreignKey:GuardianID" json:"guardian,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (MonitoredUser) TableName() string { return "monitored_users" }

// HasGuardian reports whether alerts for this user have a recipient.
func (u *MonitoredUser) HasGuardian() bool {
	return u.GuardianID != nil
}

// Guardian is the designated alert recipient for a monitored user.
type Guardian struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the default GORM table name.
func (Guardian) TableName() string { return "guardians" }
