package model

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditLog represents a persisted operational audit event (logins, signups,
// rejected ingests, alert dispatch outcomes). Writes are best-effort and
// never block or fail the operation being audited.
type AuditLog struct {
	gorm.Model
	EventType string         `json:"event_type" gorm:"column:event_type;type:varchar(64)"`
	Email     string         `json:"email" gorm:"column:email;type:varchar(191);index"`
	DeviceID  string         `json:"device_id" gorm:"column:device_id;type:varchar(64);index"`
	IP        string         `json:"ip" gorm:"column:ip;type:varchar(45)"`
	UserAgent string         `json:"user_agent" gorm:"column:user_agent;type:varchar(512)"`
	Message   string         `json:"message" gorm:"column:message;type:text"`
	Details   datatypes.JSON `json:"details" gorm:"column:details;type:json"`
}
