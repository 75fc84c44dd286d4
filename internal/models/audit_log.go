package models

import "time"

type AuditAction string

const (
	ActionRegister    AuditAction = "register"
	ActionLogin       AuditAction = "login"
	ActionLoginFailed AuditAction = "login_failed"
	ActionLogout      AuditAction = "logout"
	ActionTrain       AuditAction = "train"
)

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	Username string      `gorm:"size:255;index"`
	Action   AuditAction `gorm:"size:50;not null"` // one of the Action* constants
	Details  string      `gorm:"type:text"`
}
