package database

import (
	"context"

	"defense-dash/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Auditor writes account and training events to the audit table.
// A nil DB turns every call into a no-op.
type Auditor struct {
	DB  *gorm.DB
	Log *zap.Logger
}

func NewAuditor(db *gorm.DB, log *zap.Logger) *Auditor {
	return &Auditor{DB: db, Log: log}
}

func (a *Auditor) Enabled() bool {
	return a != nil && a.DB != nil
}

// Record stores one event. Failures are logged and swallowed.
func (a *Auditor) Record(ctx context.Context, username string, action models.AuditAction, details string) {
	if !a.Enabled() {
		return
	}
	record := models.AuditLog{
		Username: username,
		Action:   action,
		Details:  details,
	}
	if err := a.DB.WithContext(ctx).Create(&record).Error; err != nil {
		a.Log.Warn("failed to write audit log",
			zap.String("action", string(action)),
			zap.String("username", username),
			zap.Error(err),
		)
	}
}

// Recent returns up to limit newest events.
func (a *Auditor) Recent(ctx context.Context, limit int) ([]models.AuditLog, error) {
	if !a.Enabled() {
		return nil, nil
	}
	var logs []models.AuditLog
	err := a.DB.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}
