package models

import (
	"time"

	"gorm.io/gorm"
)

// AuditLog is an append-only record of every significant action in the system.
// It does NOT use BaseModel because audit rows are never updated.
type AuditLog struct {
	ID           int64                  `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string                 `json:"username,omitempty" gorm:"type:varchar(100);index"`
	Action       string                 `json:"action" gorm:"type:varchar(50);not null;index"`
	ResourceType string                 `json:"resourceType" gorm:"type:varchar(30);not null;index"`
	ResourceID   *int64                 `json:"resourceID,omitempty" gorm:"index"`
	Details      map[string]interface{} `json:"details,omitempty" gorm:"type:text;serializer:json"`
	IPAddress    string                 `json:"ipAddress,omitempty" gorm:"type:varchar(45)"`
	RequestID    string                 `json:"requestID,omitempty" gorm:"type:varchar(36)"`
	CreatedAt    time.Time              `json:"createdAt" gorm:"not null;index"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	return nil
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditExportCursor tracks the last exported row so the periodic export only
// ships new rows.
type AuditExportCursor struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	LastLogID     int64     `json:"lastLogID" gorm:"not null;default:0"`
	LastExportAt  time.Time `json:"lastExportAt" gorm:"not null"`
	ExportedCount int64     `json:"exportedCount" gorm:"not null;default:0"`
}

func (AuditExportCursor) TableName() string {
	return "audit_export_cursors"
}
