package domain

import "time"

// AuditLevel represents the severity of an audit entry
type AuditLevel string

const (
	AuditInfo    AuditLevel = "Info"
	AuditWarning AuditLevel = "Warning"
	AuditError   AuditLevel = "Error"
)

// AuditEntry represents one recorded business operation
type AuditEntry struct {
	ID        int64
	UserID    string // идентификатор актора; "SYSTEM" для системных операций
	Operation string
	Timestamp time.Time
	IsError   bool
	Details   *string
	Level     AuditLevel
}

// AuditFilter фильтр для просмотра журнала операций
type AuditFilter struct {
	Level     *AuditLevel
	UserID    *string
	StartDate *time.Time
	EndDate   *time.Time
	Search    *string // подстрока в Operation или Details
	Page      int
	PageSize  int
}
