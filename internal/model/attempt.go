package model

import (
	"encoding/json"
	"time"
)

// DiagnosticAttempt is one persisted diagnostic run. Result holds the full
// DiagnosticResult serialised as JSON; TakenAt orders history newest-first.
type DiagnosticAttempt struct {
	UUIDBase
	UserID  uint            `gorm:"index;type:bigint unsigned;not null" json:"userId"`
	TakenAt time.Time       `gorm:"index;not null" json:"takenAt"`
	Overall int             `gorm:"default:0" json:"overall"`
	Result  json.RawMessage `gorm:"type:json" json:"result"`
	User    *User           `gorm:"foreignKey:UserID" json:"-"`
}

func (DiagnosticAttempt) TableName() string {
	return "diagnostic_attempts"
}
