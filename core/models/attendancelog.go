package models

import (
	"time"

	"github.com/google/uuid"
)

type LogType string

const (
	LogTypeIn  LogType = "IN"
	LogTypeOut LogType = "OUT"
)

// AttendanceLog is the append-only check event ledger. The compound unique
// index on (employee_id, check_time) is the deduplication key the sync job
// relies on; rows are never updated or deleted by the sync path.
type AttendanceLog struct {
	ID         uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	EmployeeID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uq_attendance_employee_time,priority:1;index:idx_att_employee_time,priority:1" json:"employeeId"`
	CheckTime  time.Time `gorm:"type:datetime(6);not null;uniqueIndex:uq_attendance_employee_time,priority:2;index:idx_att_employee_time,priority:2;index:idx_att_time" json:"checkTime"`
	LogType    LogType   `gorm:"type:varchar(3);not null" json:"logType"`
	Source     string    `gorm:"type:varchar(100)" json:"source"`
	CreatedAt  time.Time `gorm:"type:datetime(6);not null" json:"createdAt"`

	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (AttendanceLog) TableName() string {
	return "attendance_logs"
}
