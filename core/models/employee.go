package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Employee is owned by the HR management side of the system. The sync job
// only ever reads it, keyed by the external EmployeeID printed on the badge.
type Employee struct {
	ID           uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	EmployeeID   string     `gorm:"type:varchar(20);uniqueIndex:uq_employee_identifier;not null" json:"employeeId"`
	FullName     string     `gorm:"type:varchar(100);not null" json:"fullName"`
	JobTitle     *string    `gorm:"type:varchar(100)" json:"jobTitle,omitempty"`
	DepartmentID *uuid.UUID `gorm:"type:char(36)" json:"departmentId,omitempty"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	CreatedAt    time.Time  `gorm:"type:datetime(6);not null" json:"createdAt"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
