package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex:uq_department_name;not null" json:"name"`
	CreatedAt time.Time `gorm:"type:datetime(6);not null" json:"createdAt"`
}

func (Department) TableName() string {
	return "departments"
}

func (d *Department) BeforeCreate(*gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
