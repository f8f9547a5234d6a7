package models

import "gorm.io/gorm"

// AutoMigrate creates or updates the schema for every model in this package.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Department{},
		&Employee{},
		&AttendanceLog{},
		&SyncState{},
	)
}
