package models

import "time"

// SyncChannelAttendance is the fixed channel key for the single logical
// attendance watermark row.
const SyncChannelAttendance = "attendance"

// SyncState holds the per-channel sync watermark. A successful run that
// created at least one row advances LastSyncTime and clears the error
// fields; a failed run sets the error fields and leaves LastSyncTime alone.
// datetime(6) keeps the watermark round-trip exact to the microsecond.
type SyncState struct {
	Channel          string     `gorm:"primaryKey;column:channel;type:varchar(32)" json:"channel"`
	LastSyncTime     *time.Time `gorm:"type:datetime(6)" json:"lastSyncTime"`
	LastErrorAt      *time.Time `gorm:"type:datetime(6)" json:"lastErrorAt"`
	LastErrorMessage *string    `gorm:"type:varchar(500)" json:"lastErrorMessage"`
}

func (SyncState) TableName() string {
	return "sync_states"
}
