package core

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/atlashr/atlas/core/models"
)

// Store is everything the sync job needs from the surrounding storage
// engine: the advisory lock, the watermark row, and a transactional batch
// boundary over the attendance ledger.
type Store interface {
	// TryLock attempts a non-blocking named lock. false means another run
	// holds it.
	TryLock(ctx context.Context, name string) (bool, error)
	Unlock(ctx context.Context, name string)

	// LastSyncTime reads the watermark, lazily creating the state row.
	LastSyncTime(ctx context.Context) (*time.Time, error)

	// RecordSyncError stamps the error fields without moving the watermark.
	RecordSyncError(ctx context.Context, at time.Time, message string) error

	// Transaction runs fn atomically; any error rolls the whole batch back.
	Transaction(ctx context.Context, fn func(tx Tx) error) error
}

// Tx is the per-batch view inside Store.Transaction.
type Tx interface {
	// EmployeeByExternalID returns (nil, nil) when no employee matches.
	EmployeeByExternalID(externalID string) (*models.Employee, error)
	EventExists(employeeID uuid.UUID, at time.Time) (bool, error)
	CreateEvent(ev *models.AttendanceLog) error

	// AdvanceWatermark moves the watermark and clears the error fields,
	// inside the surrounding transaction.
	AdvanceWatermark(ts time.Time) error
}

// GormStore implements Store over a *gorm.DB that must be pinned to a
// single connection (see core.DatabaseManager.GetDB): MySQL advisory locks
// live on the session, so TryLock and Unlock have to hit the same one.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) TryLock(ctx context.Context, name string) (bool, error) {
	var got sql.NullInt64
	err := s.db.WithContext(ctx).Raw("SELECT GET_LOCK(?, 0)", name).Scan(&got).Error
	if err != nil {
		return false, err
	}
	return got.Valid && got.Int64 == 1, nil
}

func (s *GormStore) Unlock(ctx context.Context, name string) {
	if err := s.db.WithContext(ctx).Exec("SELECT RELEASE_LOCK(?)", name).Error; err != nil {
		log.Printf("[ERROR] failed to release lock %s: %v", name, err)
	}
}

func (s *GormStore) LastSyncTime(ctx context.Context) (*time.Time, error) {
	var state models.SyncState
	err := s.db.WithContext(ctx).
		Where(models.SyncState{Channel: models.SyncChannelAttendance}).
		FirstOrCreate(&state).Error
	if err != nil {
		return nil, err
	}
	return state.LastSyncTime, nil
}

func (s *GormStore) RecordSyncError(ctx context.Context, at time.Time, message string) error {
	return s.db.WithContext(ctx).
		Model(&models.SyncState{}).
		Where("channel = ?", models.SyncChannelAttendance).
		Updates(map[string]interface{}{
			"last_error_at":      at,
			"last_error_message": message,
		}).Error
}

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTx{db: tx})
	})
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) EmployeeByExternalID(externalID string) (*models.Employee, error) {
	var emp models.Employee
	err := t.db.Where("employee_id = ?", externalID).First(&emp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (t *gormTx) EventExists(employeeID uuid.UUID, at time.Time) (bool, error) {
	var n int64
	err := t.db.Model(&models.AttendanceLog{}).
		Where("employee_id = ? AND check_time = ?", employeeID, at).
		Count(&n).Error
	return n > 0, err
}

func (t *gormTx) CreateEvent(ev *models.AttendanceLog) error {
	return t.db.Create(ev).Error
}

func (t *gormTx) AdvanceWatermark(ts time.Time) error {
	return t.db.Model(&models.SyncState{}).
		Where("channel = ?", models.SyncChannelAttendance).
		Updates(map[string]interface{}{
			"last_sync_time":     ts,
			"last_error_at":      nil,
			"last_error_message": nil,
		}).Error
}
