package core

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/atlashr/atlas/core/models"
	"github.com/atlashr/atlas/integrations/fingertec"
)

const (
	// DefaultLockName is the named mutex key shared by every invocation of
	// the attendance sync, whatever surface triggered it.
	DefaultLockName = "atlas_attendance_sync"

	// DefaultSource labels ledger rows created by this integration.
	DefaultSource = "FingerTec Device"
)

// DefaultEpoch is the watermark sentinel for a deployment that has never
// synced: the first run fetches the entire device history.
var DefaultEpoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type Alerter interface {
	SendCritical(message string)
}

// Job is the attendance sync orchestrator. One run: lock, read watermark,
// fetch, dedupe and persist in a single transaction, advance the watermark,
// unlock. Run never returns an error; outcomes are reported through logs,
// the sync state row and the alerter, so schedulers can never be crashed
// by a failing sync.
type Job struct {
	Store   Store
	Adapter fingertec.Adapter
	Alerter Alerter

	LockName string
	Epoch    time.Time
	Source   string

	// Now is swappable for tests.
	Now func() time.Time
}

func NewJob(store Store, adapter fingertec.Adapter, alerter Alerter) *Job {
	return &Job{
		Store:    store,
		Adapter:  adapter,
		Alerter:  alerter,
		LockName: DefaultLockName,
		Epoch:    DefaultEpoch,
		Source:   DefaultSource,
		Now:      time.Now,
	}
}

func (j *Job) Run(ctx context.Context) {
	log.Printf("[INFO] attendance sync started")

	acquired, err := j.Store.TryLock(ctx, j.LockName)
	if err != nil {
		log.Printf("[ERROR] failed to acquire sync lock: %v", err)
		return
	}
	if !acquired {
		log.Printf("[INFO] sync job is already running, skipping this run")
		return
	}
	defer j.Store.Unlock(ctx, j.LockName)

	since, err := j.Store.LastSyncTime(ctx)
	if err != nil {
		// recording to the store that just failed may fail too, but the
		// alerter is independent and must still hear about it
		j.fail(ctx, fmt.Errorf("failed to read sync state: %w", err))
		return
	}
	watermark := j.Epoch
	if since != nil {
		watermark = *since
	}
	log.Printf("[INFO] fetching attendance logs after %s", watermark.Format(time.RFC3339Nano))

	if err := j.Adapter.Connect(); err != nil {
		j.fail(ctx, err)
		return
	}
	defer func() {
		if err := j.Adapter.Close(); err != nil {
			log.Printf("[ERROR] failed to close device connection: %v", err)
		}
	}()
	events, err := j.Adapter.FetchSince(watermark)
	if err != nil {
		j.fail(ctx, err)
		return
	}

	if len(events) == 0 {
		// Not an error. Note this also leaves the error fields from a prior
		// failed run in place: only a run that persists new rows clears them.
		log.Printf("[INFO] no new attendance logs found")
		return
	}

	created := 0
	var latest time.Time

	err = j.Store.Transaction(ctx, func(tx Tx) error {
		for _, raw := range events {
			emp, err := tx.EmployeeByExternalID(raw.EmployeeID)
			if err != nil {
				return err
			}
			if emp == nil {
				log.Printf("[WARN] skipping log for unknown employee ID: %s", raw.EmployeeID)
				continue
			}

			exists, err := tx.EventExists(emp.ID, raw.Timestamp)
			if err != nil {
				return err
			}
			if exists {
				log.Printf("[INFO] skipping duplicate log for employee %s at %s",
					raw.EmployeeID, raw.Timestamp.Format(time.RFC3339Nano))
				continue
			}

			ev := &models.AttendanceLog{
				EmployeeID: emp.ID,
				CheckTime:  raw.Timestamp,
				LogType:    models.LogType(raw.Direction),
				Source:     j.Source,
			}
			if err := tx.CreateEvent(ev); err != nil {
				return err
			}

			created++
			// the adapter is not trusted to return events in order
			if raw.Timestamp.After(latest) {
				latest = raw.Timestamp
			}
		}

		if created > 0 {
			return tx.AdvanceWatermark(latest)
		}
		return nil
	})
	if err != nil {
		j.fail(ctx, err)
		return
	}

	log.Printf("[INFO] successfully synced %d of %d attendance logs", created, len(events))
}

// fail records the failure in the sync state and raises a critical alert,
// then lets the run end cleanly. The watermark is never touched here, so
// the next scheduled run retries the same window.
func (j *Job) fail(ctx context.Context, cause error) {
	log.Printf("[ERROR] attendance sync failed: %v", cause)

	if err := j.Store.RecordSyncError(ctx, j.Now().UTC(), cause.Error()); err != nil {
		log.Printf("[ERROR] failed to record sync error: %v", err)
	}

	message := "Attendance sync failed: " + cause.Error()
	if errors.Is(cause, fingertec.ErrConnection) {
		message = "FingerTec device is offline!"
	}
	j.Alerter.SendCritical(message)
}
