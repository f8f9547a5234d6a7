package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/core/models"
	"github.com/atlashr/atlas/web/common"
)

// SyncStatus mirrors the sync state row plus today's ledger activity; it is
// what operators watch to tell whether the device integration is healthy.
type SyncStatus struct {
	LastSyncTime     *time.Time `json:"lastSyncTime"`
	LastErrorAt      *time.Time `json:"lastErrorAt"`
	LastErrorMessage *string    `json:"lastErrorMessage"`
	TodayLogsCount   int64      `json:"todayLogsCount"`
}

// SyncAPI decouples the handlers from the database and the job runner so
// they can be exercised with fakes.
type SyncAPI struct {
	Status  func(ctx context.Context) (*SyncStatus, error)
	Trigger func()
}

func Register(r *gin.RouterGroup, api SyncAPI) {
	r.GET("/status", func(c *gin.Context) {
		status, err := api.Status(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}
		c.JSON(http.StatusOK, common.NewSuccessResponse(status))
	})

	r.POST("/sync/run", func(c *gin.Context) {
		api.Trigger()
		c.JSON(http.StatusAccepted, common.NewSuccessResponse(gin.H{"started": true}))
	})
}

// StatusFromDB builds the status reader over the shared pool.
func StatusFromDB(dm *atlas.DatabaseManager) func(ctx context.Context) (*SyncStatus, error) {
	return func(ctx context.Context) (*SyncStatus, error) {
		var status SyncStatus
		err := dm.Exec(ctx, func(db *gorm.DB) error {
			var state models.SyncState
			err := db.Where(models.SyncState{Channel: models.SyncChannelAttendance}).
				FirstOrCreate(&state).Error
			if err != nil {
				return err
			}
			status.LastSyncTime = state.LastSyncTime
			status.LastErrorAt = state.LastErrorAt
			status.LastErrorMessage = state.LastErrorMessage

			today := time.Now().UTC().Truncate(24 * time.Hour)
			return db.Model(&models.AttendanceLog{}).
				Where("check_time >= ?", today).
				Count(&status.TodayLogsCount).Error
		})
		if err != nil {
			return nil, err
		}
		return &status, nil
	}
}
