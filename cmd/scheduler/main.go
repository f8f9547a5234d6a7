// Interval scheduler for deployments without an external trigger. Runs the
// sync job immediately and then every SYNC_INTERVAL_MINUTES (default 5).
// Overlap protection lives in the job's advisory lock, not here.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"gorm.io/gorm"

	attendance "github.com/atlashr/atlas/attendance/core"
	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/core/models"
	"github.com/atlashr/atlas/infrastructure/communication"
	"github.com/atlashr/atlas/infrastructure/devops"
	"github.com/atlashr/atlas/integrations/fingertec"
)

func main() {
	minutes := 5
	if v := os.Getenv("SYNC_INTERVAL_MINUTES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			minutes = parsed
		}
	}

	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atlas?parseTime=true"
	}

	dm, err := atlas.New(dsn, 2)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := dm.Exec(ctx, func(db *gorm.DB) error {
		return models.AutoMigrate(db)
	}); err != nil {
		log.Fatal(err)
	}

	cfg, err := devops.ResolveDeviceConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	alerter := communication.FromEnv()

	log.Printf("[INFO] scheduling attendance sync every %d minute(s)", minutes)

	ticker := time.NewTicker(time.Duration(minutes) * time.Minute)
	defer ticker.Stop()

	runOnce(ctx, dm, cfg, alerter)
	for {
		select {
		case <-ctx.Done():
			log.Printf("[INFO] scheduler shutting down")
			return
		case <-ticker.C:
			runOnce(ctx, dm, cfg, alerter)
		}
	}
}

func runOnce(ctx context.Context, dm *atlas.DatabaseManager, cfg *fingertec.Config, alerter communication.Alerter) {
	if err := attendance.RunSyncJob(ctx, dm, cfg, alerter); err != nil {
		log.Printf("[ERROR] sync run could not start: %v", err)
	}
}
