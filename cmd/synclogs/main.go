// One-shot manual run of the attendance sync job. Outcome is reported
// through logs and the sync state row, same as the scheduled runs.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	attendance "github.com/atlashr/atlas/attendance/core"
	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/core/models"
	"github.com/atlashr/atlas/infrastructure/communication"
	"github.com/atlashr/atlas/infrastructure/devops"
)

func main() {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atlas?parseTime=true"
	}

	dm, err := atlas.New(dsn, 2)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	ctx := context.Background()
	if err := dm.Exec(ctx, func(db *gorm.DB) error {
		return models.AutoMigrate(db)
	}); err != nil {
		log.Fatal(err)
	}

	cfg, err := devops.ResolveDeviceConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}

	if err := attendance.RunSyncJob(ctx, dm, cfg, communication.FromEnv()); err != nil {
		fmt.Printf("[ERR] %v\n", err)
		os.Exit(1)
	}
	fmt.Println("[OK] Sync job executed.")
}
