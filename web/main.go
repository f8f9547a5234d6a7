package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	attendance "github.com/atlashr/atlas/attendance/core"
	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/core/models"
	"github.com/atlashr/atlas/infrastructure/communication"
	"github.com/atlashr/atlas/infrastructure/devops"
	"github.com/atlashr/atlas/web/handlers"
)

func main() {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		dsn = "root:development@tcp(localhost:3306)/atlas?parseTime=true"
	}

	dm, err := atlas.New(dsn, 10)
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

	deviceCfg, err := devops.ResolveDeviceConfig(ctx)
	if err != nil {
		log.Fatal(err)
	}
	alerter := communication.FromEnv()

	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	api := r.Group("/api")
	handlers.Register(api, handlers.SyncAPI{
		Status: handlers.StatusFromDB(dm),
		Trigger: func() {
			go func() {
				if err := attendance.RunSyncJob(context.Background(), dm, deviceCfg, alerter); err != nil {
					log.Printf("[ERROR] manual sync trigger failed: %v", err)
				}
			}()
		},
	})

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8090"
	}
	r.Run(addr)
}
