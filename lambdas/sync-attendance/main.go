// EventBridge-triggered entry for the attendance sync job.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	attendance "github.com/atlashr/atlas/attendance/core"
	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/infrastructure/communication"
	"github.com/atlashr/atlas/infrastructure/devops"
)

func HandleRequest(ctx context.Context) error {
	dsn := os.Getenv("DSN")
	if dsn == "" {
		return fmt.Errorf("DSN not configured")
	}

	dm, err := atlas.New(dsn, 2)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer dm.Close()

	cfg, err := devops.ResolveDeviceConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve device config: %w", err)
	}

	// the job records its own failures; an error here only means no run happened
	if err := attendance.RunSyncJob(ctx, dm, cfg, communication.FromEnv()); err != nil {
		return fmt.Errorf("sync run could not start: %w", err)
	}

	log.Printf("[INFO] sync lambda finished")
	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
