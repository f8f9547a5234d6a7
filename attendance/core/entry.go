package core

import (
	"context"

	"gorm.io/gorm"

	atlas "github.com/atlashr/atlas/core"
	"github.com/atlashr/atlas/integrations/fingertec"
)

// RunSyncJob is the zero-argument surface schedulers and operators call.
// It pins a single pooled connection for the whole run so the advisory
// lock is acquired and released on one session, then runs the job; all
// failures inside the job are recorded, never returned. The returned error
// only covers failing to obtain a connection in the first place.
func RunSyncJob(ctx context.Context, dm *atlas.DatabaseManager, cfg *fingertec.Config, alerter Alerter) error {
	return dm.Exec(ctx, func(db *gorm.DB) error {
		job := NewJob(NewGormStore(db), fingertec.NewAdapter(cfg), alerter)
		job.Run(ctx)
		return nil
	})
}
