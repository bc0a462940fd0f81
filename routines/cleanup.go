package routines

import (
	"context"
	"time"

	"github.com/CorrelAid/function_relay/logger"
	"github.com/CorrelAid/function_relay/operations"
	"github.com/hashicorp/go-memdb"
)

// StartCleanupRoutine purges expired journal entries now and on every tick
// until ctx is done.
func StartCleanupRoutine(ctx context.Context, db *memdb.MemDB, interval time.Duration) {
	cleanupRoutine(db)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cleanupRoutine(db)
		}
	}
}

func cleanupRoutine(db *memdb.MemDB) {
	n, err := operations.DeleteExpired(db, time.Now())
	if err != nil {
		logger.Warn("relay cleanup failed", "err", err)
		return
	}
	if n > 0 {
		logger.Info("deleted expired relays", "count", n)
	}
}
