package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/resume-review-service/internal/service"
)

// StartBlacklistJanitor prunes expired revocation entries on a schedule.
// The ledger also prunes opportunistically on every revoke; this worker
// keeps the table bounded during quiet periods. Stops when ctx is done.
func StartBlacklistJanitor(ctx context.Context, ledger *service.RevocationLedger, interval time.Duration, logger *zap.Logger) {
	if ledger == nil || interval <= 0 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pruned, err := ledger.PruneExpired(ctx)
				if err != nil {
					logger.Warn("blacklist prune failed", zap.Error(err))
					continue
				}
				if pruned > 0 {
					logger.Info("pruned expired blacklist entries", zap.Int64("count", pruned))
				}
			}
		}
	}()
}
