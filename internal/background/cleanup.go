package background

import (
	"context"
	"time"

	"avcoe-site/internal/services"

	"go.uber.org/zap"
)

// Cleaner periodically removes expired sessions and throttle records
// with no recent activity.
type Cleaner struct {
	authService *services.AuthService
	logger      *zap.Logger
	interval    time.Duration
	stopCh      chan struct{}
}

func NewCleaner(authService *services.AuthService, logger *zap.Logger, interval time.Duration) *Cleaner {
	return &Cleaner{
		authService: authService,
		logger:      logger,
		interval:    interval,
		stopCh:      make(chan struct{}),
	}
}

// Start begins the periodic cleanup task. It runs once immediately.
func (cl *Cleaner) Start(ctx context.Context) {
	ticker := time.NewTicker(cl.interval)
	defer ticker.Stop()

	cl.run()

	for {
		select {
		case <-ticker.C:
			cl.run()
		case <-cl.stopCh:
			cl.logger.Info("cleaner stopped")
			return
		case <-ctx.Done():
			cl.logger.Info("cleaner context cancelled")
			return
		}
	}
}

// Stop signals the cleanup loop to exit.
func (cl *Cleaner) Stop() {
	close(cl.stopCh)
}

func (cl *Cleaner) run() {
	if err := cl.authService.DeleteExpiredSessions(); err != nil {
		cl.logger.Error("failed to delete expired sessions", zap.Error(err))
	}

	removed, err := cl.authService.SweepStaleAttempts(time.Now())
	if err != nil {
		cl.logger.Error("failed to sweep stale login attempts", zap.Error(err))
		return
	}
	if removed > 0 {
		cl.logger.Info("swept stale login attempts", zap.Int64("removed", removed))
	}
}
