package core

// scheduler.go runs background maintenance for the session registry.
//
// Sessions hold a full table in memory, so idle ones are swept periodically.
// The sweeper is long-running and context-aware for graceful shutdown.

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is used when StartSweeper is given a non-positive interval.
const DefaultSweepInterval = 5 * time.Minute

// StartSweeper evicts idle sessions every interval until ctx is cancelled.
func (s *Sessions) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	slog.Info("session sweeper started",
		"interval", interval,
		"ttl", s.ttl,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("session sweeper stopped")
			return
		case <-ticker.C:
			s.runSweep()
		}
	}
}

// runSweep performs one eviction pass.
func (s *Sessions) runSweep() {
	start := time.Now()
	removed := s.Sweep()

	if removed > 0 {
		slog.Info("swept idle sessions",
			"removed", removed,
			"remaining", s.Len(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return
	}
	slog.Debug("session sweep found nothing idle", "remaining", s.Len())
}
