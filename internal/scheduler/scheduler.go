// Package scheduler keeps the admin stats snapshot warm so the dashboard
// reads a precomputed aggregate instead of hitting the tables per request.
package scheduler

import (
	"context"
	"log"
	"time"
)

type refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	stats    refresher
	interval time.Duration
}

func New(stats refresher, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{stats: stats, interval: interval}
}

// Start runs the refresh loop until ctx is cancelled. An immediate refresh
// primes the snapshot before the first tick.
func (s *Scheduler) Start(ctx context.Context) {
	s.tick(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[SCHEDULER] stats refresh every %s", s.interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[SCHEDULER] stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	if err := s.stats.Refresh(ctx); err != nil {
		log.Printf("[SCHEDULER] stats refresh failed: %v", err)
	}
}
