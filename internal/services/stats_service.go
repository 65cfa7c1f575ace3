package services

import (
	"context"
	"sync"
	"time"

	"busbooking/internal/domain/models"
	"busbooking/internal/repositories"
)

// StatsService serves the admin aggregates from a cached snapshot. The
// scheduler refreshes it on the same 5 minute cadence the dashboard used to
// poll with; a stale or empty snapshot is recomputed on demand.
type StatsService struct {
	Repo   repositories.StatsRepo
	MaxAge time.Duration

	mu        sync.Mutex
	snapshot  models.AdminStats
	takenAt   time.Time
	populated bool
}

func NewStatsService(repo repositories.StatsRepo, maxAge time.Duration) *StatsService {
	if maxAge <= 0 {
		maxAge = 5 * time.Minute
	}
	return &StatsService{Repo: repo, MaxAge: maxAge}
}

// AdminStats returns the cached snapshot, refreshing it first when stale.
func (s *StatsService) AdminStats(ctx context.Context) (models.AdminStats, error) {
	s.mu.Lock()
	fresh := s.populated && time.Since(s.takenAt) < s.MaxAge
	snap := s.snapshot
	s.mu.Unlock()

	if fresh {
		return snap, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return models.AdminStats{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot, nil
}

// Refresh recomputes the snapshot. Called by the scheduler tick.
func (s *StatsService) Refresh(ctx context.Context) error {
	snap, err := s.Repo.AdminStats(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.snapshot = snap
	s.takenAt = time.Now()
	s.populated = true
	s.mu.Unlock()
	return nil
}

// PaymentStats is computed per request; the payments screen is rare enough
// that caching buys nothing.
func (s *StatsService) PaymentStats(ctx context.Context) (models.PaymentStats, error) {
	return s.Repo.PaymentStats(ctx)
}
