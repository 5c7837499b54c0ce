package admin

import (
	"context"

	"golang.org/x/sync/singleflight"
)

// Service aggregates dashboard statistics. Concurrent dashboard loads
// share a single set of count queries through singleflight.
type Service struct {
	stats StatsRepository
	group singleflight.Group
}

// NewService constructs the admin Service.
func NewService(stats StatsRepository) *Service {
	return &Service{stats: stats}
}

// DashboardStats returns the live counters backing the dashboard.
func (s *Service) DashboardStats(ctx context.Context) (Stats, error) {
	v, err, _ := s.group.Do("dashboard-stats", func() (any, error) {
		return s.stats.Collect(ctx)
	})
	if err != nil {
		return Stats{}, err
	}
	return v.(Stats), nil
}
